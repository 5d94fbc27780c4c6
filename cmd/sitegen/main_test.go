package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyart/sitegen"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "usage", err: fmt.Errorf("%w: bad", ErrUsage), want: ExitUsage},
		{name: "config", err: &sitegen.BuildError{Kind: sitegen.ErrConfig, Path: "config.json"}, want: ExitConfig},
		{name: "filesystem", err: &sitegen.BuildError{Kind: sitegen.ErrFilesystem, Path: "src"}, want: ExitFilesystem},
		{name: "read", err: &sitegen.BuildError{Kind: sitegen.ErrRead, Path: "a.md", Err: os.ErrNotExist}, want: ExitRead},
		{name: "directive", err: &sitegen.DirectiveError{Keyword: "title"}, want: ExitDirective},
		{name: "render", err: fmt.Errorf("wrapped: %w", sitegen.ErrRender), want: ExitRender},
		{name: "write", err: errors.Join(fmt.Errorf("%w: a.html", sitegen.ErrWrite)), want: ExitWrite},
		{name: "canceled", err: context.Canceled, want: ExitCanceled},
		{name: "other", err: errors.New("boom"), want: ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	src := t.TempDir()
	for name, content := range files {
		path := filepath.Join(src, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return src
}

func TestRun(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		src := writeSite(t, map[string]string{
			"config.json":  `{"posts dir": "posts"}`,
			"index.md":     "{{ title \"Home\" }}\n{{ posts }}",
			"posts/one.md": "{{ title \"One\" }}\n{{ desc \"The first\" }}\nBody",
		})
		dst := filepath.Join(t.TempDir(), "out")

		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"--writers", "2", "--url", "https://example.com", src, dst}, &stdout, &stderr)
		require.Equal(t, ExitSuccess, code, "stderr: %s", stderr.String())

		index, err := os.ReadFile(filepath.Join(dst, "index.html"))
		require.NoError(t, err)
		assert.Contains(t, string(index), `<a href="/posts/one.html">One</a>`)

		assert.FileExists(t, filepath.Join(dst, "posts", "one.html"))
		assert.FileExists(t, filepath.Join(dst, "sitemap.xml"))
		assert.Contains(t, stdout.String(), "[sitegen] wrote 3 file(s)")
	})

	t.Run("goldmark", func(t *testing.T) {
		src := writeSite(t, map[string]string{
			"config.json": `{}`,
			"index.md":    "# Hello",
		})
		dst := filepath.Join(t.TempDir(), "out")

		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"--renderer", "goldmark", src, dst}, &stdout, &stderr)
		require.Equal(t, ExitSuccess, code, "stderr: %s", stderr.String())

		index, err := os.ReadFile(filepath.Join(dst, "index.html"))
		require.NoError(t, err)
		assert.Contains(t, string(index), `<h1 id="hello">Hello</h1>`)
	})

	t.Run("failures", func(t *testing.T) {
		valid := writeSite(t, map[string]string{
			"config.json": `{}`,
			"index.md":    "hi",
		})
		malformed := writeSite(t, map[string]string{
			"config.json": `{}`,
			"index.md":    "{{ title }}",
		})
		noConfig := writeSite(t, map[string]string{
			"index.md": "hi",
		})

		tests := []struct {
			name string
			args []string
			want int
		}{
			{name: "no args", args: []string{}, want: ExitUsage},
			{name: "one arg", args: []string{valid}, want: ExitUsage},
			{name: "unknown flag", args: []string{"--nope", valid, "out"}, want: ExitUsage},
			{name: "unknown renderer", args: []string{"--renderer", "pandoc", valid, filepath.Join(t.TempDir(), "out")}, want: ExitUsage},
			{name: "missing config", args: []string{noConfig, filepath.Join(t.TempDir(), "out")}, want: ExitConfig},
			{name: "malformed directive", args: []string{malformed, filepath.Join(t.TempDir(), "out")}, want: ExitDirective},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var stdout, stderr bytes.Buffer
				code := run(context.Background(), tt.args, &stdout, &stderr)
				assert.Equal(t, tt.want, code)
				assert.Contains(t, stderr.String(), "error:")
			})
		}
	})
}
