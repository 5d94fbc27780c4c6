package sitegen

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func testSite() map[string]string {
	return map[string]string{
		"/site/src/config.json": `{
	"posts dir": "posts",
	"include before": "_before.html",
	"include after": "_after.html",
	"static src": "static",
	"static dest": "assets"
}`,
		"/site/src/.sitegenignore":   "drafts\n",
		"/site/src/_before.html":     "<html><body>\n",
		"/site/src/_after.html":      "</body></html>\n",
		"/site/src/index.md":         "{{ title \"Home\" }}\n{{ posts }}",
		"/site/src/posts/a.md":       "{{ title \"Alpha\" }}\n{{ desc \"First post\" }}\nAlpha body",
		"/site/src/posts/b.md":       "{{ title \"Beta\" }}\n{{ desc \"Second post\" }}\nBeta body",
		"/site/src/drafts/wip.md":    "{{ title }}",
		"/site/src/static/style.css": "body{}",
	}
}

func TestBuild(t *testing.T) {
	fs := testFs(t, testSite())

	outputs, err := Build(context.Background(), "/site/src", "/site/dst", WithFs(fs), WithStdout(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedTargets := []string{
		"/site/dst/assets/style.css",
		"/site/dst/index.html",
		"/site/dst/posts/a.html",
		"/site/dst/posts/b.html",
	}
	if len(outputs) != len(expectedTargets) {
		for i := range outputs {
			t.Logf("output: %s", outputs[i].Target())
		}
		t.Fatalf("unexpected number of outputs %d", len(outputs))
	}
	for i := range expectedTargets {
		if outputs[i].Target() != expectedTargets[i] {
			t.Fatalf("unexpected output %d, expecting %s, got %s", i, expectedTargets[i], outputs[i].Target())
		}
	}

	expecteds := map[string][]string{
		"/site/dst/index.html": {
			`<h1 id="home">Home</h1>`,
			`<a href="/posts/a.html">Alpha</a>`,
			`<a href="/posts/b.html">Beta</a>`,
			"First post",
			"Second post",
		},
		"/site/dst/posts/a.html": {
			`<h1 id="alpha">Alpha</h1>`,
			"<p>Alpha body</p>",
		},
		"/site/dst/posts/b.html": {
			`<h1 id="beta">Beta</h1>`,
			"<p>Beta body</p>",
		},
	}

	for i := range outputs {
		o := &outputs[i]
		subs, ok := expecteds[o.Target()]
		if !ok {
			continue
		}
		html := string(o.Data())
		if !strings.HasPrefix(html, "<html><body>\n") || !strings.HasSuffix(html, "</body></html>\n") {
			t.Fatalf("output %s not wrapped with include fragments:\n%s", o.Target(), html)
		}
		for _, sub := range subs {
			if !strings.Contains(html, sub) {
				t.Logf("output:\n%s", html)
				t.Fatalf("missing expected substr '%s' from output %s", sub, o.Target())
			}
		}
		if strings.Contains(html, "{{") {
			t.Fatalf("leftover directive in %s", o.Target())
		}
	}

	index := string(outputs[1].Data())
	if strings.Count(index, `<div class="post">`) != 2 {
		t.Fatalf("expecting exactly 2 post blocks in index:\n%s", index)
	}
	if strings.Index(index, "/posts/a.html") > strings.Index(index, "/posts/b.html") {
		t.Fatalf("posts out of discovery order in index")
	}
}

func TestGenerate(t *testing.T) {
	files := testSite()
	files["/site/dst/stale.html"] = "stale"
	fs := testFs(t, files)

	var stdout bytes.Buffer
	err := Generate(
		context.Background(), "/site/src", "/site/dst",
		WithFs(fs),
		WithStdout(&stdout),
		Writers(2),
		Clean(true),
		SitemapURL("https://example.com"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, path := range []string{
		"/site/dst/index.html",
		"/site/dst/posts/a.html",
		"/site/dst/posts/b.html",
		"/site/dst/assets/style.css",
		"/site/dst/sitemap.xml",
	} {
		ok, err := afero.Exists(fs, path)
		if err != nil || !ok {
			t.Fatalf("missing output %s", path)
		}
	}

	stale, _ := afero.Exists(fs, "/site/dst/stale.html")
	if stale {
		t.Fatalf("clean did not remove stale output")
	}

	sitemap, _ := afero.ReadFile(fs, "/site/dst/sitemap.xml")
	if !strings.Contains(string(sitemap), "<loc>https://example.com/posts/a.html</loc>") {
		t.Fatalf("missing post in sitemap:\n%s", sitemap)
	}
	if !strings.Contains(stdout.String(), "[sitegen] wrote 5 file(s) to /site/dst") {
		t.Fatalf("missing summary line in stdout:\n%s", stdout.String())
	}
}

func TestGenerateAllOrNothing(t *testing.T) {
	type testCase struct {
		name  string
		files map[string]string
		err   error
	}

	broken := testSite()
	broken["/site/src/posts/c.md"] = "{{ title }}\nNo quoted title"

	missingInclude := testSite()
	delete(missingInclude, "/site/src/_after.html")

	tests := []testCase{
		{name: "malformed directive", files: broken, err: ErrMalformedDirective},
		{name: "missing include", files: missingInclude, err: ErrRead},
		{name: "missing config", files: map[string]string{"/site/src/index.md": "hi"}, err: ErrConfig},
	}

	for i := range tests {
		tc := &tests[i]
		t.Run(tc.name, func(t *testing.T) {
			fs := testFs(t, tc.files)
			err := Generate(context.Background(), "/site/src", "/site/dst", WithFs(fs), WithStdout(nil))
			if !errors.Is(err, tc.err) {
				t.Fatalf("expecting %v, got %v", tc.err, err)
			}
			exists, _ := afero.Exists(fs, "/site/dst")
			if exists {
				t.Fatalf("destination written despite failed build")
			}
		})
	}
}

func TestNewErrors(t *testing.T) {
	type testCase struct {
		src   string
		dst   string
		clean bool
	}

	tests := []testCase{
		{src: "", dst: "/site/dst"},
		{src: "/site/src", dst: ""},
		{src: "/site/src", dst: "/site/src/"},
		{src: "/site/src", dst: "/site", clean: true},
		{src: "/site/src", dst: "/", clean: true},
	}

	fs := testFs(t, testSite())
	for i := range tests {
		tc := &tests[i]
		_, err := New(tc.src, tc.dst, WithFs(fs), Clean(tc.clean))
		if err == nil {
			t.Fatalf("[case %d] expecting error for src='%s' dst='%s' clean=%v", i+1, tc.src, tc.dst, tc.clean)
		}
		if tc.clean && !errors.Is(err, ErrConfig) {
			t.Fatalf("[case %d] expecting ErrConfig, got %v", i+1, err)
		}
	}

	for _, dst := range []string{"/site", "/site/dst", "/site/srcdst"} {
		clean := dst != "/site"
		_, err := New("/site/src", dst, WithFs(fs), Clean(clean))
		if err != nil {
			t.Fatalf("unexpected error for dst='%s' clean=%v: %v", dst, clean, err)
		}
	}
}

func TestGenerateCleanKeepsSource(t *testing.T) {
	fs := testFs(t, testSite())
	err := Generate(context.Background(), "/site/src", "/site", WithFs(fs), WithStdout(nil), Clean(true))
	if err == nil {
		t.Fatalf("expecting error when dst contains src")
	}
	for path := range testSite() {
		ok, _ := afero.Exists(fs, path)
		if !ok {
			t.Fatalf("source file %s removed", path)
		}
	}
}
