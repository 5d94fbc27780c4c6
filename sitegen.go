package sitegen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const (
	WritersEnvKey      = "SITEGEN_WRITERS"
	WritersDefault int = 20
)

type Site struct {
	Src    string
	Dst    string
	Url    string
	Config Config

	options options
	ignores *gitIgnorer
}

func (s *Site) Options() Options { return s.options }

// New returns a [Site] that builds src into dst with options.
// It reads ${src}/config.json and ${src}/.sitegenignore right away.
func New(src, dst string, opts ...Option) (*Site, error) {
	s := &Site{
		Src: filepath.Clean(src),
		Dst: filepath.Clean(dst),
		options: options{
			writers: WritersDefault,
			stdout:  os.Stdout,
		},
	}
	s.With(opts...)

	if err := prepare(src, dst, s.options.clean); err != nil {
		return nil, err
	}

	fs := s.fs()
	c, err := LoadConfig(fs, s.Src)
	if err != nil {
		return nil, err
	}
	s.Config = c

	ignores, err := ParseIgnoreFile(fs, filepath.Join(s.Src, IgnoreFileName))
	if err != nil {
		return nil, newBuildError(ErrConfig, IgnoreFileName, err)
	}
	s.ignores = ignores

	return s, nil
}

// Build builds static site from src, returning every output in memory.
// Nothing is written.
func Build(ctx context.Context, src, dst string, opts ...Option) ([]OutputFile, error) {
	s, err := New(src, dst, opts...)
	if err != nil {
		return nil, err
	}
	return s.Build(ctx)
}

// Generate writes static site built from src to dst.
// It creates a one-off [Site] that's used to generate a site right away.
func Generate(ctx context.Context, src, dst string, opts ...Option) error {
	s, err := New(src, dst, opts...)
	if err != nil {
		return err
	}
	return s.Generate(ctx)
}

// With applies opts to s sequentially
func (s *Site) With(opts ...Option) *Site {
	for i := range opts {
		opts[i](s)
	}
	return s
}

// Build runs discovery, loading, preprocessing, rendering and assembly,
// and returns the outputs sorted by target. Any failure aborts the build.
func (s *Site) Build(ctx context.Context) ([]OutputFile, error) {
	start := time.Now()
	fs := s.fs()
	log := s.logger()
	writers := s.options.writers

	renderer := s.options.renderer
	if renderer == nil {
		renderer = MarkdownRenderer{}
	}

	state := NewBuildState()
	if err := LoadIncludes(fs, s.Src, s.Config, state); err != nil {
		return nil, err
	}

	classifier := NewClassifier(s.Src, s.Config, s.ignores.Ignore)
	tree, err := BuildTree(fs, s.Src, classifier)
	if err != nil {
		return nil, err
	}
	log.Debug("discovered content", "stage", "tree", "records", tree.Len())

	err = LoadContent(ctx, fs, tree, state, writers, s.options.hooks...)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded content", "stage", "load", "posts", len(state.Posts), "pages", len(state.Pages))

	err = Preprocess(ctx, state, s.Src, writers)
	if err != nil {
		return nil, err
	}
	log.Debug("resolved directives", "stage", "preprocess")

	err = Assemble(ctx, state, renderer, writers, s.options.hookGenerate...)
	if err != nil {
		return nil, err
	}
	log.Debug("assembled pages", "stage", "assemble")

	outputs, err := RecordOutputs(state, s.Src, s.Dst)
	if err != nil {
		return nil, err
	}
	static, err := StaticOutputs(fs, s.Src, s.Dst, s.Config)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, static...)
	sortOutputs(outputs)

	if s.Url != "" {
		stat, err := fs.Stat(s.Src)
		if err != nil {
			return nil, newBuildError(ErrFilesystem, s.Src, err)
		}
		sitemap, err := SitemapOutput(s.Dst, s.Url, stat.ModTime(), outputs)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, sitemap)
	}

	log.Info("build done",
		"posts", len(state.Posts),
		"pages", len(state.Pages),
		"static", len(static),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return outputs, nil
}

// Generate builds from s.Src and, only if the whole build succeeded,
// writes the outputs to s.Dst
func (s *Site) Generate(ctx context.Context) error {
	outputs, err := s.Build(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fs := s.fs()
	if s.options.clean {
		s.logger().Debug("cleaning destination", "dst", s.Dst)
		if err := fs.RemoveAll(s.Dst); err != nil {
			return newBuildError(ErrWrite, s.Dst, err)
		}
	}

	err = WriteOutSlice(fs, outputs, s.options.writers, s.options.stdout)
	if err != nil {
		return err
	}

	s.pront(len(outputs))
	return nil
}

func (s *Site) fs() afero.Fs {
	if s.options.fs == nil {
		s.options.fs = afero.NewOsFs()
	}
	return s.options.fs
}

func (s *Site) logger() *slog.Logger {
	if s.options.logger == nil {
		s.options.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.options.logger
}

func (s *Site) pront(l int) {
	if s.options.stdout == nil {
		return
	}
	Fprintf(s.options.stdout, "[sitegen] wrote %d file(s) to %s\n", l, s.Dst)
}

func prepare(src, dst string, clean bool) error {
	if src == "" {
		return fmt.Errorf("empty src")
	}
	if dst == "" {
		return fmt.Errorf("empty dst")
	}
	if filepath.Clean(src) == filepath.Clean(dst) {
		return fmt.Errorf("src is identical to dst: '%s'", src)
	}
	// Cleaning removes dst as a whole, which must never reach into src.
	if clean && within(dst, src) {
		return newBuildError(ErrConfig, dst, fmt.Errorf("cannot clean dst: it contains src '%s'", src))
	}
	return nil
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
