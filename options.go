package sitegen

import (
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/afero"
)

type (
	Option func(*Site)

	// Hook takes in a path and its raw file data,
	// returning modified Markdown to be preprocessed
	Hook func(path string, data []byte) (output []byte, err error)

	// HookGenerate takes in a fully assembled HTML page
	// and returns modified HTML output to be written at destination
	HookGenerate func(generatedHtml []byte) (output []byte, err error)

	Options interface {
		Hooks() []Hook
		HooksGenerate() []HookGenerate
		Writers() int
		Renderer() Renderer
		Clean() bool
	}

	options struct {
		hooks        []Hook
		hookGenerate []HookGenerate
		writers      int
		renderer     Renderer
		clean        bool
		fs           afero.Fs
		logger       *slog.Logger
		stdout       io.Writer
	}
)

func (o options) Hooks() []Hook                 { return o.hooks }
func (o options) HooksGenerate() []HookGenerate { return o.hookGenerate }
func (o options) Writers() int                  { return o.writers }
func (o options) Renderer() Renderer            { return o.renderer }
func (o options) Clean() bool                   { return o.clean }

// WritersFromEnv returns an option that sets the parallel writes
// to whatever [GetEnvWriters] returns
func WritersFromEnv() Option {
	return func(s *Site) {
		writes := GetEnvWriters()
		s.options.writers = int(writes)
	}
}

// GetEnvWriters returns ENV value for parallel writes,
// or default value if illgal or undefined
func GetEnvWriters() int {
	writesEnv := os.Getenv(WritersEnvKey)
	writes, err := strconv.ParseUint(writesEnv, 10, 32)
	if err == nil && writes != 0 {
		return int(writes)
	}

	return WritersDefault
}

// Writers sets the number of concurrent workers,
// used for reading, rendering and writing alike.
// Zero keeps the current value.
func Writers(u uint) Option {
	return func(s *Site) {
		if u == 0 {
			return
		}
		s.options.writers = int(u)
	}
}

// WithHooks will make [Site] iterate through hooks and call hook(path, fileContent)
// on every content file right after it is read.
func WithHooks(hooks ...Hook) Option {
	return func(s *Site) { s.options.hooks = append(s.options.hooks, hooks...) }
}

// PrependHooks prepends [hooks] to Site's existing hook options.
// e.g. if we have a Site with existing hook options = [hook1, hook2]
// then PrependHooks(hook3, hook4) will make [hook3, hook4, hook1, hook2]
func PrependHooks(hooks ...Hook) Option {
	return func(s *Site) {
		hooks = append(hooks, s.options.hooks...)
		s.options.hooks = hooks
	}
}

// WithHooksGenerate assigns hook to be called on full output of files
// after they are rendered and wrapped with the include fragments.
func WithHooksGenerate(hooks ...HookGenerate) Option {
	return func(s *Site) { s.options.hookGenerate = append(s.options.hookGenerate, hooks...) }
}

// WithRenderer replaces the default gomarkdown renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Site) { s.options.renderer = r }
}

// WithFs makes Site read and write through fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Site) { s.options.fs = fs }
}

// WithLogger sets the structured logger. Logs are discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Site) { s.options.logger = l }
}

// WithStdout sets where written paths and the summary line are printed.
// Nil silences them.
func WithStdout(w io.Writer) Option {
	return func(s *Site) { s.options.stdout = w }
}

// Clean removes dst before a successful build is written.
func Clean(b bool) Option {
	return func(s *Site) { s.options.clean = b }
}

// SitemapURL enables sitemap.xml generation with url as the site base.
func SitemapURL(url string) Option {
	return func(s *Site) { s.Url = url }
}
