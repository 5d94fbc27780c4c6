package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/soyart/sitegen"
)

// version is set at build time via ldflags.
var version = "dev"

type flags struct {
	writers  uint
	renderer string
	clean    bool
	url      string
	verbose  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI with args and returns the process exit code.
// It is the only place errors become exit codes.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		sitegen.Fprintln(stderr, "error:", err)
	}
	return exitCodeFor(err)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "sitegen <srcdir> <outdir>",
		Short: "Build a static HTML site from a tree of Markdown files",
		Long: `sitegen converts every file under srcdir into an HTML page under outdir,
mirroring the source tree.

Files directly inside the configured posts directory are posts:
pages can list them with {{ posts }}. Pages and posts set their
title and description with {{ title "..." }} and {{ desc "..." }}.

Settings are read from srcdir/config.json.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd.Context(), args[0], args[1], f, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	fl := cmd.Flags()
	fl.UintVarP(&f.writers, "writers", "w", uint(sitegen.GetEnvWriters()), "number of concurrent workers (env "+sitegen.WritersEnvKey+")")
	fl.StringVar(&f.renderer, "renderer", sitegen.RendererGomarkdown, "Markdown renderer: gomarkdown or goldmark")
	fl.BoolVar(&f.clean, "clean", false, "remove outdir before writing")
	fl.StringVar(&f.url, "url", "", "site base URL; writes sitemap.xml when set")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log build stages to stderr")

	return cmd
}

func generate(ctx context.Context, src, dst string, f flags, stdout, stderr io.Writer) error {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	undo, _ := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
	defer undo()

	renderer, err := sitegen.NewRenderer(f.renderer)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	opts := []sitegen.Option{
		sitegen.Writers(f.writers),
		sitegen.WithRenderer(renderer),
		sitegen.WithLogger(logger),
		sitegen.WithStdout(stdout),
		sitegen.Clean(f.clean),
	}
	if f.url != "" {
		opts = append(opts, sitegen.SitemapURL(f.url))
	}

	return sitegen.Generate(ctx, src, dst, opts...)
}
