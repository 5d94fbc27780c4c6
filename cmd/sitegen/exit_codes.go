package main

import (
	"context"
	"errors"

	"github.com/soyart/sitegen"
)

// Exit codes for sitegen, one per failure class.
const (
	ExitSuccess    = 0 // Site written
	ExitGeneral    = 1 // Unclassified error
	ExitUsage      = 2 // Bad arguments or flags
	ExitConfig     = 3 // config.json missing or invalid
	ExitFilesystem = 4 // Source tree could not be listed
	ExitRead       = 5 // Content or include file unreadable
	ExitDirective  = 6 // Malformed directive
	ExitRender     = 7 // Markdown renderer failed
	ExitWrite      = 8 // Output could not be written
	ExitCanceled   = 130
)

var ErrUsage = errors.New("usage error")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, sitegen.ErrConfig):
		return ExitConfig
	case errors.Is(err, sitegen.ErrFilesystem):
		return ExitFilesystem
	case errors.Is(err, sitegen.ErrRead):
		return ExitRead
	case errors.Is(err, sitegen.ErrMalformedDirective):
		return ExitDirective
	case errors.Is(err, sitegen.ErrRender):
		return ExitRender
	case errors.Is(err, sitegen.ErrWrite):
		return ExitWrite
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	}
	return ExitGeneral
}
