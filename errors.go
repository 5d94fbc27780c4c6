package sitegen

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig means config.json is missing or cannot be parsed.
	ErrConfig = errors.New("config error")

	// ErrFilesystem means a directory could not be listed during the tree walk.
	ErrFilesystem = errors.New("filesystem error")

	// ErrRead means a content or include file could not be read.
	ErrRead = errors.New("read error")

	// ErrMalformedDirective means a known directive keyword
	// was found without a well-formed argument list.
	ErrMalformedDirective = errors.New("malformed directive")

	// ErrRender means the Markdown renderer failed.
	ErrRender = errors.New("render error")

	// ErrWrite means an output file could not be written.
	ErrWrite = errors.New("write error")

	// ErrStage means a content record was moved out of lifecycle order.
	ErrStage = errors.New("invalid stage transition")
)

// BuildError ties a failure kind (one of the sentinel errors above)
// to the path that caused it. Both the kind and the underlying cause
// are reachable with errors.Is and errors.As.
type BuildError struct {
	Kind error
	Path string
	Err  error
}

func newBuildError(kind error, path string, err error) *BuildError {
	return &BuildError{Kind: kind, Path: path, Err: err}
}

func (e *BuildError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: '%s'", e.Kind, e.Path)
	}
	return fmt.Sprintf("%v: '%s': %v", e.Kind, e.Path, e.Err)
}

func (e *BuildError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// DirectiveError describes a malformed directive token.
// Offset is the byte offset of the opening braces in the document.
type DirectiveError struct {
	Keyword string
	Offset  int
	Reason  string
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("directive '%s' at offset %d: %s", e.Keyword, e.Offset, e.Reason)
}

func (e *DirectiveError) Is(target error) bool {
	return target == ErrMalformedDirective
}

// errorWrite is collected by the writers for every failed output.
type errorWrite struct {
	err        error
	target     string
	originator string
}

func (e errorWrite) Error() string {
	return fmt.Sprintf("WriteError(target='%s',originator='%s'): %v", e.target, e.originator, e.err)
}

func (e errorWrite) Unwrap() []error {
	return []error{ErrWrite, e.err}
}
