package sitegen

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// AssembleRecord renders r and wraps the result with the include fragments:
//
//	IncludeBefore + Render(markdown) + IncludeAfter
//
// hooks then run over the full page, in order.
func AssembleRecord(r *ContentRecord, state *BuildState, renderer Renderer, hooks ...HookGenerate) error {
	rendered, err := renderer.Render([]byte(r.markdown))
	if err != nil {
		return newBuildError(ErrRender, r.path, err)
	}
	if err := r.render(rendered); err != nil {
		return err
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(state.IncludeBefore)+len(rendered)+len(state.IncludeAfter)))
	buf.WriteString(state.IncludeBefore)
	buf.Write(r.rendered)
	buf.WriteString(state.IncludeAfter)

	out := buf.Bytes()
	for i, h := range hooks {
		out, err = h(out)
		if err != nil {
			return newBuildError(ErrRender, r.path, fmt.Errorf("hooksGenerate[%d]: %w", i, err))
		}
	}

	return r.assemble(out)
}

// Assemble renders and wraps every record of state concurrently.
// Any failure is fatal to the whole run.
func Assemble(
	ctx context.Context,
	state *BuildState,
	renderer Renderer,
	limit int,
	hooks ...HookGenerate,
) error {
	if limit <= 0 {
		limit = 1
	}

	group, groupctx := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for _, r := range state.Records() {
		r := r
		group.Go(func() error {
			if err := groupctx.Err(); err != nil {
				return err
			}
			return AssembleRecord(r, state, renderer, hooks...)
		})
	}

	return group.Wait()
}
