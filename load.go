package sitegen

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// LoadIncludes reads the configured include fragments into state.
// Unlike an unset fragment, a configured but unreadable one is an error.
func LoadIncludes(fs afero.Fs, root string, c Config, state *BuildState) error {
	read := func(name string) (string, error) {
		if name == "" {
			return "", nil
		}
		path := filepath.Join(root, name)
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return "", newBuildError(ErrRead, path, err)
		}
		return string(data), nil
	}

	var err error
	state.IncludeBefore, err = read(c.IncludeBefore)
	if err != nil {
		return err
	}
	state.IncludeAfter, err = read(c.IncludeAfter)
	if err != nil {
		return err
	}

	return nil
}

// LoadContent moves every record of tree into state.Posts or state.Pages,
// in discovery order, and reads its raw text. Reads run concurrently
// with at most limit in flight; the first failure cancels the rest
// and is returned.
func LoadContent(
	ctx context.Context,
	fs afero.Fs,
	tree *DirectoryTree,
	state *BuildState,
	limit int,
	hooks ...Hook,
) error {
	var records []*ContentRecord
	tree.Walk(func(r *ContentRecord) {
		state.add(r)
		records = append(records, r)
	})

	if limit <= 0 {
		limit = 1
	}

	group, groupctx := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for i := range records {
		r := records[i]
		group.Go(func() error {
			if err := groupctx.Err(); err != nil {
				return err
			}
			data, err := afero.ReadFile(fs, r.path)
			if err != nil {
				return newBuildError(ErrRead, r.path, err)
			}
			for j, hook := range hooks {
				data, err = hook(r.path, data)
				if err != nil {
					return newBuildError(ErrRead, r.path, fmt.Errorf("hooks[%d]: %w", j, err))
				}
			}
			return r.load(string(data))
		})
	}

	return group.Wait()
}
