package sitegen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// DirectoryTree mirrors one source directory.
// Its records are shared with, and owned by, the BuildState.
type DirectoryTree struct {
	Path  string
	Files []*ContentRecord
	Trees []*DirectoryTree
}

// BuildTree recursively lists dir. Excluded children are skipped
// without being descended into. Any listing failure aborts the whole
// walk and no partial tree is returned.
func BuildTree(fs afero.Fs, dir string, c *Classifier) (*DirectoryTree, error) {
	dir = filepath.Clean(dir)
	stat, err := fs.Stat(dir)
	if err != nil {
		return nil, newBuildError(ErrFilesystem, dir, err)
	}
	if !stat.IsDir() {
		return nil, newBuildError(ErrFilesystem, dir, fmt.Errorf("not a directory"))
	}

	children, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, newBuildError(ErrFilesystem, dir, err)
	}

	tree := &DirectoryTree{Path: dir}
	for i := range children {
		child := children[i]
		name := child.Name()
		path := filepath.Join(dir, name)

		if c.Excluded(path, name) {
			continue
		}

		if child.Mode()&os.ModeSymlink != 0 {
			child, err = fs.Stat(path)
			if err != nil {
				return nil, newBuildError(ErrFilesystem, path, err)
			}
		}

		if child.IsDir() {
			subtree, err := BuildTree(fs, path, c)
			if err != nil {
				return nil, err
			}
			tree.Trees = append(tree.Trees, subtree)
			continue
		}

		tree.Files = append(tree.Files, newRecord(path, c.Collection(path)))
	}

	return tree, nil
}

// Walk visits every record depth-first: a directory's own files
// come before the files of its subdirectories.
func (t *DirectoryTree) Walk(fn func(r *ContentRecord)) {
	for i := range t.Files {
		fn(t.Files[i])
	}
	for i := range t.Trees {
		t.Trees[i].Walk(fn)
	}
}

// Len returns the number of records in the tree.
func (t *DirectoryTree) Len() int {
	n := 0
	t.Walk(func(*ContentRecord) { n++ })
	return n
}
