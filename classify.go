package sitegen

import (
	"path/filepath"
)

// Classifier decides which children of the source tree are skipped
// and which content files belong to the posts collection.
type Classifier struct {
	root     string
	postsDir string
	excluded Set
	ignores  func(rel string) bool
}

// NewClassifier builds a Classifier for root from c.
// ignores, if non-nil, is consulted with root-relative slash paths.
func NewClassifier(root string, c Config, ignores func(rel string) bool) *Classifier {
	root = filepath.Clean(root)
	excluded := NewSet(ConfigFileName, IgnoreFileName)
	for _, name := range []string{
		c.IncludeBefore,
		c.IncludeAfter,
		c.StaticSrc,
	} {
		if name == "" {
			continue
		}
		excluded.Insert(filepath.Clean(name))
	}

	postsDir := ""
	if c.PostsDir != "" {
		postsDir = filepath.Join(root, c.PostsDir)
	}

	return &Classifier{
		root:     root,
		postsDir: postsDir,
		excluded: excluded,
		ignores:  ignores,
	}
}

// Excluded reports whether the child at path (with base name name)
// must never become a record nor be descended into.
func (c *Classifier) Excluded(path, name string) bool {
	if c.excluded.Contains(name) {
		return true
	}
	rel, err := filepath.Rel(c.root, path)
	if err != nil {
		return false
	}
	if c.excluded.Contains(rel) {
		return true
	}
	if c.ignores != nil && c.ignores(filepath.ToSlash(rel)) {
		return true
	}
	return false
}

// Collection returns Post only for files whose immediate
// parent directory is the configured posts directory.
func (c *Classifier) Collection(path string) Collection {
	if c.postsDir == "" {
		return Page
	}
	if filepath.Dir(filepath.Clean(path)) == c.postsDir {
		return Post
	}
	return Page
}
