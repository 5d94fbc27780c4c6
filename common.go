package sitegen

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const (
	ExtMarkdown = ".md"
	ExtHtml     = ".html"
)

type Set map[string]struct{}

func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for i := range items {
		s.Insert(items[i])
	}
	return s
}

func (s Set) Insert(v string) bool {
	_, ok := s[v]
	s[v] = struct{}{}
	return ok
}

func (s Set) Contains(items ...string) bool {
	for _, v := range items {
		_, ok := s[v]
		if !ok {
			return false
		}
	}
	return true
}

func ChangeExt(path, old, new string) string {
	if !strings.HasSuffix(path, old) {
		return path
	}
	path = strings.TrimSuffix(path, old)
	return path + new
}

func Fprintf(w io.Writer, format string, data ...any) {
	_, err := fmt.Fprintf(w, format, data...)
	if err != nil {
		panic(err)
	}
}

func Fprintln(w io.Writer, data ...any) {
	_, err := fmt.Fprintln(w, data...)
	if err != nil {
		panic(err)
	}
}

// mirrorPath mirrors path under src to under dst
//
// i.e. if src="foo/src" and dst="foo/dist",
// and path="foo/src/bar/baz.md",
// then the return value will be foo/dist/bar/baz.md
func mirrorPath(
	src string,
	dst string,
	path string,
) (
	string,
	error,
) {
	path, err := filepath.Rel(src, path)
	if err != nil {
		return "", err
	}

	return filepath.Join(dst, path), nil
}

// OutputPath maps a content file under src to its HTML target under dst.
func OutputPath(src, dst, path string) (string, error) {
	target, err := mirrorPath(src, dst, path)
	if err != nil {
		return "", err
	}
	return ChangeExt(target, ExtMarkdown, ExtHtml), nil
}

// URL derives the site-absolute link of a content file,
// e.g. root/sub/post.md -> /sub/post.html
func URL(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(ChangeExt(rel, ExtMarkdown, ExtHtml)), nil
}
