package sitegen

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	ignore "github.com/sabhiram/go-gitignore"
)

const IgnoreFileName = ".sitegenignore"

// ParseIgnoreFile compiles gitignore-style patterns from path.
// A missing file yields a nil ignorer, which ignores nothing.
func ParseIgnoreFile(fs afero.Fs, path string) (*gitIgnorer, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read ignore file at %s: %w", path, err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	return &gitIgnorer{GitIgnore: ignore.CompileIgnoreLines(lines...)}, nil
}

type gitIgnorer struct {
	*ignore.GitIgnore
}

// Ignore reports whether the root-relative path matches the patterns.
func (i *gitIgnorer) Ignore(path string) bool {
	if i == nil {
		return false
	}
	if i.GitIgnore == nil {
		return false
	}
	return i.MatchesPath(path)
}
