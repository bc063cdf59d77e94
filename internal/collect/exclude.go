package collect

import (
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// excludeSet holds user-supplied exclude patterns in gitignore syntax.
// Patterns match paths relative to the walk root; directory candidates are
// checked with a trailing slash so dir-only patterns behave as expected.
type excludeSet struct {
	parser *ignore.GitIgnore
}

func loadExcludeSet(path string) (*excludeSet, error) {
	parser, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, err
	}
	return &excludeSet{parser: parser}, nil
}

// matches reports whether fullPath, relative to root, is excluded.
// A nil excludeSet matches nothing.
func (e *excludeSet) matches(root, fullPath string, isDir bool) bool {
	if e == nil || e.parser == nil {
		return false
	}
	rel, err := filepath.Rel(root, fullPath)
	if err != nil {
		return false
	}
	if isDir {
		rel += "/"
	}
	return e.parser.MatchesPath(rel)
}
