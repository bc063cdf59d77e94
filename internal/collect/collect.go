// Package collect enumerates candidate input files under a root path.
//
// A root naming a regular file is returned as-is, with no filtering — an
// explicitly named file is trusted even when empty. A root naming a
// directory is walked recursively, depth-first, keeping regular files of
// non-zero size; entries that cannot be inspected and subtrees that fail
// to enumerate are logged and skipped without aborting the walk.
//
// # Symlinks
//
// Symlinks are followed: every entry is classified with unix.Stat, so a
// symlink to a directory is traversed and a symlink to a regular file is
// eligible. Symlink loops are not detected.
//
// Collectors are not safe for concurrent use; the FileSet accumulator is
// appended to by a single walk at a time.
package collect

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"

	"github.com/ab/qcingest/internal/alloc"
)

// Kind classifies a collection failure.
type Kind int

const (
	// KindInvalidRoot: the root cannot be inspected, is neither a regular
	// file nor a directory, or the root directory itself cannot be read.
	KindInvalidRoot Kind = iota + 1
	// KindEmptyResult: a directory walk finished without a single
	// qualifying file.
	KindEmptyResult
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRoot:
		return "invalid root"
	case KindEmptyResult:
		return "empty result"
	}
	return "unknown"
}

// Error is a collection failure with the root it applies to.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("collect %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("collect %s: %s", e.Path, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FileSet is the ordered, append-only result of a collection. Order is the
// filesystem's enumeration order and is not guaranteed stable.
type FileSet struct {
	Paths []string
}

// Count returns the number of collected paths.
func (s *FileSet) Count() int {
	return len(s.Paths)
}

func (s *FileSet) add(path string) {
	s.Paths = append(s.Paths, path)
}

// direntBufSize is the initial getdents buffer size. The buffer grows if a
// directory holds an entry too large for it.
const direntBufSize = 32 * 1024

// Collector walks a root path and accumulates qualifying files.
type Collector struct {
	logger  *log.Logger
	alloc   *alloc.Allocator
	exclude *excludeSet

	root string // root of the walk in progress, anchor for exclude patterns
}

// New returns a Collector logging through logger and drawing its directory
// read buffer from a.
func New(logger *log.Logger, a *alloc.Allocator) *Collector {
	return &Collector{logger: logger, alloc: a}
}

// ExcludeFrom loads gitignore-syntax patterns from path and applies them to
// subsequent directory walks, anchored at the walk root. Single-file roots
// are never filtered.
func (c *Collector) ExcludeFrom(path string) error {
	ex, err := loadExcludeSet(path)
	if err != nil {
		return err
	}
	c.exclude = ex
	return nil
}

// Collect resolves root into a FileSet. It fails only when the root itself
// is unusable or a directory walk yields nothing.
func (c *Collector) Collect(root string) (*FileSet, error) {
	var st unix.Stat_t
	if err := unix.Stat(root, &st); err != nil {
		c.logger.Error("couldn't stat the input file/dir", "path", root, "err", err)
		return nil, &Error{Kind: KindInvalidRoot, Path: root, Err: err}
	}

	set := &FileSet{}

	switch st.Mode & unix.S_IFMT {
	case unix.S_IFDIR:
		c.root = root
		if err := c.walk(root, set, c.alloc.Allocate(direntBufSize), nil); err != nil {
			c.logger.Error("failed to recursively process directory", "path", root, "err", err)
			return nil, &Error{Kind: KindInvalidRoot, Path: root, Err: err}
		}
		if set.Count() == 0 {
			c.logger.Error("directory doesn't contain any regular files", "path", root)
			return nil, &Error{Kind: KindEmptyResult, Path: root}
		}
		c.logger.Info("input files added to the list", "count", set.Count())
		return set, nil

	case unix.S_IFREG:
		// An explicitly named file bypasses the walk filters, size-zero
		// and exclude checks included.
		set.add(root)
		return set, nil

	default:
		err := errors.New("not a regular file, nor a directory")
		c.logger.Error("unusable input path", "path", root, "err", err)
		return nil, &Error{Kind: KindInvalidRoot, Path: root, Err: err}
	}
}

// walk enumerates one directory and recurses into its subdirectories.
// buf is the shared getdents buffer; each level parses it into its own
// dirent slice before descending, so recursion may reuse it freely.
func (c *Collector) walk(dir string, set *FileSet, buf []byte, dirents []dirent) error {
	fd, err := unix.Open(dir, unix.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", dir, err)
	}
	defer unix.Close(fd)

	for {
		n, err := unix.Getdents(fd, buf)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if errors.Is(err, unix.EINVAL) && len(buf) > 0 {
			// Buffer too small for a single entry.
			buf = c.alloc.Resize(buf, 2*len(buf))
			continue
		}
		if err != nil {
			return fmt.Errorf("readdir %s: %w", dir, err)
		}
		if n == 0 {
			return nil
		}

		dirents = parseDirents(buf, n, dirents)
		for _, entry := range dirents {
			path := joinPath(dir, entry.name)

			// Known-special entries can be skipped without a stat; the
			// walk would discard them after classification anyway.
			switch entry.typ {
			case dtFifo, dtChr, dtBlk, dtSock:
				c.logger.Debug("not a regular file, skipping", "path", path)
				continue
			}

			var st unix.Stat_t
			if err := unix.Stat(path, &st); err != nil {
				c.logger.Warn("couldn't stat entry, skipping", "path", path, "err", err)
				continue
			}

			switch st.Mode & unix.S_IFMT {
			case unix.S_IFDIR:
				if c.exclude.matches(c.root, path, true) {
					c.logger.Debug("excluded directory", "path", path)
					continue
				}
				// A failing subtree never aborts the walk over its
				// siblings. The child parses into a fresh dirent slice;
				// this level's entries are already materialized.
				if err := c.walk(path, set, buf, nil); err != nil {
					c.logger.Error("failed to process directory", "path", path, "err", err)
				}

			case unix.S_IFREG:
				if st.Size == 0 {
					c.logger.Debug("empty file, skipping", "path", path)
					continue
				}
				if c.exclude.matches(c.root, path, false) {
					c.logger.Debug("excluded file", "path", path)
					continue
				}
				set.add(path)
				c.logger.Debug("added to the list of input files", "path", path)

			default:
				c.logger.Debug("not a regular file, skipping", "path", path)
			}
		}
	}
}
