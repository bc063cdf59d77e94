// Package fsutil has small path and stat helpers shared across the tool.
package fsutil

import (
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
)

// Basename returns the final path component, or the whole path when it
// contains no separator.
func Basename(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// IsDir reports whether path names a directory. Stat failures are logged
// and reported as false.
func IsDir(logger *log.Logger, path string) bool {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		logger.Error("stat failed", "path", path, "err", err)
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFDIR
}
