// Package mapped gives downstream parsers a file's full contents as a
// private, writable-in-process memory mapping. Mutating the mapped bytes
// never reaches the underlying file, so parsers may use the buffer as
// scratch space.
package mapped

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
)

// Stage identifies which step of Open failed.
type Stage int

const (
	StageOpen Stage = iota + 1
	StageStat
	StageMap
)

func (s Stage) String() string {
	switch s {
	case StageOpen:
		return "open"
	case StageStat:
		return "stat"
	case StageMap:
		return "mmap"
	}
	return "unknown"
}

// Error is a mapping failure at a specific stage.
type Error struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// View is one file's contents as a mapped buffer. Data is valid until
// Close; Size always equals the file's size at the moment of mapping.
type View struct {
	Data []byte
	Size int64

	fd     int
	closed bool
}

// Open maps path read-only with a private, in-process-writable mapping
// sized from the on-disk length. Every failure releases whatever the call
// had already acquired. Size-zero files fail at the map stage, as mmap
// rejects zero-length mappings.
func Open(logger *log.Logger, path string) (*View, error) {
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		logger.Warn("couldn't open file in R/O mode", "path", path, "err", err)
		return nil, &Error{Stage: StageOpen, Path: path, Err: err}
	}

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		logger.Warn("couldn't stat file", "path", path, "err", err)
		unix.Close(fd)
		return nil, &Error{Stage: StageStat, Path: path, Err: err}
	}

	data, err := syscall.Mmap(fd, 0, int(st.Size), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_PRIVATE)
	if err != nil {
		logger.Warn("couldn't mmap file", "path", path, "size", st.Size, "err", err)
		unix.Close(fd)
		return nil, &Error{Stage: StageMap, Path: path, Err: err}
	}
	unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return &View{Data: data, Size: st.Size, fd: fd}, nil
}

// Close unmaps the view, then closes its descriptor. Only the first call
// releases; later calls are no-ops. Data must not be used after Close.
func (v *View) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true

	err := syscall.Munmap(v.Data)
	v.Data = nil
	if cerr := unix.Close(v.fd); err == nil {
		err = cerr
	}
	return err
}

// WriteAll writes all of buf to fd, retrying interrupted writes, and fails
// only on a genuine write error.
func WriteAll(fd int, buf []byte) error {
	for len(buf) > 0 {
		n, err := unix.Write(fd, buf)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}
