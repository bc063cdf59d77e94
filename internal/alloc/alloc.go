// Package alloc provides fail-fast growable byte-block primitives.
package alloc

import "github.com/charmbracelet/log"

// Allocator hands out byte blocks with all-or-nothing failure semantics:
// a contract violation (negative size, shrinking zero-extend) terminates
// the process through the fatal handler instead of returning a block the
// caller could mistake for a usable one. Callers never plan for allocation
// failure as a recoverable case.
type Allocator struct {
	logger *log.Logger
	fatal  func(format string, args ...any)
}

// New returns an Allocator whose fatal handler is the logger's Fatalf,
// which exits the process.
func New(logger *log.Logger) *Allocator {
	return &Allocator{logger: logger, fatal: logger.Fatalf}
}

// NewWithFatal returns an Allocator with a caller-supplied fatal handler.
// The handler must not return normally; tests substitute one that panics.
func NewWithFatal(logger *log.Logger, fatal func(format string, args ...any)) *Allocator {
	return &Allocator{logger: logger, fatal: fatal}
}

// Allocate returns a zero-initialized block of exactly size bytes.
func (a *Allocator) Allocate(size int) []byte {
	if size < 0 {
		a.fatal("allocate(size=%d)", size)
		return nil
	}
	return make([]byte, size)
}

// Resize returns a block of exactly newSize bytes whose first
// min(len(block), newSize) bytes equal the corresponding bytes of block.
// Bytes beyond the preserved prefix are unspecified.
func (a *Allocator) Resize(block []byte, newSize int) []byte {
	if newSize < 0 {
		a.fatal("resize(len=%d, newSize=%d)", len(block), newSize)
		return nil
	}
	if newSize <= cap(block) {
		return block[:newSize]
	}
	grown := make([]byte, newSize)
	copy(grown, block)
	return grown
}

// ResizeZeroExtend is Resize with the added guarantee that bytes in
// [oldSize, newSize) are zero. oldSize must not exceed len(block) and
// newSize must not be smaller than oldSize.
func (a *Allocator) ResizeZeroExtend(block []byte, oldSize, newSize int) []byte {
	if oldSize < 0 || oldSize > len(block) || newSize < oldSize {
		a.fatal("resizeZeroExtend(len=%d, oldSize=%d, newSize=%d)", len(block), oldSize, newSize)
		return nil
	}
	grown := a.Resize(block, newSize)
	// Resize may have reused capacity holding stale bytes.
	clear(grown[oldSize:])
	return grown
}
