package alloc

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

// fatalCall is panicked by the test fatal handler so contract violations
// surface as catchable failures instead of process exits.
type fatalCall struct {
	msg string
}

func newTestAllocator() *Allocator {
	logger := log.New(io.Discard)
	return NewWithFatal(logger, func(format string, args ...any) {
		panic(fatalCall{msg: fmt.Sprintf(format, args...)})
	})
}

func expectFatal(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected fatal handler to fire")
		} else if _, ok := r.(fatalCall); !ok {
			panic(r)
		}
	}()
	fn()
}

func TestAllocateZeroed(t *testing.T) {
	a := newTestAllocator()
	block := a.Allocate(64)
	if len(block) != 64 {
		t.Fatalf("len = %d, want 64", len(block))
	}
	for i, b := range block {
		if b != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, b)
		}
	}
}

func TestAllocateNegativeIsFatal(t *testing.T) {
	a := newTestAllocator()
	expectFatal(t, func() { a.Allocate(-1) })
}

func TestResizePreservesPrefix(t *testing.T) {
	a := newTestAllocator()
	block := a.Allocate(10)
	for i := range block {
		block[i] = byte(i)
	}

	grown := a.Resize(block, 20)
	if len(grown) != 20 {
		t.Fatalf("len = %d, want 20", len(grown))
	}
	if !bytes.Equal(grown[:10], block) {
		t.Errorf("grown prefix = %v, want %v", grown[:10], block)
	}

	shrunk := a.Resize(grown, 4)
	if len(shrunk) != 4 {
		t.Fatalf("len = %d, want 4", len(shrunk))
	}
	for i := 0; i < 4; i++ {
		if shrunk[i] != byte(i) {
			t.Errorf("byte %d = %#x, want %#x", i, shrunk[i], byte(i))
		}
	}
}

func TestResizeNegativeIsFatal(t *testing.T) {
	a := newTestAllocator()
	expectFatal(t, func() { a.Resize(nil, -5) })
}

func TestResizeZeroExtend(t *testing.T) {
	a := newTestAllocator()
	block := a.Allocate(8)
	for i := range block {
		block[i] = 0xab
	}

	grown := a.ResizeZeroExtend(block, 8, 32)
	if len(grown) != 32 {
		t.Fatalf("len = %d, want 32", len(grown))
	}
	for i := 0; i < 8; i++ {
		if grown[i] != 0xab {
			t.Errorf("byte %d = %#x, want 0xab", i, grown[i])
		}
	}
	for i := 8; i < 32; i++ {
		if grown[i] != 0 {
			t.Errorf("byte %d = %#x, want 0", i, grown[i])
		}
	}
}

func TestResizeZeroExtendClearsStaleCapacity(t *testing.T) {
	a := newTestAllocator()

	// A shrunken slice whose spare capacity holds stale bytes: the
	// zero-extend must not expose them.
	backing := make([]byte, 16)
	for i := range backing {
		backing[i] = 0xff
	}
	block := backing[:8]

	grown := a.ResizeZeroExtend(block, 8, 16)
	for i := 8; i < 16; i++ {
		if grown[i] != 0 {
			t.Errorf("byte %d = %#x, want 0", i, grown[i])
		}
	}
}

func TestResizeZeroExtendViolations(t *testing.T) {
	a := newTestAllocator()
	block := a.Allocate(8)

	expectFatal(t, func() { a.ResizeZeroExtend(block, 8, 4) })  // shrink
	expectFatal(t, func() { a.ResizeZeroExtend(block, 16, 32) }) // oldSize beyond block
	expectFatal(t, func() { a.ResizeZeroExtend(block, -1, 4) })
}
