// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"testing"
	"unsafe"
)

func newExplicit(t *testing.T, segSize int) (*Allocator, []byte) {
	t.Helper()
	buf := make([]byte, segSize)
	a := New(Explicit)
	if err := a.Init(buf); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return a, buf
}

func off(t *testing.T, a *Allocator, ptr unsafe.Pointer) int {
	t.Helper()
	o, ok := a.ptrToOffset(ptr)
	if !ok {
		t.Fatalf("pointer not in segment")
	}
	return o
}

// Init then one allocation: the initial block splits, leaving a USED block
// of the requested size and a FREE remainder reaching segment end.
func TestAllocateInitialSplit(t *testing.T) {
	a, buf := newExplicit(t, 1024)

	p, err := a.Allocate(24)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	if got := off(t, a, p); got != headerSize {
		t.Fatalf("payload offset = %d, want %d", got, headerSize)
	}

	size, free := readHeader(buf, 0)
	if size != 24 || free {
		t.Fatalf("header at 0 = (%d, free=%v), want (24, false)", size, free)
	}

	wantRemainder := len(buf) - headerSize - 24 - headerSize
	size, free = readHeader(buf, headerSize+24)
	if size != wantRemainder || !free {
		t.Fatalf("header at %d = (%d, free=%v), want (%d, true)", headerSize+24, size, free, wantRemainder)
	}

	if err := a.walk(func(int, int, bool) bool { return true }); err != nil {
		t.Fatalf("walk: %v", err)
	}
}

// Minimum allocation: a zero-size request is clamped to the engine's
// minimum payload (16 bytes for the explicit engine, which needs room for
// two link words).
func TestAllocateMinimum(t *testing.T) {
	a, buf := newExplicit(t, 1024)

	p, err := a.Allocate(0)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	size, free := readHeader(buf, off(t, a, p)-headerSize)
	if size != explicitMinPayload || free {
		t.Fatalf("header = (%d, free=%v), want (%d, false)", size, free, explicitMinPayload)
	}
}

// Split threshold: consuming a free block's entire payload (remainder below
// the split threshold) leaves no free block behind, so the free list empties
// and a further allocation reports OutOfSpace.
func TestAllocateSplitThresholdExhaustsHeap(t *testing.T) {
	a, buf := newExplicit(t, 1024)

	whole := len(buf) - headerSize
	if _, err := a.Allocate(whole); err != nil {
		t.Fatalf("Allocate(whole): %v", err)
	}

	if a.free.head != noneOffset || a.free.count != 0 {
		t.Fatalf("free list = (head=%d, count=%d), want empty", a.free.head, a.free.count)
	}

	if _, err := a.Allocate(8); err == nil {
		t.Fatal("Allocate after exhaustion: want OutOfSpaceError, got nil")
	} else if _, ok := err.(*OutOfSpaceError); !ok {
		t.Fatalf("Allocate after exhaustion: got %T, want *OutOfSpaceError", err)
	}
}

// Right coalesce: freeing the higher-addressed block first, then the
// lower-addressed one, merges both frees and the original split remainder
// back into a single block spanning the whole segment.
func TestFreeRightCoalesce(t *testing.T) {
	a, buf := newExplicit(t, 1024)

	pa, err := a.Allocate(16)
	if err != nil {
		t.Fatalf("Allocate(a): %v", err)
	}
	pb, err := a.Allocate(16)
	if err != nil {
		t.Fatalf("Allocate(b): %v", err)
	}

	a.Free(pb)
	a.Free(pa)

	size, free := readHeader(buf, 0)
	if size != len(buf)-headerSize || !free {
		t.Fatalf("header at 0 = (%d, free=%v), want (%d, true)", size, free, len(buf)-headerSize)
	}

	if a.free.count != 1 || a.free.head != 0 || a.free.tail != 0 {
		t.Fatalf("free list = (head=%d, tail=%d, count=%d), want (0, 0, 1)",
			a.free.head, a.free.tail, a.free.count)
	}

	stats, err := a.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if stats.FreeBlocks != 1 || stats.UsedBlocks != 0 {
		t.Fatalf("stats = %+v, want 1 free block, 0 used", stats)
	}
}

// Freeing a block with a USED right neighbor does not coalesce; it is a
// plain insert into the free list, alongside the trailing split remainder.
func TestFreeNoCoalesceWhenRightNeighborUsed(t *testing.T) {
	a, buf := newExplicit(t, 1024)

	pa, err := a.Allocate(16)
	if err != nil {
		t.Fatalf("Allocate(a): %v", err)
	}
	if _, err := a.Allocate(16); err != nil {
		t.Fatalf("Allocate(b): %v", err)
	}

	a.Free(pa)

	size, free := readHeader(buf, 0)
	if size != 16 || !free {
		t.Fatalf("header at 0 = (%d, free=%v), want (16, true)", size, free)
	}
	if a.free.count != 2 {
		t.Fatalf("free list count = %d, want 2", a.free.count)
	}
}

func TestFreeOfNilIsNoop(t *testing.T) {
	a, buf := newExplicit(t, 1024)
	before := append([]byte(nil), buf...)

	a.Free(nil)

	for i := range buf {
		if buf[i] != before[i] {
			t.Fatalf("Free(nil) mutated byte %d", i)
		}
	}
}
