// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"flag"
	"math/rand"
	"sort"
	"testing"
	"unsafe"

	"github.com/cznic/sortutil"
)

var testRndN = flag.Int("heap.rnd.n", 500, "number of operations per pass in TestAllocatorRnd")

// live tracks one outstanding allocation for the randomized property test:
// the bytes it is supposed to hold, keyed by an arbitrary stable id so
// iteration order can be made deterministic.
type live struct {
	ptr unsafe.Pointer
	buf []byte
}

// stableIDs returns the keys of m in ascending order, so iteration over a
// map of live allocations is reproducible across runs.
func stableIDs(m map[int64]*live) []int64 {
	s := make(sortutil.Int64Slice, 0, len(m))
	for k := range m {
		s = append(s, k)
	}
	sort.Sort(s)
	return s
}

// TestAllocatorRnd is a paranoid property test: it drives Allocate, Free and
// Reallocate with random sizes and contents, re-running Validate after every
// single call, and checks every live allocation's bytes against what was
// last written into it.
func TestAllocatorRnd(t *testing.T) {
	N := *testRndN

	for _, mode := range []Mode{Explicit, Implicit} {
		rng := rand.New(rand.NewSource(42))

		a, buf := newAllocatorForMode(t, mode, 1<<20)
		ref := map[int64]*live{}
		var nextID int64

		validate := func(step string) {
			t.Helper()
			if _, err := a.Validate(); err != nil {
				t.Fatalf("%s: Validate: %v", step, err)
			}
		}

		checkLive := func(step string) {
			t.Helper()
			for id, l := range ref {
				o, ok := a.ptrToOffset(l.ptr)
				if !ok {
					t.Fatalf("%s: id %d: pointer no longer in segment", step, id)
				}
				got := buf[o : o+len(l.buf)]
				for i := range l.buf {
					if got[i] != l.buf[i] {
						t.Fatalf("%s: id %d: byte %d = %#x, want %#x", step, id, i, got[i], l.buf[i])
					}
				}
			}
		}

		for pass := 0; pass < 3; pass++ {
			// A) allocate N blocks of random size with random content.
			for i := 0; i < N; i++ {
				size := rng.Intn(256)
				b := make([]byte, size)
				for j := range b {
					b[j] = byte(rng.Int())
				}

				p, err := a.Allocate(size)
				if err != nil {
					continue // the segment is finite; OutOfSpace is expected eventually
				}

				if size > 0 {
					o, _ := a.ptrToOffset(p)
					copy(buf[o:o+size], b)
				}

				ref[nextID] = &live{ptr: p, buf: b}
				nextID++
				validate("A")
			}
			checkLive("A")

			// B) free roughly a third of the live blocks.
			for _, id := range stableIDs(ref) {
				if rng.Intn(3) != 0 {
					continue
				}
				a.Free(ref[id].ptr)
				delete(ref, id)
				validate("B")
			}
			checkLive("B")

			// C) reallocate every remaining block to a new random size,
			// preserving min(old, new) bytes.
			for _, id := range stableIDs(ref) {
				l := ref[id]
				newSize := rng.Intn(256)

				newPtr, err := a.Reallocate(l.ptr, newSize)
				if err != nil {
					continue // ReallocFallbackFailure leaves the original intact
				}

				keep := newSize
				if len(l.buf) < keep {
					keep = len(l.buf)
				}
				want := append([]byte(nil), l.buf[:keep]...)

				o, _ := a.ptrToOffset(newPtr)
				got := append([]byte(nil), buf[o:o+keep]...)
				for i := range want {
					if got[i] != want[i] {
						t.Fatalf("C) id %d: byte %d = %#x, want %#x", id, i, got[i], want[i])
					}
				}

				newBuf := make([]byte, newSize)
				copy(newBuf, want)
				for j := keep; j < newSize; j++ {
					newBuf[j] = byte(rng.Int())
				}
				copy(buf[o+keep:o+newSize], newBuf[keep:])

				ref[id] = &live{ptr: newPtr, buf: newBuf}
				validate("C")
			}
			checkLive("C")

			// D) free everything left. With left-coalescing absent, freeing
			// in this (address-unordered) sequence is not guaranteed to
			// re-merge down to a single block - only that the heap stays
			// internally consistent and fully reclaimed (UsedBlocks == 0).
			for _, id := range stableIDs(ref) {
				a.Free(ref[id].ptr)
				delete(ref, id)
				validate("D")
			}

			stats, err := a.Validate()
			if err != nil {
				t.Fatalf("D) Validate: %v", err)
			}
			if stats.UsedBlocks != 0 {
				t.Fatalf("D) pass %d: stats = %+v, want 0 used blocks", pass, stats)
			}
		}
	}
}

func newAllocatorForMode(t *testing.T, mode Mode, segSize int) (*Allocator, []byte) {
	t.Helper()
	buf := make([]byte, segSize)
	a := New(mode)
	if err := a.Init(buf); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return a, buf
}
