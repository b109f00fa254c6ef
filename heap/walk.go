// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// rightOf returns the header offset of the block immediately to the right
// of the block at off with the given payload size, and whether such a
// block exists within the segment (false at the tail of the heap).
func (a *Allocator) rightOf(off, size int) (roff int, exists bool) {
	roff = off + headerSize + size
	return roff, roff < len(a.buf)
}

// walk visits every block from segment start to end, in address order,
// calling visit(off, size, free) for each. It stops early, returning nil,
// if visit returns false. It returns a *ConsistencyError if the walk would
// step past segment end - it never panics on a corrupted heap.
func (a *Allocator) walk(visit func(off, size int, free bool) bool) error {
	end := len(a.buf)
	off := 0
	for off < end {
		if off+headerSize > end {
			return &ConsistencyError{Invariant: "walk-termination", Offset: off, Detail: "header runs past segment end"}
		}

		size, free := readHeader(a.buf, off)
		if !visit(off, size, free) {
			return nil
		}

		next := off + headerSize + size
		if next <= off {
			return &ConsistencyError{Invariant: "walk-termination", Offset: off, Detail: "non-increasing walk step"}
		}

		off = next
	}

	if off != end {
		return &ConsistencyError{Invariant: "walk-termination", Offset: off, Detail: "walk did not terminate at segment end"}
	}

	return nil
}

// largestFree reports the payload size, in bytes, of the largest free
// block currently in the heap, for OutOfSpaceError diagnostics. It is O(F)
// in Explicit mode (list length) and O(B) in Implicit mode (full walk).
func (a *Allocator) largestFree() int {
	best := 0
	if a.mode == Explicit {
		for cur := a.free.head; cur != noneOffset; {
			sz, _ := readHeader(a.buf, cur)
			if sz > best {
				best = sz
			}
			_, next := a.free.readLinks(a, cur)
			cur = next
		}
		return best
	}

	a.walk(func(_, size int, free bool) bool {
		if free && size > best {
			best = size
		}
		return true
	})
	return best
}
