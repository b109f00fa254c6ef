// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "unsafe"

// Free releases the block ptr refers to. ptr == nil (the "none" handle) is
// a no-op. ptr must have been obtained from Allocate/Reallocate and still
// be valid; passing anything else is undefined behavior and is not
// detected.
func (a *Allocator) Free(ptr unsafe.Pointer) {
	off, ok := a.ptrToOffset(ptr)
	if !ok {
		return
	}

	h := off - headerSize
	if a.mode == Explicit {
		a.freeExplicit(h)
	} else {
		a.freeImplicit(h)
	}
}

// freeExplicit implements coalesce-right-then-insert. Left-coalescing is
// deliberately not performed - see README.md for the resulting
// fragmentation trade-off.
func (a *Allocator) freeExplicit(h int) {
	size, _ := readHeader(a.buf, h)

	if rightOff, exists := a.rightOf(h, size); exists {
		rsize, rfree := readHeader(a.buf, rightOff)
		if rfree {
			// The right neighbor's list slot is taken over directly by the
			// merged block at h, the same way Allocate's split reuses a
			// chosen node's slot: reading prev/next here and handing them
			// to replace, with no unlink in between, keeps the free count
			// unchanged (one free block still occupies that position, just
			// bigger and at a new address).
			prev, next := a.free.readLinks(a, rightOff)

			writeHeader(a.buf, h, size+headerSize+rsize, true)
			a.free.replace(a, h, prev, next)
			return
		}
	}

	writeHeader(a.buf, h, size, true)
	a.free.insert(a, h)
}

// freeImplicit just flips the status bit: no list, no coalescing.
func (a *Allocator) freeImplicit(h int) {
	size, _ := readHeader(a.buf, h)
	writeHeader(a.buf, h, size, true)
}
