// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "unsafe"

// Allocate returns a pointer to a payload of at least roundUp(size) bytes,
// or an *OutOfSpaceError if no block large enough exists. size == 0 is
// served by the engine's minimum block.
func (a *Allocator) Allocate(size int) (unsafe.Pointer, error) {
	need := a.clampToMinPayload(size)
	if a.mode == Explicit {
		return a.allocateExplicit(need)
	}
	return a.allocateImplicit(need)
}

// allocateExplicit implements first-fit over the address-ordered free
// list, splitting the chosen block when the remainder can host a new
// minimum block, else absorbing the slack as internal padding.
func (a *Allocator) allocateExplicit(need int) (unsafe.Pointer, error) {
	off, size, found := a.free.find(a, need)
	if !found {
		return nil, &OutOfSpaceError{Requested: need, Largest: a.largestFree()}
	}

	prev, next := a.free.readLinks(a, off)
	leftover := size - need

	if leftover >= headerSize+a.minPayload {
		writeHeader(a.buf, off, need, false)

		newOff := off + headerSize + need
		writeHeader(a.buf, newOff, leftover-headerSize, true)
		a.free.replace(a, newOff, prev, next)
	} else {
		writeHeader(a.buf, off, size, false)
		a.free.unlink(a, off, prev, next)
	}

	return a.offsetToPtr(off + headerSize), nil
}

// allocateImplicit implements the restricted scan-based variant: a linear
// walk over every block, skipping used ones, taking the first free block
// that fits.
func (a *Allocator) allocateImplicit(need int) (unsafe.Pointer, error) {
	foundOff, foundSize := -1, 0
	a.walk(func(off, size int, free bool) bool {
		if free && size >= need {
			foundOff, foundSize = off, size
			return false
		}
		return true
	})

	if foundOff < 0 {
		return nil, &OutOfSpaceError{Requested: need, Largest: a.largestFree()}
	}

	leftover := foundSize - need
	if leftover > headerSize {
		writeHeader(a.buf, foundOff, need, false)

		newOff := foundOff + headerSize + need
		writeHeader(a.buf, newOff, leftover-headerSize, true)
	} else {
		writeHeader(a.buf, foundOff, foundSize, false)
	}

	return a.offsetToPtr(foundOff + headerSize), nil
}
