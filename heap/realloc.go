// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"unsafe"

	"github.com/cznic/mathutil"
)

// Reallocate changes the size of the allocation ptr refers to, preserving
// the first min(old_size, new_size) bytes of its payload. ptr == nil
// behaves like Allocate(newSize). On failure the original allocation is
// left valid and its preserved bytes unchanged, with one documented
// relaxation: the Explicit engine may have already absorbed
// right-adjacent free neighbors into ptr's block before the fallback
// allocation is attempted, so the block can end up larger (but never
// smaller, and never missing any of its original bytes) than before the
// failed call.
func (a *Allocator) Reallocate(ptr unsafe.Pointer, newSize int) (unsafe.Pointer, error) {
	if ptr == nil {
		return a.Allocate(newSize)
	}

	off, ok := a.ptrToOffset(ptr)
	if !ok {
		return nil, &invalidArgError{"Reallocate: pointer not in segment", ptr}
	}

	h := off - headerSize
	need := a.clampToMinPayload(newSize)

	if a.mode == Explicit {
		return a.reallocateExplicit(ptr, h, newSize, need)
	}
	return a.reallocateImplicit(ptr, h, newSize, need)
}

func (a *Allocator) reallocateExplicit(ptr unsafe.Pointer, h, rawNewSize, need int) (unsafe.Pointer, error) {
	origSize, _ := readHeader(a.buf, h)
	cur := origSize

	// Right-absorption loop: grow the working size by swallowing
	// right-adjacent free neighbors. The header at h is not rewritten
	// here; only the working size grows.
	for {
		rightOff, exists := a.rightOf(h, cur)
		if !exists {
			break
		}

		rsize, rfree := readHeader(a.buf, rightOff)
		if !rfree {
			break
		}

		prev, next := a.free.readLinks(a, rightOff)
		a.free.unlink(a, rightOff, prev, next)
		cur += headerSize + rsize
	}

	if cur >= need {
		if cur-need >= headerSize+a.minPayload {
			writeHeader(a.buf, h, need, false)

			newOff := h + headerSize + need
			writeHeader(a.buf, newOff, cur-need-headerSize, true)
			a.free.insert(a, newOff)
		} else {
			writeHeader(a.buf, h, cur, false)
		}

		return ptr, nil
	}

	// Not enough room even after absorption. Make the extended block a
	// single coherent USED block first, then fall back to
	// allocate-copy-free. Using origSize (not cur) as the copy length is
	// required for correctness: copying more would read bytes the caller
	// never wrote.
	writeHeader(a.buf, h, cur, false)

	newPtr, err := a.allocateExplicit(need)
	if err != nil {
		return nil, &ReallocFallbackError{Err: err}
	}

	newOff, _ := a.ptrToOffset(newPtr)
	copyLen := int(mathutil.MinInt64(int64(origSize), int64(rawNewSize)))
	copy(a.buf[newOff:newOff+copyLen], a.buf[h+headerSize:h+headerSize+copyLen])

	a.Free(ptr)
	return newPtr, nil
}

func (a *Allocator) reallocateImplicit(ptr unsafe.Pointer, h, rawNewSize, need int) (unsafe.Pointer, error) {
	curSize, _ := readHeader(a.buf, h)

	if curSize >= need {
		leftover := curSize - need
		if leftover > headerSize {
			writeHeader(a.buf, h, need, false)

			newOff := h + headerSize + need
			writeHeader(a.buf, newOff, leftover-headerSize, true)
		} else {
			writeHeader(a.buf, h, curSize, false)
		}

		return ptr, nil
	}

	newPtr, err := a.allocateImplicit(need)
	if err != nil {
		return nil, &ReallocFallbackError{Err: err}
	}

	newOff, _ := a.ptrToOffset(newPtr)
	copyLen := int(mathutil.MinInt64(int64(curSize), int64(rawNewSize)))
	copy(a.buf[newOff:newOff+copyLen], a.buf[h+headerSize:h+headerSize+copyLen])

	a.Free(ptr)
	return newPtr, nil
}
