// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"unsafe"

	"github.com/cznic/mathutil"
)

// Mode selects which engine variant an Allocator runs: the full explicit
// free-list engine, or the restricted implicit scan-based one. See doc.go.
type Mode int

const (
	Explicit Mode = iota
	Implicit
)

const (
	explicitMinPayload = 16 // two link words
	implicitMinPayload = 8

	// noneOffset is the free-list "no block" sentinel. 0 is a valid block
	// offset (the segment's first block), so it cannot double as "none".
	noneOffset = -1
)

// Allocator manages allocation over a single contiguous byte segment. The
// zero value is not usable; construct with New and call Init before any
// other method.
type Allocator struct {
	mode       Mode
	buf        []byte
	minPayload int
	free       *freeList // nil in Implicit mode
}

// New returns an Allocator for the given mode. Call Init to bind it to a
// segment before use.
func New(mode Mode) *Allocator {
	a := &Allocator{mode: mode}
	if mode == Explicit {
		a.minPayload = explicitMinPayload
	} else {
		a.minPayload = implicitMinPayload
	}
	return a
}

// Init (re)initializes the allocator on buf. Re-init is allowed and resets
// all state; any pointers returned by a previous Init become invalid and
// MUST NOT be used afterwards. Init fails, leaving the allocator unusable,
// if buf is nil or too small to host one minimum block plus its header.
func (a *Allocator) Init(buf []byte) error {
	need := headerSize + a.minPayload
	if buf == nil || len(buf) < need {
		return &InitError{Reason: "segment too small or nil", Size: len(buf)}
	}

	a.buf = buf
	payload := len(buf) - headerSize
	writeHeader(a.buf, 0, payload, true)

	if a.mode == Explicit {
		a.free = newFreeList()
		writeOffset(a.buf, headerSize, noneOffset) // prev
		writeOffset(a.buf, headerSize+wordSize, noneOffset)
		a.free.head, a.free.tail, a.free.count = 0, 0, 1
	} else {
		a.free = nil
	}
	return nil
}

// Size returns the total segment size in bytes, including headers.
func (a *Allocator) Size() int { return len(a.buf) }

// clampToMinPayload rounds up r and floors the result at the engine's
// minimum payload size. Zero is treated as minimum.
func (a *Allocator) clampToMinPayload(r int) int {
	return int(mathutil.MaxInt64(int64(roundUp(r)), int64(a.minPayload)))
}

// offsetToPtr materializes a user-facing pointer from a payload offset. The
// conversion happens fresh at the call boundary, per doc.go's "handles
// returned to callers" note - never cached as a bare uintptr.
func (a *Allocator) offsetToPtr(payloadOffset int) unsafe.Pointer {
	return unsafe.Pointer(&a.buf[payloadOffset])
}

// ptrToOffset recovers the payload offset of a pointer previously returned
// by Allocate/Reallocate. ok is false for a nil pointer or one outside the
// segment.
func (a *Allocator) ptrToOffset(ptr unsafe.Pointer) (off int, ok bool) {
	if ptr == nil || len(a.buf) == 0 {
		return 0, false
	}

	base := uintptr(unsafe.Pointer(&a.buf[0]))
	p := uintptr(ptr)
	end := base + uintptr(len(a.buf))
	if p < base || p >= end {
		return 0, false
	}

	return int(p - base), true
}
