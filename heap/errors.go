// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "fmt"

// InitError reports that Init was refused: a nil/zero-length segment or one
// too small to host a single minimum block plus its header. The allocator
// remains unusable until Init succeeds.
type InitError struct {
	Reason string
	Size   int
}

func (e *InitError) Error() string {
	return fmt.Sprintf("heap: init refused: %s (segment size %d)", e.Reason, e.Size)
}

// OutOfSpaceError reports that no free block large enough to satisfy a
// request exists. The heap is left unchanged.
type OutOfSpaceError struct {
	Requested int // bytes requested, after rounding
	Largest   int // largest free block payload found, in bytes (0 if none)
}

func (e *OutOfSpaceError) Error() string {
	return fmt.Sprintf("heap: out of space: requested %d bytes, largest free block is %d bytes", e.Requested, e.Largest)
}

// ReallocFallbackError wraps the failure of Reallocate's internal
// allocate-copy-free fallback. The original pointer remains valid and its
// contents unchanged; only its right-adjacent free neighbors, if any, have
// already been absorbed into it.
type ReallocFallbackError struct {
	Err error
}

func (e *ReallocFallbackError) Error() string {
	return fmt.Sprintf("heap: reallocate fallback failed: %s", e.Err)
}

func (e *ReallocFallbackError) Unwrap() error { return e.Err }

// ConsistencyError reports a structural problem found by Validate. It never
// originates from Allocate/Free/Reallocate.
type ConsistencyError struct {
	Invariant string // which check failed, e.g. "header-status", "free-list"
	Offset    int    // byte offset into the segment where the problem was observed
	Detail    string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("heap: consistency fault %s at offset %#x: %s", e.Invariant, e.Offset, e.Detail)
}

// invalidArgError mirrors lldb's ErrINVAL: a simple typed argument error for
// API misuse that is cheap to check for (as opposed to heap corruption,
// which is ConsistencyError's domain).
type invalidArgError struct {
	Msg string
	Arg interface{}
}

func (e *invalidArgError) Error() string { return fmt.Sprintf("heap: %s: %v", e.Msg, e.Arg) }
