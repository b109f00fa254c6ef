// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package heap implements "raw" storage space management (allocation and
deallocation) over a single, caller-supplied contiguous byte segment.

The terms MUST or MUST NOT, if/where used in the documentation of this
package, written in all caps as seen here, are a requirement for any possible
alternative implementations aiming for compatibility with this one.

Segment

A segment is a linear, contiguous byte range `[start, end)`, supplied once by
the caller (or a Provider, see provider.go) at Init time and never grown. The
segment is partitioned, at all times, into a sequence of blocks laid out
contiguously from start to end.

Blocks and headers

A block is a header followed by a payload. The header is exactly one 8-byte
word encoding the payload size (a multiple of 8) in its high bits and a
free/used flag in its low 3 bits:

	word == size | statusBits
	statusBits == 0b111 for a free block, 0b000 for a used one

A block's payload immediately follows its header and is itself a multiple of
8 bytes, at least minPayload(mode) bytes long.

Free blocks and the free list

When a block is free, the first two words of its payload hold the offsets of
the previous and next free blocks in the address-ordered doubly linked free
list, or noneOffset at either end of the list. When a block is used, those
same bytes are caller-owned and MUST NOT be inspected.

Two engine modes

Allocator runs in one of two modes, selected at construction:

  - Explicit: the engine described above in full - first-fit over an
    address-ordered free list, splitting, rightward coalescing on Free, and
    in-place reallocation via right-neighbor absorption.
  - Implicit: a restricted mode of the same engine with no free list.
    Allocate performs a linear scan of every block via the walker, skipping
    used ones; Free only flips the status bit; Reallocate only considers the
    block already in hand.

Handles returned to callers

Allocate and Reallocate return an unsafe.Pointer into the segment's backing
array - materialized at the call boundary from an internal byte offset, never
cached as a bare uintptr across calls. This preserves the "pointer returned to
user" contract of a C-like allocator while keeping every stored reference an
offset, the same translation lldb.Allocator performs between file handles and
absolute offsets.

No method in this package is safe for concurrent use. A caller needing
concurrent access must serialize calls to a single Allocator itself, for
example with its own mutex; the engine does no internal locking.
*/
package heap
