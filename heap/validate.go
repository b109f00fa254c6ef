// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// AllocStats is an optional, read-only snapshot of heap occupancy returned
// by a successful Validate, mirroring lldb.AllocStats.
type AllocStats struct {
	TotalBlocks    int
	UsedBlocks     int
	FreeBlocks     int
	UsedBytes      int
	FreeBytes      int
	FreeListLength int // -1 in Implicit mode, which keeps no free list
}

// Validate runs the heap walker and checks every structural invariant the
// engine depends on. It is read-only and may be called between any two
// public calls. On success it returns a populated *AllocStats; on failure
// it returns a *ConsistencyError naming the violated check.
func (a *Allocator) Validate() (*AllocStats, error) {
	stats := &AllocStats{FreeListLength: -1}
	var walkErr error

	err := a.walk(func(off, size int, free bool) bool {
		word := rawHeaderWord(a.buf, off)
		sb := word & statusMask
		if sb != freeBits && sb != usedBits {
			walkErr = &ConsistencyError{Invariant: "header-status", Offset: off, Detail: "header status bits are neither FREE nor USED"}
			return false
		}

		if size < a.minPayload || size%wordSize != 0 {
			walkErr = &ConsistencyError{Invariant: "block-size", Offset: off, Detail: "block payload smaller than the minimum, or misaligned"}
			return false
		}

		stats.TotalBlocks++
		if free {
			stats.FreeBlocks++
			stats.FreeBytes += size
		} else {
			stats.UsedBlocks++
			stats.UsedBytes += size
		}

		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	if err != nil {
		return nil, err // walk-termination, raised directly by walk
	}

	if a.mode == Explicit {
		if err := a.validateFreeList(stats); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// freeListOffsetInBounds reports whether off is a byte offset that can
// safely host a header plus the two in-payload link words without running
// past segment end - the check every free-list link other than the none
// sentinel must pass before it is dereferenced. It returns false for
// noneOffset, so callers test for the sentinel first.
func (a *Allocator) freeListOffsetInBounds(off int) bool {
	return off >= 0 && off <= len(a.buf)-headerSize-2*wordSize
}

// validateFreeList checks that the free list, traversed both ways, visits
// exactly the same blocks - all FREE, in strictly ascending address order,
// with prev/next mutually consistent - and that its length matches both
// the maintained count and the FREE count the walker just produced. Every
// link is range-checked before it is dereferenced, and each traversal is
// bounded to at most count+1 steps, so a corrupted link - whether it
// points outside the segment or closes a cycle that never reaches the
// none sentinel - is reported as a *ConsistencyError instead of panicking
// or hanging.
func (a *Allocator) validateFreeList(stats *AllocStats) error {
	fl := a.free
	limit := fl.count + 1

	var forward []int
	prevSeen := noneOffset
	cur := fl.head
	for steps := 0; cur != noneOffset; steps++ {
		if steps >= limit {
			return &ConsistencyError{Invariant: "free-list", Offset: cur, Detail: "forward traversal did not reach the none sentinel within the maintained count (cycle or miscounted list)"}
		}
		if !a.freeListOffsetInBounds(cur) {
			return &ConsistencyError{Invariant: "free-list", Offset: cur, Detail: "free list link points outside the segment"}
		}

		size, free := readHeader(a.buf, cur)
		if !free {
			return &ConsistencyError{Invariant: "free-list", Offset: cur, Detail: "free list node is not FREE"}
		}
		if size < a.minPayload {
			return &ConsistencyError{Invariant: "free-list", Offset: cur, Detail: "free list node below minimum payload"}
		}
		if len(forward) > 0 && cur <= forward[len(forward)-1] {
			return &ConsistencyError{Invariant: "free-list", Offset: cur, Detail: "free list is not strictly address-ascending"}
		}

		p, n := fl.readLinks(a, cur)
		if p != prevSeen {
			return &ConsistencyError{Invariant: "free-list", Offset: cur, Detail: "prev link inconsistent with traversal"}
		}

		forward = append(forward, cur)
		prevSeen = cur
		cur = n
	}
	if prevSeen != fl.tail {
		return &ConsistencyError{Invariant: "free-list", Offset: fl.tail, Detail: "tail does not match forward traversal end"}
	}

	var backward []int
	nextSeen := noneOffset
	cur = fl.tail
	for steps := 0; cur != noneOffset; steps++ {
		if steps >= limit {
			return &ConsistencyError{Invariant: "free-list", Offset: cur, Detail: "reverse traversal did not reach the none sentinel within the maintained count (cycle or miscounted list)"}
		}
		if !a.freeListOffsetInBounds(cur) {
			return &ConsistencyError{Invariant: "free-list", Offset: cur, Detail: "free list link points outside the segment"}
		}

		p, n := fl.readLinks(a, cur)
		if n != nextSeen {
			return &ConsistencyError{Invariant: "free-list", Offset: cur, Detail: "next link inconsistent with reverse traversal"}
		}
		backward = append(backward, cur)
		nextSeen = cur
		cur = p
	}

	if len(forward) != len(backward) {
		return &ConsistencyError{Invariant: "free-list", Offset: fl.head, Detail: "forward and reverse traversal lengths differ"}
	}
	for i, off := range forward {
		if backward[len(backward)-1-i] != off {
			return &ConsistencyError{Invariant: "free-list", Offset: off, Detail: "forward and reverse traversal visit different blocks"}
		}
	}

	if len(forward) != fl.count {
		return &ConsistencyError{Invariant: "free-list", Offset: fl.head, Detail: "free list length does not match maintained count"}
	}
	if len(forward) != stats.FreeBlocks {
		return &ConsistencyError{Invariant: "free-list", Offset: fl.head, Detail: "free list length does not match walker's FREE block count"}
	}

	stats.FreeListLength = len(forward)
	return nil
}
