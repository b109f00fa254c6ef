// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// freeList is the doubly linked, address-ordered list of FREE blocks used
// by the explicit engine. head/tail/count name the lowest-addressed free
// block, the highest-addressed one, and the list length. Link words live
// in-band, in the first two words of a free block's payload.
type freeList struct {
	head, tail int // header offsets, or noneOffset
	count      int
}

func newFreeList() *freeList {
	return &freeList{head: noneOffset, tail: noneOffset}
}

func (fl *freeList) readLinks(a *Allocator, off int) (prev, next int) {
	p := off + headerSize
	return readOffset(a.buf, p), readOffset(a.buf, p+wordSize)
}

func (fl *freeList) writeLinks(a *Allocator, off, prev, next int) {
	p := off + headerSize
	writeOffset(a.buf, p, prev)
	writeOffset(a.buf, p+wordSize, next)
}

// find returns the first (lowest address) free block whose payload size is
// >= need, implementing the explicit engine's first-fit policy.
func (fl *freeList) find(a *Allocator, need int) (off, size int, found bool) {
	for cur := fl.head; cur != noneOffset; {
		sz, _ := readHeader(a.buf, cur)
		if sz >= need {
			return cur, sz, true
		}

		_, next := fl.readLinks(a, cur)
		cur = next
	}
	return 0, 0, false
}

// unlink removes the node at off, whose free-list neighbors are prev and
// next, from the list.
func (fl *freeList) unlink(a *Allocator, off, prev, next int) {
	switch {
	case prev == noneOffset && next == noneOffset:
		fl.head, fl.tail = noneOffset, noneOffset
	case prev == noneOffset:
		fl.writeLinks(a, next, noneOffset, fl.readNext(a, next))
		fl.head = next
	case next == noneOffset:
		fl.writeLinks(a, prev, fl.readPrev(a, prev), noneOffset)
		fl.tail = prev
	default:
		fl.writeLinks(a, prev, fl.readPrev(a, prev), next)
		fl.writeLinks(a, next, prev, fl.readNext(a, next))
	}
	fl.count--
	_ = off
}

func (fl *freeList) readPrev(a *Allocator, off int) int { p, _ := fl.readLinks(a, off); return p }
func (fl *freeList) readNext(a *Allocator, off int) int { _, n := fl.readLinks(a, off); return n }

// removeNode unlinks the free block at off, reading its current
// neighbors first.
func (fl *freeList) removeNode(a *Allocator, off int) {
	prev, next := fl.readLinks(a, off)
	fl.unlink(a, off, prev, next)
}

// insert adds a brand new free block at off (its header already written
// as FREE by the caller) into the list, keeping
// address order. O(F) in the number of free blocks.
func (fl *freeList) insert(a *Allocator, off int) {
	prev, cur := noneOffset, fl.head
	for cur != noneOffset && cur < off {
		prev = cur
		cur = fl.readNext(a, cur)
	}

	fl.writeLinks(a, off, prev, cur)
	if prev == noneOffset {
		fl.head = off
	} else {
		fl.writeLinks(a, prev, fl.readPrev(a, prev), off)
	}
	if cur == noneOffset {
		fl.tail = off
	} else {
		fl.writeLinks(a, cur, off, fl.readNext(a, cur))
	}
	fl.count++
}

// replace swaps the node at oldOff, whose neighbors were prev and next,
// for a node at newOff occupying the very same list position. Used by
// Allocate's split and Free's right-coalesce, where the new node's address
// always falls strictly between prev and next. O(1).
func (fl *freeList) replace(a *Allocator, newOff, prev, next int) {
	fl.writeLinks(a, newOff, prev, next)
	if prev == noneOffset {
		fl.head = newOff
	} else {
		fl.writeLinks(a, prev, fl.readPrev(a, prev), newOff)
	}
	if next == noneOffset {
		fl.tail = newOff
	} else {
		fl.writeLinks(a, next, newOff, fl.readNext(a, next))
	}
}
