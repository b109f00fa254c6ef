// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "encoding/binary"

const (
	wordSize = 8 // alignment and header width, in bytes

	statusMask = 0x7 // low 3 bits of the header word
	freeBits   = 0x7 // 0b111
	usedBits   = 0x0 // 0b000
)

// headerSize is the fixed width of a block header.
const headerSize = wordSize

// encodeHeader packs size (a multiple of wordSize) and the free/used flag
// into a single header word: word == size | statusBits.
func encodeHeader(size int, free bool) uint64 {
	w := uint64(size)
	if free {
		w |= freeBits
	} else {
		w |= usedBits
	}
	return w
}

// decodeHeader reverses encodeHeader.
func decodeHeader(word uint64) (size int, free bool) {
	return int(word &^ statusMask), word&statusMask == freeBits
}

// rawHeaderWord returns the undecoded header word at off, for callers (the
// validator) that need to distinguish a corrupt status pattern from a
// valid FREE/USED one.
func rawHeaderWord(buf []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(buf[off : off+wordSize])
}

// readHeader reads the header word at byte offset off in buf.
func readHeader(buf []byte, off int) (size int, free bool) {
	return decodeHeader(binary.LittleEndian.Uint64(buf[off : off+wordSize]))
}

// writeHeader writes the header word at byte offset off in buf.
func writeHeader(buf []byte, off, size int, free bool) {
	binary.LittleEndian.PutUint64(buf[off:off+wordSize], encodeHeader(size, free))
}

// readOffset reads an 8-byte free-list link word (a byte offset, or
// noneOffset) at off.
func readOffset(buf []byte, off int) int {
	return int(int64(binary.LittleEndian.Uint64(buf[off : off+wordSize])))
}

// writeOffset writes an 8-byte free-list link word at off.
func writeOffset(buf []byte, off, value int) {
	binary.LittleEndian.PutUint64(buf[off:off+wordSize], uint64(int64(value)))
}

// roundUp rounds r up to the next multiple of wordSize. Overflow of r is
// not defended against.
func roundUp(r int) int {
	return (r + wordSize - 1) &^ (wordSize - 1)
}
