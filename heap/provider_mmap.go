// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package heap

import "golang.org/x/sys/unix"

// MappedProvider is a Provider backed by an anonymous, zero-filled OS
// memory mapping, grounded on alewtschuk/balloc's buddyInit/buddyDestroy -
// the same mmap/munmap pair, used here to provision the allocator's fixed
// segment instead of a buddy pool.
type MappedProvider struct {
	buf []byte
}

// NewMappedSegment reserves size bytes via mmap(MAP_ANONYMOUS|MAP_PRIVATE).
// The mapping is released by Close, and MUST NOT be used afterwards.
func NewMappedSegment(size int) (*MappedProvider, error) {
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, err
	}

	return &MappedProvider{buf: buf}, nil
}

func (p *MappedProvider) Segment() []byte { return p.buf }

func (p *MappedProvider) Close() error {
	if p.buf == nil {
		return nil
	}

	err := unix.Munmap(p.buf)
	p.buf = nil
	return err
}
