// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Provider reserves the backing region an Allocator is initialized on. It
// is deliberately tiny: providers acquire a fixed-size region once and
// release it once; growing or partially returning a region to the OS is
// out of scope for this engine.
type Provider interface {
	// Segment returns the backing byte slice, suitable for Allocator.Init.
	Segment() []byte

	// Close releases the region. It is a no-op for providers whose
	// memory is ordinary Go-managed storage.
	Close() error
}

// BytesProvider is the portable default Provider: a plain, zeroed Go byte
// slice. It is what the script-driven test harness (cmd/allocsim) uses.
type BytesProvider struct {
	buf []byte
}

// NewBytesSegment reserves size bytes of ordinary Go-managed memory.
func NewBytesSegment(size int) *BytesProvider {
	return &BytesProvider{buf: make([]byte, size)}
}

func (p *BytesProvider) Segment() []byte { return p.buf }
func (p *BytesProvider) Close() error    { return nil }
