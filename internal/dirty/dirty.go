// Copyright 2026 The ledgrid Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dirty tracks which LED cells changed since the last repaint.
package dirty

import (
	"math/bits"
	"sync/atomic"
)

// Set is a bitmap with one bit per cell index, packed into uint64 words.
// All methods are safe for concurrent use without external synchronization,
// so a sink may mark cells from its write path while a repaint drains them.
type Set struct {
	// words holds the bitmap. Word index = cell / 64, bit = cell % 64.
	words []atomic.Uint64

	// n is the number of tracked cells.
	n int
}

// New creates a tracker for n cells, all clean.
// Returns nil if n is not positive.
func New(n int) *Set {
	if n <= 0 {
		return nil
	}
	return &Set{
		words: make([]atomic.Uint64, (n+63)/64),
		n:     n,
	}
}

// Len returns the number of tracked cells.
func (s *Set) Len() int {
	return s.n
}

// Mark marks cell i as dirty. Out-of-range indices are ignored.
func (s *Set) Mark(i int) {
	if i < 0 || i >= s.n {
		return
	}
	s.words[i/64].Or(1 << (i & 63))
}

// MarkAll marks every cell as dirty.
func (s *Set) MarkAll() {
	full := s.n / 64
	for i := 0; i < full; i++ {
		s.words[i].Store(^uint64(0))
	}
	if rem := s.n % 64; rem > 0 {
		s.words[full].Store((uint64(1) << rem) - 1)
	}
}

// Clear marks every cell as clean.
func (s *Set) Clear() {
	for i := range s.words {
		s.words[i].Store(0)
	}
}

// IsDirty reports whether cell i is dirty. Out-of-range indices are clean.
func (s *Set) IsDirty(i int) bool {
	if i < 0 || i >= s.n {
		return false
	}
	return s.words[i/64].Load()&(1<<(i&63)) != 0
}

// Count returns the number of dirty cells.
func (s *Set) Count() int {
	count := 0
	for i := range s.words {
		count += bits.OnesCount64(s.words[i].Load())
	}
	return count
}

// Drain calls fn for every dirty cell in ascending order and clears them.
// Each word is swapped to zero atomically, so a Mark racing with Drain is
// either visited now or left for the next Drain.
func (s *Set) Drain(fn func(i int)) {
	for w := range s.words {
		word := s.words[w].Swap(0)
		for word != 0 {
			b := bits.TrailingZeros64(word)
			if idx := w*64 + b; idx < s.n {
				fn(idx)
			}
			word &^= 1 << b
		}
	}
}
