// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import "fmt"

const (
	// nodeBytes is the size of one entry in a document slab.
	nodeBytes = 40

	// slotBytes is the region space reserved per node when strings are
	// copied out of the input: the node itself and two bytes of text.
	slotBytes = nodeBytes + 2
)

// A Region is a fixed memory budget that a parse or a write draws its
// storage from instead of allocating as needed. A region may be reused for
// any number of sequential calls, but a document parsed into a region holds
// it until the document is released.
//
// The budget bounds two separate stores, each allocated once on first use:
// the node slab of a parsed document, and a byte buffer shared by the
// decoded text of a document and the output of a write. A region of size n
// therefore retains at most 2n bytes.
//
// A Region is not safe for concurrent use.
type Region struct {
	size int
	busy bool

	nodes []node // capacity size/nodeBytes
	buf   []byte // capacity size
}

// NewRegion constructs a region with a budget of size bytes.
// Use [RecommendedBufferSize] to choose a size for a given input.
func NewRegion(size int) (*Region, error) {
	if size < slotBytes {
		return nil, fmt.Errorf("region size %d is less than the minimum %d", size, slotBytes)
	}
	return &Region{size: size}, nil
}

// Size reports the budget of r in bytes.
func (r *Region) Size() int { return r.size }

// Busy reports whether r is held by a live document.
func (r *Region) Busy() bool { return r.busy }

// partition returns empty node and text buffers carved from the budget of r.
// When insitu is true strings stay in the input, so the whole budget is given
// to nodes; otherwise each node is paired with two bytes of text.
func (r *Region) partition(insitu bool) ([]node, []byte) {
	if r.nodes == nil {
		r.nodes = make([]node, 0, r.size/nodeBytes)
	}
	if insitu {
		return r.nodes[:0], nil
	}
	k := r.size / slotBytes
	return r.nodes[:0:k], r.bytes()[:0:2*k]
}

// output returns an empty output buffer whose capacity is the budget of r.
// It shares storage with the text of parsed documents, so it must not be
// used while r is busy.
func (r *Region) output() []byte { return r.bytes()[:0] }

func (r *Region) bytes() []byte {
	if r.buf == nil {
		r.buf = make([]byte, 0, r.size)
	}
	return r.buf
}

// RecommendedBufferSize returns a region size sufficient to parse any input
// of up to maxInput bytes with the given flags.
func RecommendedBufferSize(maxInput int, flags ReadFlags) int {
	// A value of n bytes contains at most n/2+1 nodes ("[0,0,...]"), and its
	// strings decode to at most n bytes.
	n := max(maxInput, 0)/2 + 2
	if flags&ReadInSitu != 0 {
		return nodeBytes * n
	}
	return slotBytes * n
}
