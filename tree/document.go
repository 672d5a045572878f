// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"fmt"
	"iter"
)

// A span locates a run of bytes in the text buffer of a document.
type span struct{ off, n int32 }

// A node is one entry in the slab of a Document. Nodes contain no pointers;
// strings and keys are stored by reference to the document text.
//
// The children of a container at index i begin at i+1, and the next sibling
// of the node at index j is at j+size.
type node struct {
	bits    uint64 // number payload, or 1 for true
	key     span   // member key, for children of an object
	str     span   // string payload
	count   int32  // number of children, for containers
	size    int32  // slab entries in this subtree, including the node itself
	kind    Kind
	numKind NumKind
	last    bool // last child of its parent
}

// A Document is an immutable JSON value tree produced by [Parse].
//
// A Document is not safe for concurrent use. Its nodes remain valid until
// Release is called.
type Document struct {
	nodes  []node
	text   []byte
	gen    uint32
	region *Region
}

// Root returns the root node of d.
func (d *Document) Root() Node {
	if len(d.nodes) == 0 {
		panic("tree: Root of a released document")
	}
	return Node{doc: d, id: 0, gen: d.gen}
}

// Len reports the number of nodes in d.
func (d *Document) Len() int { return len(d.nodes) }

// Release discards the contents of d and returns its region, if any, for
// reuse. Any use of a Node from d after Release panics. Calling Release more
// than once is harmless.
func (d *Document) Release() {
	if d.nodes == nil {
		return
	}
	if d.region != nil {
		d.region.busy = false
		d.region = nil
	}
	d.nodes, d.text = nil, nil
	d.gen++
}

// A Node is a handle to one value in a Document. The zero Node has kind None
// and no content.
type Node struct {
	doc *Document
	id  int32
	gen uint32
}

func (n Node) get() *node {
	if n.doc.gen != n.gen {
		panic(fmt.Sprintf("tree: use of node %d after its document was released", n.id))
	}
	return &n.doc.nodes[n.id]
}

func (n Node) text(s span) []byte { return n.doc.text[s.off : s.off+s.n] }

// IsValid reports whether n refers to a value.
func (n Node) IsValid() bool { return n.doc != nil }

// Kind reports the kind of n.
func (n Node) Kind() Kind {
	if n.doc == nil {
		return None
	}
	return n.get().kind
}

// Bool reports the value of a Bool node, and false for any other kind.
func (n Node) Bool() bool {
	p := n.get()
	return p.kind == Bool && p.bits != 0
}

// String returns the contents of a Str node, and "" for any other kind.
func (n Node) String() string {
	p := n.get()
	if p.kind != Str {
		return ""
	}
	return string(n.text(p.str))
}

// Number returns the value of a Num node, and zero for any other kind.
func (n Node) Number() Number {
	p := n.get()
	if p.kind != Num {
		return Number{}
	}
	return Number{kind: p.numKind, bits: p.bits}
}

// Len reports the number of children of an Arr or Obj node, and 0 for any
// other kind.
func (n Node) Len() int { return int(n.get().count) }

// Key returns the key of n, if n is the value of an object member.
func (n Node) Key() string { return string(n.text(n.get().key)) }

// First returns the first child of n, and reports whether it exists.
func (n Node) First() (Node, bool) {
	if n.get().count == 0 {
		return Node{}, false
	}
	return Node{doc: n.doc, id: n.id + 1, gen: n.gen}, true
}

// Next returns the next sibling of n, and reports whether it exists.
func (n Node) Next() (Node, bool) {
	p := n.get()
	if p.last {
		return Node{}, false
	}
	return Node{doc: n.doc, id: n.id + p.size, gen: n.gen}, true
}

// Index returns the child of n at offset i, and reports whether it exists.
func (n Node) Index(i int) (Node, bool) {
	if i < 0 || i >= n.Len() {
		return Node{}, false
	}
	c, _ := n.First()
	for range i {
		c, _ = c.Next()
	}
	return c, true
}

// Find returns the value of the first member of the object n whose key is
// key, and reports whether one was found.
func (n Node) Find(key string) (Node, bool) {
	if n.get().kind != Obj {
		return Node{}, false
	}
	for c, ok := n.First(); ok; c, ok = c.Next() {
		if string(n.text(c.get().key)) == key {
			return c, true
		}
	}
	return Node{}, false
}

// Elements returns an iterator over the children of n in document order.
func (n Node) Elements() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for c, ok := n.First(); ok; c, ok = c.Next() {
			if !yield(c) {
				return
			}
		}
	}
}

// Members returns an iterator over the keys and values of the object n in
// document order. Duplicate keys are reported as they occur.
func (n Node) Members() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if n.Kind() != Obj {
			return
		}
		for c, ok := n.First(); ok; c, ok = c.Next() {
			if !yield(c.Key(), c) {
				return
			}
		}
	}
}
