// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"github.com/creachadair/mds/mapset"
)

// indexThreshold is the number of members beyond which an object keeps an
// index of its keys rather than scanning them.
const indexThreshold = 8

// A MutDoc is a mutable JSON value tree under construction.
//
// Nodes are created unattached by the constructor methods of a MutDoc, and
// become part of the tree when they are set as the root, appended to an
// array, or put into an object. Each node can be attached at most once.
//
// A MutDoc is not safe for concurrent use.
type MutDoc struct {
	nodes []mnode
	root  int32 // -1 if unset
}

type mnode struct {
	kind     Kind
	attached bool
	on       bool // value of a Bool node
	num      Number
	str      string
	keys     []string // member keys, for objects
	kids     []int32
	index    mapset.Set[string] // member keys, for large objects
}

// NewMutDoc constructs a new empty mutable document.
func NewMutDoc() *MutDoc { return &MutDoc{root: -1} }

// A MutNode is a handle to a node of a MutDoc.
type MutNode struct {
	doc *MutDoc
	id  int32
}

func (d *MutDoc) add(n mnode) MutNode {
	d.nodes = append(d.nodes, n)
	return MutNode{doc: d, id: int32(len(d.nodes) - 1)}
}

// Null constructs a new null node.
func (d *MutDoc) Null() MutNode { return d.add(mnode{kind: Null}) }

// Bool constructs a new Boolean node.
func (d *MutDoc) Bool(ok bool) MutNode { return d.add(mnode{kind: Bool, on: ok}) }

// Int constructs a new number node from a signed integer.
func (d *MutDoc) Int(z int64) MutNode { return d.Number(IntNumber(z)) }

// Uint constructs a new number node from an unsigned integer.
func (d *MutDoc) Uint(u uint64) MutNode { return d.Number(UintNumber(u)) }

// Float constructs a new number node from a floating-point value.
func (d *MutDoc) Float(f float64) MutNode { return d.Number(RealNumber(f)) }

// Number constructs a new number node.
func (d *MutDoc) Number(n Number) MutNode { return d.add(mnode{kind: Num, num: n}) }

// String constructs a new string node.
func (d *MutDoc) String(s string) MutNode { return d.add(mnode{kind: Str, str: s}) }

// Object constructs a new empty object node.
func (d *MutDoc) Object() MutNode { return d.add(mnode{kind: Obj}) }

// Array constructs a new empty array node.
func (d *MutDoc) Array() MutNode { return d.add(mnode{kind: Arr}) }

// Root returns the root node of d, and reports whether it has been set.
func (d *MutDoc) Root() (MutNode, bool) {
	if d.root < 0 {
		return MutNode{}, false
	}
	return MutNode{doc: d, id: d.root}, true
}

// SetRoot makes v the root of d. It reports false without effect if d
// already has a root, or if v is already attached or belongs to another
// document.
func (d *MutDoc) SetRoot(v MutNode) bool {
	if d.root >= 0 || !d.attach(v) {
		return false
	}
	d.root = v.id
	return true
}

// attach marks v as attached, if it is eligible.
func (d *MutDoc) attach(v MutNode) bool {
	if v.doc != d || v.id < 0 || int(v.id) >= len(d.nodes) || d.nodes[v.id].attached {
		return false
	}
	d.nodes[v.id].attached = true
	return true
}

func (n MutNode) get() *mnode { return &n.doc.nodes[n.id] }

// IsValid reports whether n refers to a node.
func (n MutNode) IsValid() bool { return n.doc != nil }

// Kind reports the kind of n.
func (n MutNode) Kind() Kind {
	if n.doc == nil {
		return None
	}
	return n.get().kind
}

// Attached reports whether n has been attached to the tree.
func (n MutNode) Attached() bool { return n.doc != nil && n.get().attached }

// Len reports the number of children of an array or object node.
func (n MutNode) Len() int { return len(n.get().kids) }

// Append adds v to the end of the array n. It reports false without effect
// if n is not an array, or if v cannot be attached.
func (n MutNode) Append(v MutNode) bool {
	p := n.get()
	if p.kind != Arr || v.id == n.id || !n.doc.attach(v) {
		return false
	}
	p.kids = append(p.kids, v.id)
	return true
}

// Put adds a member with the given key and value v to the end of the object
// n. It reports false without effect if n is not an object, if n already has
// a member with that key, or if v cannot be attached.
func (n MutNode) Put(key string, v MutNode) bool {
	p := n.get()
	if p.kind != Obj || v.id == n.id || n.hasKey(key) || !n.doc.attach(v) {
		return false
	}
	p.keys = append(p.keys, key)
	p.kids = append(p.kids, v.id)
	if p.index != nil {
		p.index.Add(key)
	} else if len(p.keys) > indexThreshold {
		p.index = mapset.New(p.keys...)
	}
	return true
}

// Has reports whether the object n has a member with the given key.
func (n MutNode) Has(key string) bool { return n.get().kind == Obj && n.hasKey(key) }

func (n MutNode) hasKey(key string) bool {
	p := n.get()
	if p.index != nil {
		return p.index.Has(key)
	}
	for _, k := range p.keys {
		if k == key {
			return true
		}
	}
	return false
}

// CopyNode constructs an unattached deep copy in d of the value at n.
func CopyNode(d *MutDoc, n Node) MutNode {
	switch n.Kind() {
	case Null:
		return d.Null()
	case Bool:
		return d.Bool(n.Bool())
	case Num:
		return d.Number(n.Number())
	case Str:
		return d.String(n.String())
	case Arr:
		arr := d.Array()
		for elt := range n.Elements() {
			arr.Append(CopyNode(d, elt))
		}
		return arr
	case Obj:
		obj := d.Object()
		for key, val := range n.Members() {
			obj.Put(key, CopyNode(d, val)) // later duplicates are dropped
		}
		return obj
	default:
		panic("tree: copy of invalid node")
	}
}
