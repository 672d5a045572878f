// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcodec

import "github.com/creachadair/jcodec/tree"

// Marshaler is implemented by types that can describe themselves as a JSON
// value.
type Marshaler interface {
	MarshalTree(*Encoder) error
}

// An Encoder is bound to one slot of a document under construction: the
// root, a member of an object, or the next element of an array. A slot
// accepts exactly one value; attaching a second value to the same slot
// reports ErrAssignment.
//
// An Encoder and the containers derived from it are valid only during the
// call that produced it, and must not be retained.
type Encoder struct {
	doc    *tree.MutDoc
	parent tree.MutNode // zero for the root slot
	key    string       // for an object member slot
	used   bool
	at     *crumb
	log    Logger
}

// Path reports the location of the slot bound to e as a JSON Pointer.
func (e *Encoder) Path() string { return e.at.pointer() }

// attach stores v in the slot, or reports ErrAssignment.
func (e *Encoder) attach(v tree.MutNode) error {
	if e.used {
		return fail(e.log, e.at, ErrAssignment)
	}
	var ok bool
	switch e.parent.Kind() {
	case tree.None:
		ok = e.doc.SetRoot(v)
	case tree.Obj:
		ok = e.parent.Put(e.key, v)
	default:
		ok = e.parent.Append(v)
	}
	if !ok {
		return fail(e.log, e.at, ErrAssignment)
	}
	e.used = true
	return nil
}

// Keyed attaches an empty object at the slot and returns a container to
// populate its members.
func (e *Encoder) Keyed() (*KeyedEncoder, error) {
	obj := e.doc.Object()
	if err := e.attach(obj); err != nil {
		return nil, err
	}
	e.log.Debug("keyed encoder", Fields{"path": e.Path()})
	return &KeyedEncoder{doc: e.doc, node: obj, at: e.at, log: e.log}, nil
}

// Unkeyed attaches an empty array at the slot and returns a container to
// append its elements.
func (e *Encoder) Unkeyed() (*UnkeyedEncoder, error) {
	arr := e.doc.Array()
	if err := e.attach(arr); err != nil {
		return nil, err
	}
	e.log.Debug("unkeyed encoder", Fields{"path": e.Path()})
	return &UnkeyedEncoder{doc: e.doc, node: arr, at: e.at, log: e.log}, nil
}

// Single returns a container to write one value at the slot.
func (e *Encoder) Single() *SingleEncoder { return &SingleEncoder{e: e} }

// marshal invokes v on e and checks that it attached a value. Errors from v
// are returned unchanged.
func (e *Encoder) marshal(v Marshaler) error {
	if e.used {
		return fail(e.log, e.at, ErrAssignment)
	}
	if err := v.MarshalTree(e); err != nil {
		return err
	}
	if !e.used {
		return fail(e.log, e.at, ErrAssignment)
	}
	return nil
}

// A KeyedEncoder adds members to an object. Each key may be used only once;
// adding a second member with the same key reports ErrAssignment.
type KeyedEncoder struct {
	doc  *tree.MutDoc
	node tree.MutNode
	at   *crumb
	log  Logger
}

// Len reports the number of members added so far.
func (k *KeyedEncoder) Len() int { return k.node.Len() }

func (k *KeyedEncoder) put(key string, v tree.MutNode) error {
	if !k.node.Put(key, v) {
		return fail(k.log, k.at.member(key), ErrAssignment)
	}
	return nil
}

// Nil adds a null member with the given key.
func (k *KeyedEncoder) Nil(key string) error { return k.put(key, k.doc.Null()) }

// Bool adds a Boolean member with the given key.
func (k *KeyedEncoder) Bool(key string, v bool) error { return k.put(key, k.doc.Bool(v)) }

// String adds a string member with the given key.
func (k *KeyedEncoder) String(key, v string) error { return k.put(key, k.doc.String(v)) }

// Number adds a numeric member with the given key.
func (k *KeyedEncoder) Number(key string, v tree.Number) error { return k.put(key, k.doc.Number(v)) }

// Int adds an integer member with the given key.
func (k *KeyedEncoder) Int(key string, v int) error { return k.put(key, k.doc.Int(int64(v))) }

// Int8, Int16, Int32, and Int64 add an integer member with the given key.
func (k *KeyedEncoder) Int8(key string, v int8) error   { return k.put(key, k.doc.Int(int64(v))) }
func (k *KeyedEncoder) Int16(key string, v int16) error { return k.put(key, k.doc.Int(int64(v))) }
func (k *KeyedEncoder) Int32(key string, v int32) error { return k.put(key, k.doc.Int(int64(v))) }
func (k *KeyedEncoder) Int64(key string, v int64) error { return k.put(key, k.doc.Int(v)) }

// Uint adds an unsigned integer member with the given key.
func (k *KeyedEncoder) Uint(key string, v uint) error { return k.put(key, k.doc.Uint(uint64(v))) }

// Uint8, Uint16, Uint32, and Uint64 add an unsigned integer member with the
// given key.
func (k *KeyedEncoder) Uint8(key string, v uint8) error   { return k.put(key, k.doc.Uint(uint64(v))) }
func (k *KeyedEncoder) Uint16(key string, v uint16) error { return k.put(key, k.doc.Uint(uint64(v))) }
func (k *KeyedEncoder) Uint32(key string, v uint32) error { return k.put(key, k.doc.Uint(uint64(v))) }
func (k *KeyedEncoder) Uint64(key string, v uint64) error { return k.put(key, k.doc.Uint(v)) }

// Float64 adds a floating-point member with the given key.
func (k *KeyedEncoder) Float64(key string, v float64) error { return k.put(key, k.doc.Float(v)) }

// Float32 adds a floating-point member with the given key.
func (k *KeyedEncoder) Float32(key string, v float32) error {
	return k.put(key, k.doc.Float(float64(v)))
}

// Encoder returns an encoder bound to the member slot for key. Nothing is
// added to the object until a value is attached to the slot.
func (k *KeyedEncoder) Encoder(key string) *Encoder {
	return &Encoder{doc: k.doc, parent: k.node, key: key, at: k.at.member(key), log: k.log}
}

// Encode adds a member with the given key whose value is described by v.
// If v does not attach a value, Encode reports ErrAssignment.
func (k *KeyedEncoder) Encode(key string, v Marshaler) error {
	return k.Encoder(key).marshal(v)
}

// Keyed adds an empty object member with the given key and returns a
// container to populate it.
func (k *KeyedEncoder) Keyed(key string) (*KeyedEncoder, error) { return k.Encoder(key).Keyed() }

// Unkeyed adds an empty array member with the given key and returns a
// container to populate it.
func (k *KeyedEncoder) Unkeyed(key string) (*UnkeyedEncoder, error) {
	return k.Encoder(key).Unkeyed()
}

// An UnkeyedEncoder appends elements to an array.
type UnkeyedEncoder struct {
	doc  *tree.MutDoc
	node tree.MutNode
	at   *crumb
	log  Logger
}

// Len reports the number of elements appended so far.
func (u *UnkeyedEncoder) Len() int { return u.node.Len() }

func (u *UnkeyedEncoder) add(v tree.MutNode) error {
	if !u.node.Append(v) {
		return fail(u.log, u.at.elem(u.node.Len()), ErrAssignment)
	}
	return nil
}

// Nil appends a null element.
func (u *UnkeyedEncoder) Nil() error { return u.add(u.doc.Null()) }

// Bool appends a Boolean element.
func (u *UnkeyedEncoder) Bool(v bool) error { return u.add(u.doc.Bool(v)) }

// String appends a string element.
func (u *UnkeyedEncoder) String(v string) error { return u.add(u.doc.String(v)) }

// Number appends a numeric element.
func (u *UnkeyedEncoder) Number(v tree.Number) error { return u.add(u.doc.Number(v)) }

// Int appends an integer element.
func (u *UnkeyedEncoder) Int(v int) error { return u.add(u.doc.Int(int64(v))) }

// Int8, Int16, Int32, and Int64 append an integer element.
func (u *UnkeyedEncoder) Int8(v int8) error   { return u.add(u.doc.Int(int64(v))) }
func (u *UnkeyedEncoder) Int16(v int16) error { return u.add(u.doc.Int(int64(v))) }
func (u *UnkeyedEncoder) Int32(v int32) error { return u.add(u.doc.Int(int64(v))) }
func (u *UnkeyedEncoder) Int64(v int64) error { return u.add(u.doc.Int(v)) }

// Uint appends an unsigned integer element.
func (u *UnkeyedEncoder) Uint(v uint) error { return u.add(u.doc.Uint(uint64(v))) }

// Uint8, Uint16, Uint32, and Uint64 append an unsigned integer element.
func (u *UnkeyedEncoder) Uint8(v uint8) error   { return u.add(u.doc.Uint(uint64(v))) }
func (u *UnkeyedEncoder) Uint16(v uint16) error { return u.add(u.doc.Uint(uint64(v))) }
func (u *UnkeyedEncoder) Uint32(v uint32) error { return u.add(u.doc.Uint(uint64(v))) }
func (u *UnkeyedEncoder) Uint64(v uint64) error { return u.add(u.doc.Uint(v)) }

// Float64 appends a floating-point element.
func (u *UnkeyedEncoder) Float64(v float64) error { return u.add(u.doc.Float(v)) }

// Float32 appends a floating-point element.
func (u *UnkeyedEncoder) Float32(v float32) error { return u.add(u.doc.Float(float64(v))) }

// Encoder returns an encoder bound to the next element slot. Nothing is
// appended until a value is attached to the slot.
func (u *UnkeyedEncoder) Encoder() *Encoder {
	return &Encoder{doc: u.doc, parent: u.node, at: u.at.elem(u.node.Len()), log: u.log}
}

// Encode appends an element described by v. If v does not attach a value,
// Encode reports ErrAssignment.
func (u *UnkeyedEncoder) Encode(v Marshaler) error { return u.Encoder().marshal(v) }

// Keyed appends an empty object and returns a container to populate it.
func (u *UnkeyedEncoder) Keyed() (*KeyedEncoder, error) { return u.Encoder().Keyed() }

// Unkeyed appends an empty array and returns a container to populate it.
func (u *UnkeyedEncoder) Unkeyed() (*UnkeyedEncoder, error) { return u.Encoder().Unkeyed() }

// A SingleEncoder writes one value to the slot of its encoder. Each method
// reports ErrAssignment if the slot already holds a value.
type SingleEncoder struct{ e *Encoder }

// Nil writes null.
func (s *SingleEncoder) Nil() error { return s.e.attach(s.e.doc.Null()) }

// Bool writes a Boolean value.
func (s *SingleEncoder) Bool(v bool) error { return s.e.attach(s.e.doc.Bool(v)) }

// String writes a string value.
func (s *SingleEncoder) String(v string) error { return s.e.attach(s.e.doc.String(v)) }

// Number writes a numeric value.
func (s *SingleEncoder) Number(v tree.Number) error { return s.e.attach(s.e.doc.Number(v)) }

// Int writes an integer value.
func (s *SingleEncoder) Int(v int) error { return s.e.attach(s.e.doc.Int(int64(v))) }

// Int8, Int16, Int32, and Int64 write an integer value.
func (s *SingleEncoder) Int8(v int8) error   { return s.e.attach(s.e.doc.Int(int64(v))) }
func (s *SingleEncoder) Int16(v int16) error { return s.e.attach(s.e.doc.Int(int64(v))) }
func (s *SingleEncoder) Int32(v int32) error { return s.e.attach(s.e.doc.Int(int64(v))) }
func (s *SingleEncoder) Int64(v int64) error { return s.e.attach(s.e.doc.Int(v)) }

// Uint writes an unsigned integer value.
func (s *SingleEncoder) Uint(v uint) error { return s.e.attach(s.e.doc.Uint(uint64(v))) }

// Uint8, Uint16, Uint32, and Uint64 write an unsigned integer value.
func (s *SingleEncoder) Uint8(v uint8) error   { return s.e.attach(s.e.doc.Uint(uint64(v))) }
func (s *SingleEncoder) Uint16(v uint16) error { return s.e.attach(s.e.doc.Uint(uint64(v))) }
func (s *SingleEncoder) Uint32(v uint32) error { return s.e.attach(s.e.doc.Uint(uint64(v))) }
func (s *SingleEncoder) Uint64(v uint64) error { return s.e.attach(s.e.doc.Uint(v)) }

// Float32 writes a floating-point value.
func (s *SingleEncoder) Float32(v float32) error { return s.e.attach(s.e.doc.Float(float64(v))) }

// Float64 writes a floating-point value.
func (s *SingleEncoder) Float64(v float64) error { return s.e.attach(s.e.doc.Float(v)) }

// Encode writes the value described by v. If v does not attach a value,
// Encode reports ErrAssignment.
func (s *SingleEncoder) Encode(v Marshaler) error { return s.e.marshal(v) }
