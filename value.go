// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcodec

import "github.com/creachadair/jcodec/tree"

// A Value is a dynamically-typed JSON value. It can be decoded from any
// input, and encodes to the same JSON value it was decoded from, except that
// only the first of any duplicate object keys is kept.
type Value struct {
	Kind    tree.Kind
	Bool    bool        // for tree.Bool
	Num     tree.Number // for tree.Num
	Str     string      // for tree.Str
	Elems   []Value     // for tree.Arr
	Members []Member    // for tree.Obj, in order
}

// A Member is a key-value pair of an object Value.
type Member struct {
	Key   string
	Value Value
}

// Find returns the value of the member of v with the given key, or nil if
// v is not an object or has no such member.
func (v *Value) Find(key string) *Value {
	for i, m := range v.Members {
		if m.Key == key {
			return &v.Members[i].Value
		}
	}
	return nil
}

// UnmarshalTree implements the [Unmarshaler] interface.
func (v *Value) UnmarshalTree(d *Decoder) error {
	*v = Value{Kind: d.Kind()}
	var err error
	switch v.Kind {
	case tree.Obj:
		k, kerr := d.Keyed()
		if kerr != nil {
			return kerr
		}
		keys := k.AllKeys()
		v.Members = make([]Member, len(keys))
		for i, key := range keys {
			v.Members[i].Key = key
			if err := k.Decode(key, &v.Members[i].Value); err != nil {
				return err
			}
		}
	case tree.Arr:
		u, uerr := d.Unkeyed()
		if uerr != nil {
			return uerr
		}
		v.Elems = make([]Value, u.Len())
		for i := range v.Elems {
			if err := u.Decode(&v.Elems[i]); err != nil {
				return err
			}
		}
	case tree.Bool:
		v.Bool, err = d.Single().Bool()
	case tree.Num:
		v.Num, err = d.Single().Number()
	case tree.Str:
		v.Str, err = d.Single().String()
	}
	return err
}

// MarshalTree implements the [Marshaler] interface. A Value whose Kind is
// tree.None does not encode a value.
func (v *Value) MarshalTree(e *Encoder) error {
	switch v.Kind {
	case tree.Null:
		return e.Single().Nil()
	case tree.Bool:
		return e.Single().Bool(v.Bool)
	case tree.Num:
		return e.Single().Number(v.Num)
	case tree.Str:
		return e.Single().String(v.Str)
	case tree.Arr:
		u, err := e.Unkeyed()
		if err != nil {
			return err
		}
		for i := range v.Elems {
			if err := u.Encode(&v.Elems[i]); err != nil {
				return err
			}
		}
	case tree.Obj:
		k, err := e.Keyed()
		if err != nil {
			return err
		}
		for i := range v.Members {
			if err := k.Encode(v.Members[i].Key, &v.Members[i].Value); err != nil {
				return err
			}
		}
	}
	return nil
}
