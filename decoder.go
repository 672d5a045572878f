// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"unicode/utf8"

	"github.com/creachadair/jcodec/tree"
	"github.com/creachadair/mds/mapset"
)

// Unmarshaler is implemented by types that can populate themselves from a
// decoded JSON value.
type Unmarshaler interface {
	UnmarshalTree(*Decoder) error
}

// A Decoder is bound to one node of a parsed document. It constructs a
// container to read the node according to its shape: a [KeyedDecoder] for an
// object, an [UnkeyedDecoder] for an array, or a [SingleDecoder] for any
// single value.
//
// A Decoder and the containers derived from it are valid only during the
// call that produced it, and must not be retained.
type Decoder struct {
	node tree.Node
	at   *crumb
	log  Logger
}

func newDecoder(n tree.Node, at *crumb, log Logger) *Decoder {
	return &Decoder{node: n, at: at, log: log}
}

// Kind reports the kind of the value bound to d.
func (d *Decoder) Kind() tree.Kind { return d.node.Kind() }

// Path reports the location of the value bound to d as a JSON Pointer.
func (d *Decoder) Path() string { return d.at.pointer() }

// Keyed returns a container to read the members of an object. It reports a
// *TypeMismatchError if the value is not an object.
func (d *Decoder) Keyed() (*KeyedDecoder, error) {
	if k := d.node.Kind(); k != tree.Obj {
		return nil, fail(d.log, d.at, mismatch(tree.Obj, k))
	}
	d.log.Debug("keyed decoder", Fields{"path": d.Path(), "len": d.node.Len()})
	return &KeyedDecoder{node: d.node, at: d.at, log: d.log}, nil
}

// Unkeyed returns a container to read the elements of an array in order. It
// reports a *TypeMismatchError if the value is not an array.
func (d *Decoder) Unkeyed() (*UnkeyedDecoder, error) {
	if k := d.node.Kind(); k != tree.Arr {
		return nil, fail(d.log, d.at, mismatch(tree.Arr, k))
	}
	d.log.Debug("unkeyed decoder", Fields{"path": d.Path(), "len": d.node.Len()})
	u := &UnkeyedDecoder{length: d.node.Len(), at: d.at, log: d.log}
	u.cur, _ = d.node.First()
	return u, nil
}

// Single returns a container to read the value as a single value.
func (d *Decoder) Single() *SingleDecoder {
	return &SingleDecoder{node: d.node, at: d.at, log: d.log}
}

// A KeyedDecoder reads the members of an object by key. Lookups do not
// change its state: any key may be read any number of times, in any order.
//
// If the object has more than one member with the same key, lookups resolve
// to the first of them.
type KeyedDecoder struct {
	node tree.Node
	at   *crumb
	log  Logger
}

// Len reports the number of members of the object, including duplicates.
func (k *KeyedDecoder) Len() int { return k.node.Len() }

// Contains reports whether the object has a member with the given key.
func (k *KeyedDecoder) Contains(key string) bool {
	_, ok := k.node.Find(key)
	return ok
}

// AllKeys returns the distinct keys of the object in the order they first
// occur in the document. Keys that are not valid UTF-8 are skipped.
func (k *KeyedDecoder) AllKeys() []string {
	keys := make([]string, 0, k.node.Len())
	seen := mapset.New[string]()
	for key := range k.node.Members() {
		if !utf8.ValidString(key) || seen.Has(key) {
			continue
		}
		seen.Add(key)
		keys = append(keys, key)
	}
	return keys
}

// lookup finds the member with the given key.
func (k *KeyedDecoder) lookup(key string) (tree.Node, *crumb, error) {
	at := k.at.member(key)
	n, ok := k.node.Find(key)
	if !ok {
		return n, at, fail(k.log, at, ErrNotFound)
	}
	return n, at, nil
}

func keyed[T any](k *KeyedDecoder, key string, conv converter[T]) (T, error) {
	n, at, err := k.lookup(key)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := conv(n)
	if err != nil {
		return v, fail(k.log, at, err)
	}
	return v, nil
}

// Nil reports whether the value of key is null.
func (k *KeyedDecoder) Nil(key string) (bool, error) { return keyed(k, key, toNil) }

// Bool returns the Boolean value of key.
func (k *KeyedDecoder) Bool(key string) (bool, error) { return keyed(k, key, toBool) }

// String returns the string value of key.
func (k *KeyedDecoder) String(key string) (string, error) { return keyed(k, key, toString) }

// Number returns the numeric value of key.
func (k *KeyedDecoder) Number(key string) (tree.Number, error) { return keyed(k, key, toNumber) }

// Int returns the numeric value of key as an int.
func (k *KeyedDecoder) Int(key string) (int, error) { return keyed(k, key, toSigned[int]) }

// Int8, Int16, Int32, and Int64 return the numeric value of key converted
// to the corresponding signed type.
func (k *KeyedDecoder) Int8(key string) (int8, error)   { return keyed(k, key, toSigned[int8]) }
func (k *KeyedDecoder) Int16(key string) (int16, error) { return keyed(k, key, toSigned[int16]) }
func (k *KeyedDecoder) Int32(key string) (int32, error) { return keyed(k, key, toSigned[int32]) }
func (k *KeyedDecoder) Int64(key string) (int64, error) { return keyed(k, key, toSigned[int64]) }

// Uint returns the numeric value of key as a uint.
func (k *KeyedDecoder) Uint(key string) (uint, error) { return keyed(k, key, toUnsigned[uint]) }

// Uint8, Uint16, Uint32, and Uint64 return the numeric value of key
// converted to the corresponding unsigned type.
func (k *KeyedDecoder) Uint8(key string) (uint8, error)   { return keyed(k, key, toUnsigned[uint8]) }
func (k *KeyedDecoder) Uint16(key string) (uint16, error) { return keyed(k, key, toUnsigned[uint16]) }
func (k *KeyedDecoder) Uint32(key string) (uint32, error) { return keyed(k, key, toUnsigned[uint32]) }
func (k *KeyedDecoder) Uint64(key string) (uint64, error) { return keyed(k, key, toUnsigned[uint64]) }

// Float64 returns the numeric value of key as a float64.
func (k *KeyedDecoder) Float64(key string) (float64, error) { return keyed(k, key, toFloat[float64]) }

// Float32 returns the numeric value of key as a float32.
func (k *KeyedDecoder) Float32(key string) (float32, error) { return keyed(k, key, toFloat[float32]) }

// Decoder returns a decoder bound to the value of key.
func (k *KeyedDecoder) Decoder(key string) (*Decoder, error) {
	n, at, err := k.lookup(key)
	if err != nil {
		return nil, err
	}
	return newDecoder(n, at, k.log), nil
}

// Decode populates v from the value of key.
func (k *KeyedDecoder) Decode(key string, v Unmarshaler) error {
	d, err := k.Decoder(key)
	if err != nil {
		return err
	}
	return v.UnmarshalTree(d)
}

// Keyed returns a container to read the members of the object at key.
func (k *KeyedDecoder) Keyed(key string) (*KeyedDecoder, error) {
	d, err := k.Decoder(key)
	if err != nil {
		return nil, err
	}
	return d.Keyed()
}

// Unkeyed returns a container to read the elements of the array at key.
func (k *KeyedDecoder) Unkeyed(key string) (*UnkeyedDecoder, error) {
	d, err := k.Decoder(key)
	if err != nil {
		return nil, err
	}
	return d.Unkeyed()
}

// An UnkeyedDecoder reads the elements of an array in order. Each read
// consumes the current element and advances to the next; a read that fails
// does not advance, so the element may be read again as another type. Once
// all the elements have been consumed, further reads report
// ErrContentOverflow.
type UnkeyedDecoder struct {
	cur    tree.Node // current element, if index < length
	index  int
	length int
	at     *crumb
	log    Logger
}

// Len reports the total number of elements in the array.
func (u *UnkeyedDecoder) Len() int { return u.length }

// Index reports the offset of the current element.
func (u *UnkeyedDecoder) Index() int { return u.index }

// AtEnd reports whether all the elements have been consumed.
func (u *UnkeyedDecoder) AtEnd() bool { return u.index >= u.length }

// current returns the current element without consuming it.
func (u *UnkeyedDecoder) current() (tree.Node, *crumb, error) {
	at := u.at.elem(u.index)
	if u.AtEnd() {
		return tree.Node{}, at, fail(u.log, at, ErrContentOverflow)
	}
	return u.cur, at, nil
}

func (u *UnkeyedDecoder) advance() {
	u.index++
	if !u.AtEnd() {
		u.cur, _ = u.cur.Next()
	}
}

func unkeyed[T any](u *UnkeyedDecoder, conv converter[T]) (T, error) {
	n, at, err := u.current()
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := conv(n)
	if err != nil {
		return v, fail(u.log, at, err)
	}
	u.advance()
	return v, nil
}

// Nil reports whether the current element is null, and consumes it whether
// or not it was null.
func (u *UnkeyedDecoder) Nil() (bool, error) { return unkeyed(u, toNil) }

// Bool consumes the current element as a Boolean.
func (u *UnkeyedDecoder) Bool() (bool, error) { return unkeyed(u, toBool) }

// String consumes the current element as a string.
func (u *UnkeyedDecoder) String() (string, error) { return unkeyed(u, toString) }

// Number consumes the current element as a number.
func (u *UnkeyedDecoder) Number() (tree.Number, error) { return unkeyed(u, toNumber) }

// Int consumes the current element as an int.
func (u *UnkeyedDecoder) Int() (int, error) { return unkeyed(u, toSigned[int]) }

// Int8, Int16, Int32, and Int64 consume the current element as the
// corresponding signed type.
func (u *UnkeyedDecoder) Int8() (int8, error)   { return unkeyed(u, toSigned[int8]) }
func (u *UnkeyedDecoder) Int16() (int16, error) { return unkeyed(u, toSigned[int16]) }
func (u *UnkeyedDecoder) Int32() (int32, error) { return unkeyed(u, toSigned[int32]) }
func (u *UnkeyedDecoder) Int64() (int64, error) { return unkeyed(u, toSigned[int64]) }

// Uint consumes the current element as a uint.
func (u *UnkeyedDecoder) Uint() (uint, error) { return unkeyed(u, toUnsigned[uint]) }

// Uint8, Uint16, Uint32, and Uint64 consume the current element as the
// corresponding unsigned type.
func (u *UnkeyedDecoder) Uint8() (uint8, error)   { return unkeyed(u, toUnsigned[uint8]) }
func (u *UnkeyedDecoder) Uint16() (uint16, error) { return unkeyed(u, toUnsigned[uint16]) }
func (u *UnkeyedDecoder) Uint32() (uint32, error) { return unkeyed(u, toUnsigned[uint32]) }
func (u *UnkeyedDecoder) Uint64() (uint64, error) { return unkeyed(u, toUnsigned[uint64]) }

// Float64 consumes the current element as a float64.
func (u *UnkeyedDecoder) Float64() (float64, error) { return unkeyed(u, toFloat[float64]) }

// Float32 consumes the current element as a float32.
func (u *UnkeyedDecoder) Float32() (float32, error) { return unkeyed(u, toFloat[float32]) }

// Decoder consumes the current element and returns a decoder bound to it.
// The element is consumed whatever the caller then does with the decoder.
func (u *UnkeyedDecoder) Decoder() (*Decoder, error) {
	n, at, err := u.current()
	if err != nil {
		return nil, err
	}
	u.advance()
	return newDecoder(n, at, u.log), nil
}

// Decode populates v from the current element. The element is consumed
// only if v reports success, so a failed element may be read again.
func (u *UnkeyedDecoder) Decode(v Unmarshaler) error {
	n, at, err := u.current()
	if err != nil {
		return err
	}
	if err := v.UnmarshalTree(newDecoder(n, at, u.log)); err != nil {
		return err
	}
	u.advance()
	return nil
}

// Keyed consumes the current element and returns a container to read its
// members. If the element is not an object, it is not consumed.
func (u *UnkeyedDecoder) Keyed() (*KeyedDecoder, error) {
	return nested(u, (*Decoder).Keyed)
}

// Unkeyed consumes the current element and returns a container to read its
// elements. If the element is not an array, it is not consumed.
func (u *UnkeyedDecoder) Unkeyed() (*UnkeyedDecoder, error) {
	return nested(u, (*Decoder).Unkeyed)
}

func nested[C any](u *UnkeyedDecoder, open func(*Decoder) (C, error)) (C, error) {
	n, at, err := u.current()
	if err != nil {
		var zero C
		return zero, err
	}
	c, err := open(newDecoder(n, at, u.log))
	if err == nil {
		u.advance()
	}
	return c, err
}

// A SingleDecoder reads one value of any kind.
type SingleDecoder struct {
	node tree.Node
	at   *crumb
	log  Logger
}

func single[T any](s *SingleDecoder, conv converter[T]) (T, error) {
	v, err := conv(s.node)
	if err != nil {
		return v, fail(s.log, s.at, err)
	}
	return v, nil
}

// Kind reports the kind of the value.
func (s *SingleDecoder) Kind() tree.Kind { return s.node.Kind() }

// Nil reports whether the value is null.
func (s *SingleDecoder) Nil() bool { return s.node.Kind() == tree.Null }

// Bool returns the value as a Boolean.
func (s *SingleDecoder) Bool() (bool, error) { return single(s, toBool) }

// String returns the value as a string.
func (s *SingleDecoder) String() (string, error) { return single(s, toString) }

// Number returns the value as a number.
func (s *SingleDecoder) Number() (tree.Number, error) { return single(s, toNumber) }

// Int returns the value as an int.
func (s *SingleDecoder) Int() (int, error) { return single(s, toSigned[int]) }

// Int8, Int16, Int32, and Int64 return the value converted to the
// corresponding signed type.
func (s *SingleDecoder) Int8() (int8, error)   { return single(s, toSigned[int8]) }
func (s *SingleDecoder) Int16() (int16, error) { return single(s, toSigned[int16]) }
func (s *SingleDecoder) Int32() (int32, error) { return single(s, toSigned[int32]) }
func (s *SingleDecoder) Int64() (int64, error) { return single(s, toSigned[int64]) }

// Uint returns the value as a uint.
func (s *SingleDecoder) Uint() (uint, error) { return single(s, toUnsigned[uint]) }

// Uint8, Uint16, Uint32, and Uint64 return the value converted to the
// corresponding unsigned type.
func (s *SingleDecoder) Uint8() (uint8, error)   { return single(s, toUnsigned[uint8]) }
func (s *SingleDecoder) Uint16() (uint16, error) { return single(s, toUnsigned[uint16]) }
func (s *SingleDecoder) Uint32() (uint32, error) { return single(s, toUnsigned[uint32]) }
func (s *SingleDecoder) Uint64() (uint64, error) { return single(s, toUnsigned[uint64]) }

// Float64 returns the value as a float64.
func (s *SingleDecoder) Float64() (float64, error) { return single(s, toFloat[float64]) }

// Float32 returns the value as a float32.
func (s *SingleDecoder) Float32() (float32, error) { return single(s, toFloat[float32]) }

// Decode populates v from the value, using a fresh decoder bound to it.
func (s *SingleDecoder) Decode(v Unmarshaler) error {
	return v.UnmarshalTree(newDecoder(s.node, s.at, s.log))
}
