// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package tree implements an index-addressed JSON value tree.
//
// A [Document] is an immutable tree produced by [Parse]. Its nodes live in a
// slab owned by the document and are addressed by [Node] handles, which are
// valid only until the document is released. A [MutDoc] is a mutable tree
// under construction, which [Write] serializes to JSON text.
//
// Either direction may draw its storage from a caller-provided [Region].
package tree

import (
	"math"
	"strconv"
)

// Kind is the JSON type discriminant of a node.
type Kind byte

// Constants defining the valid Kind values.
const (
	None Kind = iota // no value
	Null             // null
	Bool             // true or false
	Num              // number
	Str              // string
	Arr              // array
	Obj              // object
)

var kindStr = [...]string{
	None: "none",
	Null: "null",
	Bool: "bool",
	Num:  "num",
	Str:  "str",
	Arr:  "arr",
	Obj:  "obj",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindStr[k]
}

// NumKind identifies the representation of a [Number].
type NumKind byte

// Constants defining the valid NumKind values.
const (
	Uint NumKind = iota + 1 // unsigned integer
	Int                     // negative integer
	Real                    // floating point
)

// A Number is a JSON number stored as an unsigned integer, a signed integer,
// or a floating-point value. The zero Number is the unsigned integer 0.
type Number struct {
	kind NumKind
	bits uint64
}

// UintNumber returns a Number representing u.
func UintNumber(u uint64) Number { return Number{kind: Uint, bits: u} }

// IntNumber returns a Number representing z. Non-negative values are stored
// as unsigned integers.
func IntNumber(z int64) Number {
	if z >= 0 {
		return Number{kind: Uint, bits: uint64(z)}
	}
	return Number{kind: Int, bits: uint64(z)}
}

// RealNumber returns a Number representing f.
func RealNumber(f float64) Number { return Number{kind: Real, bits: math.Float64bits(f)} }

// Kind reports the representation of n.
func (n Number) Kind() NumKind {
	if n.kind == 0 {
		return Uint
	}
	return n.kind
}

// Uint64 returns n converted to a uint64. Signed values wrap, and real values
// are truncated toward zero.
func (n Number) Uint64() uint64 {
	if n.kind == Real {
		return uint64(math.Float64frombits(n.bits))
	}
	return n.bits
}

// Int64 returns n converted to an int64. Unsigned values wrap, and real values
// are truncated toward zero.
func (n Number) Int64() int64 {
	if n.kind == Real {
		return int64(math.Float64frombits(n.bits))
	}
	return int64(n.bits)
}

// Float64 returns n converted to a float64.
func (n Number) Float64() float64 {
	switch n.kind {
	case Real:
		return math.Float64frombits(n.bits)
	case Int:
		return float64(int64(n.bits))
	default:
		return float64(n.bits)
	}
}

// IsFinite reports whether n is neither infinite nor NaN.
func (n Number) IsFinite() bool {
	if n.kind != Real {
		return true
	}
	f := math.Float64frombits(n.bits)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// String renders n as JSON number text. Non-finite values are rendered as
// NaN, Infinity, or -Infinity.
func (n Number) String() string { return string(n.append(nil)) }

func (n Number) append(buf []byte) []byte {
	switch n.kind {
	case Real:
		f := math.Float64frombits(n.bits)
		switch {
		case math.IsNaN(f):
			return append(buf, "NaN"...)
		case math.IsInf(f, 1):
			return append(buf, "Infinity"...)
		case math.IsInf(f, -1):
			return append(buf, "-Infinity"...)
		}
		start := len(buf)
		buf = strconv.AppendFloat(buf, f, 'g', -1, 64)
		for _, b := range buf[start:] {
			if b == '.' || b == 'e' {
				return buf
			}
		}
		return append(buf, ".0"...) // keep integral reals distinguishable
	case Int:
		return strconv.AppendInt(buf, int64(n.bits), 10)
	default:
		return strconv.AppendUint(buf, n.bits, 10)
	}
}

// parseNumber parses the text of a number token. Integers that do not fit in
// 64 bits are stored as real values.
func parseNumber(text string, integer bool) (Number, error) {
	if integer {
		if text[0] == '-' {
			if z, err := strconv.ParseInt(text, 10, 64); err == nil {
				return IntNumber(z), nil
			}
		} else if u, err := strconv.ParseUint(text, 10, 64); err == nil {
			return UintNumber(u), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !math.IsInf(f, 0) {
		return Number{}, err
	}
	return RealNumber(f), nil
}
