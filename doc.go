// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jcodec implements visitor-style decoding and encoding of JSON
// values.
//
// # Decoding
//
// A type that implements [Unmarshaler] populates itself from a [Decoder]
// bound to one value of a parsed document. The decoder provides containers
// to read the value according to its shape:
//
//   - A [KeyedDecoder] reads the members of an object by key, in any order.
//   - An [UnkeyedDecoder] reads the elements of an array in sequence.
//   - A [SingleDecoder] reads one value of any kind.
//
// For example:
//
//	func (r *Record) UnmarshalTree(d *jcodec.Decoder) error {
//	   k, err := d.Keyed()
//	   if err != nil {
//	      return err
//	   }
//	   if r.ID, err = k.Int("id"); err != nil {
//	      return err
//	   }
//	   r.Name, err = k.String("name")
//	   return err
//	}
//
// Call [Decode] or [DecodeFunc] to parse the input and invoke the decoder.
// The parsed document lives only as long as the call, and the decoders and
// containers passed to the caller must not be retained after it returns.
//
// # Encoding
//
// A type that implements [Marshaler] describes itself to an [Encoder] bound
// to one slot of a document under construction. The containers provided by
// the encoder mirror those for decoding: a [KeyedEncoder] adds object
// members, an [UnkeyedEncoder] appends array elements, and a [SingleEncoder]
// writes one value. Each slot accepts exactly one value.
//
// Call [Encode] to construct the document and render it as JSON text.
//
// # Errors
//
// Failures are reported as [*Error] values carrying a JSON Pointer to the
// location of the problem, wrapping one of the Err* sentinels, a
// [*TypeMismatchError], or a [*ParseError]. Errors reported by the caller's
// own UnmarshalTree and MarshalTree methods are returned unchanged.
//
// # Memory
//
// By default, storage for documents is allocated as needed. To bound and
// reuse memory, set the Region field of [Options] to a [tree.Region]. A
// region may be reused across sequential calls, but not concurrently.
package jcodec
