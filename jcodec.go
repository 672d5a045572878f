// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"errors"
	"fmt"

	"github.com/creachadair/jcodec/tree"
)

// Decode parses data as JSON and populates v from the root value. A nil
// opts is valid and provides defaults.
//
// If opts sets tree.ReadInSitu, the contents of data are overwritten during
// decoding. Values read by v do not refer to data in any case.
func Decode(data []byte, v Unmarshaler, opts *Options) error {
	_, err := DecodeFunc(data, opts, func(d *Decoder) (struct{}, error) {
		return struct{}{}, v.UnmarshalTree(d)
	})
	return err
}

// DecodeFunc parses data as JSON and returns the result of calling f with a
// decoder bound to the root value. The parsed document is released when f
// returns, so f must not retain the decoder or any container derived from
// it. A nil opts is valid and provides defaults.
func DecodeFunc[T any](data []byte, opts *Options, f func(*Decoder) (T, error)) (T, error) {
	log := opts.logger()
	doc, err := parse(data, opts, log)
	if err != nil {
		var zero T
		return zero, err
	}
	defer doc.Release()
	return f(newDecoder(doc.Root(), nil, log))
}

func parse(data []byte, opts *Options, log Logger) (*tree.Document, error) {
	log.Debug("decode", Fields{"size": len(data), "memory": opts.memoryMode()})
	doc, err := tree.Parse(data, opts.readFlags(), opts.region())
	if err == nil {
		log.Debug("parsed document", Fields{"nodes": doc.Len()})
		return doc, nil
	}

	var perr *ParseError
	switch {
	case errors.Is(err, tree.ErrEmptyInput):
		err = ErrDocumentRoot
	case errors.Is(err, tree.ErrRegionBusy):
		err = fmt.Errorf("%w: %w", ErrMemoryAllocation, err)
	case errors.As(err, &perr) && perr.Code == tree.CodeMemoryAllocation:
		err = fmt.Errorf("%w: %w", ErrMemoryAllocation, perr)
	}
	log.Warn("decode failed", Fields{"error": err.Error()})
	return nil, &Error{Err: err}
}

// Encode returns the JSON encoding of the value described by v. A nil opts
// is valid and provides defaults. If v does not attach a root value, Encode
// reports ErrAssignment.
//
// The returned slice does not refer to opts.Region, which may be reused
// once Encode returns.
func Encode(v Marshaler, opts *Options) ([]byte, error) {
	log := opts.logger()
	doc := tree.NewMutDoc()
	if err := (&Encoder{doc: doc, log: log}).marshal(v); err != nil {
		return nil, err
	}

	out, err := tree.Write(doc, opts.writeFlags(), opts.region())
	if err != nil {
		var werr *tree.WriteError
		switch {
		case errors.Is(err, tree.ErrRegionBusy), errors.Is(err, tree.ErrRegionFull):
			err = fmt.Errorf("%w: %w", ErrMemoryAllocation, err)
		case errors.As(err, &werr):
			err = fmt.Errorf("%w: %w", ErrAssignment, werr)
		}
		log.Warn("encode failed", Fields{"error": err.Error()})
		return nil, &Error{Err: err}
	}
	log.Debug("encode", Fields{"size": len(out), "memory": opts.memoryMode()})
	return out, nil
}
