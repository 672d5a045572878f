// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcodec

import "github.com/creachadair/jcodec/tree"

// Options control the behaviour of [Decode], [DecodeFunc], and [Encode].
// A nil *Options is ready for use and provides defaults: standard JSON,
// compact output, automatic memory management, and no logging.
type Options struct {
	// ReadFlags are passed to the parser when decoding.
	ReadFlags tree.ReadFlags

	// WriteFlags are passed to the serializer when encoding.
	WriteFlags tree.WriteFlags

	// If Region != nil, parsed documents and encoded output are stored in
	// it rather than allocated as needed. The region is held only for the
	// duration of a call. Use tree.RecommendedBufferSize to size a region
	// for the largest input you expect to decode.
	Region *tree.Region

	// If Logger != nil, diagnostics are written to it.
	Logger Logger
}

func (o *Options) readFlags() tree.ReadFlags {
	if o == nil {
		return 0
	}
	return o.ReadFlags
}

func (o *Options) writeFlags() tree.WriteFlags {
	if o == nil {
		return 0
	}
	return o.WriteFlags
}

func (o *Options) region() *tree.Region {
	if o == nil {
		return nil
	}
	return o.Region
}

func (o *Options) logger() Logger {
	if o == nil || o.Logger == nil {
		return NopLogger{}
	}
	return o.Logger
}

// memoryMode names the memory configuration for log messages.
func (o *Options) memoryMode() string {
	if o.region() != nil {
		return "region"
	}
	return "automatic"
}
