// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package zap adapts a zap.Logger to the jcodec.Logger interface.
package zap

import (
	"maps"
	"slices"

	"github.com/creachadair/jcodec"
	"go.uber.org/zap"
)

// ZapLogger implements [jcodec.Logger] by forwarding to L.
type ZapLogger struct{ L *zap.Logger }

func (z ZapLogger) Debug(msg string, f jcodec.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f jcodec.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f jcodec.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f jcodec.Fields) { z.L.Error(msg, zf(f)...) }

// zf converts f into zap fields, ordered by key.
func zf(f jcodec.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for _, k := range slices.Sorted(maps.Keys(f)) {
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
