// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package logrus adapts a logrus.Entry to the jcodec.Logger interface.
package logrus

import (
	"github.com/creachadair/jcodec"
	"github.com/sirupsen/logrus"
)

// LogrusLogger implements [jcodec.Logger] by forwarding to E.
type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f jcodec.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f jcodec.Fields) { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l LogrusLogger) Warn(msg string, f jcodec.Fields) { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l LogrusLogger) Error(msg string, f jcodec.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
