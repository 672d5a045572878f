// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package logrus_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jcodec"
	jlogrus "github.com/creachadair/jcodec/log/logrus"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLogrusLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	opts := &jcodec.Options{Logger: jlogrus.LogrusLogger{E: logrus.NewEntry(logger)}}

	err := jcodec.Decode([]byte(`[1, 2`), new(jcodec.Value), opts)
	var perr *jcodec.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Decode: got %v, want parse error", err)
	}

	last := hook.LastEntry()
	if last == nil {
		t.Fatal("No log entries recorded")
	}
	if last.Level != logrus.WarnLevel || last.Message != "decode failed" {
		t.Errorf("Last entry: got %v %q, want warning %q", last.Level, last.Message, "decode failed")
	}
	if _, ok := last.Data["error"]; !ok {
		t.Errorf("Last entry has no error field: %v", last.Data)
	}

	var sawDecode bool
	for _, e := range hook.AllEntries() {
		if e.Message == "decode" {
			sawDecode = true
			if got := e.Data["size"]; got != 5 {
				t.Errorf("Decode size: got %v, want 5", got)
			}
			if got := e.Data["memory"]; got != "automatic" {
				t.Errorf("Decode memory: got %v, want automatic", got)
			}
		}
	}
	if !sawDecode {
		t.Error("Missing decode log entry")
	}
}
