// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import "github.com/creachadair/jcodec"

// Record is a simple object with an integer and a string field.
type Record struct {
	ID   int
	Name string
}

func (r *Record) UnmarshalTree(d *jcodec.Decoder) error {
	k, err := d.Keyed()
	if err != nil {
		return err
	}
	if r.ID, err = k.Int("id"); err != nil {
		return err
	}
	r.Name, err = k.String("name")
	return err
}

func (r *Record) MarshalTree(e *jcodec.Encoder) error {
	k, err := e.Keyed()
	if err != nil {
		return err
	}
	if err := k.Int("id", r.ID); err != nil {
		return err
	}
	return k.String("name", r.Name)
}

// Records is an array of Record values.
type Records []Record

func (rs *Records) UnmarshalTree(d *jcodec.Decoder) error {
	u, err := d.Unkeyed()
	if err != nil {
		return err
	}
	*rs = make(Records, u.Len())
	for i := range *rs {
		if err := u.Decode(&(*rs)[i]); err != nil {
			return err
		}
	}
	return nil
}

func (rs *Records) MarshalTree(e *jcodec.Encoder) error {
	u, err := e.Unkeyed()
	if err != nil {
		return err
	}
	for i := range *rs {
		if err := u.Encode(&(*rs)[i]); err != nil {
			return err
		}
	}
	return nil
}

// Tagged is an object holding a string and an array of strings, read and
// written through a nested unkeyed container.
type Tagged struct {
	ID   string
	Tags []string
}

func (t *Tagged) UnmarshalTree(d *jcodec.Decoder) error {
	k, err := d.Keyed()
	if err != nil {
		return err
	}
	if t.ID, err = k.String("id"); err != nil {
		return err
	}
	u, err := k.Unkeyed("arr")
	if err != nil {
		return err
	}
	t.Tags = nil
	for !u.AtEnd() {
		s, err := u.String()
		if err != nil {
			return err
		}
		t.Tags = append(t.Tags, s)
	}
	return nil
}

func (t *Tagged) MarshalTree(e *jcodec.Encoder) error {
	k, err := e.Keyed()
	if err != nil {
		return err
	}
	if err := k.String("id", t.ID); err != nil {
		return err
	}
	u, err := k.Unkeyed("arr")
	if err != nil {
		return err
	}
	for _, s := range t.Tags {
		if err := u.String(s); err != nil {
			return err
		}
	}
	return nil
}

// Func adapts a function to the [jcodec.Marshaler] interface.
type Func func(*jcodec.Encoder) error

func (f Func) MarshalTree(e *jcodec.Encoder) error { return f(e) }

// DecodeFunc adapts a function to the [jcodec.Unmarshaler] interface.
type DecodeFunc func(*jcodec.Decoder) error

func (f DecodeFunc) UnmarshalTree(d *jcodec.Decoder) error { return f(d) }
