// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a load failure. Kinds do not overlap.
type ErrorKind uint8

const (
	// KindIo is a file read failure other than a missing optional file.
	KindIo ErrorKind = iota + 1
	// KindParse means a decoder rejected file content.
	KindParse
	// KindCoerce means a raw env/CLI string did not convert to the field kind.
	KindCoerce
	// KindMissingRequired means a mandatory field is absent from all sources.
	KindMissingRequired
	// KindUnknownFlag means a CLI token matched no descriptor.
	KindUnknownFlag
	// KindTypeMismatch means a merged value has the wrong shape.
	KindTypeMismatch
	// KindValidation means a validator rejected the merged config.
	KindValidation
	// KindMapping means a descriptor path cannot be turned into source keys.
	KindMapping
)

// Sentinels matching each ErrorKind, usable with errors.Is.
var (
	ErrIo              = errors.New("io error")
	ErrParse           = errors.New("parse error")
	ErrCoerce          = errors.New("coerce error")
	ErrMissingRequired = errors.New("missing required field")
	ErrUnknownFlag     = errors.New("unknown flag")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrValidation      = errors.New("validation failed")
	ErrMapping         = errors.New("mapping error")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindIo:
		return ErrIo
	case KindParse:
		return ErrParse
	case KindCoerce:
		return ErrCoerce
	case KindMissingRequired:
		return ErrMissingRequired
	case KindUnknownFlag:
		return ErrUnknownFlag
	case KindTypeMismatch:
		return ErrTypeMismatch
	case KindValidation:
		return ErrValidation
	case KindMapping:
		return ErrMapping
	}
	return nil
}

func (k ErrorKind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return "unknown error"
}

// LoadError is the single tagged error returned by a failed load. Only the
// fields relevant to Kind are set.
type LoadError struct {
	Kind ErrorKind

	// Path is the file path for Io/Parse, or the dotted field path for
	// TypeMismatch.
	Path string
	// Field is the dotted field name for MissingRequired and Mapping.
	Field string
	// Key is the env variable or flag for Coerce.
	Key string
	// Flag is the offending token for UnknownFlag.
	Flag string

	Expected string
	Found    string
	Raw      string

	// Message is the validator message for Validation.
	Message string

	Err error
}

func (e *LoadError) Error() string {
	var msg string
	switch e.Kind {
	case KindIo:
		msg = fmt.Sprintf("io error reading %s", e.Path)
	case KindParse:
		msg = fmt.Sprintf("parse error in %s", e.Path)
	case KindCoerce:
		msg = fmt.Sprintf("cannot coerce %s=%q to %s", e.Key, e.Raw, e.Expected)
	case KindMissingRequired:
		msg = fmt.Sprintf("missing required field %s", e.Field)
	case KindUnknownFlag:
		msg = fmt.Sprintf("unknown flag %s", e.Flag)
	case KindTypeMismatch:
		msg = fmt.Sprintf("type mismatch at %s: expected %s, found %s", e.Path, e.Expected, e.Found)
	case KindValidation:
		return fmt.Sprintf("validation failed: %s", e.Message)
	case KindMapping:
		msg = fmt.Sprintf("cannot map field %s", e.Field)
	default:
		msg = "config load error"
	}

	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *LoadError) Unwrap() []error {
	out := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		out = append(out, s)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// KindOf returns the kind of the first LoadError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind
	}
	return 0
}
