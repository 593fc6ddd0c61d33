// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import (
	"errors"

	"github.com/MKhiriev/go-confbind/models"
)

var (
	ErrTopLevelNotMapping = errors.New("top-level value must be a mapping")
	ErrMissingValue       = errors.New("flag needs a value")
	ErrDuplicateFlag      = errors.New("flag is declared by more than one field")
)

func ioError(path string, err error) error {
	return &models.LoadError{Kind: models.KindIo, Path: path, Err: err}
}

func parseError(path string, err error) error {
	return &models.LoadError{Kind: models.KindParse, Path: path, Err: err}
}

func coerceError(key string, kind models.FieldKind, raw string, err error) error {
	return &models.LoadError{
		Kind:     models.KindCoerce,
		Key:      key,
		Expected: kind.String(),
		Raw:      raw,
		Err:      err,
	}
}

func missingRequired(d models.FieldDescriptor) error {
	return &models.LoadError{Kind: models.KindMissingRequired, Field: d.Name()}
}

func unknownFlag(flag string) error {
	return &models.LoadError{Kind: models.KindUnknownFlag, Flag: flag}
}
