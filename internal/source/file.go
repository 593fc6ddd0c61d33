// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/MKhiriev/go-confbind/internal/decoder"
	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/MKhiriev/go-confbind/models"
)

// FileAdapter reads and decodes configuration files.
type FileAdapter struct {
	registry *decoder.Registry
	readFile func(string) ([]byte, error)
}

// NewFileAdapter returns an adapter that picks decoders from registry.
func NewFileAdapter(registry *decoder.Registry) *FileAdapter {
	if registry == nil {
		registry = decoder.NewRegistry()
	}
	return &FileAdapter{
		registry: registry,
		readFile: os.ReadFile,
	}
}

// Load decodes the file described by src. A missing file yields an empty
// mapping unless src.Required is set. The decoded document must be a
// mapping; an empty document counts as an empty mapping.
func (a *FileAdapter) Load(ctx context.Context, src models.Source) (tree.Value, error) {
	if err := ctx.Err(); err != nil {
		return tree.Value{}, err
	}

	data, err := a.readFile(src.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !src.Required {
			return tree.EmptyMap(), nil
		}
		return tree.Value{}, ioError(src.Path, err)
	}

	dec, err := a.registry.Resolve(src.Path, src.Format)
	if err != nil {
		return tree.Value{}, parseError(src.Path, err)
	}

	v, err := dec.Decode(data)
	if err != nil {
		return tree.Value{}, parseError(src.Path, err)
	}

	switch v.Kind() {
	case tree.KindNull:
		return tree.EmptyMap(), nil
	case tree.KindMapping:
		return v, nil
	default:
		return tree.Value{}, parseError(src.Path, ErrTopLevelNotMapping)
	}
}
