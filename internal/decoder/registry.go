// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package decoder

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-confbind/models"
)

// Registry maps file formats to decoders.
type Registry struct {
	decoders map[models.Format]Decoder
}

// NewRegistry returns a registry with the JSON, YAML and TOML decoders.
func NewRegistry() *Registry {
	return &Registry{
		decoders: map[models.Format]Decoder{
			models.FormatJSON: JSON{},
			models.FormatYAML: YAML{},
			models.FormatTOML: TOML{},
		},
	}
}

// Register installs d for format, replacing any previous decoder.
func (r *Registry) Register(format models.Format, d Decoder) {
	r.decoders[format] = d
}

// Lookup returns the decoder for format.
func (r *Registry) Lookup(format models.Format) (Decoder, error) {
	d, ok := r.decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return d, nil
}

// Resolve picks the decoder for a file: the explicit format when set,
// otherwise the one matching the file extension.
func (r *Registry) Resolve(path string, explicit models.Format) (Decoder, error) {
	format := explicit
	if format == models.FormatAuto {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	}
	return r.Lookup(format)
}

// FormatFromPath infers the format from the extension of path.
func FormatFromPath(path string) (models.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return models.FormatJSON, nil
	case ".yaml", ".yml":
		return models.FormatYAML, nil
	case ".toml":
		return models.FormatTOML, nil
	default:
		return models.FormatAuto, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}
}
