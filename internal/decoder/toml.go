// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package decoder

import (
	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/pelletier/go-toml/v2"
)

// TOML decodes TOML documents. Local dates and times become strings.
type TOML struct{}

func (TOML) Decode(data []byte) (tree.Value, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return tree.Value{}, err
	}
	if doc == nil {
		return tree.Null(), nil
	}
	return tree.FromAny(doc)
}
