// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package decoder turns configuration file content into a [tree.Value].
//
// JSON and YAML decoders keep mapping keys in document order. TOML content
// is decoded through a Go map, so its keys come out sorted.
package decoder

//go:generate mockgen -source=interfaces.go -destination=../mock/decoder_mock.go -package=mock

import "github.com/MKhiriev/go-confbind/internal/tree"

// Decoder decodes one file format.
type Decoder interface {
	// Decode parses data. Empty content decodes to Null.
	Decode(data []byte) (tree.Value, error)
}
