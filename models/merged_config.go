// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/MKhiriev/go-confbind/internal/tree"
)

// MergedConfig is the canonical value tree produced by the merge engine,
// together with the source that contributed each leaf.
type MergedConfig struct {
	Tree tree.Value

	// Provenance maps a dotted leaf path ("database.url") to its source.
	Provenance map[string]Source
}

// NewMergedConfig returns an empty config: an empty mapping with no
// provenance.
func NewMergedConfig() *MergedConfig {
	return &MergedConfig{
		Tree:       tree.EmptyMap(),
		Provenance: make(map[string]Source),
	}
}

// Lookup returns the value at path.
func (c *MergedConfig) Lookup(path ...string) (tree.Value, bool) {
	return tree.Lookup(c.Tree, path)
}

// SourceOf returns the source that set the leaf at path.
func (c *MergedConfig) SourceOf(path ...string) (Source, bool) {
	src, ok := c.Provenance[tree.JoinPath(path)]
	return src, ok
}
