// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"dario.cat/mergo"
)

// Options tunes a Loader. Zero fields take the values of DefaultOptions.
type Options struct {
	// ListSeparator splits env and CLI values of sequence fields that are
	// not JSON arrays.
	ListSeparator string

	// DefaultFileNames are the file names WithDefaultFiles looks for, in
	// declaration (and therefore priority) order.
	DefaultFileNames []string

	// StructValidation runs `validate` struct tags on the bound record.
	StructValidation bool
}

// DefaultOptions returns the options used for unset fields.
func DefaultOptions() Options {
	return Options{
		ListSeparator:    ",",
		DefaultFileNames: []string{"config.json", "config.yaml", "config.toml"},
	}
}

// withDefaults fills the zero fields of o from DefaultOptions.
func (o Options) withDefaults() (Options, error) {
	out := o
	if err := mergo.Merge(&out, DefaultOptions()); err != nil {
		return Options{}, fmt.Errorf("error merging loader options: %w", err)
	}
	return out, nil
}
