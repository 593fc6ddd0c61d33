// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/MKhiriev/go-confbind/models"
)

// TreeRule checks one value of the merged tree. It is only called when the
// value is present.
type TreeRule func(v tree.Value) error

// MergedConfigValidator applies per-path rules to a merged config, before
// anything is bound.
type MergedConfigValidator struct {
	rules    map[string]TreeRule
	order    []string
	required map[string]bool
}

func NewMergedConfigValidator() *MergedConfigValidator {
	return &MergedConfigValidator{
		rules:    make(map[string]TreeRule),
		required: make(map[string]bool),
	}
}

// Rule registers rule for the dotted path. Paths are checked in
// registration order.
func (v *MergedConfigValidator) Rule(path string, rule TreeRule) *MergedConfigValidator {
	if _, ok := v.rules[path]; !ok {
		v.order = append(v.order, path)
	}
	v.rules[path] = rule
	return v
}

// Require makes an absent value at path a failure instead of skipping its
// rule.
func (v *MergedConfigValidator) Require(path string) *MergedConfigValidator {
	if _, ok := v.rules[path]; !ok {
		v.order = append(v.order, path)
		v.rules[path] = nil
	}
	v.required[path] = true
	return v
}

// Validate checks cfg, which must be a *models.MergedConfig. fields limits
// the check to the given dotted paths; an unregistered path is an error.
func (v *MergedConfigValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	cfg, ok := obj.(*models.MergedConfig)
	if !ok {
		return ErrUnsupportedType
	}

	if len(fields) == 0 {
		fields = v.order
	}

	for _, f := range fields {
		rule, known := v.rules[f]
		if !known {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}

		val, found := tree.Lookup(cfg.Tree, strings.Split(f, "."))
		if !found || val.IsNull() {
			if v.required[f] {
				return fmt.Errorf("%s: %w", f, ErrFieldAbsent)
			}
			continue
		}

		if rule == nil {
			continue
		}
		if err := rule(val); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
	}

	return nil
}
