// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides the validation hook run after merging and
// after binding.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values. The loader
//     passes the *models.MergedConfig before binding and the bound record
//     after it. Supports optional field-level scoping.
//   - Chain: runs validators in registration order and stops at the first
//     rejection, which becomes a Validation load error.
//
// Implementations must not modify what they are given.
package validators

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}

// ValidatorFunc adapts a plain function to Validator.
type ValidatorFunc func(ctx context.Context, obj any, fields ...string) error

func (f ValidatorFunc) Validate(ctx context.Context, obj any, fields ...string) error {
	return f(ctx, obj, fields...)
}
