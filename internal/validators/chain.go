// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-confbind/models"
)

// Chain is an ordered list of validators.
type Chain []Validator

// Validate runs every validator on obj in order and returns the first
// failure as a Validation load error. Later validators are not called.
// A failure that already is a Validation load error is returned unchanged.
func (c Chain) Validate(ctx context.Context, obj any, fields ...string) error {
	for _, v := range c {
		if v == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := v.Validate(ctx, obj, fields...); err != nil {
			return asValidationError(err)
		}
	}
	return nil
}

func asValidationError(err error) error {
	var le *models.LoadError
	if errors.As(err, &le) && le.Kind == models.KindValidation {
		return err
	}
	return &models.LoadError{
		Kind:    models.KindValidation,
		Message: err.Error(),
		Err:     err,
	}
}
