// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StructValidator checks `validate:"..."` struct tags of a bound record.
// Error messages name fields by their config path segment.
type StructValidator struct {
	validate *validator.Validate
}

func NewStructValidator() *StructValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("config"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &StructValidator{validate: v}
}

// Validate checks obj, which must be a struct or a pointer to one. When
// fields are given only those struct fields (Go names, dotted for nesting)
// are checked.
func (v *StructValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return ErrUnsupportedType
	}

	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}
	return describe(err)
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describeField(fe))
	}
	return fmt.Errorf("%s: %w", strings.Join(parts, "; "), err)
}

func describeField(fe validator.FieldError) string {
	// drop the root struct name
	_, path, _ := strings.Cut(fe.Namespace(), ".")

	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", path, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", path, fe.Tag())
}
