// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared by the loader: load identifiers
// and type-safe context keys.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// LoadIDCtxKey is the key used to store the current load identifier in the
// context.
//
//	ctx := utils.WithLoadID(ctx, id)
var LoadIDCtxKey = contextKey("loadID")

// WithLoadID returns a copy of ctx carrying id.
func WithLoadID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, LoadIDCtxKey, id)
}

// GetLoadIDFromContext retrieves the load identifier from the context.
//
// Returns the id and an ok flag:
//   - ok == true when the value is found and is a string;
//   - ok == false when it is missing or has an unexpected type.
func GetLoadIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(LoadIDCtxKey).(string)
	return id, ok
}
