// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mapper

import "errors"

var (
	ErrEmptySegment   = errors.New("empty path segment")
	ErrInvalidSegment = errors.New("path segment has characters outside [A-Za-z0-9_]")
	ErrEmptyPath      = errors.New("descriptor has no path")
)
