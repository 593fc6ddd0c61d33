// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tree

import "errors"

// MaxExactInt is the largest integer magnitude a Number holds without
// rounding (2^53).
const MaxExactInt = 1 << 53

// ErrInexactInteger is returned for integer literals a Number cannot hold
// exactly.
var ErrInexactInteger = errors.New("integer beyond 2^53 cannot be held exactly")

// ErrUnsupportedType is returned by [FromAny] for Go values that have no
// tree representation (channels, functions, complex numbers, ...).
var ErrUnsupportedType = errors.New("unsupported value type")
