// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package decoder

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported config file format")
	ErrTrailingData      = errors.New("unexpected data after top-level value")
	ErrInvalidKey        = errors.New("mapping key is not a scalar")
)
