// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Builder errors. They describe a misconfigured Loader, not bad
// configuration data, and are returned by Load before any source is read.
var (
	// ErrEmptyPath indicates a file source declared with an empty path.
	ErrEmptyPath = errors.New("file source path is empty")
	// ErrUnknownFormat indicates a file format no decoder is registered for.
	ErrUnknownFormat = errors.New("unknown file format")
	// ErrNilValidator indicates WithValidator was given nil.
	ErrNilValidator = errors.New("validator is nil")
)
