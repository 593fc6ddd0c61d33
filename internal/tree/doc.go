// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tree implements the format-agnostic value tree shared by every
// configuration source.
//
// A [Value] is one of Null, Bool, Number, String, Sequence or Mapping.
// File decoders, the environment adapter and the CLI adapter all normalise
// their input into this shape, so the merge engine and the binder never
// need to know where a value came from.
//
// Numbers are float64. Integers are exact up to ±2^53 ([MaxExactInt]);
// integer literals beyond that are rejected with [ErrInexactInteger]
// instead of being rounded.
//
// Values are treated as immutable: [Merge] and [Set] never modify their
// arguments and always return fresh mappings along the modified path.
package tree
