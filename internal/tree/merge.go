// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tree

// Merge deep-merges overlay onto base and returns the result.
//
// Rules:
//   - Mapping + Mapping: keys only in base are kept, keys only in overlay
//     are added, keys in both are merged recursively;
//   - Sequence + Sequence: overlay replaces base as a whole;
//   - anything else, including a Null on either side: overlay wins.
//
// Neither argument is modified.
func Merge(base, overlay Value) Value {
	if base.kind != KindMapping || overlay.kind != KindMapping {
		return overlay
	}

	out := base.m.clone()
	for _, k := range overlay.m.keys {
		ov := overlay.m.values[k]
		if bv, ok := out.values[k]; ok {
			out.Set(k, Merge(bv, ov))
			continue
		}
		out.Set(k, ov)
	}

	return Map(out)
}
