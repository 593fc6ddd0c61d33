// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tree

import "strings"

// Lookup walks path from root through nested mappings. It reports false
// when a segment is missing or an intermediate node is not a mapping.
// An empty path returns root itself.
func Lookup(root Value, path []string) (Value, bool) {
	cur := root
	for _, seg := range path {
		if cur.kind != KindMapping {
			return Value{}, false
		}
		next, ok := cur.m.Get(seg)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Present reports whether path resolves to a non-null value.
func Present(root Value, path []string) bool {
	v, ok := Lookup(root, path)
	return ok && !v.IsNull()
}

// Set returns a copy of root with leaf stored at path. Missing or
// non-mapping intermediate nodes are replaced by mappings. root is not
// modified.
func Set(root Value, path []string, leaf Value) Value {
	if len(path) == 0 {
		return leaf
	}

	var m *Mapping
	if root.kind == KindMapping {
		m = root.m.clone()
	} else {
		m = NewMapping()
	}

	child, _ := m.Get(path[0])
	m.Set(path[0], Set(child, path[1:], leaf))

	return Map(m)
}

// JoinPath renders a path in dotted form, e.g. "database.url".
func JoinPath(path []string) string {
	return strings.Join(path, ".")
}

// Walk calls fn for every leaf of root in insertion order. A leaf is any
// value that is not a non-empty mapping. Returning false from fn stops the
// walk.
func Walk(root Value, fn func(path []string, leaf Value) bool) {
	walk(root, nil, fn)
}

func walk(v Value, prefix []string, fn func([]string, Value) bool) bool {
	if v.kind != KindMapping || v.m.Len() == 0 {
		if len(prefix) == 0 {
			return true
		}
		return fn(prefix, v)
	}

	for _, k := range v.m.keys {
		p := make([]string, len(prefix)+1)
		copy(p, prefix)
		p[len(prefix)] = k
		if !walk(v.m.values[k], p, fn) {
			return false
		}
	}
	return true
}
