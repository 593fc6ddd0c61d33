// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tree

// Mapping is a string-keyed collection that remembers insertion order.
// Order has no effect on merge semantics; it only keeps error messages and
// reports stable.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Set stores v under key. Re-setting an existing key keeps its position.
func (m *Mapping) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// clone returns a shallow copy: nested mappings are shared, which is safe
// because they are never mutated once wrapped in a Value.
func (m *Mapping) clone() *Mapping {
	out := &Mapping{
		keys:   make([]string, len(m.keys), len(m.keys)+1),
		values: make(map[string]Value, len(m.values)+1),
	}
	copy(out.keys, m.keys)
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}
