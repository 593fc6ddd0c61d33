// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tree

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a node of the configuration tree. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	seq  []Value
	m    *Mapping
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps n.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String wraps s.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Sequence wraps items. The slice is copied.
func Sequence(items ...Value) Value {
	seq := make([]Value, len(items))
	copy(seq, items)
	return Value{kind: KindSequence, seq: seq}
}

// Map wraps m. A nil mapping is treated as an empty one.
func Map(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}
	return Value{kind: KindMapping, m: m}
}

// EmptyMap returns a Mapping value without entries.
func EmptyMap() Value { return Map(nil) }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() bool { return v.b }

func (v Value) AsNumber() float64 { return v.n }

func (v Value) AsString() string { return v.s }

// Items returns a copy of the sequence elements, or nil for other kinds.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	out := make([]Value, len(v.seq))
	copy(out, v.seq)
	return out
}

// Mapping returns the underlying mapping, or nil for other kinds.
// Callers must not mutate a mapping obtained from a shared Value.
func (v Value) Mapping() *Mapping {
	if v.kind != KindMapping {
		return nil
	}
	return v.m
}

// Equal reports whether a and b hold the same data. Mapping key order is
// not significant.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindSequence:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if a.m.Len() != b.m.Len() {
			return false
		}
		for _, k := range a.m.keys {
			bv, ok := b.m.Get(k)
			if !ok || !Equal(a.m.values[k], bv) {
				return false
			}
		}
		return true
	}

	return false
}

// String renders v in a compact JSON-like form, keeping mapping keys in
// insertion order. It is meant for logs and error messages.
func (v Value) String() string {
	var sb strings.Builder
	v.render(&sb)
	return sb.String()
}

func (v Value) render(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		sb.WriteString(FormatNumber(v.n))
	case KindString:
		sb.WriteString(strconv.Quote(v.s))
	case KindSequence:
		sb.WriteByte('[')
		for i, item := range v.seq {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.render(sb)
		}
		sb.WriteByte(']')
	case KindMapping:
		sb.WriteByte('{')
		for i, k := range v.m.keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte(':')
			v.m.values[k].render(sb)
		}
		sb.WriteByte('}')
	}
}

// FormatNumber renders n without a trailing fraction when it is integral,
// so 42 is printed as "42" rather than "42.0" or "4.2e+01".
func FormatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
