// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-confbind/internal/tree"
)

// Unbound is the EnvKey/CLIFlag value that excludes a field from the
// environment or the command line entirely.
const Unbound = "-"

// FieldKind is the declared shape of a record field. It drives coercion of
// raw environment/CLI strings and the shape check performed by the binder.
type FieldKind uint8

const (
	// FieldAny accepts any value; raw strings are inferred.
	FieldAny FieldKind = iota
	FieldBool
	// FieldNumber covers every integer and floating point type.
	FieldNumber
	FieldString
	// FieldDuration is a time.Duration: a "1h30m" string or a number of
	// nanoseconds.
	FieldDuration
	FieldSequence
	FieldMapping
	// FieldRecord is a nested record described by FieldDescriptor.Fields.
	FieldRecord
)

func (k FieldKind) String() string {
	switch k {
	case FieldAny:
		return "any"
	case FieldBool:
		return "bool"
	case FieldNumber:
		return "number"
	case FieldString:
		return "string"
	case FieldDuration:
		return "duration"
	case FieldSequence:
		return "sequence"
	case FieldMapping:
		return "mapping"
	case FieldRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Accepts reports whether a value of kind vk has the right shape for k.
// Null is never accepted; callers treat it as absence.
func (k FieldKind) Accepts(vk tree.Kind) bool {
	switch k {
	case FieldAny:
		return vk != tree.KindNull
	case FieldBool:
		return vk == tree.KindBool
	case FieldNumber:
		return vk == tree.KindNumber
	case FieldString:
		return vk == tree.KindString
	case FieldDuration:
		return vk == tree.KindString || vk == tree.KindNumber
	case FieldSequence:
		return vk == tree.KindSequence
	case FieldMapping, FieldRecord:
		return vk == tree.KindMapping
	}
	return false
}

// FieldDescriptor is the metadata of one record field. A descriptor table
// is built once per target type and never modified afterwards.
type FieldDescriptor struct {
	// CanonicalName is the field's own name, e.g. "max_connections".
	CanonicalName string

	// Path is the full location of the field in the value tree,
	// e.g. ["database", "url"].
	Path []string

	// EnvKey overrides the derived environment variable name. Empty means
	// derive it; Unbound disables environment lookup.
	EnvKey string

	// CLIFlag overrides the derived flag name (without leading dashes).
	// Empty means derive it; Unbound disables the flag.
	CLIFlag string

	Required       bool
	IsNestedRecord bool

	Kind FieldKind
	// ElemKind is the element kind of a FieldSequence.
	ElemKind FieldKind

	// Range limits a FieldNumber to what its Go type can hold. ElemRange
	// does the same for the elements of a FieldSequence. Nil means any
	// number is accepted.
	Range     *NumberRange
	ElemRange *NumberRange

	// Default is applied by the binder when the field is absent from every
	// source. Only meaningful when HasDefault is set.
	Default    tree.Value
	HasDefault bool

	// Fields holds the children of a nested record, with full paths.
	Fields []FieldDescriptor
}

// Name returns the dotted path of the field, used in error messages.
func (d FieldDescriptor) Name() string {
	return strings.Join(d.Path, ".")
}

// Leaves returns every non-record descriptor of descs, depth first, in
// declaration order.
func Leaves(descs []FieldDescriptor) []FieldDescriptor {
	var out []FieldDescriptor
	for _, d := range descs {
		if d.IsNestedRecord {
			out = append(out, Leaves(d.Fields)...)
			continue
		}
		out = append(out, d)
	}
	return out
}

// NumberRange is the set of numbers a Go numeric type holds exactly.
type NumberRange struct {
	Integral bool
	Unsigned bool
	// Bits is the size of the type: 8, 16, 32 or 64.
	Bits int
}

// RangeOf returns the NumberRange of t, or false when t is not numeric.
func RangeOf(t reflect.Type) (NumberRange, bool) {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NumberRange{Integral: true, Bits: t.Bits()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NumberRange{Integral: true, Unsigned: true, Bits: t.Bits()}, true
	case reflect.Float32, reflect.Float64:
		return NumberRange{Bits: t.Bits()}, true
	}
	return NumberRange{}, false
}

// Contains reports whether f converts to the type without truncation or
// overflow.
func (r NumberRange) Contains(f float64) bool {
	if !r.Integral {
		return r.Bits != 32 || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) <= math.MaxFloat32
	}
	if f != math.Trunc(f) {
		return false
	}
	if r.Unsigned {
		return f >= 0 && f < math.Ldexp(1, r.Bits)
	}
	limit := math.Ldexp(1, r.Bits-1)
	return f >= -limit && f < limit
}

// IsFractional reports whether f is rejected only because of its
// fractional part.
func (r NumberRange) IsFractional(f float64) bool {
	return r.Integral && f != math.Trunc(f) && !math.IsInf(f, 0)
}

func (r NumberRange) String() string {
	switch {
	case !r.Integral:
		return "float" + strconv.Itoa(r.Bits)
	case r.Unsigned:
		return "uint" + strconv.Itoa(r.Bits)
	default:
		return "int" + strconv.Itoa(r.Bits)
	}
}
