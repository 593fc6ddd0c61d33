// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tree

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FromAny converts a generic Go value, as produced by the JSON, YAML and
// TOML decoders, into a Value. Keys of Go maps have no order, so they are
// sorted to keep the result deterministic.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return ParseNumber(t.String())
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint64:
		return Uint(t)
	case time.Time:
		return String(t.Format(time.RFC3339Nano)), nil
	case time.Duration:
		return String(t.String()), nil
	case []any:
		items := make([]Value, 0, len(t))
		for i, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, v)
		}
		return Sequence(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		m := NewMapping()
		for _, k := range keys {
			v, err := FromAny(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			m.Set(k, v)
		}
		return Map(m), nil
	case fmt.Stringer:
		// go-toml local dates and times end up here
		return String(t.String()), nil
	}

	return fromReflect(reflect.ValueOf(x))
}

func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Uint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return FromAny(items)
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}
		return FromAny(out)
	}

	return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
}

// Int returns i as a Number, failing with ErrInexactInteger when i is
// beyond ±MaxExactInt.
func Int(i int64) (Value, error) {
	if i > MaxExactInt || i < -MaxExactInt {
		return Value{}, fmt.Errorf("%w: %d", ErrInexactInteger, i)
	}
	return Number(float64(i)), nil
}

// Uint is Int for unsigned integers.
func Uint(u uint64) (Value, error) {
	if u > MaxExactInt {
		return Value{}, fmt.Errorf("%w: %d", ErrInexactInteger, u)
	}
	return Number(float64(u)), nil
}

// ParseNumber parses a decimal literal. Integer literals must be exact
// (see [Int]); literals with a fraction or an exponent are parsed as
// float64.
func ParseNumber(s string) (Value, error) {
	if isIntegerLiteral(s) {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s", ErrInexactInteger, s)
		}
		return Int(i)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("invalid number %q", s)
	}
	return Number(f), nil
}

func isIntegerLiteral(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ToAny converts v into plain Go values: nil, bool, int64 (integral
// numbers), float64, string, []any and map[string]any.
func ToAny(v Value) any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if v.n == math.Trunc(v.n) && v.n >= math.MinInt64 && v.n < math.MaxInt64 {
			return int64(v.n)
		}
		return v.n
	case KindString:
		return v.s
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = ToAny(item)
		}
		return out
	case KindMapping:
		out := make(map[string]any, v.m.Len())
		for _, k := range v.m.keys {
			out[k] = ToAny(v.m.values[k])
		}
		return out
	}

	return nil
}
