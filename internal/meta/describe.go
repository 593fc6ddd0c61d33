// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package meta builds field descriptor tables from Go struct types.
//
// Recognised struct tags:
//
//	config:"name"           tree key of the field (default: snake_case Go name)
//	config:"name,optional"  the field may be absent from every source
//	config:"name,required"  the field must be present even if it is a pointer
//	config:"-"              the field is not configuration
//	env:"KEY" / env:"-"     explicit environment variable, or none
//	flag:"name" / flag:"-"  explicit long flag, or none
//	default:"raw"           default, in the same textual form as env values
//
// Pointer fields and fields with a default are optional unless marked
// required. Tables are cached per type.
package meta

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-confbind/internal/coerce"
	"github.com/MKhiriev/go-confbind/internal/mapper"
	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/MKhiriev/go-confbind/models"
)

var (
	ErrNotStruct        = errors.New("target must be a struct type")
	ErrUnsupportedField = errors.New("unsupported field type")
	ErrRecursiveRecord  = errors.New("record type contains itself")
	ErrInvalidDefault   = errors.New("invalid default")
)

var (
	durationType        = reflect.TypeFor[time.Duration]()
	timeType            = reflect.TypeFor[time.Time]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

var cache sync.Map // reflect.Type -> []models.FieldDescriptor

// Describe returns the descriptor table of T, which must be a struct.
func Describe[T any]() ([]models.FieldDescriptor, error) {
	return DescribeType(reflect.TypeFor[T]())
}

// DescribeType is Describe for a reflect.Type.
func DescribeType(t reflect.Type) ([]models.FieldDescriptor, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, &models.LoadError{Kind: models.KindMapping, Field: t.String(), Err: ErrNotStruct}
	}

	if cached, ok := cache.Load(t); ok {
		return cached.([]models.FieldDescriptor), nil
	}

	descs, err := describeStruct(t, nil, map[reflect.Type]bool{})
	if err != nil {
		return nil, err
	}

	cache.Store(t, descs)
	return descs, nil
}

func describeStruct(t reflect.Type, prefix []string, visiting map[reflect.Type]bool) ([]models.FieldDescriptor, error) {
	if visiting[t] {
		return nil, &models.LoadError{Kind: models.KindMapping, Field: strings.Join(prefix, "."), Err: fmt.Errorf("%w: %s", ErrRecursiveRecord, t)}
	}
	visiting[t] = true
	defer delete(visiting, t)

	var out []models.FieldDescriptor
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		d, skip, err := describeField(f, prefix, visiting)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func describeField(f reflect.StructField, prefix []string, visiting map[reflect.Type]bool) (models.FieldDescriptor, bool, error) {
	tag := f.Tag.Get("config")
	if tag == "-" {
		return models.FieldDescriptor{}, true, nil
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = mapper.Normalize(f.Name)
	}

	path := make([]string, len(prefix)+1)
	copy(path, prefix)
	path[len(prefix)] = name

	d := models.FieldDescriptor{
		CanonicalName: name,
		Path:          path,
		EnvKey:        f.Tag.Get("env"),
		CLIFlag:       f.Tag.Get("flag"),
	}

	ft := f.Type
	optional := false
	if ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
		optional = true
	}

	kind, elem, err := kindOf(ft)
	if err != nil {
		return d, false, &models.LoadError{Kind: models.KindMapping, Field: d.Name(), Err: err}
	}
	d.Kind, d.ElemKind = kind, elem
	d.Range, d.ElemRange = rangesOf(ft, kind, elem)

	if kind == models.FieldRecord {
		d.IsNestedRecord = true
		if d.Fields, err = describeStruct(ft, path, visiting); err != nil {
			return d, false, err
		}
	}

	if raw, ok := f.Tag.Lookup("default"); ok {
		if d.IsNestedRecord {
			return d, false, &models.LoadError{Kind: models.KindMapping, Field: d.Name(), Err: fmt.Errorf("%w: records take defaults per field", ErrInvalidDefault)}
		}
		v, err := coerce.Raw(raw, kind, elem, coerce.DefaultSeparator)
		if err != nil {
			return d, false, &models.LoadError{Kind: models.KindMapping, Field: d.Name(), Err: fmt.Errorf("%w %q: %w", ErrInvalidDefault, raw, err)}
		}
		if !fitsRanges(v, d) {
			return d, false, &models.LoadError{Kind: models.KindMapping, Field: d.Name(), Err: fmt.Errorf("%w %q: out of range for %s", ErrInvalidDefault, raw, ft)}
		}
		d.Default, d.HasDefault = v, true
		optional = true
	}

	for _, opt := range strings.Split(opts, ",") {
		switch strings.TrimSpace(opt) {
		case "optional":
			optional = true
		case "required":
			optional = false
		}
	}
	d.Required = !optional

	return d, false, nil
}

func kindOf(t reflect.Type) (models.FieldKind, models.FieldKind, error) {
	switch {
	case t == durationType:
		return models.FieldDuration, models.FieldAny, nil
	case t == timeType, reflect.PointerTo(t).Implements(textUnmarshalerType):
		return models.FieldString, models.FieldAny, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return models.FieldBool, models.FieldAny, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return models.FieldNumber, models.FieldAny, nil
	case reflect.String:
		return models.FieldString, models.FieldAny, nil
	case reflect.Interface:
		return models.FieldAny, models.FieldAny, nil
	case reflect.Struct:
		return models.FieldRecord, models.FieldAny, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return 0, 0, fmt.Errorf("%w: %s (keys must be strings)", ErrUnsupportedField, t)
		}
		return models.FieldMapping, models.FieldAny, nil
	case reflect.Slice, reflect.Array:
		et := t.Elem()
		if et.Kind() == reflect.Pointer {
			et = et.Elem()
		}
		elem, _, err := kindOf(et)
		if err != nil {
			return 0, 0, err
		}
		if elem == models.FieldRecord {
			// elements are not described individually
			elem = models.FieldMapping
		}
		return models.FieldSequence, elem, nil
	}

	return 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedField, t)
}

// rangesOf returns the numeric bounds of t itself, or of its elements when
// it is a sequence of numbers.
func rangesOf(t reflect.Type, kind, elem models.FieldKind) (*models.NumberRange, *models.NumberRange) {
	switch {
	case kind == models.FieldNumber:
		if r, ok := models.RangeOf(t); ok {
			return &r, nil
		}
	case kind == models.FieldSequence && elem == models.FieldNumber:
		et := t.Elem()
		if et.Kind() == reflect.Pointer {
			et = et.Elem()
		}
		if r, ok := models.RangeOf(et); ok {
			return nil, &r
		}
	}
	return nil, nil
}

func fitsRanges(v tree.Value, d models.FieldDescriptor) bool {
	switch {
	case d.Range != nil && v.Kind() == tree.KindNumber:
		return d.Range.Contains(v.AsNumber())
	case d.ElemRange != nil && v.Kind() == tree.KindSequence:
		for _, item := range v.Items() {
			if item.Kind() == tree.KindNumber && !d.ElemRange.Contains(item.AsNumber()) {
				return false
			}
		}
	}
	return true
}
