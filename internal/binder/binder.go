// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package binder turns a merged value tree into a typed record.
//
// Binding happens in two steps. [Complete] walks the descriptor table over
// the tree: absent fields receive their defaults, absent required fields
// fail with MissingRequired and values of the wrong shape fail with
// TypeMismatch, as do numbers the Go field cannot hold exactly. [Decode]
// then maps the completed tree onto the Go struct.
// The tree is never modified.
package binder

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-confbind/internal/mapper"
	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/MKhiriev/go-confbind/models"
	"github.com/go-viper/mapstructure/v2"
)

var (
	ErrFractionalInteger = errors.New("number has a fractional part")
	ErrNumberOutOfRange  = errors.New("number out of range")
)

// Bind completes cfg.Tree against descs and decodes it into a new T.
func Bind[T any](cfg *models.MergedConfig, descs []models.FieldDescriptor) (*T, error) {
	completed, err := Complete(cfg.Tree, descs)
	if err != nil {
		return nil, err
	}
	return Decode[T](completed)
}

// Complete returns root with defaults applied, after checking presence and
// shape of every described field. Fields not described are left untouched.
//
// An absent optional record is skipped entirely. An absent required record
// is checked field by field, so that its children report what is missing.
func Complete(root tree.Value, descs []models.FieldDescriptor) (tree.Value, error) {
	out := root
	if out.IsNull() {
		out = tree.EmptyMap()
	}

	var err error
	for _, d := range descs {
		if out, err = complete(out, d); err != nil {
			return tree.Value{}, err
		}
	}
	return out, nil
}

func complete(root tree.Value, d models.FieldDescriptor) (tree.Value, error) {
	v, found := tree.Lookup(root, d.Path)
	present := found && !v.IsNull()

	if d.IsNestedRecord {
		if present && v.Kind() != tree.KindMapping {
			return tree.Value{}, mismatch(d.Name(), d.Kind.String(), v.Kind())
		}
		if !present && !d.Required {
			return root, nil
		}

		var err error
		for _, child := range d.Fields {
			if root, err = complete(root, child); err != nil {
				return tree.Value{}, err
			}
		}
		return root, nil
	}

	if !present {
		switch {
		case d.HasDefault:
			return tree.Set(root, d.Path, d.Default), nil
		case d.Required:
			return tree.Value{}, &models.LoadError{Kind: models.KindMissingRequired, Field: d.Name()}
		}
		return root, nil
	}

	if !d.Kind.Accepts(v.Kind()) {
		return tree.Value{}, mismatch(d.Name(), d.Kind.String(), v.Kind())
	}
	if err := checkRange(d.Name(), d.Range, v); err != nil {
		return tree.Value{}, err
	}

	if d.Kind == models.FieldSequence && d.ElemKind != models.FieldAny {
		for i, item := range v.Items() {
			path := d.Name() + "[" + strconv.Itoa(i) + "]"
			if !d.ElemKind.Accepts(item.Kind()) {
				return tree.Value{}, mismatch(path, d.ElemKind.String(), item.Kind())
			}
			if err := checkRange(path, d.ElemRange, item); err != nil {
				return tree.Value{}, err
			}
		}
	}

	return root, nil
}

// checkRange rejects numbers the target Go type cannot hold exactly.
func checkRange(path string, r *models.NumberRange, v tree.Value) error {
	if r == nil || v.Kind() != tree.KindNumber {
		return nil
	}

	f := v.AsNumber()
	if r.Contains(f) {
		return nil
	}

	cause := ErrNumberOutOfRange
	if r.IsFractional(f) {
		cause = ErrFractionalInteger
	}
	return &models.LoadError{
		Kind:     models.KindTypeMismatch,
		Path:     path,
		Expected: r.String(),
		Found:    "number " + tree.FormatNumber(f),
		Err:      cause,
	}
}

func mismatch(path, expected string, found tree.Kind) error {
	return &models.LoadError{
		Kind:     models.KindTypeMismatch,
		Path:     path,
		Expected: expected,
		Found:    found.String(),
	}
}

// Decode maps v onto a new T. Struct fields match tree keys by their
// `config` tag, or by their snake_case name when untagged.
func Decode[T any](v tree.Value) (*T, error) {
	out := new(T)

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "config",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			integralHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		MatchName: func(key, field string) bool {
			return strings.EqualFold(key, field) || mapper.Normalize(field) == key
		},
	})
	if err != nil {
		return nil, &models.LoadError{Kind: models.KindMapping, Err: err}
	}

	if err := dec.Decode(tree.ToAny(v)); err != nil {
		return nil, decodeError(reflect.TypeFor[T](), err)
	}

	return out, nil
}

// decodeError turns the first mapstructure failure into a TypeMismatch
// naming the field and the types involved.
func decodeError(target reflect.Type, err error) error {
	le := &models.LoadError{
		Kind:     models.KindTypeMismatch,
		Path:     target.String(),
		Expected: "decodable value",
		Found:    "incompatible value",
		Err:      err,
	}

	var de *mapstructure.DecodeError
	if errors.As(err, &de) {
		le.Path = fieldPath(de.Name())
	}

	var (
		ne *numberError
		pe *mapstructure.ParseError
		ue *mapstructure.UnconvertibleTypeError
	)
	switch {
	case errors.As(err, &ne):
		le.Expected, le.Found = ne.target.String(), "number "+tree.FormatNumber(ne.value)
	case errors.As(err, &pe):
		le.Expected, le.Found = pe.Expected.Type().String(), fmt.Sprintf("%T", pe.Value)
	case errors.As(err, &ue):
		le.Expected, le.Found = ue.Expected.Type().String(), fmt.Sprintf("%T", ue.Value)
	}

	return le
}

// fieldPath converts a mapstructure field name ("Database.MaxConns",
// "tags[1]") into the dotted tree path used everywhere else.
func fieldPath(name string) string {
	segs := strings.Split(name, ".")
	for i, seg := range segs {
		head, index, _ := strings.Cut(seg, "[")
		segs[i] = mapper.Normalize(head)
		if index != "" {
			segs[i] += "[" + index
		}
	}
	return strings.Join(segs, ".")
}

type numberError struct {
	target reflect.Type
	value  float64
	err    error
}

func (e *numberError) Error() string {
	return fmt.Sprintf("%v: %s for %s", e.err, tree.FormatNumber(e.value), e.target)
}

func (e *numberError) Unwrap() error { return e.err }

// integralHook rejects numbers that an integer or float32 field cannot hold
// exactly; mapstructure would truncate or wrap them silently.
func integralHook(from, to reflect.Type, data any) (any, error) {
	var f float64
	switch from.Kind() {
	case reflect.Float64:
		f = reflect.ValueOf(data).Float()
	case reflect.Int64:
		f = float64(reflect.ValueOf(data).Int())
	default:
		return data, nil
	}

	r, ok := models.RangeOf(to)
	if !ok || r.Contains(f) {
		return data, nil
	}
	if r.IsFractional(f) {
		return nil, &numberError{target: to, value: f, err: ErrFractionalInteger}
	}
	return nil, &numberError{target: to, value: f, err: ErrNumberOutOfRange}
}
