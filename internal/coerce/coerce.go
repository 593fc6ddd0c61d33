// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package coerce converts raw strings from the environment or the command
// line into tree values, directed by the declared field kind.
package coerce

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-confbind/internal/decoder"
	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/MKhiriev/go-confbind/models"
)

var (
	ErrInvalidBool     = errors.New("expected one of true/false/1/0/yes/no")
	ErrInvalidNumber   = errors.New("not a decimal number")
	ErrInvalidDuration = errors.New("not a duration")
	ErrInvalidLiteral  = errors.New("not a structured literal")
)

// DefaultSeparator splits list values that are not JSON arrays.
const DefaultSeparator = ","

// Raw converts raw into a value of the given kind. elem is the element kind
// used for sequences; sep splits non-JSON sequence values.
//
//   - bool: true/false/1/0/yes/no, case-insensitive;
//   - number: locale-independent decimal;
//   - duration: Go duration syntax, or a plain number of nanoseconds;
//   - sequence: a JSON array, otherwise a sep-separated list;
//   - mapping, record: a JSON object;
//   - any: "true" or "false" as a bool, then a decimal number, then a JSON
//     literal when raw starts with '{' or '[', otherwise the plain string;
//   - string: raw unchanged.
func Raw(raw string, kind, elem models.FieldKind, sep string) (tree.Value, error) {
	switch kind {
	case models.FieldBool:
		return parseBool(raw)
	case models.FieldNumber:
		return parseNumber(raw)
	case models.FieldString:
		return tree.String(raw), nil
	case models.FieldDuration:
		s := strings.TrimSpace(raw)
		if _, err := time.ParseDuration(s); err == nil {
			return tree.String(s), nil
		}
		if n, err := parseNumber(s); err == nil {
			return n, nil
		}
		return tree.Value{}, ErrInvalidDuration
	case models.FieldSequence:
		return parseSequence(raw, elem, sep)
	case models.FieldMapping, models.FieldRecord:
		v, ok := literal(raw)
		if !ok || v.Kind() != tree.KindMapping {
			return tree.Value{}, ErrInvalidLiteral
		}
		return v, nil
	}

	return infer(raw), nil
}

// infer guesses the type of a raw value bound to an untyped field.
func infer(raw string) tree.Value {
	switch strings.TrimSpace(raw) {
	case "true":
		return tree.Bool(true)
	case "false":
		return tree.Bool(false)
	}
	if v, err := parseNumber(raw); err == nil {
		return v
	}
	if v, ok := literal(raw); ok {
		return v
	}
	return tree.String(raw)
}

// Format renders v in the textual form accepted by [Raw], so that
// Raw(Format(v), kind, ...) yields v again for every primitive kind.
func Format(v tree.Value) string {
	switch v.Kind() {
	case tree.KindNull:
		return ""
	case tree.KindBool:
		return strconv.FormatBool(v.AsBool())
	case tree.KindNumber:
		return strconv.FormatFloat(v.AsNumber(), 'g', -1, 64)
	case tree.KindString:
		return v.AsString()
	}
	return v.String()
}

func parseBool(raw string) (tree.Value, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return tree.Bool(true), nil
	case "false", "0", "no":
		return tree.Bool(false), nil
	}
	return tree.Value{}, ErrInvalidBool
}

func parseNumber(raw string) (tree.Value, error) {
	v, err := tree.ParseNumber(strings.TrimSpace(raw))
	switch {
	case errors.Is(err, tree.ErrInexactInteger):
		return tree.Value{}, err
	case err != nil:
		return tree.Value{}, ErrInvalidNumber
	}
	return v, nil
}

func parseSequence(raw string, elem models.FieldKind, sep string) (tree.Value, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		v, ok := literal(trimmed)
		if !ok || v.Kind() != tree.KindSequence {
			return tree.Value{}, ErrInvalidLiteral
		}
		return v, nil
	}

	if trimmed == "" {
		return tree.Sequence(), nil
	}

	if sep == "" {
		sep = DefaultSeparator
	}
	parts := strings.Split(raw, sep)
	items := make([]tree.Value, 0, len(parts))
	for i, p := range parts {
		v, err := Item(p, elem)
		if err != nil {
			return tree.Value{}, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, v)
	}
	return tree.Sequence(items...), nil
}

// Item converts one sequence element. Elements of untyped sequences stay
// plain strings.
func Item(raw string, elem models.FieldKind) (tree.Value, error) {
	raw = strings.TrimSpace(raw)
	if elem == models.FieldAny || elem == models.FieldString {
		return tree.String(raw), nil
	}
	return Raw(raw, elem, models.FieldAny, "")
}

// literal tries raw as an embedded JSON object or array.
func literal(raw string) (tree.Value, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return tree.Value{}, false
	}
	v, err := decoder.JSON{}.Decode([]byte(trimmed))
	if err != nil {
		return tree.Value{}, false
	}
	return v, true
}
