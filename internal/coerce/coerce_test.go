// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package coerce

import (
	"testing"

	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/MKhiriev/go-confbind/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaw_Bool(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{"true", true}, {"TRUE", true}, {"1", true}, {"Yes", true},
		{"false", false}, {"False", false}, {"0", false}, {"no", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := Raw(tt.raw, models.FieldBool, models.FieldAny, "")
			require.NoError(t, err)
			assert.Equal(t, tree.KindBool, v.Kind())
			assert.Equal(t, tt.expected, v.AsBool())
		})
	}

	_, err := Raw("maybe", models.FieldBool, models.FieldAny, "")
	assert.ErrorIs(t, err, ErrInvalidBool)
}

func TestRaw_Number(t *testing.T) {
	tests := []struct {
		raw      string
		expected float64
	}{
		{"42", 42}, {"-7", -7}, {"3.25", 3.25}, {"1e3", 1000}, {" 10 ", 10},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := Raw(tt.raw, models.FieldNumber, models.FieldAny, "")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.AsNumber())
		})
	}

	for _, bad := range []string{"abc", "1,5", "NaN", "Inf", ""} {
		_, err := Raw(bad, models.FieldNumber, models.FieldAny, "")
		assert.ErrorIs(t, err, ErrInvalidNumber, bad)
	}

	_, err := Raw("9007199254740993", models.FieldNumber, models.FieldAny, "")
	assert.ErrorIs(t, err, tree.ErrInexactInteger)
}

func TestRaw_Duration(t *testing.T) {
	v, err := Raw("1h30m", models.FieldDuration, models.FieldAny, "")
	require.NoError(t, err)
	assert.Equal(t, "1h30m", v.AsString())

	v, err = Raw("1000", models.FieldDuration, models.FieldAny, "")
	require.NoError(t, err)
	assert.Equal(t, float64(1000), v.AsNumber())

	_, err = Raw("soon", models.FieldDuration, models.FieldAny, "")
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestRaw_StringIsNeverReinterpreted(t *testing.T) {
	for _, raw := range []string{`{"a":1}`, "[1]", "true", "42"} {
		v, err := Raw(raw, models.FieldString, models.FieldAny, "")
		require.NoError(t, err)
		assert.Equal(t, tree.String(raw), v)
	}
}

func TestRaw_Sequence(t *testing.T) {
	v, err := Raw(`[1, 2, 3]`, models.FieldSequence, models.FieldNumber, "")
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, v.String())

	v, err = Raw("a, b ,c", models.FieldSequence, models.FieldString, "")
	require.NoError(t, err)
	assert.Equal(t, `["a","b","c"]`, v.String())

	v, err = Raw("1;2", models.FieldSequence, models.FieldNumber, ";")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, v.String())

	v, err = Raw("", models.FieldSequence, models.FieldString, "")
	require.NoError(t, err)
	assert.Empty(t, v.Items())

	_, err = Raw("1,x", models.FieldSequence, models.FieldNumber, "")
	assert.ErrorIs(t, err, ErrInvalidNumber)

	_, err = Raw("[1,", models.FieldSequence, models.FieldNumber, "")
	assert.ErrorIs(t, err, ErrInvalidLiteral)
}

func TestRaw_MappingAndAny(t *testing.T) {
	v, err := Raw(`{"b": 1, "a": "x"}`, models.FieldMapping, models.FieldAny, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, v.Mapping().Keys())

	_, err = Raw(`[1]`, models.FieldRecord, models.FieldAny, "")
	assert.ErrorIs(t, err, ErrInvalidLiteral)

	v, err = Raw(`{"a": 1}`, models.FieldAny, models.FieldAny, "")
	require.NoError(t, err)
	assert.Equal(t, tree.KindMapping, v.Kind())

	// a broken literal falls back to the plain string
	v, err = Raw(`{oops`, models.FieldAny, models.FieldAny, "")
	require.NoError(t, err)
	assert.Equal(t, "{oops", v.AsString())

	v, err = Raw("plain", models.FieldAny, models.FieldAny, "")
	require.NoError(t, err)
	assert.Equal(t, "plain", v.AsString())
}

func TestRaw_AnyInfersScalars(t *testing.T) {
	tests := []struct {
		raw      string
		expected tree.Value
	}{
		{"true", tree.Bool(true)},
		{"false", tree.Bool(false)},
		{"42", tree.Number(42)},
		{" -1.5 ", tree.Number(-1.5)},
		{"1", tree.Number(1)},
		{"TRUE", tree.String("TRUE")},
		{"yes", tree.String("yes")},
		{"NaN", tree.String("NaN")},
		{"9007199254740993", tree.String("9007199254740993")},
		{"", tree.String("")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := Raw(tt.raw, models.FieldAny, models.FieldAny, "")
			require.NoError(t, err)
			assert.True(t, tree.Equal(tt.expected, v), "got %s", v)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value tree.Value
		kind  models.FieldKind
	}{
		{"integer", tree.Number(42), models.FieldNumber},
		{"negative float", tree.Number(-0.125), models.FieldNumber},
		{"large", tree.Number(1e21), models.FieldNumber},
		{"true", tree.Bool(true), models.FieldBool},
		{"false", tree.Bool(false), models.FieldBool},
		{"string", tree.String("postgres://x"), models.FieldString},
		{"duration", tree.String("45m0s"), models.FieldDuration},
		{"sequence", tree.Sequence(tree.Number(1), tree.Number(2)), models.FieldSequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := Format(tt.value)
			back, err := Raw(raw, tt.kind, models.FieldNumber, "")
			require.NoError(t, err)
			assert.True(t, tree.Equal(tt.value, back), "%s -> %q -> %s", tt.value, raw, back)
		})
	}
}
