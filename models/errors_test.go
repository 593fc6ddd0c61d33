// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadError_Messages(t *testing.T) {
	tests := []struct {
		name     string
		err      *LoadError
		expected string
	}{
		{
			name:     "io",
			err:      &LoadError{Kind: KindIo, Path: "app.toml", Err: fs.ErrPermission},
			expected: "io error reading app.toml: permission denied",
		},
		{
			name:     "coerce",
			err:      &LoadError{Kind: KindCoerce, Key: "APP_PORT", Expected: "number", Raw: "abc"},
			expected: `cannot coerce APP_PORT="abc" to number`,
		},
		{
			name:     "missing required",
			err:      &LoadError{Kind: KindMissingRequired, Field: "max_connections"},
			expected: "missing required field max_connections",
		},
		{
			name:     "unknown flag",
			err:      &LoadError{Kind: KindUnknownFlag, Flag: "--nope"},
			expected: "unknown flag --nope",
		},
		{
			name:     "type mismatch",
			err:      &LoadError{Kind: KindTypeMismatch, Path: "port", Expected: "number", Found: "string"},
			expected: "type mismatch at port: expected number, found string",
		},
		{
			name:     "validation carries the message only",
			err:      &LoadError{Kind: KindValidation, Message: "port out of range", Err: errors.New("port out of range")},
			expected: "validation failed: port out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestLoadError_Is(t *testing.T) {
	err := fmt.Errorf("load: %w", &LoadError{Kind: KindParse, Path: "x.json", Err: assert.AnError})

	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrIo)
	assert.Equal(t, KindParse, KindOf(err))
	assert.Zero(t, KindOf(assert.AnError))
}

func TestFieldKind_Accepts(t *testing.T) {
	assert.True(t, FieldDuration.Accepts(tree.KindString))
	assert.True(t, FieldDuration.Accepts(tree.KindNumber))
	assert.True(t, FieldRecord.Accepts(tree.KindMapping))
	assert.False(t, FieldAny.Accepts(tree.KindNull))
	assert.False(t, FieldNumber.Accepts(tree.KindString))
}

func TestLeaves_FlattensRecords(t *testing.T) {
	descs := []FieldDescriptor{
		{CanonicalName: "port", Path: []string{"port"}, Kind: FieldNumber},
		{
			CanonicalName:  "database",
			Path:           []string{"database"},
			Kind:           FieldRecord,
			IsNestedRecord: true,
			Fields: []FieldDescriptor{
				{CanonicalName: "url", Path: []string{"database", "url"}, Kind: FieldString},
			},
		},
	}

	leaves := Leaves(descs)

	require.Len(t, leaves, 2)
	assert.Equal(t, "port", leaves[0].Name())
	assert.Equal(t, "database.url", leaves[1].Name())
}

func TestSource_PriorityOrder(t *testing.T) {
	file := FileSource("a.toml", FormatAuto, false, 0)
	env := EnvSource("APP")
	cli := CLISource(nil)

	assert.Less(t, file.Priority(), env.Priority())
	assert.Less(t, env.Priority(), cli.Priority())
	assert.Equal(t, "file:a.toml", file.String())
	assert.Equal(t, "env:APP_*", env.String())
	assert.Equal(t, "env", EnvSource("").String())
}

func TestBuildInfo_String(t *testing.T) {
	info := BuildInfo{Version: "1.0.0"}
	assert.Equal(t, "Build version: 1.0.0\nBuild date: N/A\nBuild commit: N/A", info.String())
}
