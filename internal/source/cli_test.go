// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/MKhiriev/go-confbind/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCLI(t *testing.T, descs []models.FieldDescriptor, current tree.Value, args ...string) (tree.Value, error) {
	t.Helper()
	return NewCLIAdapter(",").Load(context.Background(), models.CLISource(args), descs, current)
}

// ── parsing ───────────────────────────────────────────────────────────────────

func TestCLIAdapter_Load_Forms(t *testing.T) {
	// Act
	v, err := loadCLI(t, appDescriptors(), tree.EmptyMap(),
		"--port", "8080",
		"--debug",
		"--database-url=postgres://localhost/db",
		"--database-max-connections", "10",
	)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, `{"port":8080,"debug":true,"database":{"url":"postgres://localhost/db","max_connections":10}}`, v.String())
}

func TestCLIAdapter_Load_BoolExplicitValue(t *testing.T) {
	v, err := loadCLI(t, appDescriptors(), tree.EmptyMap(),
		"--port=1", "--database-url=x", "--debug=false")

	require.NoError(t, err)
	debug, ok := tree.Lookup(v, []string{"debug"})
	require.True(t, ok)
	assert.False(t, debug.AsBool())
}

func TestCLIAdapter_Load_Sequences(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"repeated flag", []string{"--tags", "a", "--tags", "b"}, `["a","b"]`},
		{"comma list", []string{"--tags=a,b,c"}, `["a","b","c"]`},
		{"json array", []string{`--tags=["x","y"]`}, `["x","y"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--port=1", "--database-url=x"}, tt.args...)

			v, err := loadCLI(t, appDescriptors(), tree.EmptyMap(), args...)

			require.NoError(t, err)
			tags, ok := tree.Lookup(v, []string{"tags"})
			require.True(t, ok)
			assert.Equal(t, tt.expected, tags.String())
		})
	}
}

func TestCLIAdapter_Load_LastScalarWins(t *testing.T) {
	v, err := loadCLI(t, appDescriptors(), tree.EmptyMap(), "--port=1", "--port=2", "--database-url=x")

	require.NoError(t, err)
	port, _ := tree.Lookup(v, []string{"port"})
	assert.Equal(t, float64(2), port.AsNumber())
}

func TestCLIAdapter_Load_CustomAndUnboundFlags(t *testing.T) {
	// Arrange
	port := leaf(models.FieldNumber, false, "port")
	port.CLIFlag = "listen"
	secret := leaf(models.FieldString, false, "secret")
	secret.CLIFlag = models.Unbound
	descs := []models.FieldDescriptor{port, secret}

	// Act
	v, err := loadCLI(t, descs, tree.EmptyMap(), "--listen", "9090")
	_, unboundErr := loadCLI(t, descs, tree.EmptyMap(), "--secret", "x")

	// Assert
	require.NoError(t, err)
	got, _ := tree.Lookup(v, []string{"port"})
	assert.Equal(t, float64(9090), got.AsNumber())
	assert.ErrorIs(t, unboundErr, models.ErrUnknownFlag)
}

// ── errors ────────────────────────────────────────────────────────────────────

func TestCLIAdapter_Load_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind models.ErrorKind
		flag string
	}{
		{"unknown flag", []string{"--port=1", "--database-url=x", "--verbose"}, models.KindUnknownFlag, "--verbose"},
		{"unknown flag with value", []string{"--nope=1"}, models.KindUnknownFlag, "--nope"},
		{"positional argument", []string{"serve"}, models.KindUnknownFlag, "serve"},
		{"shorthand", []string{"-p", "1"}, models.KindUnknownFlag, "-p"},
		{"terminator", []string{"--"}, models.KindUnknownFlag, "--"},
		{"missing value", []string{"--database-url=x", "--port"}, models.KindCoerce, ""},
		{"bad number", []string{"--port=abc", "--database-url=x"}, models.KindCoerce, ""},
		{"bad bool", []string{"--port=1", "--database-url=x", "--debug=maybe"}, models.KindCoerce, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadCLI(t, appDescriptors(), tree.EmptyMap(), tt.args...)

			require.Error(t, err)
			var le *models.LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.kind, le.Kind)
			if tt.flag != "" {
				assert.Equal(t, tt.flag, le.Flag)
			}
		})
	}
}

func TestCLIAdapter_Load_DuplicateFlag(t *testing.T) {
	a := leaf(models.FieldString, false, "a")
	a.CLIFlag = "same"
	b := leaf(models.FieldString, false, "b")
	b.CLIFlag = "same"

	_, err := loadCLI(t, []models.FieldDescriptor{a, b}, tree.EmptyMap())

	assert.ErrorIs(t, err, models.ErrMapping)
	assert.ErrorIs(t, err, ErrDuplicateFlag)
}

// ── requiredness ──────────────────────────────────────────────────────────────

func TestCLIAdapter_Load_MissingRequired(t *testing.T) {
	_, err := loadCLI(t, appDescriptors(), tree.EmptyMap(), "--port=1")

	require.Error(t, err)
	var le *models.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, models.KindMissingRequired, le.Kind)
	assert.Equal(t, "database.url", le.Field)
}

func TestCLIAdapter_Load_RequiredSatisfiedByLowerSources(t *testing.T) {
	// Arrange
	current := tree.EmptyMap()
	current = tree.Set(current, []string{"port"}, tree.Number(8080))
	current = tree.Set(current, []string{"database", "url"}, tree.String("from-file"))

	// Act
	v, err := loadCLI(t, appDescriptors(), current)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, v.Mapping().Len())
}

func TestEffectiveRequired(t *testing.T) {
	withDefault := leaf(models.FieldNumber, true, "timeout")
	withDefault.HasDefault = true
	withDefault.Default = tree.Number(30)

	optionalRecord := record(false, "tls",
		leaf(models.FieldString, true, "tls", "cert"),
	)

	descs := append(appDescriptors(), withDefault, optionalRecord)

	tests := []struct {
		name     string
		current  tree.Value
		expected []string
	}{
		{
			name:     "nothing provided",
			current:  tree.EmptyMap(),
			expected: []string{"port", "database.url"},
		},
		{
			name:     "null counts as absent",
			current:  tree.Set(tree.EmptyMap(), []string{"port"}, tree.Null()),
			expected: []string{"port", "database.url"},
		},
		{
			name:     "present optional record demands its children",
			current:  tree.Set(tree.Set(tree.EmptyMap(), []string{"port"}, tree.Number(1)), []string{"tls", "key"}, tree.String("k")),
			expected: []string{"database.url", "tls.cert"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveRequired(descs, tt.current)

			names := make([]string, 0, len(got))
			for _, d := range got {
				names = append(names, d.Name())
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}
