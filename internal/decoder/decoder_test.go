// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package decoder

import (
	"testing"

	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/MKhiriev/go-confbind/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── JSON ──────────────────────────────────────────────────────────────────────

func TestJSON_Decode_KeepsKeyOrder(t *testing.T) {
	// Arrange
	body := `{"zeta": 1, "alpha": {"b": true, "a": null}, "list": [1, "two", 3.5]}`

	// Act
	v, err := JSON{}.Decode([]byte(body))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "list"}, v.Mapping().Keys())

	alpha, ok := tree.Lookup(v, []string{"alpha"})
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, alpha.Mapping().Keys())

	list, _ := tree.Lookup(v, []string{"list"})
	assert.Equal(t, `[1,"two",3.5]`, list.String())
}

func TestJSON_Decode_Empty(t *testing.T) {
	v, err := JSON{}.Decode([]byte("  \n"))
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestJSON_Decode_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{not valid json`},
		{"truncated", `{"a": [1, 2`},
		{"trailing data", `{"a": 1} {"b": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JSON{}.Decode([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDecode_InexactIntegers(t *testing.T) {
	tests := []struct {
		name    string
		decoder Decoder
		body    string
	}{
		{"json", JSON{}, `{"id": 9007199254740993}`},
		{"toml", TOML{}, "id = 9007199254740993"},
		{"yaml", YAML{}, "id: 9007199254740993"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.decoder.Decode([]byte(tt.body))
			assert.ErrorIs(t, err, tree.ErrInexactInteger)
		})
	}

	v, err := JSON{}.Decode([]byte(`{"id": 9007199254740992}`))
	require.NoError(t, err)
	id, _ := tree.Lookup(v, []string{"id"})
	assert.Equal(t, float64(tree.MaxExactInt), id.AsNumber())
}

// ── YAML ──────────────────────────────────────────────────────────────────────

func TestYAML_Decode(t *testing.T) {
	// Arrange
	body := `
port: 8080
debug: yes_please
ratio: 0.5
enabled: true
database:
  url: postgres://localhost/db
  pool: 10
hosts:
  - a
  - b
`

	// Act
	v, err := YAML{}.Decode([]byte(body))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"port", "debug", "ratio", "enabled", "database", "hosts"}, v.Mapping().Keys())

	port, _ := tree.Lookup(v, []string{"port"})
	assert.Equal(t, tree.KindNumber, port.Kind())
	assert.Equal(t, float64(8080), port.AsNumber())

	debug, _ := tree.Lookup(v, []string{"debug"})
	assert.Equal(t, "yes_please", debug.AsString())

	enabled, _ := tree.Lookup(v, []string{"enabled"})
	assert.True(t, enabled.AsBool())

	url, _ := tree.Lookup(v, []string{"database", "url"})
	assert.Equal(t, "postgres://localhost/db", url.AsString())

	hosts, _ := tree.Lookup(v, []string{"hosts"})
	assert.Len(t, hosts.Items(), 2)
}

func TestYAML_Decode_AnchorsAndMergeKeys(t *testing.T) {
	body := `
defaults: &defaults
  timeout: 30s
  retries: 3
service:
  <<: *defaults
  retries: 5
`

	v, err := YAML{}.Decode([]byte(body))
	require.NoError(t, err)

	timeout, ok := tree.Lookup(v, []string{"service", "timeout"})
	require.True(t, ok)
	assert.Equal(t, "30s", timeout.AsString())

	retries, _ := tree.Lookup(v, []string{"service", "retries"})
	assert.Equal(t, float64(5), retries.AsNumber(), "own key overrides merged key")
}

func TestYAML_Decode_EmptyAndInvalid(t *testing.T) {
	v, err := YAML{}.Decode(nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	_, err = YAML{}.Decode([]byte("a: [1, 2\nb: :"))
	assert.Error(t, err)
}

// ── TOML ──────────────────────────────────────────────────────────────────────

func TestTOML_Decode(t *testing.T) {
	body := `
port = 8080
name = "svc"

[database]
url = "postgres://x"
max_connections = 10
hosts = ["a", "b"]
`

	v, err := TOML{}.Decode([]byte(body))
	require.NoError(t, err)

	port, _ := tree.Lookup(v, []string{"port"})
	assert.Equal(t, float64(8080), port.AsNumber())

	maxConns, _ := tree.Lookup(v, []string{"database", "max_connections"})
	assert.Equal(t, float64(10), maxConns.AsNumber())

	hosts, _ := tree.Lookup(v, []string{"database", "hosts"})
	assert.Equal(t, `["a","b"]`, hosts.String())
}

func TestTOML_Decode_Invalid(t *testing.T) {
	_, err := TOML{}.Decode([]byte("port = = 1"))
	assert.Error(t, err)
}

// ── Registry ──────────────────────────────────────────────────────────────────

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected models.Format
		wantErr  bool
	}{
		{"config.json", models.FormatJSON, false},
		{"config.YAML", models.FormatYAML, false},
		{"/etc/app/config.yml", models.FormatYAML, false},
		{"app.toml", models.FormatTOML, false},
		{"app.ini", models.FormatAuto, true},
		{"noext", models.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRegistry_ResolveExplicitFormatWins(t *testing.T) {
	r := NewRegistry()

	d, err := r.Resolve("settings.conf", models.FormatYAML)
	require.NoError(t, err)
	assert.IsType(t, YAML{}, d)

	_, err = r.Resolve("settings.conf", models.FormatAuto)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = r.Lookup("ini")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
