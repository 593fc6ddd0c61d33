// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func mapOf(kv ...any) Value {
	m := NewMapping()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i].(string), kv[i+1].(Value))
	}
	return Map(m)
}

// ── Merge ─────────────────────────────────────────────────────────────────────

func TestMerge_Idempotent(t *testing.T) {
	values := []Value{
		Null(),
		Bool(true),
		Number(42),
		String("x"),
		Sequence(Number(1), Number(2)),
		EmptyMap(),
		mapOf(
			"server", mapOf("port", Number(8080), "hosts", Sequence(String("a"))),
			"debug", Bool(false),
			"nothing", Null(),
		),
	}

	for _, v := range values {
		t.Run(v.String(), func(t *testing.T) {
			assert.True(t, Equal(v, Merge(v, v)))
		})
	}
}

func TestMerge_Rules(t *testing.T) {
	tests := []struct {
		name     string
		base     Value
		overlay  Value
		expected Value
	}{
		{
			name:     "overlay scalar wins",
			base:     Number(1),
			overlay:  Number(2),
			expected: Number(2),
		},
		{
			name:     "overlay null wins over mapping",
			base:     mapOf("a", Number(1)),
			overlay:  Null(),
			expected: Null(),
		},
		{
			name:     "base null replaced",
			base:     Null(),
			overlay:  mapOf("a", Number(1)),
			expected: mapOf("a", Number(1)),
		},
		{
			name:     "sequence replaced, not merged",
			base:     Sequence(Number(1), Number(2), Number(3)),
			overlay:  Sequence(Number(9)),
			expected: Sequence(Number(9)),
		},
		{
			name:     "mismatched kinds: overlay wins",
			base:     mapOf("a", Number(1)),
			overlay:  String("flat"),
			expected: String("flat"),
		},
		{
			name:     "mappings merged key by key",
			base:     mapOf("a", Number(1), "nested", mapOf("x", Bool(true), "y", Bool(true))),
			overlay:  mapOf("b", Number(2), "nested", mapOf("y", Bool(false))),
			expected: mapOf("a", Number(1), "nested", mapOf("x", Bool(true), "y", Bool(false)), "b", Number(2)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.base, tt.overlay)
			assert.True(t, Equal(tt.expected, got), "got %s", got)
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := mapOf("a", mapOf("x", Number(1)))
	overlay := mapOf("a", mapOf("y", Number(2)))
	baseBefore := base.String()
	overlayBefore := overlay.String()

	_ = Merge(base, overlay)

	assert.Equal(t, baseBefore, base.String())
	assert.Equal(t, overlayBefore, overlay.String())
}

func TestMerge_PreservesKeyOrder(t *testing.T) {
	base := mapOf("z", Number(1), "a", Number(2))
	overlay := mapOf("m", Number(3), "z", Number(4))

	got := Merge(base, overlay)

	require.Equal(t, KindMapping, got.Kind())
	assert.Equal(t, []string{"z", "a", "m"}, got.Mapping().Keys())
}
