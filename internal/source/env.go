// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import (
	"context"
	"os"

	"github.com/MKhiriev/go-confbind/internal/coerce"
	"github.com/MKhiriev/go-confbind/internal/mapper"
	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/MKhiriev/go-confbind/models"
	"github.com/caarlos0/env/v11"
)

// EnvAdapter resolves fields from environment variables.
type EnvAdapter struct {
	environ   map[string]string
	separator string
}

// NewEnvAdapter returns an adapter reading from environ. A nil environ means
// the process environment, snapshotted on every Load. separator splits list
// values that are not JSON arrays.
func NewEnvAdapter(environ map[string]string, separator string) *EnvAdapter {
	return &EnvAdapter{environ: environ, separator: separator}
}

// Load looks up the env key of every leaf descriptor and coerces the raw
// value to the field kind. Unset variables are simply absent from the
// fragment.
func (a *EnvAdapter) Load(ctx context.Context, src models.Source, descs []models.FieldDescriptor) (tree.Value, error) {
	if err := ctx.Err(); err != nil {
		return tree.Value{}, err
	}

	vars := a.environ
	if vars == nil {
		vars = env.ToMap(os.Environ())
	}

	frag := tree.EmptyMap()
	for _, d := range models.Leaves(descs) {
		key, bound, err := mapper.EnvKey(d, src.Prefix)
		if err != nil {
			return tree.Value{}, err
		}
		if !bound {
			continue
		}

		raw, ok := vars[key]
		if !ok {
			continue
		}

		v, err := coerce.Raw(raw, d.Kind, d.ElemKind, a.separator)
		if err != nil {
			return tree.Value{}, coerceError(key, d.Kind, raw, err)
		}
		frag = tree.Set(frag, d.Path, v)
	}

	return frag, nil
}
