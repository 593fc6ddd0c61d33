// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package report renders a loaded configuration for humans: every field
// with its effective value and the source that set it.
package report

import (
	"strings"

	"github.com/MKhiriev/go-confbind/internal/coerce"
	"github.com/MKhiriev/go-confbind/internal/mapper"
	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/MKhiriev/go-confbind/models"
	"github.com/charmbracelet/lipgloss"
)

const (
	OriginDefault = "default"
	OriginUnset   = "unset"
)

// Row is one field of the report.
type Row struct {
	Field  string
	Flag   string
	EnvKey string
	Value  string
	Origin string
}

// Rows lists every leaf of descs in declaration order. completed is the
// merged tree with defaults applied; cfg supplies provenance.
func Rows(cfg *models.MergedConfig, completed tree.Value, descs []models.FieldDescriptor, envPrefix string) []Row {
	leaves := models.Leaves(descs)
	out := make([]Row, 0, len(leaves))

	for _, d := range leaves {
		row := Row{Field: d.Name(), Origin: OriginUnset}

		if flag, ok, err := mapper.CLIFlag(d); err == nil && ok {
			row.Flag = flag
		}
		if key, ok, err := mapper.EnvKey(d, envPrefix); err == nil && ok {
			row.EnvKey = key
		}

		if v, ok := tree.Lookup(completed, d.Path); ok && !v.IsNull() {
			row.Value = coerce.Format(v)
			row.Origin = origin(cfg, d)
		}

		out = append(out, row)
	}
	return out
}

func origin(cfg *models.MergedConfig, d models.FieldDescriptor) string {
	if src, ok := cfg.SourceOf(d.Path...); ok {
		return src.String()
	}

	// a leaf set as part of a larger value, e.g. a mapping from env JSON
	for i := len(d.Path) - 1; i > 0; i-- {
		if src, ok := cfg.SourceOf(d.Path[:i]...); ok {
			return src.String()
		}
	}

	if d.HasDefault {
		return OriginDefault
	}
	return OriginUnset
}

// Render formats rows as a boxed, aligned table under title.
func Render(title string, rows []Row) string {
	var fieldW, valueW int
	for _, r := range rows {
		fieldW = max(fieldW, lipgloss.Width(r.Field))
		valueW = max(valueW, lipgloss.Width(r.Value))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString("-")
	}

	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}

		field := fieldStyle.Width(fieldW).Render(r.Field)
		value := lipgloss.NewStyle().Width(valueW).Render(r.Value)
		origin := sourceStyle.Render("(" + r.Origin + ")")
		if r.Origin == OriginUnset {
			value = unsetStyle.Width(valueW).Render("-")
			origin = unsetStyle.Render("(" + r.Origin + ")")
		}

		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, field, "  ", value, "  ", origin))
	}

	return boxStyle.Render(b.String())
}
