// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package report

import (
	"strings"

	"github.com/MKhiriev/go-confbind/models"
)

// BuildInfo renders the version banner of a binary.
func BuildInfo(name string, info models.BuildInfo) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(name))
	b.WriteString("\n")
	b.WriteString(info.String())

	return b.String()
}
