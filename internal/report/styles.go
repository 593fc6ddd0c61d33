// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package report

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	fieldStyle  = lipgloss.NewStyle().Bold(true)
	sourceStyle = lipgloss.NewStyle().Faint(true)
	unsetStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
