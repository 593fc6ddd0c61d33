// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// BuildInfo carries link-time metadata of a binary. Empty values are shown
// as "N/A".
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s",
		orNA(b.Version), orNA(b.Date), orNA(b.Commit))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
