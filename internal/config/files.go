// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "path/filepath"

// DefaultFiles returns the conventional configuration files of dir:
// config.json, config.yaml and config.toml, in that order. The files do not
// need to exist; missing optional files are skipped at load time.
func DefaultFiles(dir string) []string {
	return defaultFiles(dir, DefaultOptions().DefaultFileNames)
}

func defaultFiles(dir string, names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, name))
	}
	return out
}
