// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package source holds the adapters that turn one configuration origin into
// a value tree fragment:
//   - [FileAdapter] decodes a JSON, YAML or TOML file;
//   - [EnvAdapter] looks up one environment variable per field;
//   - [CLIAdapter] matches command-line flags against the field table.
//
// Adapters never merge; they only produce fragments. Every failure is a
// *models.LoadError with the matching kind.
package source
