// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// SourceKind identifies where a configuration fragment came from.
type SourceKind uint8

const (
	SourceFile SourceKind = iota
	SourceEnvironment
	SourceCLI
)

func (k SourceKind) String() string {
	switch k {
	case SourceFile:
		return "file"
	case SourceEnvironment:
		return "env"
	case SourceCLI:
		return "cli"
	default:
		return "unknown"
	}
}

// Format is the textual format of a configuration file.
type Format string

const (
	// FormatAuto selects the format from the file extension.
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Source describes one configuration origin.
//
// Priority is fixed per kind: File < Environment < CLI. Several File
// sources share the same priority; among them the later declaration
// (higher Order) overrides the earlier one.
type Source struct {
	Kind SourceKind

	// File sources.
	Path     string
	Format   Format
	Required bool
	Order    int

	// Environment source.
	Prefix string

	// CLI source.
	Args []string
}

// FileSource returns a File source for path.
func FileSource(path string, format Format, required bool, order int) Source {
	return Source{Kind: SourceFile, Path: path, Format: format, Required: required, Order: order}
}

// EnvSource returns an Environment source using prefix.
func EnvSource(prefix string) Source {
	return Source{Kind: SourceEnvironment, Prefix: prefix}
}

// CLISource returns a CLI source over args (without argv[0]).
func CLISource(args []string) Source {
	return Source{Kind: SourceCLI, Args: args}
}

// Priority returns the merge priority; higher values override lower ones.
func (s Source) Priority() int {
	return int(s.Kind)
}

func (s Source) String() string {
	switch s.Kind {
	case SourceFile:
		return fmt.Sprintf("file:%s", s.Path)
	case SourceEnvironment:
		if s.Prefix == "" {
			return "env"
		}
		return fmt.Sprintf("env:%s_*", s.Prefix)
	default:
		return s.Kind.String()
	}
}
