// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Bootstrap holds the settings of a program that uses go-confbind, read
// from CONFBIND_* variables before the application config itself is
// loaded.
type Bootstrap struct {
	// Files are explicit configuration files, lowest priority first.
	Files []string `env:"FILES" envSeparator:","`
	// Dir enables the default files of a directory (see DefaultFiles).
	Dir string `env:"DIR"`
	// EnvPrefix namespaces the application's environment variables.
	EnvPrefix string `env:"ENV_PREFIX"`
	// LogLevel is a zerolog level name.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// Report prints the provenance report after a successful load.
	Report bool `env:"REPORT" envDefault:"true"`
	// Validate enables struct-tag validation of the bound record.
	Validate bool `env:"VALIDATE" envDefault:"true"`
}

// ParseBootstrap reads the bootstrap settings from the process environment.
func ParseBootstrap() (*Bootstrap, error) {
	return parseEnv(env.Options{Prefix: "CONFBIND_"})
}

// ParseBootstrapFrom reads the bootstrap settings from vars.
func ParseBootstrapFrom(vars map[string]string) (*Bootstrap, error) {
	return parseEnv(env.Options{Prefix: "CONFBIND_", Environment: vars})
}

// parseEnv populates a Bootstrap using the caarlos0/env library.
//
// Returns a wrapped error if parsing fails (e.g. a value cannot be
// converted to the target type).
func parseEnv(opts env.Options) (*Bootstrap, error) {
	var b Bootstrap
	if err := env.ParseWithOptions(&b, opts); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return &b, nil
}

// Apply declares the bootstrap sources on l.
func (b *Bootstrap) Apply(l *Loader) *Loader {
	if b.Dir != "" {
		l.WithDefaultFiles(b.Dir)
	}
	for _, f := range b.Files {
		l.WithFile(f)
	}
	if b.EnvPrefix != "" {
		l.WithEnvPrefix(b.EnvPrefix)
	}
	if b.Validate {
		l.WithStructValidation()
	}
	return l
}
