// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config is the public face of go-confbind: a fluent [Loader]
// builder that declares sources and validators, and the generic [Load]
// entry point that runs the whole pipeline.
//
// Sources are applied in the following priority order (later sources
// override earlier values):
//  1. defaults declared on the record (`default` tags)
//  2. configuration files, in declaration order
//  3. environment variables
//  4. command-line flags
//
// A minimal program:
//
//	type App struct {
//		Port     int    `config:"port" default:"8080"`
//		Database struct {
//			URL string `config:"url"`
//		} `config:"database"`
//	}
//
//	cfg, err := config.Load[App](ctx, config.NewLoader(nil).
//		WithFile("config.toml").
//		WithCLI(nil))
package config
