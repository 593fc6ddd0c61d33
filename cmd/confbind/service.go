// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/MKhiriev/go-confbind/internal/validators"
	"github.com/MKhiriev/go-confbind/models"
)

// ServiceConfig is the sample record loaded by confbind.
type ServiceConfig struct {
	Name string `config:"name" default:"confbind-demo"`

	Server struct {
		Port         int           `config:"port" default:"8080" validate:"min=1,max=65535"`
		Host         string        `config:"host" default:"0.0.0.0" validate:"ip|hostname"`
		ReadTimeout  time.Duration `config:"read_timeout" default:"5s"`
		AllowOrigins []string      `config:"allow_origins,optional"`
	} `config:"server"`

	Database struct {
		URL            string `config:"url" validate:"url"`
		MaxConnections int    `config:"max_connections" default:"10" validate:"min=1"`
	} `config:"database"`

	Debug  bool              `config:"debug,optional"`
	Labels map[string]string `config:"labels,optional"`
}

// portRange rejects privileged ports before anything is bound.
var portRange = validators.ValidatorFunc(func(_ context.Context, obj any, _ ...string) error {
	cfg, ok := obj.(*models.MergedConfig)
	if !ok {
		return validators.ErrUnsupportedType
	}

	port, ok := cfg.Lookup("server", "port")
	if !ok || port.Kind() != tree.KindNumber {
		return nil
	}
	if port.AsNumber() < 1024 {
		return fmt.Errorf("server.port %s is privileged", tree.FormatNumber(port.AsNumber()))
	}
	return nil
})
