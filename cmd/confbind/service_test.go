// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-confbind/internal/config"
	"github.com/MKhiriev/go-confbind/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceConfig_Load(t *testing.T) {
	l := config.NewLoader(nil).
		WithEnvPrefix("APP").
		WithEnvironment(map[string]string{
			"APP_DATABASE_URL":         "postgres://localhost/app",
			"APP_SERVER_ALLOW_ORIGINS": `["https://a.example","https://b.example"]`,
			"APP_LABELS":               `{"team":"core"}`,
		}).
		WithValidator(portRange).
		WithStructValidation().
		WithCLI([]string{"--server-port", "9090", "--debug"})

	cfg, err := config.Load[ServiceConfig](context.Background(), l)

	require.NoError(t, err)
	assert.Equal(t, "confbind-demo", cfg.Name)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowOrigins)
	assert.Equal(t, 10, cfg.Database.MaxConnections)
	assert.True(t, cfg.Debug)
	assert.Equal(t, map[string]string{"team": "core"}, cfg.Labels)
}

func TestServiceConfig_PrivilegedPort(t *testing.T) {
	l := config.NewLoader(nil).
		WithEnvironment(map[string]string{"DATABASE_URL": "postgres://x/y", "SERVER_PORT": "80"}).
		WithValidator(portRange)

	_, err := config.Load[ServiceConfig](context.Background(), l)

	assert.ErrorIs(t, err, models.ErrValidation)
	assert.EqualError(t, err, "validation failed: server.port 80 is privileged")
}
