// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command confbind loads a sample service configuration through every
// source and prints where each value came from.
//
//	CONFBIND_DIR=. CONFBIND_ENV_PREFIX=APP confbind --port 9090 --database-url postgres://localhost/app
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-confbind/internal/app"
	"github.com/MKhiriev/go-confbind/internal/config"
	"github.com/MKhiriev/go-confbind/internal/logger"
	"github.com/MKhiriev/go-confbind/internal/meta"
	"github.com/MKhiriev/go-confbind/internal/report"
	"github.com/MKhiriev/go-confbind/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Println(report.BuildInfo("confbind", models.BuildInfo{
		Version: buildVersion,
		Date:    buildDate,
		Commit:  buildCommit,
	}))

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if hint := app.Hint(err); hint != "" {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}

		var le *models.LoadError
		if errors.As(err, &le) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boot, err := config.ParseBootstrap()
	if err != nil {
		return err
	}

	log := logger.NewLogger("confbind").WithLevel(boot.LogLevel)

	l := boot.Apply(config.NewLoader(log)).
		WithValidator(portRange).
		WithCLI(nil)

	res, err := config.LoadResult[ServiceConfig](ctx, l)
	if err != nil {
		return err
	}

	log.Debug().
		Str("service", res.Value.Name).
		Int("port", res.Value.Server.Port).
		Msg("service config ready")

	if boot.Report {
		descs, err := meta.Describe[ServiceConfig]()
		if err != nil {
			return err
		}
		rows := report.Rows(res.Merged, res.Completed, descs, boot.EnvPrefix)
		fmt.Println(report.Render("configuration", rows))
	}

	return nil
}
