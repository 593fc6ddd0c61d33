// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package merge runs the source adapters of one load and folds their
// fragments into a single tree in priority order:
//
//	defaults < files (declaration order) < environment < command line
//
// Defaults are applied later by the binder, so here the order starts with
// the files. File and environment fragments are independent and are loaded
// concurrently; the command line depends on both because a required field
// already provided by them is not demanded again.
package merge

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-confbind/internal/logger"
	"github.com/MKhiriev/go-confbind/internal/source"
	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/MKhiriev/go-confbind/models"
	"golang.org/x/sync/errgroup"
)

// Plan lists the sources of one load. A nil Env or CLI disables that
// source.
type Plan struct {
	Files []models.Source
	Env   *models.Source
	CLI   *models.Source
}

// Engine merges the fragments produced by the adapters.
type Engine struct {
	files *source.FileAdapter
	env   *source.EnvAdapter
	cli   *source.CLIAdapter
	log   *logger.Logger
}

func NewEngine(files *source.FileAdapter, env *source.EnvAdapter, cli *source.CLIAdapter, log *logger.Logger) *Engine {
	return &Engine{
		files: files,
		env:   env,
		cli:   cli,
		log:   logger.OrNop(log),
	}
}

// Run loads every source of plan and returns the merged configuration.
// On failure no partial result is returned. When both a file and the
// environment fail, the file error is reported, and among files the first
// in declaration order.
func (e *Engine) Run(ctx context.Context, plan Plan, descs []models.FieldDescriptor) (*models.MergedConfig, error) {
	start := time.Now()

	files := slices.Clone(plan.Files)
	slices.SortStableFunc(files, func(a, b models.Source) int { return a.Order - b.Order })

	fileFrags := make([]tree.Value, len(files))
	fileErrs := make([]error, len(files))
	var envFrag tree.Value
	var envErr error

	var g errgroup.Group
	for i, src := range files {
		g.Go(func() error {
			fileFrags[i], fileErrs[i] = e.files.Load(ctx, src)
			return nil
		})
	}
	if plan.Env != nil {
		g.Go(func() error {
			envFrag, envErr = e.env.Load(ctx, *plan.Env, descs)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range fileErrs {
		if err != nil {
			return nil, err
		}
	}
	if envErr != nil {
		return nil, envErr
	}

	cfg := models.NewMergedConfig()
	for i, src := range files {
		apply(cfg, src, fileFrags[i])
		e.log.Debug().
			Str("source", src.String()).
			Int("keys", fileFrags[i].Mapping().Len()).
			Msg("file merged")
	}
	if plan.Env != nil {
		apply(cfg, *plan.Env, envFrag)
		e.log.Debug().Str("source", plan.Env.String()).Msg("environment merged")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if plan.CLI != nil {
		cliFrag, err := e.cli.Load(ctx, *plan.CLI, descs, cfg.Tree)
		if err != nil {
			return nil, err
		}
		apply(cfg, *plan.CLI, cliFrag)
		e.log.Debug().Int("args", len(plan.CLI.Args)).Msg("command line merged")
	}

	e.log.Debug().
		Int("leaves", len(cfg.Provenance)).
		Dur("took", time.Since(start)).
		Msg("sources merged")

	return cfg, nil
}

// apply merges frag onto cfg.Tree and records src as the origin of every
// leaf frag replaced.
func apply(cfg *models.MergedConfig, src models.Source, frag tree.Value) {
	cfg.Tree = tree.Merge(cfg.Tree, frag)

	tree.Walk(frag, func(path []string, _ tree.Value) bool {
		merged, _ := tree.Lookup(cfg.Tree, path)
		if merged.Kind() == tree.KindMapping && merged.Mapping().Len() > 0 {
			// an empty overlay mapping left the base children in place
			return true
		}

		key := tree.JoinPath(path)
		for i := 1; i < len(path); i++ {
			delete(cfg.Provenance, tree.JoinPath(path[:i]))
		}
		for p := range cfg.Provenance {
			if strings.HasPrefix(p, key+".") {
				delete(cfg.Provenance, p)
			}
		}
		cfg.Provenance[key] = src
		return true
	})
}
