// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-confbind/internal/binder"
	"github.com/MKhiriev/go-confbind/internal/decoder"
	"github.com/MKhiriev/go-confbind/internal/logger"
	"github.com/MKhiriev/go-confbind/internal/merge"
	"github.com/MKhiriev/go-confbind/internal/meta"
	"github.com/MKhiriev/go-confbind/internal/source"
	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/MKhiriev/go-confbind/internal/utils"
	"github.com/MKhiriev/go-confbind/internal/validators"
	"github.com/MKhiriev/go-confbind/models"
)

// Loader declares the sources and validators of a load. Builder methods
// record misuse and Load reports it; a Loader may be reused for several
// loads but must not be modified concurrently with one.
type Loader struct {
	opts     Options
	registry *decoder.Registry

	files   []models.Source
	env     *models.Source
	environ map[string]string
	cli     *models.Source

	validators validators.Chain

	log *logger.Logger
	ids *utils.IDGenerator
	err error
}

// NewLoader returns a Loader with the environment enabled (no prefix), no
// files and no command line. A nil log discards output.
func NewLoader(log *logger.Logger) *Loader {
	env := models.EnvSource("")
	return &Loader{
		opts:     DefaultOptions(),
		registry: decoder.NewRegistry(),
		env:      &env,
		log:      logger.OrNop(log),
		ids:      utils.NewIDGenerator(),
	}
}

// WithOptions replaces the loader options; zero fields take defaults.
func (l *Loader) WithOptions(opts Options) *Loader {
	merged, err := opts.withDefaults()
	if err != nil {
		l.err = errors.Join(l.err, err)
		return l
	}
	l.opts = merged
	return l
}

// WithFile adds an optional file whose format follows its extension.
func (l *Loader) WithFile(path string) *Loader {
	return l.addFile(path, models.FormatAuto, false)
}

// WithFileFormat adds an optional file with an explicit format.
func (l *Loader) WithFileFormat(path string, format models.Format) *Loader {
	return l.addFile(path, format, false)
}

// WithRequiredFile adds a file that must exist.
func (l *Loader) WithRequiredFile(path string) *Loader {
	return l.addFile(path, models.FormatAuto, true)
}

// WithDefaultFiles adds the conventional files of dir (see DefaultFiles)
// as optional sources.
func (l *Loader) WithDefaultFiles(dir string) *Loader {
	for _, path := range defaultFiles(dir, l.opts.DefaultFileNames) {
		l.WithFile(path)
	}
	return l
}

func (l *Loader) addFile(path string, format models.Format, required bool) *Loader {
	if path == "" {
		l.err = errors.Join(l.err, ErrEmptyPath)
		return l
	}
	if format != models.FormatAuto {
		if _, err := l.registry.Lookup(format); err != nil {
			l.err = errors.Join(l.err, fmt.Errorf("%w %q for %s", ErrUnknownFormat, format, path))
			return l
		}
	}

	l.files = append(l.files, models.FileSource(path, format, required, len(l.files)))
	return l
}

// WithDecoder registers d for format, so that files of that format (given
// explicitly with WithFileFormat) can be read.
func (l *Loader) WithDecoder(format models.Format, d decoder.Decoder) *Loader {
	l.registry.Register(format, d)
	return l
}

// WithEnvPrefix enables the environment with keys prefixed by prefix + "_".
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	env := models.EnvSource(prefix)
	l.env = &env
	return l
}

// WithoutEnv disables the environment source.
func (l *Loader) WithoutEnv() *Loader {
	l.env = nil
	return l
}

// WithEnvironment makes the environment source read vars instead of the
// process environment.
func (l *Loader) WithEnvironment(vars map[string]string) *Loader {
	l.environ = vars
	return l
}

// WithCLI enables the command line over args (without the program name).
// nil means os.Args[1:].
func (l *Loader) WithCLI(args []string) *Loader {
	if args == nil {
		args = os.Args[1:]
	}
	cli := models.CLISource(args)
	l.cli = &cli
	return l
}

// WithValidator appends v to the validators run on the merged config.
func (l *Loader) WithValidator(v validators.Validator) *Loader {
	if v == nil {
		l.err = errors.Join(l.err, ErrNilValidator)
		return l
	}
	l.validators = append(l.validators, v)
	return l
}

// WithStructValidation runs `validate` struct tags on the bound record.
func (l *Loader) WithStructValidation() *Loader {
	l.opts.StructValidation = true
	return l
}

// Sources returns the declared sources in priority order.
func (l *Loader) Sources() []models.Source {
	out := make([]models.Source, 0, len(l.files)+2)
	out = append(out, l.files...)
	if l.env != nil {
		out = append(out, *l.env)
	}
	if l.cli != nil {
		out = append(out, *l.cli)
	}
	return out
}

// Merge runs every source and the validators, and returns the merged
// configuration without binding it.
func (l *Loader) Merge(ctx context.Context, descs []models.FieldDescriptor) (*models.MergedConfig, error) {
	if l.err != nil {
		return nil, fmt.Errorf("error occurred during building loader: %w", l.err)
	}

	log := logger.FromContext(ctx)

	engine := merge.NewEngine(
		source.NewFileAdapter(l.registry),
		source.NewEnvAdapter(l.environ, l.opts.ListSeparator),
		source.NewCLIAdapter(l.opts.ListSeparator),
		log,
	)

	cfg, err := engine.Run(ctx, merge.Plan{Files: l.files, Env: l.env, CLI: l.cli}, descs)
	if err != nil {
		return nil, err
	}

	if err := l.validators.Validate(ctx, cfg); err != nil {
		return nil, err
	}
	log.Debug().Int("validators", len(l.validators)).Msg("merged config validated")

	return cfg, nil
}

// Result is a successful load together with what produced it.
type Result[T any] struct {
	Value *T
	// Merged is the merged tree before defaults, with provenance.
	Merged *models.MergedConfig
	// Completed is the tree that was bound: Merged with defaults applied.
	Completed tree.Value
}

// Load describes T from its struct tags and loads it with l.
func Load[T any](ctx context.Context, l *Loader) (*T, error) {
	res, err := LoadResult[T](ctx, l)
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

// LoadResult is Load returning the intermediate trees as well.
func LoadResult[T any](ctx context.Context, l *Loader) (*Result[T], error) {
	descs, err := meta.Describe[T]()
	if err != nil {
		return nil, err
	}
	return loadWith[T](ctx, l, descs)
}

// LoadWith loads T with l using a hand-written descriptor table.
//
// The result is either a fully bound record or the first error in
// adapter, merge, validation and binding order; never both.
func LoadWith[T any](ctx context.Context, l *Loader, descs []models.FieldDescriptor) (*T, error) {
	res, err := loadWith[T](ctx, l, descs)
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

func loadWith[T any](ctx context.Context, l *Loader, descs []models.FieldDescriptor) (*Result[T], error) {
	start := time.Now()

	id := l.ids.Generate()
	log := &logger.Logger{Logger: l.log.With().Str("load_id", id).Logger()}
	ctx = log.WithContext(utils.WithLoadID(ctx, id))

	log.Debug().
		Int("sources", len(l.Sources())).
		Int("fields", len(models.Leaves(descs))).
		Msg("load started")

	res, err := load[T](ctx, l, descs)
	if err != nil {
		log.Error().
			Err(err).
			Str("kind", models.KindOf(err).String()).
			Dur("took", time.Since(start)).
			Msg("load failed")
		return nil, err
	}

	log.Info().Dur("took", time.Since(start)).Msg("config loaded")
	return res, nil
}

func load[T any](ctx context.Context, l *Loader, descs []models.FieldDescriptor) (*Result[T], error) {
	cfg, err := l.Merge(ctx, descs)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	completed, err := binder.Complete(cfg.Tree, descs)
	if err != nil {
		return nil, err
	}

	out, err := binder.Decode[T](completed)
	if err != nil {
		return nil, err
	}

	if l.opts.StructValidation {
		if err := (validators.Chain{validators.NewStructValidator()}).Validate(ctx, out); err != nil {
			return nil, err
		}
	}

	return &Result[T]{Value: out, Merged: cfg, Completed: completed}, nil
}
