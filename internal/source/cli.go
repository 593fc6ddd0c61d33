// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-confbind/internal/coerce"
	"github.com/MKhiriev/go-confbind/internal/mapper"
	"github.com/MKhiriev/go-confbind/internal/tree"
	"github.com/MKhiriev/go-confbind/models"
	"github.com/spf13/pflag"
)

// CLIAdapter resolves fields from command-line arguments.
//
// Supported forms are "--flag value" and "--flag=value"; boolean fields take
// no argument ("--debug" sets true, "--debug=false" is accepted). Sequence
// fields may repeat their flag. Every token must match a field flag.
type CLIAdapter struct {
	separator string
}

// NewCLIAdapter returns a CLI adapter; separator splits single list values
// that are not JSON arrays.
func NewCLIAdapter(separator string) *CLIAdapter {
	return &CLIAdapter{separator: separator}
}

// rawFlag collects every occurrence of a flag as a raw string; coercion
// happens after parsing so that errors carry the field kind.
type rawFlag struct {
	kind   models.FieldKind
	values []string
}

func (f *rawFlag) String() string     { return strings.Join(f.values, ",") }
func (f *rawFlag) Set(s string) error { f.values = append(f.values, s); return nil }
func (f *rawFlag) Type() string       { return f.kind.String() }

type boundFlag struct {
	flag  string
	desc  models.FieldDescriptor
	value *rawFlag
}

// Load parses src.Args against descs. current is the merged File and
// Environment tree: a required field is only demanded on the command line
// when current does not already provide it.
func (a *CLIAdapter) Load(ctx context.Context, src models.Source, descs []models.FieldDescriptor, current tree.Value) (tree.Value, error) {
	if err := ctx.Err(); err != nil {
		return tree.Value{}, err
	}

	required := EffectiveRequired(descs, current)

	fs, bound, err := newFlagSet(descs)
	if err != nil {
		return tree.Value{}, err
	}

	if err := prescan(fs, src.Args); err != nil {
		return tree.Value{}, err
	}

	if err := fs.Parse(src.Args); err != nil {
		return tree.Value{}, coerceError("", models.FieldAny, strings.Join(src.Args, " "), err)
	}

	frag := tree.EmptyMap()
	set := make(map[string]bool, len(bound))
	for _, b := range bound {
		if len(b.value.values) == 0 {
			continue
		}

		v, err := a.convert(b)
		if err != nil {
			return tree.Value{}, err
		}
		frag = tree.Set(frag, b.desc.Path, v)
		set[b.desc.Name()] = true
	}

	for _, d := range required {
		if !set[d.Name()] {
			return tree.Value{}, missingRequired(d)
		}
	}

	return frag, nil
}

func (a *CLIAdapter) convert(b boundFlag) (tree.Value, error) {
	vals := b.value.values
	d := b.desc

	if d.Kind == models.FieldSequence && len(vals) > 1 {
		items := make([]tree.Value, 0, len(vals))
		for _, raw := range vals {
			item, err := coerce.Item(raw, d.ElemKind)
			if err != nil {
				return tree.Value{}, coerceError(b.flag, d.ElemKind, raw, err)
			}
			items = append(items, item)
		}
		return tree.Sequence(items...), nil
	}

	// last occurrence wins for scalar flags
	raw := vals[len(vals)-1]
	v, err := coerce.Raw(raw, d.Kind, d.ElemKind, a.separator)
	if err != nil {
		return tree.Value{}, coerceError(b.flag, d.Kind, raw, err)
	}
	return v, nil
}

func newFlagSet(descs []models.FieldDescriptor) (*pflag.FlagSet, []boundFlag, error) {
	fs := pflag.NewFlagSet("confbind", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	var bound []boundFlag
	for _, d := range models.Leaves(descs) {
		flag, ok, err := mapper.CLIFlag(d)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}

		name := strings.TrimPrefix(flag, "--")
		if fs.Lookup(name) != nil {
			return nil, nil, &models.LoadError{
				Kind:  models.KindMapping,
				Field: d.Name(),
				Err:   fmt.Errorf("%w: %s", ErrDuplicateFlag, flag),
			}
		}

		rv := &rawFlag{kind: d.Kind}
		f := fs.VarPF(rv, name, "", "")
		if d.Kind == models.FieldBool {
			f.NoOptDefVal = "true"
		}

		bound = append(bound, boundFlag{flag: flag, desc: d, value: rv})
	}

	return fs, bound, nil
}

// prescan rejects tokens that match no field before pflag sees them, so the
// error names the offending flag. Shorthand flags and positional arguments
// are not supported and count as unknown.
func prescan(fs *pflag.FlagSet, args []string) error {
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if !strings.HasPrefix(tok, "--") || tok == "--" {
			return unknownFlag(tok)
		}

		name, _, hasValue := strings.Cut(tok[2:], "=")
		f := fs.Lookup(name)
		if f == nil {
			return unknownFlag("--" + name)
		}

		if hasValue || f.NoOptDefVal != "" {
			continue
		}
		if i+1 >= len(args) {
			return coerceError(tok, f.Value.(*rawFlag).kind, "", ErrMissingValue)
		}
		// the next token is this flag's value
		i++
	}
	return nil
}

// EffectiveRequired returns the required leaves that current does not
// provide. Children of an optional record are only considered when the
// record itself is present.
func EffectiveRequired(descs []models.FieldDescriptor, current tree.Value) []models.FieldDescriptor {
	var out []models.FieldDescriptor
	for _, d := range descs {
		if d.IsNestedRecord {
			if !d.Required && !tree.Present(current, d.Path) {
				continue
			}
			out = append(out, EffectiveRequired(d.Fields, current)...)
			continue
		}

		if d.Required && !d.HasDefault && !tree.Present(current, d.Path) {
			out = append(out, d)
		}
	}
	return out
}
