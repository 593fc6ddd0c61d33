// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mapper derives source-specific keys from field descriptors:
// environment variable names and command-line flags.
//
//	path ["database", "maxConnections"], prefix "APP"
//	  env:  APP_DATABASE_MAX_CONNECTIONS
//	  flag: --database-max-connections
package mapper

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-confbind/models"
)

var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// EnvKey returns the environment variable for d. The second result is false
// when d is not bound to the environment.
//
// An explicit d.EnvKey is used verbatim; otherwise the key is
// [prefix_]SCREAMING_SNAKE(path joined by "_").
func EnvKey(d models.FieldDescriptor, prefix string) (string, bool, error) {
	if d.EnvKey == models.Unbound {
		return "", false, nil
	}

	if d.EnvKey != "" {
		return d.EnvKey, true, nil
	}

	segs, err := Segments(d)
	if err != nil {
		return "", false, err
	}

	key := strings.ToUpper(strings.Join(segs, "_"))
	if prefix = strings.TrimSuffix(prefix, "_"); prefix != "" {
		key = prefix + "_" + key
	}

	return key, true, nil
}

// CLIFlag returns the long flag for d including the leading "--". The second
// result is false when d is not bound to the command line.
func CLIFlag(d models.FieldDescriptor) (string, bool, error) {
	if d.CLIFlag == models.Unbound {
		return "", false, nil
	}

	if d.CLIFlag != "" {
		return "--" + strings.TrimLeft(d.CLIFlag, "-"), true, nil
	}

	segs, err := Segments(d)
	if err != nil {
		return "", false, err
	}

	return "--" + strings.ReplaceAll(strings.Join(segs, "-"), "_", "-"), true, nil
}

// Segments returns d.Path normalised to snake_case, failing with a Mapping
// error when a segment is empty or has characters outside [A-Za-z0-9_].
func Segments(d models.FieldDescriptor) ([]string, error) {
	if len(d.Path) == 0 {
		return nil, mappingError(d, ErrEmptyPath)
	}

	out := make([]string, 0, len(d.Path))
	for _, seg := range d.Path {
		norm := Normalize(seg)
		if norm == "" {
			return nil, mappingError(d, ErrEmptySegment)
		}
		if !segmentPattern.MatchString(norm) {
			return nil, mappingError(d, fmt.Errorf("%w: %q", ErrInvalidSegment, seg))
		}
		out = append(out, norm)
	}

	return out, nil
}

// Normalize converts a segment to snake_case: camelCase and PascalCase
// boundaries become underscores, as do '-', '.' and spaces. Acronyms stay
// together ("HTTPServer" -> "http_server").
func Normalize(seg string) string {
	runes := []rune(strings.TrimSpace(seg))
	var sb strings.Builder
	sb.Grow(len(runes) + 4)

	for i, r := range runes {
		switch {
		case r == '-' || r == '.' || r == ' ':
			sb.WriteByte('_')
			continue
		case unicode.IsUpper(r):
			if i > 0 && needsBreak(runes, i) {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

func needsBreak(runes []rune, i int) bool {
	prev := runes[i-1]
	if prev == '_' || prev == '-' || prev == '.' || prev == ' ' {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// end of an acronym: "HTTPServer" breaks before the 'S'
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func mappingError(d models.FieldDescriptor, err error) error {
	return &models.LoadError{
		Kind:  models.KindMapping,
		Field: d.Name(),
		Err:   err,
	}
}
