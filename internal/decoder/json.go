// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package decoder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-confbind/internal/tree"
)

// JSON decodes JSON documents, reading the token stream so object keys keep
// their order.
type JSON struct{}

func (JSON) Decode(data []byte) (tree.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return tree.Null(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return tree.Value{}, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return tree.Value{}, ErrTrailingData
	}

	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (tree.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return tree.Value{}, io.ErrUnexpectedEOF
		}
		return tree.Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}
		return tree.Value{}, fmt.Errorf("unexpected delimiter %q", t)
	default:
		return tree.FromAny(t)
	}
}

func decodeJSONObject(dec *json.Decoder) (tree.Value, error) {
	m := tree.NewMapping()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return tree.Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return tree.Value{}, ErrInvalidKey
		}

		v, err := decodeJSONValue(dec)
		if err != nil {
			return tree.Value{}, fmt.Errorf("%s: %w", key, err)
		}
		m.Set(key, v)
	}

	// closing '}'
	if _, err := dec.Token(); err != nil {
		return tree.Value{}, err
	}
	return tree.Map(m), nil
}

func decodeJSONArray(dec *json.Decoder) (tree.Value, error) {
	var items []tree.Value
	for dec.More() {
		v, err := decodeJSONValue(dec)
		if err != nil {
			return tree.Value{}, fmt.Errorf("[%d]: %w", len(items), err)
		}
		items = append(items, v)
	}

	// closing ']'
	if _, err := dec.Token(); err != nil {
		return tree.Value{}, err
	}
	return tree.Sequence(items...), nil
}
