// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package decoder

import (
	"fmt"

	"github.com/MKhiriev/go-confbind/internal/tree"
	"gopkg.in/yaml.v3"
)

// YAML decodes YAML documents through yaml.Node so mapping keys keep their
// order. Aliases are expanded and "<<" merge keys are honoured, with the
// mapping's own keys overriding merged ones.
type YAML struct{}

func (YAML) Decode(data []byte) (tree.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return tree.Value{}, err
	}
	return fromNode(&doc)
}

func fromNode(n *yaml.Node) (tree.Value, error) {
	switch n.Kind {
	case 0:
		return tree.Null(), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return tree.Null(), nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.SequenceNode:
		items := make([]tree.Value, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return tree.Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, v)
		}
		return tree.Sequence(items...), nil
	case yaml.MappingNode:
		return fromMappingNode(n)
	case yaml.ScalarNode:
		var x any
		if err := n.Decode(&x); err != nil {
			return tree.Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return tree.FromAny(x)
	}

	return tree.Value{}, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
}

func fromMappingNode(n *yaml.Node) (tree.Value, error) {
	own := tree.NewMapping()
	merged := tree.EmptyMap()

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return tree.Value{}, fmt.Errorf("line %d: %w", keyNode.Line, ErrInvalidKey)
		}

		if keyNode.ShortTag() == "!!merge" {
			base, err := mergeSources(valNode)
			if err != nil {
				return tree.Value{}, err
			}
			merged = tree.Merge(merged, base)
			continue
		}

		v, err := fromNode(valNode)
		if err != nil {
			return tree.Value{}, fmt.Errorf("%s: %w", keyNode.Value, err)
		}
		own.Set(keyNode.Value, v)
	}

	if merged.Mapping().Len() == 0 {
		return tree.Map(own), nil
	}
	return tree.Merge(merged, tree.Map(own)), nil
}

// mergeSources resolves the value of a "<<" key: one mapping or a sequence
// of mappings, earlier entries taking precedence.
func mergeSources(n *yaml.Node) (tree.Value, error) {
	if n.Kind == yaml.SequenceNode {
		acc := tree.EmptyMap()
		for i := len(n.Content) - 1; i >= 0; i-- {
			v, err := fromNode(n.Content[i])
			if err != nil {
				return tree.Value{}, err
			}
			acc = tree.Merge(acc, v)
		}
		return acc, nil
	}
	return fromNode(n)
}
