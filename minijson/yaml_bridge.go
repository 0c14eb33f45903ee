package minijson

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ============================================================
// YAML Bridge
// ============================================================

// FromYAML parses a single YAML document into a *Value, keeping mapping
// order. Aliases are expanded; mapping keys must be scalars.
func FromYAML(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	if doc.Kind == 0 {
		// Empty input.
		return Null(), nil
	}
	return fromYAMLNode(&doc, 0)
}

// maxYAMLDepth bounds alias expansion.
const maxYAMLDepth = 1000

func fromYAMLNode(n *yaml.Node, depth int) (*Value, error) {
	if depth > maxYAMLDepth {
		return nil, fmt.Errorf("YAML nesting exceeds %d levels", maxYAMLDepth)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromYAMLNode(n.Content[0], depth+1)

	case yaml.AliasNode:
		return fromYAMLNode(n.Alias, depth+1)

	case yaml.ScalarNode:
		return fromYAMLScalar(n)

	case yaml.SequenceNode:
		items := make([]*Value, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := fromYAMLNode(c, depth+1)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			items = append(items, v)
		}
		return Array(items...), nil

	case yaml.MappingNode:
		out := Object()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, val := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", k.Line)
			}
			v, err := fromYAMLNode(val, depth+1)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k.Value, err)
			}
			out.Set(k.Value, v)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

func fromYAMLScalar(n *yaml.Node) (*Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return Number(f), nil
	default:
		return Str(n.Value), nil
	}
}

// ToYAML converts a *Value to a YAML document. Undefined is treated as in
// ToJSON.
func ToYAML(v *Value) ([]byte, error) {
	if v.Kind() == KindUndefined {
		return nil, ErrNoOutput
	}
	n, err := toYAMLNode(v, nil)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(n)
}

func toYAMLNode(v *Value, path *ancestors) (*yaml.Node, error) {
	switch v.Kind() {
	case KindNull, KindUndefined:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: "null"}, nil

	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatBool(v.boolVal)}, nil

	case KindNumber:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: yamlFloat(v.numVal)}, nil

	case KindString:
		// The explicit tag makes the encoder quote text like "true" or "1".
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.strVal}, nil

	case KindArray:
		path, err := enter(reflect.ValueOf(v), path)
		if err != nil {
			return nil, err
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i, elem := range v.arrVal {
			c, err := toYAMLNode(elem, path)
			if err != nil {
				return nil, wrapIndex(i, err)
			}
			seq.Content = append(seq.Content, c)
		}
		return seq, nil

	case KindObject:
		path, err := enter(reflect.ValueOf(v), path)
		if err != nil {
			return nil, err
		}
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range v.objVal {
			if e.Value.Kind() == KindUndefined {
				continue
			}
			c, err := toYAMLNode(e.Value, path)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", e.Key, err)
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key}
			m.Content = append(m.Content, key, c)
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported value kind: %s", v.Kind())
	}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case f == 0 && math.Signbit(f):
		// Plain -0 would resolve as an int and lose its sign.
		return "-0.0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
