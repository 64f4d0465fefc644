package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes the tree as a JSON object in insertion order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONTree(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSONTree(buf *bytes.Buffer, t *Tree) error {
	buf.WriteByte('{')
	for i, entry := range t.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Key)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := writeJSONValue(buf, entry.Value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeJSONValue(buf *bytes.Buffer, value Value) error {
	switch v := value.(type) {
	case *Tree:
		return writeJSONTree(buf, v)
	case String:
		encoded, err := json.Marshal(string(v))
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case Number:
		encoded, err := json.Marshal(float64(v))
		if err != nil {
			return fmt.Errorf("config: encode json: %w", err)
		}
		buf.Write(encoded)
	case Bool:
		buf.WriteString(strconv.FormatBool(bool(v)))
	default:
		return fmt.Errorf("%w %T", ErrUnsupportedValue, value)
	}
	return nil
}

// MarshalYAML encodes the tree as an ordered YAML mapping node.
func (t *Tree) MarshalYAML() (any, error) {
	return yamlNode(t)
}

func yamlNode(value Value) (*yaml.Node, error) {
	switch v := value.(type) {
	case *Tree:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, entry := range v.Entries() {
			child, err := yamlNode(entry.Value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Key},
				child,
			)
		}
		return node, nil
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v)}, nil
	case Number:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, ErrNonFinite
		}
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(f), 10)}, nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(f, 'g', -1, 64)}, nil
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(v))}, nil
	default:
		return nil, fmt.Errorf("%w %T", ErrUnsupportedValue, value)
	}
}
