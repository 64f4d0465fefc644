package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names a serialization understood by Decode.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("config: unsupported file extension for %q", path)
	}
}

// Decode parses data in the given format into a Tree, preserving key order.
func Decode(data []byte, format Format) (*Tree, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatYAML:
		return DecodeYAML(data)
	case FormatTOML:
		return DecodeTOML(data)
	default:
		return nil, fmt.Errorf("config: unsupported format %q", format)
	}
}

// DecodeJSON parses a JSON object. Key order follows the document; duplicate
// keys keep their first position and their last value.
func DecodeJSON(data []byte) (*Tree, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewTree(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("config: decode json: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("config: decode json: document root must be an object")
	}

	tree, err := decodeJSONObject(dec, "")
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("config: decode json: unexpected data after document root")
	}
	return tree, nil
}

func decodeJSONObject(dec *json.Decoder, path string) (*Tree, error) {
	tree := NewTree()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("config: decode json: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("config: decode json: expected key at %q", path)
		}
		value, err := decodeJSONValue(dec, joinPath(path, key))
		if err != nil {
			return nil, err
		}
		tree.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("config: decode json: %w", err)
	}
	return tree, nil
}

func decodeJSONValue(dec *json.Decoder, path string) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("config: decode json: %w", err)
	}
	switch v := tok.(type) {
	case json.Delim:
		if v == '{' {
			return decodeJSONObject(dec, path)
		}
		return nil, fmt.Errorf("%w array at %q", ErrUnsupportedValue, path)
	case nil:
		return nil, fmt.Errorf("%w null at %q", ErrUnsupportedValue, path)
	default:
		return fromAny(v, path)
	}
}

// DecodeYAML parses a YAML mapping document. Aliases are followed; sequences
// and null values are rejected.
func DecodeYAML(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewTree(), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("config: decode yaml: document root must be a mapping")
	}
	return decodeYAMLMapping(root, "")
}

func decodeYAMLMapping(node *yaml.Node, path string) (*Tree, error) {
	tree := NewTree()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value
		value, err := decodeYAMLValue(valueNode, joinPath(path, key))
		if err != nil {
			return nil, err
		}
		tree.Set(key, value)
	}
	return tree, nil
}

func decodeYAMLValue(node *yaml.Node, path string) (Value, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
		return decodeYAMLMapping(node, path)
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return nil, fmt.Errorf("config: decode yaml at %q: %w", path, err)
			}
			return Bool(b), nil
		case "!!int", "!!float":
			var f float64
			if err := node.Decode(&f); err != nil {
				return nil, fmt.Errorf("config: decode yaml at %q: %w", path, err)
			}
			return finiteNumber(f, path)
		case "!!null":
			return nil, fmt.Errorf("%w null at %q", ErrUnsupportedValue, path)
		default:
			return String(node.Value), nil
		}
	default:
		return nil, fmt.Errorf("%w %s at %q", ErrUnsupportedValue, yamlKindName(node.Kind), path)
	}
}

func yamlKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.DocumentNode:
		return "document"
	case yaml.AliasNode:
		return "alias"
	default:
		return "node"
	}
}

// DecodeTOML parses a TOML document. Keys follow the order reported by the
// TOML metadata; keys the metadata does not list (inline tables) are appended
// in sorted order.
func DecodeTOML(data []byte) (*Tree, error) {
	var raw map[string]any
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("config: decode toml: %w", err)
	}

	tree := NewTree()
	for _, key := range meta.Keys() {
		segments := []string(key)
		value, ok := lookupTOML(raw, segments)
		if !ok {
			continue
		}
		path := strings.Join(segments, ".")
		if _, isMap := value.(map[string]any); isMap {
			if err := ensureSection(tree, segments, path); err != nil {
				return nil, err
			}
			continue
		}
		converted, err := fromAny(value, path)
		if err != nil {
			return nil, err
		}
		if err := tree.setSegments(segments, converted); err != nil {
			return nil, err
		}
	}

	if err := fillMissing(tree, raw, ""); err != nil {
		return nil, err
	}
	return tree, nil
}

func lookupTOML(raw map[string]any, segments []string) (any, bool) {
	var current any = raw
	for _, segment := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func ensureSection(tree *Tree, segments []string, path string) error {
	current := tree
	for _, segment := range segments {
		existing, ok := current.Get(segment)
		if ok {
			nested, isTree := existing.(*Tree)
			if !isTree {
				return fmt.Errorf("%w: %q", ErrPathConflict, path)
			}
			current = nested
			continue
		}
		current = current.Section(segment)
	}
	return nil
}

func fillMissing(tree *Tree, raw map[string]any, path string) error {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		childPath := joinPath(path, key)
		existing, ok := tree.Get(key)
		if !ok {
			value, err := fromAny(raw[key], childPath)
			if err != nil {
				return err
			}
			tree.Set(key, value)
			continue
		}
		nested, isTree := existing.(*Tree)
		child, isMap := raw[key].(map[string]any)
		if isTree && isMap {
			if err := fillMissing(nested, child, childPath); err != nil {
				return err
			}
		}
	}
	return nil
}
