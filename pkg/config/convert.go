package config

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// FromAny converts plain Go data into a Value. Maps become trees with keys in
// sorted order since Go maps carry no ordering of their own.
func FromAny(raw any) (Value, error) {
	return fromAny(raw, "")
}

// FromMap converts a map into a Tree with sorted keys.
func FromMap(raw map[string]any) (*Tree, error) {
	return fromMap(raw, "")
}

func fromAny(raw any, path string) (Value, error) {
	switch v := raw.(type) {
	case Value:
		return cloneValue(v), nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case float64:
		return finiteNumber(v, path)
	case float32:
		return finiteNumber(float64(v), path)
	case int:
		return Number(float64(v)), nil
	case int8:
		return Number(float64(v)), nil
	case int16:
		return Number(float64(v)), nil
	case int32:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case uint:
		return Number(float64(v)), nil
	case uint8:
		return Number(float64(v)), nil
	case uint16:
		return Number(float64(v)), nil
	case uint32:
		return Number(float64(v)), nil
	case uint64:
		return Number(float64(v)), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("config: number at %q: %w", path, err)
		}
		return finiteNumber(f, path)
	case map[string]any:
		return fromMap(v, path)
	default:
		return nil, fmt.Errorf("%w %T at %q", ErrUnsupportedValue, raw, path)
	}
}

func fromMap(raw map[string]any, path string) (*Tree, error) {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tree := NewTree()
	for _, key := range keys {
		value, err := fromAny(raw[key], joinPath(path, key))
		if err != nil {
			return nil, err
		}
		tree.Set(key, value)
	}
	return tree, nil
}

func finiteNumber(f float64, path string) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w at %q", ErrNonFinite, path)
	}
	return Number(f), nil
}

// ParseScalar interprets command-line text: "true"/"false" become Bool,
// finite decimal numbers become Number and everything else stays a String.
// Text wrapped in double or single quotes is always an unquoted String.
func ParseScalar(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if s, ok := unquote(trimmed); ok {
		return String(s)
	}
	switch trimmed {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Number(f)
	}
	return String(raw)
}

func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	switch {
	case s[0] == '"' && s[len(s)-1] == '"':
		if unquoted, err := strconv.Unquote(s); err == nil {
			return unquoted, true
		}
		return s[1 : len(s)-1], true
	case s[0] == '\'' && s[len(s)-1] == '\'':
		return s[1 : len(s)-1], true
	}
	return "", false
}

// ToAny converts a value back into plain Go data. Trees become maps and lose
// their ordering.
func ToAny(value Value) any {
	switch v := value.(type) {
	case String:
		return string(v)
	case Number:
		return float64(v)
	case Bool:
		return bool(v)
	case *Tree:
		out := make(map[string]any, v.Len())
		for _, entry := range v.Entries() {
			out[entry.Key] = ToAny(entry.Value)
		}
		return out
	default:
		return nil
	}
}
