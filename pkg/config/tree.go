package config

import (
	"fmt"
	"strings"
)

// Entry is a single key/value pair of a Tree.
type Entry struct {
	Key   string
	Value Value
}

// Tree is an ordered mapping of unique keys to values. The zero value is an
// empty tree ready for use; a nil *Tree reads as empty.
type Tree struct {
	entries []Entry
	index   map[string]int
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Set stores value under key. Existing keys keep their position; new keys are
// appended. Nil values are ignored. Set returns the receiver for chaining.
func (t *Tree) Set(key string, value Value) *Tree {
	if value == nil {
		return t
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if idx, ok := t.index[key]; ok {
		t.entries[idx].Value = value
		return t
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, Entry{Key: key, Value: value})
	return t
}

// Get returns the value stored under key.
func (t *Tree) Get(key string) (Value, bool) {
	if t == nil {
		return nil, false
	}
	idx, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.entries[idx].Value, true
}

// Delete removes key and reports whether it was present.
func (t *Tree) Delete(key string) bool {
	if t == nil {
		return false
	}
	idx, ok := t.index[key]
	if !ok {
		return false
	}
	t.entries = append(t.entries[:idx], t.entries[idx+1:]...)
	delete(t.index, key)
	for i := idx; i < len(t.entries); i++ {
		t.index[t.entries[i].Key] = i
	}
	return true
}

// Len reports the number of direct entries.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Keys returns the direct keys in insertion order.
func (t *Tree) Keys() []string {
	if t.Len() == 0 {
		return nil
	}
	keys := make([]string, len(t.entries))
	for i, entry := range t.entries {
		keys[i] = entry.Key
	}
	return keys
}

// Entries returns a copy of the direct entries in insertion order. Nested
// trees are shared, not copied.
func (t *Tree) Entries() []Entry {
	if t.Len() == 0 {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Section returns the nested tree stored under key, creating it when missing.
// A leaf stored under key is replaced by the new tree in place.
func (t *Tree) Section(key string) *Tree {
	if existing, ok := t.Get(key); ok {
		if nested, ok := existing.(*Tree); ok {
			return nested
		}
	}
	nested := NewTree()
	t.Set(key, nested)
	return nested
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	out := NewTree()
	if t == nil {
		return out
	}
	for _, entry := range t.entries {
		out.Set(entry.Key, cloneValue(entry.Value))
	}
	return out
}

// Merge returns a new tree holding the receiver overlaid with overlay. Nested
// trees present on both sides merge recursively; any other overlay value
// replaces the receiver's. Keys only present in overlay are appended in
// overlay order. Neither input is modified.
func (t *Tree) Merge(overlay *Tree) *Tree {
	out := t.Clone()
	if overlay == nil {
		return out
	}
	for _, entry := range overlay.entries {
		current, ok := out.Get(entry.Key)
		if ok {
			base, baseIsTree := current.(*Tree)
			over, overIsTree := entry.Value.(*Tree)
			if baseIsTree && overIsTree {
				out.Set(entry.Key, base.Merge(over))
				continue
			}
		}
		out.Set(entry.Key, cloneValue(entry.Value))
	}
	return out
}

// SetPath stores value under a dotted path such as "Hardware.canId", creating
// intermediate trees as needed.
func (t *Tree) SetPath(path string, value Value) error {
	segments := splitPath(path)
	if len(segments) == 0 {
		return fmt.Errorf("config: path %q is empty", path)
	}
	return t.setSegments(segments, value)
}

// GetPath resolves a dotted path.
func (t *Tree) GetPath(path string) (Value, bool) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil, false
	}
	current := t
	for i, segment := range segments {
		value, ok := current.Get(segment)
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return value, true
		}
		nested, ok := value.(*Tree)
		if !ok {
			return nil, false
		}
		current = nested
	}
	return nil, false
}

func (t *Tree) setSegments(segments []string, value Value) error {
	current := t
	for i, segment := range segments[:len(segments)-1] {
		existing, ok := current.Get(segment)
		if ok {
			nested, isTree := existing.(*Tree)
			if !isTree {
				return fmt.Errorf("%w: %q", ErrPathConflict, strings.Join(segments[:i+1], "."))
			}
			current = nested
			continue
		}
		current = current.Section(segment)
	}
	current.Set(segments[len(segments)-1], value)
	return nil
}

func splitPath(path string) []string {
	trimmed := strings.Trim(strings.TrimSpace(path), ".")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ".")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

func cloneValue(value Value) Value {
	if nested, ok := value.(*Tree); ok {
		return nested.Clone()
	}
	return value
}
