// Package config defines the ConfigTree consumed by the snippet renderer: an
// ordered mapping from string keys to one of four value kinds (string,
// number, boolean or a nested tree). Insertion order is preserved through
// every operation so rendered snippets follow the order in which sections and
// fields were declared. Decoders for JSON, YAML and TOML keep document order
// as well.
//
// Trees are plain values owned by the caller. They must be finite and
// acyclic; nothing in this package detects a tree that contains itself.
package config
