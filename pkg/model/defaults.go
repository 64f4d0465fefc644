package model

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-phoenixgen/pkg/config"
)

// DefaultConfig builds the initial config for a device: one nested tree per
// section, keyed by section title, holding every field default in order.
func DefaultConfig(device Device) *config.Tree {
	tree := config.NewTree()
	for _, section := range device.Sections {
		sectionTree := tree.Section(section.Title)
		for _, field := range section.Fields {
			sectionTree.Set(field.Base().Key, field.DefaultValue())
		}
	}
	return tree
}

// ValueFor returns the value stored for field in section, falling back to the
// field default when cfg does not carry one.
func ValueFor(cfg *config.Tree, section Section, field Field) config.Value {
	if raw, ok := cfg.Get(section.Title); ok {
		if sectionTree, ok := raw.(*config.Tree); ok {
			if value, ok := sectionTree.Get(field.Base().Key); ok {
				return value
			}
		}
	}
	return field.DefaultValue()
}

// Validate checks the structural invariants of a definition: a key and root
// name, unique non-empty section titles, unique non-empty field keys within a
// section, select defaults drawn from their options and number defaults
// inside their bounds.
func (d Device) Validate() error {
	if strings.TrimSpace(d.Key) == "" {
		return fmt.Errorf("model: device key is required")
	}
	if strings.TrimSpace(d.RootName) == "" {
		return fmt.Errorf("model: device %q root name is required", d.Key)
	}

	titles := make(map[string]struct{}, len(d.Sections))
	for _, section := range d.Sections {
		if strings.TrimSpace(section.Title) == "" {
			return fmt.Errorf("model: device %q has a section without title", d.Key)
		}
		if _, exists := titles[section.Title]; exists {
			return fmt.Errorf("model: device %q defines duplicate section %q", d.Key, section.Title)
		}
		titles[section.Title] = struct{}{}

		keys := make(map[string]struct{}, len(section.Fields))
		for _, field := range section.Fields {
			if field == nil {
				return fmt.Errorf("model: device %q section %q contains a nil field", d.Key, section.Title)
			}
			key := field.Base().Key
			if strings.TrimSpace(key) == "" {
				return fmt.Errorf("model: device %q section %q has a field without key", d.Key, section.Title)
			}
			if _, exists := keys[key]; exists {
				return fmt.Errorf("model: device %q section %q defines duplicate field %q", d.Key, section.Title, key)
			}
			keys[key] = struct{}{}

			if err := validateField(field); err != nil {
				return fmt.Errorf("model: device %q section %q: %w", d.Key, section.Title, err)
			}
		}
	}
	return nil
}

func validateField(field Field) error {
	switch f := field.(type) {
	case NumberField:
		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			return fmt.Errorf("field %q min exceeds max", f.Key)
		}
		if f.Step < 0 {
			return fmt.Errorf("field %q step must not be negative", f.Key)
		}
		return f.Check(f.Default)
	case SelectField:
		if len(f.Options) == 0 {
			return fmt.Errorf("field %q has no options", f.Key)
		}
		if !f.Contains(f.Default) {
			return fmt.Errorf("field %q default %q is not an option", f.Key, f.Default)
		}
	}
	return nil
}

// CheckConfig verifies that every declared field present in cfg holds a value
// of the matching kind and that numbers respect their bounds. Undeclared keys
// are ignored.
func CheckConfig(device Device, cfg *config.Tree) error {
	for _, section := range device.Sections {
		raw, ok := cfg.Get(section.Title)
		if !ok {
			continue
		}
		sectionTree, ok := raw.(*config.Tree)
		if !ok {
			return fmt.Errorf("model: %s must be a section, got %s", section.Title, raw.Kind())
		}
		for _, field := range section.Fields {
			value, ok := sectionTree.Get(field.Base().Key)
			if !ok {
				continue
			}
			if err := checkValue(field, value); err != nil {
				return fmt.Errorf("model: %s.%s: %w", section.Title, field.Base().Key, err)
			}
		}
	}
	return nil
}

func checkValue(field Field, value config.Value) error {
	want := field.DefaultValue().Kind()
	if value.Kind() != want {
		return fmt.Errorf("%w: expected %s, got %s", ErrKindMismatch, want, value.Kind())
	}
	switch f := field.(type) {
	case NumberField:
		return f.Check(float64(value.(config.Number)))
	case SelectField:
		if s := string(value.(config.String)); !f.Contains(s) {
			return fmt.Errorf("%w: %q is not an option", ErrKindMismatch, s)
		}
	}
	return nil
}

// ParseValue converts command-line text for field. Text and select fields
// keep the text as a string even when it looks numeric or boolean; number and
// boolean fields go through config.ParseScalar. Quoted text is always a
// string.
func ParseValue(field Field, raw string) config.Value {
	switch field.(type) {
	case TextField, SelectField:
		if value, ok := config.ParseScalar(raw).(config.String); ok {
			return value
		}
		return config.String(strings.TrimSpace(raw))
	default:
		return config.ParseScalar(raw)
	}
}
