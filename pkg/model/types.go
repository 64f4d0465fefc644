package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-phoenixgen/pkg/config"
)

// ErrOutOfRange is returned by NumberField.Check when a value falls outside
// the declared bounds.
var ErrOutOfRange = errors.New("model: value out of range")

// ErrKindMismatch is returned by CheckConfig when a value does not fit the
// declared field.
var ErrKindMismatch = errors.New("model: value does not match field")

// FieldKind enumerates the supported field descriptors.
type FieldKind string

const (
	FieldKindNumber  FieldKind = "number"
	FieldKindSelect  FieldKind = "select"
	FieldKindBoolean FieldKind = "boolean"
	FieldKindText    FieldKind = "text"
)

// FieldBase carries the attributes shared by every field kind.
type FieldBase struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Field is implemented by NumberField, SelectField, BooleanField and
// TextField.
type Field interface {
	Base() FieldBase
	Kind() FieldKind
	DefaultValue() config.Value
	isField()
}

// NumberField is a numeric input with optional bounds.
type NumberField struct {
	FieldBase
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Step    float64  `json:"step,omitempty"`
	Suffix  string   `json:"suffix,omitempty"`
	Default float64  `json:"defaultValue"`
}

// Option is a single entry of a SelectField.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SelectField picks one value out of a fixed option set.
type SelectField struct {
	FieldBase
	Options []Option `json:"options"`
	Default string   `json:"defaultValue"`
}

// BooleanField is a two-state toggle with optional display labels.
type BooleanField struct {
	FieldBase
	TrueLabel  string `json:"trueLabel,omitempty"`
	FalseLabel string `json:"falseLabel,omitempty"`
	Default    bool   `json:"defaultValue"`
}

// TextField is a free-form string.
type TextField struct {
	FieldBase
	Placeholder string `json:"placeholder,omitempty"`
	Default     string `json:"defaultValue"`
}

func (f NumberField) Base() FieldBase  { return f.FieldBase }
func (f SelectField) Base() FieldBase  { return f.FieldBase }
func (f BooleanField) Base() FieldBase { return f.FieldBase }
func (f TextField) Base() FieldBase    { return f.FieldBase }

func (NumberField) Kind() FieldKind  { return FieldKindNumber }
func (SelectField) Kind() FieldKind  { return FieldKindSelect }
func (BooleanField) Kind() FieldKind { return FieldKindBoolean }
func (TextField) Kind() FieldKind    { return FieldKindText }

func (f NumberField) DefaultValue() config.Value  { return config.Number(f.Default) }
func (f SelectField) DefaultValue() config.Value  { return config.String(f.Default) }
func (f BooleanField) DefaultValue() config.Value { return config.Bool(f.Default) }
func (f TextField) DefaultValue() config.Value    { return config.String(f.Default) }

func (NumberField) isField()  {}
func (SelectField) isField()  {}
func (BooleanField) isField() {}
func (TextField) isField()    {}

// Check reports ErrOutOfRange when value violates Min or Max.
func (f NumberField) Check(value float64) error {
	if f.Min != nil && value < *f.Min {
		return fmt.Errorf("%w: %s must be >= %s", ErrOutOfRange, f.Key, formatBound(*f.Min))
	}
	if f.Max != nil && value > *f.Max {
		return fmt.Errorf("%w: %s must be <= %s", ErrOutOfRange, f.Key, formatBound(*f.Max))
	}
	return nil
}

// RangeLabel renders the bounds as "[min, max]" with open ends shown as
// empty, or "" when the field is unbounded.
func (f NumberField) RangeLabel() string {
	if f.Min == nil && f.Max == nil {
		return ""
	}
	lower, upper := "", ""
	if f.Min != nil {
		lower = formatBound(*f.Min)
	}
	if f.Max != nil {
		upper = formatBound(*f.Max)
	}
	return "[" + lower + ", " + upper + "]"
}

// Contains reports whether value is one of the option values.
func (f SelectField) Contains(value string) bool {
	return f.IndexOf(value) >= 0
}

// IndexOf returns the position of value among the options, or -1.
func (f SelectField) IndexOf(value string) int {
	for i, opt := range f.Options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}

// LabelFor returns the display label of the given state.
func (f BooleanField) LabelFor(value bool) string {
	if value {
		if f.TrueLabel != "" {
			return f.TrueLabel
		}
		return "true"
	}
	if f.FalseLabel != "" {
		return f.FalseLabel
	}
	return "false"
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Section groups related fields under a title. The title doubles as the key
// of the section's nested config tree.
type Section struct {
	Title  string  `json:"title"`
	Helper string  `json:"helper,omitempty"`
	Fields []Field `json:"fields"`
}

// Device describes one configurable hardware kind.
type Device struct {
	Key      string    `json:"key"`
	RootName string    `json:"rootName"`
	Label    string    `json:"label"`
	Summary  string    `json:"summary,omitempty"`
	Sections []Section `json:"sections"`
}

// Section returns the section with the given title.
func (d Device) Section(title string) (Section, bool) {
	for _, section := range d.Sections {
		if section.Title == title {
			return section, true
		}
	}
	return Section{}, false
}

// Field returns the field declared under section title and key.
func (d Device) Field(title, key string) (Field, bool) {
	section, ok := d.Section(title)
	if !ok {
		return nil, false
	}
	for _, field := range section.Fields {
		if field.Base().Key == key {
			return field, true
		}
	}
	return nil, false
}

// FieldAt resolves a dotted "Section.key" path to its declared field.
func (d Device) FieldAt(path string) (Field, bool) {
	title, key, ok := strings.Cut(path, ".")
	if !ok {
		return nil, false
	}
	return d.Field(strings.TrimSpace(title), strings.TrimSpace(key))
}
