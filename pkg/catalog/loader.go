package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-phoenixgen/pkg/model"
)

// Store holds device definitions keyed by device key.
type Store struct {
	devices map[string]model.Device
}

// LoadFS walks the provided filesystem and parses JSON/YAML device files, one
// device per file. When fsys is nil or holds no device files the returned
// store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{devices: make(map[string]model.Device)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDeviceFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}

		raw, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		device, err := normaliseDevice(raw, path)
		if err != nil {
			return err
		}
		if _, exists := store.devices[device.Key]; exists {
			return fmt.Errorf("catalog: duplicate device %q (file %s)", device.Key, path)
		}
		store.devices[device.Key] = device
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Device returns the definition registered under key.
func (s *Store) Device(key string) (model.Device, bool) {
	if s == nil {
		return model.Device{}, false
	}
	device, ok := s.devices[strings.TrimSpace(key)]
	return device, ok
}

// Keys returns the registered device keys in sorted order.
func (s *Store) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.devices))
	for key := range s.devices {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Devices returns every definition sorted by key.
func (s *Store) Devices() []model.Device {
	keys := s.Keys()
	out := make([]model.Device, 0, len(keys))
	for _, key := range keys {
		out = append(out, s.devices[key])
	}
	return out
}

// Empty reports whether the store holds any devices.
func (s *Store) Empty() bool {
	return s == nil || len(s.devices) == 0
}

type deviceFile struct {
	Key      string        `json:"key" yaml:"key"`
	Label    string        `json:"label" yaml:"label"`
	RootName string        `json:"rootName" yaml:"rootName"`
	Summary  string        `json:"summary" yaml:"summary"`
	Sections []sectionFile `json:"sections" yaml:"sections"`
}

type sectionFile struct {
	Title  string      `json:"title" yaml:"title"`
	Helper string      `json:"helper" yaml:"helper"`
	Fields []fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	Type         string         `json:"type" yaml:"type"`
	Key          string         `json:"key" yaml:"key"`
	Label        string         `json:"label" yaml:"label"`
	Description  string         `json:"description" yaml:"description"`
	Min          *float64       `json:"min" yaml:"min"`
	Max          *float64       `json:"max" yaml:"max"`
	Step         float64        `json:"step" yaml:"step"`
	Suffix       string         `json:"suffix" yaml:"suffix"`
	Options      []model.Option `json:"options" yaml:"options"`
	TrueLabel    string         `json:"trueLabel" yaml:"trueLabel"`
	FalseLabel   string         `json:"falseLabel" yaml:"falseLabel"`
	Placeholder  string         `json:"placeholder" yaml:"placeholder"`
	DefaultValue any            `json:"defaultValue" yaml:"defaultValue"`
}

func parseDocument(data []byte, source string) (deviceFile, error) {
	var doc deviceFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return deviceFile{}, fmt.Errorf("catalog: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = deviceFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return deviceFile{}, fmt.Errorf("catalog: parse %s: invalid JSON or YAML", source)
}

func normaliseDevice(raw deviceFile, source string) (model.Device, error) {
	device := model.Device{
		Key:      strings.TrimSpace(raw.Key),
		Label:    strings.TrimSpace(raw.Label),
		RootName: strings.TrimSpace(raw.RootName),
		Summary:  sanitizeText(raw.Summary),
		Sections: make([]model.Section, 0, len(raw.Sections)),
	}
	if device.Label == "" {
		device.Label = device.Key
	}

	for _, rawSection := range raw.Sections {
		section := model.Section{
			Title:  strings.TrimSpace(rawSection.Title),
			Helper: sanitizeText(rawSection.Helper),
			Fields: make([]model.Field, 0, len(rawSection.Fields)),
		}
		for _, rawField := range rawSection.Fields {
			field, err := normaliseField(rawField)
			if err != nil {
				return model.Device{}, fmt.Errorf("catalog: file %s section %q: %w", source, section.Title, err)
			}
			section.Fields = append(section.Fields, field)
		}
		device.Sections = append(device.Sections, section)
	}

	if err := device.Validate(); err != nil {
		return model.Device{}, fmt.Errorf("catalog: file %s: %w", source, err)
	}
	return device, nil
}

func normaliseField(raw fieldFile) (model.Field, error) {
	base := model.FieldBase{
		Key:         strings.TrimSpace(raw.Key),
		Label:       strings.TrimSpace(raw.Label),
		Description: sanitizeText(raw.Description),
	}
	if base.Label == "" {
		base.Label = base.Key
	}

	switch model.FieldKind(strings.ToLower(strings.TrimSpace(raw.Type))) {
	case model.FieldKindNumber:
		def, err := numberDefault(raw.DefaultValue)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", base.Key, err)
		}
		return model.NumberField{
			FieldBase: base,
			Min:       raw.Min,
			Max:       raw.Max,
			Step:      raw.Step,
			Suffix:    strings.TrimSpace(raw.Suffix),
			Default:   def,
		}, nil
	case model.FieldKindSelect:
		def, err := stringDefault(raw.DefaultValue)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", base.Key, err)
		}
		return model.SelectField{
			FieldBase: base,
			Options:   normaliseOptions(raw.Options),
			Default:   def,
		}, nil
	case model.FieldKindBoolean:
		def, ok := raw.DefaultValue.(bool)
		if raw.DefaultValue != nil && !ok {
			return nil, fmt.Errorf("field %q: boolean default must be true or false", base.Key)
		}
		return model.BooleanField{
			FieldBase:  base,
			TrueLabel:  strings.TrimSpace(raw.TrueLabel),
			FalseLabel: strings.TrimSpace(raw.FalseLabel),
			Default:    def,
		}, nil
	case model.FieldKindText:
		def, err := stringDefault(raw.DefaultValue)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", base.Key, err)
		}
		return model.TextField{
			FieldBase:   base,
			Placeholder: strings.TrimSpace(raw.Placeholder),
			Default:     def,
		}, nil
	default:
		return nil, fmt.Errorf("field %q: unknown type %q", base.Key, raw.Type)
	}
}

func normaliseOptions(raw []model.Option) []model.Option {
	out := make([]model.Option, 0, len(raw))
	for _, opt := range raw {
		if opt.Label == "" {
			opt.Label = opt.Value
		}
		out = append(out, opt)
	}
	return out
}

func numberDefault(raw any) (float64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("number default has type %T", raw)
	}
}

func stringDefault(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("string default has type %T", raw)
	}
}

func isDeviceFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
