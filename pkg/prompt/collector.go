package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-phoenixgen/pkg/config"
	"github.com/goliatone/go-phoenixgen/pkg/model"
)

// Collector prompts for every field of a device.
type Collector struct {
	driver PromptDriver
}

// NewCollector wraps driver. A nil driver falls back to a SurveyDriver.
func NewCollector(driver PromptDriver) *Collector {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Collector{driver: driver}
}

// Collect returns a new tree holding the device defaults overlaid with seed
// and then with the answers. The current value of each field is offered as
// the prompt default. Keys in seed that the device does not declare are kept.
func (c *Collector) Collect(ctx context.Context, device model.Device, seed *config.Tree) (*config.Tree, error) {
	if ctx == nil {
		return nil, errors.New("prompt: context is required")
	}
	result := model.DefaultConfig(device).Merge(seed)

	for _, section := range device.Sections {
		header := section.Title
		if section.Helper != "" {
			header += ": " + section.Helper
		}
		if err := c.driver.Info(ctx, header); err != nil {
			return nil, err
		}

		target := result.Section(section.Title)
		for _, field := range section.Fields {
			current := model.ValueFor(result, section, field)
			value, err := c.promptField(ctx, field, current)
			if err != nil {
				return nil, err
			}
			target.Set(field.Base().Key, value)
		}
	}
	return result, nil
}

func (c *Collector) promptField(ctx context.Context, field model.Field, current config.Value) (config.Value, error) {
	switch f := field.(type) {
	case model.NumberField:
		return c.promptNumber(ctx, f, current)
	case model.SelectField:
		return c.promptSelect(ctx, f, current)
	case model.BooleanField:
		return c.promptBoolean(ctx, f, current)
	case model.TextField:
		return c.promptText(ctx, f, current)
	default:
		return nil, fmt.Errorf("prompt: unsupported field %T", field)
	}
}

func (c *Collector) promptNumber(ctx context.Context, field model.NumberField, current config.Value) (config.Value, error) {
	defaultStr := ""
	if n, ok := current.(config.Number); ok {
		defaultStr = strconv.FormatFloat(float64(n), 'f', -1, 64)
	}

	for {
		input, err := c.driver.Input(ctx, InputConfig{
			Message: numberLabel(field),
			Default: defaultStr,
			Help:    field.Description,
		})
		if err != nil {
			return nil, err
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" && defaultStr != "" {
			return current, nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			_ = c.driver.Info(ctx, fmt.Sprintf("Invalid %s: %q is not a number", field.Key, input))
			continue
		}
		if err := field.Check(parsed); err != nil {
			_ = c.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", field.Key, err))
			continue
		}
		value, err := config.FromAny(parsed)
		if err != nil {
			_ = c.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", field.Key, err))
			continue
		}
		return value, nil
	}
}

func (c *Collector) promptSelect(ctx context.Context, field model.SelectField, current config.Value) (config.Value, error) {
	labels := make([]string, 0, len(field.Options))
	for _, opt := range field.Options {
		labels = append(labels, opt.Label)
	}
	defaultIdx := -1
	if s, ok := current.(config.String); ok {
		defaultIdx = field.IndexOf(string(s))
	}

	for {
		idx, err := c.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         field.Description,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Options) {
			_ = c.driver.Info(ctx, fmt.Sprintf("Invalid %s selection", field.Key))
			continue
		}
		return config.String(field.Options[idx].Value), nil
	}
}

func (c *Collector) promptBoolean(ctx context.Context, field model.BooleanField, current config.Value) (config.Value, error) {
	def, _ := current.(config.Bool)
	message := field.Label
	if field.TrueLabel != "" {
		message += " (" + field.TrueLabel + ")"
	}
	resp, err := c.driver.Confirm(ctx, ConfirmConfig{
		Message: message,
		Default: bool(def),
		Help:    field.Description,
	})
	if err != nil {
		return nil, err
	}
	return config.Bool(resp), nil
}

func (c *Collector) promptText(ctx context.Context, field model.TextField, current config.Value) (config.Value, error) {
	def, _ := current.(config.String)
	resp, err := c.driver.Input(ctx, InputConfig{
		Message: field.Label,
		Default: string(def),
		Help:    field.Description,
	})
	if err != nil {
		return nil, err
	}
	return config.String(resp), nil
}

func numberLabel(field model.NumberField) string {
	label := field.Label
	if r := field.RangeLabel(); r != "" {
		label += " " + r
	}
	if field.Suffix != "" {
		label += " (" + field.Suffix + ")"
	}
	return label
}
