package gotemplate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-phoenixgen/pkg/model"
	"github.com/goliatone/go-phoenixgen/pkg/snippet"
)

// filters are registered on every engine. Field filters take the field map
// the preview renderer builds: kind, value, min, max, options, trueLabel and
// falseLabel.
var filters = map[string]any{
	"identifier":  pongo2.FilterFunction(filterIdentifier),
	"slug":        pongo2.FilterFunction(filterSlug),
	"display":     pongo2.FilterFunction(filterDisplay),
	"range_label": pongo2.FilterFunction(filterRangeLabel),
}

// filterIdentifier renders a section title the way it appears in the
// snippet ("Ramps Limits" -> "RampsLimits").
func filterIdentifier(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(snippet.FormatIdentifier(in.String())), nil
}

// filterSlug lower-cases and hyphenates text for use in HTML ids.
func filterSlug(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(in.String()) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return pongo2.AsValue(b.String()), nil
}

// filterDisplay renders a field's current value for people: select values
// show their option label, booleans their state label.
func filterDisplay(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	field, ok := in.Interface().(map[string]any)
	if !ok {
		return pongo2.AsValue(""), nil
	}
	switch value := field["value"].(type) {
	case float64:
		return pongo2.AsValue(strconv.FormatFloat(value, 'f', -1, 64)), nil
	case bool:
		labels := model.BooleanField{
			TrueLabel:  stringOf(field["trueLabel"]),
			FalseLabel: stringOf(field["falseLabel"]),
		}
		return pongo2.AsValue(labels.LabelFor(value)), nil
	case string:
		if model.FieldKind(stringOf(field["kind"])) == model.FieldKindSelect {
			options := optionsOf(field["options"])
			if i := (model.SelectField{Options: options}).IndexOf(value); i >= 0 {
				return pongo2.AsValue(options[i].Label), nil
			}
		}
		return pongo2.AsValue(value), nil
	default:
		return pongo2.AsValue(""), nil
	}
}

// filterRangeLabel renders the "[min, max]" bounds of a number field.
func filterRangeLabel(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	field, ok := in.Interface().(map[string]any)
	if !ok {
		return pongo2.AsValue(""), nil
	}
	bounds := model.NumberField{Min: floatOf(field["min"]), Max: floatOf(field["max"])}
	return pongo2.AsValue(bounds.RangeLabel()), nil
}

func stringOf(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func floatOf(raw any) *float64 {
	switch v := raw.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	default:
		return nil
	}
}

func optionsOf(raw any) []model.Option {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]model.Option, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, model.Option{Label: stringOf(entry["label"]), Value: stringOf(entry["value"])})
	}
	return out
}
