package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-phoenixgen/internal/errors"
	"github.com/goliatone/go-phoenixgen/internal/logging"
	"github.com/goliatone/go-phoenixgen/internal/tui"
	"github.com/goliatone/go-phoenixgen/pkg/config"
	"github.com/goliatone/go-phoenixgen/pkg/model"
	"github.com/goliatone/go-phoenixgen/pkg/orchestrator"
	"github.com/goliatone/go-phoenixgen/pkg/prompt"
	"github.com/goliatone/go-phoenixgen/pkg/snippet"
)

var writeClipboard = clipboard.WriteAll

type renderOptions struct {
	device        string
	configFile    string
	sets          []string
	rootName      string
	renderer      string
	output        string
	interactive   bool
	copy          bool
	themeName     string
	themeVariant  string
	quotedStrings bool
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a device configuration",
		Long: `Render merges the device defaults with the given overrides and prints the
result with the selected renderer (kotlin by default, or html for a preview
page).

Without --device, an interactive picker opens when stdin is a terminal:
  Enter  - Render the selected device
  e      - Edit the selected device with prompts
  q/Esc  - Quit`,
		Example: `  phoenixgen render -d motor
  phoenixgen render -d motor --set "Ramps & Limits.supplyCurrentLimit=60"
  phoenixgen render -d cancoder -c cancoder.yaml --copy
  phoenixgen render -d motor -i --renderer html -o motor.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.device, "device", "d", "", "Device key (see 'phoenixgen devices')")
	flags.StringVarP(&opts.configFile, "config", "c", "", "Config file (json, yaml or toml) merged over the defaults")
	flags.StringArrayVar(&opts.sets, "set", nil, "Override a value as section.key=value (repeatable)")
	flags.StringVar(&opts.rootName, "root", "", "Root configuration type (defaults to the device root)")
	flags.StringVar(&opts.renderer, "renderer", "", "Renderer name (see 'phoenixgen renderers'; inferred from --output)")
	flags.StringVarP(&opts.output, "output", "o", "", "Write output to a file instead of stdout")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for every field before rendering")
	flags.BoolVar(&opts.copy, "copy", false, "Copy the output to the clipboard")
	flags.StringVar(&opts.themeName, "theme", "", "Theme name for the html renderer")
	flags.StringVar(&opts.themeVariant, "variant", "", "Theme variant for the html renderer")
	flags.BoolVar(&opts.quotedStrings, "quoted-strings", false, "Render strings that are not identifiers as Kotlin string literals")

	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts *renderOptions) error {
	ctx := commandContext(cmd)

	gen, err := root.orchestrator()
	if err != nil {
		return err
	}

	key, interactive := opts.device, opts.interactive
	if key == "" {
		picked, ok, err := pickDevice(cmd, gen)
		if err != nil || !ok {
			return err
		}
		key = picked.Device.Key
		interactive = interactive || picked.Action == tui.ActionEdit
	}
	device, err := gen.Device(key)
	if err != nil {
		return errors.DeviceNotFound(key, err)
	}

	overrides, err := loadOverrides(device, opts.configFile, opts.sets)
	if err != nil {
		return err
	}

	if interactive {
		overrides, err = collect(ctx, gen, key, overrides)
		if err != nil {
			return err
		}
	}

	rendererName := opts.renderer
	if rendererName == "" && opts.output != "" {
		if name, ok := gen.RendererForFile(opts.output); ok {
			rendererName = name
		}
	}

	req := orchestrator.Request{
		DeviceKey:    key,
		Overrides:    overrides,
		Renderer:     rendererName,
		RootName:     opts.rootName,
		ThemeName:    opts.themeName,
		ThemeVariant: opts.themeVariant,
	}
	if opts.quotedStrings {
		req.StringMode = snippet.StringModeQuoted
	}

	logging.Debug("rendering", "device", key, "renderer", rendererName, "interactive", interactive)
	out, err := gen.Generate(ctx, req)
	if err != nil {
		if classified := errors.Classify(err); errors.GetExitCode(classified) != errors.ExitGeneralError {
			return classified
		}
		return errors.RenderError("render failed", err)
	}

	return writeOutput(cmd, opts, key, out)
}

func pickDevice(cmd *cobra.Command, gen *orchestrator.Orchestrator) (tui.PickerResult, bool, error) {
	devices := gen.Devices()
	if !stdinIsTerminal() {
		fmt.Fprint(cmd.ErrOrStderr(), tui.SimplePicker(devices))
		return tui.PickerResult{}, false, errors.ValidationError("--device is required when stdin is not a terminal")
	}

	logging.Debug("picker mode started", "devices", len(devices))
	result, err := runPicker(devices)
	if err != nil {
		return tui.PickerResult{}, false, fmt.Errorf("picker error: %w", err)
	}
	logging.Debug("picker result", "action", result.Action, "device", result.Device.Key)

	switch result.Action {
	case tui.ActionRender, tui.ActionEdit:
		return result, true, nil
	default:
		return tui.PickerResult{}, false, nil
	}
}

func collect(ctx context.Context, gen *orchestrator.Orchestrator, key string, overrides *config.Tree) (*config.Tree, error) {
	device, err := gen.Device(key)
	if err != nil {
		return nil, errors.DeviceNotFound(key, err)
	}
	seed, err := gen.Config(ctx, key, overrides)
	if err != nil {
		return nil, errors.Classify(err)
	}

	collector := prompt.NewCollector(newPromptDriver())
	collected, err := collector.Collect(ctx, device, seed)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return nil, errors.Aborted(err)
		}
		return nil, fmt.Errorf("collect %s: %w", key, err)
	}
	return collected, nil
}

// loadOverrides reads the optional config file and applies --set entries on
// top, in flag order. Values for declared fields parse by the field kind.
func loadOverrides(device model.Device, path string, sets []string) (*config.Tree, error) {
	overrides := config.NewTree()
	if path != "" {
		format, err := config.FormatFromPath(path)
		if err != nil {
			return nil, errors.ConfigError("config file", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.ConfigError("read config file", err)
		}
		overrides, err = config.Decode(data, format)
		if err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("parse %s", path), err)
		}
	}

	for _, entry := range sets {
		path, raw, ok := strings.Cut(entry, "=")
		path = strings.TrimSpace(path)
		if !ok || path == "" {
			return nil, errors.ValidationError(fmt.Sprintf("invalid --set %q: expected section.key=value", entry))
		}
		value := config.ParseScalar(raw)
		if field, ok := device.FieldAt(path); ok {
			value = model.ParseValue(field, raw)
		}
		if err := overrides.SetPath(path, value); err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("apply --set %q", entry), err)
		}
	}
	return overrides, nil
}

func writeOutput(cmd *cobra.Command, opts *renderOptions, key string, out []byte) error {
	if opts.output != "" {
		if err := os.WriteFile(opts.output, out, 0o644); err != nil {
			return errors.Wrap(errors.ExitGeneralError, "write output", err)
		}
		logSuccess("%s written to %s", key, opts.output)
	} else if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return errors.Wrap(errors.ExitGeneralError, "write output", err)
	}

	if opts.copy {
		if err := writeClipboard(string(out)); err != nil {
			logWarning("Could not copy to clipboard: %v", err)
			return nil
		}
		logInfo("Copied %s output to clipboard", key)
	}
	return nil
}
