package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	theme "github.com/goliatone/go-theme"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-phoenixgen/internal/errors"
	"github.com/goliatone/go-phoenixgen/internal/logging"
	"github.com/goliatone/go-phoenixgen/internal/tui"
	"github.com/goliatone/go-phoenixgen/pkg/catalog"
	"github.com/goliatone/go-phoenixgen/pkg/orchestrator"
	"github.com/goliatone/go-phoenixgen/pkg/prompt"
)

// Seams replaced by tests.
var (
	stdinIsTerminal = func() bool {
		fd := os.Stdin.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	runPicker       = tui.RunPicker
	newPromptDriver = func() prompt.PromptDriver { return prompt.NewSurveyDriver() }
)

type rootOptions struct {
	verbose    bool
	jsonOutput bool
	catalogDir string
	presetFile string
	themeFiles []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "phoenixgen",
		Short: "Kotlin config snippet generator for Phoenix devices",
		Long: `phoenixgen renders TalonFX and CANcoder settings as Kotlin
object-initializer snippets ready to paste into robot code.

Values start from the device defaults and are overridden, in order, by
presets (--preset), a config file (--config), --set flags and interactive
prompts (--interactive).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(opts.verbose, opts.jsonOutput, cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Output logs in JSON format")
	flags.StringVar(&opts.catalogDir, "catalog", "", "Directory of device definitions replacing the built-in catalog")
	flags.StringVar(&opts.presetFile, "preset", "", "Preset file (json, yaml or toml) applied over device defaults")
	flags.StringArrayVar(&opts.themeFiles, "theme-file", nil, "Theme manifest used by the html renderer (repeatable)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		newRenderCmd(opts),
		newDevicesCmd(opts),
		newRenderersCmd(opts),
		newDefaultsCmd(opts),
	)
	return rootCmd
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)

func (o *rootOptions) orchestrator() (*orchestrator.Orchestrator, error) {
	options := []orchestrator.Option{orchestrator.WithLogger(logging.With("component", "orchestrator"))}

	if o.catalogDir != "" {
		store, err := catalog.LoadFS(os.DirFS(o.catalogDir))
		if err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("load catalog %s", o.catalogDir), err)
		}
		if store.Empty() {
			return nil, errors.ConfigError(fmt.Sprintf("catalog %s has no device definitions", o.catalogDir), nil)
		}
		logging.Debug("catalog loaded", "dir", o.catalogDir, "devices", store.Keys())
		options = append(options, orchestrator.WithCatalog(store))
	}

	if o.presetFile != "" {
		presets, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(o.presetFile)), filepath.Base(o.presetFile))
		if err != nil {
			return nil, errors.ConfigError("load presets", err)
		}
		logging.Debug("presets loaded", "file", o.presetFile, "entries", presets.Keys())
		options = append(options, orchestrator.WithTransformer(presets))
	}

	if len(o.themeFiles) > 0 {
		manifests := make([]*theme.Manifest, 0, len(o.themeFiles))
		for _, path := range o.themeFiles {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, errors.ConfigError("read theme manifest", err)
			}
			manifest, err := orchestrator.LoadManifest(data)
			if err != nil {
				return nil, errors.ConfigError(fmt.Sprintf("parse theme manifest %s", path), err)
			}
			manifests = append(manifests, manifest)
		}
		options = append(options, orchestrator.WithThemeSelector(orchestrator.NewManifestSelector(manifests...)))
	}

	return orchestrator.New(options...), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
