package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-phoenixgen/internal/errors"
	"github.com/goliatone/go-phoenixgen/pkg/config"
)

func newDefaultsCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "defaults <device>",
		Short: "Print a device's default configuration",
		Long: `Defaults prints the configuration a render starts from: the device defaults
with any --preset entries applied. The output can be edited and passed back
with 'phoenixgen render --config'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := root.orchestrator()
			if err != nil {
				return err
			}
			key := args[0]
			if _, err := gen.Device(key); err != nil {
				return errors.DeviceNotFound(key, err)
			}

			cfg, err := gen.Config(commandContext(cmd), key, nil)
			if err != nil {
				return errors.Classify(err)
			}

			data, err := encodeTree(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml or json)")
	return cmd
}

func encodeTree(tree *config.Tree, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		data, err := yaml.Marshal(tree)
		if err != nil {
			return nil, errors.ConfigError("encode yaml", err)
		}
		return data, nil
	case "json":
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return nil, errors.ConfigError("encode json", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.ValidationError(fmt.Sprintf("unsupported format %q (use yaml or json)", format))
	}
}
