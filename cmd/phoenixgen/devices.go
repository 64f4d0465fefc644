package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDevicesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "devices",
		Aliases: []string{"ls"},
		Short:   "List the devices in the catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := root.orchestrator()
			if err != nil {
				return err
			}
			devices := gen.Devices()
			if len(devices) == 0 {
				logInfo("No devices found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tLABEL\tROOT\tSECTIONS")
			for _, device := range devices {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", device.Key, device.Label, device.RootName, len(device.Sections))
			}
			return w.Flush()
		},
	}
}
