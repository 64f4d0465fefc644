package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRenderersCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "renderers",
		Short: "List the available renderers",
		Long: `Renderers lists every output format with its content type and file
extension. 'render -o' picks the renderer matching the output extension when
--renderer is not given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := root.orchestrator()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCONTENT TYPE\tEXTENSION")
			for _, d := range gen.DescribeRenderers() {
				ext := d.Extension
				if ext == "" {
					ext = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, d.ContentType, ext)
			}
			return w.Flush()
		},
	}
}
