package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *app) manifestCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Validate the routing document and print the routes manifest",
		Long: `Build the routes manifest from the routing document and write it as JSON.
The output is deterministic: the same document always yields the same bytes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.loadManifest()
			if err != nil {
				return err
			}

			if out == "" {
				return m.Encode(cmd.OutOrStdout())
			}

			var buf bytes.Buffer
			if err := m.Encode(&buf); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "manifest written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the manifest to a file instead of stdout")
	return cmd
}
