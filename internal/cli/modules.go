package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/arith/surface"
)

// NewModulesCommand creates the modules command.
func NewModulesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the modules that can be imported",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := surface.Names()
			if opts.Format != "text" {
				return writeResult(cmd.OutOrStdout(), opts.Format, names)
			}
			for _, name := range names {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
