// Package cli implements the arith command-line host: it imports a module
// by name and calls its functions with arguments taken from the command
// line.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	arithlog "github.com/reglet-dev/arith/log"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Logger   *slog.Logger
	Module   string
	Format   string // "text" | "json" | "yaml"
	LogLevel string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the arith CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "arith",
		Short: "Call the functions of a native module",
		Long: `arith is a command-line host for native modules. It imports a module
by name and calls its functions the way a scripting host would.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level, err := arithlog.ParseLevel(opts.LogLevel)
			if err != nil {
				return err
			}
			opts.Logger = arithlog.NewLogger(cmd.ErrOrStderr(),
				arithlog.WithLevel(level),
				arithlog.WithJSON(opts.Format == "json"),
			)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Module, "module", "arith", "name of the module to import")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewCallCommand(opts))
	cmd.AddCommand(NewDescribeCommand(opts))
	cmd.AddCommand(NewModulesCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// logger returns the configured logger, or a discarding one when the
// pre-run hook has not run (commands executed directly in tests).
func (o *RootOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
