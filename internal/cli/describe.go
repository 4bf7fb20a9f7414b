package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/arith/domain/entities"
	"github.com/reglet-dev/arith/domain/ports"
	"github.com/reglet-dev/arith/infrastructure/parser"
	"github.com/reglet-dev/arith/surface"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the functions the module exports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := surface.Import(opts.Module)
			if err != nil {
				return writeError(cmd, opts.Format, err)
			}
			manifest := m.Manifest()

			var codec ports.ManifestCodec
			switch opts.Format {
			case "json":
				codec = parser.NewJSONManifestCodec()
			case "yaml":
				codec = parser.NewYamlManifestCodec()
			default:
				_, err := fmt.Fprint(cmd.OutOrStdout(), describeText(manifest))
				return err
			}

			data, err := codec.Encode(manifest)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func describeText(manifest *entities.ModuleManifest) string {
	out := "module " + manifest.Name + "\n"
	if manifest.Doc != "" {
		out += "  " + manifest.Doc + "\n"
	}
	for _, fn := range manifest.Functions {
		out += fmt.Sprintf("\n  %s -> %s\n", fn.Signature(), fn.Returns)
		if fn.Doc != "" {
			out += "      " + fn.Doc + "\n"
		}
	}
	return out
}
