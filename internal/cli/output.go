package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	domainerrors "github.com/reglet-dev/arith/domain/errors"
)

// writeResult prints a call result in the requested format.
func writeResult(w io.Writer, format string, result any) error {
	switch format {
	case "json":
		return json.NewEncoder(w).Encode(map[string]any{"result": result})
	case "yaml":
		data, err := yaml.Marshal(map[string]any{"result": result})
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		_, err := fmt.Fprintln(w, result)
		return err
	}
}

// writeError prints a structured error for the machine-readable formats
// and returns err so the command exits non-zero.
func writeError(cmd *cobra.Command, format string, err error) error {
	detail := domainerrors.ToErrorDetail(err)
	w := cmd.OutOrStdout()

	switch format {
	case "json":
		if encErr := json.NewEncoder(w).Encode(map[string]any{"error": detail}); encErr != nil {
			return fmt.Errorf("%w (failed to encode error: %v)", err, encErr)
		}
	case "yaml":
		data, encErr := yaml.Marshal(map[string]any{"error": detail})
		if encErr != nil {
			return fmt.Errorf("%w (failed to encode error: %v)", err, encErr)
		}
		_, _ = w.Write(data)
	}
	return err
}
