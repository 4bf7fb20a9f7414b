package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/arith"
	"github.com/reglet-dev/arith/host"
	"github.com/reglet-dev/arith/surface"
)

// CallOptions holds flags for the call command.
type CallOptions struct {
	*RootOptions
	Kwargs []string
	Wasm   string
}

// NewCallCommand creates the call command.
func NewCallCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CallOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "call <function> [args...]",
		Short: "Call a function of the module",
		Long: `Call a function of the module.

Each argument is read as a JSON value, so 5 is an integer, 2.5 a float and
"5" (quoted for the shell) a string. Anything that is not JSON is passed
as a string. Put "--" before the arguments when one is negative.

Examples:
  arith call add 5 7
  arith call add 18446744073709551615 1
  arith call sum_as_string -- 2.5 3
  arith call sum_as_string --kw a=2.5 --kw b=3
  arith call --wasm arith.wasm add 5 7

With --wasm the arguments are bound and converted on the host, then the
function runs in the given WebAssembly guest build.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, opts, args[0], args[1:])
		},
	}

	cmd.Flags().StringArrayVar(&opts.Kwargs, "kw", nil, "keyword argument as name=value (repeatable)")
	cmd.Flags().StringVar(&opts.Wasm, "wasm", "", "run the function in this WebAssembly guest build of the arith module")

	return cmd
}

func runCall(cmd *cobra.Command, opts *CallOptions, function string, rawArgs []string) error {
	ctx := cmd.Context()
	logger := opts.logger()

	var m *surface.Module
	if opts.Wasm != "" {
		if opts.Module != arith.ModuleName {
			return fmt.Errorf("--wasm runs the %s module; it cannot be combined with --module %s", arith.ModuleName, opts.Module)
		}
		guestModule, closeGuest, err := loadGuestModule(ctx, opts.Wasm, logger)
		if err != nil {
			return err
		}
		defer closeGuest()
		m = guestModule
	} else {
		imported, err := surface.Import(opts.Module)
		if err != nil {
			return writeError(cmd, opts.Format, err)
		}
		m = imported
	}

	args := make([]any, len(rawArgs))
	for i, raw := range rawArgs {
		args[i] = parseValue(raw)
	}

	kwargs, err := parseKwargs(opts.Kwargs)
	if err != nil {
		return err
	}

	logger.DebugContext(ctx, "calling function",
		"module", m.Name(), "function", function, "args", len(args), "kwargs", len(kwargs))

	result, err := m.CallKw(ctx, function, args, kwargs)
	if err != nil {
		logger.WarnContext(ctx, "call failed", "module", m.Name(), "function", function, "error", err)
		return writeError(cmd, opts.Format, err)
	}

	return writeResult(cmd.OutOrStdout(), opts.Format, result)
}

// parseValue decodes a command-line argument as JSON, keeping numbers
// exact as json.Number. Text that is not a single JSON value is returned
// unchanged as a string.
func parseValue(raw string) any {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return raw
	}
	if dec.More() {
		return raw
	}
	return v
}

// parseKwargs splits name=value pairs and decodes each value.
func parseKwargs(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	kwargs := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --kw %q: expected name=value", pair)
		}
		if _, dup := kwargs[name]; dup {
			return nil, fmt.Errorf("invalid --kw %q: %s given twice", pair, name)
		}
		kwargs[name] = parseValue(value)
	}
	return kwargs, nil
}

// loadGuestModule builds an arith module backed by the guest build at path.
// The returned func releases the WebAssembly runtime.
func loadGuestModule(ctx context.Context, path string, logger *slog.Logger) (*surface.Module, func(), error) {
	wasmBytes, err := os.ReadFile(path) //nolint:gosec // G304: path is supplied by the user
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read guest: %w", err)
	}

	executor, err := host.NewExecutor(ctx, host.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := executor.Close(ctx); err != nil {
			logger.WarnContext(ctx, "failed to close runtime", "error", err)
		}
	}

	guest, err := executor.LoadGuest(ctx, wasmBytes)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	m, err := arith.NewModuleWithBackend(guest, surface.WithMiddleware(surface.LoggingMiddleware(logger)))
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	logger.DebugContext(ctx, "loaded guest", "path", path)
	return m, closeFn, nil
}
