package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/brilir/internal/ast"
	"github.com/roach88/brilir/internal/config"
	"github.com/roach88/brilir/internal/convert"
)

// FeatureOptions holds the flags shared by commands that convert programs.
type FeatureOptions struct {
	Features string // --features list, overrides --config
	Config   string // --config file (.yaml, .yml or .cue)
}

func (o *FeatureOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Features, "features", "", "comma-separated features (position,float,memory,ssa,speculate|all|none)")
	cmd.Flags().StringVar(&o.Config, "config", "", "feature configuration file (.yaml, .yml or .cue)")
}

// resolve builds the feature set: defaults, then --config, then --features
// when it was given explicitly.
func (o *FeatureOptions) resolve(cmd *cobra.Command) (config.Features, error) {
	features := config.Default()
	if o.Config != "" {
		loaded, err := config.Load(o.Config)
		if err != nil {
			return config.Features{}, err
		}
		features = loaded
	}
	if cmd.Flags().Changed("features") {
		parsed, err := config.ParseList(o.Features)
		if err != nil {
			return config.Features{}, err
		}
		features = parsed
	}
	return features, nil
}

// readSource reads a program file, or stdin when path is "-".
func readSource(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// loadProgram reads and decodes a program, mapping failures to CLI error codes.
func loadProgram(cmd *cobra.Command, path string) ([]byte, *ast.Program, *CLIError) {
	data, err := readSource(cmd, path)
	if err != nil {
		code := ErrCodeReadFailed
		if os.IsNotExist(err) {
			code = ErrCodeNotFound
		}
		return nil, nil, &CLIError{Code: code, Message: fmt.Sprintf("failed to read %s: %v", path, err)}
	}
	prog, err := ast.Parse(data)
	if err != nil {
		return data, nil, &CLIError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("failed to decode %s: %v", path, err)}
	}
	return data, prog, nil
}

// conversionError maps a conversion failure to its code and display text.
func conversionError(err error) *CLIError {
	reason, ok := convert.Reason(err)
	if !ok {
		return &CLIError{Code: ErrCodeGeneric, Message: err.Error()}
	}
	return &CLIError{
		Code:    reason.Kind.Code(),
		Message: err.Error(),
		Details: map[string]string{"kind": reason.Kind.String()},
	}
}
