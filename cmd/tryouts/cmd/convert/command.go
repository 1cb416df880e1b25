// Package convert provides the convert command, which prints the canonical
// record of any supported input file.
package convert

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/tryouts/internal/cmd/output"
	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/errors"
	"github.com/agentstation/tryouts/pkg/loader"
)

// AppContext defines what the convert command needs from the app.
type AppContext interface {
	Logger() *zerolog.Logger
}

// NewCommand creates the convert command.
func NewCommand(app AppContext) *cobra.Command {
	var to, inputFormat string

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Print the canonical record of a rating file",
		Long: `Convert loads one file in any supported format and prints the canonical
record it decodes to. Tabular sheets come out exactly as the compiler sees
them, which helps when a sheet does not compile the way it should.`,
		Example: `  tryouts convert eval.csv              # YAML
  tryouts convert eval.xlsx --to json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseTarget(to)
			if err != nil {
				return err
			}
			inFmt, err := loader.ParseFormat(inputFormat)
			if err != nil {
				return err
			}

			path := args[0]
			content, err := os.ReadFile(path) //nolint:gosec // path is the operator's own argument
			if err != nil {
				return errors.WrapIO("read", path, err)
			}
			if inFmt == loader.FormatUnknown {
				inFmt = loader.DetectFormat(path)
			}

			l := loader.New(
				loader.WithCache(false),
				loader.WithSink(diag.NewLoggerSink(app.Logger())),
			)
			rec, err := l.Load(cmd.Context(), loader.Input{Name: path, Content: content, Format: inFmt})
			if err != nil {
				return err
			}

			return output.NewFormatter(format).Format(cmd.OutOrStdout(), rec)
		},
	}

	cmd.Flags().StringVar(&to, "to", "yaml", "canonical encoding: json or yaml")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "treat the input as json, yaml, csv or xlsx instead of using its extension")

	return cmd
}

func parseTarget(s string) (output.Format, error) {
	switch f := output.Format(strings.ToLower(s)); f {
	case output.FormatJSON, output.FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid target %q: must be json or yaml", s)
	}
}
