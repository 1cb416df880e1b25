// Package compile provides the compile command, which turns rating files
// into the printable report.
package compile

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/tryouts"
	"github.com/agentstation/tryouts/internal/appcontext"
	"github.com/agentstation/tryouts/internal/cmd/alerts"
	"github.com/agentstation/tryouts/internal/cmd/output"
	"github.com/agentstation/tryouts/internal/cmd/table"
	"github.com/agentstation/tryouts/internal/inputs"
	"github.com/agentstation/tryouts/pkg/constants"
	"github.com/agentstation/tryouts/pkg/diag"
	"github.com/agentstation/tryouts/pkg/errors"
	"github.com/agentstation/tryouts/pkg/loader"
	"github.com/agentstation/tryouts/pkg/report"
)

// Flags holds the compile command's own flags.
type Flags struct {
	Out         string
	InputFormat string
	Summary     bool
	Diagnostics string
}

// NewCommand creates the compile command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:   "compile <file|glob>...",
		Short: "Compile rating files into one table per grade, gender and eType",
		Long: `Compile reads every matching file in sorted name order and prints one
table per grade, gender and evaluation type.

A file with a newer data-format version discards everything compiled before
it; files with an older version are skipped. Details about skipped files,
sheets and players go to the log (tryouts.log unless --log-output says
otherwise).`,
		Example: `  tryouts compile data/*.csv                  # printable layout when piped
  tryouts compile data/*.csv -o table         # boxed tables on the terminal
  tryouts compile '*.json' -o xlsx --out r.xlsx
  tryouts compile data/* --summary --diagnostics warning`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, flags, args)
		},
	}

	cmd.Flags().StringP("format", "o", "", "output format: text, table, json, yaml, markdown, xlsx (default text, or table on a terminal)")
	cmd.Flags().Int("old-session-threshold", constants.DefaultOldSessionThreshold, "warn about sessions numbered below this; 0 disables")
	cmd.Flags().Bool("no-cache", false, "parse every file even when its content was already seen")
	cmd.Flags().StringVar(&flags.Out, "out", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&flags.InputFormat, "input-format", "", "treat every input as json, yaml, csv or xlsx instead of using extensions")
	cmd.Flags().BoolVar(&flags.Summary, "summary", false, "print run counters to stderr")
	cmd.Flags().StringVar(&flags.Diagnostics, "diagnostics", "", "print diagnostics at or above this severity to stderr (debug, info, warning, error)")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, flags *Flags, args []string) error {
	logger := app.Logger()

	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	if format == "" {
		format = output.DetectFormat("")
	}
	if format.Binary() && flags.Out == "" && alerts.IsTerminal(cmd.OutOrStdout()) {
		return fmt.Errorf("%s output is binary; use --out or redirect stdout", format)
	}

	inputFormat, err := loader.ParseFormat(flags.InputFormat)
	if err != nil {
		return err
	}

	minSeverity := diag.Error + 1
	if flags.Diagnostics != "" {
		if minSeverity, err = diag.ParseSeverity(flags.Diagnostics); err != nil {
			return err
		}
	}

	collector := diag.NewCollector()

	paths, err := inputs.Expand(args, collector)
	if err != nil {
		return err
	}
	files := inputs.Read(paths, inputFormat)

	compiler, err := app.Tryouts(tryouts.WithSink(collector))
	if err != nil {
		return err
	}
	rep, err := compiler.Run(cmd.Context(), files)
	if err != nil {
		return err
	}
	if rep.Empty() {
		logger.Warn().Int("files", len(files)).Msg("no usable data found")
	}

	if err := write(cmd.OutOrStdout(), flags.Out, format, app.LogOutput(), rep); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if alerts.IsTerminal(stderr) && rep.Stats != nil {
		if err := alerts.NewWriter(stderr, false).WriteAlert(alerts.FromStats(*rep.Stats, app.LogOutput())); err != nil {
			return err
		}
	}

	tables := output.NewFormatter(output.FormatTable)
	if flags.Summary && rep.Stats != nil {
		if err := tables.Format(stderr, table.StatsToTableData(*rep.Stats)); err != nil {
			return err
		}
	}
	if minSeverity <= diag.Error {
		data := table.DiagnosticsToTableData(collector.Events(), minSeverity)
		if len(data.Rows) > 0 {
			return tables.Format(stderr, data)
		}
	}
	return nil
}

// write renders the report to path, or to stdout when path is empty.
func write(stdout io.Writer, path string, format output.Format, logFile string, rep *report.Report) (err error) {
	w := stdout
	if path != "" {
		f, cerr := os.Create(path) //nolint:gosec // output path is the operator's own flag
		if cerr != nil {
			return errors.WrapIO("create", path, cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = errors.WrapIO("close", path, cerr)
			}
		}()
		w = f
	}

	formatter := output.NewFormatter(format, output.WithLogFile(logFile))
	if ferr := formatter.Format(w, rep); ferr != nil {
		return errors.WrapIO("write", path, ferr)
	}
	return nil
}
