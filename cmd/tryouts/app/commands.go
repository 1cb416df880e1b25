package app

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/agentstation/tryouts/cmd/tryouts/cmd/compile"
	"github.com/agentstation/tryouts/cmd/tryouts/cmd/convert"
	"github.com/agentstation/tryouts/pkg/constants"
	"github.com/agentstation/tryouts/pkg/errors"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(compile.NewCommand(a))
	rootCmd.AddCommand(convert.NewCommand(a))
	rootCmd.AddCommand(a.NewVersionCommand())
	rootCmd.AddCommand(a.NewManCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("tryouts %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}

// NewManCommand creates the man command.
func (a *App) NewManCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "man <dir>",
		Short:  "Generate man pages",
		Hidden: true, // mainly for packaging
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
				return errors.WrapIO("create", dir, err)
			}
			header := &doc.GenManHeader{
				Title:   "TRYOUTS",
				Section: "1",
				Source:  "tryouts " + a.version,
				Manual:  "tryouts Manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, filepath.Clean(dir)); err != nil {
				return errors.WrapIO("write", dir, err)
			}
			return nil
		},
	}
}
