package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys binds flags to config keys. Flags only exist on the commands
// that define them; unbound keys keep their file, env or default value.
var flagKeys = map[string]string{
	"format":                keyFormat,
	"log-level":             keyLogLevel,
	"log-output":            keyLogOutput,
	"old-session-threshold": keyOldSessionThreshold,
	"no-cache":              keyNoCache,
}

// Execute runs the tryouts CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tryouts",
		Short:   "Compile evaluation-day ratings into printable tables",
		Version: a.version,
		Long: `Tryouts compiles the rating sheets recorded at evaluation sessions into
one table per grade, gender and evaluation type, with a column per station
and category and a row per player.

Files may be canonical JSON or YAML records, or tabular CSV and Excel sheets.
Problems with a file, sheet or player are logged and skipped, so every run
produces a report from whatever data was usable.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Add global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.tryouts.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().String("log-output", a.config.LogOutput, "log destination: a file, stderr, stdout or discard")

	rootCmd.SetVersionTemplate("tryouts {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reads an explicit
// config file, binds the command's flags over the config and rebuilds the
// logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if path := mustGetString(cmd, "config"); path != "" {
		if err := readConfigFile(path); err != nil {
			return err
		}
	}

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	if err := a.config.load(viper.GetViper()); err != nil {
		return err
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
	)

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
