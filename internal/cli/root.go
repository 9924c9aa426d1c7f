// Package cli implements the sqlrecord command.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/asaidimu/sqlrecord/pkg/version"
)

var rootCmd = newRootCmd()

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
	showLog    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "sqlrecord",
		Short: "Query MySQL and SQLite tables from the command line",
		Long: `sqlrecord runs filtered SELECT queries and raw statements against a
MySQL server or a SQLite file.

Connection settings come from a YAML file (--config) layered with
SQLRECORD_* environment variables. Without a file an in-memory SQLite
database is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to the YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.showLog, "show-log", false, "print the statement log to stderr when done")

	cmd.AddCommand(newSelectCmd(opts))
	cmd.AddCommand(newExecCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("sqlrecord version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
