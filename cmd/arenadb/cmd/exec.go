package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tuannm99/arenadb/internal/shell"
	"github.com/tuannm99/arenadb/internal/sql/executor"
)

var execCmd = &cobra.Command{
	Use:   "exec <line>...",
	Short: "Run each argument as one command line against a fresh database",
	Long: `Run each argument as one command line, in order, against a fresh in-memory
database. Stops at the first failing line.

Examples:
  arenadb exec "create User" "insert User 1 alice a@example.com" "select User"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLines(cmd, executor.NewExecutor(newDatabase()), args)
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runLines(cmd *cobra.Command, run shell.Runner, lines []string) error {
	for _, line := range lines {
		res, err := run.ExecLine(line)
		if err != nil {
			return err
		}
		if res.Exit {
			return nil
		}
		shell.Print(cmd.OutOrStdout(), res)
	}
	return nil
}
