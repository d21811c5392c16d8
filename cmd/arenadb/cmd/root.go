package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/tuannm99/arenadb/internal"
	"github.com/tuannm99/arenadb/internal/engine"
	"github.com/tuannm99/arenadb/internal/heap"
	"github.com/tuannm99/arenadb/internal/shell"
	"github.com/tuannm99/arenadb/internal/sql/executor"
)

var (
	v   = internal.NewViper()
	cfg *internal.ArenaConfig
)

// rootCmd runs the interactive shell against an in-memory database.
var rootCmd = &cobra.Command{
	Use:   "arenadb",
	Short: "arenadb - in-memory record store with a command shell",
	Long: `arenadb keeps fixed-shape records (User, Car) in per-table byte arenas.

Commands:
  create <table>
  insert User <id> <username> <email>
  insert Car <id> <brand>
  select <table>
  .tables
  .exit`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		ex := executor.NewExecutor(newDatabase())
		return runShell(cmd, ex)
	},
}

// Execute is called by main.main. SIGINT/SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().Int("capacity", heap.DefaultCapacity, "per-table arena capacity in bytes")
	rootCmd.PersistentFlags().String("history", "", "shell history file")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("config")
	c, err := internal.LoadConfig(v, path)
	if err != nil {
		return err
	}
	cfg = c

	lvl, _ := internal.ParseLogLevel(cfg.Log.Level)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	slog.Debug("config loaded", "app", cfg.AppName, "capacity", cfg.Storage.TableCapacity)
	return nil
}

func newDatabase() *engine.Database {
	return engine.NewDatabase(engine.WithTableCapacity(cfg.Storage.TableCapacity))
}

// runShell drives the read-execute-print loop over readline.
func runShell(cmd *cobra.Command, run shell.Runner) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Shell.Prompt,
		HistoryFile:     cfg.Shell.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	return shell.New(rl, run, rl.Stdout()).Run(cmd.Context())
}

// flagKeys maps flag names to config keys. Flags are bound per run because
// several subcommands define the same flag.
var flagKeys = map[string]string{
	"log-level":    "log.level",
	"history":      "shell.history_file",
	"capacity":     "storage.table_capacity",
	"addr":         "server.addr",
	"metrics-addr": "server.metrics_addr",
}

func bindFlags(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}
