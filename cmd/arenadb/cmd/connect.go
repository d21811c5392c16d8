package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tuannm99/arenadb/sqlclient"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Run the shell against a remote arenadb server",
	Long: `Open the interactive shell on a connection to "arenadb serve".
".exit" closes this connection only; the server keeps its data.

Examples:
  arenadb connect
  arenadb connect --addr 10.0.0.5:8866 --timeout 5s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")

		cli, err := sqlclient.Connect(cmd.Context(), sqlclient.Config{
			Addr:        cfg.Server.Addr,
			DialTimeout: timeout,
			RWTimeout:   timeout,
		})
		if err != nil {
			return err
		}
		defer func() { _ = cli.Close() }()

		cmd.Printf("connected to %s\n", cfg.Server.Addr)
		return runShell(cmd, cli)
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)

	connectCmd.Flags().String("addr", "127.0.0.1:8866", "server address")
	connectCmd.Flags().Duration("timeout", 3*time.Second, "dial and per-request timeout")
}
