package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappish/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the flappish SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session starting at the start screen.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.flappish/host_key

Examples:
  flappish serve                           # Listen on :23234 with auto-generated key
  flappish serve --ssh :2222               # Listen on port 2222
  flappish serve --host-key ./my_host_key  # Use specific host key
  flappish serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Logger:      logger.WithPrefix("flappish-ssh"),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		logger.Fatal("cannot create server", "error", err)
	}

	logger.Info("connect with ssh", "address", cfg.Address)
	if err := server.ListenAndServe(cmd.Context()); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}
