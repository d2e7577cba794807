package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-island/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the island SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own island with a scenario menu. Runs are
stored per-server (all users share the same scoreboard) and every user
has their own quick-save slot.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dino-island/host_key

Examples:
  island serve                           # Listen on :23234 with auto-generated key
  island serve --ssh :2222               # Listen on port 2222
  island serve --host-key ./my_host_key  # Use specific host key
  island serve --db ./island.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	base, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := preset()
	if err != nil {
		return err
	}
	logger, closeLg, err := newLogger("island-ssh", false)
	if err != nil {
		return err
	}
	defer closeLg()

	fps := flagFPS
	if !cmd.Flags().Changed("fps") {
		// Remote terminals do not need the local default.
		fps = 30
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Island:      base,
		Preset:      p,
		FrameHz:     fps,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting island SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
