package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/patchwork-oss/ldapd/internal/directory"
	"github.com/patchwork-oss/ldapd/internal/ldapproto"
	"github.com/patchwork-oss/ldapd/internal/schema"
	"github.com/patchwork-oss/ldapd/internal/server"
	"github.com/patchwork-oss/ldapd/pkg/config"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ldapd",
	Short: "ldapd - an in-memory LDAP v3 directory server",
	Long:  "A minimal LDAP v3 directory server backed by an in-memory entry tree",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the LDAP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ldapd version %s (commit: %s)\n", version, commit)
	},
}

func runServer() error {
	cfg := config.Load()
	initLogging(cfg.Logging.Level, cfg.Logging.Format)
	cfg.Print()

	repo := directory.NewRepository(directory.Int64Space)
	directory.Seed(repo)

	schemaSvc := schema.NewService(schema.Bootstrap())
	entrySvc := directory.NewService[directory.Int64ID](repo, schemaSvc)
	controller := ldapproto.NewController[directory.Int64ID](entrySvc)

	srv := server.NewServer[directory.Int64ID](cfg, controller)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	slog.Info("ldapd is running", "address", fmt.Sprintf("%s:%d", cfg.Server.BindAddress, cfg.Server.Port))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down server")
	srv.Stop()

	return nil
}

func initLogging(level, format string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	switch level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
