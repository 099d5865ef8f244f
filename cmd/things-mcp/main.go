// Copyright 2025 Joseph Cumines
//
// MCP server for the Things to-do app - exposes AppleScript and the
// things:/// URL scheme as MCP tools over stdio, SSE or streamable HTTP

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joeycumines/things-mcp/internal/config"
	"github.com/joeycumines/things-mcp/internal/server"
	"github.com/joeycumines/things-mcp/internal/telemetry"
	"github.com/joeycumines/things-mcp/internal/transport"
	"github.com/spf13/cobra"
)

func main() {
	// stdout carries the protocol
	log.SetOutput(os.Stderr)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "things-mcp",
		Short: "MCP server for the Things to-do app",
		Long: "things-mcp exposes the Things to-do app on this Mac as MCP tools, " +
			"reading through AppleScript and writing through AppleScript or the things:/// URL scheme.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Version:      server.Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("config", "", "Path to a YAML config file (overrides THINGS_MCP_CONFIG)")
	cmd.Flags().String("transport", "", "Transport: stdio, sse or http (overrides MCP_TRANSPORT)")
	cmd.Flags().String("http-address", "", "Listen address of the HTTP transports (overrides MCP_HTTP_ADDRESS)")
	cmd.Flags().String("api-key", "", "Bearer token required by the HTTP transports (overrides MCP_API_KEY)")
	cmd.Flags().String("audit-log", "", "Append tool invocation audit records to this file (overrides MCP_AUDIT_LOG_FILE)")
	cmd.Flags().Bool("debug", false, "Log transport errors to stderr (overrides THINGS_MCP_DEBUG)")
	cmd.SetVersionTemplate(fmt.Sprintf("things-mcp version %s\n", server.Version))

	return cmd
}

// loadConfig resolves the configuration: defaults, YAML file, environment,
// then any flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	path := os.Getenv("THINGS_MCP_CONFIG")
	if flags.Changed("config") {
		path, _ = flags.GetString("config")
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if flags.Changed("transport") {
		value, _ := flags.GetString("transport")
		cfg.Transport = config.TransportType(value)
	}
	if flags.Changed("http-address") {
		cfg.HTTPAddress, _ = flags.GetString("http-address")
	}
	if flags.Changed("api-key") {
		cfg.APIKey, _ = flags.GetString("api-key")
	}
	if flags.Changed("audit-log") {
		cfg.AuditLogFile, _ = flags.GetString("audit-log")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// run serves until SIGINT/SIGTERM or a transport failure.
func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			log.Printf("Error flushing telemetry: %v", err)
		}
	}()

	mcpServer, err := server.NewMCPServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer mcpServer.Shutdown()

	opts := transport.OptionsFromConfig(cfg)
	if cfg.Debug {
		opts.ErrorLog = log.New(os.Stderr, "things-mcp: ", log.LstdFlags)
	}

	log.Printf("MCP server starting (transport=%s, app=%s)", cfg.Transport, cfg.AppName)
	if err := transport.Serve(ctx, mcpServer.MCP(), opts); err != nil {
		log.Printf("Server error: %v", err)
		return err
	}
	log.Println("Server shutdown complete")
	return nil
}
