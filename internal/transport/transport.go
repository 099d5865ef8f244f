// Copyright 2025 Joseph Cumines

// Package transport serves an MCP server over stdio, SSE or streamable
// HTTP. Message framing is handled by github.com/mark3labs/mcp-go; this
// package selects the transport, hosts the HTTP variants and ties their
// lifetime to a context.
package transport

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"time"

	"github.com/joeycumines/things-mcp/internal/config"
	"github.com/mark3labs/mcp-go/server"
)

// Options configures Serve.
//
//lint:ignore BETTERALIGN struct is intentionally ordered for clarity
type Options struct {
	// Type selects the transport.
	Type config.TransportType

	// Stdin and Stdout are used by the stdio transport.
	Stdin  io.Reader
	Stdout io.Writer

	// ErrorLog, if set, receives transport errors. It must not write to
	// Stdout.
	ErrorLog *log.Logger

	// Address is the listen address of the HTTP transports.
	Address string

	// Listener, if set, is used instead of listening on Address.
	Listener net.Listener

	// CORSOrigin is the allowed CORS origin of the HTTP transports.
	CORSOrigin string

	// HeartbeatInterval is the keep-alive interval of the HTTP transports.
	HeartbeatInterval time.Duration

	// ReadTimeout is the HTTP server read timeout.
	ReadTimeout time.Duration

	// RateLimit is the HTTP request rate per second; zero disables it.
	RateLimit int

	// APIKey, when set, must be presented as "Authorization: Bearer <key>"
	// on every HTTP request except the health check.
	APIKey string
}

// OptionsFromConfig maps the transport fields of cfg onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Type:              cfg.Transport,
		Address:           cfg.HTTPAddress,
		CORSOrigin:        cfg.CORSOrigin,
		HeartbeatInterval: cfg.HeartbeatInterval,
		ReadTimeout:       cfg.HTTPReadTimeout,
		RateLimit:         cfg.RateLimit,
		APIKey:            cfg.APIKey,
	}
}

// Serve serves s until ctx is cancelled, the stdio peer disconnects, or the
// transport fails.
func Serve(ctx context.Context, s *server.MCPServer, opts Options) error {
	switch opts.Type {
	case config.TransportStdio, "":
		return serveStdio(ctx, s, opts)
	case config.TransportSSE, config.TransportHTTP:
		return serveHTTP(ctx, s, opts)
	default:
		return fmt.Errorf("invalid transport type: %s", opts.Type)
	}
}
