// Copyright 2025 Joseph Cumines
//
// SSE and streamable HTTP transports

package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/joeycumines/things-mcp/internal/config"
	"github.com/mark3labs/mcp-go/server"
)

// HTTP endpoints.
const (
	healthPath     = "/health"
	ssePath        = "/sse"
	messagePath    = "/message"
	streamablePath = "/mcp"
)

// shutdownTimeout bounds the graceful HTTP shutdown.
const shutdownTimeout = 5 * time.Second

// newHTTPHandler mounts the mcp-go handler for opts.Type beside the health
// endpoint, wrapped in CORS, rate limiting and API key authentication.
func newHTTPHandler(s *server.MCPServer, opts Options) http.Handler {
	mux := http.NewServeMux()

	switch opts.Type {
	case config.TransportSSE:
		sseOpts := []server.SSEOption{
			server.WithSSEEndpoint(ssePath),
			server.WithMessageEndpoint(messagePath),
		}
		if opts.HeartbeatInterval > 0 {
			sseOpts = append(sseOpts, server.WithKeepAliveInterval(opts.HeartbeatInterval))
		}
		sse := server.NewSSEServer(s, sseOpts...)
		mux.Handle(ssePath, sse)
		mux.Handle(messagePath, sse)
	default:
		streamOpts := []server.StreamableHTTPOption{
			server.WithEndpointPath(streamablePath),
		}
		if opts.HeartbeatInterval > 0 {
			streamOpts = append(streamOpts, server.WithHeartbeatInterval(opts.HeartbeatInterval))
		}
		mux.Handle(streamablePath, server.NewStreamableHTTPServer(s, streamOpts...))
	}

	mux.HandleFunc(healthPath, healthHandler(opts.Type))

	var handler http.Handler = mux
	handler = authMiddleware(opts.APIKey, handler)
	handler = RateLimitMiddleware(NewRateLimiter(opts.RateLimit, nil), handler)
	return corsMiddleware(opts.CORSOrigin, handler)
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(origin string, next http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Last-Event-ID, Mcp-Session-Id")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Type, Mcp-Session-Id")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// healthHandler handles GET /health for health checks
func healthHandler(transport config.TransportType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"status":      "ok",
			"transport":   transport,
			"server_time": time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			log.Printf("Error encoding health response: %v", err)
		}
	}
}

// serveHTTP runs an HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func serveHTTP(ctx context.Context, s *server.MCPServer, opts Options) error {
	listener := opts.Listener
	if listener == nil {
		var err error
		listener, err = net.Listen("tcp", opts.Address)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", opts.Address, err)
		}
	}

	srv := &http.Server{
		Handler:     newHTTPHandler(s, opts),
		ReadTimeout: opts.ReadTimeout,
		ErrorLog:    opts.ErrorLog,
		// request contexts end with ctx, which closes open SSE streams
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	log.Printf("MCP %s transport listening on %s", opts.Type, listener.Addr())
	if opts.APIKey == "" {
		log.Printf("WARNING: MCP %s transport has no API key; any client that can reach %s can call tools with the configured Things auth token", opts.Type, listener.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		// open SSE streams can outlive the timeout
		_ = srv.Close()
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}
