// Copyright 2025 Joseph Cumines
//
// Stdio transport for JSON-RPC 2.0 communication

package transport

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/server"
)

// serveStdio serves newline-delimited JSON-RPC over opts.Stdin/opts.Stdout,
// defaulting to the process streams. Reaching EOF or cancelling ctx is a
// clean shutdown.
func serveStdio(ctx context.Context, s *server.MCPServer, opts Options) error {
	in, out := opts.Stdin, opts.Stdout
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	stdio := server.NewStdioServer(s)
	if opts.ErrorLog != nil {
		stdio.SetErrorLogger(opts.ErrorLog)
	}

	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
