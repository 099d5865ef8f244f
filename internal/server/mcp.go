// Copyright 2025 Joseph Cumines
//
// MCP server implementation

package server

import (
	"context"
	"fmt"
	"log"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joeycumines/things-mcp/internal/config"
	"github.com/joeycumines/things-mcp/internal/runner"
	"github.com/joeycumines/things-mcp/internal/telemetry"
	"github.com/joeycumines/things-mcp/internal/things"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Name is the server name reported during initialization.
const Name = "things-mcp"

// Version is the server version reported during initialization. It is
// overridden at link time.
var Version = "0.1.0"

const instructions = "Tools for the Things to-do app on this Mac. " +
	"Use list_areas, list_projects and list_todos to read; identifiers they return are opaque. " +
	"create_todo, complete_todo and cancel_todo act immediately through AppleScript. " +
	"create_project, update_item, show and search dispatch things:/// URLs; a success result only " +
	"means the URL was handed to the OS. update_item needs an auth token."

// MCPServer exposes Things operations as MCP tools.
//
//lint:ignore BETTERALIGN struct is intentionally ordered for clarity
type MCPServer struct {
	mcp      *server.MCPServer
	client   *things.Client
	cfg      *config.Config
	tools    map[string]*Tool
	audit    *AuditLogger
	observer *telemetry.Observer
	runner   runner.Runner
	mu       sync.Mutex
}

// Tool is a registered tool: its MCP definition and its handler.
type Tool struct {
	Handler    func(context.Context, *ToolCall) (*mcp.CallToolResult, error)
	Definition mcp.Tool
}

// ToolCall is a validated tool invocation.
type ToolCall struct {
	Arguments map[string]any
	Name      string
}

// Option configures an MCPServer.
type Option func(*MCPServer)

// WithRunner replaces the osascript/open runner.
func WithRunner(r runner.Runner) Option {
	return func(s *MCPServer) { s.runner = r }
}

// WithObserver replaces the global telemetry observer.
func WithObserver(o *telemetry.Observer) Option {
	return func(s *MCPServer) { s.observer = o }
}

// WithAuditLogger replaces the audit logger built from the config.
func WithAuditLogger(a *AuditLogger) Option {
	return func(s *MCPServer) { s.audit = a }
}

// NewMCPServer creates a new MCP server. The default auth token is taken
// from cfg once, here.
func NewMCPServer(cfg *config.Config, opts ...Option) (*MCPServer, error) {
	s := &MCPServer{
		cfg:   cfg,
		tools: make(map[string]*Tool),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.runner == nil {
		s.runner = runner.NewExec(cfg.Interpreter, cfg.Opener)
	}
	if s.audit == nil {
		audit, err := NewAuditLogger(cfg.AuditLogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
		s.audit = audit
	}
	if s.observer == nil {
		observer, err := telemetry.NewGlobalObserver()
		if err != nil {
			return nil, fmt.Errorf("failed to create telemetry observer: %w", err)
		}
		s.observer = observer
	}

	s.client = things.NewClient(s.runner, cfg.AppName, cfg.AuthToken)
	s.mcp = server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	s.registerTools()

	return s, nil
}

// MCP returns the underlying protocol server, for the transport.
func (s *MCPServer) MCP() *server.MCPServer {
	return s.mcp
}

// Tools returns the sorted names of the registered tools.
func (s *MCPServer) Tools() []string {
	return slices.Sorted(maps.Keys(s.tools))
}

// Shutdown releases the audit log.
func (s *MCPServer) Shutdown() {
	log.Println("Shutting down MCP server...")
	if err := s.audit.Close(); err != nil {
		log.Printf("Error closing audit log: %v", err)
	}
}

// addTool registers t with both the dispatch table and the protocol server.
func (s *MCPServer) addTool(t *Tool) {
	name := t.Definition.Name
	s.tools[name] = t
	s.mcp.AddTool(t.Definition, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.CallTool(ctx, req.Params.Name, req.GetArguments())
	})
}

// CallTool validates args against the named tool's schema and runs its
// handler. Calls are serialized. Every failure is returned as an error tool
// result; the error return is reserved for unknown tools.
func (s *MCPServer) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	tool, exists := s.tools[name]
	if !exists {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	if args == nil {
		args = map[string]any{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	ctx, span := s.observer.Start(ctx, name)

	err := validateToolInput(tool.Definition.InputSchema, args)
	var result *mcp.CallToolResult
	if err == nil {
		result, err = tool.Handler(ctx, &ToolCall{Name: name, Arguments: args})
	}
	if err != nil {
		result = errorResult(errorText(err))
	}

	duration := time.Since(start)
	kind := errorKind(err)
	status := auditSuccess
	if kind != "" {
		status = auditError
	}

	s.audit.LogToolCall(AuditEntry{
		InvocationID: uuid.NewString(),
		Tool:         name,
		Arguments:    args,
		Status:       status,
		ErrorKind:    kind,
		Duration:     duration,
	})
	s.observer.Observe(ctx, span, telemetry.Invocation{
		Tool:      name,
		Duration:  duration,
		ErrorKind: kind,
	})

	return result, nil
}
