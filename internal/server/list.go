// Copyright 2025 Joseph Cumines
//
// Read-only listing tools

package server

import (
	"context"

	"github.com/joeycumines/things-mcp/internal/things"
	"github.com/mark3labs/mcp-go/mcp"
)

// handleListAreas handles the list_areas tool
func (s *MCPServer) handleListAreas(ctx context.Context, _ *ToolCall) (*mcp.CallToolResult, error) {
	areas, err := s.client.ListAreas(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResult(areas), nil
}

// handleListProjects handles the list_projects tool
func (s *MCPServer) handleListProjects(ctx context.Context, call *ToolCall) (*mcp.CallToolResult, error) {
	projects, err := s.client.ListProjects(ctx, stringArg(call.Arguments, "areaId"))
	if err != nil {
		return nil, err
	}
	return jsonResult(projects), nil
}

// handleListTodos handles the list_todos tool
func (s *MCPServer) handleListTodos(ctx context.Context, call *ToolCall) (*mcp.CallToolResult, error) {
	todos, err := s.client.ListTodos(ctx, things.ListTodosInput{
		BuiltIn:   things.BuiltInList(stringArg(call.Arguments, "builtIn")),
		ProjectID: stringArg(call.Arguments, "projectId"),
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(todos), nil
}
