// Copyright 2025 Joseph Cumines
//
// Scripted to-do tools

package server

import (
	"context"

	"github.com/joeycumines/things-mcp/internal/things"
	"github.com/mark3labs/mcp-go/mcp"
)

type createTodoResult struct {
	OK    bool   `json:"ok"`
	ID    string `json:"id"`
	Title string `json:"title"`
}

type statusResult struct {
	OK     bool   `json:"ok"`
	ID     string `json:"id"`
	Status string `json:"status"`
}

// handleCreateTodo handles the create_todo tool
func (s *MCPServer) handleCreateTodo(ctx context.Context, call *ToolCall) (*mcp.CallToolResult, error) {
	tags, err := stringSliceArg(call.Arguments, "tags")
	if err != nil {
		return nil, err
	}

	in := things.CreateTodoInput{
		Title:     stringArg(call.Arguments, "title"),
		Notes:     stringArg(call.Arguments, "notes"),
		When:      stringArg(call.Arguments, "when"),
		Deadline:  stringArg(call.Arguments, "deadline"),
		ProjectID: stringArg(call.Arguments, "projectId"),
		AreaID:    stringArg(call.Arguments, "areaId"),
		Tags:      tags,
	}
	id, err := s.client.CreateTodo(ctx, in)
	if err != nil {
		return nil, err
	}
	return jsonResult(createTodoResult{OK: true, ID: id, Title: in.Title}), nil
}

// handleCompleteTodo handles the complete_todo tool
func (s *MCPServer) handleCompleteTodo(ctx context.Context, call *ToolCall) (*mcp.CallToolResult, error) {
	id := stringArg(call.Arguments, "id")
	if err := s.client.CompleteTodo(ctx, id); err != nil {
		return nil, err
	}
	return jsonResult(statusResult{OK: true, ID: id, Status: things.StatusCompleted}), nil
}

// handleCancelTodo handles the cancel_todo tool
func (s *MCPServer) handleCancelTodo(ctx context.Context, call *ToolCall) (*mcp.CallToolResult, error) {
	id := stringArg(call.Arguments, "id")
	if err := s.client.CancelTodo(ctx, id); err != nil {
		return nil, err
	}
	return jsonResult(statusResult{OK: true, ID: id, Status: things.StatusCanceled}), nil
}
