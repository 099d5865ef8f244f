// Copyright 2025 Joseph Cumines
//
// URL scheme tools: projects and updates

package server

import (
	"context"

	"github.com/joeycumines/things-mcp/internal/things"
	"github.com/mark3labs/mcp-go/mcp"
)

type createProjectResult struct {
	OK    bool   `json:"ok"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type updateResult struct {
	OK  bool   `json:"ok"`
	ID  string `json:"id"`
	URL string `json:"url"`
}

// handleCreateProject handles the create_project tool
func (s *MCPServer) handleCreateProject(ctx context.Context, call *ToolCall) (*mcp.CallToolResult, error) {
	tags, err := stringSliceArg(call.Arguments, "tags")
	if err != nil {
		return nil, err
	}

	in := things.CreateProjectInput{
		Title:    stringArg(call.Arguments, "title"),
		Notes:    stringArg(call.Arguments, "notes"),
		When:     stringArg(call.Arguments, "when"),
		Deadline: stringArg(call.Arguments, "deadline"),
		Area:     stringArg(call.Arguments, "area"),
		Tags:     tags,
		Reveal:   optionalBoolArg(call.Arguments, "reveal"),
	}
	rawURL, err := s.client.CreateProject(ctx, in)
	if err != nil {
		return nil, err
	}
	return jsonResult(createProjectResult{OK: true, Title: in.Title, URL: rawURL}), nil
}

// handleUpdateItem handles the update_item tool. The echoed URL has its
// auth token redacted.
func (s *MCPServer) handleUpdateItem(ctx context.Context, call *ToolCall) (*mcp.CallToolResult, error) {
	addTags, err := stringSliceArg(call.Arguments, "addTags")
	if err != nil {
		return nil, err
	}
	tags, err := stringSliceArg(call.Arguments, "tags")
	if err != nil {
		return nil, err
	}

	isProject, _ := call.Arguments["isProject"].(bool)
	in := things.UpdateInput{
		ID:        stringArg(call.Arguments, "id"),
		Title:     optionalStringArg(call.Arguments, "title"),
		Notes:     optionalStringArg(call.Arguments, "notes"),
		When:      optionalStringArg(call.Arguments, "when"),
		Deadline:  optionalStringArg(call.Arguments, "deadline"),
		ListID:    optionalStringArg(call.Arguments, "listId"),
		AuthToken: stringArg(call.Arguments, "authToken"),
		AddTags:   addTags,
		Tags:      tags,
		Reveal:    optionalBoolArg(call.Arguments, "reveal"),
		Duplicate: optionalBoolArg(call.Arguments, "duplicate"),
		Completed: optionalBoolArg(call.Arguments, "completed"),
		Canceled:  optionalBoolArg(call.Arguments, "canceled"),
		IsProject: isProject,
	}
	rawURL, err := s.client.Update(ctx, in)
	if err != nil {
		return nil, err
	}
	return jsonResult(updateResult{OK: true, ID: in.ID, URL: things.RedactAuthToken(rawURL)}), nil
}
