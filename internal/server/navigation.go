// Copyright 2025 Joseph Cumines
//
// Navigation tools

package server

import (
	"context"

	"github.com/joeycumines/things-mcp/internal/things"
	"github.com/mark3labs/mcp-go/mcp"
)

type showResult struct {
	OK  bool   `json:"ok"`
	URL string `json:"url"`
}

type searchResult struct {
	OK    bool   `json:"ok"`
	Query string `json:"query"`
	URL   string `json:"url"`
}

// handleShow handles the show tool
func (s *MCPServer) handleShow(ctx context.Context, call *ToolCall) (*mcp.CallToolResult, error) {
	filter, err := stringSliceArg(call.Arguments, "filter")
	if err != nil {
		return nil, err
	}
	rawURL, err := s.client.Show(ctx, things.ShowInput{
		ID:     stringArg(call.Arguments, "id"),
		Filter: filter,
		Query:  stringArg(call.Arguments, "query"),
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(showResult{OK: true, URL: rawURL}), nil
}

// handleSearch handles the search tool
func (s *MCPServer) handleSearch(ctx context.Context, call *ToolCall) (*mcp.CallToolResult, error) {
	query := stringArg(call.Arguments, "query")
	rawURL, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return jsonResult(searchResult{OK: true, Query: query, URL: rawURL}), nil
}
