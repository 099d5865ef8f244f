// Copyright 2025 Joseph Cumines
//
// Tool definitions

package server

import (
	"github.com/joeycumines/things-mcp/internal/things"
	"github.com/mark3labs/mcp-go/mcp"
)

// readOnly annotates tools that only query Things.
func readOnly() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	}
}

// mutating annotates tools that change Things data.
func mutating(destructive, idempotent bool) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(destructive),
		mcp.WithIdempotentHintAnnotation(idempotent),
		mcp.WithOpenWorldHintAnnotation(false),
	}
}

// newTool builds a tool definition from its annotations and parameters.
func newTool(name, description string, annotations []mcp.ToolOption, params ...mcp.ToolOption) mcp.Tool {
	opts := make([]mcp.ToolOption, 0, 1+len(annotations)+len(params))
	opts = append(opts, mcp.WithDescription(description))
	opts = append(opts, annotations...)
	opts = append(opts, params...)
	return mcp.NewTool(name, opts...)
}

func stringList(name, description string) mcp.ToolOption {
	return mcp.WithArray(name,
		mcp.Description(description),
		mcp.Items(map[string]any{"type": "string"}),
	)
}

func builtInListNames() []string {
	names := make([]string, 0, len(things.BuiltInLists))
	for _, l := range things.BuiltInLists {
		names = append(names, string(l))
	}
	return names
}

const (
	whenDescription     = "When to schedule: today, evening, tomorrow, or a date such as 2025-03-14"
	deadlineDescription = "Deadline: today, tomorrow, or a date such as 2025-03-14"
)

// registerTools registers all available tools
func (s *MCPServer) registerTools() {
	for _, t := range []*Tool{
		{
			Definition: newTool("list_areas",
				"List all areas as [{id, name}]",
				readOnly(),
			),
			Handler: s.handleListAreas,
		},
		{
			Definition: newTool("list_projects",
				"List projects as [{id, name, status}], optionally only those in one area",
				readOnly(),
				mcp.WithString("areaId", mcp.Description("Only list projects in the area with this ID")),
			),
			Handler: s.handleListProjects,
		},
		{
			Definition: newTool("list_todos",
				"List to-dos of a built-in list or a project as [{id, title, status, notes, dueISO, startISO}]. Pass exactly one of builtIn or projectId.",
				readOnly(),
				mcp.WithString("builtIn",
					mcp.Description("Built-in list to read"),
					mcp.Enum(builtInListNames()...),
				),
				mcp.WithString("projectId", mcp.Description("ID of the project to read")),
			),
			Handler: s.handleListTodos,
		},
		{
			Definition: newTool("create_todo",
				"Create a to-do and return its ID",
				mutating(false, false),
				mcp.WithString("title", mcp.Required(), mcp.Description("To-do title")),
				mcp.WithString("notes", mcp.Description("To-do notes")),
				mcp.WithString("when", mcp.Description(whenDescription)),
				mcp.WithString("deadline", mcp.Description(deadlineDescription)),
				mcp.WithString("projectId", mcp.Description("ID of the project to add the to-do to")),
				mcp.WithString("areaId", mcp.Description("ID of the area to add the to-do to, used when projectId is not set")),
				stringList("tags", "Tag names to apply"),
			),
			Handler: s.handleCreateTodo,
		},
		{
			Definition: newTool("complete_todo",
				"Mark a to-do as completed",
				mutating(false, true),
				mcp.WithString("id", mcp.Required(), mcp.Description("ID of the to-do")),
			),
			Handler: s.handleCompleteTodo,
		},
		{
			Definition: newTool("cancel_todo",
				"Mark a to-do as canceled",
				mutating(true, true),
				mcp.WithString("id", mcp.Required(), mcp.Description("ID of the to-do")),
			),
			Handler: s.handleCancelTodo,
		},
		{
			Definition: newTool("create_project",
				"Create a project through the things:/// URL scheme",
				mutating(false, false),
				mcp.WithString("title", mcp.Required(), mcp.Description("Project title")),
				mcp.WithString("notes", mcp.Description("Project notes")),
				mcp.WithString("when", mcp.Description(whenDescription)),
				mcp.WithString("deadline", mcp.Description(deadlineDescription)),
				mcp.WithString("area", mcp.Description("Title of the area to add the project to")),
				stringList("tags", "Tag names to apply"),
				mcp.WithBoolean("reveal", mcp.Description("Navigate to the new project")),
			),
			Handler: s.handleCreateProject,
		},
		{
			Definition: newTool("update_item",
				"Update a to-do or project through the things:/// URL scheme. Requires an auth token, passed as authToken or configured on the server.",
				mutating(true, false),
				mcp.WithString("id", mcp.Required(), mcp.Description("ID of the item to update")),
				mcp.WithString("title", mcp.Description("New title")),
				mcp.WithString("notes", mcp.Description("Replacement notes")),
				stringList("addTags", "Tag names to add"),
				stringList("tags", "Tag names replacing all current tags"),
				mcp.WithString("when", mcp.Description(whenDescription)),
				mcp.WithString("deadline", mcp.Description(deadlineDescription)),
				mcp.WithString("listId", mcp.Description("ID of the project or area to move the item to")),
				mcp.WithBoolean("reveal", mcp.Description("Navigate to the item")),
				mcp.WithBoolean("duplicate", mcp.Description("Duplicate the item before updating")),
				mcp.WithBoolean("completed", mcp.Description("Set completion")),
				mcp.WithBoolean("canceled", mcp.Description("Set cancellation")),
				mcp.WithBoolean("isProject", mcp.Description("The item is a project")),
				mcp.WithString("authToken", mcp.Description("Things URL scheme auth token, overriding the server default")),
			),
			Handler: s.handleUpdateItem,
		},
		{
			Definition: newTool("show",
				"Navigate Things to an item, list or query",
				mutating(false, true),
				mcp.WithString("id", mcp.Description("ID of an item, or a built-in list name such as today")),
				stringList("filter", "Tag names to filter the shown list by"),
				mcp.WithString("query", mcp.Description("Name of an area, project or tag to show")),
			),
			Handler: s.handleShow,
		},
		{
			Definition: newTool("search",
				"Open the Things search for a query",
				mutating(false, true),
				mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
			),
			Handler: s.handleSearch,
		},
	} {
		s.addTool(t)
	}
}
