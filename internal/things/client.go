// Copyright 2025 Joseph Cumines

// Package things drives the Things 3 application through its AppleScript
// dictionary and its things:/// URL scheme.
//
// Reads (areas, projects, todos) run a generated script whose tab-delimited
// output is parsed into typed records. Todo creation and status changes also
// go through AppleScript; project creation, updates, show and search are
// dispatched as scheme URLs. Each Client method performs at most one
// external process invocation, and validates its input before doing so.
package things

import (
	"context"
	"fmt"
	"strings"

	"github.com/joeycumines/things-mcp/internal/runner"
)

// Client performs Things operations through a runner.Runner.
//
//lint:ignore BETTERALIGN struct is intentionally ordered for clarity
type Client struct {
	runner    runner.Runner
	scripts   *ScriptBuilder
	authToken string
}

// NewClient returns a Client. appName selects the scripted application
// (DefaultAppName if empty); authToken is the default for Update.
func NewClient(r runner.Runner, appName, authToken string) *Client {
	return &Client{
		runner:    r,
		scripts:   NewScriptBuilder(appName),
		authToken: authToken,
	}
}

// ListAreas returns every area.
func (c *Client) ListAreas(ctx context.Context) ([]Area, error) {
	out, err := c.runner.RunScript(ctx, c.scripts.ListAreas())
	if err != nil {
		return nil, err
	}
	return parseAreas(out), nil
}

// ListProjects returns every project, or only those in areaID when set.
func (c *Client) ListProjects(ctx context.Context, areaID string) ([]Project, error) {
	out, err := c.runner.RunScript(ctx, c.scripts.ListProjects(areaID))
	if err != nil {
		return nil, err
	}
	return parseProjects(out), nil
}

// ListTodos returns the todos of exactly one built-in list or project.
func (c *Client) ListTodos(ctx context.Context, in ListTodosInput) ([]Todo, error) {
	switch {
	case in.BuiltIn == "" && in.ProjectID == "":
		return nil, fmt.Errorf("%w: one of builtIn or projectId is required", ErrValidation)
	case in.BuiltIn != "" && in.ProjectID != "":
		return nil, fmt.Errorf("%w: builtIn and projectId are mutually exclusive", ErrValidation)
	case in.BuiltIn != "" && !in.BuiltIn.Valid():
		return nil, fmt.Errorf("%w: unknown built-in list %q", ErrValidation, in.BuiltIn)
	}

	out, err := c.runner.RunScript(ctx, c.scripts.ListTodos(in))
	if err != nil {
		return nil, err
	}
	return parseTodos(out), nil
}

// CreateTodo creates a todo and returns the identifier Things assigned.
func (c *Client) CreateTodo(ctx context.Context, in CreateTodoInput) (string, error) {
	if strings.TrimSpace(in.Title) == "" {
		return "", fmt.Errorf("%w: title is required", ErrValidation)
	}
	return c.runner.RunScript(ctx, c.scripts.CreateTodo(in))
}

// CompleteTodo marks the todo with id as completed.
func (c *Client) CompleteTodo(ctx context.Context, id string) error {
	return c.setStatus(ctx, id, StatusCompleted)
}

// CancelTodo marks the todo with id as canceled.
func (c *Client) CancelTodo(ctx context.Context, id string) error {
	return c.setStatus(ctx, id, StatusCanceled)
}

func (c *Client) setStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	_, err := c.runner.RunScript(ctx, c.scripts.SetStatus(id, status))
	return err
}

// CreateProject dispatches an add-project URL and returns it.
func (c *Client) CreateProject(ctx context.Context, in CreateProjectInput) (string, error) {
	if strings.TrimSpace(in.Title) == "" {
		return "", fmt.Errorf("%w: title is required", ErrValidation)
	}
	return c.open(ctx, AddProjectURL(in))
}

// Update dispatches an update (or update-project) URL and returns it. An
// empty in.AuthToken falls back to the client's default; if both are empty
// nothing is dispatched and ErrUnauthorized is returned.
func (c *Client) Update(ctx context.Context, in UpdateInput) (string, error) {
	if in.ID == "" {
		return "", fmt.Errorf("%w: id is required", ErrValidation)
	}
	if in.AuthToken == "" {
		in.AuthToken = c.authToken
	}
	if in.AuthToken == "" {
		return "", fmt.Errorf("%w: an auth token is required; pass authToken or set THINGS_AUTH_TOKEN", ErrUnauthorized)
	}
	return c.open(ctx, UpdateURL(in))
}

// Show dispatches a show URL and returns it.
func (c *Client) Show(ctx context.Context, in ShowInput) (string, error) {
	return c.open(ctx, ShowURL(in))
}

// Search dispatches a search URL and returns it.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", fmt.Errorf("%w: query is required", ErrValidation)
	}
	return c.open(ctx, SearchURL(query))
}

func (c *Client) open(ctx context.Context, rawURL string) (string, error) {
	if err := c.runner.OpenURL(ctx, rawURL); err != nil {
		return "", err
	}
	return rawURL, nil
}
