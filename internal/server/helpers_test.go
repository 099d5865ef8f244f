// Copyright 2025 Joseph Cumines

package server

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/joeycumines/things-mcp/internal/runner"
	"github.com/joeycumines/things-mcp/internal/things"
	"github.com/mark3labs/mcp-go/mcp"
)

func TestErrorResult(t *testing.T) {
	result := errorResult("test error")
	if !result.IsError {
		t.Error("expected IsError to be true")
	}
	if text := resultText(t, result); text != "test error" {
		t.Errorf("expected text 'test error', got %q", text)
	}
}

func TestJSONResult(t *testing.T) {
	result := jsonResult([]things.Area{{ID: "A1", Name: "Work"}})
	if result.IsError {
		t.Error("expected IsError to be false")
	}
	if text := resultText(t, result); text != `[{"id":"A1","name":"Work"}]` {
		t.Errorf("unexpected text %q", text)
	}

	// unsupported values become internal errors
	result = jsonResult(map[string]any{"ch": make(chan int)})
	if !result.IsError {
		t.Error("expected IsError for unencodable value")
	}
	if text := resultText(t, result); !strings.HasPrefix(text, "internal error:") {
		t.Errorf("unexpected text %q", text)
	}
}

func TestErrorText(t *testing.T) {
	for _, tt := range []struct {
		err  error
		want string
	}{
		{
			err:  fmt.Errorf("%w: title is required", things.ErrValidation),
			want: "validation error: title is required",
		},
		{
			err:  fmt.Errorf("%w: no token", things.ErrUnauthorized),
			want: "authorization error: no token",
		},
		{
			err:  &runner.ProcessError{Op: "open url", Command: "open", Output: "boom"},
			want: "external process error: open url (open): boom",
		},
		{
			err:  errors.New("unexpected"),
			want: "internal error: unexpected",
		},
	} {
		if got := errorText(tt.err); got != tt.want {
			t.Errorf("errorText(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestValidateToolInput(t *testing.T) {
	schema := mcp.NewTool("test",
		mcp.WithString("name", mcp.Required()),
		mcp.WithString("list", mcp.Enum("Inbox", "Today")),
		mcp.WithBoolean("flag"),
		mcp.WithNumber("count"),
		mcp.WithArray("tags"),
		mcp.WithObject("meta"),
	).InputSchema

	tests := []struct {
		name    string
		args    map[string]any
		wantErr string
	}{
		{"valid minimal", map[string]any{"name": "x"}, ""},
		{"valid all", map[string]any{
			"name": "x", "list": "Today", "flag": true, "count": 3.0,
			"tags": []any{"a"}, "meta": map[string]any{"k": "v"},
		}, ""},
		{"extra properties allowed", map[string]any{"name": "x", "other": 1.0}, ""},
		{"null optional ignored", map[string]any{"name": "x", "flag": nil}, ""},
		{"missing required", map[string]any{}, "missing required field: name"},
		{"null required", map[string]any{"name": nil}, "missing required field: name"},
		{"wrong string", map[string]any{"name": 1.0}, `field "name" must be a string`},
		{"wrong boolean", map[string]any{"name": "x", "flag": "true"}, `field "flag" must be a boolean`},
		{"wrong number", map[string]any{"name": "x", "count": "3"}, `field "count" must be a number`},
		{"wrong array", map[string]any{"name": "x", "tags": "a"}, `field "tags" must be an array`},
		{"wrong object", map[string]any{"name": "x", "meta": "k=v"}, `field "meta" must be an object`},
		{"enum miss", map[string]any{"name": "x", "list": "Later"}, `field "list" must be one of [Inbox, Today]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateToolInput(schema, tt.args)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !errors.Is(err, things.ErrValidation) {
				t.Errorf("error %v does not wrap ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsInteger(t *testing.T) {
	for value, want := range map[any]bool{
		3:          true,
		int64(-1):  true,
		3.0:        true,
		3.5:        false,
		"3":        false,
		float32(2): true,
	} {
		if got := isInteger(value); got != want {
			t.Errorf("isInteger(%v) = %v, want %v", value, got, want)
		}
	}
}

func TestArgAccessors(t *testing.T) {
	args := map[string]any{
		"s":     "value",
		"b":     false,
		"n":     1.0,
		"list":  []any{"a", "b"},
		"typed": []string{"c"},
	}

	if got := stringArg(args, "s"); got != "value" {
		t.Errorf("stringArg = %q", got)
	}
	if got := stringArg(args, "missing"); got != "" {
		t.Errorf("stringArg(missing) = %q", got)
	}
	if got := optionalStringArg(args, "s"); got == nil || *got != "value" {
		t.Errorf("optionalStringArg = %v", got)
	}
	if got := optionalStringArg(args, "n"); got != nil {
		t.Errorf("optionalStringArg(non-string) = %v, want nil", *got)
	}
	if got := optionalBoolArg(args, "b"); got == nil || *got {
		t.Errorf("optionalBoolArg = %v, want pointer to false", got)
	}
	if got := optionalBoolArg(args, "missing"); got != nil {
		t.Errorf("optionalBoolArg(missing) = %v, want nil", *got)
	}

	if got, err := stringSliceArg(args, "list"); err != nil || strings.Join(got, ",") != "a,b" {
		t.Errorf("stringSliceArg(list) = %v, %v", got, err)
	}
	if got, err := stringSliceArg(args, "typed"); err != nil || strings.Join(got, ",") != "c" {
		t.Errorf("stringSliceArg(typed) = %v, %v", got, err)
	}
	if got, err := stringSliceArg(args, "missing"); err != nil || got != nil {
		t.Errorf("stringSliceArg(missing) = %v, %v", got, err)
	}
	if _, err := stringSliceArg(args, "s"); !errors.Is(err, things.ErrValidation) {
		t.Errorf("stringSliceArg(string) error = %v, want validation error", err)
	}
}
