// Copyright 2025 Joseph Cumines
//
// Helper functions for tool handlers

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/joeycumines/things-mcp/internal/runner"
	"github.com/joeycumines/things-mcp/internal/things"
	"github.com/mark3labs/mcp-go/mcp"
)

// Error kinds reported in tool results, audit logs and telemetry.
const (
	kindValidation    = "validation"
	kindAuthorization = "authorization"
	kindProcess       = "external_process"
	kindInternal      = "internal"
)

// errorResult creates a tool result with IsError=true and the given message.
func errorResult(msg string) *mcp.CallToolResult {
	return mcp.NewToolResultError(msg)
}

// jsonResult marshals v as the single text content of a tool result.
func jsonResult(v any) *mcp.CallToolResult {
	b, err := json.Marshal(v)
	if err != nil {
		return errorResult(fmt.Sprintf("internal error: failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(b))
}

// errorKind classifies err into one of the reported error kinds.
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, things.ErrValidation):
		return kindValidation
	case errors.Is(err, things.ErrUnauthorized):
		return kindAuthorization
	case errors.Is(err, runner.ErrProcessFailed):
		return kindProcess
	default:
		return kindInternal
	}
}

// errorText formats err for a tool result. Validation and authorization
// errors already lead with their kind.
func errorText(err error) string {
	switch errorKind(err) {
	case kindProcess:
		return "external process error: " + err.Error()
	case kindInternal:
		return "internal error: " + err.Error()
	default:
		return err.Error()
	}
}

// validationErrorf wraps things.ErrValidation.
func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", things.ErrValidation, fmt.Sprintf(format, args...))
}

// validateToolInput validates arguments against a tool's InputSchema.
// It checks:
//   - All required fields are present
//   - Field types match the schema (string, number, boolean, integer, array, object)
//   - Enum values are in the allowed set (if enum is specified)
//
// Extra properties not defined in the schema are allowed.
func validateToolInput(schema mcp.ToolInputSchema, args map[string]any) error {
	for _, field := range schema.Required {
		if v, exists := args[field]; !exists || v == nil {
			return validationErrorf("missing required field: %s", field)
		}
	}

	for fieldName, value := range args {
		propSchema, ok := schema.Properties[fieldName].(map[string]any)
		if !ok {
			continue
		}
		if err := validateFieldValue(fieldName, value, propSchema); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldValue validates a single field value against its property schema.
func validateFieldValue(fieldName string, value any, propSchema map[string]any) error {
	// null is treated as absent
	if value == nil {
		return nil
	}

	if schemaType, ok := propSchema["type"].(string); ok {
		if err := validateType(fieldName, value, schemaType); err != nil {
			return err
		}
	}

	return validateEnumValue(fieldName, value, propSchema)
}

// validateType validates that a value matches the expected JSON Schema type.
func validateType(fieldName string, value any, expectedType string) error {
	switch expectedType {
	case "string":
		if _, ok := value.(string); !ok {
			return validationErrorf("field %q must be a string, got %T", fieldName, value)
		}
	case "number":
		if !isNumber(value) {
			return validationErrorf("field %q must be a number, got %T", fieldName, value)
		}
	case "integer":
		if !isInteger(value) {
			return validationErrorf("field %q must be an integer, got %T", fieldName, value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return validationErrorf("field %q must be a boolean, got %T", fieldName, value)
		}
	case "array":
		if _, ok := value.([]any); !ok {
			if _, ok := value.([]string); !ok {
				return validationErrorf("field %q must be an array, got %T", fieldName, value)
			}
		}
	case "object":
		if _, ok := value.(map[string]any); !ok {
			return validationErrorf("field %q must be an object, got %T", fieldName, value)
		}
	}
	return nil
}

// isNumber returns true if the value is a valid JSON number.
func isNumber(value any) bool {
	switch value.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, json.Number:
		return true
	default:
		return false
	}
}

// isInteger returns true if the value is a whole number. Decoded JSON
// numbers arrive as float64.
func isInteger(value any) bool {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return v == float64(int64(v))
	case float32:
		return v == float32(int32(v))
	default:
		return false
	}
}

// validateEnumValue validates that a value is in the allowed enum set.
func validateEnumValue(fieldName string, value any, propSchema map[string]any) error {
	switch enum := propSchema["enum"].(type) {
	case []string:
		s, ok := value.(string)
		if !ok {
			return validationErrorf("field %q must be a string for enum validation, got %T", fieldName, value)
		}
		if !slices.Contains(enum, s) {
			return validationErrorf("field %q must be one of [%s], got %q", fieldName, strings.Join(enum, ", "), s)
		}
	case []any:
		if slices.Contains(enum, value) {
			return nil
		}
		allowed := make([]string, 0, len(enum))
		for _, v := range enum {
			allowed = append(allowed, fmt.Sprintf("%v", v))
		}
		return validationErrorf("field %q must be one of [%s], got %v", fieldName, strings.Join(allowed, ", "), value)
	}
	return nil
}

// stringArg returns the string argument key, or "" when absent.
func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// optionalStringArg returns a pointer to the string argument key, or nil
// when absent.
func optionalStringArg(args map[string]any, key string) *string {
	s, ok := args[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// optionalBoolArg returns a pointer to the boolean argument key, or nil
// when absent.
func optionalBoolArg(args map[string]any, key string) *bool {
	b, ok := args[key].(bool)
	if !ok {
		return nil
	}
	return &b
}

// stringSliceArg returns the string array argument key. Non-string items
// are a validation error.
func stringSliceArg(args map[string]any, key string) ([]string, error) {
	switch v := args[key].(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, validationErrorf("field %q item %d must be a string, got %T", key, i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, validationErrorf("field %q must be an array, got %T", key, v)
	}
}
