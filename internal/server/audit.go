// Copyright 2025 Joseph Cumines
//
// Audit logging for MCP tool invocations

package server

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// Audit statuses.
const (
	auditSuccess = "success"
	auditError   = "error"
)

// AuditLogger writes one structured JSON line per tool invocation: the
// invocation id, tool name, redacted arguments, status, error kind and
// duration.
type AuditLogger struct {
	logger  *slog.Logger
	file    *os.File
	enabled bool
	mu      sync.RWMutex
}

// AuditEntry is the outcome of one tool invocation.
type AuditEntry struct {
	Arguments    map[string]any
	InvocationID string
	Tool         string
	Status       string
	ErrorKind    string
	Duration     time.Duration
}

// redactedKeys are matched, case-insensitively, as substrings of argument
// keys. authToken is caught by "token".
var redactedKeys = []string{
	"password",
	"secret",
	"token",
	"api_key",
	"apikey",
	"credential",
	"private_key",
	"privatekey",
	"authorization",
	"bearer",
	"cookie",
	"passphrase",
}

// NewAuditLogger creates a new audit logger that appends to filePath.
// If filePath is empty, audit logging is disabled.
func NewAuditLogger(filePath string) (*AuditLogger, error) {
	if filePath == "" {
		return &AuditLogger{enabled: false}, nil
	}

	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	return &AuditLogger{
		logger:  slog.New(handler),
		file:    file,
		enabled: true,
	}, nil
}

// Close closes the audit log file if it is open. Safe to call multiple
// times.
func (a *AuditLogger) Close() error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.enabled = false
	if a.file != nil {
		err := a.file.Close()
		a.file = nil
		return err
	}
	return nil
}

// IsEnabled returns true if audit logging is enabled.
func (a *AuditLogger) IsEnabled() bool {
	if a == nil {
		return false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// LogToolCall logs a tool invocation. Sensitive arguments are redacted.
func (a *AuditLogger) LogToolCall(entry AuditEntry) {
	if !a.IsEnabled() {
		return
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.logger == nil {
		return
	}

	attrs := []any{
		slog.String("invocation_id", entry.InvocationID),
		slog.String("tool", entry.Tool),
		slog.Any("arguments", redactArguments(entry.Arguments)),
		slog.String("status", entry.Status),
		slog.Float64("duration_seconds", entry.Duration.Seconds()),
	}
	if entry.ErrorKind != "" {
		attrs = append(attrs, slog.String("error_kind", entry.ErrorKind))
	}

	a.logger.Info("tool_invocation", attrs...)
}

// redactArguments returns a copy of args with sensitive values replaced.
// The input map is not modified.
func redactArguments(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for key, value := range args {
		if isSensitiveKey(key) {
			out[key] = "[REDACTED]"
			continue
		}
		switch v := value.(type) {
		case map[string]any:
			out[key] = redactArguments(v)
		case []any:
			items := make([]any, len(v))
			for i, item := range v {
				if m, ok := item.(map[string]any); ok {
					items[i] = redactArguments(m)
				} else {
					items[i] = item
				}
			}
			out[key] = items
		default:
			out[key] = value
		}
	}
	return out
}

func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, k := range redactedKeys {
		if strings.Contains(lowerKey, k) {
			return true
		}
	}
	return false
}
