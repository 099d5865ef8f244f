// Copyright 2025 Joseph Cumines

// Package runnertest provides a recording runner.Runner for tests.
package runnertest

import (
	"context"
	"sync"
)

// Recorder records every invocation and replays canned responses.
type Recorder struct {
	// ScriptOutput is returned by every RunScript call.
	ScriptOutput string

	// ScriptErr, if set, is returned by every RunScript call.
	ScriptErr error

	// OpenErr, if set, is returned by every OpenURL call.
	OpenErr error

	scripts []string
	urls    []string
	mu      sync.Mutex
}

// RunScript records script.
func (r *Recorder) RunScript(_ context.Context, script string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts = append(r.scripts, script)
	if r.ScriptErr != nil {
		return "", r.ScriptErr
	}
	return r.ScriptOutput, nil
}

// OpenURL records rawURL.
func (r *Recorder) OpenURL(_ context.Context, rawURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, rawURL)
	return r.OpenErr
}

// Scripts returns a copy of the recorded scripts.
func (r *Recorder) Scripts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.scripts...)
}

// URLs returns a copy of the recorded URLs.
func (r *Recorder) URLs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.urls...)
}

// Calls is the total number of invocations of either kind.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scripts) + len(r.urls)
}
