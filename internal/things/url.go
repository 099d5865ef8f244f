// Copyright 2025 Joseph Cumines
//
// things:/// URL scheme builders

package things

import (
	"net/url"
	"strconv"
	"strings"
)

// URL scheme commands.
const (
	CommandAddProject    = "add-project"
	CommandUpdate        = "update"
	CommandUpdateProject = "update-project"
	CommandShow          = "show"
	CommandSearch        = "search"
)

const schemePrefix = "things:///"

// Query is an insertion-ordered set of URL query parameters. The zero value
// is ready to use.
type Query struct {
	keys   []string
	values []string
}

// Set adds key=value. Empty values are skipped.
func (q *Query) Set(key, value string) {
	if value == "" {
		return
	}
	q.keys = append(q.keys, key)
	q.values = append(q.values, value)
}

// SetPtr adds key=*value when value is non-nil, even if it is empty, so
// callers can explicitly clear a field.
func (q *Query) SetPtr(key string, value *string) {
	if value == nil {
		return
	}
	q.keys = append(q.keys, key)
	q.values = append(q.values, *value)
}

// SetBool adds key=true|false when value is non-nil.
func (q *Query) SetBool(key string, value *bool) {
	if value == nil {
		return
	}
	q.keys = append(q.keys, key)
	q.values = append(q.values, strconv.FormatBool(*value))
}

// SetList adds key with the items joined by commas, if there are any.
func (q *Query) SetList(key string, items []string) {
	if len(items) == 0 {
		return
	}
	q.Set(key, strings.Join(items, ","))
}

// Len is the number of parameters.
func (q *Query) Len() int { return len(q.keys) }

// Encode percent-encodes the parameters in insertion order. Spaces become
// %20, which the Things URL handler requires.
func (q *Query) Encode() string {
	var b strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(k))
		b.WriteByte('=')
		b.WriteString(escape(q.values[i]))
	}
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// BuildURL returns things:///command, with ?query when q is non-empty.
func BuildURL(command string, q *Query) string {
	if q == nil || q.Len() == 0 {
		return schemePrefix + command
	}
	return schemePrefix + command + "?" + q.Encode()
}

// AddProjectURL builds the add-project URL.
func AddProjectURL(in CreateProjectInput) string {
	var q Query
	q.Set("title", in.Title)
	q.Set("notes", in.Notes)
	q.Set("when", in.When)
	q.Set("deadline", in.Deadline)
	q.Set("area", in.Area)
	q.SetList("tags", in.Tags)
	q.SetBool("reveal", in.Reveal)
	return BuildURL(CommandAddProject, &q)
}

// UpdateURL builds the update or update-project URL. The auth token must
// already be resolved into in.AuthToken.
func UpdateURL(in UpdateInput) string {
	command := CommandUpdate
	if in.IsProject {
		command = CommandUpdateProject
	}

	var q Query
	q.Set("id", in.ID)
	q.Set("auth-token", in.AuthToken)
	q.SetPtr("title", in.Title)
	q.SetPtr("notes", in.Notes)
	q.SetPtr("when", in.When)
	q.SetPtr("deadline", in.Deadline)
	q.SetList("add-tags", in.AddTags)
	q.SetList("tags", in.Tags)
	q.SetPtr("list-id", in.ListID)
	q.SetBool("reveal", in.Reveal)
	q.SetBool("duplicate", in.Duplicate)
	q.SetBool("completed", in.Completed)
	q.SetBool("canceled", in.Canceled)
	return BuildURL(command, &q)
}

// ShowURL builds the show URL.
func ShowURL(in ShowInput) string {
	var q Query
	q.Set("id", in.ID)
	q.Set("query", in.Query)
	q.SetList("filter", in.Filter)
	return BuildURL(CommandShow, &q)
}

// SearchURL builds the search URL.
func SearchURL(query string) string {
	var q Query
	q.Set("query", query)
	return BuildURL(CommandSearch, &q)
}

// RedactAuthToken replaces the auth-token value in a things:/// URL, for
// echoing dispatched URLs back to callers.
func RedactAuthToken(rawURL string) string {
	prefix, query, ok := strings.Cut(rawURL, "?")
	if !ok {
		return rawURL
	}
	params := strings.Split(query, "&")
	for i, p := range params {
		if strings.HasPrefix(p, "auth-token=") {
			params[i] = "auth-token=REDACTED"
		}
	}
	return prefix + "?" + strings.Join(params, "&")
}
