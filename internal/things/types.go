// Copyright 2025 Joseph Cumines
//
// Things data model

package things

import (
	"errors"
	"slices"
)

var (
	// ErrValidation indicates missing or conflicting input, detected before
	// any external process is started.
	ErrValidation = errors.New("validation error")

	// ErrUnauthorized indicates an update was requested without a
	// resolvable auth token.
	ErrUnauthorized = errors.New("authorization error")
)

// BuiltInList is one of the fixed default lists maintained by Things.
type BuiltInList string

const (
	ListInbox    BuiltInList = "Inbox"
	ListToday    BuiltInList = "Today"
	ListAnytime  BuiltInList = "Anytime"
	ListUpcoming BuiltInList = "Upcoming"
	ListSomeday  BuiltInList = "Someday"
)

// BuiltInLists are the built-in lists accepted by ListTodos, in the order
// Things shows them.
var BuiltInLists = []BuiltInList{ListInbox, ListToday, ListAnytime, ListUpcoming, ListSomeday}

// Valid reports whether l names a built-in list.
func (l BuiltInList) Valid() bool {
	return slices.Contains(BuiltInLists, l)
}

// Status values as reported and accepted by Things.
const (
	StatusOpen      = "open"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

// Field lists, in emitted column order.
var (
	AreaFields    = []string{"id", "name"}
	ProjectFields = []string{"id", "name", "status"}
	TodoFields    = []string{"id", "title", "status", "notes", "dueISO", "startISO"}
)

// Area is a Things area of responsibility.
type Area struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Project is a Things project.
type Project struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Todo is a Things to-do. Dates are ISO-8601 strings, empty when unset.
type Todo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
	DueISO   string `json:"dueISO"`
	StartISO string `json:"startISO"`
}

// ListTodosInput selects exactly one source of todos.
type ListTodosInput struct {
	BuiltIn   BuiltInList
	ProjectID string
}

// CreateTodoInput is the input to CreateTodo. Empty fields are not applied.
type CreateTodoInput struct {
	Title     string
	Notes     string
	When      string
	Deadline  string
	ProjectID string
	AreaID    string
	Tags      []string
}

// CreateProjectInput is the input to CreateProject.
type CreateProjectInput struct {
	Title    string
	Notes    string
	When     string
	Deadline string
	Area     string
	Tags     []string
	Reveal   *bool
}

// UpdateInput is the input to Update. Nil pointers are omitted from the
// dispatched URL.
type UpdateInput struct {
	ID        string
	Title     *string
	Notes     *string
	When      *string
	Deadline  *string
	ListID    *string
	AuthToken string
	AddTags   []string
	Tags      []string
	Reveal    *bool
	Duplicate *bool
	Completed *bool
	Canceled  *bool
	IsProject bool
}

// ShowInput is the input to Show. All fields are optional.
type ShowInput struct {
	ID     string
	Filter []string
	Query  string
}
