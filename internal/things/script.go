// Copyright 2025 Joseph Cumines
//
// AppleScript source builders

package things

import (
	"fmt"
	"strings"
)

// DefaultAppName is the AppleScript application name of Things 3.
const DefaultAppName = "Things3"

// quote renders s as an AppleScript string literal. Backslash and double
// quote are the only characters that can terminate or alter a literal.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// scriptHelpers are appended to every read script. isoDate maps missing
// dates to "" and flatten keeps free text on one tab-free line.
const scriptHelpers = `
on isoDate(d)
	if d is missing value then return ""
	return (d as «class isot» as string)
end isoDate

on flatten(t)
	if t is missing value then return ""
	set t to t as string
	set saved to AppleScript's text item delimiters
	repeat with sep in {tab, return, linefeed}
		set AppleScript's text item delimiters to (contents of sep)
		set parts to text items of t
		set AppleScript's text item delimiters to " "
		set t to parts as string
	end repeat
	set AppleScript's text item delimiters to saved
	return t
end flatten
`

// ScriptBuilder builds AppleScript source targeting one application.
type ScriptBuilder struct {
	app string
}

// NewScriptBuilder returns a builder for app, defaulting to DefaultAppName.
func NewScriptBuilder(app string) *ScriptBuilder {
	if app == "" {
		app = DefaultAppName
	}
	return &ScriptBuilder{app: app}
}

func (b *ScriptBuilder) tell(body string) string {
	return fmt.Sprintf("tell application %s\n%s\nend tell", quote(b.app), body)
}

func (b *ScriptBuilder) readScript(body string) string {
	return b.tell(body) + "\n" + scriptHelpers
}

// ListAreas emits "id<TAB>name" per area.
func (b *ScriptBuilder) ListAreas() string {
	return b.readScript(`	set out to ""
	repeat with a in areas
		set out to out & (id of a) & tab & my flatten(name of a) & linefeed
	end repeat
	return out`)
}

// ListProjects emits "id<TAB>name<TAB>status" per project, optionally
// restricted to the area with areaID.
func (b *ScriptBuilder) ListProjects(areaID string) string {
	source := "projects"
	if areaID != "" {
		source = "projects of area id " + quote(areaID)
	}
	return b.readScript(fmt.Sprintf(`	set out to ""
	repeat with p in %s
		set out to out & (id of p) & tab & my flatten(name of p) & tab & (status of p as string) & linefeed
	end repeat
	return out`, source))
}

// ListTodos emits one TodoFields line per todo of a built-in list or a
// project. The input must already be validated.
func (b *ScriptBuilder) ListTodos(in ListTodosInput) string {
	source := "to dos of list " + quote(string(in.BuiltIn))
	if in.BuiltIn == "" {
		source = "to dos of project id " + quote(in.ProjectID)
	}
	return b.readScript(fmt.Sprintf(`	set out to ""
	repeat with t in %s
		set out to out & (id of t) & tab & my flatten(name of t) & tab & (status of t as string) & tab & my flatten(notes of t) & tab & my isoDate(due date of t) & tab & my isoDate(activation date of t) & linefeed
	end repeat
	return out`, source))
}

// CreateTodo creates a todo and returns its id as the script result.
func (b *ScriptBuilder) CreateTodo(in CreateTodoInput) string {
	var body strings.Builder
	fmt.Fprintf(&body, "\tset newToDo to make new to do with properties {name:%s, notes:%s}\n", quote(in.Title), quote(in.Notes))
	if in.ProjectID != "" {
		fmt.Fprintf(&body, "\tset project of newToDo to project id %s\n", quote(in.ProjectID))
	} else if in.AreaID != "" {
		fmt.Fprintf(&body, "\tset area of newToDo to area id %s\n", quote(in.AreaID))
	}
	if in.When != "" {
		body.WriteString(scheduleClause("newToDo", in.When))
	}
	if in.Deadline != "" {
		body.WriteString(deadlineClause("newToDo", in.Deadline))
	}
	if len(in.Tags) > 0 {
		fmt.Fprintf(&body, "\tset tag names of newToDo to %s\n", quote(strings.Join(in.Tags, ", ")))
	}
	body.WriteString("\treturn id of newToDo")
	return b.tell(body.String())
}

// SetStatus sets the status of the todo with id.
func (b *ScriptBuilder) SetStatus(id, status string) string {
	return b.tell(fmt.Sprintf("\tset status of to do id %s to %s\n\treturn id of to do id %s", quote(id), status, quote(id)))
}

// scheduleClause maps the when keywords onto Things' own lists and date
// scheduling. Unrecognised values are tried as an AppleScript date and
// silently ignored if Things cannot parse them.
func scheduleClause(item, when string) string {
	switch strings.ToLower(strings.TrimSpace(when)) {
	case "today":
		return fmt.Sprintf("\tmove %s to list \"Today\"\n", item)
	case "evening":
		return fmt.Sprintf("\tmove %s to list \"Evening\"\n", item)
	case "tomorrow":
		return fmt.Sprintf("\tschedule %s for (current date) + 1 * days\n", item)
	default:
		return fmt.Sprintf("\ttry\n\t\tschedule %s for date %s\n\tend try\n", item, quote(when))
	}
}

// deadlineClause mirrors scheduleClause for the due date.
func deadlineClause(item, deadline string) string {
	switch strings.ToLower(strings.TrimSpace(deadline)) {
	case "today":
		return fmt.Sprintf("\tset due date of %s to (current date)\n", item)
	case "tomorrow":
		return fmt.Sprintf("\tset due date of %s to (current date) + 1 * days\n", item)
	default:
		return fmt.Sprintf("\ttry\n\t\tset due date of %s to date %s\n\tend try\n", item, quote(deadline))
	}
}
