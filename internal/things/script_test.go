// Copyright 2025 Joseph Cumines

package things

import (
	"strings"
	"testing"
)

// literals extracts the contents of every AppleScript string literal in
// src, failing the test on an unterminated literal.
func literals(t *testing.T, src string) []string {
	t.Helper()
	var (
		out     []string
		cur     strings.Builder
		inside  bool
		escaped bool
	)
	for _, r := range src {
		switch {
		case !inside && r == '"':
			inside = true
			cur.Reset()
		case inside && escaped:
			cur.WriteRune(r)
			escaped = false
		case inside && r == '\\':
			escaped = true
		case inside && r == '"':
			inside = false
			out = append(out, cur.String())
		case inside:
			cur.WriteRune(r)
		}
	}
	if inside {
		t.Fatalf("unterminated string literal in script:\n%s", src)
	}
	return out
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Buy milk", want: `"Buy milk"`},
		{name: "quote", in: `say "hi"`, want: `"say \"hi\""`},
		{name: "backslash", in: `C:\temp`, want: `"C:\\temp"`},
		{name: "backslash before quote", in: `\"`, want: `"\\\""`},
		{name: "unicode", in: "café ✓", want: `"café ✓"`},
		{name: "empty", in: "", want: `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quote(tt.in); got != tt.want {
				t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestCreateTodo_EscapesTitleAndNotes(t *testing.T) {
	title := `Read "Go" book" & do shell script "rm -rf ~" & "`
	notes := `trailing backslash \`
	src := NewScriptBuilder("").CreateTodo(CreateTodoInput{Title: title, Notes: notes})

	lits := literals(t, src)
	var sawTitle, sawNotes bool
	for _, l := range lits {
		if l == title {
			sawTitle = true
		}
		if l == notes {
			sawNotes = true
		}
	}
	if !sawTitle {
		t.Errorf("title was not embedded as a single literal; literals = %q", lits)
	}
	if !sawNotes {
		t.Errorf("notes were not embedded as a single literal; literals = %q", lits)
	}
	if strings.Contains(src, "do shell script \"rm") {
		t.Error("injected statement escaped its literal")
	}
}

func TestCreateTodo_Clauses(t *testing.T) {
	b := NewScriptBuilder("")
	tests := []struct {
		name    string
		in      CreateTodoInput
		want    []string
		notWant []string
	}{
		{
			name:    "minimal",
			in:      CreateTodoInput{Title: "A"},
			want:    []string{`tell application "Things3"`, `make new to do with properties {name:"A", notes:""}`, "return id of newToDo"},
			notWant: []string{"schedule", "due date", "tag names", "project id", "area id"},
		},
		{
			name: "today",
			in:   CreateTodoInput{Title: "A", When: "today"},
			want: []string{`move newToDo to list "Today"`},
		},
		{
			name: "evening",
			in:   CreateTodoInput{Title: "A", When: "Evening"},
			want: []string{`move newToDo to list "Evening"`},
		},
		{
			name: "tomorrow",
			in:   CreateTodoInput{Title: "A", When: "tomorrow"},
			want: []string{"schedule newToDo for (current date) + 1 * days"},
		},
		{
			name: "literal date is best effort",
			in:   CreateTodoInput{Title: "A", When: "2025-06-01"},
			want: []string{"try\n\t\tschedule newToDo for date \"2025-06-01\"\n\tend try"},
		},
		{
			name: "deadline",
			in:   CreateTodoInput{Title: "A", Deadline: "June 3, 2025"},
			want: []string{"try\n\t\tset due date of newToDo to date \"June 3, 2025\"\n\tend try"},
		},
		{
			name: "deadline tomorrow",
			in:   CreateTodoInput{Title: "A", Deadline: "tomorrow"},
			want: []string{"set due date of newToDo to (current date) + 1 * days"},
		},
		{
			name:    "project wins over area",
			in:      CreateTodoInput{Title: "A", ProjectID: "P1", AreaID: "A1"},
			want:    []string{`set project of newToDo to project id "P1"`},
			notWant: []string{"area id"},
		},
		{
			name: "area",
			in:   CreateTodoInput{Title: "A", AreaID: "A1"},
			want: []string{`set area of newToDo to area id "A1"`},
		},
		{
			name: "tags",
			in:   CreateTodoInput{Title: "A", Tags: []string{"errand", "home"}},
			want: []string{`set tag names of newToDo to "errand, home"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := b.CreateTodo(tt.in)
			for _, w := range tt.want {
				if !strings.Contains(src, w) {
					t.Errorf("script missing %q:\n%s", w, src)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(src, nw) {
					t.Errorf("script unexpectedly contains %q:\n%s", nw, src)
				}
			}
		})
	}
}

func TestListScripts(t *testing.T) {
	b := NewScriptBuilder("Things3 Beta")

	areas := b.ListAreas()
	if !strings.Contains(areas, `tell application "Things3 Beta"`) {
		t.Errorf("app name not used:\n%s", areas)
	}
	if !strings.Contains(areas, "repeat with a in areas") {
		t.Errorf("areas script does not iterate areas:\n%s", areas)
	}

	all := b.ListProjects("")
	if !strings.Contains(all, "repeat with p in projects\n") {
		t.Errorf("unfiltered projects script:\n%s", all)
	}
	scoped := b.ListProjects(`A"1`)
	if !strings.Contains(scoped, `repeat with p in projects of area id "A\"1"`) {
		t.Errorf("area-scoped projects script:\n%s", scoped)
	}

	today := b.ListTodos(ListTodosInput{BuiltIn: ListToday})
	if !strings.Contains(today, `repeat with t in to dos of list "Today"`) {
		t.Errorf("built-in list script:\n%s", today)
	}
	for _, helper := range []string{"on isoDate(d)", "on flatten(t)", "my isoDate(due date of t)", "my isoDate(activation date of t)"} {
		if !strings.Contains(today, helper) {
			t.Errorf("todos script missing %q", helper)
		}
	}

	project := b.ListTodos(ListTodosInput{ProjectID: "P9"})
	if !strings.Contains(project, `repeat with t in to dos of project id "P9"`) {
		t.Errorf("project todos script:\n%s", project)
	}
}

func TestSetStatus(t *testing.T) {
	src := NewScriptBuilder("").SetStatus("T1", StatusCanceled)
	if !strings.Contains(src, `set status of to do id "T1" to canceled`) {
		t.Errorf("SetStatus script:\n%s", src)
	}
}
