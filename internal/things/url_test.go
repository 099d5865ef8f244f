// Copyright 2025 Joseph Cumines

package things

import (
	"net/url"
	"strings"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestQuery_OmitsAbsentValues(t *testing.T) {
	var q Query
	q.Set("title", "")
	q.SetPtr("notes", nil)
	q.SetBool("reveal", nil)
	q.SetList("tags", nil)
	if q.Len() != 0 {
		t.Fatalf("Len = %d, want 0", q.Len())
	}
	if got := BuildURL(CommandShow, &q); got != "things:///show" {
		t.Errorf("BuildURL = %q, want things:///show", got)
	}
}

func TestQuery_Booleans(t *testing.T) {
	var q Query
	q.SetBool("reveal", ptr(true))
	q.SetBool("completed", ptr(false))
	if got := q.Encode(); got != "reveal=true&completed=false" {
		t.Errorf("Encode = %q", got)
	}
}

func TestQuery_PercentEncoding(t *testing.T) {
	var q Query
	q.Set("title", "Milk & eggs = 2+2?")
	q.SetList("tags", []string{"home", "big shop"})
	got := q.Encode()

	if strings.Contains(got, "+") {
		t.Errorf("Encode used '+' for spaces: %q", got)
	}
	want := "title=Milk%20%26%20eggs%20%3D%202%2B2%3F&tags=home%2Cbig%20shop"
	if got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}

	parsed, err := url.ParseQuery(got)
	if err != nil {
		t.Fatalf("ParseQuery error = %v", err)
	}
	if parsed.Get("title") != "Milk & eggs = 2+2?" {
		t.Errorf("title round trip = %q", parsed.Get("title"))
	}
	if parsed.Get("tags") != "home,big shop" {
		t.Errorf("tags round trip = %q", parsed.Get("tags"))
	}
}

func TestQuery_SetPtrKeepsEmpty(t *testing.T) {
	var q Query
	q.SetPtr("deadline", ptr(""))
	if got := q.Encode(); got != "deadline=" {
		t.Errorf("Encode = %q, want %q", got, "deadline=")
	}
}

func TestAddProjectURL(t *testing.T) {
	got := AddProjectURL(CreateProjectInput{
		Title:  "Q3 Plan",
		Notes:  "see doc",
		When:   "today",
		Area:   "Work",
		Tags:   []string{"a", "b"},
		Reveal: ptr(true),
	})
	want := "things:///add-project?title=Q3%20Plan&notes=see%20doc&when=today&area=Work&tags=a%2Cb&reveal=true"
	if got != want {
		t.Errorf("AddProjectURL = %q, want %q", got, want)
	}
}

func TestUpdateURL(t *testing.T) {
	tests := []struct {
		name string
		in   UpdateInput
		want string
	}{
		{
			name: "todo",
			in: UpdateInput{
				ID:        "T1",
				AuthToken: "tok",
				Title:     ptr("New"),
				AddTags:   []string{"x", "y"},
				ListID:    ptr("P2"),
				Completed: ptr(true),
			},
			want: "things:///update?id=T1&auth-token=tok&title=New&add-tags=x%2Cy&list-id=P2&completed=true",
		},
		{
			name: "project",
			in:   UpdateInput{ID: "P1", AuthToken: "tok", IsProject: true, Canceled: ptr(true), Reveal: ptr(false)},
			want: "things:///update-project?id=P1&auth-token=tok&reveal=false&canceled=true",
		},
		{
			name: "replace tags and duplicate",
			in:   UpdateInput{ID: "T1", AuthToken: "tok", Tags: []string{"only"}, Duplicate: ptr(true), When: ptr("evening")},
			want: "things:///update?id=T1&auth-token=tok&when=evening&tags=only&duplicate=true",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UpdateURL(tt.in); got != tt.want {
				t.Errorf("UpdateURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShowAndSearchURL(t *testing.T) {
	if got := ShowURL(ShowInput{ID: "today"}); got != "things:///show?id=today" {
		t.Errorf("ShowURL = %q", got)
	}
	if got := ShowURL(ShowInput{Query: "Groceries", Filter: []string{"errand", "home"}}); got != "things:///show?query=Groceries&filter=errand%2Chome" {
		t.Errorf("ShowURL = %q", got)
	}
	if got := ShowURL(ShowInput{}); got != "things:///show" {
		t.Errorf("ShowURL = %q", got)
	}
	if got := SearchURL("tax return"); got != "things:///search?query=tax%20return" {
		t.Errorf("SearchURL = %q", got)
	}
}

func TestRedactAuthToken(t *testing.T) {
	in := "things:///update?id=T1&auth-token=s3cr3t&title=x"
	want := "things:///update?id=T1&auth-token=REDACTED&title=x"
	if got := RedactAuthToken(in); got != want {
		t.Errorf("RedactAuthToken = %q, want %q", got, want)
	}
	if got := RedactAuthToken("things:///show"); got != "things:///show" {
		t.Errorf("RedactAuthToken without query = %q", got)
	}
}
