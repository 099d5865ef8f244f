// Copyright 2025 Joseph Cumines
//
// Tab-delimited script output parsing

package things

import "strings"

// Field is a single named cell.
type Field struct {
	Name  string
	Value string
}

// Record is one parsed line, with fields in the caller-supplied order.
type Record []Field

// Get returns the value of the named field, or "" if absent.
func (r Record) Get(name string) string {
	for _, f := range r {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// ParseRecords splits newline/tab-delimited output into records.
//
// Empty output yields an empty, non-nil slice. Blank lines are skipped.
// Cells are zipped positionally against fields: missing trailing cells are
// "", extra cells are dropped. Values are never coerced.
func ParseRecords(output string, fields []string) []Record {
	records := []Record{}
	if strings.TrimSpace(output) == "" {
		return records
	}

	for line := range strings.SplitSeq(output, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		cells := strings.Split(line, "\t")
		record := make(Record, len(fields))
		for i, name := range fields {
			record[i].Name = name
			if i < len(cells) {
				record[i].Value = cells[i]
			}
		}
		records = append(records, record)
	}

	return records
}

func parseAreas(output string) []Area {
	records := ParseRecords(output, AreaFields)
	areas := make([]Area, 0, len(records))
	for _, r := range records {
		areas = append(areas, Area{
			ID:   r.Get("id"),
			Name: r.Get("name"),
		})
	}
	return areas
}

func parseProjects(output string) []Project {
	records := ParseRecords(output, ProjectFields)
	projects := make([]Project, 0, len(records))
	for _, r := range records {
		projects = append(projects, Project{
			ID:     r.Get("id"),
			Name:   r.Get("name"),
			Status: r.Get("status"),
		})
	}
	return projects
}

func parseTodos(output string) []Todo {
	records := ParseRecords(output, TodoFields)
	todos := make([]Todo, 0, len(records))
	for _, r := range records {
		todos = append(todos, Todo{
			ID:       r.Get("id"),
			Title:    r.Get("title"),
			Status:   r.Get("status"),
			Notes:    r.Get("notes"),
			DueISO:   r.Get("dueISO"),
			StartISO: r.Get("startISO"),
		})
	}
	return todos
}
