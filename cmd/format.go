package cmd

import (
	"fmt"
	"strings"

	"github.com/nibzard/todo-go/internal/todo"
)

const maxTitleColumn = 30

// formatTaskList renders tasks as a fixed-width table followed by a summary
// line.
func formatTaskList(tasks []todo.Task) string {
	if len(tasks) == 0 {
		return "No tasks found."
	}

	var b strings.Builder
	writeRow(&b, "ID", "Title", "Status", "Priority", "Due Date")
	b.WriteString(strings.Repeat("-", 75) + "\n")

	pending, completed := 0, 0
	for _, t := range tasks {
		due := "N/A"
		if t.DueDate != nil {
			due = *t.DueDate
		}
		writeRow(&b, fmt.Sprint(t.ID), truncate(t.Title, maxTitleColumn), string(t.Status), string(t.Priority), due)

		switch t.Status {
		case todo.StatusPending:
			pending++
		case todo.StatusCompleted:
			completed++
		}
	}

	b.WriteString("\n")
	if len(tasks) == 1 {
		b.WriteString("Total: 1 task")
	} else {
		fmt.Fprintf(&b, "Total: %d tasks (%d pending, %d completed)", len(tasks), pending, completed)
	}
	return b.String()
}

func writeRow(b *strings.Builder, id, title, status, priority, due string) {
	row := fmt.Sprintf("%-6s%-32s%-13s%-12s%s", id, title, status, priority, due)
	b.WriteString(strings.TrimRight(row, " ") + "\n")
}

// formatTask renders one task with optional fields only when set.
func formatTask(t todo.Task) string {
	lines := []string{
		fmt.Sprintf("ID: %d", t.ID),
		"Title: " + t.Title,
		"Status: " + string(t.Status),
		"Priority: " + string(t.Priority),
	}
	if t.Description != nil && *t.Description != "" {
		lines = append(lines, "Description: "+*t.Description)
	}
	if t.DueDate != nil && *t.DueDate != "" {
		lines = append(lines, "Due Date: "+*t.DueDate)
	}
	lines = append(lines, "Created: "+t.CreatedAt)
	return strings.Join(lines, "\n")
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
