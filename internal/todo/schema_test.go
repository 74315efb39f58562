package todo

import (
	"strings"
	"testing"
)

func TestCheckFile(t *testing.T) {
	valid := `[
  {"id": 1, "title": "Buy milk", "description": null, "status": "pending", "priority": "medium", "due_date": null, "created_at": "2025-11-30T09:15:02"},
  {"id": 2, "title": "Pay bills", "description": "power", "status": "completed", "priority": "high", "due_date": "2025-12-15", "created_at": "2025-11-30T09:16:00"}
]`

	tests := []struct {
		name      string
		data      string
		wantValid bool
		wantTasks int
		wantIn    string
	}{
		{name: "valid", data: valid, wantValid: true, wantTasks: 2},
		{name: "empty file", data: "", wantValid: false, wantTasks: -1, wantIn: "parse task file"},
		{name: "empty array", data: "[]", wantValid: true, wantTasks: 0},
		{name: "syntax error", data: `[{"id": 1,`, wantValid: false, wantTasks: -1, wantIn: "parse task file"},
		{
			name:      "bad status",
			data:      `[{"id": 1, "title": "x", "description": null, "status": "done", "priority": "low", "due_date": null, "created_at": "2025-11-30T09:15:02"}]`,
			wantValid: false,
			wantTasks: 1,
			wantIn:    "[0].status",
		},
		{
			name:      "bad due date",
			data:      `[{"id": 1, "title": "x", "description": null, "status": "pending", "priority": "low", "due_date": "2025-13-01", "created_at": "2025-11-30T09:15:02"}]`,
			wantValid: false,
			wantTasks: 1,
			wantIn:    "[0].due_date",
		},
		{
			name:      "missing key",
			data:      `[{"id": 1, "title": "x", "status": "pending", "priority": "low", "due_date": null, "created_at": "2025-11-30T09:15:02"}]`,
			wantValid: false,
			wantTasks: 1,
		},
		{
			name: "duplicate ids",
			data: `[
  {"id": 4, "title": "a", "description": null, "status": "pending", "priority": "low", "due_date": null, "created_at": "2025-11-30T09:15:02"},
  {"id": 4, "title": "b", "description": null, "status": "pending", "priority": "low", "due_date": null, "created_at": "2025-11-30T09:15:02"}
]`,
			wantValid: false,
			wantTasks: 2,
			wantIn:    "duplicate id 4",
		},
		{name: "object instead of array", data: `{"tasks": []}`, wantValid: false, wantTasks: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckFile([]byte(tt.data))
			if result.Valid != tt.wantValid {
				t.Errorf("Valid: got %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if result.Tasks != tt.wantTasks {
				t.Errorf("Tasks: got %d, want %d", result.Tasks, tt.wantTasks)
			}
			if tt.wantIn != "" {
				found := false
				for _, err := range result.Errors {
					if strings.Contains(err.Error(), tt.wantIn) {
						found = true
					}
				}
				if !found {
					t.Errorf("expected an error containing %q, got %v", tt.wantIn, result.Errors)
				}
			}
		})
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/0/title", "[0].title"},
		{"#/3/due_date", "[3].due_date"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
		}
	}
}
