// Package todo defines task records, their field rules, and the tagged errors
// returned when a record or a lookup is rejected.
//
// The task file (tasks.json) is a JSON array of task records. Every record
// carries exactly seven keys:
//
//	[
//	  {
//	    "id": 1,
//	    "title": "Buy milk",
//	    "description": null,
//	    "status": "pending",
//	    "priority": "medium",
//	    "due_date": "2025-12-15",
//	    "created_at": "2025-11-30T09:15:02"
//	  }
//	]
//
// # Field Rules
//
//   - title: required, not whitespace-only, at most 200 characters
//   - description: null or at most 1000 characters
//   - status: "pending" or "completed"
//   - priority: "low", "medium" or "high"
//   - due_date: null or a calendar-correct YYYY-MM-DD date
//   - created_at: UTC timestamp without zone, set once at creation
//
// # Validation
//
// The predicates in validate.go are total and never fail; NewTask.Validate and
// Changes.Validate turn them into *ValidationError values wrapping one of the
// Err* sentinels, so callers can match with errors.Is.
//
// CheckFile validates a raw task file against the embedded JSON Schema and
// reports duplicate IDs. It is used for diagnostics only; loading never
// rejects a file that parses.
package todo
