// Package dto holds the wire-level request bodies. Dates travel as ISO-8601
// strings and are parsed at the HTTP boundary; pointer fields on the update
// request distinguish "absent" from "present".
package dto

import "time"

type CreateTaskRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	DueDate            string   `json:"dueDate"`
	Priority           string   `json:"priority"`
	IsRecurring        bool     `json:"isRecurring"`
	RecurrencePattern  string   `json:"recurrencePattern"`
	RecurrenceInterval int      `json:"recurrenceInterval"`
	RecurrenceEndDate  string   `json:"recurrenceEndDate"`
	ParentTaskID       string   `json:"parentTaskId"`
	Tags               []string `json:"tags"`
}

type UpdateTaskRequest struct {
	Title              *string   `json:"title"`
	Description        *string   `json:"description"`
	DueDate            *string   `json:"dueDate"`
	Priority           *string   `json:"priority"`
	Status             *string   `json:"status"`
	IsRecurring        *bool     `json:"isRecurring"`
	RecurrencePattern  *string   `json:"recurrencePattern"`
	RecurrenceInterval *int      `json:"recurrenceInterval"`
	RecurrenceEndDate  *string   `json:"recurrenceEndDate"` // "" clears the bound
	Tags               *[]string `json:"tags"`
}

type LifecycleRequest struct {
	Action     string `json:"action"`
	NewDueDate string `json:"newDueDate"`
	Notes      string `json:"notes"`
}

// ParseDate accepts RFC 3339 date-times and bare dates.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(time.DateOnly, s, time.Local)
}
