package model

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the optional urgency marker typed at the end of an input.
type Priority string

// Priority constants. PriorityNone means the input carried no marker.
const (
	PriorityNone Priority = ""
	PriorityLow  Priority = "low"
	PriorityMid  Priority = "mid"
	PriorityHigh Priority = "high"
)

// ParsePriority converts a marker into a Priority, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityNone, nil
	case "low":
		return PriorityLow, nil
	case "mid":
		return PriorityMid, nil
	case "high":
		return PriorityHigh, nil
	default:
		return PriorityNone, fmt.Errorf("invalid priority %q", s)
	}
}

// DateLayout is the ISO calendar date format used for due dates.
const DateLayout = "2006-01-02"

// Task is a captured task. Text has the directives stripped; RawText is the
// input exactly as typed.
type Task struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DueDate      *time.Time
	TaskGroupID  *string
	ID           string
	FolderID     string
	Text         string
	RawText      string
	Priority     Priority
	TaskType     TaskType
	Source       ClassificationSource
	Entities     []string
	CategoryPath []string
	Order        int
	Completed    bool
	Archived     bool
}

// DueDateString renders the due date as YYYY-MM-DD, or "" when unset.
func (t Task) DueDateString() string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.Format(DateLayout)
}
