// Package model defines the core domain models used throughout the application.
package model

import "time"

// ClassificationSource records which branch of the intake policy chose a task's folder.
type ClassificationSource string

// Classification source constants.
const (
	SourceRule          ClassificationSource = "rule"
	SourceAI            ClassificationSource = "ai"
	SourceFallbackFirst ClassificationSource = "fallback-first"
	SourceQueued        ClassificationSource = "queued"
)

// ClassificationOutcome is computed once per task creation and never mutated.
type ClassificationOutcome struct {
	DestinationCategoryID string
	Source                ClassificationSource
}

// PendingClassification is a task whose folder was assigned offline and still
// awaits a classifier decision.
type PendingClassification struct {
	CreatedAt time.Time
	ID        string
	TaskID    string
	RawText   string
}
