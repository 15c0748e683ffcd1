package model

// TaskType is the kind of action a task describes.
type TaskType string

// Task type constants.
const (
	TaskTypeEmail    TaskType = "email"
	TaskTypeIntro    TaskType = "intro"
	TaskTypeDoc      TaskType = "doc"
	TaskTypeResearch TaskType = "research"
	TaskTypeCall     TaskType = "call"
	TaskTypeMeeting  TaskType = "meeting"
	TaskTypeReview   TaskType = "review"
	TaskTypeOther    TaskType = "other"
)

var taskTypeLabels = map[TaskType]string{
	TaskTypeEmail:    "Correo",
	TaskTypeIntro:    "Intro",
	TaskTypeDoc:      "Documento",
	TaskTypeResearch: "Investigar",
	TaskTypeCall:     "Llamada",
	TaskTypeMeeting:  "Reunión",
	TaskTypeReview:   "Revisar",
	TaskTypeOther:    "Otro",
}

// Label returns the Spanish display label for the task type.
func (t TaskType) Label() string {
	if label, ok := taskTypeLabels[t]; ok {
		return label
	}
	return taskTypeLabels[TaskTypeOther]
}

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	_, ok := taskTypeLabels[t]
	return ok
}

// SuggestionKind identifies which detected field a suggestion carries.
type SuggestionKind string

// Suggestion kinds.
const (
	SuggestionCategory SuggestionKind = "category"
	SuggestionEntity   SuggestionKind = "entity"
	SuggestionTaskType SuggestionKind = "taskType"
	SuggestionDate     SuggestionKind = "date"
)

// Suggestion is a detected but unconfirmed field offered to the user as a chip.
type Suggestion struct {
	Kind       SuggestionKind
	Value      string
	Label      string
	Confidence float64
}

// Key identifies a suggestion across re-parses.
func (s Suggestion) Key() SuggestionKey {
	return SuggestionKey{Kind: s.Kind, Value: s.Value}
}

// SuggestionKey is the identity of a suggestion: two chips with the same kind
// and value are the same chip.
type SuggestionKey struct {
	Kind  SuggestionKind
	Value string
}
