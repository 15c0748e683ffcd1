// Package capture reconciles parser suggestions with the chips a user has
// accepted or dismissed while typing, and debounces re-parsing.
package capture

import (
	"time"

	"github.com/Veraticus/tareas/internal/model"
	"github.com/Veraticus/tareas/internal/parser"
)

// Session tracks the chips of one input session. The zero value is not ready
// for use; call NewSession.
type Session struct {
	dismissed map[model.SuggestionKey]struct{}
	applied   []model.Suggestion
	pending   []model.Suggestion
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{dismissed: make(map[model.SuggestionKey]struct{})}
}

// Refresh replaces the pending chips with the latest suggestions, minus
// anything already applied or dismissed.
func (s *Session) Refresh(result parser.Result) {
	pending := make([]model.Suggestion, 0, len(result.Suggestions))
	for _, sug := range result.Suggestions {
		key := sug.Key()
		if _, ok := s.dismissed[key]; ok {
			continue
		}
		if indexOf(s.applied, key) >= 0 || indexOf(pending, key) >= 0 {
			continue
		}
		pending = append(pending, sug)
	}
	s.pending = pending
}

// Accept moves a chip to the applied set, where it survives later refreshes.
// Accepting a dismissed chip un-dismisses it.
func (s *Session) Accept(sug model.Suggestion) {
	key := sug.Key()
	delete(s.dismissed, key)
	s.pending = without(s.pending, key)
	if indexOf(s.applied, key) < 0 {
		s.applied = append(s.applied, sug)
	}
}

// Dismiss drops a chip and keeps it out of every later refresh of this
// session.
func (s *Session) Dismiss(sug model.Suggestion) {
	key := sug.Key()
	s.dismissed[key] = struct{}{}
	s.pending = without(s.pending, key)
	s.applied = without(s.applied, key)
}

// Remove drops an applied chip. Unlike Dismiss, the parser may suggest it
// again.
func (s *Session) Remove(sug model.Suggestion) {
	s.applied = without(s.applied, sug.Key())
}

// Applied returns a copy of the applied chips in acceptance order.
func (s *Session) Applied() []model.Suggestion {
	return append([]model.Suggestion(nil), s.applied...)
}

// Pending returns a copy of the pending chips in suggestion order.
func (s *Session) Pending() []model.Suggestion {
	return append([]model.Suggestion(nil), s.pending...)
}

// Final is the chip set used on submit: applied chips first, then pending
// ones, without duplicates.
func (s *Session) Final() []model.Suggestion {
	final := make([]model.Suggestion, 0, len(s.applied)+len(s.pending))
	for _, list := range [][]model.Suggestion{s.applied, s.pending} {
		for _, sug := range list {
			if indexOf(final, sug.Key()) < 0 {
				final = append(final, sug)
			}
		}
	}
	return final
}

// Reset forgets every chip, including dismissals.
func (s *Session) Reset() {
	s.applied = nil
	s.pending = nil
	s.dismissed = make(map[model.SuggestionKey]struct{})
}

func indexOf(list []model.Suggestion, key model.SuggestionKey) int {
	for i, sug := range list {
		if sug.Key() == key {
			return i
		}
	}
	return -1
}

func without(list []model.Suggestion, key model.SuggestionKey) []model.Suggestion {
	out := list[:0:0]
	for _, sug := range list {
		if sug.Key() != key {
			out = append(out, sug)
		}
	}
	return out
}

// Attributes are the task fields carried by a chip set.
type Attributes struct {
	DueDate      *time.Time
	TaskType     model.TaskType
	CategoryPath []string
	Entities     []string
}

// Collect turns chips into task attributes. Category chips form the path in
// chip order; the first task-type and date chips win. Date chips that do not
// parse as YYYY-MM-DD are ignored.
func Collect(chips []model.Suggestion, loc *time.Location) Attributes {
	if loc == nil {
		loc = time.Local
	}
	attrs := Attributes{
		TaskType:     model.TaskTypeOther,
		CategoryPath: []string{},
		Entities:     []string{},
	}
	typeSet := false
	for _, chip := range chips {
		switch chip.Kind {
		case model.SuggestionCategory:
			attrs.CategoryPath = append(attrs.CategoryPath, chip.Value)
		case model.SuggestionEntity:
			attrs.Entities = append(attrs.Entities, chip.Value)
		case model.SuggestionTaskType:
			if !typeSet && model.TaskType(chip.Value).Valid() {
				attrs.TaskType = model.TaskType(chip.Value)
				typeSet = true
			}
		case model.SuggestionDate:
			if attrs.DueDate != nil {
				continue
			}
			if d, err := time.ParseInLocation(model.DateLayout, chip.Value, loc); err == nil {
				attrs.DueDate = &d
			}
		}
	}
	return attrs
}
