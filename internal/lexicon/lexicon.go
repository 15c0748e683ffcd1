// Package lexicon holds the static tables the rule-based parser matches against.
//
// Every table is an ordered slice. Iteration order is significant: the
// category detector is first-match over table order, so reordering entries
// changes parse results.
package lexicon

import (
	"github.com/Veraticus/tareas/internal/model"
)

// Entry maps a canonical name to its lowercase trigger phrases.
type Entry struct {
	Name     string
	Triggers []string
}

// TaskTypePattern maps a task type to the regular expressions that select it.
type TaskTypePattern struct {
	Type     model.TaskType
	Patterns []string
}

// Lexicon bundles every table the parser needs.
type Lexicon struct {
	Categories    []Entry
	SubCategories []Entry
	TaskTypes     []TaskTypePattern
	ActionVerbs   []string
	KnownNames    []string
	Stopwords     []string
}

// Default returns the built-in Spanish lexicon.
func Default() Lexicon {
	return Lexicon{
		Categories:    defaultCategories(),
		SubCategories: defaultSubCategories(),
		TaskTypes:     defaultTaskTypes(),
		ActionVerbs:   defaultActionVerbs(),
		KnownNames:    defaultKnownNames(),
		Stopwords:     defaultStopwords(),
	}
}

// SkipWords returns the lowercase words the entity detector must never report:
// the stopwords plus every name and trigger of both category tables.
func (l Lexicon) SkipWords() map[string]struct{} {
	skip := make(map[string]struct{}, len(l.Stopwords)+4*len(l.Categories))
	for _, w := range l.Stopwords {
		skip[w] = struct{}{}
	}
	for _, table := range [][]Entry{l.Categories, l.SubCategories} {
		for _, e := range table {
			skip[lower(e.Name)] = struct{}{}
			for _, t := range e.Triggers {
				skip[t] = struct{}{}
			}
		}
	}
	return skip
}
