// Package parser implements the rule-based extraction of structured task
// fields from free-form Spanish text.
//
// Every detector is a pure function of its input and the parser clock. A
// detection miss is a zero-confidence value, never an error.
package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Veraticus/tareas/internal/lexicon"
	"github.com/Veraticus/tareas/internal/model"
)

// Detection is a detected value with its heuristic confidence in [0,1].
type Detection[T any] struct {
	Value      T
	Confidence float64
}

// Result is the advisory output of one parse. It is derived fresh from the
// input every time and never stored as the source of truth.
type Result struct {
	DueDate            *time.Time
	TaskType           model.TaskType
	CategoryPath       []string
	Entities           []string
	Suggestions        []model.Suggestion
	PathConfidence     float64
	TaskTypeConfidence float64
	EntityConfidence   float64
	DateConfidence     float64
	OverallConfidence  float64
}

// DueDateString renders the detected due date as YYYY-MM-DD, or "".
func (r Result) DueDateString() string {
	if r.DueDate == nil {
		return ""
	}
	return r.DueDate.Format(model.DateLayout)
}

type trigger struct {
	boundary *regexp.Regexp
	phrase   string
}

type compiledEntry struct {
	name     string
	triggers []trigger
}

type compiledTaskType struct {
	taskType model.TaskType
	patterns []*regexp.Regexp
}

// Parser runs the field detectors over an input string.
type Parser struct {
	now           func() time.Time
	skip          map[string]struct{}
	knownNames    map[string]struct{}
	categories    []compiledEntry
	subCategories []compiledEntry
	taskTypes     []compiledTaskType
	actionVerbs   []string
	lex           lexicon.Lexicon
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the function used as "now" by the due-date detector.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// WithLexicon replaces the built-in lexicon.
func WithLexicon(lex lexicon.Lexicon) Option {
	return func(p *Parser) {
		p.lex = lex
	}
}

// New creates a parser, compiling every pattern of its lexicon.
func New(opts ...Option) (*Parser, error) {
	p := &Parser{
		now: time.Now,
		lex: lexicon.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	var err error
	if p.categories, err = compileEntries(p.lex.Categories); err != nil {
		return nil, fmt.Errorf("failed to compile categories: %w", err)
	}
	if p.subCategories, err = compileEntries(p.lex.SubCategories); err != nil {
		return nil, fmt.Errorf("failed to compile sub-categories: %w", err)
	}

	p.taskTypes = make([]compiledTaskType, 0, len(p.lex.TaskTypes))
	for _, tt := range p.lex.TaskTypes {
		compiled := compiledTaskType{taskType: tt.Type}
		for _, pattern := range tt.Patterns {
			re, compileErr := regexp.Compile(pattern)
			if compileErr != nil {
				return nil, fmt.Errorf("failed to compile pattern %q for %s: %w", pattern, tt.Type, compileErr)
			}
			compiled.patterns = append(compiled.patterns, re)
		}
		p.taskTypes = append(p.taskTypes, compiled)
	}

	p.actionVerbs = p.lex.ActionVerbs
	p.skip = p.lex.SkipWords()
	p.knownNames = make(map[string]struct{}, len(p.lex.KnownNames))
	for _, name := range p.lex.KnownNames {
		p.knownNames[strings.ToLower(name)] = struct{}{}
	}

	return p, nil
}

// MustNew is New for the built-in lexicon, whose patterns are known to compile.
func MustNew(opts ...Option) *Parser {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func compileEntries(entries []lexicon.Entry) ([]compiledEntry, error) {
	compiled := make([]compiledEntry, 0, len(entries))
	for _, e := range entries {
		ce := compiledEntry{name: e.Name}
		for _, phrase := range e.Triggers {
			phrase = strings.ToLower(phrase)
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("trigger %q of %s: %w", phrase, e.Name, err)
			}
			ce.triggers = append(ce.triggers, trigger{phrase: phrase, boundary: re})
		}
		compiled = append(compiled, ce)
	}
	return compiled, nil
}

// Parse runs every detector once over text and assembles the suggestion list
// in the order: path entries, entities, task type, due date.
func (p *Parser) Parse(text string) Result {
	path := p.BuildPath(text)
	taskType := p.DetectTaskType(text)
	entities := p.DetectEntities(text)
	due := p.DetectDueDate(text)

	suggestions := make([]model.Suggestion, 0, len(path.Value)+len(entities.Value)+2)
	for _, name := range path.Value {
		suggestions = append(suggestions, model.Suggestion{
			Kind:       model.SuggestionCategory,
			Value:      name,
			Label:      name,
			Confidence: path.Confidence,
		})
	}
	for _, entity := range entities.Value {
		suggestions = append(suggestions, model.Suggestion{
			Kind:       model.SuggestionEntity,
			Value:      entity,
			Label:      entity,
			Confidence: entities.Confidence,
		})
	}
	if taskType.Value != model.TaskTypeOther || taskType.Confidence > 0.5 {
		suggestions = append(suggestions, model.Suggestion{
			Kind:       model.SuggestionTaskType,
			Value:      string(taskType.Value),
			Label:      taskType.Value.Label(),
			Confidence: taskType.Confidence,
		})
	}
	if due.Value != nil {
		suggestions = append(suggestions, model.Suggestion{
			Kind:       model.SuggestionDate,
			Value:      due.Value.Format(model.DateLayout),
			Label:      dateLabel(*due.Value, p.today()),
			Confidence: due.Confidence,
		})
	}

	return Result{
		CategoryPath:       path.Value,
		PathConfidence:     path.Confidence,
		Entities:           entities.Value,
		EntityConfidence:   entities.Confidence,
		TaskType:           taskType.Value,
		TaskTypeConfidence: taskType.Confidence,
		DueDate:            due.Value,
		DateConfidence:     due.Confidence,
		OverallConfidence:  meanNonZero(path.Confidence, taskType.Confidence, entities.Confidence, due.Confidence),
		Suggestions:        suggestions,
	}
}

// meanNonZero averages the non-zero values, returning 0 when all are zero.
func meanNonZero(values ...float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
