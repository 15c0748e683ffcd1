package parser

import (
	"strings"

	"github.com/Veraticus/tareas/internal/model"
)

const (
	taskTypePatternConfidence = 0.8
	actionVerbConfidence      = 0.5
	defaultTypeConfidence     = 0.3
)

// DetectTaskType returns the type of the first pattern, in table order, that
// matches anywhere in the raw text. Without a pattern hit, an action verb
// yields "other" at 0.5; otherwise "other" at 0.3. The confidence is never 0.
func (p *Parser) DetectTaskType(text string) Detection[model.TaskType] {
	for _, tt := range p.taskTypes {
		for _, re := range tt.patterns {
			if re.MatchString(text) {
				return Detection[model.TaskType]{Value: tt.taskType, Confidence: taskTypePatternConfidence}
			}
		}
	}

	lower := strings.ToLower(text)
	for _, verb := range p.actionVerbs {
		if verb != "" && strings.Contains(lower, verb) {
			return Detection[model.TaskType]{Value: model.TaskTypeOther, Confidence: actionVerbConfidence}
		}
	}

	return Detection[model.TaskType]{Value: model.TaskTypeOther, Confidence: defaultTypeConfidence}
}
