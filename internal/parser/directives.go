package parser

import (
	"regexp"
	"strings"

	"github.com/Veraticus/tareas/internal/model"
)

var trailingPriority = regexp.MustCompile(`(?i)\s+(low|mid|high)$`)

// Directives are the inline markers a user may type after the task text.
type Directives struct {
	Text      string
	GroupName string
	Priority  model.Priority
}

// ExtractDirectives strips a trailing priority marker and a "> Group" tail
// from the input:
//
//	"Comprar leche > Compras high" => {"Comprar leche", "Compras", high}
//	"Llamar al banco mid"          => {"Llamar al banco", "", mid}
//
// The "<>" introduction delimiter is not a group marker.
func ExtractDirectives(input string) Directives {
	text := strings.TrimSpace(input)
	var d Directives

	if loc := trailingPriority.FindStringSubmatchIndex(text); loc != nil {
		d.Priority = model.Priority(strings.ToLower(text[loc[2]:loc[3]]))
		text = strings.TrimSpace(text[:loc[0]])
	}

	if idx := groupMarker(text); idx >= 0 {
		d.GroupName = strings.TrimSpace(text[idx+1:])
		text = strings.TrimSpace(text[:idx])
	}

	d.Text = text
	return d
}

// groupMarker returns the index of the first '>' that starts a non-empty
// group name and is not part of "<>", or -1.
func groupMarker(text string) int {
	for i := 0; i < len(text); i++ {
		if text[i] != '>' {
			continue
		}
		if i > 0 && text[i-1] == '<' {
			continue
		}
		if strings.TrimSpace(text[i+1:]) == "" {
			continue
		}
		return i
	}
	return -1
}
