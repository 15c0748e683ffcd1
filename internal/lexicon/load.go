package lexicon

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/tareas/internal/model"
)

// ErrInvalidLexicon is returned when an override file cannot be interpreted.
var ErrInvalidLexicon = errors.New("invalid lexicon")

// LoadFile reads a YAML override lexicon from path. See LoadYAML.
func LoadFile(path string) (Lexicon, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return Lexicon{}, fmt.Errorf("failed to open lexicon: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadYAML(f)
}

// LoadYAML reads a lexicon override. Sections present in the document replace
// the matching default table; absent sections keep the defaults. Mapping
// sections (categories, subcategories, task_types) are decoded node by node so
// their order in the file becomes the table order.
//
//	categories:
//	  Instachef: [instachef, insta chef]
//	task_types:
//	  email: ['(?i)\bcorreo\b']
//	known_names: [alba, marta]
func LoadYAML(r io.Reader) (Lexicon, error) {
	lex := Default()

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return lex, nil
		}
		return Lexicon{}, fmt.Errorf("%w: %v", ErrInvalidLexicon, err)
	}
	if len(doc.Content) == 0 {
		return lex, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Lexicon{}, fmt.Errorf("%w: top level must be a mapping", ErrInvalidLexicon)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]

		var err error
		switch key {
		case "categories":
			lex.Categories, err = decodeEntries(value)
		case "subcategories", "sub_categories":
			lex.SubCategories, err = decodeEntries(value)
		case "task_types":
			lex.TaskTypes, err = decodeTaskTypes(value)
		case "action_verbs":
			lex.ActionVerbs, err = decodeWords(value)
		case "known_names":
			lex.KnownNames, err = decodeWords(value)
		case "stopwords":
			lex.Stopwords, err = decodeWords(value)
		default:
			return Lexicon{}, fmt.Errorf("%w: unknown section %q (line %d)", ErrInvalidLexicon, key, root.Content[i].Line)
		}
		if err != nil {
			return Lexicon{}, fmt.Errorf("%w: section %q: %v", ErrInvalidLexicon, key, err)
		}
	}

	return lex, nil
}

func decodeEntries(node *yaml.Node) ([]Entry, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping at line %d", node.Line)
	}
	entries := make([]Entry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		triggers, err := decodeWords(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Name: node.Content[i].Value, Triggers: triggers})
	}
	return entries, nil
}

func decodeTaskTypes(node *yaml.Node) ([]TaskTypePattern, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping at line %d", node.Line)
	}
	patterns := make([]TaskTypePattern, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		tt := model.TaskType(node.Content[i].Value)
		if !tt.Valid() || tt == model.TaskTypeOther {
			return nil, fmt.Errorf("unknown task type %q at line %d", tt, node.Content[i].Line)
		}
		var list []string
		if err := node.Content[i+1].Decode(&list); err != nil {
			return nil, err
		}
		patterns = append(patterns, TaskTypePattern{Type: tt, Patterns: list})
	}
	return patterns, nil
}

// decodeWords decodes a sequence of strings, lowercasing each one because all
// trigger and word matching happens on lowercased text.
func decodeWords(node *yaml.Node) ([]string, error) {
	var list []string
	if err := node.Decode(&list); err != nil {
		return nil, err
	}
	for i, w := range list {
		list[i] = strings.ToLower(strings.TrimSpace(w))
	}
	return list, nil
}
