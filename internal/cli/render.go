package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/tareas/internal/model"
	"github.com/Veraticus/tareas/internal/parser"
	"github.com/Veraticus/tareas/internal/pathtree"
)

// FormatConfidence renders a confidence in [0,1] as a whole percentage.
func FormatConfidence(c float64) string {
	return fmt.Sprintf("%d%%", int(c*100+0.5))
}

// FormatSource describes how a task's folder was chosen.
func FormatSource(source model.ClassificationSource) string {
	switch source {
	case model.SourceAI:
		return RobotIcon + " clasificada por IA"
	case model.SourceQueued:
		return QueueIcon + " sin conexión, pendiente de clasificar"
	case model.SourceFallbackFirst:
		return FolderIcon + " primera carpeta"
	case model.SourceRule:
		return "regla"
	default:
		return string(source)
	}
}

// RenderChip renders one suggestion.
func RenderChip(s model.Suggestion, applied bool) string {
	label := s.Label
	if label == "" {
		label = s.Value
	}
	if applied {
		return AppliedChipStyle.Render(label)
	}
	return ChipStyle.Render(label + " " + FormatConfidence(s.Confidence))
}

// RenderChips renders applied chips followed by pending ones on one row.
func RenderChips(applied, pending []model.Suggestion) string {
	chips := make([]string, 0, len(applied)+len(pending))
	for _, s := range applied {
		chips = append(chips, RenderChip(s, true))
	}
	for _, s := range pending {
		chips = append(chips, RenderChip(s, false))
	}
	if len(chips) == 0 {
		return SubtleStyle.Render("sin sugerencias")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

// RenderParseResult renders a parse as a field table.
func RenderParseResult(r parser.Result) string {
	rows := [][3]string{
		{"Ruta", strings.Join(r.CategoryPath, " / "), FormatConfidence(r.PathConfidence)},
		{"Tipo", r.TaskType.Label(), FormatConfidence(r.TaskTypeConfidence)},
		{"Personas", strings.Join(r.Entities, ", "), FormatConfidence(r.EntityConfidence)},
		{"Fecha", r.DueDateString(), FormatConfidence(r.DateConfidence)},
	}
	if r.TaskTypeConfidence == 0 {
		rows[1][1] = ""
	}

	widths := [3]int{len("Campo"), len("Valor"), len("Confianza")}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	header := fmt.Sprintf("%-*s  %-*s  %s", widths[0], "Campo", widths[1], "Valor", "Confianza")
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")
	for _, row := range rows {
		value := row[1]
		if value == "" {
			value = "-"
		}
		pad := strings.Repeat(" ", widths[1]-lipgloss.Width(value))
		fmt.Fprintf(&b, "%-*s  %s%s  %s\n", widths[0], row[0], value, pad, row[2])
	}
	fmt.Fprintf(&b, "\n%s %s", BoldStyle.Render("Confianza global:"), FormatConfidence(r.OverallConfidence))
	return b.String()
}

// RenderTree renders the path hierarchy with per-node counts. The count is
// the number of tasks at exactly that path.
func RenderTree(tree *pathtree.Tree) string {
	var b strings.Builder
	if len(tree.Unassigned) > 0 {
		fmt.Fprintf(&b, "%s (%d)\n", SubtleStyle.Render(pathtree.UnassignedName), len(tree.Unassigned))
	}
	var walk func(nodes []*pathtree.Node, depth int)
	walk = func(nodes []*pathtree.Node, depth int) {
		for _, n := range nodes {
			fmt.Fprintf(&b, "%s%s (%d)\n", strings.Repeat("  ", depth), n.Name, n.Count())
			walk(n.Children, depth+1)
		}
	}
	walk(tree.Roots, 0)
	return strings.TrimRight(b.String(), "\n")
}

// RenderTask renders one task as a single line.
func RenderTask(t model.Task) string {
	var parts []string
	if t.Completed {
		parts = append(parts, SuccessIcon)
	} else {
		parts = append(parts, "•")
	}
	parts = append(parts, t.Text)
	if t.Priority != model.PriorityNone {
		parts = append(parts, WarningStyle.Render("["+string(t.Priority)+"]"))
	}
	if t.TaskType != "" && t.TaskType != model.TaskTypeOther {
		parts = append(parts, InfoStyle.Render(t.TaskType.Label()))
	}
	if d := t.DueDateString(); d != "" {
		parts = append(parts, SubtleStyle.Render(d))
	}
	return strings.Join(parts, " ")
}
