package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/tareas/internal/cli"
	"github.com/Veraticus/tareas/internal/model"
)

var focusedChipStyle = cli.ChipStyle.
	Bold(true).
	Foreground(cli.WarningColor).
	BorderForeground(cli.WarningColor)

// View renders the capture screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Nueva tarea"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderChips())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(cli.FormatError(m.err.Error()))
	case m.status != "":
		b.WriteString(cli.SubtleStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

func (m Model) renderChips() string {
	applied := m.session.Applied()
	pending := m.session.Pending()
	if len(applied)+len(pending) == 0 {
		return cli.SubtleStyle.Render("sin sugerencias")
	}

	rendered := make([]string, 0, len(applied)+len(pending))
	for i, chip := range append(applied, pending...) {
		isApplied := i < len(applied)
		if i == m.cursor {
			rendered = append(rendered, focusedChipStyle.Render(chipText(chip, isApplied)))
			continue
		}
		rendered = append(rendered, cli.RenderChip(chip, isApplied))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func chipText(chip model.Suggestion, applied bool) string {
	label := chip.Label
	if label == "" {
		label = chip.Value
	}
	if applied {
		return cli.SuccessIcon + " " + label
	}
	return label + " " + cli.FormatConfidence(chip.Confidence)
}
