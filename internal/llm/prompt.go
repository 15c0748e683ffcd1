package llm

import (
	"fmt"
	"strings"
)

// NoMatchAnswer is the answer the prompt reserves for tasks unrelated to
// every folder.
const NoMatchAnswer = "General"

// BuildPrompt renders the Spanish classification prompt for a task.
func BuildPrompt(req TaskRequest) string {
	descriptions := make([]string, 0, len(req.Categories))
	names := make([]string, 0, len(req.Categories))
	for _, c := range req.Categories {
		var b strings.Builder
		b.WriteString("## ")
		b.WriteString(c.Name)
		if c.ContextHint != "" {
			b.WriteString("\nContexto: ")
			b.WriteString(c.ContextHint)
		}
		if len(c.Keywords) > 0 {
			b.WriteString("\nPalabras clave: ")
			b.WriteString(strings.Join(c.Keywords, ", "))
		}
		descriptions = append(descriptions, b.String())
		names = append(names, c.Name)
	}

	return fmt.Sprintf(`Eres un clasificador de tareas. Tu trabajo es asignar cada tarea a la carpeta más apropiada.

CARPETAS DISPONIBLES:
%s

TAREA A CLASIFICAR: "%s"

INSTRUCCIONES:
- Analiza el contexto y palabras clave de cada carpeta
- Elige la carpeta que mejor se relacione con la tarea
- DEBES elegir una de estas carpetas: %s
- Responde ÚNICAMENTE con el nombre exacto de la carpeta, sin explicaciones
- Solo responde "%s" si la tarea no tiene NINGUNA relación con ninguna carpeta`,
		strings.Join(descriptions, "\n\n"), req.TaskText, strings.Join(names, ", "), NoMatchAnswer)
}

// cleanAnswer strips the wrapping models sometimes add around a bare name:
// code fences, quotes and a trailing period.
func cleanAnswer(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = content[:i]
	}
	content = strings.Trim(content, "\"'`*«»“” ")
	content = strings.TrimSuffix(content, ".")
	return strings.TrimSpace(content)
}
