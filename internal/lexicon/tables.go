package lexicon

import (
	"strings"

	"github.com/Veraticus/tareas/internal/model"
)

func defaultCategories() []Entry {
	return []Entry{
		{Name: "Instachef", Triggers: []string{"instachef", "insta chef", "ic"}},
		{Name: "Omme", Triggers: []string{"omme"}},
		{Name: "Antai", Triggers: []string{"antai"}},
		{Name: "Antai General", Triggers: []string{"antai general"}},
		{Name: "Antai Admin", Triggers: []string{"antai admin", "admin antai"}},
		{Name: "Opportunity Circle", Triggers: []string{"opportunity circle", "opp circle", "oc"}},
		{Name: "EBISU", Triggers: []string{"ebisu"}},
		{Name: "Personal", Triggers: []string{"personal", "yo", "casa"}},
	}
}

func defaultSubCategories() []Entry {
	return []Entry{
		{Name: "Constitución", Triggers: []string{"constitución", "constitucion", "legal"}},
		{Name: "Documentación", Triggers: []string{"documentación", "documentacion", "docs", "doc"}},
		{Name: "Inversores", Triggers: []string{"inversores", "investors", "coinversores"}},
		{Name: "Recetas", Triggers: []string{"recetas", "recipes"}},
		{Name: "Marketing", Triggers: []string{"marketing", "mkt"}},
		{Name: "Producto", Triggers: []string{"producto", "product"}},
		{Name: "Tech", Triggers: []string{"tech", "desarrollo", "dev"}},
		{Name: "Finanzas", Triggers: []string{"finanzas", "finance", "contabilidad"}},
		{Name: "RRHH", Triggers: []string{"rrhh", "hr", "equipo", "team"}},
		{Name: "Operaciones", Triggers: []string{"operaciones", "ops"}},
	}
}

func defaultTaskTypes() []TaskTypePattern {
	return []TaskTypePattern{
		{Type: model.TaskTypeEmail, Patterns: []string{
			`(?i)\bcorreo\b`, `(?i)\bresponder\b`, `(?i)\bmail\b`,
			`(?i)\bemail\b`, `(?i)\benviar\b`, `(?i)\bcontestar\b`,
		}},
		{Type: model.TaskTypeIntro, Patterns: []string{
			`(?i)\bintro\b`, `(?i)\bpresentar\b`, `(?i)\bconectar\b`,
			`\b<>\b`, `(?i)\bintroducir\b`,
		}},
		{Type: model.TaskTypeCall, Patterns: []string{
			`(?i)\bllamar\b`, `(?i)\bllamada\b`, `(?i)\bcall\b`, `(?i)\bhablar con\b`,
		}},
		{Type: model.TaskTypeMeeting, Patterns: []string{
			`(?i)\breunión\b`, `(?i)\breunion\b`, `(?i)\bmeeting\b`, `(?i)\bjunta\b`,
		}},
		{Type: model.TaskTypeDoc, Patterns: []string{
			`(?i)\bdoc\b`, `(?i)\bdocumento\b`, `(?i)\bdocumentación\b`,
			`(?i)\bplan\b`, `(?i)\bescribir\b`, `(?i)\bredactar\b`,
		}},
		{Type: model.TaskTypeReview, Patterns: []string{
			`(?i)\brevisar\b`, `(?i)\breview\b`, `(?i)\bchequear\b`, `(?i)\bverificar\b`,
		}},
		{Type: model.TaskTypeResearch, Patterns: []string{
			`(?i)\binvestigar\b`, `(?i)\bresearch\b`, `(?i)\bbuscar\b`, `(?i)\blista\b`,
		}},
	}
}

func defaultActionVerbs() []string {
	return []string{
		"acabar", "terminar", "completar", "hacer", "crear", "preparar",
		"enviar", "responder", "llamar", "revisar", "actualizar", "subir",
		"bajar", "descargar", "compartir", "organizar", "programar", "agendar",
	}
}

func defaultKnownNames() []string {
	return []string{
		"alba", "marta", "carlos", "miguel", "david", "pablo", "jorge", "antonio",
		"jose", "francisco", "manuel", "juan", "pedro", "luis", "javier", "rafael",
		"fernando", "sergio", "daniel", "alejandro", "maria", "carmen", "ana", "laura",
		"cristina", "elena", "isabel", "patricia", "rosa", "lucia", "sara", "paula",
		"sofia", "andrea", "raquel", "silvia", "nuria", "eva", "beatriz", "ines",
	}
}

func defaultStopwords() []string {
	return []string{
		"de", "la", "el", "los", "las", "un", "una", "y", "o", "que", "en", "con",
		"para", "por", "al", "del", "se", "su", "es", "si", "no", "como", "más",
	}
}

func lower(s string) string {
	return strings.ToLower(s)
}
