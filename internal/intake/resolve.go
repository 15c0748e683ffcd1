package intake

import (
	"strings"

	"github.com/Veraticus/tareas/internal/llm"
	"github.com/Veraticus/tareas/internal/model"
)

// ResolveCategoryName maps a classifier answer to a folder. The no-match
// sentinel and empty answers never resolve. An exact case-insensitive name
// match across all folders wins before any substring match in either
// direction is tried; ties go to the earlier folder.
func ResolveCategoryName(name string, folders []model.Folder) (model.Folder, bool) {
	answer := strings.ToLower(strings.TrimSpace(name))
	if answer == "" || answer == strings.ToLower(llm.NoMatchAnswer) {
		return model.Folder{}, false
	}

	for _, f := range folders {
		if strings.ToLower(strings.TrimSpace(f.Name)) == answer {
			return f, true
		}
	}

	for _, f := range folders {
		folderName := strings.ToLower(strings.TrimSpace(f.Name))
		if folderName == "" {
			continue
		}
		if strings.Contains(folderName, answer) || strings.Contains(answer, folderName) {
			return f, true
		}
	}

	return model.Folder{}, false
}
