package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/tareas/internal/model"
)

func TestResolveCategoryName(t *testing.T) {
	folders := []model.Folder{
		{ID: "1", Name: "Trabajo Antai"},
		{ID: "2", Name: "Casa"},
		{ID: "3", Name: "Antai"},
		{ID: "4", Name: "General Electric"},
	}

	tests := []struct {
		name   string
		answer string
		wantID string
	}{
		{name: "exact", answer: "Casa", wantID: "2"},
		{name: "exact ignores case and space", answer: "  cASA\n", wantID: "2"},
		{name: "exact beats earlier substring", answer: "antai", wantID: "3"},
		{name: "answer contains folder name", answer: "La carpeta Casa", wantID: "2"},
		{name: "folder name contains answer", answer: "Trabajo", wantID: "1"},
		{name: "sentinel never resolves", answer: "General", wantID: ""},
		{name: "sentinel ignores case", answer: "general", wantID: ""},
		{name: "empty", answer: "", wantID: ""},
		{name: "blank", answer: "   ", wantID: ""},
		{name: "no match", answer: "Viajes", wantID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folder, ok := ResolveCategoryName(tt.answer, folders)
			if tt.wantID == "" {
				assert.False(t, ok)
				assert.Empty(t, folder.ID)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.wantID, folder.ID)
		})
	}
}

func TestResolveCategoryName_NoFolders(t *testing.T) {
	_, ok := ResolveCategoryName("Casa", nil)
	assert.False(t, ok)
}
