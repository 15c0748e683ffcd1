package model

import "time"

// FolderColors is the palette assigned round-robin to new folders.
var FolderColors = []string{
	"#22c55e", // green
	"#3b82f6", // blue
	"#eab308", // yellow
	"#ef4444", // red
	"#8b5cf6", // violet
	"#06b6d4", // cyan
	"#f97316", // orange
	"#ec4899", // pink
}

// Folder is a user-defined destination category for tasks. ContextHint and
// Keywords are prompt material for the AI classifier; they are never matched
// locally.
type Folder struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	Name        string
	Color       string
	ContextHint string
	Keywords    []string
	Order       int
}

// TaskGroup is a named bucket of tasks inside a folder.
type TaskGroup struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	FolderID  string
	Name      string
	Order     int
	Collapsed bool
}

// FirstFolder returns the folder in the lowest display position. The slice is
// not required to be sorted.
func FirstFolder(folders []Folder) (Folder, bool) {
	if len(folders) == 0 {
		return Folder{}, false
	}
	first := folders[0]
	for _, f := range folders[1:] {
		if f.Order < first.Order {
			first = f
		}
	}
	return first, true
}
