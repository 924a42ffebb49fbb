package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cuebank/internal/models"
)

func writeJSON(payload any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func formatTrackLine(t models.Track) string {
	location := "/"
	if t.FolderID != "" {
		location = t.FolderID
	}
	return fmt.Sprintf("%s  %-30q  %7.1fs  %s", t.ID, t.Title, t.Duration, location)
}

func formatFolderLine(f models.Folder) string {
	kind := "folder"
	if f.IsProject {
		kind = "project"
	}
	if f.IsTrash() {
		kind = "trash"
	}
	location := "/"
	if f.ParentID != "" {
		location = f.ParentID
	}
	return fmt.Sprintf("%s  %-30q  %-7s  %s", f.ID, f.Name, kind, location)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
