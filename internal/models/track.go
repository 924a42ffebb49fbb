package models

import "time"

// Track is one imported audio asset. The binary payload is never stored on
// the record; it lives in the blob store under a key equal to Track.ID.
type Track struct {
	ID               string            `json:"id" yaml:"id"`
	Title            string            `json:"title" yaml:"title"`
	OriginalFilename string            `json:"original_filename" yaml:"original_filename"`
	Duration         float64           `json:"duration" yaml:"duration"`
	SizeBytes        int64             `json:"size_bytes" yaml:"size_bytes"`
	CreatedAt        time.Time         `json:"created_at" yaml:"created_at"`
	FolderID         string            `json:"folder_id,omitempty" yaml:"folder_id,omitempty"`
	Automation       []AutomationPoint `json:"automation,omitempty" yaml:"automation,omitempty"`
	Markers          []Marker          `json:"markers,omitempty" yaml:"markers,omitempty"`
}

// InTrash reports whether the track currently lives under the trash root.
func (t *Track) InTrash() bool {
	return t != nil && t.FolderID == TrashFolderID
}

// Clone returns a deep copy safe to hand to callers.
func (t *Track) Clone() Track {
	out := *t
	if t.Automation != nil {
		out.Automation = append([]AutomationPoint(nil), t.Automation...)
	}
	if t.Markers != nil {
		out.Markers = append([]Marker(nil), t.Markers...)
	}
	return out
}
