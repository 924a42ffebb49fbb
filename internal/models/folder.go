package models

import "time"

// TrashFolderID is the reserved identifier of the trash root. The folder it
// names is created at catalog load and can never be renamed, reparented, or
// deleted.
const TrashFolderID = "trash"

// TrashFolderName is the display name of the trash root.
const TrashFolderName = "Trash"

// Folder groups tracks and other folders. The parent relation forms a forest
// rooted at the library root (empty ParentID). Projects are top-level named
// folders and always have an empty ParentID while active.
type Folder struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	IsProject bool      `json:"is_project,omitempty" yaml:"is_project,omitempty"`
	ParentID  string    `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`

	// OriginalParentID remembers the pre-delete parent while the folder sits
	// in trash, so recovery can put it back. Cleared on recovery. Tracks keep
	// no such memory and always recover to the root.
	OriginalParentID string `json:"original_parent_id,omitempty" yaml:"original_parent_id,omitempty"`
}

// IsTrash reports whether the folder is the trash root itself.
func (f *Folder) IsTrash() bool {
	return f != nil && f.ID == TrashFolderID
}

// InTrash reports whether the folder is directly parented under trash.
func (f *Folder) InTrash() bool {
	return f != nil && f.ParentID == TrashFolderID
}

// NewTrashFolder returns the reserved trash root record.
func NewTrashFolder(now time.Time) *Folder {
	return &Folder{ID: TrashFolderID, Name: TrashFolderName, CreatedAt: now}
}
