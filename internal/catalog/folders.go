package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"cuebank/internal/models"
)

// CreateFolder creates a folder under parentID (empty = root). Folder names
// are unique system-wide: a colliding name gets a " (n)" suffix with the
// smallest free n.
func (c *Catalog) CreateFolder(ctx context.Context, name, parentID string) (*models.Folder, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.createFolderLocked(ctx, name, parentID, false)
}

// CreateProject creates a top-level named project.
func (c *Catalog) CreateProject(ctx context.Context, name string) (*models.Folder, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.createFolderLocked(ctx, name, "", true)
}

func (c *Catalog) createFolderLocked(ctx context.Context, name, parentID string, isProject bool) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}
	if !c.validFolderRef(parentID) {
		return nil, fmt.Errorf("unknown parent folder %q", parentID)
	}

	folder := &models.Folder{
		ID:        uuid.NewString(),
		Name:      c.uniqueFolderName(name),
		CreatedAt: time.Now().UTC(),
		IsProject: isProject,
		ParentID:  parentID,
	}
	c.folders[folder.ID] = folder
	c.persistFolders(ctx)

	c.logger.Info("folder created", "folder_id", folder.ID, "name", folder.Name, "project", isProject)
	out := *folder
	return &out, nil
}

// RenameFolder overwrites a folder's name. False for unknown ids and for the
// trash sentinel, which can never be renamed.
func (c *Catalog) RenameFolder(ctx context.Context, id, name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	folder, ok := c.folders[id]
	if !ok || folder.IsTrash() {
		return false
	}
	folder.Name = name
	c.persistFolders(ctx)
	return true
}

// Folder returns a copy of one folder record.
func (c *Catalog) Folder(id string) (models.Folder, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	folder, ok := c.folders[id]
	if !ok {
		return models.Folder{}, false
	}
	return *folder, true
}

// Folders returns copies of every folder (the trash root included), ordered
// case-insensitively by name with ties broken by id.
func (c *Catalog) Folders() []models.Folder {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Folder, 0, len(c.folders))
	for _, folder := range c.folders {
		out = append(out, *folder)
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := c.collator.CompareString(out[i].Name, out[j].Name); cmp != 0 {
			return cmp < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// uniqueFolderName appends " (n)" with the smallest positive n that avoids a
// collision with any existing folder name.
func (c *Catalog) uniqueFolderName(name string) string {
	taken := make(map[string]bool, len(c.folders))
	for _, folder := range c.folders {
		taken[folder.Name] = true
	}
	if !taken[name] {
		return name
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if !taken[candidate] {
			return candidate
		}
	}
}
