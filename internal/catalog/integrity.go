package catalog

import (
	"time"

	"cuebank/internal/models"
)

// ensureTrashFolder (re)creates the reserved trash root and pins its
// identity: whatever a stale snapshot says, the sentinel keeps its name and
// stays at the top level.
func (c *Catalog) ensureTrashFolder() bool {
	f, ok := c.folders[models.TrashFolderID]
	if !ok {
		c.folders[models.TrashFolderID] = models.NewTrashFolder(time.Now().UTC())
		c.logger.Info("trash folder created")
		return true
	}
	changed := false
	if f.Name != models.TrashFolderName {
		f.Name = models.TrashFolderName
		changed = true
	}
	if f.ParentID != "" || f.OriginalParentID != "" || f.IsProject {
		f.ParentID = ""
		f.OriginalParentID = ""
		f.IsProject = false
		changed = true
	}
	if changed {
		c.logger.Warn("trash folder record repaired")
	}
	return changed
}

// repairFolderReferences restores the forest invariant: dangling parents,
// parented projects, and parent cycles are all resolved by reparenting the
// offender to the root.
func (c *Catalog) repairFolderReferences() bool {
	changed := false
	for id, f := range c.folders {
		if f.ID == "" {
			f.ID = id
			changed = true
		}
		if f.IsTrash() {
			continue
		}
		if f.ParentID != "" && f.ParentID != models.TrashFolderID {
			if _, ok := c.folders[f.ParentID]; !ok {
				c.logger.Warn("folder parent missing, moving to root", "folder_id", id, "parent_id", f.ParentID)
				f.ParentID = ""
				changed = true
			}
		}
		if f.IsProject && f.ParentID != "" && f.ParentID != models.TrashFolderID {
			c.logger.Warn("project had a parent, moving to root", "folder_id", id)
			f.ParentID = ""
			changed = true
		}
	}
	for id := range c.folders {
		if c.breakParentCycle(id) {
			changed = true
		}
	}
	return changed
}

// breakParentCycle walks the parent chain from id and cuts it at id when the
// walk returns to its start.
func (c *Catalog) breakParentCycle(id string) bool {
	seen := map[string]bool{id: true}
	cur := c.folders[id]
	for cur != nil && cur.ParentID != "" && cur.ParentID != models.TrashFolderID {
		next := c.folders[cur.ParentID]
		if next == nil {
			return false
		}
		if seen[next.ID] {
			c.logger.Warn("folder parent cycle detected, moving to root", "folder_id", id)
			c.folders[id].ParentID = ""
			return true
		}
		seen[next.ID] = true
		cur = next
	}
	return false
}

// repairTrackReferences moves tracks whose folder no longer exists back to
// the root.
func (c *Catalog) repairTrackReferences() bool {
	changed := false
	for id, t := range c.tracks {
		if t.ID == "" {
			t.ID = id
			changed = true
		}
		if !c.validFolderRef(t.FolderID) {
			c.logger.Warn("track folder missing, moving to root", "track_id", id, "folder_id", t.FolderID)
			t.FolderID = ""
			changed = true
		}
	}
	return changed
}
