package catalog

import (
	"context"
	"errors"
	"fmt"

	"cuebank/internal/models"
)

// PurgeResult reports what one trash purge removed.
type PurgeResult struct {
	TracksPurged  int `json:"tracks_purged"`
	FoldersPurged int `json:"folders_purged"`
	BlobFailures  int `json:"blob_failures"`
}

// SoftDeleteTrack moves a track into the trash. The track keeps no memory of
// its previous folder; recovery always restores it to the root.
func (c *Catalog) SoftDeleteTrack(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moveTrackLocked(ctx, id, models.TrashFolderID)
}

// SoftDeleteFolder moves a folder into the trash, remembering its current
// parent for recovery. The trash sentinel itself and folders already in
// trash are rejected.
func (c *Catalog) SoftDeleteFolder(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	folder, ok := c.folders[id]
	if !ok || folder.IsTrash() || folder.InTrash() {
		return false
	}
	folder.OriginalParentID = folder.ParentID
	folder.ParentID = models.TrashFolderID
	c.persistFolders(ctx)
	return true
}

// RecoverTrack moves a trashed track back to the library root. False when
// the track is unknown or not currently in trash.
func (c *Catalog) RecoverTrack(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	track, ok := c.tracks[id]
	if !ok || !track.InTrash() {
		return false
	}
	track.FolderID = ""
	c.persistTracks(ctx)
	return true
}

// RecoverFolder moves a trashed folder back to its remembered parent when
// that folder still exists, else to the root. Recovered projects always
// return to the root. The remembered parent is cleared on success.
func (c *Catalog) RecoverFolder(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	folder, ok := c.folders[id]
	if !ok || !folder.InTrash() {
		return false
	}

	target := folder.OriginalParentID
	if folder.IsProject {
		target = ""
	} else if target != "" {
		if _, ok := c.folders[target]; !ok {
			target = ""
		}
	}
	folder.ParentID = target
	folder.OriginalParentID = ""
	c.persistFolders(ctx)
	return true
}

// PurgeTrash permanently removes everything transitively rooted at the trash
// sentinel: folders whose parent chain terminates at trash, and tracks whose
// folder is trash or one of those folders. For each track the blob goes
// first, then the metadata; a track whose blob delete fails stays in trash
// so a retry can finish the job. Both snapshots are persisted once after the
// batch. Purging an empty trash is a no-op.
func (c *Catalog) PurgeTrash(ctx context.Context) (PurgeResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result PurgeResult

	doomed := map[string]bool{}
	for changed := true; changed; {
		changed = false
		for id, folder := range c.folders {
			if folder.IsTrash() || doomed[id] {
				continue
			}
			if folder.InTrash() || doomed[folder.ParentID] {
				doomed[id] = true
				changed = true
			}
		}
	}

	var errs []error
	tracksChanged := false
	for id, track := range c.tracks {
		if !track.InTrash() && !doomed[track.FolderID] {
			continue
		}
		if err := c.blobs.Delete(ctx, id); err != nil {
			c.logger.Error("purge: blob delete failed, keeping track in trash", "track_id", id, "error", err)
			result.BlobFailures++
			errs = append(errs, fmt.Errorf("purge track %s: %w", id, err))
			// The containing folder may be gone after this batch; park the
			// track directly under trash so a retry still collects it.
			if track.FolderID != models.TrashFolderID {
				track.FolderID = models.TrashFolderID
				tracksChanged = true
			}
			continue
		}
		delete(c.tracks, id)
		result.TracksPurged++
		tracksChanged = true
	}

	for id := range doomed {
		delete(c.folders, id)
		result.FoldersPurged++
	}

	if tracksChanged {
		c.persistTracks(ctx)
	}
	if len(doomed) > 0 {
		c.persistFolders(ctx)
	}

	if result.TracksPurged > 0 || result.FoldersPurged > 0 || result.BlobFailures > 0 {
		c.logger.Info("trash purged", "tracks", result.TracksPurged, "folders", result.FoldersPurged, "blob_failures", result.BlobFailures)
	}
	return result, errors.Join(errs...)
}
