package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"cuebank/internal/models"
)

// CreateTrack imports an audio payload: the blob is stored under the new
// track's identifier, the payload is probed for its duration and title, and
// the metadata record is inserted and persisted. A probe failure aborts the
// import and is returned to the caller; the already-written blob is removed
// best-effort.
func (c *Catalog) CreateTrack(ctx context.Context, data []byte, originalFilename, folderID string) (*models.Track, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.validFolderRef(folderID) {
		return nil, fmt.Errorf("unknown folder %q", folderID)
	}

	id := uuid.NewString()
	if err := c.blobs.Put(ctx, id, data); err != nil {
		return nil, fmt.Errorf("store audio payload: %w", err)
	}

	info, err := c.prober.Probe(ctx, data, originalFilename)
	if err != nil {
		if delErr := c.blobs.Delete(ctx, id); delErr != nil {
			c.logger.Warn("orphan blob left behind after failed probe", "track_id", id, "error", delErr)
		}
		return nil, fmt.Errorf("probe audio: %w", err)
	}

	track := &models.Track{
		ID:               id,
		Title:            info.Title,
		OriginalFilename: originalFilename,
		Duration:         info.DurationSeconds,
		SizeBytes:        int64(len(data)),
		CreatedAt:        time.Now().UTC(),
		FolderID:         folderID,
		Automation:       []models.AutomationPoint{},
		Markers:          []models.Marker{},
	}
	c.tracks[id] = track
	c.persistTracks(ctx)

	c.logger.Info("track created", "track_id", id, "title", track.Title, "duration", track.Duration, "size_bytes", track.SizeBytes)
	out := track.Clone()
	return &out, nil
}

// RenameTrack overwrites the display title. False for unknown ids.
func (c *Catalog) RenameTrack(ctx context.Context, id, title string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	track, ok := c.tracks[id]
	if !ok {
		return false
	}
	track.Title = title
	c.persistTracks(ctx)
	return true
}

// MoveTrack reassigns a track's folder. The target must be the root, the
// trash sentinel, or an existing folder; anything else is rejected and the
// track is left unchanged.
func (c *Catalog) MoveTrack(ctx context.Context, id, folderID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moveTrackLocked(ctx, id, folderID)
}

func (c *Catalog) moveTrackLocked(ctx context.Context, id, folderID string) bool {
	track, ok := c.tracks[id]
	if !ok {
		return false
	}
	if !c.validFolderRef(folderID) {
		return false
	}
	track.FolderID = folderID
	c.persistTracks(ctx)
	return true
}

// UpdateAutomation replaces a track's automation point collection in full.
func (c *Catalog) UpdateAutomation(ctx context.Context, id string, points []models.AutomationPoint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	track, ok := c.tracks[id]
	if !ok {
		return false
	}
	track.Automation = append([]models.AutomationPoint{}, points...)
	c.persistTracks(ctx)
	return true
}

// UpdateMarkers replaces a track's marker collection in full.
func (c *Catalog) UpdateMarkers(ctx context.Context, id string, markers []models.Marker) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	track, ok := c.tracks[id]
	if !ok {
		return false
	}
	track.Markers = append([]models.Marker{}, markers...)
	c.persistTracks(ctx)
	return true
}

// Track returns a copy of one track record.
func (c *Catalog) Track(id string) (models.Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	track, ok := c.tracks[id]
	if !ok {
		return models.Track{}, false
	}
	return track.Clone(), true
}

// AllTracks returns copies of every track, ordered case-insensitively by
// title (ties broken by id) for stable display.
func (c *Catalog) AllTracks() []models.Track {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Track, 0, len(c.tracks))
	for _, track := range c.tracks {
		out = append(out, track.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := c.collator.CompareString(out[i].Title, out[j].Title); cmp != 0 {
			return cmp < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// OpenAudio resolves a track's audio payload. Soft-deleted tracks still
// resolve; the payload disappears only when the trash is purged.
func (c *Catalog) OpenAudio(ctx context.Context, id string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tracks[id]; !ok {
		return nil, false
	}
	data, ok, err := c.blobs.Get(ctx, id)
	if err != nil {
		c.logger.Error("audio payload unavailable", "track_id", id, "error", err)
		return nil, false
	}
	return data, ok
}
