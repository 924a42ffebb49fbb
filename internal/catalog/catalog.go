// Package catalog is the persistent media catalog: in-memory track and folder
// maps backed by write-through snapshots, a separate blob store for audio
// payloads, and the trash lifecycle layered on top.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"cuebank/internal/blobstore"
	"cuebank/internal/models"
	"cuebank/internal/probe"
	"cuebank/internal/store"
)

// SnapshotStore is the persistence primitive the catalog writes through.
// *store.Store satisfies it.
type SnapshotStore interface {
	ReadSnapshot(ctx context.Context, key string) ([]byte, bool, error)
	WriteSnapshot(ctx context.Context, key string, payload []byte) error
}

// Catalog owns the track and folder maps. Every mutating operation rewrites
// the affected snapshot in full before returning; expected failures (unknown
// ids, invalid references) come back as false, never as errors. A single
// mutex serializes operations, so callers may use one Catalog from multiple
// goroutines.
type Catalog struct {
	mu       sync.Mutex
	snaps    SnapshotStore
	blobs    blobstore.BlobStore
	prober   probe.Prober
	logger   *slog.Logger
	collator *collate.Collator

	tracks  map[string]*models.Track
	folders map[string]*models.Folder
}

// New constructs a catalog over the given stores. Call Load before use.
func New(snaps SnapshotStore, blobs blobstore.BlobStore, prober probe.Prober, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		snaps:    snaps,
		blobs:    blobs,
		prober:   prober,
		logger:   logger,
		collator: collate.New(language.Und, collate.IgnoreCase),
		tracks:   map[string]*models.Track{},
		folders:  map[string]*models.Folder{},
	}
}

// Load initializes the maps from persisted snapshots, creates the trash root
// if absent, and runs an integrity pass over cross-references. A missing or
// unreadable snapshot leaves the catalog empty but usable; the failure is
// logged, not returned.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tracks = c.loadTracks(ctx)
	c.folders = c.loadFolders(ctx)

	foldersChanged := c.ensureTrashFolder()
	foldersChanged = c.repairFolderReferences() || foldersChanged
	tracksChanged := c.repairTrackReferences()

	if foldersChanged {
		c.persistFolders(ctx)
	}
	if tracksChanged {
		c.persistTracks(ctx)
	}

	c.logger.Info("catalog loaded", "tracks", len(c.tracks), "folders", len(c.folders))
	return nil
}

// Close releases the underlying blob store handle.
func (c *Catalog) Close() error {
	if c.blobs == nil {
		return nil
	}
	return c.blobs.Close()
}

// trackPair and folderPair are the (identifier, record) entries a serialized
// snapshot is made of.
type trackPair struct {
	ID    string        `json:"id"`
	Track *models.Track `json:"track"`
}

type folderPair struct {
	ID     string         `json:"id"`
	Folder *models.Folder `json:"folder"`
}

func (c *Catalog) loadTracks(ctx context.Context) map[string]*models.Track {
	out := map[string]*models.Track{}
	payload, ok, err := c.snaps.ReadSnapshot(ctx, store.SnapshotTracks)
	if err != nil {
		c.logger.Error("track snapshot unavailable, starting empty", "error", err)
		return out
	}
	if !ok {
		return out
	}
	var pairs []trackPair
	if err := json.Unmarshal(payload, &pairs); err != nil {
		c.logger.Error("track snapshot unreadable, starting empty", "error", err)
		return out
	}
	for _, p := range pairs {
		if p.Track == nil || p.ID == "" {
			continue
		}
		out[p.ID] = p.Track
	}
	return out
}

func (c *Catalog) loadFolders(ctx context.Context) map[string]*models.Folder {
	out := map[string]*models.Folder{}
	payload, ok, err := c.snaps.ReadSnapshot(ctx, store.SnapshotFolders)
	if err != nil {
		c.logger.Error("folder snapshot unavailable, starting empty", "error", err)
		return out
	}
	if !ok {
		return out
	}
	var pairs []folderPair
	if err := json.Unmarshal(payload, &pairs); err != nil {
		c.logger.Error("folder snapshot unreadable, starting empty", "error", err)
		return out
	}
	for _, p := range pairs {
		if p.Folder == nil || p.ID == "" {
			continue
		}
		out[p.ID] = p.Folder
	}
	return out
}

// persistTracks rewrites the whole track snapshot. On failure the in-memory
// state is kept and a warning is emitted; the write is not retried.
func (c *Catalog) persistTracks(ctx context.Context) {
	pairs := make([]trackPair, 0, len(c.tracks))
	for id, track := range c.tracks {
		pairs = append(pairs, trackPair{ID: id, Track: track})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].ID < pairs[j].ID })

	payload, err := json.Marshal(pairs)
	if err != nil {
		c.logger.Warn("encode track snapshot failed, session changes not durable", "error", err)
		return
	}
	if err := c.snaps.WriteSnapshot(ctx, store.SnapshotTracks, payload); err != nil {
		c.logger.Warn("persist track snapshot failed, session changes not durable", "error", err)
	}
}

func (c *Catalog) persistFolders(ctx context.Context) {
	pairs := make([]folderPair, 0, len(c.folders))
	for id, folder := range c.folders {
		pairs = append(pairs, folderPair{ID: id, Folder: folder})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].ID < pairs[j].ID })

	payload, err := json.Marshal(pairs)
	if err != nil {
		c.logger.Warn("encode folder snapshot failed, session changes not durable", "error", err)
		return
	}
	if err := c.snaps.WriteSnapshot(ctx, store.SnapshotFolders, payload); err != nil {
		c.logger.Warn("persist folder snapshot failed, session changes not durable", "error", err)
	}
}

// validFolderRef reports whether id may be assigned as a track's folder or a
// folder's parent: the root, the trash sentinel, or an existing folder.
func (c *Catalog) validFolderRef(id string) bool {
	if id == "" || id == models.TrashFolderID {
		return true
	}
	_, ok := c.folders[id]
	return ok
}
