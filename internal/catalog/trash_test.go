package catalog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cuebank/internal/models"
	"cuebank/internal/store"
)

func TestSoftDeleteAndRecoverTrack(t *testing.T) {
	env := testCatalog(t)
	ctx := context.Background()
	folder := mustCreateFolder(t, env.catalog, "Act 1", "")
	track := mustCreateTrack(t, env.catalog, "a", "a.wav", folder.ID)

	if !env.catalog.SoftDeleteTrack(ctx, track.ID) {
		t.Fatal("soft delete should succeed")
	}
	got, _ := env.catalog.Track(track.ID)
	if got.FolderID != models.TrashFolderID {
		t.Fatalf("expected track in trash, got folder %q", got.FolderID)
	}

	// Soft delete leaves the payload untouched.
	if data, ok := env.catalog.OpenAudio(ctx, track.ID); !ok || string(data) != "a" {
		t.Fatalf("audio should still resolve for trashed track: ok=%v", ok)
	}

	// Tracks keep no folder memory; recovery restores to the root, not to
	// the original folder.
	if !env.catalog.RecoverTrack(ctx, track.ID) {
		t.Fatal("recover should succeed")
	}
	got, _ = env.catalog.Track(track.ID)
	if got.FolderID != "" {
		t.Fatalf("expected recovery to root, got folder %q", got.FolderID)
	}
}

func TestRecoverTrackNotInTrash(t *testing.T) {
	env := testCatalog(t)
	ctx := context.Background()
	track := mustCreateTrack(t, env.catalog, "a", "a.wav", "")

	if env.catalog.RecoverTrack(ctx, track.ID) {
		t.Fatal("recover of an active track must return false")
	}
	if env.catalog.RecoverTrack(ctx, "missing") {
		t.Fatal("recover of an unknown track must return false")
	}
}

func TestSoftDeleteFolderRemembersParent(t *testing.T) {
	env := testCatalog(t)
	ctx := context.Background()
	parent := mustCreateFolder(t, env.catalog, "Act 1", "")
	child := mustCreateFolder(t, env.catalog, "Storm", parent.ID)

	if !env.catalog.SoftDeleteFolder(ctx, child.ID) {
		t.Fatal("soft delete should succeed")
	}
	got, _ := env.catalog.Folder(child.ID)
	if got.ParentID != models.TrashFolderID || got.OriginalParentID != parent.ID {
		t.Fatalf("unexpected trashed folder: %+v", got)
	}

	if !env.catalog.RecoverFolder(ctx, child.ID) {
		t.Fatal("recover should succeed")
	}
	got, _ = env.catalog.Folder(child.ID)
	if got.ParentID != parent.ID {
		t.Fatalf("expected parent restored to %q, got %q", parent.ID, got.ParentID)
	}
	if got.OriginalParentID != "" {
		t.Fatal("original parent must be cleared on recovery")
	}
}

func TestRecoverFolderFallsBackToRoot(t *testing.T) {
	env := testCatalog(t)
	ctx := context.Background()

	// A trashed folder whose remembered parent no longer exists: plant the
	// state via a snapshot, as the parent can only disappear through a purge
	// that happened in another session.
	now := time.Now().UTC()
	folders := []folderPair{
		{ID: models.TrashFolderID, Folder: models.NewTrashFolder(now)},
		{ID: "b", Folder: &models.Folder{ID: "b", Name: "Storm", CreatedAt: now, ParentID: models.TrashFolderID, OriginalParentID: "gone"}},
	}
	fp, _ := json.Marshal(folders)
	if err := env.snaps.WriteSnapshot(ctx, store.SnapshotFolders, fp); err != nil {
		t.Fatalf("write folders snapshot: %v", err)
	}
	cat := env.reload(t)

	if !cat.RecoverFolder(ctx, "b") {
		t.Fatal("recover should succeed")
	}
	got, _ := cat.Folder("b")
	if got.ParentID != "" {
		t.Fatalf("expected fallback to root, got parent %q", got.ParentID)
	}
}

func TestRecoverProjectAlwaysReturnsToRoot(t *testing.T) {
	env := testCatalog(t)
	ctx := context.Background()
	project, err := env.catalog.CreateProject(ctx, "Macbeth")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	if !env.catalog.SoftDeleteFolder(ctx, project.ID) {
		t.Fatal("soft delete should succeed")
	}
	if !env.catalog.RecoverFolder(ctx, project.ID) {
		t.Fatal("recover should succeed")
	}
	got, _ := env.catalog.Folder(project.ID)
	if got.ParentID != "" || got.OriginalParentID != "" {
		t.Fatalf("recovered project must be parentless: %+v", got)
	}
}

func TestSoftDeleteFolderRejectsTrashAndTrashed(t *testing.T) {
	env := testCatalog(t)
	ctx := context.Background()

	if env.catalog.SoftDeleteFolder(ctx, models.TrashFolderID) {
		t.Fatal("trash sentinel must not be deletable")
	}

	folder := mustCreateFolder(t, env.catalog, "Act 1", "")
	if !env.catalog.SoftDeleteFolder(ctx, folder.ID) {
		t.Fatal("first delete should succeed")
	}
	if env.catalog.SoftDeleteFolder(ctx, folder.ID) {
		t.Fatal("deleting an already-trashed folder must return false")
	}
	// The remembered parent must not be clobbered with the sentinel.
	got, _ := env.catalog.Folder(folder.ID)
	if got.OriginalParentID != "" {
		t.Fatalf("unexpected original parent %q", got.OriginalParentID)
	}
}

func TestPurgeTransitivityAndIdempotence(t *testing.T) {
	env := testCatalog(t)
	ctx := context.Background()

	inner := mustCreateFolder(t, env.catalog, "X", "")
	t1 := mustCreateTrack(t, env.catalog, "one", "t1.wav", inner.ID)
	t2 := mustCreateTrack(t, env.catalog, "two", "t2.wav", "")
	keeper := mustCreateTrack(t, env.catalog, "keep", "keep.wav", "")

	if !env.catalog.SoftDeleteFolder(ctx, inner.ID) {
		t.Fatal("delete folder")
	}
	if !env.catalog.SoftDeleteTrack(ctx, t2.ID) {
		t.Fatal("delete track")
	}

	result, err := env.catalog.PurgeTrash(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if result.TracksPurged != 2 || result.FoldersPurged != 1 {
		t.Fatalf("unexpected purge result: %+v", result)
	}

	for _, id := range []string{t1.ID, t2.ID} {
		if _, ok := env.catalog.Track(id); ok {
			t.Fatalf("track %s metadata should be gone", id)
		}
		if _, ok, err := env.blobs.Get(ctx, id); err != nil || ok {
			t.Fatalf("track %s blob should be gone: ok=%v err=%v", id, ok, err)
		}
	}
	if _, ok := env.catalog.Folder(inner.ID); ok {
		t.Fatal("folder metadata should be gone")
	}
	if _, ok := env.catalog.Track(keeper.ID); !ok {
		t.Fatal("unrelated track must survive the purge")
	}

	// Empty trash: a no-op, not an error.
	again, err := env.catalog.PurgeTrash(ctx)
	if err != nil {
		t.Fatalf("second purge: %v", err)
	}
	if again.TracksPurged != 0 || again.FoldersPurged != 0 {
		t.Fatalf("second purge should be a no-op: %+v", again)
	}
}

func TestPurgeCollectsNestedFolders(t *testing.T) {
	env := testCatalog(t)
	ctx := context.Background()

	top := mustCreateFolder(t, env.catalog, "Top", "")
	mid := mustCreateFolder(t, env.catalog, "Mid", top.ID)
	deep := mustCreateTrack(t, env.catalog, "deep", "deep.wav", mid.ID)

	if !env.catalog.SoftDeleteFolder(ctx, top.ID) {
		t.Fatal("delete top folder")
	}

	result, err := env.catalog.PurgeTrash(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if result.FoldersPurged != 2 || result.TracksPurged != 1 {
		t.Fatalf("expected the whole subtree purged, got %+v", result)
	}
	if _, ok := env.catalog.Track(deep.ID); ok {
		t.Fatal("nested track should be gone")
	}
}

// Full soft-delete / recover / purge scenario over one track.
func TestTrackLifecycleScenario(t *testing.T) {
	env := testCatalog(t)
	ctx := context.Background()

	if _, err := env.catalog.CreateProject(ctx, "P"); err != nil {
		t.Fatalf("create project: %v", err)
	}
	t1 := mustCreateTrack(t, env.catalog, "bytesA", "cue.wav", "")

	if !env.catalog.SoftDeleteTrack(ctx, t1.ID) {
		t.Fatal("soft delete")
	}
	got, _ := env.catalog.Track(t1.ID)
	if got.FolderID != models.TrashFolderID {
		t.Fatalf("expected trash, got %q", got.FolderID)
	}
	if _, ok := env.catalog.OpenAudio(ctx, t1.ID); !ok {
		t.Fatal("audio should still resolve while in trash")
	}

	if !env.catalog.RecoverTrack(ctx, t1.ID) {
		t.Fatal("recover")
	}
	got, _ = env.catalog.Track(t1.ID)
	if got.FolderID != "" {
		t.Fatalf("expected root after recovery, got %q", got.FolderID)
	}

	if !env.catalog.SoftDeleteTrack(ctx, t1.ID) {
		t.Fatal("second soft delete")
	}
	if _, err := env.catalog.PurgeTrash(ctx); err != nil {
		t.Fatalf("purge: %v", err)
	}

	if _, ok := env.catalog.OpenAudio(ctx, t1.ID); ok {
		t.Fatal("audio must be gone after purge")
	}
	for _, track := range env.catalog.AllTracks() {
		if track.ID == t1.ID {
			t.Fatal("purged track must be absent from listings")
		}
	}
}

func TestPurgeSurvivesRestart(t *testing.T) {
	env := testCatalog(t)
	ctx := context.Background()

	track := mustCreateTrack(t, env.catalog, "gone", "gone.wav", "")
	env.catalog.SoftDeleteTrack(ctx, track.ID)
	if _, err := env.catalog.PurgeTrash(ctx); err != nil {
		t.Fatalf("purge: %v", err)
	}

	cat := env.reload(t)
	if _, ok := cat.Track(track.ID); ok {
		t.Fatal("purged track must not reappear after restart")
	}
}
