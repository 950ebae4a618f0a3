package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-asset-api/internal/domain/entity"
	"brand-asset-api/internal/domain/repository"
)

func TestLoadSnapshotMissingFileIsEmpty(t *testing.T) {
	store := NewSnapshotStore(filepath.Join(t.TempDir(), "missing.json"))

	snapshot, err := store.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Empty(t, snapshot.Artifacts)
	assert.Empty(t, snapshot.Folders)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "snapshot.json")
	store := NewSnapshotStore(path)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snapshot := &repository.Snapshot{
		Artifacts: []*entity.Artifact{
			{
				ID: "a1", Name: "Logo", Type: entity.ArtifactTypeLogo,
				UsageType: entity.UsageTypeReference, UploadType: entity.UploadTypeFile,
				FolderID: entity.FolderReferences, IsActive: true,
				Tags:      []string{"image", "square"},
				Metadata:  &entity.FileMetadata{FileSize: 1024, MIMEType: "image/png"},
				CreatedAt: now, ModifiedAt: now,
			},
		},
		Folders: []*entity.Folder{
			entity.NewDefaultFolder(entity.FolderReferences, "References"),
		},
	}

	require.NoError(t, store.SaveSnapshot(context.Background(), snapshot))

	loaded, err := store.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.Artifacts, 1)
	assert.Equal(t, "a1", loaded.Artifacts[0].ID)
	assert.Equal(t, entity.ArtifactTypeLogo, loaded.Artifacts[0].Type)
	assert.Equal(t, []string{"image", "square"}, loaded.Artifacts[0].Tags)
	require.Len(t, loaded.Folders, 1)
	assert.Equal(t, entity.FolderReferences, loaded.Folders[0].ID)
}

func TestSaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	store := NewSnapshotStore(path)

	first := &repository.Snapshot{Artifacts: []*entity.Artifact{{ID: "a1", Name: "one"}}}
	second := &repository.Snapshot{Artifacts: []*entity.Artifact{{ID: "a2", Name: "two"}}}

	require.NoError(t, store.SaveSnapshot(context.Background(), first))
	require.NoError(t, store.SaveSnapshot(context.Background(), second))

	loaded, err := store.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.Artifacts, 1)
	assert.Equal(t, "a2", loaded.Artifacts[0].ID)

	// 临时文件不残留
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "snapshot.json", entries[0].Name())
}

func TestLoadSnapshotCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewSnapshotStore(path).LoadSnapshot(context.Background())
	assert.Error(t, err)
}
