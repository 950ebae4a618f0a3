package asset

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand-asset-api/internal/config"
	"brand-asset-api/internal/domain/entity"
	"brand-asset-api/internal/domain/repository"
	pkgerrors "brand-asset-api/pkg/errors"
)

// memStore 内存快照存储，记录写入次数供断言
type memStore struct {
	snapshot  *repository.Snapshot
	saveCount int
	loadErr   error
	saveErr   error
}

func (m *memStore) LoadSnapshot(ctx context.Context) (*repository.Snapshot, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.snapshot, nil
}

func (m *memStore) SaveSnapshot(ctx context.Context, snapshot *repository.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saveCount++
	m.snapshot = snapshot
	return nil
}

// stubSource 固定尺寸的文件字节源
type stubSource struct {
	dims      *entity.Dimensions
	decodeErr error
}

func (s *stubSource) ReadAsDataURL(ctx context.Context, file repository.FileInput) (string, error) {
	return fmt.Sprintf("data:%s;base64,%s", file.MIMEType, base64.StdEncoding.EncodeToString(file.Data)), nil
}

func (s *stubSource) DecodeImageDimensions(ctx context.Context, file repository.FileInput) (*entity.Dimensions, error) {
	if s.decodeErr != nil {
		return nil, s.decodeErr
	}
	return s.dims, nil
}

func testConfig() config.ArtifactsConfig {
	return config.ArtifactsConfig{
		MaxUploadSize: 10 << 20,
		AllowedMIMETypes: []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
			"application/pdf", "text/plain",
		},
		AnalysisEnabled: true,
		DefaultFolder:   entity.FolderReferences,
	}
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := &memStore{}
	source := &stubSource{dims: &entity.Dimensions{Width: 1920, Height: 1080}}
	return NewService(context.Background(), store, source, testConfig()), store
}

func uploadOne(t *testing.T, svc *Service, file repository.FileInput, opts UploadOptions) *entity.Artifact {
	t.Helper()
	results, err := svc.UploadArtifacts(context.Background(), []repository.FileInput{file}, opts)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Artifact)
	return results[0].Artifact
}

func jpegInput(name string, size int64) repository.FileInput {
	return repository.FileInput{Name: name, MIMEType: "image/jpeg", Size: size, Data: []byte("jpegbytes")}
}

func TestNewServiceSeedsDefaultFolders(t *testing.T) {
	svc, store := newTestService(t)

	folders := svc.ListFolders(context.Background())
	require.Len(t, folders, 4)

	ids := make(map[string]bool)
	for _, f := range folders {
		ids[f.ID] = true
		assert.Equal(t, entity.FolderTypeDefault, f.Type)
	}
	for _, want := range entity.DefaultFolderIDs() {
		assert.True(t, ids[want], "missing default folder %s", want)
	}

	// 种子写入一次快照
	assert.Equal(t, 1, store.saveCount)
}

func TestNewServiceDegradesOnLoadFailure(t *testing.T) {
	store := &memStore{loadErr: errors.New("disk gone")}
	source := &stubSource{}
	svc := NewService(context.Background(), store, source, testConfig())

	assert.Empty(t, svc.ListArtifacts(context.Background()))
	assert.Len(t, svc.ListFolders(context.Background()), 4)
}

func TestUploadImageArtifact(t *testing.T) {
	svc, _ := newTestService(t)

	artifact := uploadOne(t, svc, jpegInput("photo.jpg", 2<<20), UploadOptions{})

	assert.Equal(t, entity.ArtifactTypeImage, artifact.Type)
	assert.Equal(t, entity.UsageTypeReference, artifact.UsageType)
	assert.Equal(t, entity.UploadTypeFile, artifact.UploadType)
	assert.False(t, artifact.IsActive)

	require.NotNil(t, artifact.Metadata)
	require.NotNil(t, artifact.Metadata.Dimensions)
	assert.Equal(t, 1920, artifact.Metadata.Dimensions.Width)
	assert.Equal(t, 1080, artifact.Metadata.Dimensions.Height)

	assert.Contains(t, artifact.Tags, "image")
	assert.Contains(t, artifact.Tags, "landscape")
	assert.Contains(t, artifact.Tags, "medium")
	assert.NotContains(t, artifact.Tags, "portrait")
	assert.NotContains(t, artifact.Tags, "large")

	require.Len(t, artifact.Directives, 1)
	assert.Equal(t, entity.DirectiveTypeStyleReference, artifact.Directives[0].Type)
	assert.True(t, artifact.Directives[0].Active)

	// 归属双向一致
	folder, err := svc.GetFolder(context.Background(), artifact.FolderID)
	require.NoError(t, err)
	assert.True(t, folder.Contains(artifact.ID))
}

func TestUploadBatchContinuesPastFailures(t *testing.T) {
	svc, _ := newTestService(t)

	files := []repository.FileInput{
		{Name: "huge.jpg", MIMEType: "image/jpeg", Size: 11 << 20, Data: []byte("x")},
		{Name: "script.exe", MIMEType: "application/octet-stream", Size: 100, Data: []byte("x")},
		jpegInput("ok.jpg", 1024),
	}
	results, err := svc.UploadArtifacts(context.Background(), files, UploadOptions{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.ErrorIs(t, results[0].Err, pkgerrors.ErrFileTooLarge)
	assert.Nil(t, results[0].Artifact)
	assert.ErrorIs(t, results[1].Err, pkgerrors.ErrUnsupportedMediaType)
	assert.NoError(t, results[2].Err)

	// 被拒绝的文件不留半成品
	assert.Len(t, svc.ListArtifacts(context.Background()), 1)
}

func TestUploadRespectsExplicitFolderAndFallsBack(t *testing.T) {
	svc, _ := newTestService(t)

	a := uploadOne(t, svc, jpegInput("a.jpg", 1024), UploadOptions{FolderID: entity.FolderProducts})
	assert.Equal(t, entity.FolderProducts, a.FolderID)

	// 未知文件夹回退到按名称推断
	b := uploadOne(t, svc, jpegInput("discount-banner.jpg", 1024), UploadOptions{FolderID: "no-such-folder"})
	assert.Equal(t, entity.FolderDiscounts, b.FolderID)
}

func TestCreateTextArtifactStructuredPromo(t *testing.T) {
	svc, _ := newTestService(t)

	artifact, err := svc.CreateTextArtifact(context.Background(), CreateTextArtifactInput{
		Name:      "Promo",
		Content:   StructuredOverlay{Headline: "Sale", CTA: "Buy Now"},
		UsageType: entity.UsageTypeExact,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ArtifactTypeText, artifact.Type)
	assert.Equal(t, entity.UploadTypeText, artifact.UploadType)
	assert.Equal(t,
		`Use "Sale" as the main headline with large, bold text, Add a prominent call-to-action button with "Buy Now"`,
		artifact.Instructions)

	require.NotNil(t, artifact.TextOverlay)
	assert.Equal(t, "Sale", artifact.TextOverlay.Headline)
	assert.Equal(t, "Buy Now", artifact.TextOverlay.CTA)

	assert.Contains(t, artifact.Tags, "text")
	assert.Contains(t, artifact.Tags, "headline")
	assert.Contains(t, artifact.Tags, "call-to-action")
	assert.NotContains(t, artifact.Tags, "plain-text")
}

func TestCreateTextArtifactPlain(t *testing.T) {
	svc, _ := newTestService(t)

	artifact, err := svc.CreateTextArtifact(context.Background(), CreateTextArtifactInput{
		Name:    "Note",
		Content: PlainText("remember the brand voice"),
	})
	require.NoError(t, err)

	assert.Nil(t, artifact.TextOverlay)
	assert.Contains(t, artifact.Tags, "text")
	assert.Contains(t, artifact.Tags, "plain-text")
	require.NotNil(t, artifact.Metadata)
	assert.Equal(t, "remember the brand voice", artifact.Metadata.ExtractedText)
	assert.Equal(t, int64(len("remember the brand voice")), artifact.Metadata.FileSize)
	assert.Equal(t, "text/plain", artifact.Metadata.MIMEType)
}

func TestCreateTextArtifactReferenceSkipsOverlay(t *testing.T) {
	svc, _ := newTestService(t)

	artifact, err := svc.CreateTextArtifact(context.Background(), CreateTextArtifactInput{
		Name:      "Tone sample",
		Content:   StructuredOverlay{Headline: "Sale"},
		UsageType: entity.UsageTypeReference,
	})
	require.NoError(t, err)
	assert.Nil(t, artifact.TextOverlay)
}

func TestCreateTextArtifactRejectsEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateTextArtifact(context.Background(), CreateTextArtifactInput{
		Name:    "Empty",
		Content: PlainText(""),
	})
	assert.ErrorIs(t, err, pkgerrors.ErrEmptyContent)
}

func TestUpdateArtifactPartialMerge(t *testing.T) {
	svc, _ := newTestService(t)
	artifact := uploadOne(t, svc, jpegInput("a.jpg", 1024), UploadOptions{})
	before := artifact.ModifiedAt

	name := "renamed"
	updated, err := svc.UpdateArtifact(context.Background(), artifact.ID, UpdateArtifactInput{
		Name: &name,
		Tags: []string{"custom"},
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, []string{"custom"}, updated.Tags)
	assert.False(t, updated.ModifiedAt.Before(before))
}

func TestUpdateArtifactNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.UpdateArtifact(context.Background(), "missing", UpdateArtifactInput{})
	assert.ErrorIs(t, err, pkgerrors.ErrArtifactNotFound)
}

func TestDeleteArtifactRemovesMembership(t *testing.T) {
	svc, _ := newTestService(t)
	artifact := uploadOne(t, svc, jpegInput("a.jpg", 1024), UploadOptions{})
	folderID := artifact.FolderID

	require.NoError(t, svc.DeleteArtifact(context.Background(), artifact.ID))

	_, err := svc.GetArtifact(context.Background(), artifact.ID)
	assert.ErrorIs(t, err, pkgerrors.ErrArtifactNotFound)

	folder, err := svc.GetFolder(context.Background(), folderID)
	require.NoError(t, err)
	assert.False(t, folder.Contains(artifact.ID))

	assert.ErrorIs(t, svc.DeleteArtifact(context.Background(), artifact.ID), pkgerrors.ErrArtifactNotFound)
}

func TestTrackUsageContextsAreSet(t *testing.T) {
	svc, _ := newTestService(t)
	artifact := uploadOne(t, svc, jpegInput("a.jpg", 1024), UploadOptions{})

	assert.True(t, svc.TrackUsage(context.Background(), artifact.ID, "instagram-post"))
	assert.True(t, svc.TrackUsage(context.Background(), artifact.ID, "instagram-post"))
	assert.True(t, svc.TrackUsage(context.Background(), artifact.ID, "email"))

	got, err := svc.GetArtifact(context.Background(), artifact.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Usage.UsageCount)
	assert.Equal(t, []string{"instagram-post", "email"}, got.Usage.UsedInContexts)
	assert.NotNil(t, got.Usage.LastUsedAt)

	// 未知 ID 是空操作
	assert.False(t, svc.TrackUsage(context.Background(), "missing", "email"))
}

func TestActivationSoftContract(t *testing.T) {
	svc, _ := newTestService(t)
	artifact := uploadOne(t, svc, jpegInput("a.jpg", 1024), UploadOptions{})

	assert.False(t, svc.ActivateArtifact(context.Background(), "missing"))
	assert.False(t, svc.DeactivateArtifact(context.Background(), "missing"))
	_, ok := svc.ToggleArtifactActivation(context.Background(), "missing")
	assert.False(t, ok)

	assert.True(t, svc.ActivateArtifact(context.Background(), artifact.ID))
	active := svc.GetActiveArtifacts(context.Background())
	require.Len(t, active, 1)
	assert.Equal(t, artifact.ID, active[0].ID)

	state, ok := svc.ToggleArtifactActivation(context.Background(), artifact.ID)
	require.True(t, ok)
	assert.False(t, state)
	assert.Empty(t, svc.GetActiveArtifacts(context.Background()))
}

func TestGetActiveArtifactsByUsageType(t *testing.T) {
	svc, _ := newTestService(t)
	a := uploadOne(t, svc, jpegInput("a.jpg", 1024), UploadOptions{IsActive: true})

	b, err := svc.CreateTextArtifact(context.Background(), CreateTextArtifactInput{
		Name:      "Promo",
		Content:   StructuredOverlay{Headline: "Sale"},
		UsageType: entity.UsageTypeExact,
		IsActive:  true,
	})
	require.NoError(t, err)

	exact := svc.GetActiveArtifactsByUsageType(context.Background(), entity.UsageTypeExact)
	require.Len(t, exact, 1)
	assert.Equal(t, b.ID, exact[0].ID)

	reference := svc.GetActiveArtifactsByUsageType(context.Background(), entity.UsageTypeReference)
	require.Len(t, reference, 1)
	assert.Equal(t, a.ID, reference[0].ID)
}

func TestUsageTypeChangeClearsOverlay(t *testing.T) {
	svc, _ := newTestService(t)

	artifact, err := svc.CreateTextArtifact(context.Background(), CreateTextArtifactInput{
		Name:      "Promo",
		Content:   StructuredOverlay{Headline: "Sale"},
		UsageType: entity.UsageTypeExact,
	})
	require.NoError(t, err)
	require.NotNil(t, artifact.TextOverlay)

	assert.True(t, svc.UpdateArtifactUsageType(context.Background(), artifact.ID, entity.UsageTypeReference))

	got, err := svc.GetArtifact(context.Background(), artifact.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.UsageTypeReference, got.UsageType)
	assert.Nil(t, got.TextOverlay)

	assert.False(t, svc.UpdateArtifactUsageType(context.Background(), "missing", entity.UsageTypeExact))
}

func TestMoveArtifactToFolder(t *testing.T) {
	svc, _ := newTestService(t)
	artifact := uploadOne(t, svc, jpegInput("a.jpg", 1024), UploadOptions{})
	origin := artifact.FolderID

	// 未知目标：归属不变
	assert.False(t, svc.MoveArtifactToFolder(context.Background(), artifact.ID, "no-such-folder"))
	folder, err := svc.GetFolder(context.Background(), origin)
	require.NoError(t, err)
	assert.True(t, folder.Contains(artifact.ID))

	assert.True(t, svc.MoveArtifactToFolder(context.Background(), artifact.ID, entity.FolderProducts))

	got, err := svc.GetArtifact(context.Background(), artifact.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FolderProducts, got.FolderID)

	from, _ := svc.GetFolder(context.Background(), origin)
	to, _ := svc.GetFolder(context.Background(), entity.FolderProducts)
	assert.False(t, from.Contains(artifact.ID))
	assert.True(t, to.Contains(artifact.ID))

	assert.False(t, svc.MoveArtifactToFolder(context.Background(), "missing", entity.FolderProducts))
}

func TestDeleteFolderReassignsMembers(t *testing.T) {
	svc, _ := newTestService(t)

	custom, err := svc.CreateFolder(context.Background(), "Campaign 2026", "", "#ff8800")
	require.NoError(t, err)
	assert.Equal(t, entity.FolderTypeCustom, custom.Type)

	artifact := uploadOne(t, svc, jpegInput("a.jpg", 1024), UploadOptions{FolderID: custom.ID})
	require.Equal(t, custom.ID, artifact.FolderID)

	refsBefore, _ := svc.GetFolder(context.Background(), entity.FolderReferences)
	beforeCount := len(refsBefore.ArtifactIDs)

	assert.True(t, svc.DeleteFolder(context.Background(), custom.ID))

	_, err = svc.GetFolder(context.Background(), custom.ID)
	assert.ErrorIs(t, err, pkgerrors.ErrFolderNotFound)

	got, err := svc.GetArtifact(context.Background(), artifact.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FolderReferences, got.FolderID)

	refsAfter, _ := svc.GetFolder(context.Background(), entity.FolderReferences)
	assert.Len(t, refsAfter.ArtifactIDs, beforeCount+1)
	assert.True(t, refsAfter.Contains(artifact.ID))
}

func TestDeleteFolderRefusesDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	for _, id := range entity.DefaultFolderIDs() {
		assert.False(t, svc.DeleteFolder(context.Background(), id))
	}
	assert.False(t, svc.DeleteFolder(context.Background(), "missing"))
	assert.Len(t, svc.ListFolders(context.Background()), 4)
}

func TestUpdateFolder(t *testing.T) {
	svc, _ := newTestService(t)
	custom, err := svc.CreateFolder(context.Background(), "Old name", "", "")
	require.NoError(t, err)

	name := "New name"
	color := "#00ff00"
	updated, err := svc.UpdateFolder(context.Background(), custom.ID, &name, nil, &color)
	require.NoError(t, err)
	assert.Equal(t, "New name", updated.Name)
	assert.Equal(t, "#00ff00", updated.Color)

	_, err = svc.UpdateFolder(context.Background(), "missing", &name, nil, nil)
	assert.ErrorIs(t, err, pkgerrors.ErrFolderNotFound)
}

func TestDeactivateAllWritesOneSnapshot(t *testing.T) {
	svc, store := newTestService(t)

	for i := 0; i < 3; i++ {
		uploadOne(t, svc, jpegInput(fmt.Sprintf("a%d.jpg", i), 1024), UploadOptions{IsActive: true})
	}
	require.Len(t, svc.GetActiveArtifacts(context.Background()), 3)

	before := store.saveCount
	require.NoError(t, svc.DeactivateAllArtifacts(context.Background()))
	assert.Equal(t, before+1, store.saveCount)
	assert.Empty(t, svc.GetActiveArtifacts(context.Background()))

	// 无激活素材时是空操作，不写快照
	require.NoError(t, svc.DeactivateAllArtifacts(context.Background()))
	assert.Equal(t, before+1, store.saveCount)
}

func TestSnapshotRoundTrip(t *testing.T) {
	svc, store := newTestService(t)

	uploaded := uploadOne(t, svc, jpegInput("a.jpg", 1024), UploadOptions{IsActive: true})
	svc.TrackUsage(context.Background(), uploaded.ID, "email")
	custom, err := svc.CreateFolder(context.Background(), "Campaign", "", "")
	require.NoError(t, err)

	// 用同一存储重建服务，状态完整恢复
	revived := NewService(context.Background(), store, &stubSource{}, testConfig())

	got, err := revived.GetArtifact(context.Background(), uploaded.ID)
	require.NoError(t, err)
	assert.Equal(t, uploaded.Name, got.Name)
	assert.True(t, got.IsActive)
	assert.Equal(t, 1, got.Usage.UsageCount)

	folders := revived.ListFolders(context.Background())
	assert.Len(t, folders, 5)
	folder, err := revived.GetFolder(context.Background(), custom.ID)
	require.NoError(t, err)
	assert.Equal(t, "Campaign", folder.Name)
}

func TestCreateTextArtifactSaveFailureRollsBack(t *testing.T) {
	svc, store := newTestService(t)
	store.saveErr = errors.New("disk full")

	_, err := svc.CreateTextArtifact(context.Background(), CreateTextArtifactInput{
		Name:    "Note",
		Content: PlainText("hello"),
	})
	require.Error(t, err)

	store.saveErr = nil
	assert.Empty(t, svc.ListArtifacts(context.Background()))
}

func TestThumbnailFromSessionCache(t *testing.T) {
	svc, _ := newTestService(t)
	artifact := uploadOne(t, svc, jpegInput("a.jpg", 1024), UploadOptions{})

	url, err := svc.Thumbnail(context.Background(), artifact.ID)
	require.NoError(t, err)
	assert.Contains(t, url, "data:image/jpeg;base64,")

	// 第二次命中缓存
	again, err := svc.Thumbnail(context.Background(), artifact.ID)
	require.NoError(t, err)
	assert.Equal(t, url, again)

	_, err = svc.Thumbnail(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSearchViaService(t *testing.T) {
	svc, _ := newTestService(t)
	uploadOne(t, svc, jpegInput("logo-primary.png", 1024), UploadOptions{})
	uploadOne(t, svc, jpegInput("banner.jpg", 1024), UploadOptions{})

	result := svc.Search(context.Background(), SearchFilters{Query: "logo"})
	require.NotNil(t, result)
	assert.Equal(t, 1, result.TotalCount)
	require.Len(t, result.Artifacts, 1)
	assert.Equal(t, "logo-primary.png", result.Artifacts[0].Name)
}
