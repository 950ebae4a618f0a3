// Package asset 实现素材库核心：素材注册、激活索引、文件夹归属与检索
package asset

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"brand-asset-api/internal/config"
	"brand-asset-api/internal/domain/entity"
	"brand-asset-api/internal/domain/repository"
	pkgerrors "brand-asset-api/pkg/errors"
	"brand-asset-api/pkg/logger"
	"brand-asset-api/pkg/metrics"
)

var tracer = otel.Tracer("asset")

// Service 素材库服务
// 单写者模型：所有变更操作在一次锁持有内完成（调用方视角的逻辑
// 事务），内存状态先更新，随后发出快照写入。多会话并发写不在
// 支持范围内。
type Service struct {
	mu     sync.Mutex
	store  repository.SnapshotStore
	source repository.FileSource
	cfg    config.ArtifactsConfig

	artifacts map[string]*entity.Artifact
	folders   *folderIndex

	// 会话内的临时字节缓存，仅用于按需重建缩略图，不跨重启。
	thumbMu    sync.Mutex
	byteCache  map[string][]byte
	thumbCache map[string]string
	thumbGroup singleflight.Group
}

// NewService 创建素材库服务
// 快照加载失败降级为空库并告警；默认文件夹种子是幂等的。
func NewService(ctx context.Context, store repository.SnapshotStore, source repository.FileSource, cfg config.ArtifactsConfig) *Service {
	s := &Service{
		store:      store,
		source:     source,
		cfg:        cfg,
		artifacts:  make(map[string]*entity.Artifact),
		folders:    newFolderIndex(),
		byteCache:  make(map[string][]byte),
		thumbCache: make(map[string]string),
	}

	snapshot, err := store.LoadSnapshot(ctx)
	if err != nil {
		logger.Warn(ctx, "snapshot load failed, starting with empty repository", "error", err.Error())
	} else if snapshot != nil {
		for _, a := range snapshot.Artifacts {
			if a != nil && a.ID != "" {
				s.artifacts[a.ID] = a
			}
		}
		s.folders.load(snapshot.Folders)
	}

	if s.folders.seedDefaults() {
		if err := s.persistLocked(ctx); err != nil {
			logger.Error(ctx, "failed to persist seeded folders", err)
		}
	}

	s.updateGauges()
	return s
}

// UploadOptions 批量上传选项
type UploadOptions struct {
	Category string
	FolderID string
	IsActive bool
}

// UploadResult 单个文件的上传结果
// 校验失败只拒绝该文件，不留下任何部分注册的素材；批次继续处理
// 其余文件并逐个报告结果。
type UploadResult struct {
	FileName string
	Artifact *entity.Artifact
	Err      error
}

// UploadArtifacts 批量上传文件素材
// 每个文件独立校验（大小、MIME 白名单），创建遵循先提取后注册：
// 元数据提取失败不会留下半成品。成功项按输入顺序返回，结尾统一
// 持久化一次快照。
func (s *Service) UploadArtifacts(ctx context.Context, files []repository.FileInput, opts UploadOptions) ([]UploadResult, error) {
	ctx, span := tracer.Start(ctx, "asset.UploadArtifacts")
	span.SetAttributes(attribute.Int("upload.file_count", len(files)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]UploadResult, 0, len(files))
	created := 0

	for _, file := range files {
		if err := s.validateFile(file); err != nil {
			logger.Warn(ctx, "upload rejected", "file", file.Name, "error", err.Error())
			metrics.ArtifactUploadsTotal.WithLabelValues(string(InferArtifactType(file)), "rejected").Inc()
			results = append(results, UploadResult{FileName: file.Name, Err: err})
			continue
		}

		artifact := s.registerFile(ctx, file, opts)
		metrics.ArtifactUploadsTotal.WithLabelValues(string(artifact.Type), "created").Inc()
		results = append(results, UploadResult{FileName: file.Name, Artifact: artifact})
		created++
	}

	if created > 0 {
		if err := s.persistLocked(ctx); err != nil {
			return results, err
		}
		s.updateGauges()
	}

	return results, nil
}

// validateFile 上传前校验
func (s *Service) validateFile(file repository.FileInput) error {
	if file.Size > s.cfg.MaxUploadSize {
		return pkgerrors.ErrFileTooLarge
	}
	for _, allowed := range s.cfg.AllowedMIMETypes {
		if file.MIMEType == allowed {
			return nil
		}
	}
	return pkgerrors.ErrUnsupportedMediaType
}

// registerFile 提取元数据并注册素材，先提取后注册
func (s *Service) registerFile(ctx context.Context, file repository.FileInput, opts UploadOptions) *entity.Artifact {
	meta := ExtractMetadata(ctx, s.source, file, s.cfg.AnalysisEnabled)

	artifact := entity.NewArtifact(file.Name, InferArtifactType(file), entity.UsageTypeReference, entity.UploadTypeFile)
	artifact.Metadata = meta
	artifact.IsActive = opts.IsActive
	if opts.Category != "" {
		artifact.Category = opts.Category
	}
	if s.cfg.AnalysisEnabled {
		artifact.Tags = GenerateTags(file, meta)
		artifact.Directives = GenerateDirectives(file, meta)
	}

	folderID := opts.FolderID
	if _, ok := s.folders.get(folderID); !ok {
		folderID = InferFolderID(file)
	}
	artifact.FolderID = folderID

	s.artifacts[artifact.ID] = artifact
	s.folders.addMember(folderID, artifact.ID)

	// 字节仅进入会话内缓存，供缩略图重建，不做持久保留
	s.cacheBytes(artifact.ID, file.Data)

	return artifact
}

// CreateTextArtifactInput 文本素材创建输入
// Content 是类型化变体：API 边界负责把原始字符串判定为纯文本或
// 结构化载荷，核心只处理显式分支。
type CreateTextArtifactInput struct {
	Name         string
	Content      TextContent
	UsageType    entity.UsageType
	Category     string
	FolderID     string
	Description  string
	Instructions string
	IsActive     bool
}

// CreateTextArtifact 创建文本素材
func (s *Service) CreateTextArtifact(ctx context.Context, in CreateTextArtifactInput) (*entity.Artifact, error) {
	ctx, span := tracer.Start(ctx, "asset.CreateTextArtifact")
	defer span.End()

	if in.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidParam, "name is required")
	}
	raw := rawText(in.Content)
	if raw == "" {
		return nil, pkgerrors.ErrEmptyContent
	}
	usageType := in.UsageType
	if usageType == "" {
		usageType = entity.UsageTypeExact
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	artifact := entity.NewArtifact(in.Name, entity.ArtifactTypeText, usageType, entity.UploadTypeText)
	artifact.Description = in.Description
	artifact.IsActive = in.IsActive
	if in.Category != "" {
		artifact.Category = in.Category
	}
	artifact.Metadata = &entity.FileMetadata{
		FileSize:      int64(len(raw)),
		MIMEType:      "text/plain",
		ExtractedText: raw,
	}
	artifact.Tags = GenerateTextTags(in.Content)

	if overlay, ok := in.Content.(StructuredOverlay); ok && usageType == entity.UsageTypeExact {
		artifact.TextOverlay = overlay.Overlay()
		if in.Instructions != "" {
			artifact.Instructions = in.Instructions
		} else {
			artifact.Instructions = SynthesizeInstructions(overlay)
		}
	} else if in.Instructions != "" {
		artifact.Instructions = in.Instructions
	}

	folderID := in.FolderID
	if _, ok := s.folders.get(folderID); !ok {
		folderID = entity.FolderReferences
	}
	artifact.FolderID = folderID

	s.artifacts[artifact.ID] = artifact
	s.folders.addMember(folderID, artifact.ID)

	if err := s.persistLocked(ctx); err != nil {
		// 创建未能落盘则回滚注册，避免内存与持久状态长期背离
		s.folders.removeMember(folderID, artifact.ID)
		delete(s.artifacts, artifact.ID)
		return nil, err
	}
	s.updateGauges()

	return artifact, nil
}

// UpdateArtifactInput 素材的部分字段更新
type UpdateArtifactInput struct {
	Name         *string
	Description  *string
	Category     *string
	Instructions *string
	Tags         []string
}

// UpdateArtifact 合并部分字段并盖修改时间戳
func (s *Service) UpdateArtifact(ctx context.Context, id string, in UpdateArtifactInput) (*entity.Artifact, error) {
	ctx, span := tracer.Start(ctx, "asset.UpdateArtifact")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	artifact, ok := s.artifacts[id]
	if !ok {
		return nil, pkgerrors.ErrArtifactNotFound
	}

	if in.Name != nil {
		artifact.Name = *in.Name
	}
	if in.Description != nil {
		artifact.Description = *in.Description
	}
	if in.Category != nil {
		artifact.Category = *in.Category
	}
	if in.Instructions != nil {
		artifact.Instructions = *in.Instructions
	}
	if in.Tags != nil {
		artifact.Tags = in.Tags
	}
	artifact.Touch()

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return artifact, nil
}

// DeleteArtifact 删除素材并解除文件夹归属
// 存储字节的清理委托给外部存储协作方。
func (s *Service) DeleteArtifact(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "asset.DeleteArtifact")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	artifact, ok := s.artifacts[id]
	if !ok {
		return pkgerrors.ErrArtifactNotFound
	}

	s.folders.removeMember(artifact.FolderID, id)
	delete(s.artifacts, id)
	s.dropCachedBytes(id)

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.updateGauges()
	return nil
}

// TrackUsage 记录一次使用
// 未知 ID 是空操作而非错误；上下文集合具备幂等语义：重复的相同
// 上下文只记录一次，但使用次数照常递增。
func (s *Service) TrackUsage(ctx context.Context, id, usageContext string) bool {
	ctx, span := tracer.Start(ctx, "asset.TrackUsage")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	artifact, ok := s.artifacts[id]
	if !ok {
		logger.Warn(ctx, "track usage on unknown artifact", "artifact_id", id)
		return false
	}

	now := time.Now()
	artifact.Usage.UsageCount++
	artifact.Usage.LastUsedAt = &now
	if !artifact.Usage.HasContext(usageContext) {
		artifact.Usage.UsedInContexts = append(artifact.Usage.UsedInContexts, usageContext)
	}
	artifact.Touch()
	metrics.ArtifactUsageTotal.WithLabelValues(usageContext).Inc()

	if err := s.persistLocked(ctx); err != nil {
		logger.Error(ctx, "failed to persist usage tracking", err, "artifact_id", id)
	}
	return true
}

// SetArtifactActive 设置激活状态
// 软契约：未知 ID 记录日志并返回 false，绝不让激活开关打断生成
// 流水线。
func (s *Service) SetArtifactActive(ctx context.Context, id string, active bool) bool {
	ctx, span := tracer.Start(ctx, "asset.SetArtifactActive")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	artifact, ok := s.artifacts[id]
	if !ok {
		logger.Warn(ctx, "activation toggle on unknown artifact", "artifact_id", id)
		return false
	}

	artifact.IsActive = active
	artifact.Touch()

	if err := s.persistLocked(ctx); err != nil {
		logger.Error(ctx, "failed to persist activation change", err, "artifact_id", id)
	}
	s.updateGauges()
	return true
}

// ActivateArtifact 激活素材
func (s *Service) ActivateArtifact(ctx context.Context, id string) bool {
	return s.SetArtifactActive(ctx, id, true)
}

// DeactivateArtifact 取消激活
func (s *Service) DeactivateArtifact(ctx context.Context, id string) bool {
	return s.SetArtifactActive(ctx, id, false)
}

// ToggleArtifactActivation 翻转激活状态，返回新状态
func (s *Service) ToggleArtifactActivation(ctx context.Context, id string) (bool, bool) {
	ctx, span := tracer.Start(ctx, "asset.ToggleArtifactActivation")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	artifact, ok := s.artifacts[id]
	if !ok {
		logger.Warn(ctx, "activation toggle on unknown artifact", "artifact_id", id)
		return false, false
	}

	artifact.IsActive = !artifact.IsActive
	artifact.Touch()

	if err := s.persistLocked(ctx); err != nil {
		logger.Error(ctx, "failed to persist activation change", err, "artifact_id", id)
	}
	s.updateGauges()
	return artifact.IsActive, true
}

// UpdateArtifactUsageType 变更使用方式
// 转换为 reference 时无条件清除 TextOverlay：reference 素材绝不
// 携带逐字文本载荷，数据丢失是有意为之。
func (s *Service) UpdateArtifactUsageType(ctx context.Context, id string, usageType entity.UsageType) bool {
	ctx, span := tracer.Start(ctx, "asset.UpdateArtifactUsageType")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	artifact, ok := s.artifacts[id]
	if !ok {
		logger.Warn(ctx, "usage type change on unknown artifact", "artifact_id", id)
		return false
	}

	artifact.UsageType = usageType
	if usageType == entity.UsageTypeReference {
		artifact.ClearTextOverlay()
	}
	artifact.Touch()

	if err := s.persistLocked(ctx); err != nil {
		logger.Error(ctx, "failed to persist usage type change", err, "artifact_id", id)
	}
	return true
}

// MoveArtifactToFolder 迁移素材到目标文件夹
// 任一 ID 未知返回 false；成员关系双侧在同一锁持有内更新，调用方
// 观察不到归属为零或两个文件夹的中间态。
func (s *Service) MoveArtifactToFolder(ctx context.Context, artifactID, folderID string) bool {
	ctx, span := tracer.Start(ctx, "asset.MoveArtifactToFolder")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	artifact, ok := s.artifacts[artifactID]
	if !ok {
		logger.Warn(ctx, "move on unknown artifact", "artifact_id", artifactID)
		return false
	}
	if !s.folders.move(artifactID, artifact.FolderID, folderID) {
		logger.Warn(ctx, "move to unknown folder", "artifact_id", artifactID, "folder_id", folderID)
		return false
	}

	artifact.FolderID = folderID
	artifact.Touch()

	if err := s.persistLocked(ctx); err != nil {
		logger.Error(ctx, "failed to persist folder move", err, "artifact_id", artifactID)
	}
	return true
}

// GetArtifact 按 ID 查找素材
func (s *Service) GetArtifact(ctx context.Context, id string) (*entity.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	artifact, ok := s.artifacts[id]
	if !ok {
		return nil, pkgerrors.ErrArtifactNotFound
	}
	return artifact, nil
}

// ListArtifacts 返回全部素材，新建在前
func (s *Service) ListArtifacts(ctx context.Context) []*entity.Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedArtifactsLocked()
}

// GetActiveArtifacts 返回当前激活的素材
func (s *Service) GetActiveArtifacts(ctx context.Context) []*entity.Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.Artifact
	for _, a := range s.sortedArtifactsLocked() {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out
}

// GetActiveArtifactsByUsageType 按使用方式筛选激活素材
func (s *Service) GetActiveArtifactsByUsageType(ctx context.Context, usageType entity.UsageType) []*entity.Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.Artifact
	for _, a := range s.sortedArtifactsLocked() {
		if a.IsActive && a.UsageType == usageType {
			out = append(out, a)
		}
	}
	return out
}

// DeactivateAllArtifacts 批量取消全部激活
// 整个批次只发出一次快照写入。
func (s *Service) DeactivateAllArtifacts(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "asset.DeactivateAllArtifacts")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, a := range s.artifacts {
		if a.IsActive {
			a.IsActive = false
			a.Touch()
			changed = true
		}
	}
	if !changed {
		return nil
	}

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.updateGauges()
	return nil
}

// Search 对当前素材集合执行检索，不修改任何状态
func (s *Service) Search(ctx context.Context, filters SearchFilters) *SearchResult {
	ctx, span := tracer.Start(ctx, "asset.Search")
	defer span.End()

	s.mu.Lock()
	collection := make([]*entity.Artifact, 0, len(s.artifacts))
	for _, a := range s.artifacts {
		collection = append(collection, a)
	}
	s.mu.Unlock()

	result := evaluateSearch(collection, filters)

	status := "hit"
	if result.TotalCount == 0 {
		status = "empty"
	}
	metrics.SearchTotal.WithLabelValues(status).Inc()
	metrics.SearchDuration.Observe(result.ExecutionTimeMs / 1000.0)
	span.SetAttributes(
		attribute.Int("search.total_count", result.TotalCount),
		attribute.Int("search.returned", len(result.Artifacts)),
	)

	return result
}

// CreateFolder 创建自定义文件夹
func (s *Service) CreateFolder(ctx context.Context, name, description, color string) (*entity.Folder, error) {
	ctx, span := tracer.Start(ctx, "asset.CreateFolder")
	defer span.End()

	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidParam, "folder name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folder := s.folders.create(name, description, color)
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return folder, nil
}

// UpdateFolder 更新文件夹字段
func (s *Service) UpdateFolder(ctx context.Context, id string, name, description, color *string) (*entity.Folder, error) {
	ctx, span := tracer.Start(ctx, "asset.UpdateFolder")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	folder, ok := s.folders.update(id, name, description, color)
	if !ok {
		return nil, pkgerrors.ErrFolderNotFound
	}
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return folder, nil
}

// DeleteFolder 删除自定义文件夹
// 默认文件夹或未知 ID 静默失败返回 false；成功时成员整体迁入
// references，素材侧的 FolderID 同步改写。
func (s *Service) DeleteFolder(ctx context.Context, id string) bool {
	ctx, span := tracer.Start(ctx, "asset.DeleteFolder")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	moved, ok := s.folders.delete(id)
	if !ok {
		logger.Warn(ctx, "folder delete refused", "folder_id", id)
		return false
	}

	for _, artifactID := range moved {
		if a, exists := s.artifacts[artifactID]; exists {
			a.FolderID = entity.FolderReferences
			a.Touch()
		}
	}

	if err := s.persistLocked(ctx); err != nil {
		logger.Error(ctx, "failed to persist folder deletion", err, "folder_id", id)
	}
	return true
}

// GetFolder 按 ID 查找文件夹
func (s *Service) GetFolder(ctx context.Context, id string) (*entity.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder, ok := s.folders.get(id)
	if !ok {
		return nil, pkgerrors.ErrFolderNotFound
	}
	return folder, nil
}

// ListFolders 返回全部文件夹
func (s *Service) ListFolders(ctx context.Context) []*entity.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.folders.list()
}

// Thumbnail 按需重建素材缩略图（data URL）
// 依赖会话内的临时字节缓存；重启后缓存为空，返回未命中错误。并发
// 请求经 singleflight 合并为一次编码。
func (s *Service) Thumbnail(ctx context.Context, id string) (string, error) {
	ctx, span := tracer.Start(ctx, "asset.Thumbnail")
	defer span.End()

	s.thumbMu.Lock()
	if cached, ok := s.thumbCache[id]; ok {
		s.thumbMu.Unlock()
		return cached, nil
	}
	data, ok := s.byteCache[id]
	s.thumbMu.Unlock()
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "no cached bytes for artifact in this session")
	}

	s.mu.Lock()
	artifact, exists := s.artifacts[id]
	var mime string
	if exists && artifact.Metadata != nil {
		mime = artifact.Metadata.MIMEType
	}
	s.mu.Unlock()
	if !exists {
		return "", pkgerrors.ErrArtifactNotFound
	}

	v, err, _ := s.thumbGroup.Do(id, func() (interface{}, error) {
		url, err := s.source.ReadAsDataURL(ctx, repository.FileInput{
			Name:     artifact.Name,
			MIMEType: mime,
			Size:     int64(len(data)),
			Data:     data,
		})
		if err != nil {
			return "", err
		}
		s.thumbMu.Lock()
		s.thumbCache[id] = url
		s.thumbMu.Unlock()
		return url, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// persistLocked 构建并写出完整快照，调用方须持有 s.mu
// 写失败向调用方返回错误：静默吞掉保存失败会造成不可察觉的数据
// 丢失。
func (s *Service) persistLocked(ctx context.Context) error {
	snapshot := &repository.Snapshot{
		Artifacts: s.sortedArtifactsLocked(),
		Folders:   s.folders.snapshot(),
	}
	if err := s.store.SaveSnapshot(ctx, snapshot); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeSnapshotSaveFailed, "snapshot write failed")
	}
	return nil
}

// sortedArtifactsLocked 新建在前的稳定顺序，调用方须持有 s.mu
func (s *Service) sortedArtifactsLocked() []*entity.Artifact {
	out := make([]*entity.Artifact, 0, len(s.artifacts))
	for _, a := range s.artifacts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// updateGauges 刷新注册量与激活量指标
func (s *Service) updateGauges() {
	active := 0
	for _, a := range s.artifacts {
		if a.IsActive {
			active++
		}
	}
	metrics.ArtifactsRegistered.Set(float64(len(s.artifacts)))
	metrics.ArtifactsActive.Set(float64(active))
}

// cacheBytes 写入会话内字节缓存
func (s *Service) cacheBytes(id string, data []byte) {
	if len(data) == 0 {
		return
	}
	s.thumbMu.Lock()
	s.byteCache[id] = data
	s.thumbMu.Unlock()
}

// dropCachedBytes 清除素材的缓存字节与缩略图
func (s *Service) dropCachedBytes(id string) {
	s.thumbMu.Lock()
	delete(s.byteCache, id)
	delete(s.thumbCache, id)
	s.thumbMu.Unlock()
}
