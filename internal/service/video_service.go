package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vidtube/internal/api/dto"
	"vidtube/internal/composer"
	"vidtube/internal/config"
	apperrors "vidtube/internal/errors"
	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/internal/model"
	"vidtube/internal/ownership"
	"vidtube/internal/pagination"
	"vidtube/internal/repository"
	"vidtube/internal/validation"
	"vidtube/pkg/logger"
)

var (
	ErrVideoNotFound     = apperrors.NotFound("视频不存在")
	ErrNoFieldsToUpdate  = apperrors.Validation("没有需要更新的字段")
	ErrVideoFileRequired = apperrors.Validation("videoFile is required")
	ErrThumbnailRequired = apperrors.Validation("thumbnail is required")
	ErrUnsupportedFormat = apperrors.Validation("不支持的文件格式")
	ErrMediaFileTooLarge = apperrors.Validation("文件大小超出限制")
)

type VideoService struct {
	videoRepo *repository.VideoRepository
	userRepo  *repository.UserRepository
	blobs     BlobStore
	events    EventPublisher
	views     ViewDeduper
	media     config.MediaConfig
}

func NewVideoService(
	videoRepo *repository.VideoRepository,
	userRepo *repository.UserRepository,
	blobs BlobStore,
	events EventPublisher,
	views ViewDeduper,
	media config.MediaConfig,
) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		blobs:     blobs,
		events:    events,
		views:     views,
		media:     media,
	}
}

// Publish 发布视频：先上传视频与封面，拿到两个 URL 后才写入记录
func (s *VideoService) Publish(ctx context.Context, callerID *int64, req *dto.VideoPublishRequest, video, thumbnail *MediaFile) (*dto.VideoView, error) {
	ownerID, err := requireCaller(callerID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoFileRequired
	}
	if thumbnail == nil {
		return nil, ErrThumbnailRequired
	}
	if err := checkMedia(video, s.media.VideoFormats, s.media.MaxVideoBytes()); err != nil {
		return nil, err
	}
	if err := checkMedia(thumbnail, s.media.ThumbnailFormats, s.media.MaxThumbnailBytes()); err != nil {
		return nil, err
	}

	videoObject := objectName("videos", ownerID, video.Ext())
	videoURL, err := s.blobs.Put(ctx, videoObject, video.Reader, video.Size, video.ContentType)
	if err != nil {
		logger.Error("Upload video file failed", zap.Int64("owner_id", ownerID), zap.Error(err))
		return nil, apperrors.Dependency("upload video file", err)
	}

	thumbObject := objectName("thumbnails", ownerID, thumbnail.Ext())
	thumbURL, err := s.blobs.Put(ctx, thumbObject, thumbnail.Reader, thumbnail.Size, thumbnail.ContentType)
	if err != nil {
		logger.Error("Upload thumbnail failed", zap.Int64("owner_id", ownerID), zap.Error(err))
		s.removeBlobs(ctx, videoObject)
		return nil, apperrors.Dependency("upload thumbnail", err)
	}

	record := &model.Video{
		OwnerID:         ownerID,
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		VideoURL:        videoURL,
		ThumbnailURL:    thumbURL,
		VideoObject:     videoObject,
		ThumbnailObject: thumbObject,
		Duration:        req.Duration,
		IsPublished:     true,
	}
	if err := s.videoRepo.Create(ctx, record); err != nil {
		logger.Error("Create video record failed, removing uploaded blobs",
			zap.Int64("owner_id", ownerID), zap.Error(err))
		s.removeBlobs(ctx, videoObject, thumbObject)
		return nil, storeErr("create video", err, nil)
	}

	publish(ctx, s.events, infraKafka.EventVideoPublished, record.ID, ownerID, infraKafka.VideoPayload{
		OwnerID:     ownerID,
		Title:       record.Title,
		IsPublished: record.IsPublished,
	})

	return s.view(ctx, record.ID, callerID)
}

// Update 更新标题、描述或封面（仅作者本人），至少提供一项
func (s *VideoService) Update(ctx context.Context, callerID *int64, videoID int64, req *dto.VideoUpdateRequest, thumbnail *MediaFile) (*dto.VideoView, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.Title == nil && req.Description == nil && thumbnail == nil {
		return nil, ErrNoFieldsToUpdate
	}
	if thumbnail != nil {
		if err := checkMedia(thumbnail, s.media.ThumbnailFormats, s.media.MaxThumbnailBytes()); err != nil {
			return nil, err
		}
	}

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, storeErr("get video", err, ErrVideoNotFound)
	}
	if err := ownership.Require(video, callerID, "video"); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}

	var newThumb string
	if thumbnail != nil {
		newThumb = objectName("thumbnails", video.OwnerID, thumbnail.Ext())
		url, err := s.blobs.Put(ctx, newThumb, thumbnail.Reader, thumbnail.Size, thumbnail.ContentType)
		if err != nil {
			logger.Error("Upload thumbnail failed", zap.Int64("video_id", videoID), zap.Error(err))
			return nil, apperrors.Dependency("upload thumbnail", err)
		}
		updates["thumbnail_url"] = url
		updates["thumbnail_object"] = newThumb
	}

	updated, err := s.videoRepo.Update(ctx, videoID, updates)
	if err != nil {
		if newThumb != "" {
			s.removeBlobs(ctx, newThumb)
		}
		return nil, storeErr("update video", err, ErrVideoNotFound)
	}
	if newThumb != "" {
		s.removeBlobs(ctx, video.ThumbnailObject)
	}

	publish(ctx, s.events, infraKafka.EventVideoUpdated, videoID, *callerID, infraKafka.VideoPayload{
		OwnerID:     updated.OwnerID,
		Title:       updated.Title,
		IsPublished: updated.IsPublished,
	})

	return s.view(ctx, videoID, callerID)
}

// TogglePublish 切换发布状态（仅作者本人）
func (s *VideoService) TogglePublish(ctx context.Context, callerID *int64, videoID int64) (*dto.PublishToggleData, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, storeErr("get video", err, ErrVideoNotFound)
	}
	if err := ownership.Require(video, callerID, "video"); err != nil {
		return nil, err
	}

	updated, err := s.videoRepo.Update(ctx, videoID, map[string]interface{}{"is_published": !video.IsPublished})
	if err != nil {
		return nil, storeErr("toggle publish", err, ErrVideoNotFound)
	}

	publish(ctx, s.events, infraKafka.EventVideoUpdated, videoID, *callerID, infraKafka.VideoPayload{
		OwnerID:     updated.OwnerID,
		Title:       updated.Title,
		IsPublished: updated.IsPublished,
	})

	return &dto.PublishToggleData{VideoID: videoID, IsPublished: updated.IsPublished}, nil
}

// Delete 删除视频及其关联数据，提交后尽力清理媒体对象
func (s *VideoService) Delete(ctx context.Context, callerID *int64, videoID int64) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return storeErr("get video", err, ErrVideoNotFound)
	}
	if err := ownership.Require(video, callerID, "video"); err != nil {
		return err
	}

	if err := s.videoRepo.DeleteCascade(ctx, videoID); err != nil {
		return storeErr("delete video", err, ErrVideoNotFound)
	}

	s.removeBlobs(ctx, video.VideoObject, video.ThumbnailObject)

	publish(ctx, s.events, infraKafka.EventVideoDeleted, videoID, *callerID, infraKafka.VideoPayload{
		OwnerID: video.OwnerID,
	})
	return nil
}

// List 视频列表：只含已发布视频，作者查看自己的频道时包含未发布视频
// ownerID 为空时列出全部作者，query 按标题模糊匹配
func (s *VideoService) List(ctx context.Context, viewerID, ownerID *int64, query string, page pagination.Page) (*dto.VideoListData, error) {
	var filters []composer.Filter
	if ownerID != nil {
		if _, err := s.userRepo.GetByID(ctx, *ownerID); err != nil {
			return nil, storeErr("get user", err, ErrUserNotFound)
		}
		filters = append(filters, composer.Where("e.owner_id = ?", *ownerID))
	}
	if ownerID == nil || !sameUser(viewerID, *ownerID) {
		filters = append(filters, composer.Where("e.is_published = ?", true))
	}
	if q := strings.TrimSpace(query); q != "" {
		filters = append(filters, composer.Where("LOWER(e.title) LIKE ?", likePattern(q)))
	}

	res, err := s.videoRepo.ListViews(ctx, filters, viewerID, page)
	if err != nil {
		return nil, storeErr("list videos", err, nil)
	}
	return &dto.VideoListData{Videos: toVideoViews(res.Items), Pagination: res.Meta()}, nil
}

// Detail 视频详情：未发布视频只对作者可见
// viewerKey 标识观看者（登录用户或客户端 IP），窗口期内重复观看不增加播放量
func (s *VideoService) Detail(ctx context.Context, viewerID *int64, viewerKey string, videoID int64) (*dto.VideoDetail, error) {
	row, err := s.videoRepo.GetView(ctx, videoID, viewerID)
	if err != nil {
		return nil, storeErr("get video", err, ErrVideoNotFound)
	}
	if !row.IsPublished && !sameUser(viewerID, row.OwnerID) {
		return nil, ErrVideoNotFound
	}

	if s.countView(ctx, videoID, viewerID, viewerKey) {
		row.ViewCount++
	}

	return toVideoDetail(row), nil
}

// countView 窗口期内首次观看时增加播放量，返回是否计数
func (s *VideoService) countView(ctx context.Context, videoID int64, viewerID *int64, viewerKey string) bool {
	if viewerID != nil {
		viewerKey = "user:" + strconv.FormatInt(*viewerID, 10)
	}
	if s.views != nil && viewerKey != "" {
		first, err := s.views.FirstView(ctx, videoID, viewerKey)
		if err != nil {
			logger.Warn("View dedup unavailable, skip counting", zap.Int64("video_id", videoID), zap.Error(err))
			return false
		}
		if !first {
			return false
		}
	}
	if err := s.videoRepo.IncrementViewCount(ctx, videoID); err != nil {
		logger.Warn("Increment view count failed", zap.Int64("video_id", videoID), zap.Error(err))
		return false
	}
	return true
}

func (s *VideoService) view(ctx context.Context, videoID int64, viewerID *int64) (*dto.VideoView, error) {
	row, err := s.videoRepo.GetView(ctx, videoID, viewerID)
	if err != nil {
		return nil, storeErr("compose video", err, ErrVideoNotFound)
	}
	v := toVideoView(row)
	return &v, nil
}

func (s *VideoService) removeBlobs(ctx context.Context, objects ...string) {
	ctx = context.WithoutCancel(ctx)
	for _, obj := range objects {
		if obj == "" {
			continue
		}
		if err := s.blobs.Remove(ctx, obj); err != nil {
			logger.Warn("Remove blob failed", zap.String("object", obj), zap.Error(err))
		}
	}
}

func checkMedia(f *MediaFile, formats []string, maxBytes int64) error {
	ext := f.Ext()
	if len(formats) > 0 && !slices.Contains(formats, ext) {
		return ErrUnsupportedFormat.WithDetails(map[string]string{"format": ext})
	}
	if maxBytes > 0 && f.Size > maxBytes {
		return ErrMediaFileTooLarge.WithDetails(map[string]int64{"max_bytes": maxBytes})
	}
	return nil
}

func objectName(prefix string, ownerID int64, ext string) string {
	return fmt.Sprintf("%s/%d/%s.%s", prefix, ownerID, uuid.NewString(), ext)
}

func likePattern(q string) string {
	q = strings.ToLower(q)
	q = strings.NewReplacer(`%`, "", `_`, "").Replace(q)
	return "%" + q + "%"
}

func toVideoView(r *repository.VideoView) dto.VideoView {
	return dto.VideoView{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		VideoURL:       r.VideoURL,
		ThumbnailURL:   r.ThumbnailURL,
		Duration:       r.Duration,
		ViewCount:      r.ViewCount,
		IsPublished:    r.IsPublished,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		Owner:          toOwnerProfile(r.Owner()),
		LikeCount:      r.LikeCount,
		ViewerHasLiked: r.ViewerHasLiked,
	}
}

func toVideoViews(rows []repository.VideoView) []dto.VideoView {
	items := make([]dto.VideoView, 0, len(rows))
	for i := range rows {
		items = append(items, toVideoView(&rows[i]))
	}
	return items
}

func toVideoDetail(r *repository.VideoView) *dto.VideoDetail {
	detail := &dto.VideoDetail{VideoView: toVideoView(r)}
	if owner := detail.VideoView.Owner; owner != nil {
		detail.Owner = &dto.ChannelOwner{
			OwnerProfile:     *owner,
			SubscribersCount: r.SubscribersCount,
			IsSubscribed:     r.ViewerIsSubscribed,
		}
	}
	return detail
}
