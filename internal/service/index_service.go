package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/pkg/logger"
)

// VideoSyncer 写入 / 删除搜索索引中的视频文档
type VideoSyncer interface {
	SyncVideo(ctx context.Context, v *model.Video, ownerName string) error
	DeleteVideo(ctx context.Context, videoID int64) error
	BulkSyncVideos(ctx context.Context, videos []model.Video, ownerNames map[int64]string) (success, failed int, err error)
}

// IndexService 消费视频领域事件，保持搜索索引与数据库一致
type IndexService struct {
	videoRepo *repository.VideoRepository
	userRepo  *repository.UserRepository
	index     VideoSyncer
}

func NewIndexService(videoRepo *repository.VideoRepository, userRepo *repository.UserRepository, index VideoSyncer) *IndexService {
	return &IndexService{videoRepo: videoRepo, userRepo: userRepo, index: index}
}

// HandleEvent 处理单个事件，非视频事件直接忽略
func (s *IndexService) HandleEvent(ctx context.Context, evt *infraKafka.DomainEvent) error {
	switch evt.Type {
	case infraKafka.EventVideoPublished, infraKafka.EventVideoUpdated:
		return s.syncVideo(ctx, evt.AggregateID)
	case infraKafka.EventVideoDeleted:
		if err := s.index.DeleteVideo(ctx, evt.AggregateID); err != nil {
			return fmt.Errorf("delete video %d from index: %w", evt.AggregateID, err)
		}
		logger.Info("Video removed from index", zap.Int64("video_id", evt.AggregateID))
		return nil
	default:
		return nil
	}
}

// syncVideo 重新读取数据库中的最新状态写入索引；视频已被删除时从索引移除
func (s *IndexService) syncVideo(ctx context.Context, videoID int64) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.index.DeleteVideo(ctx, videoID)
	}
	if err != nil {
		return fmt.Errorf("load video %d: %w", videoID, err)
	}

	ownerName := ""
	if owner, err := s.userRepo.GetByID(ctx, video.OwnerID); err == nil {
		ownerName = owner.UserName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("load owner %d: %w", video.OwnerID, err)
	}

	if err := s.index.SyncVideo(ctx, video, ownerName); err != nil {
		return fmt.Errorf("sync video %d: %w", videoID, err)
	}
	logger.Info("Video synced to index", zap.Int64("video_id", videoID), zap.Bool("published", video.IsPublished))
	return nil
}

// Reindex 分批把数据库中的全部视频写入索引，返回成功与失败数
func (s *IndexService) Reindex(ctx context.Context, batchSize int) (synced, failed int, err error) {
	var afterID int64
	for {
		videos, err := s.videoRepo.ListAfter(ctx, afterID, batchSize)
		if err != nil {
			return synced, failed, fmt.Errorf("list videos after %d: %w", afterID, err)
		}
		if len(videos) == 0 {
			return synced, failed, nil
		}

		ownerIDs := make([]int64, 0, len(videos))
		for i := range videos {
			ownerIDs = append(ownerIDs, videos[i].OwnerID)
		}
		names, err := s.userRepo.UserNames(ctx, ownerIDs)
		if err != nil {
			return synced, failed, fmt.Errorf("load owner names: %w", err)
		}

		ok, bad, err := s.index.BulkSyncVideos(ctx, videos, names)
		if err != nil {
			return synced, failed, err
		}
		synced += ok
		failed += bad
		afterID = videos[len(videos)-1].ID
	}
}
