// Package service 写操作编排与读模型服务：校验 → 解析引用实体 → 归属校验 → 写入 → 重新组装。
package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"vidtube/internal/api/dto"
	"vidtube/internal/composer"
	apperrors "vidtube/internal/errors"
	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/pkg/logger"
)

// BlobStore 媒体对象存储
type BlobStore interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
}

// EventPublisher 领域事件发布
type EventPublisher interface {
	Publish(ctx context.Context, evt *infraKafka.DomainEvent) error
}

// ViewDeduper 播放量去重
type ViewDeduper interface {
	FirstView(ctx context.Context, videoID int64, viewer string) (bool, error)
}

// VideoSearcher 视频全文检索，返回按相关度排序的 ID
type VideoSearcher interface {
	SearchVideoIDs(ctx context.Context, query string, ownerID *int64, from, size int) ([]int64, int64, error)
}

// MediaFile 上传的媒体文件
type MediaFile struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// Ext 小写扩展名，不含点
func (f *MediaFile) Ext() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Filename), "."))
}

var ErrAuthRequired = apperrors.Unauthorized("需要登录")

const publishTimeout = 3 * time.Second

// requireCaller 写操作要求已登录
func requireCaller(callerID *int64) (int64, error) {
	if callerID == nil {
		return 0, ErrAuthRequired
	}
	return *callerID, nil
}

// storeErr 将存储层错误归类：记录不存在 → notFound，其余 → DEPENDENCY
func storeErr(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		if appErr.Code == apperrors.CodeNotFound && notFound != nil {
			return notFound
		}
		return err
	}
	logger.Error("Store operation failed", zap.String("op", op), zap.Error(err))
	return apperrors.Dependency(op, err)
}

// publish 写入成功后发布事件，失败只记录日志
func publish(ctx context.Context, events EventPublisher, eventType string, aggregateID, actorID int64, payload any) {
	if events == nil {
		return
	}
	evt, err := infraKafka.NewEvent(eventType, aggregateID, actorID, payload)
	if err != nil {
		logger.Warn("Build domain event failed", zap.String("type", eventType), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := events.Publish(ctx, evt); err != nil {
		logger.Warn("Publish domain event failed",
			zap.String("type", eventType),
			zap.Int64("aggregate_id", aggregateID),
			zap.Error(err),
		)
	}
}

func toOwnerProfile(p *composer.Profile) *dto.OwnerProfile {
	if p == nil {
		return nil
	}
	return &dto.OwnerProfile{
		ID:       p.ID,
		UserName: p.UserName,
		FullName: p.FullName,
		Avatar:   p.Avatar,
	}
}

func sameUser(a *int64, b int64) bool {
	return a != nil && *a == b
}
