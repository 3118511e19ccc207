package repository

import (
	"context"

	"vidtube/internal/composer"
	"vidtube/internal/model"
	"vidtube/internal/pagination"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// Create 创建视频记录
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// Update 更新视频字段
func (r *VideoRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// IncrementViewCount 增加播放量
func (r *VideoRepository) IncrementViewCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// DeleteCascade 在一个事务中删除视频及其点赞、评论、评论的点赞、播放列表条目
func (r *VideoRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&model.Comment{}).Select("id").Where("video_id = ?", id)

		if err := tx.Where("target_type = ? AND target_id IN (?)", model.LikeTargetComment, commentIDs).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_type = ? AND target_id = ?", model.LikeTargetVideo, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.PlaylistVideo{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Video{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListViews 组装视频列表
func (r *VideoRepository) ListViews(ctx context.Context, filters []composer.Filter, viewerID *int64, page pagination.Page) (composer.Result[VideoView], error) {
	return composer.List[VideoView](ctx, r.db, composer.Videos, filters, viewerID, page)
}

// GetView 组装视频详情（含作者订阅信息）
func (r *VideoRepository) GetView(ctx context.Context, id int64, viewerID *int64) (*VideoView, error) {
	return composer.Get[VideoView](ctx, r.db, composer.VideoDetail,
		[]composer.Filter{composer.Where("e.id = ?", id)}, viewerID)
}

// ListByIDs 按给定 ID 组装视频（不分页，顺序由调用方决定）
func (r *VideoRepository) ListByIDs(ctx context.Context, ids []int64, filters []composer.Filter, viewerID *int64) ([]VideoView, error) {
	if len(ids) == 0 {
		return []VideoView{}, nil
	}
	filters = append([]composer.Filter{composer.Where("e.id IN ?", ids)}, filters...)
	res, err := composer.List[VideoView](ctx, r.db, composer.Videos, filters, viewerID, pagination.Of(1, len(ids)))
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// ListAfter 按 ID 升序返回 afterID 之后的一批视频，用于全量重建索引
func (r *VideoRepository) ListAfter(ctx context.Context, afterID int64, limit int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).Where("id > ?", afterID).Order("id ASC").Limit(limit).Find(&videos).Error
	return videos, err
}
