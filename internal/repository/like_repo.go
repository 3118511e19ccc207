package repository

import (
	"context"

	"vidtube/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle 切换点赞状态，返回切换后是否处于点赞中
func (r *LikeRepository) Toggle(ctx context.Context, likerID int64, target model.LikeTarget, targetID int64) (bool, error) {
	return toggleEdge(ctx, r.db,
		&model.Like{LikerID: likerID, TargetType: target, TargetID: targetID},
		"liker_id = ? AND target_type = ? AND target_id = ?", likerID, target, targetID,
	)
}

// CountByTarget 统计目标的点赞数
func (r *LikeRepository) CountByTarget(ctx context.Context, target model.LikeTarget, targetID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("target_type = ? AND target_id = ?", target, targetID).
		Count(&count).Error
	return count, err
}
