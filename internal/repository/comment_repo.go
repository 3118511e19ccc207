package repository

import (
	"context"

	"vidtube/internal/composer"
	"vidtube/internal/model"
	"vidtube/internal/pagination"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateContent 更新评论内容
func (r *CommentRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	result := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade 删除评论及其点赞
func (r *CommentRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", model.LikeTargetComment, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Comment{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListViewsByVideo 组装视频下的评论列表
func (r *CommentRepository) ListViewsByVideo(ctx context.Context, videoID int64, viewerID *int64, page pagination.Page) (composer.Result[CommentView], error) {
	return composer.List[CommentView](ctx, r.db, composer.Comments,
		[]composer.Filter{composer.Where("e.video_id = ?", videoID)}, viewerID, page)
}

// GetView 组装单条评论
func (r *CommentRepository) GetView(ctx context.Context, id int64, viewerID *int64) (*CommentView, error) {
	return composer.Get[CommentView](ctx, r.db, composer.Comments,
		[]composer.Filter{composer.Where("e.id = ?", id)}, viewerID)
}
