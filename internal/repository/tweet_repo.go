package repository

import (
	"context"

	"vidtube/internal/composer"
	"vidtube/internal/model"
	"vidtube/internal/pagination"

	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

func (r *TweetRepository) GetByID(ctx context.Context, id int64) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, id).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// UpdateContent 更新动态内容
func (r *TweetRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	result := r.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", id).Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade 删除动态及其点赞
func (r *TweetRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", model.LikeTargetTweet, id).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Tweet{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListViews 组装动态列表，ownerID 为空时列出全部
func (r *TweetRepository) ListViews(ctx context.Context, ownerID *int64, viewerID *int64, page pagination.Page) (composer.Result[TweetView], error) {
	var filters []composer.Filter
	if ownerID != nil {
		filters = append(filters, composer.Where("e.owner_id = ?", *ownerID))
	}
	return composer.List[TweetView](ctx, r.db, composer.Tweets, filters, viewerID, page)
}

// GetView 组装单条动态
func (r *TweetRepository) GetView(ctx context.Context, id int64, viewerID *int64) (*TweetView, error) {
	return composer.Get[TweetView](ctx, r.db, composer.Tweets,
		[]composer.Filter{composer.Where("e.id = ?", id)}, viewerID)
}
