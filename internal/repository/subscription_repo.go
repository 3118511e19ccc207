package repository

import (
	"context"

	"vidtube/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Toggle 切换订阅状态，返回切换后是否处于订阅中
func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	return toggleEdge(ctx, r.db,
		&model.Subscription{SubscriberID: subscriberID, ChannelID: channelID},
		"subscriber_id = ? AND channel_id = ?", subscriberID, channelID,
	)
}

// Exists 检查订阅关系是否存在
func (r *SubscriptionRepository) Exists(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

// CountSubscribers 统计频道订阅者数
func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

// CountSubscribedTo 统计用户订阅的频道数
func (r *SubscriptionRepository) CountSubscribedTo(ctx context.Context, subscriberID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}
