package model

import "time"

// Subscription 订阅边，(subscriber_id, channel_id) 唯一
type Subscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:订阅记录ID" json:"id"`
	SubscriberID int64     `gorm:"not null;uniqueIndex:uq_subscription_edge;index:idx_subscriptions_subscriber_id;comment:订阅者ID" json:"subscriber_id"`
	ChannelID    int64     `gorm:"not null;uniqueIndex:uq_subscription_edge;index:idx_subscriptions_channel_id;comment:频道（用户）ID" json:"channel_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index:idx_subscriptions_created_at;comment:订阅时间" json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
