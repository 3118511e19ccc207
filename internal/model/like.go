package model

import "time"

// LikeTarget 点赞目标类型
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Like 点赞边，(liker_id, target_type, target_id) 唯一
type Like struct {
	ID         int64      `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	LikerID    int64      `gorm:"not null;uniqueIndex:uq_like_edge,priority:1;comment:点赞用户ID" json:"liker_id"`
	TargetType LikeTarget `gorm:"size:16;not null;uniqueIndex:uq_like_edge,priority:2;index:idx_likes_target,priority:1;comment:目标类型" json:"target_type"`
	TargetID   int64      `gorm:"not null;uniqueIndex:uq_like_edge,priority:3;index:idx_likes_target,priority:2;comment:目标ID" json:"target_id"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;comment:点赞时间" json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
