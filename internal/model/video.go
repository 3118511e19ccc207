package model

import "time"

// Video 视频模型
type Video struct {
	ID              int64     `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	OwnerID         int64     `gorm:"not null;index:idx_videos_owner_id;index:idx_composite_owner_published,priority:1;comment:视频作者ID" json:"owner_id"`
	Title           string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	Description     string    `gorm:"type:text;not null;comment:视频描述" json:"description"`
	VideoURL        string    `gorm:"size:500;not null;comment:视频播放地址" json:"video_url"`
	ThumbnailURL    string    `gorm:"size:500;not null;comment:视频封面地址" json:"thumbnail_url"`
	VideoObject     string    `gorm:"size:500;comment:视频对象存储键" json:"-"`
	ThumbnailObject string    `gorm:"size:500;comment:封面对象存储键" json:"-"`
	Duration        float64   `gorm:"not null;default:0;comment:视频时长（秒）" json:"duration"`
	ViewCount       int64     `gorm:"not null;default:0;comment:播放量" json:"view_count"`
	IsPublished     bool      `gorm:"not null;default:false;index:idx_composite_owner_published,priority:2;comment:是否公开" json:"is_published"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index:idx_videos_created_at;comment:创建时间" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) OwnerRef() int64 {
	return v.OwnerID
}
