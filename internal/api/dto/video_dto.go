package dto

import (
	"time"

	"vidtube/internal/pagination"
)

// VideoPublishRequest 视频发布请求（multipart/form-data，文件字段 videoFile / thumbnail）
type VideoPublishRequest struct {
	Title       string  `form:"title" json:"title" validate:"notblank,max=200"`
	Description string  `form:"description" json:"description" validate:"notblank,max=5000"`
	Duration    float64 `form:"duration" json:"duration" validate:"gte=0"`
}

// VideoUpdateRequest 视频更新请求（multipart/form-data，可选文件字段 thumbnail）
type VideoUpdateRequest struct {
	Title       *string `form:"title" json:"title" validate:"omitempty,notblank,max=200"`
	Description *string `form:"description" json:"description" validate:"omitempty,notblank,max=5000"`
}

// VideoView 视频读模型
type VideoView struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	VideoURL       string        `json:"video_url"`
	ThumbnailURL   string        `json:"thumbnail_url"`
	Duration       float64       `json:"duration"`
	ViewCount      int64         `json:"view_count"`
	IsPublished    bool          `json:"is_published"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	Owner          *OwnerProfile `json:"owner"`
	LikeCount      int64         `json:"like_count"`
	ViewerHasLiked bool          `json:"viewer_has_liked"`
}

// ChannelOwner 视频详情中的作者信息（含订阅数）
type ChannelOwner struct {
	OwnerProfile
	SubscribersCount int64 `json:"subscribers_count"`
	IsSubscribed     bool  `json:"is_subscribed"`
}

// VideoDetail 视频详情
type VideoDetail struct {
	VideoView
	Owner *ChannelOwner `json:"owner"`
}

// VideoListData 视频列表数据
type VideoListData struct {
	Videos     []VideoView     `json:"videos"`
	Pagination pagination.Meta `json:"pagination"`
}

// PublishToggleData 发布状态切换结果
type PublishToggleData struct {
	VideoID     int64 `json:"video_id"`
	IsPublished bool  `json:"is_published"`
}
