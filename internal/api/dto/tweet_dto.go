package dto

import (
	"time"

	"vidtube/internal/pagination"
)

// TweetCreateRequest 发布动态请求
type TweetCreateRequest struct {
	Content string `json:"content" validate:"notblank,max=280"`
}

// TweetUpdateRequest 更新动态请求
type TweetUpdateRequest struct {
	Content string `json:"content" validate:"notblank,max=280"`
}

// TweetView 动态读模型
type TweetView struct {
	ID             int64         `json:"id"`
	Content        string        `json:"content"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	Owner          *OwnerProfile `json:"owner"`
	LikeCount      int64         `json:"like_count"`
	ViewerHasLiked bool          `json:"viewer_has_liked"`
}

// TweetListData 动态列表数据
type TweetListData struct {
	Tweets     []TweetView     `json:"tweets"`
	Pagination pagination.Meta `json:"pagination"`
}
