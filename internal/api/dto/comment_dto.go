package dto

import (
	"time"

	"vidtube/internal/pagination"
)

// CommentCreateRequest 发表评论请求
type CommentCreateRequest struct {
	Content string `json:"content" validate:"notblank,max=1000"`
}

// CommentUpdateRequest 更新评论请求
type CommentUpdateRequest struct {
	Content string `json:"content" validate:"notblank,max=1000"`
}

// CommentView 评论读模型
type CommentView struct {
	ID             int64         `json:"id"`
	VideoID        int64         `json:"video_id"`
	Content        string        `json:"content"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	Owner          *OwnerProfile `json:"owner"`
	LikeCount      int64         `json:"like_count"`
	ViewerHasLiked bool          `json:"viewer_has_liked"`
}

// CommentListData 评论列表数据
type CommentListData struct {
	Comments   []CommentView   `json:"comments"`
	Pagination pagination.Meta `json:"pagination"`
}
