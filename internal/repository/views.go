package repository

import (
	"vidtube/internal/composer"
	"vidtube/internal/model"
)

// VideoView 视频读模型行
type VideoView struct {
	model.Video
	composer.Annotation
}

// CommentView 评论读模型行
type CommentView struct {
	model.Comment
	composer.Annotation
}

// TweetView 动态读模型行
type TweetView struct {
	model.Tweet
	composer.Annotation
}
