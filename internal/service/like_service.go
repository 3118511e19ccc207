package service

import (
	"context"

	"vidtube/internal/api/dto"
	"vidtube/internal/composer"
	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/internal/model"
	"vidtube/internal/pagination"
	"vidtube/internal/repository"
)

type LikeService struct {
	likeRepo    *repository.LikeRepository
	videoRepo   *repository.VideoRepository
	commentRepo *repository.CommentRepository
	tweetRepo   *repository.TweetRepository
	events      EventPublisher
}

func NewLikeService(
	likeRepo *repository.LikeRepository,
	videoRepo *repository.VideoRepository,
	commentRepo *repository.CommentRepository,
	tweetRepo *repository.TweetRepository,
	events EventPublisher,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
		events:      events,
	}
}

// ToggleVideo 切换视频点赞
func (s *LikeService) ToggleVideo(ctx context.Context, callerID *int64, videoID int64) (*dto.ToggleData, error) {
	return s.toggle(ctx, callerID, model.LikeTargetVideo, videoID, func() error {
		_, err := s.videoRepo.GetByID(ctx, videoID)
		return storeErr("get video", err, ErrVideoNotFound)
	})
}

// ToggleComment 切换评论点赞
func (s *LikeService) ToggleComment(ctx context.Context, callerID *int64, commentID int64) (*dto.ToggleData, error) {
	return s.toggle(ctx, callerID, model.LikeTargetComment, commentID, func() error {
		_, err := s.commentRepo.GetByID(ctx, commentID)
		return storeErr("get comment", err, ErrCommentNotFound)
	})
}

// ToggleTweet 切换动态点赞
func (s *LikeService) ToggleTweet(ctx context.Context, callerID *int64, tweetID int64) (*dto.ToggleData, error) {
	return s.toggle(ctx, callerID, model.LikeTargetTweet, tweetID, func() error {
		_, err := s.tweetRepo.GetByID(ctx, tweetID)
		return storeErr("get tweet", err, ErrTweetNotFound)
	})
}

// toggle 目标存在时切换点赞边，允许给自己的内容点赞
func (s *LikeService) toggle(ctx context.Context, callerID *int64, target model.LikeTarget, targetID int64, resolve func() error) (*dto.ToggleData, error) {
	likerID, err := requireCaller(callerID)
	if err != nil {
		return nil, err
	}
	if err := resolve(); err != nil {
		return nil, err
	}

	state, err := s.likeRepo.Toggle(ctx, likerID, target, targetID)
	if err != nil {
		return nil, storeErr("toggle like", err, nil)
	}

	publish(ctx, s.events, infraKafka.EventLikeToggled, targetID, likerID, infraKafka.TogglePayload{
		TargetType: string(target),
		State:      state,
	})

	return &dto.ToggleData{State: state}, nil
}

// LikedVideos 调用者点赞过的视频，未发布视频只保留自己的
func (s *LikeService) LikedVideos(ctx context.Context, callerID *int64, page pagination.Page) (*dto.VideoListData, error) {
	likerID, err := requireCaller(callerID)
	if err != nil {
		return nil, err
	}

	filters := append(visibleTo(callerID), composer.Where(
		"EXISTS (SELECT 1 FROM likes ml WHERE ml.target_type = ? AND ml.target_id = e.id AND ml.liker_id = ?)",
		model.LikeTargetVideo, likerID,
	))

	res, err := s.videoRepo.ListViews(ctx, filters, callerID, page)
	if err != nil {
		return nil, storeErr("list liked videos", err, nil)
	}
	return &dto.VideoListData{Videos: toVideoViews(res.Items), Pagination: res.Meta()}, nil
}
