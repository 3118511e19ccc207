package service

import (
	"context"
	"strings"

	"vidtube/internal/api/dto"
	apperrors "vidtube/internal/errors"
	"vidtube/internal/model"
	"vidtube/internal/ownership"
	"vidtube/internal/pagination"
	"vidtube/internal/repository"
	"vidtube/internal/validation"
)

var ErrTweetNotFound = apperrors.NotFound("动态不存在")

type TweetService struct {
	tweetRepo *repository.TweetRepository
	userRepo  *repository.UserRepository
}

func NewTweetService(tweetRepo *repository.TweetRepository, userRepo *repository.UserRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

// Create 发布动态
func (s *TweetService) Create(ctx context.Context, callerID *int64, req *dto.TweetCreateRequest) (*dto.TweetView, error) {
	ownerID, err := requireCaller(callerID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	tweet := &model.Tweet{OwnerID: ownerID, Content: strings.TrimSpace(req.Content)}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, storeErr("create tweet", err, nil)
	}
	return s.view(ctx, tweet.ID, callerID)
}

// Update 更新动态（仅作者本人）
func (s *TweetService) Update(ctx context.Context, callerID *int64, tweetID int64, req *dto.TweetUpdateRequest) (*dto.TweetView, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, storeErr("get tweet", err, ErrTweetNotFound)
	}
	if err := ownership.Require(tweet, callerID, "tweet"); err != nil {
		return nil, err
	}

	if err := s.tweetRepo.UpdateContent(ctx, tweetID, strings.TrimSpace(req.Content)); err != nil {
		return nil, storeErr("update tweet", err, ErrTweetNotFound)
	}
	return s.view(ctx, tweetID, callerID)
}

// Delete 删除动态及其点赞（仅作者本人）
func (s *TweetService) Delete(ctx context.Context, callerID *int64, tweetID int64) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return storeErr("get tweet", err, ErrTweetNotFound)
	}
	if err := ownership.Require(tweet, callerID, "tweet"); err != nil {
		return err
	}
	return storeErr("delete tweet", s.tweetRepo.DeleteCascade(ctx, tweetID), ErrTweetNotFound)
}

// List 动态列表，ownerID 为空时列出全部
func (s *TweetService) List(ctx context.Context, viewerID, ownerID *int64, page pagination.Page) (*dto.TweetListData, error) {
	if ownerID != nil {
		if _, err := s.userRepo.GetByID(ctx, *ownerID); err != nil {
			return nil, storeErr("get user", err, ErrUserNotFound)
		}
	}

	res, err := s.tweetRepo.ListViews(ctx, ownerID, viewerID, page)
	if err != nil {
		return nil, storeErr("list tweets", err, nil)
	}

	items := make([]dto.TweetView, 0, len(res.Items))
	for i := range res.Items {
		items = append(items, toTweetView(&res.Items[i]))
	}
	return &dto.TweetListData{Tweets: items, Pagination: res.Meta()}, nil
}

func (s *TweetService) view(ctx context.Context, tweetID int64, viewerID *int64) (*dto.TweetView, error) {
	row, err := s.tweetRepo.GetView(ctx, tweetID, viewerID)
	if err != nil {
		return nil, storeErr("compose tweet", err, ErrTweetNotFound)
	}
	v := toTweetView(row)
	return &v, nil
}

func toTweetView(r *repository.TweetView) dto.TweetView {
	return dto.TweetView{
		ID:             r.ID,
		Content:        r.Content,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		Owner:          toOwnerProfile(r.Owner()),
		LikeCount:      r.LikeCount,
		ViewerHasLiked: r.ViewerHasLiked,
	}
}
