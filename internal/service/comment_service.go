package service

import (
	"context"
	"strings"

	"vidtube/internal/api/dto"
	apperrors "vidtube/internal/errors"
	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/internal/model"
	"vidtube/internal/ownership"
	"vidtube/internal/pagination"
	"vidtube/internal/repository"
	"vidtube/internal/validation"
)

var ErrCommentNotFound = apperrors.NotFound("评论不存在")

type CommentService struct {
	commentRepo *repository.CommentRepository
	videoRepo   *repository.VideoRepository
	events      EventPublisher
}

func NewCommentService(commentRepo *repository.CommentRepository, videoRepo *repository.VideoRepository, events EventPublisher) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo, events: events}
}

// Create 发表评论，返回新评论的读模型
func (s *CommentService) Create(ctx context.Context, callerID *int64, videoID int64, req *dto.CommentCreateRequest) (*dto.CommentView, error) {
	ownerID, err := requireCaller(callerID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, storeErr("get video", err, ErrVideoNotFound)
	}

	comment := &model.Comment{
		VideoID: videoID,
		OwnerID: ownerID,
		Content: strings.TrimSpace(req.Content),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, storeErr("create comment", err, nil)
	}

	publish(ctx, s.events, infraKafka.EventCommentCreated, comment.ID, ownerID, map[string]int64{"video_id": videoID})

	return s.view(ctx, comment.ID, callerID)
}

// Update 更新评论内容（仅作者本人）
func (s *CommentService) Update(ctx context.Context, callerID *int64, commentID int64, req *dto.CommentUpdateRequest) (*dto.CommentView, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, storeErr("get comment", err, ErrCommentNotFound)
	}
	if err := ownership.Require(comment, callerID, "comment"); err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateContent(ctx, commentID, strings.TrimSpace(req.Content)); err != nil {
		return nil, storeErr("update comment", err, ErrCommentNotFound)
	}

	return s.view(ctx, commentID, callerID)
}

// Delete 删除评论及其点赞（仅作者本人）
func (s *CommentService) Delete(ctx context.Context, callerID *int64, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return storeErr("get comment", err, ErrCommentNotFound)
	}
	if err := ownership.Require(comment, callerID, "comment"); err != nil {
		return err
	}
	return storeErr("delete comment", s.commentRepo.DeleteCascade(ctx, commentID), ErrCommentNotFound)
}

// ListByVideo 获取视频评论列表，按发表时间倒序
func (s *CommentService) ListByVideo(ctx context.Context, viewerID *int64, videoID int64, page pagination.Page) (*dto.CommentListData, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, storeErr("get video", err, ErrVideoNotFound)
	}

	res, err := s.commentRepo.ListViewsByVideo(ctx, videoID, viewerID, page)
	if err != nil {
		return nil, storeErr("list comments", err, nil)
	}

	items := make([]dto.CommentView, 0, len(res.Items))
	for i := range res.Items {
		items = append(items, toCommentView(&res.Items[i]))
	}
	return &dto.CommentListData{Comments: items, Pagination: res.Meta()}, nil
}

func (s *CommentService) view(ctx context.Context, commentID int64, viewerID *int64) (*dto.CommentView, error) {
	row, err := s.commentRepo.GetView(ctx, commentID, viewerID)
	if err != nil {
		return nil, storeErr("compose comment", err, ErrCommentNotFound)
	}
	v := toCommentView(row)
	return &v, nil
}

func toCommentView(r *repository.CommentView) dto.CommentView {
	return dto.CommentView{
		ID:             r.ID,
		VideoID:        r.VideoID,
		Content:        r.Content,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		Owner:          toOwnerProfile(r.Owner()),
		LikeCount:      r.LikeCount,
		ViewerHasLiked: r.ViewerHasLiked,
	}
}
