package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"vidtube/internal/api/dto"
	"vidtube/internal/composer"
	apperrors "vidtube/internal/errors"
	"vidtube/internal/pagination"
	"vidtube/internal/repository"
	"vidtube/pkg/logger"
)

var ErrEmptyQuery = apperrors.ValidationWithDetails("q is required", map[string]string{"q": "is required"})

type SearchService struct {
	searcher  VideoSearcher
	videoRepo *repository.VideoRepository
	userRepo  *repository.UserRepository
}

// NewSearchService searcher 为 nil 时直接走数据库模糊匹配
func NewSearchService(searcher VideoSearcher, videoRepo *repository.VideoRepository, userRepo *repository.UserRepository) *SearchService {
	return &SearchService{searcher: searcher, videoRepo: videoRepo, userRepo: userRepo}
}

// SearchVideos 搜索已发布视频（ES 优先，失败则降级到 DB）
func (s *SearchService) SearchVideos(ctx context.Context, viewerID *int64, query string, ownerID *int64, page pagination.Page) (*dto.SearchVideoData, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	if ownerID != nil {
		if _, err := s.userRepo.GetByID(ctx, *ownerID); err != nil {
			return nil, storeErr("get user", err, ErrUserNotFound)
		}
	}

	if s.searcher != nil {
		data, err := s.searchFromIndex(ctx, viewerID, q, ownerID, page)
		if err == nil {
			return data, nil
		}
		if ctx.Err() != nil {
			return nil, apperrors.Dependency("search videos", ctx.Err())
		}
		logger.Warn("ES search failed, fallback to DB", zap.String("query", q), zap.Error(err))
	}
	return s.searchFromDB(ctx, viewerID, q, ownerID, page)
}

func (s *SearchService) searchFromIndex(ctx context.Context, viewerID *int64, q string, ownerID *int64, page pagination.Page) (*dto.SearchVideoData, error) {
	ids, total, err := s.searcher.SearchVideoIDs(ctx, q, ownerID, page.Offset(), page.Limit)
	if err != nil {
		return nil, err
	}

	// 索引可能滞后，以数据库中的发布状态为准
	rows, err := s.videoRepo.ListByIDs(ctx, ids, []composer.Filter{composer.Where("e.is_published = ?", true)}, viewerID)
	if err != nil {
		return nil, err
	}

	return &dto.SearchVideoData{
		Query:      q,
		Source:     dto.SearchSourceIndex,
		Videos:     orderByIDs(ids, rows),
		Pagination: pagination.NewMeta(page, total),
	}, nil
}

func (s *SearchService) searchFromDB(ctx context.Context, viewerID *int64, q string, ownerID *int64, page pagination.Page) (*dto.SearchVideoData, error) {
	pattern := likePattern(q)
	filters := []composer.Filter{
		composer.Where("e.is_published = ?", true),
		composer.Where("(LOWER(e.title) LIKE ? OR LOWER(e.description) LIKE ?)", pattern, pattern),
	}
	if ownerID != nil {
		filters = append(filters, composer.Where("e.owner_id = ?", *ownerID))
	}

	res, err := s.videoRepo.ListViews(ctx, filters, viewerID, page)
	if err != nil {
		return nil, storeErr("search videos", err, nil)
	}
	return &dto.SearchVideoData{
		Query:      q,
		Source:     dto.SearchSourceDatabase,
		Videos:     toVideoViews(res.Items),
		Pagination: res.Meta(),
	}, nil
}
