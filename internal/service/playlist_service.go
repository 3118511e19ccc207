package service

import (
	"context"
	"strings"

	"vidtube/internal/api/dto"
	"vidtube/internal/composer"
	apperrors "vidtube/internal/errors"
	"vidtube/internal/model"
	"vidtube/internal/ownership"
	"vidtube/internal/pagination"
	"vidtube/internal/repository"
	"vidtube/internal/validation"
)

var ErrPlaylistNotFound = apperrors.NotFound("播放列表不存在")

type PlaylistService struct {
	playlistRepo *repository.PlaylistRepository
	videoRepo    *repository.VideoRepository
	userRepo     *repository.UserRepository
}

func NewPlaylistService(playlistRepo *repository.PlaylistRepository, videoRepo *repository.VideoRepository, userRepo *repository.UserRepository) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo, userRepo: userRepo}
}

// Create 创建播放列表
func (s *PlaylistService) Create(ctx context.Context, callerID *int64, req *dto.PlaylistCreateRequest) (*dto.PlaylistInfo, error) {
	ownerID, err := requireCaller(callerID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	playlist := &model.Playlist{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, storeErr("create playlist", err, nil)
	}

	info := toPlaylistInfo(playlist)
	return &info, nil
}

// Get 播放列表详情，视频按加入顺序分页组装
// 未发布的视频只对其作者可见
func (s *PlaylistService) Get(ctx context.Context, viewerID *int64, playlistID int64, page pagination.Page) (*dto.PlaylistDetail, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, storeErr("get playlist", err, ErrPlaylistNotFound)
	}

	visible := visibleTo(viewerID)
	ids, total, err := s.playlistRepo.ListVideoIDs(ctx, playlistID, visible, page)
	if err != nil {
		return nil, storeErr("list playlist entries", err, nil)
	}

	rows, err := s.videoRepo.ListByIDs(ctx, ids, visible, viewerID)
	if err != nil {
		return nil, storeErr("compose playlist videos", err, nil)
	}

	return &dto.PlaylistDetail{
		PlaylistInfo: toPlaylistInfo(playlist),
		Videos:       orderByIDs(ids, rows),
		Pagination:   pagination.NewMeta(page, total),
	}, nil
}

// ListByUser 用户的播放列表
func (s *PlaylistService) ListByUser(ctx context.Context, userID int64, page pagination.Page) (*dto.PlaylistListData, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, storeErr("get user", err, ErrUserNotFound)
	}

	playlists, total, err := s.playlistRepo.ListByOwner(ctx, userID, page)
	if err != nil {
		return nil, storeErr("list playlists", err, nil)
	}

	items := make([]dto.PlaylistInfo, 0, len(playlists))
	for i := range playlists {
		items = append(items, toPlaylistInfo(&playlists[i]))
	}
	return &dto.PlaylistListData{Playlists: items, Pagination: pagination.NewMeta(page, total)}, nil
}

// Update 更新名称或描述（仅所有者）
func (s *PlaylistService) Update(ctx context.Context, callerID *int64, playlistID int64, req *dto.PlaylistUpdateRequest) (*dto.PlaylistInfo, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.Name == nil && req.Description == nil {
		return nil, ErrNoFieldsToUpdate
	}

	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, storeErr("get playlist", err, ErrPlaylistNotFound)
	}
	if err := ownership.Require(playlist, callerID, "playlist"); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}

	updated, err := s.playlistRepo.Update(ctx, playlistID, updates)
	if err != nil {
		return nil, storeErr("update playlist", err, ErrPlaylistNotFound)
	}
	info := toPlaylistInfo(updated)
	return &info, nil
}

// Delete 删除播放列表及其条目（仅所有者）
func (s *PlaylistService) Delete(ctx context.Context, callerID *int64, playlistID int64) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return storeErr("get playlist", err, ErrPlaylistNotFound)
	}
	if err := ownership.Require(playlist, callerID, "playlist"); err != nil {
		return err
	}
	return storeErr("delete playlist", s.playlistRepo.DeleteCascade(ctx, playlistID), ErrPlaylistNotFound)
}

// AddVideo 追加视频到列表末尾，已在列表中时不做修改
func (s *PlaylistService) AddVideo(ctx context.Context, callerID *int64, playlistID, videoID int64) (*dto.PlaylistEntryData, error) {
	playlist, err := s.resolveEntry(ctx, callerID, playlistID, videoID)
	if err != nil {
		return nil, err
	}

	added, err := s.playlistRepo.AddVideo(ctx, playlist.ID, videoID)
	if err != nil {
		return nil, storeErr("add playlist video", err, nil)
	}
	return &dto.PlaylistEntryData{PlaylistID: playlistID, VideoID: videoID, Changed: added}, nil
}

// RemoveVideo 从列表移除视频，不在列表中时不做修改
func (s *PlaylistService) RemoveVideo(ctx context.Context, callerID *int64, playlistID, videoID int64) (*dto.PlaylistEntryData, error) {
	playlist, err := s.resolveEntry(ctx, callerID, playlistID, videoID)
	if err != nil {
		return nil, err
	}

	removed, err := s.playlistRepo.RemoveVideo(ctx, playlist.ID, videoID)
	if err != nil {
		return nil, storeErr("remove playlist video", err, nil)
	}
	return &dto.PlaylistEntryData{PlaylistID: playlistID, VideoID: videoID, Changed: removed}, nil
}

func (s *PlaylistService) resolveEntry(ctx context.Context, callerID *int64, playlistID, videoID int64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, storeErr("get playlist", err, ErrPlaylistNotFound)
	}
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, storeErr("get video", err, ErrVideoNotFound)
	}
	if err := ownership.Require(playlist, callerID, "playlist"); err != nil {
		return nil, err
	}
	return playlist, nil
}

// visibleTo 已发布视频对所有人可见，未发布视频只对作者可见
func visibleTo(viewerID *int64) []composer.Filter {
	if viewerID == nil {
		return []composer.Filter{composer.Where("e.is_published = ?", true)}
	}
	return []composer.Filter{composer.Where("(e.is_published = ? OR e.owner_id = ?)", true, *viewerID)}
}

// orderByIDs 按 ids 的顺序排列组装结果，缺失的 ID 跳过
func orderByIDs(ids []int64, rows []repository.VideoView) []dto.VideoView {
	byID := make(map[int64]*repository.VideoView, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	items := make([]dto.VideoView, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			items = append(items, toVideoView(r))
		}
	}
	return items
}

func toPlaylistInfo(p *model.Playlist) dto.PlaylistInfo {
	return dto.PlaylistInfo{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
