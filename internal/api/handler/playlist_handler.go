package handler

import (
	"vidtube/internal/api/dto"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/pagination"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create POST /api/v1/playlist
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.PlaylistCreateRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	info, err := h.playlistService.Create(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "创建播放列表成功", info)
}

// Get GET /api/v1/playlist/:playlistId
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := h.playlistService.Get(c.Request.Context(), middleware.CallerID(c), playlistID, pagination.FromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取播放列表成功", detail)
}

// ListByUser GET /api/v1/playlist/user/:userId
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.playlistService.ListByUser(c.Request.Context(), userID, pagination.FromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取用户播放列表成功", data)
}

// Update PATCH /api/v1/playlist/:playlistId
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.PlaylistUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	info, err := h.playlistService.Update(c.Request.Context(), middleware.CallerID(c), playlistID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "更新播放列表成功", info)
}

// Delete DELETE /api/v1/playlist/:playlistId
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, err := parseIDParam(c, "playlistId")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.playlistService.Delete(c.Request.Context(), middleware.CallerID(c), playlistID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "删除播放列表成功", gin.H{"playlist_id": playlistID})
}

// AddVideo PATCH /api/v1/playlist/add/:videoId/:playlistId
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	videoID, playlistID, ok := entryParams(c)
	if !ok {
		return
	}

	data, err := h.playlistService.AddVideo(c.Request.Context(), middleware.CallerID(c), playlistID, videoID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "添加到播放列表成功", data)
}

// RemoveVideo PATCH /api/v1/playlist/remove/:videoId/:playlistId
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	videoID, playlistID, ok := entryParams(c)
	if !ok {
		return
	}

	data, err := h.playlistService.RemoveVideo(c.Request.Context(), middleware.CallerID(c), playlistID, videoID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "从播放列表移除成功", data)
}

func entryParams(c *gin.Context) (videoID, playlistID int64, ok bool) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return 0, 0, false
	}
	playlistID, err = parseIDParam(c, "playlistId")
	if err != nil {
		response.Error(c, err)
		return 0, 0, false
	}
	return videoID, playlistID, true
}
