package handler

import (
	"vidtube/internal/api/dto"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	apperrors "vidtube/internal/errors"
	"vidtube/internal/pagination"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// List GET /api/v1/videos?page&limit&userId&query
func (h *VideoHandler) List(c *gin.Context) {
	ownerID, err := parseIDQuery(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.videoService.List(c.Request.Context(), middleware.CallerID(c), ownerID, c.Query("query"), pagination.FromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取视频列表成功", data)
}

// Publish POST /api/v1/videos（multipart: videoFile, thumbnail, title, description, duration）
func (h *VideoHandler) Publish(c *gin.Context) {
	var req dto.VideoPublishRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperrors.Validation("请求参数无效").WithCause(err))
		return
	}

	video, closeVideo, err := formFile(c, "videoFile")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeVideo()

	thumbnail, closeThumb, err := formFile(c, "thumbnail")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeThumb()

	view, err := h.videoService.Publish(c.Request.Context(), middleware.CallerID(c), &req, video, thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "视频发布成功", view)
}

// Detail GET /api/v1/videos/:videoId
func (h *VideoHandler) Detail(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := h.videoService.Detail(c.Request.Context(), middleware.CallerID(c), viewerKey(c), videoID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取视频详情成功", detail)
}

// Update PATCH /api/v1/videos/:videoId（multipart: title, description, thumbnail 可选）
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperrors.Validation("请求参数无效").WithCause(err))
		return
	}

	thumbnail, closeThumb, err := formFile(c, "thumbnail")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeThumb()

	view, err := h.videoService.Update(c.Request.Context(), middleware.CallerID(c), videoID, &req, thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "更新视频成功", view)
}

// Delete DELETE /api/v1/videos/:videoId
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), middleware.CallerID(c), videoID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "删除视频成功", gin.H{"video_id": videoID})
}

// TogglePublish PATCH /api/v1/videos/toggle/publish/:videoId
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.videoService.TogglePublish(c.Request.Context(), middleware.CallerID(c), videoID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "切换发布状态成功", data)
}
