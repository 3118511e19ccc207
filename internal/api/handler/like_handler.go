package handler

import (
	"context"

	"vidtube/internal/api/dto"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/pagination"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

type toggleFunc func(ctx context.Context, callerID *int64, targetID int64) (*dto.ToggleData, error)

// ToggleVideo POST /api/v1/likes/toggle/v/:videoId
func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	h.toggle(c, "videoId", h.likeService.ToggleVideo)
}

// ToggleComment POST /api/v1/likes/toggle/c/:commentId
func (h *LikeHandler) ToggleComment(c *gin.Context) {
	h.toggle(c, "commentId", h.likeService.ToggleComment)
}

// ToggleTweet POST /api/v1/likes/toggle/t/:tweetId
func (h *LikeHandler) ToggleTweet(c *gin.Context) {
	h.toggle(c, "tweetId", h.likeService.ToggleTweet)
}

func (h *LikeHandler) toggle(c *gin.Context, param string, fn toggleFunc) {
	targetID, err := parseIDParam(c, param)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := fn(c.Request.Context(), middleware.CallerID(c), targetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "取消点赞成功"
	if data.State {
		message = "点赞成功"
	}
	response.OK(c, message, data)
}

// LikedVideos GET /api/v1/likes/videos
func (h *LikeHandler) LikedVideos(c *gin.Context) {
	data, err := h.likeService.LikedVideos(c.Request.Context(), middleware.CallerID(c), pagination.FromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取点赞视频成功", data)
}
