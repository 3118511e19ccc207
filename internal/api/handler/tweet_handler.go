package handler

import (
	"vidtube/internal/api/dto"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/pagination"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// List GET /api/v1/tweets
func (h *TweetHandler) List(c *gin.Context) {
	h.list(c, nil)
}

// ListByUser GET /api/v1/tweets/user/:userId
func (h *TweetHandler) ListByUser(c *gin.Context) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}
	h.list(c, &userID)
}

func (h *TweetHandler) list(c *gin.Context, ownerID *int64) {
	data, err := h.tweetService.List(c.Request.Context(), middleware.CallerID(c), ownerID, pagination.FromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取动态列表成功", data)
}

// Create POST /api/v1/tweets
func (h *TweetHandler) Create(c *gin.Context) {
	var req dto.TweetCreateRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.tweetService.Create(c.Request.Context(), middleware.CallerID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "发布动态成功", view)
}

// Update PATCH /api/v1/tweets/:tweetId
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, err := parseIDParam(c, "tweetId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.TweetUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.tweetService.Update(c.Request.Context(), middleware.CallerID(c), tweetID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "更新动态成功", view)
}

// Delete DELETE /api/v1/tweets/:tweetId
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, err := parseIDParam(c, "tweetId")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.tweetService.Delete(c.Request.Context(), middleware.CallerID(c), tweetID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "删除动态成功", gin.H{"tweet_id": tweetID})
}
