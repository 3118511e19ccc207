package handler

import (
	"vidtube/internal/api/dto"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/pagination"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListByVideo GET /api/v1/comments/:videoId
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.commentService.ListByVideo(c.Request.Context(), middleware.CallerID(c), videoID, pagination.FromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取评论列表成功", data)
}

// Create POST /api/v1/comments/:videoId
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CommentCreateRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.commentService.Create(c.Request.Context(), middleware.CallerID(c), videoID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "发表评论成功", view)
}

// Update PATCH /api/v1/comments/c/:commentId
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CommentUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.commentService.Update(c.Request.Context(), middleware.CallerID(c), commentID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "更新评论成功", view)
}

// Delete DELETE /api/v1/comments/c/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), middleware.CallerID(c), commentID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "删除评论成功", gin.H{"comment_id": commentID})
}
