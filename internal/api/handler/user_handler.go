package handler

import (
	"vidtube/internal/api/dto"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register POST /api/v1/users
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	info, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "注册成功", info)
}

// ChannelProfile GET /api/v1/users/c/:username
func (h *UserHandler) ChannelProfile(c *gin.Context) {
	profile, err := h.userService.ChannelProfile(c.Request.Context(), middleware.CallerID(c), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取频道信息成功", profile)
}
