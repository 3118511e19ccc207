package handler

import (
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/pagination"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle POST /api/v1/subscriptions/c/:channelId
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, err := parseIDParam(c, "channelId")
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.subscriptionService.Toggle(c.Request.Context(), middleware.CallerID(c), channelID)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "取消订阅成功"
	if data.State {
		message = "订阅成功"
	}
	response.OK(c, message, data)
}

// Subscribers GET /api/v1/subscriptions/c/:channelId
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	channelID, err := parseIDParam(c, "channelId")
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.subscriptionService.Subscribers(c.Request.Context(), channelID, pagination.FromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取订阅者列表成功", data)
}

// SubscribedChannels GET /api/v1/subscriptions/u/:subscriberId
func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	subscriberID, err := parseIDParam(c, "subscriberId")
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.subscriptionService.SubscribedChannels(c.Request.Context(), subscriberID, pagination.FromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取已订阅频道成功", data)
}
