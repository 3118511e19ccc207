package handler

import (
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/pagination"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchVideos GET /api/v1/search/videos?q&userId&page&limit
func (h *SearchHandler) SearchVideos(c *gin.Context) {
	ownerID, err := parseIDQuery(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.searchService.SearchVideos(c.Request.Context(), middleware.CallerID(c), c.Query("q"), ownerID, pagination.FromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "搜索成功", data)
}
