package dto

import "vidtube/internal/pagination"

// 搜索结果来源
const (
	SearchSourceIndex    = "elasticsearch"
	SearchSourceDatabase = "database"
)

// SearchVideoData 搜索结果
type SearchVideoData struct {
	Query      string          `json:"query"`
	Source     string          `json:"source"`
	Videos     []VideoView     `json:"videos"`
	Pagination pagination.Meta `json:"pagination"`
}
