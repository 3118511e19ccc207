// Package pagination 统一的分页参数归一化，所有列表接口共用同一条路径。
package pagination

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page 归一化后的分页窗口，Page >= 1，Limit ∈ [1, MaxLimit]
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize 归一化 page/limit 原始参数
// 非数字或缺失时取默认值；page < 1 取 1；limit < 1 取 1；limit > 100 取 100
func Normalize(pageParam, limitParam string) Page {
	page := parseOr(pageParam, DefaultPage)
	if page < 1 {
		page = 1
	}

	limit := parseOr(limitParam, DefaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Page{Page: page, Limit: limit}
}

// Of 由整数构造并归一化
func Of(page, limit int) Page {
	return Normalize(strconv.Itoa(page), strconv.Itoa(limit))
}

// FromQuery 从请求 query 中读取 page/limit
func FromQuery(c *gin.Context) Page {
	return Normalize(c.Query("page"), c.Query("limit"))
}

func parseOr(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// Offset 跳过的记录数
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages 向上取整，total 为 0 时返回 0
func TotalPages(total int64, limit int) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// Meta 列表响应中的分页信息
type Meta struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int64 `json:"total_pages"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

// NewMeta 根据窗口和总数生成分页信息
func NewMeta(p Page, total int64) Meta {
	totalPages := TotalPages(total, p.Limit)
	return Meta{
		Page:        p.Page,
		Limit:       p.Limit,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNextPage: int64(p.Page) < totalPages,
		HasPrevPage: p.Page > 1,
	}
}
