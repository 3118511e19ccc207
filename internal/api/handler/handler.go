package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"vidtube/internal/api/middleware"
	apperrors "vidtube/internal/errors"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径中的正整数 ID
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validationf("无效的 %s", name)
	}
	return id, nil
}

// parseIDQuery 解析可选的查询参数 ID，缺省时返回 nil
func parseIDQuery(c *gin.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.Validationf("无效的 %s", name)
	}
	return &id, nil
}

// bindJSON 解析 JSON 请求体，字段规则由 service 层校验
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperrors.Validation("请求参数无效").WithCause(err)
	}
	return nil
}

// formFile 读取可选的上传文件，未上传时返回 nil；调用方负责执行 close
func formFile(c *gin.Context, field string) (*service.MediaFile, func(), error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, apperrors.Validationf("无效的上传文件 %s", field).WithCause(err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, func() {}, apperrors.Internal("打开上传文件失败").WithCause(err)
	}

	return &service.MediaFile{
		Reader:      f,
		Size:        header.Size,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, func() { _ = f.Close() }, nil
}

// viewerKey 播放量去重用的观看者标识，登录用户在 service 层按用户 ID 计
func viewerKey(c *gin.Context) string {
	if _, ok := middleware.GetCurrentUserID(c); ok {
		return ""
	}
	return "ip:" + c.ClientIP()
}
