package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "vidtube/internal/errors"
)

// Response 统一成功响应
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorInfo 错误详情
type ErrorInfo struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Type    string      `json:"type"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse 统一错误响应
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, errType string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: ErrorInfo{
			Code:    statusCode,
			Message: message,
			Type:    errType,
		},
	})
}

// Error 按错误分类输出响应，未分类的错误一律 500 且不暴露内部信息
func Error(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		_ = c.Error(err)
		InternalError(c, "服务器内部错误")
		return
	}

	if appErr.Code == apperrors.CodeDependency || appErr.Code == apperrors.CodeInternal {
		_ = c.Error(err)
	}

	status := appErr.HTTPStatus()
	c.JSON(status, ErrorResponse{
		Error: ErrorInfo{
			Code:    status,
			Message: appErr.Message,
			Type:    errorType(appErr.Code),
			Details: appErr.Details,
		},
	})
}

func errorType(code apperrors.Code) string {
	switch code {
	case apperrors.CodeValidation:
		return "ValidationError"
	case apperrors.CodeNotFound:
		return "NotFoundError"
	case apperrors.CodeUnauthorized, apperrors.CodeForbidden:
		return "AuthorizationError"
	case apperrors.CodeConflict:
		return "ConflictError"
	case apperrors.CodeDependency:
		return "DependencyError"
	default:
		return "InternalServerError"
	}
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, "ValidationError", message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, "AuthorizationError", message)
}

func TooManyRequests(c *gin.Context, message string) {
	Fail(c, http.StatusTooManyRequests, "RateLimited", message)
}

func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, "InternalServerError", message)
}
