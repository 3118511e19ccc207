package middleware

import (
	"time"

	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger Gin日志中间件
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Duration("duration", time.Since(start)),
			zap.Int("body_size", c.Writer.Size()),
		}
		if id, ok := GetCurrentUserID(c); ok {
			fields = append(fields, zap.Int64("caller_id", id))
		}
		logger.Info("HTTP Request", fields...)

		// 依赖失败等错误由 response.Error 挂到 c.Errors 上
		for _, e := range c.Errors {
			logger.Error("Request Error",
				zap.String("path", c.Request.URL.Path),
				zap.String("error", e.Error()),
			)
		}
	}
}
