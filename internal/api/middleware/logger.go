package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExportFormatKey is set by the export handler so the access log can tell
// downloads apart.
const ExportFormatKey = "export_format"

// Logger logs one line per request. Health probes and swagger assets are
// logged at debug.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.String("ip", c.ClientIP()),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", RequestIDFrom(c)),
		}
		if format := c.GetString(ExportFormatKey); format != "" {
			fields = append(fields, zap.String("format", format))
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fields = append(fields, zap.String("errors", errs.String()))
		}

		path := c.Request.URL.Path
		switch {
		case status >= 500:
			logger.Error("falha ao processar requisição", fields...)
		case status >= 400:
			logger.Warn("requisição rejeitada", fields...)
		case path == "/health" || strings.HasPrefix(path, "/swagger/"):
			logger.Debug("requisição concluída", fields...)
		default:
			logger.Info("requisição concluída", fields...)
		}
	}
}
