package http

import (
	"errors"
	"net/http"

	"cdn-service/domain/apperror"
	"cdn-service/infrastructure/logger"
	"cdn-service/infrastructure/telemetry"

	"github.com/gin-gonic/gin"
)

// respondError answers with {"error": msg} and the status the error maps to.
// Server-side failures are logged and reported to Sentry.
func respondError(ctx *gin.Context, err error) {
	respondErrorStatus(ctx, apperror.HTTPStatus(err), err)
}

func respondErrorStatus(ctx *gin.Context, status int, err error) {
	entry := logger.GetLogger().WithFields(map[string]interface{}{
		"route":  ctx.FullPath(),
		"status": status,
		"error":  err.Error(),
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
		tags := map[string]string{"route": ctx.FullPath()}
		var upstream *apperror.UpstreamError
		if errors.As(err, &upstream) {
			tags["upstream"] = upstream.Service
			tags["operation"] = upstream.Op
		}
		telemetry.CaptureError(err, tags)
	} else {
		entry.Warn("Request rejected")
	}
	ctx.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
