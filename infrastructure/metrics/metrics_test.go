package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cdn-service/infrastructure/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveUpstream_CountsByResult(t *testing.T) {
	okBefore := testutil.ToFloat64(metrics.UpstreamRequests.WithLabelValues("youtube", "test.op", "ok"))
	errBefore := testutil.ToFloat64(metrics.UpstreamRequests.WithLabelValues("youtube", "test.op", "error"))

	metrics.ObserveUpstream("youtube", "test.op", time.Now(), nil)
	metrics.ObserveUpstream("youtube", "test.op", time.Now(), errors.New("boom"))
	metrics.ObserveUpstream("youtube", "test.op", time.Now(), errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(metrics.UpstreamRequests.WithLabelValues("youtube", "test.op", "ok")))
	assert.Equal(t, errBefore+2, testutil.ToFloat64(metrics.UpstreamRequests.WithLabelValues("youtube", "test.op", "error")))
}

func TestMiddleware_LabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(metrics.Middleware())
	router.GET("/proxy_video/:videoId", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/proxy_video/:videoId", "204"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/proxy_video/abc", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/proxy_video/:videoId", "204")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "cdn_http_requests_total"))
}
