package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"cdn-service/infrastructure/logger"
	"cdn-service/interfaces/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })

	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.GET("/get_stream", func(ctx *gin.Context) { ctx.JSON(http.StatusBadRequest, gin.H{"error": "bad"}) })

	req := httptest.NewRequest(http.MethodGet, "/get_stream?x=1", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/get_stream", line["path"])
	assert.Equal(t, float64(http.StatusBadRequest), line["status"])
	assert.Equal(t, "warning", line["level"])
}
