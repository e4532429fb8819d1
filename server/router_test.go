package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	httpHandler "cdn-service/interfaces/http"
	"cdn-service/interfaces/middleware"
	"cdn-service/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubYouTube struct{}

func (stubYouTube) GetAllEpisodesSorted(ctx *gin.Context) { ctx.JSON(http.StatusOK, []string{}) }
func (stubYouTube) GetPlaylistItems(ctx *gin.Context)     { ctx.Status(http.StatusOK) }
func (stubYouTube) GetYouTubePlaylists(ctx *gin.Context)  { ctx.Status(http.StatusOK) }

type stubStorage struct{}

func (stubStorage) UploadFile(ctx *gin.Context) { ctx.Status(http.StatusOK) }
func (stubStorage) DeleteFile(ctx *gin.Context) { ctx.Status(http.StatusOK) }
func (stubStorage) ListFiles(ctx *gin.Context)  { ctx.Status(http.StatusOK) }
func (stubStorage) GetShows(ctx *gin.Context)   { ctx.Status(http.StatusOK) }

type stubStream struct{}

func (stubStream) GetStream(ctx *gin.Context)            { ctx.Status(http.StatusOK) }
func (stubStream) GetStreamCollections(ctx *gin.Context) { ctx.Status(http.StatusOK) }
func (stubStream) GetVideos(ctx *gin.Context)            { ctx.Status(http.StatusOK) }
func (stubStream) GetVideoByTitle(ctx *gin.Context)      { ctx.Status(http.StatusOK) }
func (stubStream) ProxyVideo(ctx *gin.Context)           { ctx.String(http.StatusOK, ctx.Param("videoId")) }

func newRouter(opts server.RouterOptions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return server.InitiateRouter(server.Handlers{
		Health:  httpHandler.NewHealthHandler(),
		YouTube: stubYouTube{},
		Storage: stubStorage{},
		Stream:  stubStream{},
	}, opts)
}

func do(router http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_Routes(t *testing.T) {
	router := newRouter(server.RouterOptions{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/health"},
		{http.MethodGet, "/metrics"},
		{http.MethodGet, "/get_all_episodes_sorted"},
		{http.MethodGet, "/get_playlist_items"},
		{http.MethodGet, "/get_youtube_playlists"},
		{http.MethodPost, "/upload_file"},
		{http.MethodDelete, "/delete_file"},
		{http.MethodGet, "/list_files"},
		{http.MethodGet, "/get_shows"},
		{http.MethodGet, "/get_stream"},
		{http.MethodGet, "/get_stream_collections"},
		{http.MethodGet, "/get_videos"},
		{http.MethodGet, "/get_video_by_title"},
		{http.MethodGet, "/proxy_video/abc"},
	} {
		w := do(router, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tc.method, tc.path)
	}
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/nope", nil).Code)
}

func TestRouter_CORSAllowsAnyOriginByDefault(t *testing.T) {
	router := newRouter(server.RouterOptions{})
	w := do(router, http.MethodGet, "/health", map[string]string{"Origin": "https://tnoradio.com"})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CORSRestrictedOrigins(t *testing.T) {
	router := newRouter(server.RouterOptions{AllowOrigins: []string{"https://tnoradio.com"}})

	w := do(router, http.MethodGet, "/health", map[string]string{"Origin": "https://tnoradio.com"})
	assert.Equal(t, "https://tnoradio.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(router, http.MethodGet, "/health", map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_RateLimitSkipsHealth(t *testing.T) {
	router := newRouter(server.RouterOptions{Limiter: middleware.NewMemoryLimiter(60, 1)})

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/get_stream", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(router, http.MethodGet, "/get_stream", nil).Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/health", nil).Code)
}
