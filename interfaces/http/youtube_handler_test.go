package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cdn-service/domain/apperror"
	"cdn-service/domain/model"
	httpHandler "cdn-service/interfaces/http"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockYouTubeUseCase struct {
	mock.Mock
}

func (m *MockYouTubeUseCase) GetAllEpisodesSorted(ctx context.Context, playlistName string) ([]model.Episode, error) {
	args := m.Called(ctx, playlistName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Episode), args.Error(1)
}

func (m *MockYouTubeUseCase) GetPlaylistItems(ctx context.Context, channel, playlistName string) ([]model.YouTubePlaylistItem, error) {
	args := m.Called(ctx, channel, playlistName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.YouTubePlaylistItem), args.Error(1)
}

func (m *MockYouTubeUseCase) GetPlaylists(ctx context.Context, channel string) ([]model.YouTubePlaylist, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.YouTubePlaylist), args.Error(1)
}

func newYouTubeRouter(uc *MockYouTubeUseCase) *gin.Engine {
	handler := httpHandler.NewYouTubeHandler(uc, "tnoradio")
	router := gin.New()
	router.GET("/get_all_episodes_sorted", handler.GetAllEpisodesSorted)
	router.GET("/get_playlist_items", handler.GetPlaylistItems)
	router.GET("/get_youtube_playlists", handler.GetYouTubePlaylists)
	return router
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetAllEpisodesSorted_OK(t *testing.T) {
	uc := new(MockYouTubeUseCase)
	uc.On("GetAllEpisodesSorted", mock.Anything, "Season 1").Return([]model.Episode{{
		YouTubePlaylistItem: model.YouTubePlaylistItem{Title: "Ep 1", VideoID: "abc123", PublishedAt: "2024-01-01T00:00:00Z"},
		VideoURL:            "https://www.youtube.com/watch?v=abc123",
		Channel:             "tnoradio",
	}}, nil).Once()

	w := serve(newYouTubeRouter(uc), httptest.NewRequest(http.MethodGet, "/get_all_episodes_sorted?playlist_name=Season+1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, map[string]string{
		"title":        "Ep 1",
		"video_id":     "abc123",
		"published_at": "2024-01-01T00:00:00Z",
		"video_url":    "https://www.youtube.com/watch?v=abc123",
		"channel":      "tnoradio",
	}, body[0])
}

func TestGetAllEpisodesSorted_EmptyIsArray(t *testing.T) {
	uc := new(MockYouTubeUseCase)
	uc.On("GetAllEpisodesSorted", mock.Anything, "nothing").Return([]model.Episode{}, nil).Once()

	w := serve(newYouTubeRouter(uc), httptest.NewRequest(http.MethodGet, "/get_all_episodes_sorted?playlist_name=nothing", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetAllEpisodesSorted_MissingName(t *testing.T) {
	uc := new(MockYouTubeUseCase)
	uc.On("GetAllEpisodesSorted", mock.Anything, "").Return(nil, apperror.NewParameterError("Missing playlist_name parameter")).Once()

	w := serve(newYouTubeRouter(uc), httptest.NewRequest(http.MethodGet, "/get_all_episodes_sorted", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing playlist_name parameter"}`, w.Body.String())
}

func TestGetAllEpisodesSorted_UpstreamFailure(t *testing.T) {
	uc := new(MockYouTubeUseCase)
	uc.On("GetAllEpisodesSorted", mock.Anything, "Season 1").
		Return(nil, &apperror.UpstreamError{Service: "youtube", Op: "playlists.list", StatusCode: 403, Err: errors.New("quotaExceeded")}).Once()

	w := serve(newYouTubeRouter(uc), httptest.NewRequest(http.MethodGet, "/get_all_episodes_sorted?playlist_name=Season+1", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "quotaExceeded")
}

func TestGetPlaylistItems_DefaultChannel(t *testing.T) {
	uc := new(MockYouTubeUseCase)
	uc.On("GetPlaylistItems", mock.Anything, "tnoradio", "Morning").Return([]model.YouTubePlaylistItem{}, nil).Once()
	uc.On("GetPlaylistItems", mock.Anything, "programas", "Morning").Return([]model.YouTubePlaylistItem{{VideoID: "v1"}}, nil).Once()

	router := newYouTubeRouter(uc)
	w := serve(router, httptest.NewRequest(http.MethodGet, "/get_playlist_items?playlist_name=Morning", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = serve(router, httptest.NewRequest(http.MethodGet, "/get_playlist_items?channel=programas&playlist_name=Morning", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"video_id":"v1"`)
	uc.AssertExpectations(t)
}

func TestGetYouTubePlaylists_UnknownChannelStrict(t *testing.T) {
	uc := new(MockYouTubeUseCase)
	uc.On("GetPlaylists", mock.Anything, "nope").Return(nil, apperror.ErrUnknownChannel).Once()
	uc.On("GetPlaylists", mock.Anything, "tnoradio").Return([]model.YouTubePlaylist{{Title: "Morning", PlaylistID: "PL1"}}, nil).Once()

	router := newYouTubeRouter(uc)
	w := serve(router, httptest.NewRequest(http.MethodGet, "/get_youtube_playlists?channel=nope", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/get_youtube_playlists", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"title":"Morning","playlist_id":"PL1"}]`, w.Body.String())
}

func TestHealth(t *testing.T) {
	router := gin.New()
	router.GET("/health", httpHandler.NewHealthHandler().Health)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
