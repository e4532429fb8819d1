package http

import (
	"net/http"

	"cdn-service/usecase"

	"github.com/gin-gonic/gin"
)

// IYouTubeHandler defines the interface for YouTube HTTP handlers
type IYouTubeHandler interface {
	GetAllEpisodesSorted(ctx *gin.Context)
	GetPlaylistItems(ctx *gin.Context)
	GetYouTubePlaylists(ctx *gin.Context)
}

// YouTubeHandler implements the YouTube HTTP handlers
type YouTubeHandler struct {
	youtubeUseCase usecase.IYouTubeUseCase
	// defaultChannel answers requests without a channel parameter.
	defaultChannel string
}

// NewYouTubeHandler creates a new YouTube handler instance
func NewYouTubeHandler(youtubeUseCase usecase.IYouTubeUseCase, defaultChannel string) IYouTubeHandler {
	return &YouTubeHandler{
		youtubeUseCase: youtubeUseCase,
		defaultChannel: defaultChannel,
	}
}

// GetAllEpisodesSorted handles GET /get_all_episodes_sorted?playlist_name=
func (h *YouTubeHandler) GetAllEpisodesSorted(ctx *gin.Context) {
	episodes, err := h.youtubeUseCase.GetAllEpisodesSorted(ctx.Request.Context(), ctx.Query("playlist_name"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, episodes)
}

// GetPlaylistItems handles GET /get_playlist_items?channel=&playlist_name=
func (h *YouTubeHandler) GetPlaylistItems(ctx *gin.Context) {
	channel := ctx.DefaultQuery("channel", h.defaultChannel)
	items, err := h.youtubeUseCase.GetPlaylistItems(ctx.Request.Context(), channel, ctx.Query("playlist_name"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// GetYouTubePlaylists handles GET /get_youtube_playlists?channel=
func (h *YouTubeHandler) GetYouTubePlaylists(ctx *gin.Context) {
	channel := ctx.DefaultQuery("channel", h.defaultChannel)
	playlists, err := h.youtubeUseCase.GetPlaylists(ctx.Request.Context(), channel)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, playlists)
}
