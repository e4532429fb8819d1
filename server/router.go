package server

import (
	"time"

	"cdn-service/infrastructure/metrics"
	httpHandler "cdn-service/interfaces/http"
	"cdn-service/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Health  httpHandler.IHealthHandler
	YouTube httpHandler.IYouTubeHandler
	Storage httpHandler.IStorageHandler
	Stream  httpHandler.IStreamHandler
}

// RouterOptions carries the middleware settings.
type RouterOptions struct {
	// AllowOrigins empty or ["*"] allows any origin.
	AllowOrigins []string
	// Limiter nil disables rate limiting.
	Limiter middleware.Limiter
}

func InitiateRouter(handlers Handlers, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(opts.AllowOrigins)))
	router.Use(metrics.Middleware())
	router.Use(middleware.RequestLogger())

	router.GET("/health", handlers.Health.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/")
	if opts.Limiter != nil {
		api.Use(middleware.RateLimit(opts.Limiter))
	}

	api.GET("/get_all_episodes_sorted", handlers.YouTube.GetAllEpisodesSorted)
	api.GET("/get_playlist_items", handlers.YouTube.GetPlaylistItems)
	api.GET("/get_youtube_playlists", handlers.YouTube.GetYouTubePlaylists)

	api.POST("/upload_file", handlers.Storage.UploadFile)
	api.DELETE("/delete_file", handlers.Storage.DeleteFile)
	api.GET("/list_files", handlers.Storage.ListFiles)
	api.GET("/get_shows", handlers.Storage.GetShows)

	api.GET("/get_stream", handlers.Stream.GetStream)
	api.GET("/get_stream_collections", handlers.Stream.GetStreamCollections)
	api.GET("/get_videos", handlers.Stream.GetVideos)
	api.GET("/get_video_by_title", handlers.Stream.GetVideoByTitle)
	api.GET("/proxy_video/:videoId", handlers.Stream.ProxyVideo)

	return router
}

func corsConfig(origins []string) cors.Config {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Range", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length", "Content-Range", "Accept-Ranges", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return config
}
