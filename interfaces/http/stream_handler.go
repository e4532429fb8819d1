package http

import (
	"errors"
	"net/http"

	"cdn-service/domain/apperror"
	"cdn-service/usecase"

	"github.com/gin-gonic/gin"
)

type IStreamHandler interface {
	GetStream(ctx *gin.Context)
	GetStreamCollections(ctx *gin.Context)
	GetVideos(ctx *gin.Context)
	GetVideoByTitle(ctx *gin.Context)
	ProxyVideo(ctx *gin.Context)
}

type StreamHandler struct {
	streamUseCase usecase.IStreamUseCase
}

func NewStreamHandler(streamUseCase usecase.IStreamUseCase) IStreamHandler {
	return &StreamHandler{streamUseCase: streamUseCase}
}

// GetStream handles GET /get_stream
func (h *StreamHandler) GetStream(ctx *gin.Context) {
	page, err := h.streamUseCase.GetStream(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// GetStreamCollections handles GET /get_stream_collections
func (h *StreamHandler) GetStreamCollections(ctx *gin.Context) {
	page, err := h.streamUseCase.GetStreamCollections(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// GetVideos handles GET /get_videos?collection=
func (h *StreamHandler) GetVideos(ctx *gin.Context) {
	page, err := h.streamUseCase.GetVideos(ctx.Request.Context(), ctx.Query("collection"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// GetVideoByTitle handles GET /get_video_by_title?title=&libraryId=
func (h *StreamHandler) GetVideoByTitle(ctx *gin.Context) {
	page, err := h.streamUseCase.GetVideoByTitle(ctx.Request.Context(), ctx.Query("libraryId"), ctx.Query("title"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// ProxyVideo handles GET /proxy_video/:videoId?resolution=, relaying the CDN's
// status (200 or 206) and range headers.
func (h *StreamHandler) ProxyVideo(ctx *gin.Context) {
	body, meta, err := h.streamUseCase.ProxyVideo(ctx.Request.Context(), ctx.Param("videoId"), ctx.Query("resolution"), ctx.GetHeader("Range"))
	if err != nil {
		respondErrorStatus(ctx, proxyStatus(err), err)
		return
	}
	defer body.Close()

	headers := map[string]string{}
	for name, value := range map[string]string{
		"Content-Range": meta.ContentRange,
		"Accept-Ranges": meta.AcceptRanges,
		"Last-Modified": meta.LastModified,
		"ETag":          meta.ETag,
	} {
		if value != "" {
			headers[name] = value
		}
	}
	contentType := meta.ContentType
	if contentType == "" {
		contentType = "video/mp4"
	}
	ctx.DataFromReader(meta.StatusCode, meta.ContentLength, contentType, body, headers)
}

// proxyStatus relays the CDN's 404 and 416; other upstream failures are 502.
func proxyStatus(err error) int {
	status := apperror.HTTPStatus(err)
	if status != http.StatusInternalServerError {
		return status
	}
	var upstream *apperror.UpstreamError
	if errors.As(err, &upstream) {
		switch upstream.StatusCode {
		case http.StatusNotFound, http.StatusRequestedRangeNotSatisfiable:
			return upstream.StatusCode
		}
	}
	return http.StatusBadGateway
}
