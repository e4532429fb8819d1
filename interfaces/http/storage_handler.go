package http

import (
	"fmt"
	"net/http"

	"cdn-service/domain/apperror"
	"cdn-service/domain/dto"
	"cdn-service/usecase"

	"github.com/gin-gonic/gin"
)

type IStorageHandler interface {
	UploadFile(ctx *gin.Context)
	DeleteFile(ctx *gin.Context)
	ListFiles(ctx *gin.Context)
	GetShows(ctx *gin.Context)
}

type StorageHandler struct {
	storageUseCase usecase.IStorageUseCase
}

func NewStorageHandler(storageUseCase usecase.IStorageUseCase) IStorageHandler {
	return &StorageHandler{storageUseCase: storageUseCase}
}

// UploadFile handles POST /upload_file (multipart: show_slug, image_type, file).
// The file is streamed to storage without touching local disk.
func (h *StorageHandler) UploadFile(ctx *gin.Context) {
	var req dto.StorageUploadRequest
	if err := ctx.ShouldBind(&req); err != nil {
		respondError(ctx, apperror.NewParameterError("Missing required parameters: show_slug, image_type, file"))
		return
	}

	file, err := req.File.Open()
	if err != nil {
		respondError(ctx, fmt.Errorf("failed to open uploaded file: %w", err))
		return
	}
	defer file.Close()

	res, err := h.storageUseCase.UploadFile(ctx.Request.Context(), req.ShowSlug, req.ImageType, req.File.Filename, file)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// DeleteFile handles DELETE /delete_file?show_slug=&image_type=&filename=
func (h *StorageHandler) DeleteFile(ctx *gin.Context) {
	err := h.storageUseCase.DeleteFile(ctx.Request.Context(), ctx.Query("show_slug"), ctx.Query("image_type"), ctx.Query("filename"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "File deleted successfully",
	})
}

// ListFiles handles GET /list_files?show_slug=&image_type=
func (h *StorageHandler) ListFiles(ctx *gin.Context) {
	files, err := h.storageUseCase.ListFiles(ctx.Request.Context(), ctx.Query("show_slug"), ctx.Query("image_type"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"files":  files,
	})
}

// GetShows handles GET /get_shows?show_slug=
func (h *StorageHandler) GetShows(ctx *gin.Context) {
	shows, err := h.storageUseCase.GetShows(ctx.Request.Context(), ctx.Query("show_slug"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, shows)
}
