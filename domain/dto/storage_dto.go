package dto

import "mime/multipart"

// StorageUploadRequest is the multipart form of POST /upload_file.
type StorageUploadRequest struct {
	ShowSlug  string                `form:"show_slug" binding:"required"`
	ImageType string                `form:"image_type" binding:"required"`
	File      *multipart.FileHeader `form:"file" binding:"required"`
}

// StorageUploadResponse is returned after a successful upload.
type StorageUploadResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	FilePath string `json:"file_path,omitempty"`
	URL      string `json:"url,omitempty"`
}
