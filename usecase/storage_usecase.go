package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cdn-service/domain/apperror"
	"cdn-service/domain/dto"
	"cdn-service/domain/model"
	"cdn-service/domain/repository"
	"cdn-service/infrastructure/logger"
)

// IStorageUseCase manages show images in the object store. Objects live under
// <show_slug>/<image_type>/<filename>.
type IStorageUseCase interface {
	UploadFile(ctx context.Context, showSlug, imageType, filename string, body io.Reader) (*dto.StorageUploadResponse, error)
	DeleteFile(ctx context.Context, showSlug, imageType, filename string) error
	ListFiles(ctx context.Context, showSlug, imageType string) ([]model.StoredObject, error)
	GetShows(ctx context.Context, showSlug string) ([]model.StoredObject, error)
}

type StorageUseCase struct {
	storage repository.IObjectStorage
	// publicBaseURL is the pull zone serving the storage zone, without a trailing slash.
	publicBaseURL string
}

func NewStorageUseCase(storage repository.IObjectStorage, pullZone string) IStorageUseCase {
	base := strings.TrimRight(pullZone, "/")
	if base != "" && !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return &StorageUseCase{storage: storage, publicBaseURL: base}
}

func (u *StorageUseCase) UploadFile(ctx context.Context, showSlug, imageType, filename string, body io.Reader) (*dto.StorageUploadResponse, error) {
	if showSlug == "" || imageType == "" || filename == "" || body == nil {
		return nil, apperror.NewParameterError("Missing required parameters: show_slug, image_type, file")
	}
	path, err := ObjectPath(showSlug, imageType, filename)
	if err != nil {
		return nil, err
	}
	if err := u.storage.PutFile(ctx, path, body); err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", path, err)
	}

	logger.GetLogger().WithField("path", path).Info("File uploaded")
	return &dto.StorageUploadResponse{
		Status:   "success",
		Message:  "File uploaded successfully",
		FilePath: imageType + "/" + filename,
		URL:      u.publicURL(path),
	}, nil
}

func (u *StorageUseCase) DeleteFile(ctx context.Context, showSlug, imageType, filename string) error {
	if showSlug == "" || imageType == "" || filename == "" {
		return apperror.NewParameterError("Missing required parameters: show_slug, image_type, filename")
	}
	path, err := ObjectPath(showSlug, imageType, filename)
	if err != nil {
		return err
	}
	if err := u.storage.DeleteFile(ctx, path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	logger.GetLogger().WithField("path", path).Info("File deleted")
	return nil
}

// ListFiles lists <show_slug>/ or, when imageType is set, <show_slug>/<image_type>/.
func (u *StorageUseCase) ListFiles(ctx context.Context, showSlug, imageType string) ([]model.StoredObject, error) {
	if showSlug == "" {
		return nil, apperror.NewParameterError("Missing required parameter: show_slug")
	}
	segments := []string{showSlug}
	if imageType != "" {
		segments = append(segments, imageType)
	}
	return u.list(ctx, segments...)
}

// GetShows lists <show_slug>/, or the zone root when showSlug is empty.
func (u *StorageUseCase) GetShows(ctx context.Context, showSlug string) ([]model.StoredObject, error) {
	if showSlug == "" {
		return u.list(ctx)
	}
	return u.list(ctx, showSlug)
}

func (u *StorageUseCase) list(ctx context.Context, segments ...string) ([]model.StoredObject, error) {
	dir := ""
	if len(segments) > 0 {
		path, err := ObjectPath(segments...)
		if err != nil {
			return nil, err
		}
		dir = path + "/"
	}
	objects, err := u.storage.ListObjects(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", dir, err)
	}
	if objects == nil {
		objects = []model.StoredObject{}
	}
	for i := range objects {
		if !objects[i].IsDirectory {
			objects[i].Url = u.publicURL(dir + objects[i].ObjectName)
		}
	}
	return objects, nil
}

func (u *StorageUseCase) publicURL(path string) string {
	if u.publicBaseURL == "" {
		return ""
	}
	return u.publicBaseURL + "/" + path
}

// ObjectPath joins path segments, rejecting empty segments and anything that could
// escape the show's directory.
func ObjectPath(segments ...string) (string, error) {
	for _, s := range segments {
		if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
			return "", apperror.NewParameterError("invalid path segment %q", s)
		}
	}
	return strings.Join(segments, "/"), nil
}
