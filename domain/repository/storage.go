package repository

import (
	"context"
	"io"

	"cdn-service/domain/model"
)

// IObjectStorage is the object store holding show images. Paths are relative to the storage zone.
type IObjectStorage interface {
	PutFile(ctx context.Context, path string, body io.Reader) error
	DeleteFile(ctx context.Context, path string) error
	// ListObjects lists a directory; dir must end with a slash.
	ListObjects(ctx context.Context, dir string) ([]model.StoredObject, error)
}
