package repository

import (
	"context"
	"io"

	"cdn-service/domain/dto"
	"cdn-service/domain/model"
)

// IStream is the video streaming platform holding the network's libraries.
type IStream interface {
	ListCollections(ctx context.Context, libraryID int64, opts *dto.StreamListOptions) (*dto.StreamPage[model.StreamCollection], error)
	ListVideos(ctx context.Context, libraryID int64, opts *dto.StreamListOptions) (*dto.StreamPage[model.StreamVideo], error)
	// OpenVideoFile opens a file of a video on the CDN (for example play_720p.mp4).
	// rangeHeader is relayed verbatim when non-empty. The caller closes the body.
	OpenVideoFile(ctx context.Context, videoID, file, rangeHeader string) (io.ReadCloser, *dto.VideoFile, error)
}
