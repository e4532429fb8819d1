package usecase

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"cdn-service/domain/apperror"
	"cdn-service/domain/dto"
	"cdn-service/domain/model"
	"cdn-service/domain/repository"
)

const (
	TrailersCollection = "trailers"
	DefaultResolution  = "720p"
)

var resolutionPattern = regexp.MustCompile(`^[0-9]{3,4}p$`)

// IStreamUseCase exposes the network's video libraries.
type IStreamUseCase interface {
	// GetStream lists the main library's collections without thumbnails.
	GetStream(ctx context.Context) (*dto.StreamPage[model.StreamCollection], error)
	// GetStreamCollections lists up to 500 collections with preview thumbnails.
	GetStreamCollections(ctx context.Context) (*dto.StreamPage[model.StreamCollection], error)
	GetVideos(ctx context.Context, collection string) (*dto.StreamPage[model.StreamVideo], error)
	GetVideoByTitle(ctx context.Context, libraryID, title string) (*dto.StreamPage[model.StreamVideo], error)
	ProxyVideo(ctx context.Context, videoID, resolution, rangeHeader string) (io.ReadCloser, *dto.VideoFile, error)
}

// StreamLibraries identifies the libraries and hosts the stream use case serves.
type StreamLibraries struct {
	VideoLibraryID    int64
	TrailersLibraryID int64
	CDNHost           string
	EmbedBaseURL      string
}

type StreamUseCase struct {
	stream    repository.IStream
	libraries StreamLibraries
}

func NewStreamUseCase(stream repository.IStream, libraries StreamLibraries) IStreamUseCase {
	if libraries.TrailersLibraryID == 0 {
		libraries.TrailersLibraryID = libraries.VideoLibraryID
	}
	libraries.EmbedBaseURL = strings.TrimRight(libraries.EmbedBaseURL, "/")
	libraries.CDNHost = strings.TrimRight(strings.TrimPrefix(strings.TrimPrefix(libraries.CDNHost, "https://"), "http://"), "/")
	return &StreamUseCase{stream: stream, libraries: libraries}
}

func (u *StreamUseCase) GetStream(ctx context.Context) (*dto.StreamPage[model.StreamCollection], error) {
	thumbnails := false
	return u.listCollections(ctx, &dto.StreamListOptions{
		Page:              1,
		ItemsPerPage:      100,
		OrderBy:           "date",
		IncludeThumbnails: &thumbnails,
	})
}

func (u *StreamUseCase) GetStreamCollections(ctx context.Context) (*dto.StreamPage[model.StreamCollection], error) {
	thumbnails := true
	return u.listCollections(ctx, &dto.StreamListOptions{
		Page:              1,
		ItemsPerPage:      500,
		OrderBy:           "date",
		IncludeThumbnails: &thumbnails,
	})
}

// GetVideos lists the main library, or the trailers library when collection is "trailers".
func (u *StreamUseCase) GetVideos(ctx context.Context, collection string) (*dto.StreamPage[model.StreamVideo], error) {
	libraryID := u.libraries.VideoLibraryID
	if collection == TrailersCollection {
		libraryID = u.libraries.TrailersLibraryID
	}
	return u.listVideos(ctx, libraryID, nil)
}

// GetVideoByTitle searches a library; libraryID defaults to the main library.
func (u *StreamUseCase) GetVideoByTitle(ctx context.Context, libraryID, title string) (*dto.StreamPage[model.StreamVideo], error) {
	if title == "" {
		return nil, apperror.NewParameterError("Missing title parameter")
	}
	id := u.libraries.VideoLibraryID
	if libraryID != "" {
		parsed, err := strconv.ParseInt(libraryID, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, apperror.NewParameterError("invalid libraryId %q", libraryID)
		}
		id = parsed
	}
	return u.listVideos(ctx, id, &dto.StreamListOptions{
		Page:         1,
		ItemsPerPage: 10,
		Search:       title,
		OrderBy:      "date",
	})
}

// ProxyVideo opens play_<resolution>.mp4 of a video on the CDN.
func (u *StreamUseCase) ProxyVideo(ctx context.Context, videoID, resolution, rangeHeader string) (io.ReadCloser, *dto.VideoFile, error) {
	if videoID == "" {
		return nil, nil, apperror.NewParameterError("Missing videoId")
	}
	if strings.ContainsAny(videoID, `/\`) || videoID == "." || videoID == ".." {
		return nil, nil, apperror.NewParameterError("invalid videoId %q", videoID)
	}
	if resolution == "" {
		resolution = DefaultResolution
	}
	if !resolutionPattern.MatchString(resolution) {
		return nil, nil, apperror.NewParameterError("invalid resolution %q", resolution)
	}
	body, meta, err := u.stream.OpenVideoFile(ctx, videoID, "play_"+resolution+".mp4", rangeHeader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open video %s: %w", videoID, err)
	}
	return body, meta, nil
}

func (u *StreamUseCase) listCollections(ctx context.Context, opts *dto.StreamListOptions) (*dto.StreamPage[model.StreamCollection], error) {
	page, err := u.stream.ListCollections(ctx, u.libraries.VideoLibraryID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return page, nil
}

func (u *StreamUseCase) listVideos(ctx context.Context, libraryID int64, opts *dto.StreamListOptions) (*dto.StreamPage[model.StreamVideo], error) {
	page, err := u.stream.ListVideos(ctx, libraryID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos of library %d: %w", libraryID, err)
	}
	for i := range page.Items {
		u.decorate(&page.Items[i], libraryID)
	}
	return page, nil
}

// decorate fills the derived player and image URLs of a video.
func (u *StreamUseCase) decorate(video *model.StreamVideo, libraryID int64) {
	if video.Guid == "" {
		return
	}
	if u.libraries.EmbedBaseURL != "" {
		video.EmbedURL = fmt.Sprintf("%s/%d/%s", u.libraries.EmbedBaseURL, libraryID, video.Guid)
	}
	if u.libraries.CDNHost == "" {
		return
	}
	base := "https://" + u.libraries.CDNHost + "/" + video.Guid
	if video.ThumbnailFileName != "" {
		video.ThumbnailURL = base + "/" + video.ThumbnailFileName
	}
	video.PreviewURL = base + "/preview.webp"
	video.PlaylistURL = base + "/playlist.m3u8"
}
