package bunny

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cdn-service/domain/apperror"
	"cdn-service/domain/dto"
	"cdn-service/domain/model"
	"cdn-service/domain/repository"
	"cdn-service/infrastructure/logger"

	"github.com/google/go-querystring/query"
)

const defaultStreamBaseURL = "https://video.bunnycdn.com/library"

// StreamConfig configures the Bunny Stream client.
type StreamConfig struct {
	APIKey  string
	BaseURL string // https://video.bunnycdn.com/library
	CDNHost string // vz-xxxx.b-cdn.net, serves the video files
	Timeout time.Duration
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// StreamClient talks to the Bunny Stream REST API and its CDN.
type StreamClient struct {
	http    *http.Client
	baseURL string
	cdnURL  string
	apiKey  string
	timeout time.Duration
}

// NewStreamClient creates a new Bunny Stream client
func NewStreamClient(config *StreamConfig) repository.IStream {
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	base := config.BaseURL
	if base == "" {
		base = defaultStreamBaseURL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cdnURL := ""
	if config.CDNHost != "" {
		cdnURL = baseURL(config.CDNHost)
	}
	if config.APIKey == "" {
		logger.GetLogger().Warn("Bunny Stream API key not set")
	}
	return &StreamClient{
		http:    client,
		baseURL: strings.TrimRight(base, "/"),
		cdnURL:  cdnURL,
		apiKey:  config.APIKey,
		timeout: timeout,
	}
}

// ListCollections returns one page of a library's collections.
func (c *StreamClient) ListCollections(ctx context.Context, libraryID int64, opts *dto.StreamListOptions) (*dto.StreamPage[model.StreamCollection], error) {
	page := &dto.StreamPage[model.StreamCollection]{}
	if err := c.getJSON(ctx, "collections.list", libraryID, "collections", opts, page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []model.StreamCollection{}
	}
	return page, nil
}

// ListVideos returns one page of a library's videos.
func (c *StreamClient) ListVideos(ctx context.Context, libraryID int64, opts *dto.StreamListOptions) (*dto.StreamPage[model.StreamVideo], error) {
	page := &dto.StreamPage[model.StreamVideo]{}
	if err := c.getJSON(ctx, "videos.list", libraryID, "videos", opts, page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []model.StreamVideo{}
	}
	return page, nil
}

// OpenVideoFile opens https://<cdn>/<videoID>/<file>. The timeout covers the wait for
// response headers only; reading the body is bounded by ctx.
func (c *StreamClient) OpenVideoFile(ctx context.Context, videoID, file, rangeHeader string) (io.ReadCloser, *dto.VideoFile, error) {
	if c.cdnURL == "" {
		return nil, nil, &apperror.UpstreamError{Service: streamService, Op: "video.open", Err: fmt.Errorf("stream CDN host not configured")}
	}

	ctx, cancel := context.WithCancel(ctx)
	timer := time.AfterFunc(c.timeout, cancel)

	rawURL := c.cdnURL + "/" + url.PathEscape(videoID) + "/" + url.PathEscape(file)
	req, err := newRequest(ctx, http.MethodGet, rawURL, "", nil)
	if err != nil {
		timer.Stop()
		cancel()
		return nil, nil, err
	}
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	res, err := do(c.http, streamService, "video.open", req)
	timer.Stop()
	if err != nil {
		cancel()
		return nil, nil, err
	}

	meta := &dto.VideoFile{
		StatusCode:    res.StatusCode,
		ContentType:   res.Header.Get("Content-Type"),
		ContentLength: res.ContentLength,
		ContentRange:  res.Header.Get("Content-Range"),
		AcceptRanges:  res.Header.Get("Accept-Ranges"),
		LastModified:  res.Header.Get("Last-Modified"),
		ETag:          res.Header.Get("ETag"),
	}
	return &timeoutBody{ReadCloser: res.Body, cancel: cancel}, meta, nil
}

func (c *StreamClient) getJSON(ctx context.Context, op string, libraryID int64, resource string, opts *dto.StreamListOptions, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rawURL := fmt.Sprintf("%s/%d/%s", c.baseURL, libraryID, resource)
	if opts != nil {
		values, err := query.Values(opts)
		if err != nil {
			return fmt.Errorf("failed to encode %s query: %w", op, err)
		}
		if encoded := values.Encode(); encoded != "" {
			rawURL += "?" + encoded
		}
	}

	req, err := newRequest(ctx, http.MethodGet, rawURL, c.apiKey, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := do(c.http, streamService, op, req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &apperror.UpstreamError{Service: streamService, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
