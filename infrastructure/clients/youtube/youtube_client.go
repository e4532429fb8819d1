package youtube

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cdn-service/domain/apperror"
	"cdn-service/domain/dto"
	"cdn-service/domain/model"
	"cdn-service/domain/repository"
	"cdn-service/infrastructure/logger"
	"cdn-service/infrastructure/metrics"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const serviceName = "youtube"

// Client is a read-only YouTube Data API client bound to one channel credential.
// It holds no mutable state once built.
type Client struct {
	service  *youtube.Service
	channel  string
	pageSize int64
	timeout  time.Duration
}

// Config represents YouTube API configuration for one channel
type Config struct {
	Channel      string
	APIKey       string
	ClientID     string
	ClientSecret string
	RefreshToken string
	PageSize     int64
	Timeout      time.Duration
	// Endpoint overrides https://youtube.googleapis.com/ (tests, proxies).
	Endpoint string
}

// NewYouTubeClient creates a new YouTube API client
func NewYouTubeClient(ctx context.Context, config *Config) (repository.IYouTube, error) {
	opts := []option.ClientOption{}
	if config.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(config.Endpoint))
	}

	mode := "api_key"
	if config.RefreshToken != "" && config.ClientID != "" {
		mode = "oauth"
		oauth2Config := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Scopes:       []string{youtube.YoutubeReadonlyScope},
			Endpoint:     google.Endpoint,
		}
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
			Expiry:       time.Now().Add(-1 * time.Minute), // Force refresh on first use
		}
		opts = append(opts, option.WithTokenSource(oauth2Config.TokenSource(ctx, token)))
	} else if config.APIKey != "" {
		opts = append(opts, option.WithAPIKey(config.APIKey))
	} else {
		return nil, fmt.Errorf("channel %q has neither an API key nor a refresh token", config.Channel)
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service for channel %q: %w", config.Channel, err)
	}

	pageSize := config.PageSize
	if pageSize <= 0 || pageSize > 50 {
		pageSize = 50
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"channel": config.Channel,
		"mode":    mode,
	}).Info("YouTube client initialized")

	return &Client{
		service:  service,
		channel:  config.Channel,
		pageSize: pageSize,
		timeout:  timeout,
	}, nil
}

// ListPlaylists returns one page of the channel's playlists
func (c *Client) ListPlaylists(ctx context.Context, channelID, pageToken string) (*dto.YouTubePlaylistPage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	call := c.service.Playlists.List([]string{"snippet"}).
		ChannelId(channelID).
		MaxResults(c.pageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	start := time.Now()
	response, err := call.Do()
	metrics.ObserveUpstream(serviceName, "playlists.list", start, err)
	if err != nil {
		return nil, c.upstreamError("playlists.list", err)
	}

	page := &dto.YouTubePlaylistPage{
		Items:         make([]model.YouTubePlaylist, 0, len(response.Items)),
		NextPageToken: response.NextPageToken,
	}
	for _, item := range response.Items {
		if item == nil || item.Snippet == nil {
			return nil, c.upstreamError("playlists.list", fmt.Errorf("%w: playlist without snippet", apperror.ErrMalformedItem))
		}
		page.Items = append(page.Items, model.YouTubePlaylist{
			Title:      item.Snippet.Title,
			PlaylistID: item.Id,
		})
	}
	return page, nil
}

// ListPlaylistItems returns one page of a playlist's videos
func (c *Client) ListPlaylistItems(ctx context.Context, playlistID, pageToken string) (*dto.YouTubePlaylistItemPage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	call := c.service.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(c.pageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	start := time.Now()
	response, err := call.Do()
	metrics.ObserveUpstream(serviceName, "playlistItems.list", start, err)
	if err != nil {
		return nil, c.upstreamError("playlistItems.list", err)
	}

	page := &dto.YouTubePlaylistItemPage{
		Items:         make([]model.YouTubePlaylistItem, 0, len(response.Items)),
		NextPageToken: response.NextPageToken,
	}
	for _, item := range response.Items {
		converted, err := convertToPlaylistItem(item)
		if err != nil {
			return nil, c.upstreamError("playlistItems.list", err)
		}
		page.Items = append(page.Items, converted)
	}
	return page, nil
}

// convertToPlaylistItem converts a playlistItems.list entry to our model
func convertToPlaylistItem(item *youtube.PlaylistItem) (model.YouTubePlaylistItem, error) {
	if item == nil || item.Snippet == nil {
		return model.YouTubePlaylistItem{}, fmt.Errorf("%w: playlist item without snippet", apperror.ErrMalformedItem)
	}
	if item.Snippet.ResourceId == nil {
		return model.YouTubePlaylistItem{}, fmt.Errorf("%w: playlist item %q without resource id", apperror.ErrMalformedItem, item.Id)
	}
	return model.YouTubePlaylistItem{
		Title:       item.Snippet.Title,
		VideoID:     item.Snippet.ResourceId.VideoId,
		PublishedAt: item.Snippet.PublishedAt,
	}, nil
}

// upstreamError tags err with the client's channel so aggregated failures name their source.
func (c *Client) upstreamError(op string, err error) error {
	upstream := &apperror.UpstreamError{Service: serviceName, Op: op, Err: fmt.Errorf("channel %s: %w", c.channel, err)}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		upstream.StatusCode = apiErr.Code
	}
	return upstream
}
