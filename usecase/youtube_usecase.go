package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"cdn-service/domain/apperror"
	"cdn-service/domain/model"
	"cdn-service/domain/repository"
	"cdn-service/infrastructure/logger"
	"cdn-service/infrastructure/metrics"
)

// DefaultMaxPages bounds every pagination loop (~50k items at 50/page).
const DefaultMaxPages = 1000

// IYouTubeUseCase defines the interface for YouTube use case operations
type IYouTubeUseCase interface {
	// GetAllEpisodesSorted merges the matching playlist of every channel, oldest first.
	GetAllEpisodesSorted(ctx context.Context, playlistName string) ([]model.Episode, error)
	GetPlaylistItems(ctx context.Context, channel, playlistName string) ([]model.YouTubePlaylistItem, error)
	GetPlaylists(ctx context.Context, channel string) ([]model.YouTubePlaylist, error)
}

// YouTubeUseCase implements the YouTube use case operations
type YouTubeUseCase struct {
	resolver IChannelResolver
	clients  map[string]repository.IYouTube // one immutable client per channel name
	maxPages int
}

// NewYouTubeUseCase creates a new YouTube use case instance
func NewYouTubeUseCase(resolver IChannelResolver, clients map[string]repository.IYouTube, maxPages int) IYouTubeUseCase {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &YouTubeUseCase{resolver: resolver, clients: clients, maxPages: maxPages}
}

// GetAllEpisodesSorted walks every configured channel in order. A channel without a
// matching playlist contributes nothing; any upstream failure fails the whole call.
func (u *YouTubeUseCase) GetAllEpisodesSorted(ctx context.Context, playlistName string) ([]model.Episode, error) {
	if playlistName == "" {
		return nil, apperror.NewParameterError("Missing playlist_name parameter")
	}

	episodes := make([]model.Episode, 0)
	for _, channel := range u.resolver.Channels() {
		client, err := u.client(channel)
		if err != nil {
			return nil, err
		}
		items, found, err := u.matchingPlaylistItems(ctx, client, channel, playlistName)
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", channel.Name, err)
		}
		if !found {
			continue
		}
		logger.GetLogger().WithFields(map[string]interface{}{
			"channel":  channel.Name,
			"playlist": playlistName,
			"episodes": len(items),
		}).Info("Fetched playlist episodes")

		for _, item := range items {
			episodes = append(episodes, model.Episode{
				YouTubePlaylistItem: item,
				VideoURL:            model.WatchURL(item.VideoID),
				Channel:             channel.Name,
			})
		}
		metrics.EpisodesAggregated.WithLabelValues(channel.Name).Add(float64(len(items)))
	}

	SortEpisodes(episodes)
	return episodes, nil
}

// GetPlaylistItems returns the items of the first playlist of channel whose title contains playlistName.
func (u *YouTubeUseCase) GetPlaylistItems(ctx context.Context, channelName, playlistName string) ([]model.YouTubePlaylistItem, error) {
	if playlistName == "" {
		return nil, apperror.NewParameterError("playlist_name parameter is required")
	}
	channel, err := u.resolver.Resolve(channelName)
	if err != nil {
		return nil, err
	}
	client, err := u.client(channel)
	if err != nil {
		return nil, err
	}
	items, found, err := u.matchingPlaylistItems(ctx, client, channel, playlistName)
	if err != nil {
		return nil, err
	}
	if !found {
		return []model.YouTubePlaylistItem{}, nil
	}
	return items, nil
}

// GetPlaylists returns every playlist of channel.
func (u *YouTubeUseCase) GetPlaylists(ctx context.Context, channelName string) ([]model.YouTubePlaylist, error) {
	channel, err := u.resolver.Resolve(channelName)
	if err != nil {
		return nil, err
	}
	client, err := u.client(channel)
	if err != nil {
		return nil, err
	}
	return ListPlaylists(ctx, client, channel.ChannelID, u.maxPages)
}

func (u *YouTubeUseCase) matchingPlaylistItems(ctx context.Context, client repository.IYouTube, channel model.Channel, playlistName string) ([]model.YouTubePlaylistItem, bool, error) {
	playlists, err := ListPlaylists(ctx, client, channel.ChannelID, u.maxPages)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list playlists: %w", err)
	}
	playlist, found := FindPlaylistByName(playlists, playlistName)
	if !found {
		logger.GetLogger().WithFields(map[string]interface{}{
			"channel":  channel.Name,
			"playlist": playlistName,
		}).Debug("No playlist matches name")
		return nil, false, nil
	}
	items, err := ListPlaylistItems(ctx, client, playlist.PlaylistID, u.maxPages)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list items of playlist %s: %w", playlist.PlaylistID, err)
	}
	return items, true, nil
}

func (u *YouTubeUseCase) client(channel model.Channel) (repository.IYouTube, error) {
	client, ok := u.clients[channel.Name]
	if !ok || client == nil {
		return nil, fmt.Errorf("YouTube client not configured for channel %q", channel.Name)
	}
	return client, nil
}

// ListPlaylists pages through playlists.list until YouTube stops returning a token.
func ListPlaylists(ctx context.Context, client repository.IYouTube, channelID string, maxPages int) ([]model.YouTubePlaylist, error) {
	return collectPages(ctx, maxPages, func(ctx context.Context, pageToken string) ([]model.YouTubePlaylist, string, error) {
		page, err := client.ListPlaylists(ctx, channelID, pageToken)
		if err != nil {
			return nil, "", err
		}
		return page.Items, page.NextPageToken, nil
	})
}

// ListPlaylistItems pages through playlistItems.list until YouTube stops returning a token.
func ListPlaylistItems(ctx context.Context, client repository.IYouTube, playlistID string, maxPages int) ([]model.YouTubePlaylistItem, error) {
	return collectPages(ctx, maxPages, func(ctx context.Context, pageToken string) ([]model.YouTubePlaylistItem, string, error) {
		page, err := client.ListPlaylistItems(ctx, playlistID, pageToken)
		if err != nil {
			return nil, "", err
		}
		return page.Items, page.NextPageToken, nil
	})
}

// FindPlaylistByName returns the first playlist, in listing order, whose title
// contains name regardless of case.
func FindPlaylistByName(playlists []model.YouTubePlaylist, name string) (model.YouTubePlaylist, bool) {
	needle := strings.ToLower(name)
	for _, playlist := range playlists {
		if strings.Contains(strings.ToLower(playlist.Title), needle) {
			return playlist, true
		}
	}
	return model.YouTubePlaylist{}, false
}

// SortEpisodes orders episodes by published_at ascending. Episodes without a
// timestamp compare as "" and therefore come first; ties keep their order.
func SortEpisodes(episodes []model.Episode) {
	slices.SortStableFunc(episodes, func(a, b model.Episode) int {
		return strings.Compare(a.PublishedAt, b.PublishedAt)
	})
}

// collectPages calls fetch with each continuation token until none is returned.
// It gives up with ErrPaginationLimitExceeded after maxPages pages.
func collectPages[T any](ctx context.Context, maxPages int, fetch func(ctx context.Context, pageToken string) ([]T, string, error)) ([]T, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	all := make([]T, 0)
	pageToken := ""
	for page := 0; page < maxPages; page++ {
		items, next, err := fetch(ctx, pageToken)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if next == "" {
			return all, nil
		}
		pageToken = next
	}
	return nil, fmt.Errorf("%w: still paging after %d pages", apperror.ErrPaginationLimitExceeded, maxPages)
}
