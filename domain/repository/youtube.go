package repository

import (
	"context"

	"cdn-service/domain/dto"
)

// IYouTube is the read-only catalog API bound to one channel credential.
// Each call returns a single page; an empty pageToken asks for the first one.
type IYouTube interface {
	ListPlaylists(ctx context.Context, channelID, pageToken string) (*dto.YouTubePlaylistPage, error)
	ListPlaylistItems(ctx context.Context, playlistID, pageToken string) (*dto.YouTubePlaylistItemPage, error)
}
