package dto

import "cdn-service/domain/model"

// YouTubePlaylistPage is one page of playlists.list for a channel.
type YouTubePlaylistPage struct {
	Items         []model.YouTubePlaylist `json:"items"`
	NextPageToken string                  `json:"next_page_token,omitempty"`
}

// YouTubePlaylistItemPage is one page of playlistItems.list for a playlist.
type YouTubePlaylistItemPage struct {
	Items         []model.YouTubePlaylistItem `json:"items"`
	NextPageToken string                      `json:"next_page_token,omitempty"`
}
