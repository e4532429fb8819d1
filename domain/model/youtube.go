package model

// WatchURLPrefix is the public watch page every episode links to.
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// Channel is a logical content source with its own YouTube credential and channel id.
type Channel struct {
	Name      string `json:"name" mapstructure:"name"`
	APIKey    string `json:"-" mapstructure:"apiKey"`
	ChannelID string `json:"channel_id" mapstructure:"channelId"`
	// RefreshToken switches the channel's client to OAuth instead of the API key.
	RefreshToken string `json:"-" mapstructure:"refreshToken"`
}

// YouTubePlaylist is one playlist of a channel.
type YouTubePlaylist struct {
	Title      string `json:"title"`
	PlaylistID string `json:"playlist_id"`
}

// YouTubePlaylistItem is one video of a playlist. PublishedAt is empty when YouTube omitted it.
type YouTubePlaylistItem struct {
	Title       string `json:"title"`
	VideoID     string `json:"video_id"`
	PublishedAt string `json:"published_at"`
}

// Episode is a playlist item attributed to its source channel.
type Episode struct {
	YouTubePlaylistItem
	VideoURL string `json:"video_url"`
	Channel  string `json:"channel"`
}

// WatchURL returns the public watch URL of a video.
func WatchURL(videoID string) string {
	return WatchURLPrefix + videoID
}
