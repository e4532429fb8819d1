package model

import "encoding/json"

// StreamCollection is a Bunny Stream collection (one show, or the trailers group).
type StreamCollection struct {
	VideoLibraryID   int64    `json:"videoLibraryId"`
	Guid             string   `json:"guid"`
	Name             string   `json:"name"`
	VideoCount       int64    `json:"videoCount"`
	TotalSize        int64    `json:"totalSize"`
	PreviewVideoIds  string   `json:"previewVideoIds,omitempty"`
	PreviewImageUrls []string `json:"previewImageUrls,omitempty"`

	// Extra holds the upstream fields not modeled above, relayed unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

// StreamVideo is a Bunny Stream video. The *Url fields are derived locally from the CDN host;
// fields such as availableResolutions or captions pass through Extra.
type StreamVideo struct {
	VideoLibraryID    int64   `json:"videoLibraryId"`
	Guid              string  `json:"guid"`
	Title             string  `json:"title"`
	DateUploaded      string  `json:"dateUploaded"`
	Views             int64   `json:"views"`
	IsPublic          bool    `json:"isPublic"`
	Length            int64   `json:"length"`
	Status            int     `json:"status"`
	Framerate         float64 `json:"framerate"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	ThumbnailCount    int     `json:"thumbnailCount"`
	CollectionID      string  `json:"collectionId"`
	ThumbnailFileName string  `json:"thumbnailFileName"`
	Category          string  `json:"category"`
	StorageSize       int64   `json:"storageSize"`

	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	PreviewURL   string `json:"previewUrl,omitempty"`
	PlaylistURL  string `json:"playlistUrl,omitempty"`
	EmbedURL     string `json:"embedUrl,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var (
	streamCollectionFields = jsonNames(StreamCollection{})
	streamVideoFields      = jsonNames(StreamVideo{})
)

func (c *StreamCollection) UnmarshalJSON(data []byte) error {
	type plain StreamCollection
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownFields(data, streamCollectionFields)
	if err != nil {
		return err
	}
	p.Extra = extra
	*c = StreamCollection(p)
	return nil
}

func (c StreamCollection) MarshalJSON() ([]byte, error) {
	type plain StreamCollection
	encoded, err := json.Marshal(plain(c))
	if err != nil {
		return nil, err
	}
	return withFields(encoded, c.Extra)
}

func (v *StreamVideo) UnmarshalJSON(data []byte) error {
	type plain StreamVideo
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := unknownFields(data, streamVideoFields)
	if err != nil {
		return err
	}
	p.Extra = extra
	*v = StreamVideo(p)
	return nil
}

func (v StreamVideo) MarshalJSON() ([]byte, error) {
	type plain StreamVideo
	encoded, err := json.Marshal(plain(v))
	if err != nil {
		return nil, err
	}
	return withFields(encoded, v.Extra)
}
