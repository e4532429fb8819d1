package dto

// StreamListOptions are the query parameters shared by the Bunny Stream list endpoints.
type StreamListOptions struct {
	Page              int    `url:"page,omitempty"`
	ItemsPerPage      int    `url:"itemsPerPage,omitempty"`
	OrderBy           string `url:"orderBy,omitempty"`
	Search            string `url:"search,omitempty"`
	IncludeThumbnails *bool  `url:"includeThumbnails,omitempty"`
}

// StreamPage is the paged envelope Bunny Stream wraps list results in.
type StreamPage[T any] struct {
	TotalItems   int64 `json:"totalItems"`
	CurrentPage  int64 `json:"currentPage"`
	ItemsPerPage int64 `json:"itemsPerPage"`
	Items        []T   `json:"items"`
}

// VideoFile is an open upstream video body together with the headers worth relaying.
type VideoFile struct {
	StatusCode    int
	ContentType   string
	ContentLength int64
	ContentRange  string
	AcceptRanges  string
	LastModified  string
	ETag          string
}
