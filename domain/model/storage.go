package model

// StoredObject is one entry of a Bunny Storage directory listing.
type StoredObject struct {
	Guid            string `json:"Guid"`
	StorageZoneName string `json:"StorageZoneName"`
	Path            string `json:"Path"`
	ObjectName      string `json:"ObjectName"`
	Length          int64  `json:"Length"`
	LastChanged     string `json:"LastChanged"`
	IsDirectory     bool   `json:"IsDirectory"`
	DateCreated     string `json:"DateCreated"`
	ContentType     string `json:"ContentType"`
	Checksum        string `json:"Checksum"`
	// Url is filled in when a pull zone is configured for the storage zone.
	Url string `json:"Url,omitempty"`
}
