package domain

import "time"

// Resource is the metadata of one uploaded programme file. The file body
// lives in external object storage; only the stored path and descriptive
// metadata are persisted here.
type Resource struct {
	ID            string
	Title         string
	Description   string
	Category      string
	FileName      string
	StoredPath    string
	ContentType   string
	SizeBytes     int64
	DownloadCount int
	UploadedBy    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
