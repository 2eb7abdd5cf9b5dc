package model

import (
	"time"
)

// JPEGMimeType is the MIME type of every saved image
const JPEGMimeType = "image/jpeg"

// DownloadTask represents a single save of a photo to the shared collection
type DownloadTask struct {
	ID         string
	URL        string
	Status     TaskStatus
	FileName   string    // display name inside the collection
	URI        string    // collection URI, empty until inserted
	Path       string    // local file path when the collection has one
	Bytes      int64     // bytes written
	LastError  string    // last error message if any
	StartedAt  time.Time // when the download started
	FinishedAt time.Time // when the task reached a finished state
}

// Duration returns how long the task ran, or zero while it is unfinished
func (dt *DownloadTask) Duration() time.Duration {
	if dt.FinishedAt.IsZero() || dt.StartedAt.IsZero() {
		return 0
	}
	return dt.FinishedAt.Sub(dt.StartedAt)
}

// MediaEntry describes an insert into a shared image collection
type MediaEntry struct {
	DisplayName string
	MIMEType    string
	Pending     bool // hidden from readers until published
	CreatedAt   time.Time
}

// MediaItem is a published image as seen by readers of a collection
type MediaItem struct {
	URI         string
	DisplayName string
	MIMEType    string
	Path        string
	Size        int64
	CreatedAt   time.Time
}
