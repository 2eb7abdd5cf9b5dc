package download

import (
	"context"
	"io"

	"github.com/ytget/photo-feed/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))
	Download(ctx context.Context, url string) (*model.DownloadTask, error)
	Start(url string) (*model.DownloadTask, error)
	GetTask(id string) (*model.DownloadTask, bool)
	GetAllTasks() []*model.DownloadTask
	RemoveTask(id string) error

	// SetCollection switches the collection used by later downloads
	SetCollection(collection Collection)
}

// Collection is a shared image store that other applications can read.
type Collection interface {
	// Insert registers a new entry and returns its URI. An empty URI with a
	// nil error means the store declined the insert.
	Insert(ctx context.Context, entry model.MediaEntry) (string, error)

	// Open returns a writer for the entry's bytes
	Open(uri string) (io.WriteCloser, error)

	// Publish makes a pending entry visible to readers
	Publish(uri string) error

	// Discard removes an entry and any bytes written for it
	Discard(uri string) error

	// Staged reports whether entries are hidden until published
	Staged() bool
}

// Locator is implemented by collections that keep entries as local files
type Locator interface {
	Locate(uri string) (string, error)
}

// Lister is implemented by collections that can enumerate published images
type Lister interface {
	List(ctx context.Context) ([]model.MediaItem, error)
}

// PermissionChecker reports whether writing to shared storage is allowed.
type PermissionChecker interface {
	WriteGranted() bool
}
