package unsplash

import (
	"context"

	"github.com/ytget/photo-feed/internal/model"
)

// Gateway defines the interface for fetching a page of photos.
type Gateway interface {
	// GetRandomPhotos returns random photos when query is blank and search
	// results for query otherwise. Failures are *model.NetworkError or
	// *model.DecodeError.
	GetRandomPhotos(ctx context.Context, query string) ([]model.Photo, error)
}
