package imageload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"net/http"
	"time"

	"github.com/apibillme/cache"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"

	"github.com/ytget/photo-feed/internal/model"
	"github.com/ytget/photo-feed/internal/platform"
)

// Cache defaults
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 1 * time.Hour
)

// Loader loads and caches decoded images
type Loader struct {
	http  *http.Client
	cache cache.Cache
}

// NewLoader creates a loader holding up to size images for ttl.
// Non-positive values select the defaults.
func NewLoader(size int, ttl time.Duration) *Loader {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Loader{
		http:  &http.Client{},
		cache: cache.New(size, cache.WithTTL(ttl)),
	}
}

// SetHTTPClient replaces the underlying HTTP client
func (l *Loader) SetHTTPClient(client *http.Client) {
	if client != nil {
		l.http = client
	}
}

// Load returns the image at rawURL scaled to fit within maxWidth x maxHeight.
// A non-positive bound leaves that dimension unconstrained.
func (l *Loader) Load(ctx context.Context, rawURL string, maxWidth, maxHeight int) (image.Image, error) {
	if rawURL == "" {
		return nil, &model.NetworkError{URL: rawURL, Err: fmt.Errorf("empty image URL")}
	}

	key := cacheKey(rawURL, maxWidth, maxHeight)
	if cached, ok := l.cache.Get(key); ok {
		if img, ok := cached.(image.Image); ok {
			return img, nil
		}
	}

	data, err := platform.FetchBytes(ctx, l.http, rawURL, false)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &model.DecodeError{URL: rawURL, Err: err}
	}

	img = fit(img, maxWidth, maxHeight)
	l.cache.Set(key, img)
	log.Printf("(image) Loaded %s image %dx%d from %s", format, img.Bounds().Dx(), img.Bounds().Dy(), rawURL)
	return img, nil
}

// LoadProgressive loads placeholderURL and then imageURL, calling show
// after each. final is true for the second image. A failed placeholder is
// logged and skipped; a failed final image is returned.
func (l *Loader) LoadProgressive(ctx context.Context, placeholderURL, imageURL string, width, height int, show func(img image.Image, final bool)) error {
	if placeholderURL != "" {
		thumb, err := l.Load(ctx, placeholderURL, width, height)
		if err != nil {
			log.Printf("(image) Placeholder %s failed: %v", placeholderURL, err)
		} else if ctx.Err() == nil {
			show(thumb, false)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := l.Load(ctx, imageURL, width, height)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	show(img, true)
	return nil
}

// fit scales img down so that it fits in the bounds, keeping its aspect ratio
func fit(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 {
		maxWidth = b.Dx()
	}
	if maxHeight <= 0 {
		maxHeight = b.Dy()
	}
	if b.Dx() <= maxWidth && b.Dy() <= maxHeight {
		return img
	}
	return resize.Thumbnail(uint(maxWidth), uint(maxHeight), img, resize.Bilinear)
}

func cacheKey(rawURL string, w, h int) string {
	return fmt.Sprintf("%s|%dx%d", rawURL, w, h)
}
