package feed

import (
	"log"
	"math"
	"net/url"
	"strconv"
	"sync"

	"github.com/ytget/photo-feed/internal/model"
)

// RowKind identifies how a row is rendered. The feed has a single kind.
type RowKind int

const (
	RowKindPhoto RowKind = iota
)

// RenderedRow is everything a view needs to draw one photo row
type RenderedRow struct {
	Kind     RowKind
	Position int
	PhotoID  string

	Width      int
	Height     int
	Degenerate bool // width was not positive, Height is the fallback

	ImageURL       string // regular variant sized to Width x Height
	PlaceholderURL string // thumbnail shown until ImageURL has loaded
	Color          string

	AuthorName      string
	AuthorImageURL  string
	ShowAuthor      bool
	Description     string
	ShowDescription bool
}

// TargetHeight returns round(availableWidth * height / width). When the
// photo width is not positive it returns availableWidth and false.
func TargetHeight(photo model.Photo, availableWidth int) (int, bool) {
	ratio, ok := photo.AspectRatio()
	if !ok {
		return availableWidth, false
	}
	return int(math.Round(float64(availableWidth) * ratio)), true
}

// SizedURL asks the image CDN for a variant of raw sized to w x h.
// Unparseable URLs are returned unchanged.
func SizedURL(raw string, w, h int) string {
	if raw == "" || w <= 0 || h <= 0 {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set("w", strconv.Itoa(w))
	q.Set("h", strconv.Itoa(h))
	q.Set("fit", "crop")
	u.RawQuery = q.Encode()
	return u.String()
}

// BindPhoto computes the rendered row for photo at the given width
func BindPhoto(photo model.Photo, availableWidth int) RenderedRow {
	height, ok := TargetHeight(photo, availableWidth)
	if !ok {
		log.Printf("Photo %q has width %d, using fallback height %d", photo.ID, photo.Width, height)
	}

	row := RenderedRow{
		Kind:           RowKindPhoto,
		PhotoID:        photo.ID,
		Width:          availableWidth,
		Height:         height,
		Degenerate:     !ok,
		ImageURL:       SizedURL(photo.URLs.Regular, availableWidth, height),
		PlaceholderURL: photo.URLs.Thumb,
		Color:          photo.Color,
		AuthorImageURL: photo.AuthorImage(),
	}

	if photo.HasAuthor() {
		row.ShowAuthor = true
		row.AuthorName = photo.AuthorName()
	}
	if photo.HasDescription() {
		row.ShowDescription = true
		row.Description = photo.Description
	}
	return row
}

// List mirrors the feed items and serves rows to a list widget.
// All methods are safe for concurrent use.
type List struct {
	mu       sync.RWMutex
	photos   []model.Photo
	onSelect func(model.Photo)
}

// NewList creates an empty list
func NewList() *List {
	return &List{}
}

// SetSelectCallback sets the function called when a row is activated
func (l *List) SetSelectCallback(callback func(model.Photo)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onSelect = callback
}

// SetPhotos replaces the displayed records wholesale
func (l *List) SetPhotos(photos []model.Photo) {
	cp := make([]model.Photo, len(photos))
	copy(cp, photos)

	l.mu.Lock()
	l.photos = cp
	l.mu.Unlock()
}

// Len returns the number of rows
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.photos)
}

// Photo returns the record currently at position
func (l *List) Photo(position int) (model.Photo, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if position < 0 || position >= len(l.photos) {
		return model.Photo{}, false
	}
	return l.photos[position], true
}

// Bind renders the record currently at position
func (l *List) Bind(position, availableWidth int) (RenderedRow, bool) {
	photo, ok := l.Photo(position)
	if !ok {
		return RenderedRow{}, false
	}
	row := BindPhoto(photo, availableWidth)
	row.Position = position
	return row, true
}

// Activate resolves the record bound at position when the row is
// activated, not when it was rendered, and fires the select callback.
func (l *List) Activate(position int) (model.Photo, bool) {
	l.mu.RLock()
	callback := l.onSelect
	l.mu.RUnlock()

	photo, ok := l.Photo(position)
	if !ok {
		log.Printf("Row activation at position %d ignored, list has %d rows", position, l.Len())
		return model.Photo{}, false
	}
	if callback != nil {
		callback(photo)
	}
	return photo, true
}
