package ui

import (
	"context"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/photo-feed/internal/feed"
	"github.com/ytget/photo-feed/internal/model"
)

// blockingLoader records loads and blocks until their context is cancelled
type blockingLoader struct {
	mu        sync.Mutex
	started   []string
	cancelled []string
}

func (l *blockingLoader) Load(ctx context.Context, rawURL string, _, _ int) (image.Image, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (l *blockingLoader) LoadProgressive(ctx context.Context, _, imageURL string, _, _ int, _ func(image.Image, bool)) error {
	l.mu.Lock()
	l.started = append(l.started, imageURL)
	l.mu.Unlock()

	<-ctx.Done()

	l.mu.Lock()
	l.cancelled = append(l.cancelled, imageURL)
	l.mu.Unlock()
	return ctx.Err()
}

func (l *blockingLoader) snapshot() (started, cancelled []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.started...), append([]string(nil), l.cancelled...)
}

func samplePhoto(id string) model.Photo {
	return model.Photo{
		ID:     id,
		Width:  4000,
		Height: 3000,
		Color:  "#0c2626",
		URLs: model.PhotoURLs{
			Thumb:   "https://images.example.com/" + id + "?w=200",
			Regular: "https://images.example.com/" + id + "?w=1080",
		},
		Author:      &model.Author{Name: "Ansel", ProfileImage: "https://images.example.com/profile"},
		Description: "Mountains at dawn",
	}
}

func TestPhotoRowBindVisibility(t *testing.T) {
	test.NewApp()
	row := NewPhotoRow(nil, NewLocalization())

	full := feed.BindPhoto(samplePhoto("a"), 400)
	row.Bind(full)
	assert.True(t, row.authorLabel.Visible())
	assert.Equal(t, "Ansel", row.authorLabel.Text)
	assert.True(t, row.descriptionLabel.Visible())
	assert.Equal(t, "Mountains at dawn", row.descriptionLabel.Text)
	assert.Equal(t, float32(300), row.background.MinSize().Height)
	assert.Equal(t, color.NRGBA{R: 0x0c, G: 0x26, B: 0x26, A: 0xff}, row.background.FillColor)

	bare := samplePhoto("b")
	bare.Author = &model.Author{Name: "   "}
	bare.Description = ""
	row.Bind(feed.BindPhoto(bare, 400))
	assert.False(t, row.authorLabel.Visible())
	assert.False(t, row.avatar.Visible())
	assert.False(t, row.descriptionLabel.Visible())
	assert.Equal(t, "b", row.Row().PhotoID)
}

func TestPhotoRowRebindCancelsStaleLoads(t *testing.T) {
	test.NewApp()
	loader := &blockingLoader{}
	row := NewPhotoRow(loader, NewLocalization())

	first := feed.BindPhoto(samplePhoto("a"), 400)
	second := feed.BindPhoto(samplePhoto("b"), 400)

	row.Bind(first)
	require.Eventually(t, func() bool {
		started, _ := loader.snapshot()
		return len(started) == 1
	}, time.Second, 5*time.Millisecond)

	// Rebinding the same row keeps the running load
	row.Bind(first)

	row.Bind(second)
	require.Eventually(t, func() bool {
		started, cancelled := loader.snapshot()
		return len(started) == 2 && len(cancelled) == 1
	}, time.Second, 5*time.Millisecond)

	started, cancelled := loader.snapshot()
	assert.Equal(t, []string{first.ImageURL, second.ImageURL}, started)
	assert.Equal(t, []string{first.ImageURL}, cancelled)

	row.Unbind()
	assert.Eventually(t, func() bool {
		_, cancelled := loader.snapshot()
		return len(cancelled) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestRowHeight(t *testing.T) {
	row := feed.BindPhoto(samplePhoto("a"), 400)
	assert.Equal(t, float32(300+8)+RowCaptionHeight, RowHeight(row, 8))

	row.ShowAuthor = false
	row.ShowDescription = false
	assert.Equal(t, float32(300), RowHeight(row, 0))
}

func TestParseHexColor(t *testing.T) {
	fallback := color.Black

	tests := []struct {
		in   string
		want color.Color
	}{
		{"#0c2626", color.NRGBA{R: 0x0c, G: 0x26, B: 0x26, A: 0xff}},
		{"FFFFFF", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#abc", color.NRGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}},
		{"", fallback},
		{"#12345", fallback},
		{"#zzzzzz", fallback},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseHexColor(tt.in, fallback))
		})
	}
}
