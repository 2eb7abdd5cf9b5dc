package ui

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log"
	"strconv"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/photo-feed/internal/feed"
)

// ImageLoader fetches decoded images for photo rows
type ImageLoader interface {
	Load(ctx context.Context, rawURL string, maxWidth, maxHeight int) (image.Image, error)
	LoadProgressive(ctx context.Context, placeholderURL, imageURL string, width, height int, show func(img image.Image, final bool)) error
}

// PhotoRow shows one photo with its author and description
type PhotoRow struct {
	widget.BaseWidget

	loader       ImageLoader
	localization *Localization

	// UI components
	background       *canvas.Rectangle
	placeholder      *canvas.Image // thumbnail, visible until the photo fades in
	photo            *canvas.Image
	avatarBackground *canvas.Circle
	avatar           *canvas.Image
	authorLabel      *widget.Label
	descriptionLabel *widget.Label

	mu         sync.Mutex
	row        feed.RenderedRow
	bound      bool
	generation uint64
	cancel     context.CancelFunc
	fade       *fyne.Animation
}

// NewPhotoRow creates an empty photo row
func NewPhotoRow(loader ImageLoader, localization *Localization) *PhotoRow {
	pr := &PhotoRow{
		loader:       loader,
		localization: localization,
	}
	pr.ExtendBaseWidget(pr)
	pr.createUI()
	return pr
}

// createUI creates the UI components
func (pr *PhotoRow) createUI() {
	pr.background = canvas.NewRectangle(theme.Color(theme.ColorNamePlaceHolder))
	pr.background.SetMinSize(fyne.NewSize(0, RowFallbackWidth))

	pr.placeholder = canvas.NewImageFromImage(nil)
	pr.placeholder.FillMode = canvas.ImageFillContain
	pr.placeholder.ScaleMode = canvas.ImageScaleFastest

	pr.photo = canvas.NewImageFromImage(nil)
	pr.photo.FillMode = canvas.ImageFillContain
	pr.photo.Translucency = 1

	pr.avatarBackground = canvas.NewCircle(theme.Color(ColorNameAvatarPlaceholder))
	pr.avatarBackground.Resize(fyne.NewSize(AuthorAvatarSize, AuthorAvatarSize))
	pr.avatar = canvas.NewImageFromImage(nil)
	pr.avatar.FillMode = canvas.ImageFillContain
	pr.avatar.SetMinSize(fyne.NewSize(AuthorAvatarSize, AuthorAvatarSize))

	pr.authorLabel = widget.NewLabel("")
	pr.authorLabel.TextStyle = fyne.TextStyle{Bold: true}
	pr.authorLabel.Truncation = fyne.TextTruncateEllipsis

	pr.descriptionLabel = widget.NewLabel("")
	pr.descriptionLabel.Wrapping = fyne.TextWrapWord
	pr.descriptionLabel.Truncation = fyne.TextTruncateEllipsis
}

// Row returns the currently bound row
func (pr *PhotoRow) Row() feed.RenderedRow {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.row
}

// Bind shows row. Image loads for a previously bound row are cancelled so
// a recycled widget never shows a stale photo.
func (pr *PhotoRow) Bind(row feed.RenderedRow) {
	pr.mu.Lock()
	same := pr.bound && pr.row.PhotoID == row.PhotoID && pr.row.ImageURL == row.ImageURL
	pr.row = row
	pr.bound = true
	if same {
		pr.mu.Unlock()
		return
	}

	if pr.cancel != nil {
		pr.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	pr.cancel = cancel
	pr.generation++
	gen := pr.generation
	if pr.fade != nil {
		pr.fade.Stop()
		pr.fade = nil
	}
	pr.mu.Unlock()

	pr.background.FillColor = parseHexColor(row.Color, theme.Color(theme.ColorNamePlaceHolder))
	pr.background.SetMinSize(fyne.NewSize(0, float32(row.Height)))
	pr.placeholder.Image = nil
	pr.photo.Image = nil
	pr.photo.Translucency = 1
	pr.avatar.Image = nil

	if row.ShowAuthor {
		pr.authorLabel.SetText(row.AuthorName)
		pr.authorLabel.Show()
		pr.avatarBackground.Show()
		pr.avatar.Show()
	} else {
		pr.authorLabel.SetText("")
		pr.authorLabel.Hide()
		pr.avatarBackground.Hide()
		pr.avatar.Hide()
	}

	if row.ShowDescription {
		pr.descriptionLabel.SetText(row.Description)
		pr.descriptionLabel.Show()
	} else {
		pr.descriptionLabel.SetText("")
		pr.descriptionLabel.Hide()
	}

	pr.Refresh()

	if pr.loader == nil {
		return
	}
	go pr.loadPhoto(ctx, gen, row)
	if row.ShowAuthor && row.AuthorImageURL != "" {
		go pr.loadAvatar(ctx, gen, row.AuthorImageURL)
	}
}

// Unbind cancels pending loads, used when the list is torn down
func (pr *PhotoRow) Unbind() {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	if pr.cancel != nil {
		pr.cancel()
		pr.cancel = nil
	}
	pr.generation++
	pr.bound = false
}

func (pr *PhotoRow) loadPhoto(ctx context.Context, gen uint64, row feed.RenderedRow) {
	err := pr.loader.LoadProgressive(ctx, row.PlaceholderURL, row.ImageURL, row.Width, row.Height, func(img image.Image, final bool) {
		fyne.Do(func() {
			if !pr.current(gen) {
				return
			}
			if final {
				pr.crossFade(img)
				return
			}
			pr.placeholder.Image = img
			pr.placeholder.Refresh()
		})
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Failed to load photo %s: %v", row.PhotoID, err)
	}
}

func (pr *PhotoRow) loadAvatar(ctx context.Context, gen uint64, rawURL string) {
	size := int(AuthorAvatarSize)
	img, err := pr.loader.Load(ctx, rawURL, size, size)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("Failed to load profile image %s: %v", rawURL, err)
		}
		return
	}
	fyne.Do(func() {
		if !pr.current(gen) {
			return
		}
		pr.avatar.Image = img
		pr.avatar.Refresh()
	})
}

// crossFade fades the full photo in over the placeholder
func (pr *PhotoRow) crossFade(img image.Image) {
	pr.photo.Image = img
	pr.photo.Translucency = 1
	pr.photo.Refresh()

	fade := fyne.NewAnimation(CrossFadeDuration, func(done float32) {
		pr.photo.Translucency = float64(1 - done)
		pr.photo.Refresh()
	})
	pr.mu.Lock()
	pr.fade = fade
	pr.mu.Unlock()
	fade.Start()
}

func (pr *PhotoRow) current(gen uint64) bool {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.generation == gen
}

// CreateRenderer creates the widget renderer
func (pr *PhotoRow) CreateRenderer() fyne.WidgetRenderer {
	avatar := container.NewStack(pr.avatarBackground, pr.avatar)
	caption := container.NewBorder(nil, nil, container.NewCenter(avatar), nil,
		container.NewVBox(pr.authorLabel, pr.descriptionLabel))
	picture := container.NewStack(pr.background, pr.placeholder, pr.photo)

	return &photoRowRenderer{
		photoRow: pr,
		layout:   container.NewBorder(nil, caption, nil, nil, picture),
	}
}

// photoRowRenderer renders the photo row widget
type photoRowRenderer struct {
	photoRow *PhotoRow
	layout   *fyne.Container
}

func (r *photoRowRenderer) Layout(size fyne.Size) {
	r.layout.Resize(size)
}

func (r *photoRowRenderer) MinSize() fyne.Size {
	return r.layout.MinSize()
}

func (r *photoRowRenderer) Refresh() {
	r.layout.Refresh()
}

func (r *photoRowRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.layout}
}

func (r *photoRowRenderer) Destroy() {
	r.photoRow.Unbind()
}

// RowHeight is the list item height for row: the photo plus its caption
// and padding
func RowHeight(row feed.RenderedRow, padding int) float32 {
	height := float32(row.Height) + float32(padding)
	if row.ShowAuthor || row.ShowDescription {
		height += RowCaptionHeight
	}
	return height
}

// parseHexColor parses "#rrggbb" or "#rgb", returning fallback otherwise
func parseHexColor(hex string, fallback color.Color) color.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallback
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
