package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ColorNameAvatarPlaceholder fills the author's circle until the profile
// thumbnail arrives
const ColorNameAvatarPlaceholder fyne.ThemeColorName = "avatarPlaceholder"

// FeedTheme keeps the chrome small and flat so photos get most of the
// window. Rows run edge to edge, so selection has no radius and the
// scroll bar stays thin.
type FeedTheme struct{}

// NewFeedTheme creates the photo feed theme
func NewFeedTheme() fyne.Theme {
	return &FeedTheme{}
}

// Color returns theme colors
func (t *FeedTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark
	switch name {
	case theme.ColorNamePlaceHolder:
		// behind photos that carry no colour of their own
		if dark {
			return color.NRGBA{R: 48, G: 48, B: 48, A: 255}
		}
		return color.NRGBA{R: 224, G: 224, B: 224, A: 255}
	case ColorNameAvatarPlaceholder:
		if dark {
			return color.NRGBA{R: 80, G: 80, B: 80, A: 255}
		}
		return color.NRGBA{R: 189, G: 189, B: 189, A: 255}
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.NRGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameBackground:
		if dark {
			return color.NRGBA{R: 18, G: 18, B: 18, A: 255}
		}
		return color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *FeedTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *FeedTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *FeedTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameScrollBar:
		return 8
	case theme.SizeNameScrollBarSmall:
		return 3
	case theme.SizeNameCaptionText:
		return 11
	case theme.SizeNameSelectionRadius:
		return 0
	}

	return theme.DefaultTheme().Size(name)
}
