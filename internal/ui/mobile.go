package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MobileUI provides mobile-specific UI enhancements
type MobileUI struct {
	mobile bool
}

// NewMobileUI creates a new mobile UI helper for the current device
func NewMobileUI() *MobileUI {
	return &MobileUI{mobile: fyne.CurrentDevice().IsMobile()}
}

// CreateMobileButton creates a button that is at least a touch target in
// size on mobile devices
func (m *MobileUI) CreateMobileButton(text string, onTapped func()) (*widget.Button, fyne.CanvasObject) {
	btn := widget.NewButton(text, onTapped)
	if !m.mobile {
		return btn, btn
	}

	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(MinTouchTargetSize, MinTouchTargetSize))
	return btn, container.NewStack(spacer, btn)
}

// GetMobileSpacing returns appropriate spacing for mobile devices
func (m *MobileUI) GetMobileSpacing() float32 {
	if m.mobile {
		return 16
	}
	return 8
}
