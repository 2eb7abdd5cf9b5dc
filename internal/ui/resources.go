package ui

import (
	"log"

	"fyne.io/fyne/v2"
)

const (
	AppIcon = "photo-feed.png"
)

// LoadLogoResource loads the logo from file path
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}

// SetAppIcon sets the application icon when the logo file is available
func SetAppIcon(app fyne.App) {
	logo, err := LoadLogoResource()
	if err != nil {
		log.Printf("App icon not loaded: %v", err)
		return
	}
	app.SetIcon(logo)
}
