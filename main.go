package main

import (
	"fmt"
	"io"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/photo-feed/internal/config"
	"github.com/ytget/photo-feed/internal/download"
	"github.com/ytget/photo-feed/internal/imageload"
	"github.com/ytget/photo-feed/internal/platform"
	"github.com/ytget/photo-feed/internal/ui"
	"github.com/ytget/photo-feed/internal/unsplash"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.photo-feed"
	AppName = "Photo Feed"

	WindowWidth  = 480
	WindowHeight = 800
)

func main() {
	fmt.Printf("Photo Feed v%s starting...\n", version)

	environment, err := config.ReadEnvironment()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}
	if environment.Unsplash.AccessKey == "" {
		log.Printf("UNSPLASH_ACCESS_KEY is not set, API requests will be rejected")
	}

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewFeedTheme())
	ui.SetAppIcon(myApp)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	picturesDir := settings.GetPicturesDirectory()

	collection, closer, err := download.NewCollection(settings.GetStorageBackend(), picturesDir, environment)
	if err != nil {
		log.Printf("Failed to open %s storage, falling back to %s: %v", settings.GetStorageBackend(), config.StorageDirect, err)
		collection, closer, _ = download.NewCollection(config.StorageDirect, picturesDir, environment)
	}

	permission := platform.NewStoragePermission(picturesDir, platform.NeedsLegacyPermission(), settings.GetStorageGranted())
	downloadSvc := download.NewService(collection, permission)

	gateway := unsplash.NewClient(environment.Unsplash.APIURL, environment.Unsplash.AccessKey, environment.Unsplash.PageSize)
	loader := imageload.NewLoader(imageload.DefaultCacheSize, imageload.DefaultCacheTTL)

	// Create and setup UI
	feedUI := ui.NewFeedUI(myWindow, myApp, gateway, downloadSvc, loader, permission)
	feedUI.SetStorageHandler(func(backend config.StorageBackend, dir string) error {
		next, nextCloser, err := download.NewCollection(backend, dir, environment)
		if err != nil {
			return err
		}
		downloadSvc.SetCollection(next)
		closeCollection(closer)
		closer = nextCloser
		return nil
	})
	myApp.Lifecycle().SetOnStarted(feedUI.Start)

	myWindow.ShowAndRun()

	closeCollection(closer)
}

func closeCollection(closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		log.Printf("Failed to close collection: %v", err)
	}
}
