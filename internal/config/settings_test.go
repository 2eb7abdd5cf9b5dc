package config

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/photo-feed/internal/platform"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestPicturesDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetPicturesDirectory()
	if dir == "" {
		t.Error("Pictures directory should not be empty")
	}
	if filepath.Base(dir) != platform.AppAlbumName {
		t.Errorf("Expected default directory to end with %s, got %s", platform.AppAlbumName, dir)
	}

	// Test setting custom value
	customDir := "/custom/pictures"
	settings.SetPicturesDirectory(customDir)

	retrievedDir := settings.GetPicturesDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected pictures directory %s, got %s", customDir, retrievedDir)
	}
}

func TestLastQuery(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if q := settings.GetLastQuery(); q != "" {
		t.Errorf("Expected empty default query, got %q", q)
	}

	settings.SetLastQuery(" mountains ")
	if q := settings.GetLastQuery(); q != " mountains " {
		t.Errorf("Expected query to be stored verbatim, got %q", q)
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("ko")

	retrievedLang := settings.GetLanguage()
	if retrievedLang != "ko" {
		t.Errorf("Expected language 'ko', got %s", retrievedLang)
	}
}

func TestStorageBackend(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if backend := settings.GetStorageBackend(); backend != DefaultStorageBackend {
		t.Errorf("Expected default backend %s, got %s", DefaultStorageBackend, backend)
	}

	settings.SetStorageBackend(StorageBucket)
	if backend := settings.GetStorageBackend(); backend != StorageBucket {
		t.Errorf("Expected backend %s, got %s", StorageBucket, backend)
	}

	// Unknown values fall back to the default
	settings.SetStorageBackend("floppy")
	if backend := settings.GetStorageBackend(); backend != DefaultStorageBackend {
		t.Errorf("Expected fallback backend %s, got %s", DefaultStorageBackend, backend)
	}
}

func TestRowPadding(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if padding := settings.GetRowPadding(); padding != DefaultRowPadding {
		t.Errorf("Expected default padding %d, got %d", DefaultRowPadding, padding)
	}

	tests := []struct {
		input    int
		expected int
	}{
		{12, 12},
		{0, 0},
		{-5, 0},
		{100, MaxRowPadding},
	}

	for _, tt := range tests {
		settings.SetRowPadding(tt.input)
		if got := settings.GetRowPadding(); got != tt.expected {
			t.Errorf("SetRowPadding(%d) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func TestStorageGranted(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetStorageGranted() {
		t.Error("Storage should not be granted by default")
	}
	settings.SetStorageGranted(true)
	if !settings.GetStorageGranted() {
		t.Error("Storage grant should persist")
	}
}

func TestAutoRevealOnComplete(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetAutoRevealOnComplete() != DefaultAutoRevealComplete {
		t.Errorf("Expected default auto reveal %v", DefaultAutoRevealComplete)
	}
	settings.SetAutoRevealOnComplete(true)
	if !settings.GetAutoRevealOnComplete() {
		t.Error("Auto reveal should be enabled")
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ko", "ru"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}
