package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/photo-feed/internal/platform"
)

// StorageBackend selects the collection photos are saved into
type StorageBackend string

const (
	StorageMediaStore StorageBackend = "mediastore"
	StorageDirect     StorageBackend = "direct"
	StorageBucket     StorageBackend = "s3"
)

// Settings keys for Fyne preferences
const (
	KeyPicturesDir        = "pictures_directory"
	KeyLastQuery          = "last_search_query"
	KeyLanguage           = "app_language"
	KeyStorageBackend     = "storage_backend"
	KeyRowPadding         = "row_padding"
	KeyStorageGranted     = "storage_permission_granted"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultLanguage           = "system"
	DefaultStorageBackend     = StorageMediaStore
	DefaultRowPadding         = 8
	MaxRowPadding             = 32
	DefaultAutoRevealComplete = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetPicturesDirectory returns the directory photos are saved into
func (s *Settings) GetPicturesDirectory() string {
	dir := s.app.Preferences().String(KeyPicturesDir)
	if dir == "" {
		defaultDir, err := platform.GetPicturesDir()
		if err != nil {
			defaultDir = filepath.Join(os.TempDir(), platform.AppAlbumName)
		}
		s.SetPicturesDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetPicturesDirectory sets the pictures directory
func (s *Settings) SetPicturesDirectory(dir string) {
	s.app.Preferences().SetString(KeyPicturesDir, dir)
}

// GetLastQuery returns the last submitted search, empty for random mode
func (s *Settings) GetLastQuery() string {
	return s.app.Preferences().String(KeyLastQuery)
}

// SetLastQuery remembers the submitted search
func (s *Settings) SetLastQuery(query string) {
	s.app.Preferences().SetString(KeyLastQuery, query)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetStorageBackend returns the configured collection type
func (s *Settings) GetStorageBackend() StorageBackend {
	backend := StorageBackend(s.app.Preferences().String(KeyStorageBackend))
	for _, option := range s.GetStorageBackendOptions() {
		if backend == option {
			return backend
		}
	}
	s.SetStorageBackend(DefaultStorageBackend)
	return DefaultStorageBackend
}

// SetStorageBackend sets the collection type
func (s *Settings) SetStorageBackend(backend StorageBackend) {
	s.app.Preferences().SetString(KeyStorageBackend, string(backend))
}

// GetStorageBackendOptions returns available collection types
func (s *Settings) GetStorageBackendOptions() []StorageBackend {
	return []StorageBackend{StorageMediaStore, StorageDirect, StorageBucket}
}

// GetRowPadding returns the padding around photo rows
func (s *Settings) GetRowPadding() int {
	return s.app.Preferences().IntWithFallback(KeyRowPadding, DefaultRowPadding)
}

// SetRowPadding sets the padding around photo rows
func (s *Settings) SetRowPadding(padding int) {
	if padding < 0 {
		padding = 0
	}
	if padding > MaxRowPadding {
		padding = MaxRowPadding
	}
	s.app.Preferences().SetInt(KeyRowPadding, padding)
}

// GetStorageGranted returns whether the user granted storage access earlier
func (s *Settings) GetStorageGranted() bool {
	return s.app.Preferences().Bool(KeyStorageGranted)
}

// SetStorageGranted persists the storage grant
func (s *Settings) SetStorageGranted(granted bool) {
	s.app.Preferences().SetBool(KeyStorageGranted, granted)
}

// GetAutoRevealOnComplete returns whether to reveal saved photos in the file manager
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal saved photos in the file manager
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ko":     "한국어",
		"ru":     "Русский",
	}
}
