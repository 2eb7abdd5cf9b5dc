package platform

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ytget/photo-feed/internal/model"
)

// DirectCollection writes images straight into a directory. Readers can see
// a file while it is being written, so it is only used where no staged
// store is available.
type DirectCollection struct {
	dir string
}

// NewDirectCollection creates a collection backed by dir
func NewDirectCollection(dir string) *DirectCollection {
	return &DirectCollection{dir: dir}
}

// Dir returns the collection directory
func (d *DirectCollection) Dir() string { return d.dir }

// Staged reports false: entries are visible as soon as they are inserted
func (d *DirectCollection) Staged() bool { return false }

// Insert reserves a file for the entry. The URI is the file path.
func (d *DirectCollection) Insert(_ context.Context, entry model.MediaEntry) (string, error) {
	if err := CreateDirectoryIfNotExists(d.dir); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", d.dir, err)
	}

	ext := filepath.Ext(entry.DisplayName)
	base := strings.TrimSuffix(entry.DisplayName, ext)
	name := entry.DisplayName
	for n := 1; ; n++ {
		path := filepath.Join(d.dir, name)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, DefaultFilePermissions)
		if err == nil {
			f.Close()
			return path, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("failed to create %s: %w", name, err)
		}
		name = fmt.Sprintf("%s (%d)%s", base, n, ext)
	}
}

// Open returns a writer for the file at uri
func (d *DirectCollection) Open(uri string) (io.WriteCloser, error) {
	return os.OpenFile(uri, os.O_WRONLY|os.O_TRUNC, DefaultFilePermissions)
}

// Publish asks the media scanner to index the file
func (d *DirectCollection) Publish(uri string) error {
	NotifyMediaScanner(uri)
	return nil
}

// Locate returns the file path of uri
func (d *DirectCollection) Locate(uri string) (string, error) {
	return uri, nil
}

// Discard removes the file
func (d *DirectCollection) Discard(uri string) error {
	if err := os.Remove(uri); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// List returns the images in the directory, newest first
func (d *DirectCollection) List(_ context.Context) ([]model.MediaItem, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", d.dir, err)
	}

	var items []model.MediaItem
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(d.dir, entry.Name())
		mtype, err := mimetype.DetectFile(path)
		if err != nil || !strings.HasPrefix(mtype.String(), "image/") {
			continue
		}
		items = append(items, model.MediaItem{
			URI:         path,
			DisplayName: entry.Name(),
			MIMEType:    mtype.String(),
			Path:        path,
			Size:        info.Size(),
			CreatedAt:   info.ModTime(),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}
