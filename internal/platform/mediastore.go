package platform

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ytget/photo-feed/internal/model"
)

// Media store constants
const (
	MediaURIPrefix    = "media://images/"
	MediaIndexFile    = ".media.db"
	PendingFilePrefix = ".pending-"
)

const mediaTable = `
CREATE TABLE IF NOT EXISTS media (
	uri          TEXT NOT NULL PRIMARY KEY,
	display_name TEXT NOT NULL,
	stored_name  TEXT NOT NULL UNIQUE,
	mime_type    TEXT NOT NULL,
	is_pending   INTEGER NOT NULL DEFAULT 0,
	size         INTEGER NOT NULL DEFAULT 0,
	created_at   INTEGER NOT NULL
);`

const mediaPendingIndex = `CREATE INDEX IF NOT EXISTS idx_media_is_pending ON media (is_pending);`

// ErrUnknownURI is returned for URIs the collection never issued
var ErrUnknownURI = errors.New("unknown media URI")

// MediaStore is a staged image collection: a directory of files indexed
// in sqlite. Pending entries live in hidden files and are left out of List
// until they are published.
type MediaStore struct {
	db  *sql.DB
	dir string
	mu  sync.Mutex
}

// OpenMediaStore opens (or creates) the collection in dir. An empty dbPath
// keeps the index inside dir.
func OpenMediaStore(dir, dbPath string) (*MediaStore, error) {
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}
	if dbPath == "" {
		dbPath = filepath.Join(dir, MediaIndexFile)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open media index %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to media index %s: %w", dbPath, err)
	}
	for _, stmt := range []string{mediaTable, mediaPendingIndex} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create media tables: %w", err)
		}
	}

	log.Printf("Media store opened: %s", dir)
	return &MediaStore{db: db, dir: dir}, nil
}

// Close releases the index
func (m *MediaStore) Close() error {
	return m.db.Close()
}

// Dir returns the collection directory
func (m *MediaStore) Dir() string { return m.dir }

// Staged reports that entries stay hidden until published
func (m *MediaStore) Staged() bool { return true }

// Insert registers a new entry. When the collection directory has gone
// away (an unmounted volume) the insert is declined with an empty URI.
func (m *MediaStore) Insert(ctx context.Context, entry model.MediaEntry) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if info, err := os.Stat(m.dir); err != nil || !info.IsDir() {
		log.Printf("Media store %s unavailable, declining insert of %s", m.dir, entry.DisplayName)
		return "", nil
	}

	id := uuid.NewString()
	stored := entry.DisplayName
	if entry.Pending {
		stored = PendingFilePrefix + id + "-" + entry.DisplayName
	} else {
		stored = m.freeName(ctx, entry.DisplayName)
	}

	f, err := os.OpenFile(filepath.Join(m.dir, stored), os.O_CREATE|os.O_EXCL|os.O_WRONLY, DefaultFilePermissions)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", stored, err)
	}
	f.Close()

	created := entry.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	uri := MediaURIPrefix + id
	_, err = m.db.ExecContext(ctx,
		"INSERT INTO media (uri, display_name, stored_name, mime_type, is_pending, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		uri, entry.DisplayName, stored, entry.MIMEType, boolToInt(entry.Pending), created.UnixMilli())
	if err != nil {
		os.Remove(filepath.Join(m.dir, stored))
		return "", fmt.Errorf("failed to index %s: %w", stored, err)
	}
	return uri, nil
}

// Open returns a writer that replaces the entry's bytes
func (m *MediaStore) Open(uri string) (io.WriteCloser, error) {
	row, err := m.lookup(context.Background(), uri)
	if err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(m.dir, row.storedName), os.O_WRONLY|os.O_TRUNC, DefaultFilePermissions)
}

// Publish clears the pending flag and moves the file to its display name
func (m *MediaStore) Publish(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx := context.Background()
	row, err := m.lookup(ctx, uri)
	if err != nil {
		return err
	}
	if !row.pending {
		return nil
	}

	from := filepath.Join(m.dir, row.storedName)
	info, err := os.Stat(from)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", row.storedName, err)
	}

	final := m.freeName(ctx, row.displayName)
	if err := os.Rename(from, filepath.Join(m.dir, final)); err != nil {
		return fmt.Errorf("failed to publish %s: %w", final, err)
	}

	_, err = m.db.ExecContext(ctx, "UPDATE media SET is_pending = 0, stored_name = ?, size = ? WHERE uri = ?", final, info.Size(), uri)
	if err != nil {
		os.Rename(filepath.Join(m.dir, final), from)
		return fmt.Errorf("failed to update %s: %w", uri, err)
	}

	NotifyMediaScanner(filepath.Join(m.dir, final))
	log.Printf("Published %s as %s", uri, final)
	return nil
}

// Locate returns the current file path of uri
func (m *MediaStore) Locate(uri string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, err := m.lookup(context.Background(), uri)
	if err != nil {
		return "", err
	}
	return filepath.Join(m.dir, row.storedName), nil
}

// Discard removes the entry and its file
func (m *MediaStore) Discard(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx := context.Background()
	row, err := m.lookup(ctx, uri)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(m.dir, row.storedName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", row.storedName, err)
	}
	if _, err := m.db.ExecContext(ctx, "DELETE FROM media WHERE uri = ?", uri); err != nil {
		return fmt.Errorf("failed to delete %s: %w", uri, err)
	}
	return nil
}

// List returns the published images, newest first
func (m *MediaStore) List(ctx context.Context) ([]model.MediaItem, error) {
	rows, err := m.db.QueryContext(ctx,
		"SELECT uri, display_name, stored_name, mime_type, size, created_at FROM media WHERE is_pending = 0 ORDER BY created_at DESC, stored_name")
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	defer rows.Close()

	var items []model.MediaItem
	for rows.Next() {
		var item model.MediaItem
		var stored string
		var created int64
		if err := rows.Scan(&item.URI, &item.DisplayName, &stored, &item.MIMEType, &item.Size, &created); err != nil {
			return nil, fmt.Errorf("failed to scan media row: %w", err)
		}
		item.Path = filepath.Join(m.dir, stored)
		item.CreatedAt = time.UnixMilli(created)
		items = append(items, item)
	}
	return items, rows.Err()
}

type mediaRow struct {
	displayName string
	storedName  string
	pending     bool
}

func (m *MediaStore) lookup(ctx context.Context, uri string) (mediaRow, error) {
	var row mediaRow
	var pending int
	err := m.db.QueryRowContext(ctx, "SELECT display_name, stored_name, is_pending FROM media WHERE uri = ?", uri).
		Scan(&row.displayName, &row.storedName, &pending)
	if errors.Is(err, sql.ErrNoRows) {
		return row, fmt.Errorf("%w: %s", ErrUnknownURI, uri)
	}
	if err != nil {
		return row, fmt.Errorf("failed to look up %s: %w", uri, err)
	}
	row.pending = pending != 0
	return row, nil
}

// freeName returns name or "base (n).ext" so that no indexed or existing
// file is overwritten
func (m *MediaStore) freeName(ctx context.Context, name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for n := 1; m.taken(ctx, candidate); n++ {
		candidate = fmt.Sprintf("%s (%d)%s", base, n, ext)
	}
	return candidate
}

func (m *MediaStore) taken(ctx context.Context, name string) bool {
	if _, err := os.Stat(filepath.Join(m.dir, name)); err == nil {
		return true
	}
	var count int
	if err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM media WHERE stored_name = ?", name).Scan(&count); err != nil {
		return false
	}
	return count > 0
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
