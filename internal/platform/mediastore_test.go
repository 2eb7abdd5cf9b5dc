package platform

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/photo-feed/internal/model"
)

func openTestStore(t *testing.T) *MediaStore {
	t.Helper()
	store, err := OpenMediaStore(filepath.Join(t.TempDir(), "album"), "")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func visibleFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	return names
}

func pendingEntry(name string) model.MediaEntry {
	return model.MediaEntry{
		DisplayName: name,
		MIMEType:    model.JPEGMimeType,
		Pending:     true,
		CreatedAt:   time.UnixMilli(1700000000000),
	}
}

func writeAll(t *testing.T, store *MediaStore, uri string, data []byte) {
	t.Helper()
	w, err := store.Open(uri)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestMediaStoreStagedVisibility(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	uri, err := store.Insert(ctx, pendingEntry("1700000000000.jpg"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, MediaURIPrefix))

	writeAll(t, store, uri, []byte("half"))

	items, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "pending entry must not be listed")
	assert.Empty(t, visibleFiles(t, store.Dir()), "pending file must be hidden")

	writeAll(t, store, uri, []byte("complete jpeg bytes"))
	require.NoError(t, store.Publish(uri))

	items, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uri, items[0].URI)
	assert.Equal(t, "1700000000000.jpg", items[0].DisplayName)
	assert.Equal(t, model.JPEGMimeType, items[0].MIMEType)
	assert.Equal(t, int64(len("complete jpeg bytes")), items[0].Size)
	assert.Equal(t, []string{"1700000000000.jpg"}, visibleFiles(t, store.Dir()))

	data, err := os.ReadFile(items[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "complete jpeg bytes", string(data))

	// publishing twice is harmless
	assert.NoError(t, store.Publish(uri))
}

func TestMediaStoreDiscard(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	uri, err := store.Insert(ctx, pendingEntry("a.jpg"))
	require.NoError(t, err)
	writeAll(t, store, uri, []byte("partial"))

	require.NoError(t, store.Discard(uri))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), PendingFilePrefix), "leftover %s", e.Name())
	}
	assert.ErrorIs(t, store.Publish(uri), ErrUnknownURI)
}

func TestMediaStoreNameCollisions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		uri, err := store.Insert(ctx, pendingEntry("same.jpg"))
		require.NoError(t, err)
		writeAll(t, store, uri, []byte{byte(i)})
		require.NoError(t, store.Publish(uri))
	}

	assert.ElementsMatch(t, []string{"same.jpg", "same (1).jpg", "same (2).jpg"}, visibleFiles(t, store.Dir()))
	items, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestMediaStoreUnstagedInsertIsVisible(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entry := pendingEntry("direct.jpg")
	entry.Pending = false
	uri, err := store.Insert(ctx, entry)
	require.NoError(t, err)

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uri, items[0].URI)
}

func TestMediaStoreDeclinesWhenDirectoryIsGone(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "volume")
	store, err := OpenMediaStore(dir, filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, os.RemoveAll(dir))

	uri, err := store.Insert(context.Background(), pendingEntry("x.jpg"))
	assert.NoError(t, err)
	assert.Empty(t, uri)
}

func TestMediaStoreUnknownURI(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Open(MediaURIPrefix + "missing")
	assert.ErrorIs(t, err, ErrUnknownURI)
	assert.ErrorIs(t, store.Discard(MediaURIPrefix+"missing"), ErrUnknownURI)
}

func TestMediaStoreReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "album")
	store, err := OpenMediaStore(dir, "")
	require.NoError(t, err)

	uri, err := store.Insert(context.Background(), pendingEntry("keep.jpg"))
	require.NoError(t, err)
	writeAll(t, store, uri, []byte("x"))
	require.NoError(t, store.Publish(uri))
	require.NoError(t, store.Close())

	reopened, err := OpenMediaStore(dir, "")
	require.NoError(t, err)
	defer reopened.Close()

	items, err := reopened.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "keep.jpg", items[0].DisplayName)
}
