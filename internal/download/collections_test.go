package download

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/photo-feed/internal/config"
	"github.com/ytget/photo-feed/internal/platform"
)

func TestNewCollection(t *testing.T) {
	t.Run("media store by default", func(t *testing.T) {
		dir := t.TempDir()
		collection, closer, err := NewCollection(config.StorageMediaStore, dir, nil)
		require.NoError(t, err)
		defer closer.Close()

		store, ok := collection.(*platform.MediaStore)
		require.True(t, ok)
		assert.Equal(t, dir, store.Dir())
		assert.True(t, collection.Staged())
		assert.FileExists(t, filepath.Join(dir, platform.MediaIndexFile))
	})

	t.Run("media store honours MEDIA_DB", func(t *testing.T) {
		dir := t.TempDir()
		dbPath := filepath.Join(t.TempDir(), "index.db")
		collection, closer, err := NewCollection("unknown", dir, &config.Environment{MediaDB: dbPath})
		require.NoError(t, err)
		defer closer.Close()

		assert.IsType(t, &platform.MediaStore{}, collection)
		assert.FileExists(t, dbPath)
		assert.NoFileExists(t, filepath.Join(dir, platform.MediaIndexFile))
	})

	t.Run("direct", func(t *testing.T) {
		collection, closer, err := NewCollection(config.StorageDirect, t.TempDir(), nil)
		require.NoError(t, err)
		assert.NoError(t, closer.Close())
		assert.False(t, collection.Staged())
		assert.Implements(t, (*Locator)(nil), collection)
		assert.Implements(t, (*Lister)(nil), collection)
	})

	t.Run("bucket without endpoint", func(t *testing.T) {
		_, _, err := NewCollection(config.StorageBucket, t.TempDir(), &config.Environment{})
		assert.ErrorContains(t, err, "S3_ENDPOINT")
	})

	t.Run("bucket", func(t *testing.T) {
		environment := &config.Environment{S3: config.S3Properties{
			Endpoint: "localhost:9000",
			Bucket:   "photos",
		}}
		collection, closer, err := NewCollection(config.StorageBucket, "", environment)
		require.NoError(t, err)
		assert.NoError(t, closer.Close())
		assert.True(t, collection.Staged())
		assert.Implements(t, (*Lister)(nil), collection)
	})
}
