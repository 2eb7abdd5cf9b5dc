package download

import (
	"fmt"
	"io"
	"log"

	"github.com/ytget/photo-feed/internal/config"
	"github.com/ytget/photo-feed/internal/platform"
)

// NewCollection opens the collection selected by backend. dir is the
// pictures directory used by the local backends. The returned closer
// releases resources held by the collection and is never nil.
func NewCollection(backend config.StorageBackend, dir string, environment *config.Environment) (Collection, io.Closer, error) {
	switch backend {
	case config.StorageDirect:
		log.Printf("Using direct collection in %s", dir)
		return platform.NewDirectCollection(dir), nopCloser{}, nil

	case config.StorageBucket:
		if environment == nil || !environment.HasBucket() {
			return nil, nil, fmt.Errorf("storage backend %s needs S3_ENDPOINT", backend)
		}
		s3 := environment.S3
		client, err := platform.NewMinioClient(s3.Endpoint, s3.AccessKey, s3.SecretKey, s3.UseSSL)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using bucket collection %s at %s", s3.Bucket, s3.Endpoint)
		return platform.NewBucketCollection(client, s3.Bucket), nopCloser{}, nil

	default:
		var dbPath string
		if environment != nil {
			dbPath = environment.MediaDB
		}
		store, err := platform.OpenMediaStore(dir, dbPath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using media store in %s", dir)
		return store, store, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
