package platform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ytget/photo-feed/internal/model"
)

// PendingKeyPrefix holds objects that are still being written
const PendingKeyPrefix = ".pending/"

// ObjectStore is the part of the S3 client the bucket collection needs
type ObjectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (info minio.UploadInfo, err error)
	CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// NewMinioClient creates an S3 client for endpoint
func NewMinioClient(endpoint, accessKeyID, secretAccessKey string, useSSL bool) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client for %s: %w", endpoint, err)
	}
	return client, nil
}

type bucketEntry struct {
	displayName string
	mimeType    string
	pendingKey  string
}

// BucketCollection stores images in an S3 bucket. Bytes are uploaded under
// PendingKeyPrefix and copied to the final key on publish, so listings
// never show a partial object.
type BucketCollection struct {
	client ObjectStore
	bucket string

	mu      sync.Mutex
	entries map[string]*bucketEntry
}

// NewBucketCollection creates a collection in bucket
func NewBucketCollection(client ObjectStore, bucket string) *BucketCollection {
	return &BucketCollection{
		client:  client,
		bucket:  bucket,
		entries: make(map[string]*bucketEntry),
	}
}

// Staged reports that objects stay hidden until published
func (b *BucketCollection) Staged() bool { return true }

// Insert registers an entry. A missing bucket declines the insert.
func (b *BucketCollection) Insert(ctx context.Context, entry model.MediaEntry) (string, error) {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check bucket %s: %w", b.bucket, err)
	}
	if !exists {
		log.Printf("Bucket %s does not exist, declining insert of %s", b.bucket, entry.DisplayName)
		return "", nil
	}

	uri := "s3://" + b.bucket + "/" + entry.DisplayName
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, taken := b.entries[uri]; taken {
		return "", fmt.Errorf("entry already pending: %s", uri)
	}
	b.entries[uri] = &bucketEntry{
		displayName: entry.DisplayName,
		mimeType:    entry.MIMEType,
		pendingKey:  PendingKeyPrefix + uuid.NewString() + "-" + entry.DisplayName,
	}
	return uri, nil
}

type objectWriter struct {
	b     *BucketCollection
	key   string
	mime  string
	buf   bytes.Buffer
	close sync.Once
}

func (w *objectWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Close uploads the buffered bytes to the pending key
func (w *objectWriter) Close() error {
	var err error
	w.close.Do(func() {
		_, err = w.b.client.PutObject(context.Background(), w.b.bucket, w.key,
			bytes.NewReader(w.buf.Bytes()), int64(w.buf.Len()),
			minio.PutObjectOptions{ContentType: w.mime})
	})
	return err
}

// Open returns a writer that uploads on Close
func (b *BucketCollection) Open(uri string) (io.WriteCloser, error) {
	entry, err := b.entry(uri)
	if err != nil {
		return nil, err
	}
	return &objectWriter{b: b, key: entry.pendingKey, mime: entry.mimeType}, nil
}

// Publish copies the pending object to its final key. An existing object
// with the same name is kept and the new one gets a " (n)" suffix.
func (b *BucketCollection) Publish(uri string) error {
	entry, err := b.entry(uri)
	if err != nil {
		return err
	}

	ctx := context.Background()
	key, err := b.freeKey(ctx, entry.displayName)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", uri, err)
	}
	_, err = b.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: b.bucket, Object: key},
		minio.CopySrcOptions{Bucket: b.bucket, Object: entry.pendingKey})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", uri, err)
	}
	if err := b.client.RemoveObject(ctx, b.bucket, entry.pendingKey, minio.RemoveObjectOptions{}); err != nil {
		log.Printf("Failed to remove pending object %s: %v", entry.pendingKey, err)
	}

	b.mu.Lock()
	delete(b.entries, uri)
	b.mu.Unlock()
	log.Printf("Published %s as %s", uri, key)
	return nil
}

// freeKey returns name, or name with a " (n)" suffix, that no object uses yet
func (b *BucketCollection) freeKey(ctx context.Context, name string) (string, error) {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	key := name
	for n := 1; ; n++ {
		_, err := b.client.StatObject(ctx, b.bucket, key, minio.StatObjectOptions{})
		if err != nil {
			resp := minio.ToErrorResponse(err)
			if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
				return key, nil
			}
			return "", fmt.Errorf("failed to check %s: %w", key, err)
		}
		key = fmt.Sprintf("%s (%d)%s", base, n, ext)
	}
}

// Discard removes the pending object
func (b *BucketCollection) Discard(uri string) error {
	entry, err := b.entry(uri)
	if err != nil {
		return err
	}

	b.mu.Lock()
	delete(b.entries, uri)
	b.mu.Unlock()

	if err := b.client.RemoveObject(context.Background(), b.bucket, entry.pendingKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", entry.pendingKey, err)
	}
	return nil
}

// List returns the published objects
func (b *BucketCollection) List(ctx context.Context) ([]model.MediaItem, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var items []model.MediaItem
	for object := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			return items, fmt.Errorf("failed to list bucket %s: %w", b.bucket, object.Err)
		}
		if strings.HasPrefix(object.Key, PendingKeyPrefix) {
			continue
		}
		items = append(items, model.MediaItem{
			URI:         "s3://" + b.bucket + "/" + object.Key,
			DisplayName: path.Base(object.Key),
			MIMEType:    object.ContentType,
			Size:        object.Size,
			CreatedAt:   object.LastModified,
		})
	}
	return items, nil
}

func (b *BucketCollection) entry(uri string) (*bucketEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.entries[uri]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownURI, uri)
	}
	return entry, nil
}
