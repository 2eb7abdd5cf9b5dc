package download

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"github.com/ytget/photo-feed/internal/model"
	"github.com/ytget/photo-feed/internal/platform"
)

// JPEGQuality is used when a downloaded image has to be re-encoded
const JPEGQuality = 100

// Service handles download operations
type Service struct {
	tasks      map[string]*model.DownloadTask
	tasksMutex sync.RWMutex
	http       *http.Client
	collection Collection
	permission PermissionChecker
	onUpdate   func(*model.DownloadTask) // callback for UI updates
	now        func() time.Time
}

// NewService creates a new download service. A nil permission checker
// means writes are always allowed.
func NewService(collection Collection, permission PermissionChecker) *Service {
	return &Service{
		tasks:      make(map[string]*model.DownloadTask),
		http:       &http.Client{},
		collection: collection,
		permission: permission,
		now:        time.Now,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SetHTTPClient replaces the underlying HTTP client
func (s *Service) SetHTTPClient(client *http.Client) {
	if client != nil {
		s.http = client
	}
}

// SetCollection switches the collection used by later downloads
func (s *Service) SetCollection(collection Collection) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.collection = collection
}

// Download saves the image at url and returns the finished task.
// A declined insert is not an error: the task ends up Skipped.
func (s *Service) Download(ctx context.Context, url string) (*model.DownloadTask, error) {
	task := s.newTask(url)
	err := s.run(ctx, task)
	return task, err
}

// Start saves the image at url in the background. Progress is reported
// through the update callback.
func (s *Service) Start(url string) (*model.DownloadTask, error) {
	s.tasksMutex.RLock()
	for _, task := range s.tasks {
		if task.URL == url && !task.Status.IsFinished() {
			s.tasksMutex.RUnlock()
			return nil, fmt.Errorf("download already running for URL: %s", url)
		}
	}
	s.tasksMutex.RUnlock()

	task := s.newTask(url)
	go func() {
		if err := s.run(context.Background(), task); err != nil {
			log.Printf("Download task %s failed: %v", task.ID, err)
		}
	}()
	return task, nil
}

// GetTask returns a task by ID
func (s *Service) GetTask(id string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	return task, exists
}

// GetAllTasks returns all tasks
func (s *Service) GetAllTasks() []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}

// RemoveTask forgets a finished task
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return fmt.Errorf("task not found: %s", id)
	}
	if task.Status.IsActive() {
		return fmt.Errorf("task is still active: %s", task.Status)
	}
	delete(s.tasks, id)
	return nil
}

func (s *Service) newTask(url string) *model.DownloadTask {
	task := &model.DownloadTask{
		ID:     generateTaskID(),
		URL:    url,
		Status: model.TaskStatusPending,
	}

	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	s.tasksMutex.Unlock()
	return task
}

// run performs one save. Every outcome is reflected in the task.
func (s *Service) run(ctx context.Context, task *model.DownloadTask) error {
	s.tasksMutex.Lock()
	collection := s.collection
	task.Status = model.TaskStatusDownloading
	task.StartedAt = s.now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	log.Printf("Processing download: %s", task.URL)

	if s.permission != nil && !s.permission.WriteGranted() {
		return s.fail(task, model.ErrPermissionDenied)
	}
	if collection == nil {
		return s.fail(task, &model.StorageError{Op: "insert", Err: errors.New("no collection configured")})
	}

	data, err := platform.FetchBytes(ctx, s.http, task.URL, true)
	if err != nil {
		return s.fail(task, err)
	}

	data, err = toJPEG(task.URL, data)
	if err != nil {
		return s.fail(task, err)
	}

	created := s.now()
	entry := model.MediaEntry{
		DisplayName: fmt.Sprintf("%d.jpg", created.UnixMilli()),
		MIMEType:    model.JPEGMimeType,
		Pending:     collection.Staged(),
		CreatedAt:   created,
	}

	uri, err := collection.Insert(ctx, entry)
	if err != nil {
		return s.fail(task, &model.StorageError{Op: "insert", Err: err})
	}
	if uri == "" {
		log.Printf("Download task %s skipped: collection returned no URI for %s", task.ID, entry.DisplayName)
		s.finish(task, model.TaskStatusSkipped, func() {
			task.FileName = entry.DisplayName
		})
		return nil
	}

	written, err := writeEntry(collection, uri, data)
	if err != nil {
		s.discard(collection, uri)
		return s.fail(task, &model.StorageError{Op: "write", URI: uri, Err: err})
	}

	if collection.Staged() {
		if err := collection.Publish(uri); err != nil {
			s.discard(collection, uri)
			return s.fail(task, &model.StorageError{Op: "publish", URI: uri, Err: err})
		}
	}

	var path string
	if locator, ok := collection.(Locator); ok {
		if path, err = locator.Locate(uri); err != nil {
			log.Printf("Failed to locate %s: %v", uri, err)
		}
	}

	s.finish(task, model.TaskStatusCompleted, func() {
		task.FileName = entry.DisplayName
		task.URI = uri
		task.Path = path
		task.Bytes = written
	})
	log.Printf("Task %s completed: %s (%d bytes)", task.ID, uri, written)
	return nil
}

func writeEntry(collection Collection, uri string, data []byte) (int64, error) {
	w, err := collection.Open(uri)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return int64(n), err
}

func (s *Service) discard(collection Collection, uri string) {
	if err := collection.Discard(uri); err != nil {
		log.Printf("Failed to discard %s: %v", uri, err)
	}
}

func (s *Service) fail(task *model.DownloadTask, err error) error {
	s.finish(task, model.TaskStatusError, func() {
		task.LastError = err.Error()
	})
	log.Printf("Download task %s failed: %v", task.ID, err)
	return err
}

func (s *Service) finish(task *model.DownloadTask, status model.TaskStatus, update func()) {
	s.tasksMutex.Lock()
	task.Status = status
	task.FinishedAt = s.now()
	if update != nil {
		update()
	}
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// toJPEG returns data unchanged when it already is a JPEG and re-encodes
// any other decodable image
func toJPEG(url string, data []byte) ([]byte, error) {
	mtype := mimetype.Detect(data)
	if mtype.Is(model.JPEGMimeType) {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &model.DecodeError{URL: url, Err: fmt.Errorf("unsupported content %s: %w", mtype.String(), err)}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, &model.DecodeError{URL: url, Err: fmt.Errorf("failed to encode jpeg: %w", err)}
	}
	log.Printf("Converted %s to jpeg (%d -> %d bytes)", mtype.String(), len(data), buf.Len())
	return buf.Bytes(), nil
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(task)
	}
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return "download-" + uuid.NewString()
}
