// Command photo-feed fetches a page of photos without a window, prints the
// rows the feed would render and optionally saves one of them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ytget/photo-feed/internal/config"
	"github.com/ytget/photo-feed/internal/download"
	"github.com/ytget/photo-feed/internal/feed"
	"github.com/ytget/photo-feed/internal/model"
	"github.com/ytget/photo-feed/internal/platform"
	"github.com/ytget/photo-feed/internal/unsplash"
)

const (
	DefaultWidth       = 1080
	DescriptionPreview = 48
)

// cliView collects the outcome of one fetch cycle
type cliView struct {
	photos []model.Photo
	err    error
	done   chan struct{}
}

func (v *cliView) ShowLoading()                    { fmt.Fprintln(os.Stderr, "Loading photos...") }
func (v *cliView) ShowPhotos(photos []model.Photo) { v.photos = photos }
func (v *cliView) ShowError(err error)             { v.err = err }
func (v *cliView) HideLoading()                    { close(v.done) }

func main() {
	query := flag.String("q", "", "search query, random photos when empty")
	width := flag.Int("width", DefaultWidth, "layout width rows are sized for")
	save := flag.Int("save", 0, "save the N-th photo (1-based)")
	dir := flag.String("dir", "", "collection directory (default: the pictures album)")
	backend := flag.String("backend", string(config.DefaultStorageBackend), "storage backend: mediastore, direct or s3")
	list := flag.Bool("list", false, "list the images in the collection and exit")
	flag.Parse()

	environment, err := config.ReadEnvironment()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *list || *save > 0 {
		if *dir == "" {
			if *dir, err = platform.GetPicturesDir(); err != nil {
				log.Fatalf("No pictures directory: %v", err)
			}
		}
	}

	if *list {
		if err := listCollection(ctx, config.StorageBackend(*backend), *dir, environment); err != nil {
			log.Fatal(err)
		}
		return
	}

	gateway := unsplash.NewClient(environment.Unsplash.APIURL, environment.Unsplash.AccessKey, environment.Unsplash.PageSize)
	view := &cliView{done: make(chan struct{})}
	controller := feed.NewController(gateway, view, feed.Immediate)

	controller.Fetch(*query)
	select {
	case <-view.done:
	case <-ctx.Done():
		controller.Teardown()
		log.Fatal("Interrupted")
	}
	if view.err != nil {
		log.Fatalf("Fetch failed: %v", view.err)
	}

	rows := feed.NewList()
	rows.SetPhotos(view.photos)
	printRows(rows, *width)

	if *save <= 0 {
		return
	}

	collection, closer, err := download.NewCollection(config.StorageBackend(*backend), *dir, environment)
	if err != nil {
		log.Fatalf("Failed to open collection: %v", err)
	}
	defer closer.Close()

	// Choosing the directory on the command line is the grant
	permission := platform.NewStoragePermission(*dir, false, true)
	service := download.NewService(collection, permission)

	var saveErr error
	rows.SetSelectCallback(func(photo model.Photo) {
		saveErr = savePhoto(ctx, service, photo)
	})
	if _, ok := rows.Activate(*save - 1); !ok {
		log.Fatalf("No photo %d, the page has %d", *save, rows.Len())
	}
	if saveErr != nil {
		log.Fatal(saveErr)
	}
}

func printRows(rows *feed.List, width int) {
	for i := 0; i < rows.Len(); i++ {
		row, ok := rows.Bind(i, width)
		if !ok {
			continue
		}
		switch row.Kind {
		case feed.RowKindPhoto:
			author := "-"
			if row.ShowAuthor {
				author = row.AuthorName
			}
			size := fmt.Sprintf("%dx%d", row.Width, row.Height)
			if row.Degenerate {
				size += "*"
			}
			fmt.Printf("%3d  %-10s %-11s %-24s %s\n", row.Position+1, row.PhotoID, size, author, preview(row.Description))
			fmt.Printf("     %s\n", row.ImageURL)
		}
	}
}

func savePhoto(ctx context.Context, service *download.Service, photo model.Photo) error {
	url := photo.URLs.Full
	if url == "" {
		url = photo.URLs.Regular
	}
	if url == "" {
		fmt.Printf("Photo %s has no image URL, nothing to save\n", photo.ID)
		return nil
	}

	task, err := service.Download(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to save photo %s: %w", photo.ID, err)
	}
	switch task.Status {
	case model.TaskStatusSkipped:
		fmt.Printf("Photo %s was not added: the collection declined it\n", photo.ID)
	default:
		where := task.Path
		if where == "" {
			where = task.URI
		}
		fmt.Printf("Saved %s (%s) to %s\n", task.FileName, humanize.Bytes(uint64(task.Bytes)), where)
	}
	return nil
}

func listCollection(ctx context.Context, backend config.StorageBackend, dir string, environment *config.Environment) error {
	collection, closer, err := download.NewCollection(backend, dir, environment)
	if err != nil {
		return fmt.Errorf("failed to open collection: %w", err)
	}
	defer closer.Close()

	lister, ok := collection.(download.Lister)
	if !ok {
		return fmt.Errorf("storage backend %s cannot be listed", backend)
	}
	items, err := lister.List(ctx)
	if err != nil {
		return err
	}

	for _, item := range items {
		fmt.Printf("%-28s %8s  %-14s %s\n", item.DisplayName, humanize.Bytes(uint64(item.Size)), humanize.Time(item.CreatedAt), item.URI)
	}
	fmt.Printf("%d images\n", len(items))
	return nil
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len([]rune(text)) <= DescriptionPreview {
		return text
	}
	return string([]rune(text)[:DescriptionPreview-1]) + "…"
}
