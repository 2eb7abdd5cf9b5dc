package feed

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/ytget/photo-feed/internal/model"
	"github.com/ytget/photo-feed/internal/unsplash"
)

// View receives the visual effects of a fetch cycle. Within one cycle the
// calls arrive as ShowLoading, then ShowPhotos or ShowError, then
// HideLoading. Implementations must not call back into the controller's
// Fetch, Refresh or Teardown synchronously.
type View interface {
	// ShowLoading shows the loading state and hides any previous error
	ShowLoading()
	// ShowPhotos displays a replacement set of items
	ShowPhotos(photos []model.Photo)
	// ShowError shows the error indicator, leaving displayed items alone
	ShowError(err error)
	// HideLoading clears the refresh indicator and the loading placeholder
	HideLoading()
}

// Dispatcher runs fn on the goroutine that owns the view
type Dispatcher func(fn func())

// Immediate runs fn on the calling goroutine
func Immediate(fn func()) { fn() }

// Controller orchestrates fetch cycles. A new Fetch cancels the cycle in
// flight and only the most recent cycle may touch the state.
type Controller struct {
	gateway  unsplash.Gateway
	view     View
	dispatch Dispatcher

	// applyMu serialises view effects with Teardown
	applyMu sync.Mutex

	mu         sync.Mutex
	state      model.FeedState
	generation uint64
	cancel     context.CancelFunc
	tornDown   bool

	wg sync.WaitGroup
}

// NewController creates a controller with an empty, idle feed.
// A nil dispatch runs view effects on the worker goroutine.
func NewController(gateway unsplash.Gateway, view View, dispatch Dispatcher) *Controller {
	if view == nil {
		view = nopView{}
	}
	if dispatch == nil {
		dispatch = Immediate
	}
	return &Controller{
		gateway:  gateway,
		view:     view,
		dispatch: dispatch,
		state:    model.FeedState{Status: model.FeedStatusIdle},
	}
}

// State returns a snapshot of the feed
func (c *Controller) State() model.FeedState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Fetch starts a fetch cycle. A blank query selects random mode. It is
// meant to be called from the view's goroutine and returns immediately.
func (c *Controller) Fetch(query string) {
	if strings.TrimSpace(query) == "" {
		query = ""
	}

	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	c.mu.Lock()
	if c.tornDown {
		c.mu.Unlock()
		log.Printf("Fetch ignored, controller torn down")
		return
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.generation++
	gen := c.generation
	c.cancel = cancel
	c.state.Query = query
	c.state.Status = model.FeedStatusLoading
	c.state.Err = nil
	c.mu.Unlock()

	if query == "" {
		log.Printf("Fetch cycle %d started: random photos", gen)
	} else {
		log.Printf("Fetch cycle %d started: search %q", gen, query)
	}
	c.view.ShowLoading()

	c.wg.Add(1)
	go c.run(ctx, cancel, gen, query)
}

// Refresh repeats the last fetch with the current query
func (c *Controller) Refresh() {
	c.Fetch(c.State().Query)
}

// Teardown cancels the fetch in flight. After it returns no fetch result
// reaches the state or the view, and further Fetch calls are ignored.
func (c *Controller) Teardown() {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tornDown {
		return
	}
	c.tornDown = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	log.Printf("Feed controller torn down at cycle %d", c.generation)
}

// Wait blocks until every started fetch goroutine has returned
func (c *Controller) Wait() {
	c.wg.Wait()
}

// run performs the gateway call off the view goroutine
func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, gen uint64, query string) {
	defer c.wg.Done()
	defer cancel()

	photos, err := c.gateway.GetRandomPhotos(ctx, query)
	c.dispatch(func() {
		c.complete(gen, photos, err)
	})
}

// complete applies the outcome of cycle gen if it is still the current one
func (c *Controller) complete(gen uint64, photos []model.Photo, err error) {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	c.mu.Lock()
	if c.tornDown || gen != c.generation {
		c.mu.Unlock()
		log.Printf("Dropping result of stale fetch cycle %d", gen)
		return
	}
	if err != nil {
		c.state.Status = model.FeedStatusError
		c.state.Err = err
	} else {
		c.state.Items = append([]model.Photo(nil), photos...)
		c.state.Status = model.FeedStatusLoaded
	}
	c.cancel = nil
	items := c.state.Clone().Items
	c.mu.Unlock()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("Fetch cycle %d cancelled: %v", gen, err)
		} else {
			log.Printf("Fetch cycle %d failed: %v", gen, err)
		}
		c.view.ShowError(err)
	} else {
		log.Printf("Fetch cycle %d loaded %d photos", gen, len(items))
		c.view.ShowPhotos(items)
	}
	c.view.HideLoading()
}

type nopView struct{}

func (nopView) ShowLoading()             {}
func (nopView) ShowPhotos([]model.Photo) {}
func (nopView) ShowError(error)          {}
func (nopView) HideLoading()             {}
