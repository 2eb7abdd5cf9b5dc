package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// DefaultPullThreshold is how far a touch has to travel to count as a pull
const DefaultPullThreshold float32 = 50.0

// PullDetector recognises a downward pull between a touch down and up
type PullDetector struct {
	onPull func()

	touching  bool
	startPos  fyne.Position
	threshold float32
}

// NewPullDetector creates a detector calling onPull for each pull
func NewPullDetector(onPull func()) *PullDetector {
	return &PullDetector{onPull: onPull, threshold: DefaultPullThreshold}
}

// TouchDown records where the touch started
func (pd *PullDetector) TouchDown(event *mobile.TouchEvent) {
	pd.touching = true
	pd.startPos = event.Position
}

// TouchUp fires onPull when the touch moved far enough and mostly downwards
func (pd *PullDetector) TouchUp(event *mobile.TouchEvent) {
	if !pd.touching {
		return
	}
	pd.touching = false

	dx := event.Position.X - pd.startPos.X
	dy := event.Position.Y - pd.startPos.Y
	if dy <= 0 || dx*dx+dy*dy < pd.threshold*pd.threshold {
		return
	}
	if dx < 0 {
		dx = -dx
	}
	if dy < dx {
		return
	}
	if pd.onPull != nil {
		pd.onPull()
	}
}

// TouchCancel forgets the touch in progress
func (pd *PullDetector) TouchCancel(*mobile.TouchEvent) {
	pd.touching = false
}

// PullToRefresh wraps content and calls the refresh function when the user
// swipes down while the content is scrolled to the top. It stays disarmed
// until SetRefreshing(false), so one pull issues one refresh.
type PullToRefresh struct {
	widget.BaseWidget

	content     fyne.CanvasObject
	detector    *PullDetector
	refreshFunc func()
	atTop       func() bool

	mu           sync.Mutex
	isRefreshing bool
	rearm        *time.Timer
}

// NewPullToRefresh creates a pull-to-refresh wrapper. atTop may be nil.
func NewPullToRefresh(content fyne.CanvasObject, atTop func() bool, refreshFunc func()) *PullToRefresh {
	ptr := &PullToRefresh{
		content:     content,
		refreshFunc: refreshFunc,
		atTop:       atTop,
	}
	ptr.detector = NewPullDetector(ptr.handlePull)
	ptr.ExtendBaseWidget(ptr)
	return ptr
}

// CreateRenderer creates the widget renderer
func (ptr *PullToRefresh) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ptr.content)
}

// IsRefreshing reports whether a refresh is in progress
func (ptr *PullToRefresh) IsRefreshing() bool {
	ptr.mu.Lock()
	defer ptr.mu.Unlock()
	return ptr.isRefreshing
}

// SetRefreshing marks a refresh as started or finished
func (ptr *PullToRefresh) SetRefreshing(refreshing bool) {
	ptr.mu.Lock()
	defer ptr.mu.Unlock()
	ptr.isRefreshing = refreshing
	if ptr.rearm != nil {
		ptr.rearm.Stop()
		ptr.rearm = nil
	}
	if refreshing {
		ptr.rearm = time.AfterFunc(PullToRefreshRearm, func() {
			ptr.mu.Lock()
			ptr.isRefreshing = false
			ptr.mu.Unlock()
		})
	}
}

func (ptr *PullToRefresh) handlePull() {
	if ptr.atTop != nil && !ptr.atTop() {
		return
	}
	ptr.triggerRefresh()
}

func (ptr *PullToRefresh) triggerRefresh() {
	if ptr.refreshFunc == nil || ptr.IsRefreshing() {
		return
	}
	ptr.SetRefreshing(true)
	ptr.refreshFunc()
}

// TouchDown handles touch down events
func (ptr *PullToRefresh) TouchDown(event *mobile.TouchEvent) {
	ptr.detector.TouchDown(event)
}

// TouchUp handles touch up events
func (ptr *PullToRefresh) TouchUp(event *mobile.TouchEvent) {
	ptr.detector.TouchUp(event)
}

// TouchCancel handles touch cancel events
func (ptr *PullToRefresh) TouchCancel(event *mobile.TouchEvent) {
	ptr.detector.TouchCancel(event)
}
