package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
)

func touchAt(x, y float32) *mobile.TouchEvent {
	return &mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestPullDetector(t *testing.T) {
	tests := []struct {
		name     string
		from, to fyne.Position
		want     int
	}{
		{"tap", fyne.NewPos(10, 10), fyne.NewPos(12, 11), 0},
		{"pull down", fyne.NewPos(100, 10), fyne.NewPos(105, 200), 1},
		{"swipe up", fyne.NewPos(100, 200), fyne.NewPos(95, 10), 0},
		{"swipe sideways", fyne.NewPos(200, 100), fyne.NewPos(10, 110), 0},
		// 40x41 moves about 57 points, more than the threshold
		{"diagonal beyond threshold", fyne.NewPos(0, 0), fyne.NewPos(40, 41), 1},
		{"short pull", fyne.NewPos(0, 0), fyne.NewPos(0, 30), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pulls := 0
			pd := NewPullDetector(func() { pulls++ })

			pd.TouchDown(touchAt(tt.from.X, tt.from.Y))
			pd.TouchUp(touchAt(tt.to.X, tt.to.Y))

			assert.Equal(t, tt.want, pulls)
		})
	}
}

func TestPullDetectorCancel(t *testing.T) {
	pulls := 0
	pd := NewPullDetector(func() { pulls++ })

	pd.TouchDown(touchAt(5, 5))
	pd.TouchCancel(touchAt(5, 5))
	pd.TouchUp(touchAt(5, 300))
	assert.Zero(t, pulls, "a cancelled touch must not pull")

	pd.TouchUp(touchAt(5, 300))
	assert.Zero(t, pulls, "a touch up without touch down must not pull")
}

func TestPullToRefresh(t *testing.T) {
	test.NewApp()

	refreshes := 0
	atTop := true
	ptr := NewPullToRefresh(widget.NewLabel("feed"), func() bool { return atTop }, func() { refreshes++ })

	pull := func() {
		ptr.TouchDown(touchAt(50, 10))
		ptr.TouchUp(touchAt(50, 300))
	}

	pull()
	assert.Equal(t, 1, refreshes)
	assert.True(t, ptr.IsRefreshing())

	// Disarmed until loading ends
	pull()
	assert.Equal(t, 1, refreshes)

	ptr.SetRefreshing(false)
	pull()
	assert.Equal(t, 2, refreshes)
	ptr.SetRefreshing(false)

	// Swiping up or pulling while scrolled down does nothing
	ptr.TouchDown(touchAt(50, 300))
	ptr.TouchUp(touchAt(50, 10))
	atTop = false
	pull()
	assert.Equal(t, 2, refreshes)
}
