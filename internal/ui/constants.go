package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconRefresh  = "⟳"
	IconSearch   = "🔍"
	IconFolder   = "📁"
	IconClose    = "×"
	IconError    = "❌"
	IconSaved    = "✔"
)

// Photo row sizing
const (
	// AuthorAvatarSize is the edge of the circular profile thumbnail
	AuthorAvatarSize float32 = 32

	// RowFallbackWidth is used until the list has been laid out, and as the
	// height of an unbound row
	RowFallbackWidth float32 = 360

	// RowCaptionHeight is reserved below the photo for author and description
	RowCaptionHeight float32 = 56

	MinTouchTargetSize float32 = 44
)

// Image transitions
const (
	CrossFadeDuration = 300 * time.Millisecond
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Pull-to-refresh is re-armed after this long even if loading never ends
const PullToRefreshRearm = 10 * time.Second
