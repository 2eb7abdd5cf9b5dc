package ui

// Package ui contains the Fyne user interface of the photo feed. FeedUI is
// the feed.View of the window: it renders photo rows, the search bar,
// loading and error states, download notifications and settings. All UI
// strings are localized via Localization.
