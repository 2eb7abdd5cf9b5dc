package imageload

// Package imageload fetches row images, decodes them (JPEG, PNG, GIF, WebP),
// scales them down to the row size and keeps them in a small memory cache.
// Rows load the thumbnail first and swap in the regular variant when ready.
