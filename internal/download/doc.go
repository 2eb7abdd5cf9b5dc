package download

// Package download saves photos into a shared image collection. It fetches
// the full-size bytes, normalises them to JPEG, and writes them through a
// Collection, using the pending/publish protocol when the collection
// supports it so that readers never see a partially written file.
