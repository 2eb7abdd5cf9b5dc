package platform

// Package platform contains OS and storage integration: the shared image
// collections photos are saved into (a staged sqlite-indexed media store, a
// plain directory, an S3 bucket), the storage write permission, filesystem
// helpers, OS open/reveal, and HTTP body decoding.
