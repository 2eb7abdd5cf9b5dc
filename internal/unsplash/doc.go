package unsplash

// Package unsplash is the photo gateway: it issues one request per call to
// the Unsplash API, either a random-photo request or a search, and maps the
// response into model.Photo values. There is no caching and no retry.
