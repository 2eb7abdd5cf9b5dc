package feed

// Package feed holds the fetch-render pipeline: the Controller that runs
// one cancellable fetch cycle at a time against the photo gateway, and the
// List that turns photo records into sized rows and resolves row
// activations against the records currently displayed.
