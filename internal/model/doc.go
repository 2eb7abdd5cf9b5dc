package model

// Package model defines domain data structures used across the app: photo
// records returned by the API, the feed state owned by the controller,
// download tasks, and the error taxonomy shared by the services.
