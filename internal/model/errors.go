package model

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied is returned when writing to shared storage needs a grant the user has not given.
var ErrPermissionDenied = errors.New("storage write permission denied")

// NetworkError covers connectivity failures, timeouts and non-success statuses.
type NetworkError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError means the response body did not have the expected shape.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StorageError means inserting into or writing to a collection failed.
type StorageError struct {
	Op  string // insert, write, publish
	URI string
	Err error
}

func (e *StorageError) Error() string {
	if e.URI != "" {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.URI, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err wraps a NetworkError
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsDecodeError reports whether err wraps a DecodeError
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// IsStorageError reports whether err wraps a StorageError
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
