package model

// FeedStatus represents the state of the feed's last fetch cycle
type FeedStatus string

const (
	// FeedStatusIdle means no fetch has been issued yet
	FeedStatusIdle FeedStatus = "Idle"

	// FeedStatusLoading means a fetch cycle is in flight
	FeedStatusLoading FeedStatus = "Loading"

	// FeedStatusLoaded means the last fetch replaced the items
	FeedStatusLoaded FeedStatus = "Loaded"

	// FeedStatusError means the last fetch failed
	FeedStatusError FeedStatus = "Error"
)

// String returns the string representation of FeedStatus
func (fs FeedStatus) String() string {
	return string(fs)
}

// TaskStatus represents the status of a download task
type TaskStatus string

const (
	// TaskStatusPending means the task is created but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusDownloading means bytes are being fetched or written
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusCompleted means the image is stored and visible
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusSkipped means the collection refused the insert and nothing was written
	TaskStatusSkipped TaskStatus = "Skipped"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusDownloading
}

// IsFinished returns true if the task is in a finished state (completed, skipped, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusSkipped || ts == TaskStatusError
}
