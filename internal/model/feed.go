package model

// FeedState is the controller-owned view of the feed.
type FeedState struct {
	Items  []Photo
	Query  string // empty in random mode
	Status FeedStatus
	Err    error // last fetch failure, nil unless Status is Error
}

// IsRandom reports whether the feed shows random photos rather than a search.
func (s FeedState) IsRandom() bool {
	return s.Query == ""
}

// Clone returns a copy whose Items slice does not alias the receiver's.
func (s FeedState) Clone() FeedState {
	out := s
	if s.Items != nil {
		out.Items = make([]Photo, len(s.Items))
		copy(out.Items, s.Items)
	}
	return out
}
