package models

// Phase is the observable status of the bookmark store.
type Phase int

const (
	// PhaseLoading is set at construction and while a fetch is in flight.
	PhaseLoading Phase = iota
	// PhaseReady means the cached data reflects the last successful fetch.
	PhaseReady
	// PhaseError means the last fetch failed. Data from the previous
	// successful fetch, if any, is still present.
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// StoreState is an immutable snapshot of the bookmark store. Slices are
// copies owned by the receiver.
type StoreState struct {
	UserID    string
	Bookmarks []Bookmark
	Tags      []Tag
	Phase     Phase
	Err       error
}

// Loading reports whether a fetch is in flight.
func (s StoreState) Loading() bool {
	return s.Phase == PhaseLoading
}
