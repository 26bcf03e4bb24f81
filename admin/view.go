package admin

import "github.com/s0up4200/marquee/catalog"

// ViewState is what the movie list currently shows
type ViewState int

const (
	// ViewLoading means nothing has been fetched yet
	ViewLoading ViewState = iota
	// ViewError means the last operation failed
	ViewError
	// ViewLoaded means the list reflects the last successful fetch; it may be empty
	ViewLoaded
)

// String returns the string representation of a ViewState
func (s ViewState) String() string {
	switch s {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// View is a snapshot of the admin page
type View struct {
	State  ViewState
	Movies []catalog.Movie
	Error  string
	Busy   bool
}

// CanRefresh reports whether a manual refresh may be started
func (v View) CanRefresh() bool {
	return !v.Busy
}

// IsEmpty reports a successful load with zero movies
func (v View) IsEmpty() bool {
	return v.State == ViewLoaded && len(v.Movies) == 0
}
