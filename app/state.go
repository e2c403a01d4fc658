package app

// State represents the current application state.
type State int

const (
	StateLoading State = iota // Preloading content or waiting for a size
	StateBrowse               // Gallery ready
	StateHelp                 // Key help overlay
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateBrowse:
		return "browse"
	case StateHelp:
		return "help"
	default:
		return "unknown"
	}
}
