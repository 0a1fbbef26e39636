// Package viewer provides the frame-stepping loop and generation sessions.
package viewer

// State represents what the viewer is showing.
type State int

const (
	// StateViewing steps through generated frames.
	StateViewing State = iota
	// StateFailed shows a generation error until the user retries or quits.
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateViewing:
		return "viewing"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
