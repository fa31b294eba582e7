package session

type State int

const (
	Restoring State = iota
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Restoring:
		return "restoring"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
