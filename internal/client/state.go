package client

// State is the socket lifecycle as observed by the client.
type State int

const (
	// StateIdle is the state before Connect is called.
	StateIdle State = iota
	// StateConnecting means the handshake is in progress.
	StateConnecting
	// StateOpen means frames can be sent and received.
	StateOpen
	// StateClosed means the socket closed normally. Terminal.
	StateClosed
	// StateFailed means the dial or the connection failed. Terminal.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateClosed || s == StateFailed
}

var transitions = map[State][]State{
	StateIdle:       {StateConnecting, StateClosed},
	StateConnecting: {StateOpen, StateFailed, StateClosed},
	StateOpen:       {StateClosed, StateFailed},
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
