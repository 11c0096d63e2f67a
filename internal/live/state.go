// Package live manages real-time voice/video sessions with a guide agent.
//
// A session Manager owns the transport and emits Events; the UI consumes
// events on the update loop and derives a VisualMode for rendering. All
// mode/intent decisions are pure functions here so screens stay thin.
package live

// State is the lifecycle state of a live session
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Disconnecting
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnecting:
		return "disconnecting"
	default:
		return "unknown"
	}
}

// VisualMode is what the session overlay renders. Exactly one mode holds at
// any time; the mapping from session flags is ComputeVisualMode.
type VisualMode int

const (
	// DisconnectedIdle shows the "tap to start" affordance
	DisconnectedIdle VisualMode = iota
	// ConnectingMode shows the connecting spinner
	ConnectingMode
	// ConnectedIdle shows the session is up but nothing is happening
	ConnectedIdle
	// Listening shows the mic-active animation
	Listening
	// Speaking shows the agent-speaking animation
	Speaking
)

func (m VisualMode) String() string {
	switch m {
	case DisconnectedIdle:
		return "idle"
	case ConnectingMode:
		return "connecting"
	case ConnectedIdle:
		return "ready"
	case Listening:
		return "listening"
	case Speaking:
		return "speaking"
	default:
		return "unknown"
	}
}

// ComputeVisualMode maps session state and activity flags to the single
// visual mode the overlay shows. Speaking wins over Listening when both
// flags are momentarily set (the agent interrupting is the more useful
// signal). isProcessing renders as Speaking so the user sees activity
// between their turn ending and audio starting.
func ComputeVisualMode(state State, isListening, isSpeaking, isProcessing bool) VisualMode {
	switch state {
	case Connecting, Disconnecting:
		return ConnectingMode
	case Connected:
		if isSpeaking || isProcessing {
			return Speaking
		}
		if isListening {
			return Listening
		}
		return ConnectedIdle
	default:
		return DisconnectedIdle
	}
}

// ControlDisabled reports whether the main session control should ignore
// taps. Only transitional states disable it; both idle states and active
// states accept input.
func ControlDisabled(state State) bool {
	return state == Connecting || state == Disconnecting
}

// TapIntent is what a tap on the main session control means
type TapIntent int

const (
	// TapNone ignores the tap (transitional state)
	TapNone TapIntent = iota
	// TapStartSession begins a new live session
	TapStartSession
	// TapStartAudio opens the microphone on a connected session
	TapStartAudio
	// TapStopAudio closes the microphone on a connected session
	TapStopAudio
)

// TapIntentFor maps (state, isListening) to the action a tap performs
func TapIntentFor(state State, isListening bool) TapIntent {
	switch state {
	case Disconnected:
		return TapStartSession
	case Connected:
		if isListening {
			return TapStopAudio
		}
		return TapStartAudio
	default:
		return TapNone
	}
}
