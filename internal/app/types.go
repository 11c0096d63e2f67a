package app

// Focus represents which panel has keyboard focus on the chat screen
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// Screen is the top-level surface being shown. Chat is the default; the
// welcome screen and the live overlays replace the chat panel while active.
type Screen int

const (
	ScreenChat Screen = iota
	ScreenWelcome
	ScreenVoice
	ScreenVideo
)

// String returns a human-readable name for the screen
func (s Screen) String() string {
	switch s {
	case ScreenChat:
		return "Chat"
	case ScreenWelcome:
		return "Welcome"
	case ScreenVoice:
		return "Voice"
	case ScreenVideo:
		return "Video"
	default:
		return "Unknown"
	}
}
