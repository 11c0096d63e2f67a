package live

import "time"

// Event is the discriminated union of everything a session manager reports.
// Events are consumed on the UI update loop; each carries the full latest
// value for its concern, so a dropped intermediate event is harmless
// (last-value-wins).
type Event interface {
	liveEvent() // marker method to restrict implementations
}

// StateChanged reports a session lifecycle transition
type StateChanged struct {
	State State
}

// RecordingChanged reports the microphone opening or closing
type RecordingChanged struct {
	Recording bool
}

// PlayingChanged reports agent audio playback starting or stopping
type PlayingChanged struct {
	Playing bool
}

// AudioLevel reports the current input/output loudness in [0, 1]
type AudioLevel struct {
	Level float64
}

// Insight is a piece of contextual guidance pushed by the agent mid-session
type Insight struct {
	Text string
}

// Emotion classifies the tone the agent detected in the user's speech
type Emotion int

const (
	EmotionNeutral Emotion = iota
	EmotionHappy
	EmotionFrustrated
	EmotionConfused
)

func (e Emotion) String() string {
	switch e {
	case EmotionHappy:
		return "happy"
	case EmotionFrustrated:
		return "frustrated"
	case EmotionConfused:
		return "confused"
	default:
		return "neutral"
	}
}

// EmotionalContext reports the detected tone of the conversation
type EmotionalContext struct {
	Emotion Emotion
}

// ResponseTime reports how long the agent took to start responding
type ResponseTime struct {
	Duration time.Duration
}

// Transcription carries incremental speech-to-text output. IsUser
// distinguishes the user's speech from the agent's.
type Transcription struct {
	Text   string
	IsUser bool
}

// SessionError reports a non-fatal session problem as display text
type SessionError struct {
	Message string
}

func (StateChanged) liveEvent()     {}
func (RecordingChanged) liveEvent() {}
func (PlayingChanged) liveEvent()   {}
func (AudioLevel) liveEvent()       {}
func (Insight) liveEvent()          {}
func (EmotionalContext) liveEvent() {}
func (ResponseTime) liveEvent()     {}
func (Transcription) liveEvent()    {}
func (SessionError) liveEvent()     {}
