package live

import (
	"context"
	"errors"
)

// ErrNotConnected is returned by audio operations when no session is up
var ErrNotConnected = errors.New("live: no session connected")

// Manager is the session manager contract the UI consumes. Implementations
// own their transport and goroutines; all results and asynchronous changes
// surface through Events().
//
// StartSession is the only blocking call; everything else returns
// immediately and reports through the event stream.
type Manager interface {
	// StartSession connects a live session for the given agent and tier.
	// Returns an error if the session cannot be established; the state
	// remains Disconnected on failure.
	StartSession(ctx context.Context, agentID, tier string) error

	// StopSession tears down the current session. Safe to call when
	// no session is active.
	StopSession()

	// StartAudioInput opens the microphone stream on a connected session
	StartAudioInput() error

	// StopAudioInput closes the microphone stream
	StopAudioInput()

	// ResumeAudioInput re-opens the microphone after the agent's turn.
	// Unlike StartAudioInput it is a no-op unless a session is connected
	// and the mic was previously in use this session.
	ResumeAudioInput()

	// Events returns the event stream. The channel is owned by the
	// manager and closed on final shutdown.
	Events() <-chan Event

	// State returns the current lifecycle state
	State() State
}
