package live

import (
	"context"
	"sync"
)

// MockManager is an in-memory Manager for tests and demo mode. It records
// calls and lets callers drive the event stream by hand.
type MockManager struct {
	mu        sync.Mutex
	state     State
	recording bool
	micUsed   bool
	events    chan Event

	StartSessionCalls int
	StopSessionCalls  int
	StartAudioCalls   int
	StopAudioCalls    int
	ResumeAudioCalls  int

	// StartErr, when set, makes StartSession fail and stay Disconnected
	StartErr error
}

// NewMockManager returns a disconnected mock
func NewMockManager() *MockManager {
	return &MockManager{
		state:  Disconnected,
		events: make(chan Event, 64),
	}
}

func (m *MockManager) StartSession(ctx context.Context, agentID, tier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartSessionCalls++
	if m.StartErr != nil {
		return m.StartErr
	}
	m.setStateLocked(Connected)
	m.micUsed = false
	return nil
}

func (m *MockManager) StopSession() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StopSessionCalls++
	if m.state == Disconnected {
		return
	}
	m.recording = false
	m.setStateLocked(Disconnected)
}

func (m *MockManager) StartAudioInput() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartAudioCalls++
	if m.state != Connected {
		return ErrNotConnected
	}
	m.recording = true
	m.micUsed = true
	m.emitLocked(RecordingChanged{Recording: true})
	return nil
}

func (m *MockManager) StopAudioInput() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StopAudioCalls++
	if !m.recording {
		return
	}
	m.recording = false
	m.emitLocked(RecordingChanged{Recording: false})
}

func (m *MockManager) ResumeAudioInput() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ResumeAudioCalls++
	if m.state != Connected || !m.micUsed || m.recording {
		return
	}
	m.recording = true
	m.emitLocked(RecordingChanged{Recording: true})
}

func (m *MockManager) Events() <-chan Event {
	return m.events
}

func (m *MockManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Emit pushes an event onto the stream, simulating server activity
func (m *MockManager) Emit(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emitLocked(ev)
}

// SetState forces a lifecycle state, emitting StateChanged
func (m *MockManager) SetState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setStateLocked(s)
}

func (m *MockManager) setStateLocked(s State) {
	if m.state == s {
		return
	}
	m.state = s
	m.emitLocked(StateChanged{State: s})
}

func (m *MockManager) emitLocked(ev Event) {
	select {
	case m.events <- ev:
	default:
	}
}
