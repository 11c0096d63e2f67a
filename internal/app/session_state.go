package app

import (
	"time"
)

// SessionUIState is the per-chat-session UI state that survives switching
// sessions: the draft input and the waiting flag for an in-flight reply.
type SessionUIState struct {
	DraftInput  string
	Waiting     bool
	WaitStarted time.Time
	PendingGen  int // generation counter for in-flight replies
}

// SessionStateManager tracks UI state for every session the user has
// touched this run.
type SessionStateManager struct {
	states map[string]*SessionUIState
}

// NewSessionStateManager creates an empty manager
func NewSessionStateManager() *SessionStateManager {
	return &SessionStateManager{states: make(map[string]*SessionUIState)}
}

// Get returns the state for a session, creating it on first use
func (sm *SessionStateManager) Get(sessionID string) *SessionUIState {
	if s, ok := sm.states[sessionID]; ok {
		return s
	}
	s := &SessionUIState{}
	sm.states[sessionID] = s
	return s
}

// GetIfExists returns the state for a session, or nil
func (sm *SessionStateManager) GetIfExists(sessionID string) *SessionUIState {
	return sm.states[sessionID]
}

// Remove drops a session's state
func (sm *SessionStateManager) Remove(sessionID string) {
	delete(sm.states, sessionID)
}

// StartWaiting marks a reply in flight and bumps the generation so a
// result from a superseded request is ignored
func (sm *SessionStateManager) StartWaiting(sessionID string) int {
	s := sm.Get(sessionID)
	s.Waiting = true
	s.WaitStarted = time.Now()
	s.PendingGen++
	return s.PendingGen
}

// StopWaiting clears the waiting flag
func (sm *SessionStateManager) StopWaiting(sessionID string) {
	if s := sm.GetIfExists(sessionID); s != nil {
		s.Waiting = false
	}
}

// IsWaiting reports whether a reply is in flight for the session
func (sm *SessionStateManager) IsWaiting(sessionID string) bool {
	s := sm.GetIfExists(sessionID)
	return s != nil && s.Waiting
}

// IsCurrent reports whether gen is the session's latest in-flight request.
// A session that is no longer waiting accepts no results at all, so a
// duplicate late delivery cannot double-append.
func (sm *SessionStateManager) IsCurrent(sessionID string, gen int) bool {
	s := sm.GetIfExists(sessionID)
	return s != nil && s.Waiting && s.PendingGen == gen
}
