package config

import (
	"time"

	"github.com/google/uuid"
)

// Session represents a chat conversation with a single agent.
// Message history is stored separately (see messages.go); the session
// record only carries identity and display metadata.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AgentID   string    `json:"agent_id"`
	UserID    string    `json:"user_id,omitempty"` // Owning account, empty when not signed in
	CreatedAt time.Time `json:"created_at"`
}

// CreateNewSession creates a session with a fresh ID, appends it to the
// session list, and makes it current. Returns a copy of the new session.
func (c *Config) CreateNewSession(name, agentID, userID string) Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess := Session{
		ID:        uuid.NewString(),
		Name:      name,
		AgentID:   agentID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	c.Sessions = append(c.Sessions, sess)
	c.CurrentSessionID = sess.ID
	return sess
}

// AddSession adds an existing session record (used by tests and imports)
func (c *Config) AddSession(session Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Sessions = append(c.Sessions, session)
}

// RemoveSession removes a session by ID. If it was the current session,
// the current session falls back to the most recently created remaining
// session (or none). Message history cleanup is the caller's responsibility.
func (c *Config) RemoveSession(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, s := range c.Sessions {
		if s.ID == id {
			c.Sessions = append(c.Sessions[:i], c.Sessions[i+1:]...)
			if c.CurrentSessionID == id {
				c.CurrentSessionID = ""
				if len(c.Sessions) > 0 {
					c.CurrentSessionID = c.Sessions[len(c.Sessions)-1].ID
				}
			}
			return true
		}
	}
	return false
}

// ClearSessions removes all sessions and clears the current session
func (c *Config) ClearSessions() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sessions = []Session{}
	c.CurrentSessionID = ""
}

// GetSession returns a copy of a session by ID.
// Returns nil if no session with the given ID exists.
func (c *Config) GetSession(id string) *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.Sessions {
		if c.Sessions[i].ID == id {
			sess := c.Sessions[i] // copy
			return &sess
		}
	}
	return nil
}

// GetSessions returns a copy of the sessions slice
func (c *Config) GetSessions() []Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sessions := make([]Session, len(c.Sessions))
	copy(sessions, c.Sessions)
	return sessions
}

// GetSessionsByAgent returns all sessions for the given agent
func (c *Config) GetSessionsByAgent(agentID string) []Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var sessions []Session
	for _, s := range c.Sessions {
		if s.AgentID == agentID {
			sessions = append(sessions, s)
		}
	}
	return sessions
}

// SwitchToSession makes the given session current.
// Returns false if no session with the given ID exists.
func (c *Config) SwitchToSession(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.Sessions {
		if s.ID == id {
			c.CurrentSessionID = id
			return true
		}
	}
	return false
}

// CurrentSession returns a copy of the current session, or nil if none is active
func (c *Config) CurrentSession() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.CurrentSessionID == "" {
		return nil
	}
	for i := range c.Sessions {
		if c.Sessions[i].ID == c.CurrentSessionID {
			sess := c.Sessions[i] // copy
			return &sess
		}
	}
	return nil
}

// RenameSession updates the display name of a session
func (c *Config) RenameSession(sessionID, newName string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.Sessions {
		if c.Sessions[i].ID == sessionID {
			c.Sessions[i].Name = newName
			return true
		}
	}
	return false
}
