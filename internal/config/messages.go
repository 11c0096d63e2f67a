package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// ChatMessage is a single entry in a session's message history.
// IDs are unique within a session; history is append-only and
// insertion-ordered.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	FromUser  bool      `json:"from_user"`
	Timestamp time.Time `json:"timestamp"`

	ImagePaths     []string `json:"image_paths,omitempty"`     // Attached image files sent with the message
	GeneratedImage []byte   `json:"generated_image,omitempty"` // Inline image returned by the agent
	IsVoice        bool     `json:"is_voice,omitempty"`        // Message originated from a voice transcription
}

// DisplayTimestamp returns the timestamp formatted for the chat view
func (m ChatMessage) DisplayTimestamp() string {
	return m.Timestamp.Format("3:04 PM")
}

// messagesDir returns the directory holding per-session message history
func messagesDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "messages"), nil
}

// messagesPath returns the history file path for a session
func messagesPath(sessionID string) (string, error) {
	dir, err := messagesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionID+".json"), nil
}

// SaveSessionMessages writes a session's message history to disk.
// If the history exceeds maxMessages, the oldest messages are dropped
// so unbounded sessions don't grow the file forever.
func SaveSessionMessages(sessionID string, messages []ChatMessage, maxMessages int) error {
	dir, err := messagesDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if maxMessages > 0 && len(messages) > maxMessages {
		messages = messages[len(messages)-maxMessages:]
	}

	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return err
	}

	path, err := messagesPath(sessionID)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSessionMessages reads a session's message history from disk.
// A missing file is not an error: it returns an empty history.
func LoadSessionMessages(sessionID string) ([]ChatMessage, error) {
	path, err := messagesPath(sessionID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []ChatMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	var messages []ChatMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []ChatMessage{}
	}
	return messages, nil
}

// DeleteSessionMessages removes a session's message history file.
// Deleting a non-existent history is not an error.
func DeleteSessionMessages(sessionID string) error {
	path, err := messagesPath(sessionID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// AppendSessionMessage loads a session's history, appends the message, and
// saves. A message whose ID already exists in the history is ignored, so
// replayed appends are harmless.
func AppendSessionMessage(sessionID string, msg ChatMessage, maxMessages int) error {
	messages, err := LoadSessionMessages(sessionID)
	if err != nil {
		return err
	}

	for _, existing := range messages {
		if existing.ID == msg.ID {
			return nil
		}
	}

	messages = append(messages, msg)
	return SaveSessionMessages(sessionID, messages, maxMessages)
}

// AddMessageToCurrentSession appends a message to the current session's
// history. Returns false if no session is active.
func (c *Config) AddMessageToCurrentSession(msg ChatMessage, maxMessages int) (bool, error) {
	sess := c.CurrentSession()
	if sess == nil {
		return false, nil
	}
	if err := AppendSessionMessage(sess.ID, msg, maxMessages); err != nil {
		return false, err
	}
	return true, nil
}

// FindOrphanedMessageFiles returns history files whose session no longer
// exists in the config. Used by the clean command.
func (c *Config) FindOrphanedMessageFiles() ([]string, error) {
	dir, err := messagesDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	valid := make(map[string]bool)
	for _, s := range c.GetSessions() {
		valid[s.ID+".json"] = true
	}

	var orphaned []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if !valid[entry.Name()] {
			orphaned = append(orphaned, filepath.Join(dir, entry.Name()))
		}
	}
	return orphaned, nil
}
