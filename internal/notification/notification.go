// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/guidelens/guidelens/internal/logger"
)

// Send sends a desktop notification with the given title and message
func Send(title, message string) error {
	// Empty icon path - beeep handles platform defaults
	err := beeep.Notify(title, message, "")
	if err != nil {
		logger.Debug("Notification: failed to send: %v", err)
	}
	return err
}

// ResponseReady notifies that an agent finished a response while the app
// was in the background
func ResponseReady(agentName string) error {
	return Send("GuideLens", agentName+" has replied")
}

// SessionEnded notifies that a live session was closed by the remote side
func SessionEnded(agentName string) error {
	return Send("GuideLens", "Live session with "+agentName+" ended")
}
