package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/guidelens/guidelens/internal/config"
)

// ScrollTickMsg fires when a debounced auto-scroll comes due. Gen ties the
// tick to the schedule that created it; stale ticks are ignored.
type ScrollTickMsg struct {
	Gen int
}

// MessageList holds a chat session's visible messages: an append-only,
// id-keyed sequence plus a thinking indicator slot at the end.
//
// Auto-scroll is debounced: every mutation schedules a tick and bumps the
// generation, so a burst of updates lands as one scroll.
type MessageList struct {
	messages []config.ChatMessage
	ids      map[string]bool
	thinking bool

	scrollGen     int
	scrollPending bool
}

// NewMessageList returns an empty list
func NewMessageList() *MessageList {
	return &MessageList{ids: make(map[string]bool)}
}

// SetMessages replaces the full list (used on session switch). Duplicate
// ids within the input keep their first occurrence.
func (l *MessageList) SetMessages(messages []config.ChatMessage) {
	l.messages = nil
	l.ids = make(map[string]bool)
	for _, m := range messages {
		if l.ids[m.ID] {
			continue
		}
		l.messages = append(l.messages, m)
		l.ids[m.ID] = true
	}
}

// Append adds a message to the end of the list. A message whose ID is
// already present is ignored; existing messages are never reordered or
// removed. Returns true if the message was added.
func (l *MessageList) Append(m config.ChatMessage) bool {
	if l.ids[m.ID] {
		return false
	}
	l.messages = append(l.messages, m)
	l.ids[m.ID] = true
	return true
}

// Messages returns the messages in insertion order
func (l *MessageList) Messages() []config.ChatMessage {
	return l.messages
}

// Len returns the number of messages
func (l *MessageList) Len() int {
	return len(l.messages)
}

// SetThinking toggles the thinking indicator shown after the last message
func (l *MessageList) SetThinking(thinking bool) {
	l.thinking = thinking
}

// Thinking reports whether the thinking indicator is showing
func (l *MessageList) Thinking() bool {
	return l.thinking
}

// ScrollTarget is the item index auto-scroll should land on: the thinking
// indicator (one past the last message) while waiting, otherwise the last
// message itself. Returns -1 for an empty, idle list.
func (l *MessageList) ScrollTarget() int {
	if l.thinking {
		return len(l.messages)
	}
	return len(l.messages) - 1
}

// ScheduleScroll requests a debounced auto-scroll and returns the timer
// command. Calling again before the tick lands supersedes the earlier
// request.
func (l *MessageList) ScheduleScroll() tea.Cmd {
	l.scrollGen++
	l.scrollPending = true
	gen := l.scrollGen
	return tea.Tick(ScrollDebounce, func(time.Time) tea.Msg {
		return ScrollTickMsg{Gen: gen}
	})
}

// HandleScrollTick consumes a scroll tick. It returns true when the tick is
// current and the caller should scroll to ScrollTarget(); superseded ticks
// return false.
func (l *MessageList) HandleScrollTick(msg ScrollTickMsg) bool {
	if msg.Gen != l.scrollGen || !l.scrollPending {
		return false
	}
	l.scrollPending = false
	return true
}
