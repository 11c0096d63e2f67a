package ui

import "time"

// Layout constants
const (
	// SidebarWidth is the fixed width of the session sidebar
	SidebarWidth = 32

	// HeaderHeight is the height of the app header
	HeaderHeight = 1

	// FooterHeight is the height of the help footer
	FooterHeight = 1

	// TextareaHeight is the height of the chat input area
	TextareaHeight = 3

	// MinChatWidth is the minimum width of the chat panel
	MinChatWidth = 40

	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)

// Timing constants
const (
	// RevealInterval is the per-character delay of the typing reveal
	// applied to agent text
	RevealInterval = 30 * time.Millisecond

	// MicResumeDelay is how long after the agent stops speaking before
	// the microphone automatically re-opens
	MicResumeDelay = 350 * time.Millisecond

	// ScrollDebounce batches rapid message updates into one auto-scroll
	ScrollDebounce = 100 * time.Millisecond

	// FlashDuration is how long footer flash messages stay visible
	FlashDuration = 3 * time.Second

	// StopwatchInterval drives the waiting-for-response stopwatch
	StopwatchInterval = time.Second
)

// MaxSessionMessages caps persisted history per chat session
const MaxSessionMessages = 1000

// CursorGlyph trails partially revealed agent text
const CursorGlyph = "▋"

// ErrorPrefix marks synthetic error chat messages
const ErrorPrefix = "⚠ "
