package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
)

// RevealTickMsg advances a typing reveal by one character. Gen ties the
// tick to the reveal that scheduled it; a restart bumps the generation and
// strands any in-flight ticks.
type RevealTickMsg struct {
	Gen int
}

// Transcript turns incremental transcription text into a display string.
// User speech shows immediately (live speech-to-text must not lag); agent
// text is revealed one character at a time with a trailing cursor glyph
// until complete.
//
// Restarting with new text is latest-wins: the in-flight reveal is
// cancelled and only the newest text plays out. Intermediate texts are
// never queued. The one exception is an agent utterance growing by
// appending (the common transcription case): the reveal keeps its position
// instead of starting over.
type Transcript struct {
	full     []rune
	isUser   bool
	revealed int
	gen      int
}

// NewTranscript returns an empty presenter
func NewTranscript() *Transcript {
	return &Transcript{}
}

// SetText replaces the text being presented. Returns the reveal timer
// command when an animation is needed, nil otherwise.
func (t *Transcript) SetText(fullText string, isUser bool) tea.Cmd {
	t.gen++ // cancel any in-flight reveal

	if fullText == "" {
		t.full = nil
		t.revealed = 0
		t.isUser = false
		return nil
	}

	if isUser {
		t.full = []rune(fullText)
		t.revealed = len(t.full)
		t.isUser = true
		return nil
	}

	// Agent text: keep reveal progress when the utterance merely grew
	prev := string(t.full)
	if !(t.isUser == false && prev != "" && strings.HasPrefix(fullText, prev) && t.revealed <= len([]rune(fullText))) {
		t.revealed = 0
	}
	t.full = []rune(fullText)
	t.isUser = false

	if t.revealed >= len(t.full) {
		return nil
	}
	return t.tickCmd()
}

// HandleRevealTick advances the reveal. Stale ticks (from a superseded
// reveal) are no-ops. Returns the next timer command until the text is
// fully revealed.
func (t *Transcript) HandleRevealTick(msg RevealTickMsg) tea.Cmd {
	if msg.Gen != t.gen {
		return nil
	}
	if t.revealed < len(t.full) {
		t.revealed++
	}
	if t.revealed >= len(t.full) {
		return nil
	}
	return t.tickCmd()
}

func (t *Transcript) tickCmd() tea.Cmd {
	gen := t.gen
	return tea.Tick(RevealInterval, func(time.Time) tea.Msg {
		return RevealTickMsg{Gen: gen}
	})
}

// DisplayText is the string to render right now. A partially revealed
// agent text carries the trailing cursor glyph.
func (t *Transcript) DisplayText() string {
	shown := string(t.full[:t.revealed])
	if !t.Done() {
		return shown + CursorGlyph
	}
	return shown
}

// Done reports whether the full text is visible
func (t *Transcript) Done() bool {
	return t.revealed >= len(t.full)
}

// Reset clears the presenter and cancels any in-flight reveal
func (t *Transcript) Reset() {
	t.gen++
	t.full = nil
	t.revealed = 0
	t.isUser = false
}
