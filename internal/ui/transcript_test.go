package ui

import (
	"strings"
	"testing"
)

// drive runs the reveal to completion, collecting every display state
func drive(t *testing.T, tr *Transcript, gen int) []string {
	t.Helper()
	states := []string{tr.DisplayText()}
	for i := 0; i < 10000 && !tr.Done(); i++ {
		tr.HandleRevealTick(RevealTickMsg{Gen: gen})
		states = append(states, tr.DisplayText())
	}
	if !tr.Done() {
		t.Fatal("Reveal never completed")
	}
	return states
}

func TestTranscript_UserTextImmediate(t *testing.T) {
	tr := NewTranscript()

	cmd := tr.SetText("turn the heat down", true)
	if cmd != nil {
		t.Error("User text should not schedule a reveal")
	}
	if tr.DisplayText() != "turn the heat down" {
		t.Errorf("User text should display immediately, got %q", tr.DisplayText())
	}
	if !tr.Done() {
		t.Error("User text should be complete at once")
	}
}

func TestTranscript_AgentRevealEmitsAllPrefixes(t *testing.T) {
	tr := NewTranscript()
	text := "chop the onions"

	cmd := tr.SetText(text, false)
	if cmd == nil {
		t.Fatal("Agent text should schedule a reveal")
	}

	states := drive(t, tr, 1)

	// One state per prefix: empty through full, N+1 in total
	if len(states) != len([]rune(text))+1 {
		t.Fatalf("Expected %d states, got %d", len([]rune(text))+1, len(states))
	}
	for i, s := range states[:len(states)-1] {
		bare := strings.TrimSuffix(s, CursorGlyph)
		if bare == s {
			t.Errorf("State %d should carry the cursor glyph: %q", i, s)
		}
		if !strings.HasPrefix(text, bare) {
			t.Errorf("State %d is not a prefix of the text: %q", i, bare)
		}
	}
	if states[len(states)-1] != text {
		t.Errorf("Final state should be the bare full text, got %q", states[len(states)-1])
	}
}

func TestTranscript_RestartIsLatestWins(t *testing.T) {
	tr := NewTranscript()
	tr.SetText("first response", false)
	tr.HandleRevealTick(RevealTickMsg{Gen: 1})
	tr.HandleRevealTick(RevealTickMsg{Gen: 1})

	// New unrelated text cancels the old reveal and starts over
	tr.SetText("something else entirely", false)
	if got := strings.TrimSuffix(tr.DisplayText(), CursorGlyph); got != "" {
		t.Errorf("Restart should begin from empty, got %q", got)
	}

	// Ticks from the superseded reveal are ignored
	tr.HandleRevealTick(RevealTickMsg{Gen: 1})
	if got := strings.TrimSuffix(tr.DisplayText(), CursorGlyph); got != "" {
		t.Errorf("Stale tick should not advance the new reveal, got %q", got)
	}

	// The new reveal plays the new text
	states := drive(t, tr, 2)
	if states[len(states)-1] != "something else entirely" {
		t.Errorf("Latest text should win, got %q", states[len(states)-1])
	}
}

func TestTranscript_GrowingUtteranceKeepsProgress(t *testing.T) {
	tr := NewTranscript()
	tr.SetText("hello", false)
	for i := 0; i < 5; i++ {
		tr.HandleRevealTick(RevealTickMsg{Gen: 1})
	}
	if tr.DisplayText() != "hello" {
		t.Fatalf("Setup failed: %q", tr.DisplayText())
	}

	// The transcript grows by appending; already-revealed text stays put
	tr.SetText("hello there", false)
	if got := strings.TrimSuffix(tr.DisplayText(), CursorGlyph); got != "hello" {
		t.Errorf("Growing text should keep revealed prefix, got %q", got)
	}

	states := drive(t, tr, 2)
	if states[len(states)-1] != "hello there" {
		t.Errorf("Reveal should complete the grown text, got %q", states[len(states)-1])
	}
}

func TestTranscript_EmptyResetsImmediately(t *testing.T) {
	tr := NewTranscript()
	tr.SetText("partial agent text", false)
	tr.HandleRevealTick(RevealTickMsg{Gen: 1})

	cmd := tr.SetText("", false)
	if cmd != nil {
		t.Error("Clearing should not schedule a reveal")
	}
	if tr.DisplayText() != "" {
		t.Errorf("Clearing should reset display immediately, got %q", tr.DisplayText())
	}
	if !tr.Done() {
		t.Error("Empty presenter counts as done")
	}
}

func TestTranscript_UserTextCancelsAgentReveal(t *testing.T) {
	tr := NewTranscript()
	tr.SetText("agent is saying something", false)

	tr.SetText("user interrupts", true)
	if tr.DisplayText() != "user interrupts" {
		t.Errorf("User text should replace immediately, got %q", tr.DisplayText())
	}

	// Old agent ticks are stale now
	tr.HandleRevealTick(RevealTickMsg{Gen: 1})
	if tr.DisplayText() != "user interrupts" {
		t.Error("Stale agent tick should not mutate user display")
	}
}

func TestTranscript_Reset(t *testing.T) {
	tr := NewTranscript()
	tr.SetText("some text", false)

	tr.Reset()
	if tr.DisplayText() != "" || !tr.Done() {
		t.Error("Reset should clear the presenter")
	}

	tr.HandleRevealTick(RevealTickMsg{Gen: 1})
	if tr.DisplayText() != "" {
		t.Error("Ticks from before Reset should be ignored")
	}
}
