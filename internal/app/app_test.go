package app

import (
	"errors"
	"testing"

	"github.com/guidelens/guidelens/internal/gen"
	"github.com/guidelens/guidelens/internal/keys"
	"github.com/guidelens/guidelens/internal/ui"
)

func TestNew_AppliesDefaultAgentTheme(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultAgentID = "artisan"

	m, _ := testModel(t, cfg)

	if m.activeAgent.ID != "artisan" {
		t.Fatalf("expected active agent artisan, got %s", m.activeAgent.ID)
	}
	want := ui.ThemeForAgent(m.activeAgent)
	if got := ui.CurrentTheme(); got.Primary != want.Primary {
		t.Errorf("expected artisan theme primary %v, got %v", want.Primary, got.Primary)
	}
}

func TestNew_CurrentSessionAgentWins(t *testing.T) {
	cfg := testConfigWithSessions()
	cfg.DefaultAgentID = "artisan"
	cfg.CurrentSessionID = "session-1" // chef session

	m, _ := testModel(t, cfg)

	if m.activeAgent.ID != "chef" {
		t.Errorf("expected the current session's agent, got %s", m.activeAgent.ID)
	}
}

func TestOpenSession_LoadsAndFocusesChat(t *testing.T) {
	cfg := testConfigWithSessions()
	m, _ := testModelWithSize(t, cfg, 120, 40)

	m.openSession("session-2")

	if m.activeSession == nil || m.activeSession.ID != "session-2" {
		t.Fatal("expected session-2 to be active")
	}
	if m.activeAgent.ID != "artisan" {
		t.Errorf("expected agent to follow the session, got %s", m.activeAgent.ID)
	}
	if m.focus != FocusChat {
		t.Error("expected focus to move to the chat panel")
	}
	if cfg.CurrentSessionID != "session-2" {
		t.Error("expected config current session to update")
	}
}

func TestOpenSession_UnknownIDIsNoop(t *testing.T) {
	cfg := testConfigWithSessions()
	m, _ := testModelWithSize(t, cfg, 120, 40)
	m.openSession("session-1")

	m.openSession("no-such-session")

	if m.activeSession.ID != "session-1" {
		t.Error("expected active session to be unchanged")
	}
}

func TestSendMessage_AppendsUserMessageAndWaits(t *testing.T) {
	cfg := testConfigWithSessions()
	m, _ := testModelWithSize(t, cfg, 120, 40)
	m.openSession("session-1")

	typeText(m, "what should I cook tonight")
	m.Update(keyPress(keys.Enter))

	messages := m.chat.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if !messages[0].FromUser || messages[0].Text != "what should I cook tonight" {
		t.Errorf("unexpected message: %+v", messages[0])
	}
	if !m.sessionState.IsWaiting("session-1") {
		t.Error("expected the session to be waiting for a reply")
	}
}

func TestSendMessage_EmptyInputIgnored(t *testing.T) {
	cfg := testConfigWithSessions()
	m, _ := testModelWithSize(t, cfg, 120, 40)
	m.openSession("session-1")

	m.Update(keyPress(keys.Enter))

	if len(m.chat.Messages()) != 0 {
		t.Error("expected no message from empty input")
	}
	if m.sessionState.IsWaiting("session-1") {
		t.Error("expected no pending generation")
	}
}

func TestGenerationResult_AppendsReply(t *testing.T) {
	cfg := testConfigWithSessions()
	m, _ := testModelWithSize(t, cfg, 120, 40)
	m.openSession("session-1")

	typeText(m, "hello")
	m.Update(keyPress(keys.Enter))
	genNum := m.sessionState.Get("session-1").PendingGen

	m.Update(GenerationResultMsg{
		SessionID: "session-1",
		Gen:       genNum,
		Response:  gen.Response{Text: "Try a quick stir fry."},
	})

	messages := m.chat.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[1].FromUser || messages[1].Text != "Try a quick stir fry." {
		t.Errorf("unexpected reply: %+v", messages[1])
	}
	if m.sessionState.IsWaiting("session-1") {
		t.Error("expected waiting to clear")
	}
}

func TestGenerationResult_StaleReplyDropped(t *testing.T) {
	cfg := testConfigWithSessions()
	m, _ := testModelWithSize(t, cfg, 120, 40)
	m.openSession("session-1")

	typeText(m, "hello")
	m.Update(keyPress(keys.Enter))
	stale := m.sessionState.Get("session-1").PendingGen - 1

	m.Update(GenerationResultMsg{
		SessionID: "session-1",
		Gen:       stale,
		Response:  gen.Response{Text: "from an abandoned request"},
	})

	if len(m.chat.Messages()) != 1 {
		t.Error("expected the superseded reply to be dropped")
	}
	if !m.sessionState.IsWaiting("session-1") {
		t.Error("expected the live request to still be pending")
	}
}

func TestGenerationResult_ErrorShownInline(t *testing.T) {
	cfg := testConfigWithSessions()
	m, _ := testModelWithSize(t, cfg, 120, 40)
	m.openSession("session-1")

	typeText(m, "hello")
	m.Update(keyPress(keys.Enter))
	genNum := m.sessionState.Get("session-1").PendingGen

	m.Update(GenerationResultMsg{
		SessionID: "session-1",
		Gen:       genNum,
		Err:       errors.New("quota exceeded"),
	})

	messages := m.chat.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[1].Text != ui.ErrorPrefix+"quota exceeded" {
		t.Errorf("expected error message, got %q", messages[1].Text)
	}
}

func TestTab_TogglesFocusAndKeepsDraft(t *testing.T) {
	cfg := testConfigWithSessions()
	m, _ := testModelWithSize(t, cfg, 120, 40)
	m.openSession("session-1")

	typeText(m, "half-written thought")
	m.Update(keyPress(keys.Tab))

	if m.focus != FocusSidebar {
		t.Fatal("expected tab to move focus to the sidebar")
	}
	if draft := m.sessionState.Get("session-1").DraftInput; draft != "half-written thought" {
		t.Errorf("expected draft to be stashed, got %q", draft)
	}

	m.Update(keyPress(keys.Tab))
	if m.focus != FocusChat {
		t.Error("expected tab to move focus back to the chat")
	}
}

func TestOpenSession_HistoryScopedToConfigDir(t *testing.T) {
	// Two models with the same session ID but separate home dirs must not
	// see each other's persisted history.
	first, _ := testModelWithSize(t, testConfigWithSessions(), 120, 40)
	first.openSession("session-1")
	typeText(first, "only in the first home")
	first.Update(keyPress(keys.Enter))
	if len(first.chat.Messages()) != 1 {
		t.Fatalf("expected 1 persisted message, got %d", len(first.chat.Messages()))
	}

	second, _ := testModelWithSize(t, testConfigWithSessions(), 120, 40)
	second.openSession("session-1")
	if got := len(second.chat.Messages()); got != 0 {
		t.Errorf("expected an empty history in a fresh home, got %d messages", got)
	}
}

func TestDraft_RestoredOnSessionSwitch(t *testing.T) {
	cfg := testConfigWithSessions()
	m, _ := testModelWithSize(t, cfg, 120, 40)
	m.openSession("session-1")

	typeText(m, "remember me")
	m.saveDraft()

	m.openSession("session-2")
	if got := m.chat.GetInput(); got != "" {
		t.Errorf("expected empty input on the other session, got %q", got)
	}

	m.openSession("session-1")
	if got := m.chat.GetInput(); got != "remember me" {
		t.Errorf("expected draft restored, got %q", got)
	}
}
