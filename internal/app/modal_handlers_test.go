package app

import (
	"testing"

	"github.com/guidelens/guidelens/internal/keys"
	"github.com/guidelens/guidelens/internal/ui/modals"
)

func TestNewSessionModal_CreatesAndOpens(t *testing.T) {
	cfg := testConfig()
	m, _ := testModelWithSize(t, cfg, 120, 40)

	m.showNewSessionModal("chef")
	m.Update(keyPress(keys.Enter))

	if m.modal.IsVisible() {
		t.Fatal("expected the modal to close on submit")
	}
	if m.activeSession == nil {
		t.Fatal("expected a session to be created")
	}
	if m.activeSession.AgentID != "chef" {
		t.Errorf("expected a chef session, got %s", m.activeSession.AgentID)
	}
	if m.activeSession.Name == "" {
		t.Error("expected an auto-generated session name")
	}
}

func TestRenameModal_RenamesActiveSession(t *testing.T) {
	cfg := testConfigWithSessions()
	m, _ := testModelWithSize(t, cfg, 120, 40)
	m.openSession("session-1")

	m.modal.Show(modals.NewRenameSessionState("session-1", "Dinner plans"))
	typeText(m, "!")
	m.Update(keyPress(keys.Enter))

	if m.modal.IsVisible() {
		t.Fatal("expected the modal to close")
	}
	sess := cfg.GetSession("session-1")
	if sess == nil || sess.Name != "Dinner plans!" {
		t.Errorf("expected renamed session, got %+v", sess)
	}
}

func TestDeleteModal_DefaultsToCancel(t *testing.T) {
	cfg := testConfigWithSessions()
	m, _ := testModelWithSize(t, cfg, 120, 40)
	m.openSession("session-1")

	m.modal.Show(modals.NewConfirmDeleteState("session-1", "Dinner plans"))
	m.Update(keyPress(keys.Enter))

	if cfg.GetSession("session-1") == nil {
		t.Error("expected enter on Cancel to keep the session")
	}
}

func TestDeleteModal_ConfirmRemovesSession(t *testing.T) {
	cfg := testConfigWithSessions()
	m, _ := testModelWithSize(t, cfg, 120, 40)
	m.openSession("session-1")

	m.modal.Show(modals.NewConfirmDeleteState("session-1", "Dinner plans"))
	m.Update(keyPress(keys.Down))
	m.Update(keyPress(keys.Enter))

	if cfg.GetSession("session-1") != nil {
		t.Fatal("expected session-1 to be removed")
	}
	if m.activeSession != nil && m.activeSession.ID == "session-1" {
		t.Error("expected the deleted session to no longer be active")
	}
}

func TestSettingsModal_EscapeCloses(t *testing.T) {
	cfg := testConfigWithSessions()
	m, _ := testModelWithSize(t, cfg, 120, 40)

	m.showSettingsModal()
	if _, ok := m.modal.State.(*modals.SettingsState); !ok {
		t.Fatalf("expected a settings modal, got %T", m.modal.State)
	}

	m.Update(keyPress(keys.Escape))
	if m.modal.IsVisible() {
		t.Error("expected escape to close settings")
	}
}

func TestOnboardingEscape_StillMarksDone(t *testing.T) {
	cfg := testConfig()
	cfg.OnboardingDone = false
	m, _ := testModelWithSize(t, cfg, 120, 40)

	m.Update(StartupModalMsg{})
	m.Update(keyPress(keys.Escape))

	if m.modal.IsVisible() {
		t.Fatal("expected the wizard to close")
	}
	if !cfg.IsOnboardingDone() {
		t.Error("expected onboarding to be marked done even when skipped")
	}
}

func TestAuthModal_RequiresEmail(t *testing.T) {
	cfg := testConfig()
	m, _ := testModelWithSize(t, cfg, 120, 40)

	m.modal.Show(modals.NewAuthState())
	m.Update(keyPress(keys.Enter))

	if !m.modal.IsVisible() {
		t.Fatal("expected the modal to stay open on validation failure")
	}
}

func TestAuthModal_ModeSwitchShortcuts(t *testing.T) {
	cfg := testConfig()
	m, _ := testModelWithSize(t, cfg, 120, 40)

	m.modal.Show(modals.NewAuthState())
	state := m.modal.State.(*modals.AuthState)

	m.Update(keyPress("ctrl+r"))
	if state.Mode != modals.AuthModeRegister {
		t.Errorf("expected register mode, got %v", state.Mode)
	}

	m.Update(keyPress("ctrl+p"))
	if state.Mode != modals.AuthModeReset {
		t.Errorf("expected reset mode, got %v", state.Mode)
	}

	m.Update(keyPress("ctrl+r"))
	if state.Mode != modals.AuthModeLogin {
		t.Errorf("expected login mode, got %v", state.Mode)
	}
}

func TestHelpModal_EnterCloses(t *testing.T) {
	cfg := testConfig()
	m, _ := testModelWithSize(t, cfg, 120, 40)

	m.modal.Show(modals.NewHelpState(20))
	m.Update(keyPress(keys.Enter))

	if m.modal.IsVisible() {
		t.Error("expected enter to dismiss help")
	}
}
