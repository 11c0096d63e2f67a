package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/guidelens/guidelens/internal/config"
	"github.com/guidelens/guidelens/internal/keys"
	"github.com/guidelens/guidelens/internal/logger"
	"github.com/guidelens/guidelens/internal/ui/modals"
)

// handleModalKey routes a key press while a modal is open. Enter submits,
// Escape cancels; everything else goes to the modal's own Update.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// The permission prompt owns its whole key handling (y/n/enter)
	if _, ok := m.modal.State.(*modals.PermissionState); ok {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	switch key {
	case keys.Escape:
		return m.cancelModal()
	case keys.Enter:
		return m.submitModal()
	}

	// Auth modal mode-switch shortcuts
	if authModal, ok := m.modal.State.(*modals.AuthState); ok {
		switch key {
		case "ctrl+r":
			if authModal.Mode == modals.AuthModeLogin {
				authModal.SwitchMode(modals.AuthModeRegister)
			} else {
				authModal.SwitchMode(modals.AuthModeLogin)
			}
			return m, nil
		case "ctrl+p":
			authModal.SwitchMode(modals.AuthModeReset)
			return m, nil
		case "ctrl+g":
			return m, m.footer.Flash("Google sign-in needs a browser; use email here")
		}
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// cancelModal closes the modal without applying anything. Onboarding still
// marks itself done so the wizard doesn't reappear every launch.
func (m *Model) cancelModal() (tea.Model, tea.Cmd) {
	if _, ok := m.modal.State.(*modals.OnboardingState); ok {
		m.config.MarkOnboardingDone()
		if err := m.config.Save(); err != nil {
			logger.Error("saving config: %v", err)
		}
	}
	m.modal.Hide()
	return m, nil
}

// submitModal applies the current modal's result
func (m *Model) submitModal() (tea.Model, tea.Cmd) {
	switch state := m.modal.State.(type) {
	case *modals.NewSessionState:
		agentID := state.SelectedAgentID()
		if agentID == "" {
			m.modal.SetError("Pick a guide first")
			return m, nil
		}
		m.modal.Hide()
		return m, m.newSessionFor(agentID, state.SessionName())

	case *modals.RenameSessionState:
		name := state.NewName()
		if name == "" {
			m.modal.SetError("Name cannot be empty")
			return m, nil
		}
		m.config.RenameSession(state.SessionID, name)
		if err := m.config.Save(); err != nil {
			logger.Error("saving config: %v", err)
		}
		m.sidebar.SetSessions(m.config.GetSessions())
		if m.activeSession != nil && m.activeSession.ID == state.SessionID {
			m.activeSession = m.config.GetSession(state.SessionID)
			m.chat.SetSession(name, m.chat.Messages())
		}
		m.modal.Hide()
		return m, nil

	case *modals.ConfirmDeleteState:
		m.modal.Hide()
		if !state.Confirmed() {
			return m, nil
		}
		return m.deleteSession(state.SessionID)

	case *modals.SettingsState:
		return m.applySettings(state)

	case *modals.OnboardingState:
		return m.applyOnboarding(state)

	case *modals.AuthState:
		return m.submitAuth(state)

	case *modals.HelpState:
		m.modal.Hide()
		return m, nil
	}

	m.modal.Hide()
	return m, nil
}

// deleteSession removes a session and its persisted messages
func (m *Model) deleteSession(id string) (tea.Model, tea.Cmd) {
	if !m.config.RemoveSession(id) {
		return m, nil
	}
	if err := config.DeleteSessionMessages(id); err != nil {
		logger.Error("deleting messages for %s: %v", id, err)
	}
	m.sessionState.Remove(id)
	if err := m.config.Save(); err != nil {
		logger.Error("saving config: %v", err)
	}

	m.sidebar.SetSessions(m.config.GetSessions())

	if m.activeSession != nil && m.activeSession.ID == id {
		m.activeSession = nil
		m.chat.ClearSession()
		if current := m.config.CurrentSession(); current != nil {
			return m, m.openSession(current.ID)
		}
		m.setFocus(FocusSidebar)
	}
	return m, nil
}

// applySettings persists the settings form and rebuilds what depends on it
func (m *Model) applySettings(state *modals.SettingsState) (tea.Model, tea.Cmd) {
	oldKey := m.config.GetAPIKey()

	m.config.SetDefaultAgentID(state.DefaultAgentID())
	m.config.SetAPIKey(state.APIKey())
	m.config.SetTier(state.Tier())
	m.config.SetMicEnabled(state.MicEnabled())
	m.config.SetNotificationsEnabled(state.NotificationsEnabled())

	if err := m.config.Save(); err != nil {
		m.modal.SetError("Could not save settings: " + err.Error())
		return m, nil
	}

	if m.config.GetAPIKey() != oldKey {
		m.rebuildGenClient()
	}

	m.modal.Hide()
	return m, m.footer.Flash("Settings saved")
}

// applyOnboarding finishes the first-run wizard
func (m *Model) applyOnboarding(state *modals.OnboardingState) (tea.Model, tea.Cmd) {
	m.config.SetDefaultAgentID(state.DefaultAgentID())
	if key := state.APIKey(); key != "" {
		m.config.SetAPIKey(key)
	}
	m.config.SetNotificationsEnabled(state.NotificationsEnabled())
	m.config.MarkOnboardingDone()

	if err := m.config.Save(); err != nil {
		m.modal.SetError("Could not save: " + err.Error())
		return m, nil
	}

	m.rebuildGenClient()
	m.modal.Hide()

	if a, ok := m.catalog.ByID(state.DefaultAgentID()); ok {
		m.applyAgent(a)
		return m.showWelcome(a.ID)
	}
	return m, nil
}

// submitAuth runs the sign-in call for the modal's current mode
func (m *Model) submitAuth(state *modals.AuthState) (tea.Model, tea.Cmd) {
	email, password := state.Email(), state.Password()
	if email == "" {
		state.SetBanners("Email is required", "")
		return m, nil
	}
	if state.Mode != modals.AuthModeReset && password == "" {
		state.SetBanners("Password is required", "")
		return m, nil
	}
	if !state.PasswordsMatch() {
		state.SetBanners("Passwords do not match", "")
		return m, nil
	}

	mgr := m.authMgr
	mode := state.Mode
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var err error
		switch mode {
		case modals.AuthModeRegister:
			err = mgr.Register(ctx, email, password)
		case modals.AuthModeReset:
			err = mgr.ResetPassword(ctx, email)
		default:
			err = mgr.Login(ctx, email, password)
		}
		return AuthResultMsg{Err: err}
	}
}
