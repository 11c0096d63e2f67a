package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/guidelens/guidelens/internal/clipboard"
	"github.com/guidelens/guidelens/internal/config"
	"github.com/guidelens/guidelens/internal/live"
	"github.com/guidelens/guidelens/internal/logger"
	"github.com/guidelens/guidelens/internal/notification"
	"github.com/guidelens/guidelens/internal/ui"
	"github.com/guidelens/guidelens/internal/ui/modals"
)

// handleStartupModal shows the onboarding wizard on first run
func (m *Model) handleStartupModal() (tea.Model, tea.Cmd) {
	if !m.config.IsOnboardingDone() {
		labels, ids := m.agentOptions()
		m.modal.Show(modals.NewOnboardingState(labels, ids, m.config.GetDefaultAgentID()))
	}
	return m, nil
}

// agentOptions builds the parallel label/ID slices modals consume
func (m *Model) agentOptions() (labels, ids []string) {
	for _, a := range m.catalog.All() {
		labels = append(labels, fmt.Sprintf("%s %s — %s", a.Icon, a.Name, a.Tagline))
		ids = append(ids, a.ID)
	}
	return labels, ids
}

// handleGenerationResult folds a finished generation into the chat. Stale
// results — superseded requests or sessions deleted meanwhile — are dropped.
func (m *Model) handleGenerationResult(msg GenerationResultMsg) (tea.Model, tea.Cmd) {
	if !m.sessionState.IsCurrent(msg.SessionID, msg.Gen) {
		logger.Debug("dropping superseded reply for session %s", msg.SessionID)
		return m, nil
	}
	m.sessionState.StopWaiting(msg.SessionID)

	if m.config.GetSession(msg.SessionID) == nil {
		return m, nil
	}

	reply := config.ChatMessage{
		ID:        uuid.NewString(),
		FromUser:  false,
		Timestamp: time.Now(),
	}
	if msg.Err != nil {
		logger.Error("generation failed for %s: %v", msg.SessionID, msg.Err)
		reply.Text = ui.ErrorPrefix + msg.Err.Error()
	} else {
		reply.Text = msg.Response.Text
		reply.GeneratedImage = msg.Response.ImageData
	}

	if err := config.AppendSessionMessage(msg.SessionID, reply, ui.MaxSessionMessages); err != nil {
		logger.Error("persisting reply: %v", err)
	}

	var cmds []tea.Cmd
	if m.activeSession != nil && m.activeSession.ID == msg.SessionID {
		m.chat.SetWaiting(false)
		cmds = append(cmds, m.chat.AppendMessage(reply))
	}

	if msg.Err == nil && m.config.GetNotificationsEnabled() {
		if err := notification.ResponseReady(m.activeAgent.Name); err != nil {
			logger.Debug("notification failed: %v", err)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleLiveEvent feeds a session event to the active overlay and keeps
// the listener running
func (m *Model) handleLiveEvent(msg LiveEventMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.listenForLiveEvents()}

	// Track transcripts for persistence at session end
	if tr, ok := msg.Event.(live.Transcription); ok {
		if tr.IsUser {
			m.liveUserText = tr.Text
		} else {
			m.liveAgentText = tr.Text
		}
	}

	switch m.screen {
	case ScreenVoice:
		if m.voice != nil {
			cmds = append(cmds, m.voice.HandleEvent(msg.Event))
		}
	case ScreenVideo:
		if m.video != nil {
			cmds = append(cmds, m.video.HandleEvent(msg.Event))
		}
	}

	// Disconnection while an overlay is up ends the call
	if st, ok := msg.Event.(live.StateChanged); ok && st.State == live.Disconnected {
		if m.screen == ScreenVoice || m.screen == ScreenVideo {
			cmds = append(cmds, m.finishLiveSession())
		}
	}

	return m, tea.Batch(cmds...)
}

// handleSessionStarted forwards the StartSession result to the overlay
func (m *Model) handleSessionStarted(msg ui.SessionStartedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Error("live session start failed: %v", msg.Err)
	}
	if m.screen == ScreenVoice && m.voice != nil {
		return m, m.voice.HandleSessionStarted(msg)
	}
	if m.screen == ScreenVideo && msg.Err != nil {
		// Video overlay shows state from events; a failed start drops back
		return m, m.finishLiveSession()
	}
	return m, nil
}

// handlePermissionResolved opens the requested live overlay, or falls back
// to the text chat on deny
func (m *Model) handlePermissionResolved(msg modals.PermissionResolvedMsg) (tea.Model, tea.Cmd) {
	m.modal.Hide()

	if !msg.Granted {
		m.screen = ScreenChat
		return m, m.footer.Flash("Staying in text chat")
	}

	m.liveUserText = ""
	m.liveAgentText = ""

	switch msg.Device {
	case "microphone":
		m.voice = ui.NewVoice(m.activeAgent, m.config.GetTier(), m.config.GetMicEnabled())
		m.voice.SetSize(m.contentWidth(), m.contentHeight())
		m.screen = ScreenVoice
		return m, tea.Batch(m.voice.Tap(m.liveMgr), m.listenForLiveEvents())
	case "camera":
		m.video = ui.NewVideo(m.activeAgent)
		m.video.SetSize(m.contentWidth(), m.contentHeight())
		m.screen = ScreenVideo
		mgr, agentID, tier := m.liveMgr, m.activeAgent.ID, m.config.GetTier()
		start := func() tea.Msg {
			err := mgr.StartSession(context.Background(), agentID, tier)
			return ui.SessionStartedMsg{Err: err}
		}
		return m, tea.Batch(start, m.listenForLiveEvents())
	}
	return m, nil
}

// endLiveSession is the user-initiated teardown (esc on an overlay)
func (m *Model) endLiveSession() tea.Cmd {
	m.liveMgr.StopSession()
	return m.finishLiveSession()
}

// finishLiveSession persists voice transcripts as chat messages and
// returns to the chat screen
func (m *Model) finishLiveSession() tea.Cmd {
	var cmds []tea.Cmd

	if m.activeSession != nil {
		now := time.Now()
		for _, t := range []struct {
			text     string
			fromUser bool
		}{
			{m.liveUserText, true},
			{m.liveAgentText, false},
		} {
			if t.text == "" {
				continue
			}
			voiceMsg := config.ChatMessage{
				ID:        uuid.NewString(),
				Text:      t.text,
				FromUser:  t.fromUser,
				Timestamp: now,
				IsVoice:   true,
			}
			if _, err := m.config.AddMessageToCurrentSession(voiceMsg, ui.MaxSessionMessages); err != nil {
				logger.Error("persisting voice message: %v", err)
			}
			cmds = append(cmds, m.chat.AppendMessage(voiceMsg))
		}
	}
	m.liveUserText = ""
	m.liveAgentText = ""

	if m.voice != nil {
		m.voice.Leave()
		m.voice = nil
	}
	m.video = nil
	m.screen = ScreenChat

	if m.config.GetNotificationsEnabled() {
		if err := notification.SessionEnded(m.activeAgent.Name); err != nil {
			logger.Debug("notification failed: %v", err)
		}
	}

	return tea.Batch(cmds...)
}

// showWelcome opens an agent's landing screen
func (m *Model) showWelcome(agentID string) (tea.Model, tea.Cmd) {
	a, ok := m.catalog.ByID(agentID)
	if !ok {
		return m, nil
	}
	m.applyAgent(a)
	m.welcome = ui.NewWelcome(a)
	m.welcome.SetSize(m.contentWidth(), m.contentHeight())
	m.screen = ScreenWelcome
	return m, nil
}

// handleFeatureChosen seeds the chat input with a feature prompt, creating
// a session for the agent when none is open
func (m *Model) handleFeatureChosen(msg ui.FeatureChosenMsg) (tea.Model, tea.Cmd) {
	m.screen = ScreenChat

	var cmd tea.Cmd
	if m.activeSession == nil || m.activeSession.AgentID != m.activeAgent.ID {
		cmd = m.newSessionFor(m.activeAgent.ID, "")
	} else {
		m.setFocus(FocusChat)
	}
	m.chat.SetInput(msg.Prompt)
	return m, cmd
}

// showNewSessionModal opens the new-chat modal preselecting an agent
func (m *Model) showNewSessionModal(agentID string) {
	labels, ids := m.agentOptions()
	m.modal.Show(modals.NewNewSessionState(labels, ids, agentID))
}

// showSettingsModal opens settings seeded with current config values
func (m *Model) showSettingsModal() {
	labels, ids := m.agentOptions()
	m.modal.Show(modals.NewSettingsState(
		labels, ids,
		m.config.GetDefaultAgentID(),
		m.config.GetAPIKey(),
		m.config.GetTier(),
		m.config.GetMicEnabled(),
		m.config.GetNotificationsEnabled(),
	))
}

// handleAuthResult updates the sign-in modal banners, closing it on success
func (m *Model) handleAuthResult(msg AuthResultMsg) (tea.Model, tea.Cmd) {
	state := m.authMgr.State()

	if authModal, ok := m.modal.State.(*modals.AuthState); ok {
		if msg.Err != nil {
			authModal.SetBanners(msg.Err.Error(), "")
			return m, nil
		}
		if state.SuccessMessage != "" {
			authModal.SetBanners("", state.SuccessMessage)
			return m, nil
		}
	}

	if state.LoggedIn {
		m.modal.Hide()
		who := ""
		if state.User.Email != "" {
			who = " as " + state.User.Email
		}
		return m, m.footer.Flash("Signed in" + who)
	}
	return m, nil
}

// copyLastReply copies the newest agent message to the clipboard
func (m *Model) copyLastReply() tea.Cmd {
	messages := m.chat.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if !messages[i].FromUser && messages[i].Text != "" {
			text := messages[i].Text
			return tea.Batch(
				tea.SetClipboard(text),
				func() tea.Msg {
					if err := clipboard.WriteText(text); err != nil {
						return ui.ClipboardErrorMsg{Error: err}
					}
					return nil
				},
				m.footer.Flash("Copied reply"),
			)
		}
	}
	return m.footer.Flash("Nothing to copy yet")
}

// attachClipboardImage pulls an image off the clipboard and stages it for
// the next message
func (m *Model) attachClipboardImage() tea.Cmd {
	img, err := clipboard.ReadImage()
	if err != nil || img == nil {
		return m.footer.Flash("No image on clipboard")
	}
	if err := img.Validate(); err != nil {
		return m.footer.Flash(err.Error())
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("guidelens-paste-%s.png", uuid.NewString()[:8]))
	if err := os.WriteFile(path, img.Data, 0o600); err != nil {
		logger.Error("staging pasted image: %v", err)
		return m.footer.Flash("Could not stage image")
	}
	m.pendingImage = path
	return m.footer.Flash(fmt.Sprintf("Image attached (%d KB)", img.SizeKB()))
}
