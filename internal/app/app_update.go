package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/guidelens/guidelens/internal/keys"
	"github.com/guidelens/guidelens/internal/logger"
	"github.com/guidelens/guidelens/internal/ui"
	"github.com/guidelens/guidelens/internal/ui/modals"
)

// Update handles messages. This is the core Bubble Tea update function that
// routes all messages to the appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.KeyPressMsg:
		if model, cmd := m.handleKeyPress(msg); model != nil {
			return model, cmd
		}
		// Not handled; falls through to the focused panel

	case StartupModalMsg:
		return m.handleStartupModal()

	case GenerationResultMsg:
		return m.handleGenerationResult(msg)

	case LiveEventMsg:
		return m.handleLiveEvent(msg)

	case LiveClosedMsg:
		logger.Info("live event stream closed")
		return m, nil

	case AuthResultMsg:
		return m.handleAuthResult(msg)

	case ui.SessionStartedMsg:
		return m.handleSessionStarted(msg)

	case ui.SessionChosenMsg:
		return m, m.openSession(msg.SessionID)

	case ui.AgentChosenMsg:
		return m.showWelcome(msg.AgentID)

	case ui.NewSessionRequestedMsg:
		m.showNewSessionModal(msg.AgentID)
		return m, nil

	case ui.FeatureChosenMsg:
		return m.handleFeatureChosen(msg)

	case ui.StartVideoMsg:
		m.modal.Show(modals.NewPermissionState("camera", m.activeAgent.Name))
		return m, nil

	case modals.PermissionResolvedMsg:
		return m.handlePermissionResolved(msg)

	case ui.ClipboardErrorMsg:
		return m, m.footer.Flash("Clipboard unavailable: " + msg.Error.Error())

	case ui.FlashTickMsg:
		m.footer.HandleFlashTick(msg)
		return m, nil
	}

	// Modal swallows everything else while visible
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	// Timer ticks route to whichever surface owns them
	if cmd, handled := m.handleTickMessages(msg); handled {
		return m, cmd
	}

	// Overlay screens consume remaining messages
	switch m.screen {
	case ScreenVoice, ScreenVideo:
		return m, nil
	case ScreenWelcome:
		if m.welcome != nil {
			return m, m.welcome.Update(msg)
		}
		return m, nil
	}

	// Chat screen: sidebar handles its keys, chat handles the rest
	if m.focus == FocusSidebar {
		if cmd := m.sidebar.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		// Scroll keys and mouse events still reach the chat panel
		if cmd := m.routeChatInput(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else {
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// routeChatInput forwards scroll keys and mouse events to the chat panel
// while the sidebar has focus
func (m *Model) routeChatInput(msg tea.Msg) tea.Cmd {
	switch ev := msg.(type) {
	case tea.KeyPressMsg:
		switch ev.String() {
		case keys.PgUp, keys.PgDown, keys.Home, keys.End, keys.CtrlU, keys.CtrlD:
			chat, cmd := m.chat.Update(msg)
			m.chat = chat
			return cmd
		}
	case tea.MouseWheelMsg:
		if ev.X > ui.SidebarWidth {
			chat, cmd := m.chat.Update(msg)
			m.chat = chat
			return cmd
		}
	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg:
		if adjusted, ok := m.adjustMouseForChat(msg); ok {
			chat, cmd := m.chat.Update(adjusted)
			m.chat = chat
			return cmd
		}
	}
	return nil
}

// adjustMouseForChat converts terminal coordinates to chat panel
// coordinates, dropping events over the sidebar
func (m *Model) adjustMouseForChat(msg tea.Msg) (tea.Msg, bool) {
	switch ev := msg.(type) {
	case tea.MouseClickMsg:
		if ev.X > ui.SidebarWidth {
			return tea.MouseClickMsg{X: ev.X - ui.SidebarWidth, Y: ev.Y - ui.HeaderHeight, Button: ev.Button, Mod: ev.Mod}, true
		}
	case tea.MouseMotionMsg:
		if ev.X > ui.SidebarWidth {
			return tea.MouseMotionMsg{X: ev.X - ui.SidebarWidth, Y: ev.Y - ui.HeaderHeight, Button: ev.Button, Mod: ev.Mod}, true
		}
	case tea.MouseReleaseMsg:
		if ev.X > ui.SidebarWidth {
			return tea.MouseReleaseMsg{X: ev.X - ui.SidebarWidth, Y: ev.Y - ui.HeaderHeight, Button: ev.Button, Mod: ev.Mod}, true
		}
	}
	return nil, false
}

// handleTickMessages routes timer ticks. Reveal ticks go to whichever
// transcript is on screen so generation counters stay per-surface.
func (m *Model) handleTickMessages(msg tea.Msg) (tea.Cmd, bool) {
	switch tick := msg.(type) {
	case ui.RevealTickMsg:
		if m.screen == ScreenVoice && m.voice != nil {
			return m.voice.RevealTick(tick), true
		}
		return m.chat.HandleRevealTick(tick), true

	case ui.ScrollTickMsg:
		m.chat.HandleScrollTick(tick)
		return nil, true

	case ui.StopwatchTickMsg:
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		return cmd, true

	case ui.SelectionFlashTickMsg:
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		return cmd, true

	case ui.AudioStartTickMsg:
		if m.voice != nil {
			return m.voice.HandleAudioStartTick(tick, m.liveMgr), true
		}
		return nil, true

	case ui.MicResumeTickMsg:
		if m.voice != nil {
			return m.voice.HandleMicResumeTick(tick, m.liveMgr), true
		}
		return nil, true
	}
	return nil, false
}

// handleKeyPress handles global and screen-level shortcuts. Returns a nil
// model when the key was not consumed.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	key := msg.String()

	// Global
	switch key {
	case keys.CtrlC:
		m.saveDraft()
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenVoice:
		return m.handleVoiceKey(key)
	case ScreenVideo:
		return m.handleVideoKey(key)
	case ScreenWelcome:
		switch key {
		case keys.Escape:
			m.screen = ScreenChat
			return m, nil
		case keys.Tab:
			m.screen = ScreenChat
			m.toggleFocus()
			return m, nil
		}
		return nil, nil
	}

	// Chat screen
	switch key {
	case keys.Tab:
		m.saveDraft()
		m.toggleFocus()
		return m, nil
	case "q":
		if !m.chat.IsFocused() {
			m.saveDraft()
			return m, tea.Quit
		}
	case "?":
		if !m.chat.IsFocused() {
			m.modal.Show(modals.NewHelpState(m.height - 8))
			return m, nil
		}
	case "n":
		if !m.chat.IsFocused() {
			m.showNewSessionModal(m.activeAgent.ID)
			return m, nil
		}
	case "R":
		if !m.chat.IsFocused() {
			if sess := m.sidebar.SelectedSession(); sess != nil {
				m.modal.Show(modals.NewRenameSessionState(sess.ID, sess.Name))
			}
			return m, nil
		}
	case "d":
		if !m.chat.IsFocused() {
			if sess := m.sidebar.SelectedSession(); sess != nil {
				m.modal.Show(modals.NewConfirmDeleteState(sess.ID, sess.Name))
			}
			return m, nil
		}
	case "a":
		if !m.chat.IsFocused() {
			return m.showWelcome(m.activeAgent.ID)
		}
	case "s":
		if !m.chat.IsFocused() {
			m.modal.Show(modals.NewAuthState())
			return m, nil
		}
	case "ctrl+o":
		m.saveDraft()
		m.showSettingsModal()
		return m, nil
	case "ctrl+l":
		if m.activeSession != nil {
			m.modal.Show(modals.NewPermissionState("microphone", m.activeAgent.Name))
			return m, nil
		}
	case keys.CtrlY:
		return m, m.copyLastReply()
	case keys.CtrlV:
		if m.chat.IsFocused() && m.activeSession != nil {
			return m, m.attachClipboardImage()
		}
	case keys.Enter:
		if m.chat.IsFocused() {
			return m, m.sendMessage()
		}
	}

	return nil, nil
}

// handleVoiceKey handles keys on the voice overlay
func (m *Model) handleVoiceKey(key string) (tea.Model, tea.Cmd) {
	if m.voice == nil {
		m.screen = ScreenChat
		return m, nil
	}
	switch key {
	case keys.Space:
		return m, m.voice.Tap(m.liveMgr)
	case "m":
		enabled := !m.voice.MicEnabled()
		m.voice.SetMicEnabled(enabled)
		m.config.SetMicEnabled(enabled)
		if err := m.config.Save(); err != nil {
			logger.Error("saving config: %v", err)
		}
		return m, nil
	case keys.Escape:
		return m, m.endLiveSession()
	}
	return nil, nil
}

// handleVideoKey handles keys on the video overlay
func (m *Model) handleVideoKey(key string) (tea.Model, tea.Cmd) {
	if m.video == nil {
		m.screen = ScreenChat
		return m, nil
	}
	switch key {
	case "m":
		m.video.ToggleMute()
		return m, nil
	case "c":
		m.video.ToggleVideo()
		return m, nil
	case keys.Escape:
		return m, m.endLiveSession()
	}
	return nil, nil
}
