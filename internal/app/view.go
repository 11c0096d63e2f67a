package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/guidelens/guidelens/internal/ui"
)

// contentWidth is the width available below the header
func (m *Model) contentWidth() int {
	return m.width
}

// contentHeight is the height between the header and the footer
func (m *Model) contentHeight() int {
	h := m.height - ui.HeaderHeight - ui.FooterHeight
	if h < 0 {
		return 0
	}
	return h
}

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.sidebar.SetSize(ui.SidebarWidth, m.contentHeight())
	m.chat.SetSize(m.width-ui.SidebarWidth, m.contentHeight())

	if m.welcome != nil {
		m.welcome.SetSize(m.contentWidth(), m.contentHeight())
	}
	if m.voice != nil {
		m.voice.SetSize(m.contentWidth(), m.contentHeight())
	}
	if m.video != nil {
		m.video.SetSize(m.contentWidth(), m.contentHeight())
	}
}

// updateFooterContext refreshes the footer's conditional bindings
func (m *Model) updateFooterContext() {
	m.footer.SetContext(
		m.activeSession != nil,
		m.focus == FocusSidebar,
		m.activeSession != nil && m.sessionState.IsWaiting(m.activeSession.ID),
		m.screen == ScreenVoice,
		m.screen == ScreenVideo,
	)
}

// content renders whatever occupies the area between header and footer
func (m *Model) content() string {
	switch m.screen {
	case ScreenWelcome:
		if m.welcome != nil {
			return m.welcome.View()
		}
	case ScreenVoice:
		if m.voice != nil {
			return m.voice.View()
		}
	case ScreenVideo:
		if m.video != nil {
			return m.video.View()
		}
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.sidebar.View(),
		m.chat.View(),
	)
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.render())
	return v
}

func (m *Model) render() string {
	m.updateFooterContext()

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		m.content(),
		m.footer.View(),
	)

	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	return view
}

// RenderToString renders the current view as a string. Useful for demos
// and testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	return m.render()
}
