package ui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/guidelens/guidelens/internal/agent"
	"github.com/guidelens/guidelens/internal/config"
	"github.com/guidelens/guidelens/internal/keys"
)

// sidebarItemKind distinguishes between agent headers and sessions.
type sidebarItemKind int

const (
	itemKindAgent      sidebarItemKind = iota // An agent header (selectable)
	itemKindSession                           // A chat session under an agent
	itemKindNewSession                        // A "+ new chat" action under an agent
)

// sidebarItem represents a selectable item in the sidebar.
type sidebarItem struct {
	Kind    sidebarItemKind
	Session config.Session // Only valid when Kind == itemKindSession
	AgentID string         // Set for all kinds
}

// agentGroup is the sessions for a single agent
type agentGroup struct {
	Agent    agent.Agent
	Sessions []config.Session
}

// SessionChosenMsg asks the app to switch to a session
type SessionChosenMsg struct {
	SessionID string
}

// AgentChosenMsg asks the app to show an agent's landing screen
type AgentChosenMsg struct {
	AgentID string
}

// NewSessionRequestedMsg asks the app to open the new-session modal
type NewSessionRequestedMsg struct {
	AgentID string
}

// Sidebar is the left panel: sessions grouped by agent
type Sidebar struct {
	catalog *agent.Catalog
	groups  []agentGroup
	items   []sidebarItem

	selectedIdx  int
	currentID    string // current session ID, marked in the list
	scrollOffset int
	width        int
	height       int
	focused      bool
}

// NewSidebar creates a new sidebar
func NewSidebar(catalog *agent.Catalog) *Sidebar {
	return &Sidebar{catalog: catalog}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetCurrentSession marks the active session in the list
func (s *Sidebar) SetCurrentSession(id string) {
	s.currentID = id
}

// SetSessions rebuilds the grouped list. Every agent appears even with no
// sessions so new chats can be started from the sidebar.
func (s *Sidebar) SetSessions(sessions []config.Session) {
	byAgent := make(map[string][]config.Session)
	for _, sess := range sessions {
		byAgent[sess.AgentID] = append(byAgent[sess.AgentID], sess)
	}

	s.groups = s.groups[:0]
	s.items = s.items[:0]
	for _, a := range s.catalog.All() {
		group := agentGroup{Agent: a, Sessions: byAgent[a.ID]}
		s.groups = append(s.groups, group)

		s.items = append(s.items, sidebarItem{Kind: itemKindAgent, AgentID: a.ID})
		for _, sess := range group.Sessions {
			s.items = append(s.items, sidebarItem{Kind: itemKindSession, Session: sess, AgentID: a.ID})
		}
		s.items = append(s.items, sidebarItem{Kind: itemKindNewSession, AgentID: a.ID})
	}

	if s.selectedIdx >= len(s.items) {
		s.selectedIdx = len(s.items) - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
}

// SelectSession moves the cursor to the given session if present
func (s *Sidebar) SelectSession(id string) {
	for i, item := range s.items {
		if item.Kind == itemKindSession && item.Session.ID == id {
			s.selectedIdx = i
			s.ensureVisible()
			return
		}
	}
}

// SelectedSession returns the session under the cursor, or nil
func (s *Sidebar) SelectedSession() *config.Session {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.items) {
		return nil
	}
	item := s.items[s.selectedIdx]
	if item.Kind != itemKindSession {
		return nil
	}
	sess := item.Session
	return &sess
}

// Update handles key input while the sidebar has focus
func (s *Sidebar) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.focused {
		return nil
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		if s.selectedIdx > 0 {
			s.selectedIdx--
			s.ensureVisible()
		}
	case keys.Down, "j":
		if s.selectedIdx < len(s.items)-1 {
			s.selectedIdx++
			s.ensureVisible()
		}
	case keys.Enter:
		if s.selectedIdx < 0 || s.selectedIdx >= len(s.items) {
			return nil
		}
		item := s.items[s.selectedIdx]
		switch item.Kind {
		case itemKindAgent:
			return func() tea.Msg { return AgentChosenMsg{AgentID: item.AgentID} }
		case itemKindSession:
			return func() tea.Msg { return SessionChosenMsg{SessionID: item.Session.ID} }
		case itemKindNewSession:
			return func() tea.Msg { return NewSessionRequestedMsg{AgentID: item.AgentID} }
		}
	}
	return nil
}

// visibleLines is the number of item rows that fit inside the panel
func (s *Sidebar) visibleLines() int {
	lines := s.height - 3 // border and title
	if lines < 1 {
		lines = 1
	}
	return lines
}

// ensureVisible scrolls so the selected item stays on screen
func (s *Sidebar) ensureVisible() {
	visible := s.visibleLines()
	if s.selectedIdx < s.scrollOffset {
		s.scrollOffset = s.selectedIdx
	}
	if s.selectedIdx >= s.scrollOffset+visible {
		s.scrollOffset = s.selectedIdx - visible + 1
	}
}

// renderItem renders one sidebar row
func (s *Sidebar) renderItem(idx int, item sidebarItem) string {
	selected := s.focused && idx == s.selectedIdx
	innerWidth := s.width - 4
	if innerWidth < 1 {
		innerWidth = 1
	}

	var line string
	switch item.Kind {
	case itemKindAgent:
		a, _ := s.catalog.ByID(item.AgentID)
		line = fmt.Sprintf("%s %s", a.Icon, a.Name)
		if !selected {
			return SidebarAgentStyle.Render(truncate(line, innerWidth))
		}
	case itemKindSession:
		marker := "  "
		if item.Session.ID == s.currentID {
			marker = "● "
		}
		line = marker + item.Session.Name
	case itemKindNewSession:
		line = "  + new chat"
		if !selected {
			return TimestampStyle.Render(truncate(line, innerWidth))
		}
	}

	style := SidebarItemStyle
	if selected {
		style = SidebarSelectedStyle
	}
	return style.Render(truncate(line, innerWidth))
}

// truncate cuts a string to width runes with an ellipsis
func truncate(str string, width int) string {
	runes := []rune(str)
	if len(runes) <= width {
		return str
	}
	if width <= 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// View renders the sidebar
func (s *Sidebar) View() string {
	panelStyle := PanelStyle
	if s.focused {
		panelStyle = PanelFocusedStyle
	}

	var rows []string
	visible := s.visibleLines()
	end := s.scrollOffset + visible
	if end > len(s.items) {
		end = len(s.items)
	}
	for i := s.scrollOffset; i < end; i++ {
		rows = append(rows, s.renderItem(i, s.items[i]))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	content := PanelTitleStyle.Render("Sessions") + "\n" + body

	return panelStyle.
		Width(s.width).
		Height(s.height).
		Render(content)
}
