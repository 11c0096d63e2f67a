package ui

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/guidelens/guidelens/internal/agent"
	"github.com/guidelens/guidelens/internal/config"
	"github.com/guidelens/guidelens/internal/keys"
)

func testSidebar() *Sidebar {
	s := NewSidebar(agent.DefaultCatalog())
	s.SetSize(32, 30)
	s.SetFocused(true)
	return s
}

func testSessions() []config.Session {
	return []config.Session{
		{ID: "s1", Name: "Dinner plans", AgentID: agent.ChefID, CreatedAt: time.Now()},
		{ID: "s2", Name: "Weekend bake", AgentID: agent.ChefID, CreatedAt: time.Now()},
	}
}

func sidebarKey(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	default:
		return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}
}

func TestSidebar_EveryAgentListedWithoutSessions(t *testing.T) {
	s := testSidebar()
	s.SetSessions(nil)

	agents := 0
	for _, item := range s.items {
		if item.Kind == itemKindAgent {
			agents++
		}
	}
	if want := len(agent.DefaultCatalog().All()); agents != want {
		t.Errorf("expected %d agent headers, got %d", want, agents)
	}
}

func TestSidebar_EnterOnAgentEmitsAgentChosen(t *testing.T) {
	s := testSidebar()
	s.SetSessions(testSessions())

	cmd := s.Update(sidebarKey(keys.Enter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(AgentChosenMsg)
	if !ok {
		t.Fatalf("expected AgentChosenMsg, got %T", cmd())
	}
	if msg.AgentID != agent.ChefID {
		t.Errorf("expected the first agent, got %s", msg.AgentID)
	}
}

func TestSidebar_EnterOnSessionEmitsSessionChosen(t *testing.T) {
	s := testSidebar()
	s.SetSessions(testSessions())

	s.Update(sidebarKey(keys.Down))
	cmd := s.Update(sidebarKey(keys.Enter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(SessionChosenMsg)
	if !ok {
		t.Fatalf("expected SessionChosenMsg, got %T", cmd())
	}
	if msg.SessionID != "s1" {
		t.Errorf("expected s1, got %s", msg.SessionID)
	}
}

func TestSidebar_EnterOnNewChatEmitsRequest(t *testing.T) {
	s := testSidebar()
	s.SetSessions(testSessions())

	// agent header, two sessions, then "+ new chat"
	for i := 0; i < 3; i++ {
		s.Update(sidebarKey(keys.Down))
	}
	cmd := s.Update(sidebarKey(keys.Enter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(NewSessionRequestedMsg)
	if !ok {
		t.Fatalf("expected NewSessionRequestedMsg, got %T", cmd())
	}
	if msg.AgentID != agent.ChefID {
		t.Errorf("expected chef, got %s", msg.AgentID)
	}
}

func TestSidebar_NavigationStopsAtBounds(t *testing.T) {
	s := testSidebar()
	s.SetSessions(nil)

	s.Update(sidebarKey(keys.Up))
	if s.selectedIdx != 0 {
		t.Error("expected cursor to stay at the top")
	}

	for i := 0; i < 100; i++ {
		s.Update(sidebarKey("j"))
	}
	if s.selectedIdx != len(s.items)-1 {
		t.Errorf("expected cursor at the last item, got %d", s.selectedIdx)
	}
}

func TestSidebar_SelectSessionMovesCursor(t *testing.T) {
	s := testSidebar()
	s.SetSessions(testSessions())

	s.SelectSession("s2")
	sess := s.SelectedSession()
	if sess == nil || sess.ID != "s2" {
		t.Errorf("expected s2 selected, got %+v", sess)
	}
}

func TestSidebar_SelectedSessionNilOnAgentRow(t *testing.T) {
	s := testSidebar()
	s.SetSessions(testSessions())

	if s.SelectedSession() != nil {
		t.Error("expected nil on an agent header row")
	}
}

func TestSidebar_IgnoresInputWhenUnfocused(t *testing.T) {
	s := testSidebar()
	s.SetSessions(testSessions())
	s.SetFocused(false)

	s.Update(sidebarKey(keys.Down))
	if s.selectedIdx != 0 {
		t.Error("expected no movement while unfocused")
	}
}
