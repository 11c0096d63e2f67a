package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/guidelens/guidelens/internal/live"
)

// LiveEventMsg carries one event from the live session manager
type LiveEventMsg struct {
	Event live.Event
}

// LiveClosedMsg is sent when the manager's event stream closes for good
type LiveClosedMsg struct{}

// listenForLiveEvents creates a command that waits for the next live
// session event. The handler re-issues it after each message so the
// stream keeps flowing into the update loop.
func (m *Model) listenForLiveEvents() tea.Cmd {
	if m.liveMgr == nil {
		return nil
	}
	ch := m.liveMgr.Events()
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return LiveClosedMsg{}
		}
		return LiveEventMsg{Event: ev}
	}
}
