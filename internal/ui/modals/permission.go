package modals

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/guidelens/guidelens/internal/keys"
)

// PermissionState asks for microphone or camera access before a live
// session. Denying resolves to the text chat instead.
type PermissionState struct {
	Device        string // "microphone" or "camera"
	AgentName     string
	Options       []string
	SelectedIndex int
}

func (*PermissionState) modalState() {}

func (s *PermissionState) Title() string {
	return fmt.Sprintf("Allow %s access?", s.Device)
}

func (s *PermissionState) Help() string {
	return "y: allow  n: deny  Enter: confirm  Esc: cancel"
}

func (s *PermissionState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	message := lipgloss.NewStyle().
		Foreground(ColorText).
		Width(ModalWidth - 8).
		MarginBottom(1).
		Render(fmt.Sprintf("%s wants to use your %s for this live session. Denying keeps you in the text chat.",
			s.AgentName, s.Device))

	optionList := RenderSelectableList(s.Options, s.SelectedIndex)

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, message, optionList, help)
}

func (s *PermissionState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		if s.SelectedIndex > 0 {
			s.SelectedIndex--
		}
	case keys.Down, "j":
		if s.SelectedIndex < len(s.Options)-1 {
			s.SelectedIndex++
		}
	case "y":
		s.SelectedIndex = 0
		return s, s.resolve()
	case "n":
		s.SelectedIndex = 1
		return s, s.resolve()
	case keys.Enter:
		return s, s.resolve()
	}
	return s, nil
}

// Granted reports whether "Allow" is selected
func (s *PermissionState) Granted() bool {
	return s.SelectedIndex == 0
}

func (s *PermissionState) resolve() tea.Cmd {
	device := s.Device
	granted := s.Granted()
	return func() tea.Msg {
		return PermissionResolvedMsg{Device: device, Granted: granted}
	}
}

// NewPermissionState creates a permission prompt for the given device
func NewPermissionState(device, agentName string) *PermissionState {
	return &PermissionState{
		Device:        device,
		AgentName:     agentName,
		Options:       []string{"Allow", "Deny"},
		SelectedIndex: 0,
	}
}
