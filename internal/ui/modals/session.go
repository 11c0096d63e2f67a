package modals

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/guidelens/guidelens/internal/keys"
)

// SessionNameCharLimit caps chat session names
const SessionNameCharLimit = 64

// =============================================================================
// NewSessionState - State for the New Chat modal
// =============================================================================

type NewSessionState struct {
	AgentOptions []string // display labels, parallel to AgentIDs
	AgentIDs     []string
	AgentIndex   int
	NameInput    textinput.Model
	Focus        int // 0=agent list, 1=name input
}

func (*NewSessionState) modalState() {}

func (s *NewSessionState) Title() string { return "New Chat" }

func (s *NewSessionState) Help() string {
	return "up/down: select  Tab: next field  Enter: create  Esc: cancel"
}

func (s *NewSessionState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	agentLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("Guide:")

	agentList := RenderSelectableListWithFocus(s.AgentOptions, s.AgentIndex, s.Focus == 0, "* ")

	nameLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Name:")

	inputStyle := lipgloss.NewStyle()
	if s.Focus == 1 {
		inputStyle = inputStyle.BorderLeft(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(ColorPrimary).PaddingLeft(1)
	} else {
		inputStyle = inputStyle.PaddingLeft(2)
	}
	nameView := inputStyle.Render(s.NameInput.View())

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, agentLabel, agentList, nameLabel, nameView, help)
}

func (s *NewSessionState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.Focus == 0 && s.AgentIndex > 0 {
				s.AgentIndex--
			}
		case keys.Down, "j":
			if s.Focus == 0 && s.AgentIndex < len(s.AgentOptions)-1 {
				s.AgentIndex++
			}
		case keys.Tab, keys.ShiftTab:
			oldFocus := s.Focus
			s.Focus = (s.Focus + 1) % 2
			s.updateInputFocus(oldFocus)
			return s, nil
		}
	}

	if s.Focus == 1 {
		var cmd tea.Cmd
		s.NameInput, cmd = s.NameInput.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *NewSessionState) updateInputFocus(oldFocus int) {
	if s.Focus == 1 {
		s.NameInput.Focus()
	} else if oldFocus == 1 {
		s.NameInput.Blur()
	}
}

// SelectedAgentID returns the chosen agent's ID
func (s *NewSessionState) SelectedAgentID() string {
	if len(s.AgentIDs) == 0 || s.AgentIndex >= len(s.AgentIDs) {
		return ""
	}
	return s.AgentIDs[s.AgentIndex]
}

// SessionName returns the entered name, which may be empty for a default
func (s *NewSessionState) SessionName() string {
	return s.NameInput.Value()
}

// NewNewSessionState creates the modal preselecting the given agent
func NewNewSessionState(agentLabels, agentIDs []string, preselectID string) *NewSessionState {
	nameInput := textinput.New()
	nameInput.Placeholder = "optional name (leave empty for auto)"
	nameInput.CharLimit = SessionNameCharLimit
	nameInput.SetWidth(ModalInputWidth)

	idx := 0
	for i, id := range agentIDs {
		if id == preselectID {
			idx = i
			break
		}
	}

	return &NewSessionState{
		AgentOptions: agentLabels,
		AgentIDs:     agentIDs,
		AgentIndex:   idx,
		NameInput:    nameInput,
	}
}

// =============================================================================
// RenameSessionState - State for the Rename Chat modal
// =============================================================================

type RenameSessionState struct {
	SessionID   string
	SessionName string
	NameInput   textinput.Model
}

func (*RenameSessionState) modalState() {}

func (s *RenameSessionState) Title() string { return "Rename Chat" }

func (s *RenameSessionState) Help() string {
	return "Enter: save  Esc: cancel"
}

func (s *RenameSessionState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	currentLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render("Current name:")

	currentName := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render("  " + s.SessionName)

	newLabel := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("New name:")

	inputStyle := lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	inputView := inputStyle.Render(s.NameInput.View())

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, currentLabel, currentName, newLabel, inputView, help)
}

func (s *RenameSessionState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.NameInput, cmd = s.NameInput.Update(msg)
	return s, cmd
}

// NewName returns the new name entered by the user
func (s *RenameSessionState) NewName() string {
	return s.NameInput.Value()
}

// NewRenameSessionState creates a new RenameSessionState
func NewRenameSessionState(sessionID, currentName string) *RenameSessionState {
	nameInput := textinput.New()
	nameInput.Placeholder = "enter new name"
	nameInput.CharLimit = SessionNameCharLimit
	nameInput.SetWidth(ModalInputWidth)
	nameInput.SetValue(currentName)
	nameInput.Focus()

	return &RenameSessionState{
		SessionID:   sessionID,
		SessionName: currentName,
		NameInput:   nameInput,
	}
}

// =============================================================================
// ConfirmDeleteState - State for the Delete Chat confirmation
// =============================================================================

type ConfirmDeleteState struct {
	SessionID     string
	SessionName   string
	Options       []string
	SelectedIndex int
}

func (*ConfirmDeleteState) modalState() {}

func (s *ConfirmDeleteState) Title() string { return "Delete Chat?" }

func (s *ConfirmDeleteState) Help() string {
	return "up/down to select, Enter to confirm, Esc to cancel"
}

func (s *ConfirmDeleteState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	sessionLabel := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(s.SessionName)

	message := lipgloss.NewStyle().
		Foreground(ColorText).
		MarginBottom(1).
		Render("This removes the chat and its saved messages.")

	optionList := RenderSelectableList(s.Options, s.SelectedIndex)

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, sessionLabel, message, optionList, help)
}

func (s *ConfirmDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// Confirmed reports whether the user chose to delete
func (s *ConfirmDeleteState) Confirmed() bool {
	return s.SelectedIndex == 1 // "Delete" is index 1
}

// NewConfirmDeleteState creates a new ConfirmDeleteState
func NewConfirmDeleteState(sessionID, sessionName string) *ConfirmDeleteState {
	return &ConfirmDeleteState{
		SessionID:     sessionID,
		SessionName:   sessionName,
		Options:       []string{"Cancel", "Delete"},
		SelectedIndex: 0,
	}
}
