package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/guidelens/guidelens/internal/ui/modals"
)

// Modal is the popup dialog host. The State field is nil when no modal is
// visible.
type Modal struct {
	State modals.ModalState
	error string
}

// SyncModalStyles pushes the current palette into the modals package.
// Called whenever the agent theme regenerates.
func SyncModalStyles() {
	modals.SetStyles(
		ModalTitleStyle,
		ModalHelpStyle,
		SidebarItemStyle,
		SidebarSelectedStyle,
		StatusErrorStyle,
		BannerSuccessStyle,
		StatusErrorStyle,
		ColorPrimary,
		ColorSecondary,
		ColorText,
		ColorTextMuted,
		ColorTextInverse,
		ColorWarning,
		ModalInputWidth,
		ModalInputCharLimit,
		ModalWidth,
	)
}

// NewModal creates a new modal host
func NewModal() *Modal {
	SyncModalStyles()
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state modals.ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether a modal is showing
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error line rendered under the modal content
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update delegates to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := m.State.Render()
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}
