package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// OnboardingState is the first-run wizard: pick a default guide and enter
// an API key. Shown once, before the main screen.
type OnboardingState struct {
	form *huh.Form

	selectedAgent string
	apiKey        string
	notifications bool
}

func (*OnboardingState) modalState() {}

func (s *OnboardingState) Title() string { return "Welcome to GuideLens!" }

func (s *OnboardingState) Help() string {
	return "Tab: next field  Enter: finish  Esc: skip for now"
}

func (s *OnboardingState) Render() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginBottom(1).
		Render(s.Title())

	intro := lipgloss.NewStyle().
		Foreground(ColorText).
		Width(ModalWidth - 8).
		MarginBottom(1).
		Render("GuideLens puts four AI guides in your terminal: cooking, crafting, friendship, and DIY repair. Pick who greets you first.")

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, intro, s.form.View(), help)
}

func (s *OnboardingState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// DefaultAgentID returns the chosen default guide
func (s *OnboardingState) DefaultAgentID() string { return s.selectedAgent }

// APIKey returns the entered API key, possibly empty
func (s *OnboardingState) APIKey() string { return s.apiKey }

// NotificationsEnabled reports the desktop notification choice
func (s *OnboardingState) NotificationsEnabled() bool { return s.notifications }

// NewOnboardingState creates the first-run wizard. agentLabels and agentIDs
// are parallel; defaultID preselects.
func NewOnboardingState(agentLabels, agentIDs []string, defaultID string) *OnboardingState {
	s := &OnboardingState{
		selectedAgent: defaultID,
		notifications: true,
	}

	agentOptions := make([]huh.Option[string], len(agentIDs))
	for i := range agentIDs {
		agentOptions[i] = huh.NewOption(agentLabels[i], agentIDs[i])
	}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Your default guide").
			Options(agentOptions...).
			Value(&s.selectedAgent),
		huh.NewInput().
			Title("Gemini API key").
			Description("Also read from GEMINI_API_KEY; leave empty to run offline").
			EchoMode(huh.EchoModePassword).
			CharLimit(ModalInputCharLimit).
			Value(&s.apiKey),
		huh.NewConfirm().
			Title("Desktop notifications").
			Description("Notify when a reply arrives while you're elsewhere").
			Value(&s.notifications),
	)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 4).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}
