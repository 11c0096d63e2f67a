package modals

import (
	"slices"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

const (
	optionNotifications = "notifications"
	optionMicAutoOpen   = "mic"
)

// SettingsState is the settings modal, backed by a huh form.
type SettingsState struct {
	form *huh.Form

	selectedAgent string
	apiKey        string
	tier          string
	options       []string
}

func (*SettingsState) modalState() {}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// DefaultAgentID returns the chosen default guide
func (s *SettingsState) DefaultAgentID() string { return s.selectedAgent }

// APIKey returns the entered API key
func (s *SettingsState) APIKey() string { return s.apiKey }

// Tier returns the chosen subscription tier
func (s *SettingsState) Tier() string { return s.tier }

// MicEnabled reports the mic auto-open preference
func (s *SettingsState) MicEnabled() bool {
	return slices.Contains(s.options, optionMicAutoOpen)
}

// NotificationsEnabled reports the desktop notification preference
func (s *SettingsState) NotificationsEnabled() bool {
	return slices.Contains(s.options, optionNotifications)
}

// NewSettingsState creates a SettingsState seeded with current values.
// agentLabels and agentIDs are parallel.
func NewSettingsState(agentLabels, agentIDs []string, currentAgentID, apiKey, tier string,
	micEnabled, notificationsEnabled bool) *SettingsState {

	s := &SettingsState{
		selectedAgent: currentAgentID,
		apiKey:        apiKey,
		tier:          tier,
	}

	agentOptions := make([]huh.Option[string], len(agentIDs))
	for i := range agentIDs {
		agentOptions[i] = huh.NewOption(agentLabels[i], agentIDs[i])
	}

	generalOpts := []huh.Option[string]{
		huh.NewOption("Desktop notifications", optionNotifications).
			Selected(notificationsEnabled),
		huh.NewOption("Auto-open mic in voice sessions", optionMicAutoOpen).
			Selected(micEnabled),
	}
	if notificationsEnabled {
		s.options = append(s.options, optionNotifications)
	}
	if micEnabled {
		s.options = append(s.options, optionMicAutoOpen)
	}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Default guide").
			Options(agentOptions...).
			Value(&s.selectedAgent),
		huh.NewInput().
			Title("Gemini API key").
			Description("Used for chat and live sessions").
			EchoMode(huh.EchoModePassword).
			CharLimit(ModalInputCharLimit).
			Value(&s.apiKey),
		huh.NewSelect[string]().
			Title("Tier").
			Options(
				huh.NewOption("Free", "free"),
				huh.NewOption("Premium", "premium"),
			).
			Value(&s.tier),
		huh.NewMultiSelect[string]().
			Title("Options").
			Options(generalOpts...).
			Height(len(generalOpts)).
			Value(&s.options),
	)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 4).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}
