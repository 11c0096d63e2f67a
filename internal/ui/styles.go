package ui

import "charm.land/lipgloss/v2"

// Color palette - derived from the active agent theme
var (
	ColorPrimary     = lipgloss.Color("#7C3AED")
	ColorSecondary   = lipgloss.Color("#06B6D4")
	ColorMuted       = lipgloss.Color("#6B7280")
	ColorBorder      = lipgloss.Color("#374151")
	ColorBorderFocus = lipgloss.Color("#7C3AED")
	ColorBg          = lipgloss.Color("#1F2937")
	ColorText        = lipgloss.Color("#F9FAFB")
	ColorTextMuted   = lipgloss.Color("#9CA3AF")
	ColorTextInverse = lipgloss.Color("#1F2937")
	ColorUser        = lipgloss.Color("#E5E7EB")
	ColorAssistant   = lipgloss.Color("#22D3EE")
	ColorWarning     = lipgloss.Color("#F59E0B")
	ColorError       = lipgloss.Color("#EF4444")
	ColorSuccess     = lipgloss.Color("#10B981")
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	HeaderCapabilityStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterFlashStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSuccess)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)
)

// Sidebar styles
var (
	SidebarItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	SidebarSelectedStyle = lipgloss.NewStyle().
				Background(ColorPrimary).
				Foreground(ColorText).
				Bold(true).
				Padding(0, 1)

	SidebarAgentStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)
)

// Chat message styles
var (
	UserLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorUser)

	AgentLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAssistant)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ColorError)

	ThinkingStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorTextMuted)

	VoiceFlagStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// Session overlay styles
var (
	OverlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	OverlayStatusStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	OverlayErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError)

	MeterFilledStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary)

	MeterEmptyStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	TranscriptStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	InsightStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorSecondary)
)

// Welcome screen styles
var (
	WelcomeTaglineStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(ColorTextMuted)

	FeatureCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)

	FeatureCardSelectedStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(ColorPrimary).
					Padding(0, 1)

	QuickActionStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderFocus).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			MarginTop(1)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError)

	BannerSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)
)

// Text selection styles
var (
	SelectionStyle = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(ColorText)

	SelectionFlashStyle = lipgloss.NewStyle().
				Background(ColorSuccess).
				Foreground(ColorTextInverse)
)

// regenerateStyles rebuilds every derived style from currentTheme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorUser = lipgloss.Color(t.User)
	ColorAssistant = lipgloss.Color(t.Assistant)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	HeaderCapabilityStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterFlashStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSuccess)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)

	SidebarSelectedStyle = lipgloss.NewStyle().
		Background(ColorPrimary).
		Foreground(ColorText).
		Bold(true).
		Padding(0, 1)

	SidebarAgentStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	UserLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorUser)

	AgentLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAssistant)

	TimestampStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ErrorMessageStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	ThinkingStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorTextMuted)

	VoiceFlagStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	OverlayTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	OverlayStatusStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	OverlayErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	MeterFilledStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)

	MeterEmptyStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	TranscriptStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	InsightStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorSecondary)

	WelcomeTaglineStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorTextMuted)

	FeatureCardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	FeatureCardSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)

	QuickActionStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Padding(0, 1)

	SelectionStyle = lipgloss.NewStyle().
		Background(ColorPrimary).
		Foreground(ColorText)

	SelectionFlashStyle = lipgloss.NewStyle().
		Background(ColorSuccess).
		Foreground(ColorTextInverse)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	BannerSuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	SyncModalStyles()
}
