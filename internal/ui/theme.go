// Package ui provides the presentation widgets and theme management for
// GuideLens. The palette follows the active agent: each agent carries two
// brand colors, and the rest of the theme is derived from a fixed dark base.
package ui

import (
	"github.com/guidelens/guidelens/internal/agent"
)

// Theme defines the color palette used throughout the UI
type Theme struct {
	Name string

	// Primary is the main accent color (focus, highlights, header)
	Primary string
	// Secondary is the softer accent (agent labels, info)
	Secondary string

	Bg          string // Main background
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	User      string // User message labels
	Assistant string // Agent message labels
	Warning   string // Warnings, permission prompts
	Error     string // Error messages
	Success   string // Success banners

	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary)
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// baseDark is the fixed chrome shared by every agent theme
var baseDark = Theme{
	Name:        "base",
	Bg:          "#1F2937",
	Text:        "#F9FAFB",
	TextMuted:   "#9CA3AF",
	TextInverse: "#1F2937",
	User:        "#E5E7EB",
	Warning:     "#F59E0B",
	Error:       "#EF4444",
	Success:     "#10B981",
	Border:      "#374151",
}

var currentTheme = baseDark

// CurrentTheme returns the active theme
func CurrentTheme() Theme {
	return currentTheme
}

// ThemeForAgent derives a full theme from an agent's two brand colors
func ThemeForAgent(a agent.Agent) Theme {
	t := baseDark
	t.Name = a.Name
	t.Primary = a.PrimaryColor
	t.Secondary = a.SecondaryColor
	t.Assistant = a.PrimaryColor
	return t
}

// ApplyAgentTheme switches the palette to the given agent's colors and
// regenerates all derived styles. Call from the update loop only.
func ApplyAgentTheme(a agent.Agent) {
	currentTheme = ThemeForAgent(a)
	regenerateStyles()
}
