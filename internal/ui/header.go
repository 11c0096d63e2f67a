package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Header is the top bar: app title on the left, the active agent and its
// capabilities on the right.
type Header struct {
	width        int
	agentName    string
	agentIcon    string
	capabilities []string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetAgent sets the active agent shown on the right side
func (h *Header) SetAgent(name, icon string, capabilities []string) {
	h.agentName = name
	h.agentIcon = icon
	h.capabilities = capabilities
}

// View renders the header
func (h *Header) View() string {
	titleText := " guidelens"
	var rightText string
	if h.agentName != "" {
		rightText = h.agentIcon + " " + h.agentName
		if len(h.capabilities) > 0 {
			rightText += " (" + strings.Join(h.capabilities, ", ") + ")"
		}
		rightText += " "
	}

	paddingLen := h.width - len([]rune(titleText)) - len([]rune(rightText))
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText
	return h.renderGradient(fullContent)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background
// fading from the agent's primary color into the main background. The
// capability suffix is muted so the agent name stays prominent.
func (h *Header) renderGradient(content string) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	capStart := -1
	if len(h.capabilities) > 0 {
		capStart = strings.Index(content, "(")
	}

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		inCapabilities := capStart >= 0 && i >= capStart

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < len(" guidelens")) // Bold for the title

		if inCapabilities {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
