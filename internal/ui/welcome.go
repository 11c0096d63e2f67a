package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/guidelens/guidelens/internal/agent"
	"github.com/guidelens/guidelens/internal/feature"
	"github.com/guidelens/guidelens/internal/keys"
)

// FeatureChosenMsg asks the app to seed the chat input with a prompt
type FeatureChosenMsg struct {
	Prompt string
}

// StartVideoMsg asks the app to open a video session for the active agent
type StartVideoMsg struct{}

// Welcome is the agent landing screen: tagline, quick actions, and the
// feature area, which is either the collapsed grid or one expanded feature.
type Welcome struct {
	agent     agent.Agent
	selection feature.Selection
	cursor    int

	width  int
	height int
}

// NewWelcome creates the screen for an agent
func NewWelcome(a agent.Agent) *Welcome {
	return &Welcome{agent: a, selection: feature.NewSelection()}
}

// SetSize updates the screen dimensions
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// Expanded reports whether a feature detail view is showing
func (w *Welcome) Expanded() bool {
	return w.selection.IsExpanded()
}

// items is the navigable list: agent features then quick actions
func (w *Welcome) items() []feature.Feature {
	items := make([]feature.Feature, 0, len(w.agent.Features)+len(w.agent.QuickActions))
	items = append(items, w.agent.Features...)
	for _, qa := range w.agent.QuickActions {
		items = append(items, qa)
	}
	return items
}

// Update handles key input. Collapsed: navigate and select. Expanded:
// confirm, start video, or go back.
func (w *Welcome) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	key := keyMsg.String()

	if w.selection.IsExpanded() {
		switch key {
		case keys.Escape, keys.Backspace:
			w.selection.Back()
		case keys.Enter:
			prompt := feature.PromptFor(w.selection.Selected())
			w.selection.Back()
			return func() tea.Msg { return FeatureChosenMsg{Prompt: prompt} }
		case "v":
			if w.selection.ShowVideoButton() {
				w.selection.Back()
				return func() tea.Msg { return StartVideoMsg{} }
			}
		}
		return nil
	}

	items := w.items()
	switch key {
	case keys.Up, keys.Left:
		if w.cursor > 0 {
			w.cursor--
		}
	case keys.Down, keys.Right:
		if w.cursor < len(items)-1 {
			w.cursor++
		}
	case keys.Enter:
		if w.cursor < len(items) {
			f := items[w.cursor]
			if qa, isQuick := f.(feature.QuickAction); isQuick {
				// Quick actions skip the detail view and go straight to chat
				return func() tea.Msg { return FeatureChosenMsg{Prompt: qa.Label} }
			}
			w.selection.Select(f, w.agent.ShowVideoFor(f))
		}
	}
	return nil
}

// View renders the screen
func (w *Welcome) View() string {
	if w.selection.IsExpanded() {
		return w.viewExpanded()
	}
	return w.viewGrid()
}

func (w *Welcome) viewGrid() string {
	var b strings.Builder

	b.WriteString(OverlayTitleStyle.Render(fmt.Sprintf("%s %s", w.agent.Icon, w.agent.Name)))
	b.WriteString("\n")
	b.WriteString(WelcomeTaglineStyle.Render(w.agent.Tagline))
	b.WriteString("\n\n")

	items := w.items()
	var cards []string
	for i, f := range items {
		style := FeatureCardStyle
		if i == w.cursor {
			style = FeatureCardSelectedStyle
		}
		label := fmt.Sprintf("%s %s", f.Icon(), f.Title())
		if _, isQuick := f.(feature.QuickAction); isQuick {
			label = QuickActionStyle.Render("⚡ " + f.Title())
		}
		cards = append(cards, style.Render(label))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))

	b.WriteString("\n" + FooterStyle.Render("↑/↓: choose  enter: open"))
	return b.String()
}

// viewExpanded renders the single-feature detail. The switch over variants
// is exhaustive; each variant shows its own fields.
func (w *Welcome) viewExpanded() string {
	f := w.selection.Selected()

	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render(fmt.Sprintf("%s %s", f.Icon(), f.Title())))
	b.WriteString("\n\n")
	b.WriteString(f.Description())
	b.WriteString("\n")

	switch v := f.(type) {
	case feature.CookingFeature:
		if v.Example != "" {
			b.WriteString(TimestampStyle.Render("e.g. \"" + v.Example + "\""))
			b.WriteString("\n")
		}
	case feature.CraftingProject:
		b.WriteString(TimestampStyle.Render("difficulty: " + v.Difficulty))
		b.WriteString("\n")
		if len(v.Materials) > 0 {
			b.WriteString("materials: " + strings.Join(v.Materials, ", "))
			b.WriteString("\n")
		}
	case feature.FriendshipTool:
		b.WriteString(TimestampStyle.Render("mood: " + v.Mood))
		b.WriteString("\n")
	case feature.DIYCategory:
		if len(v.ToolsList) > 0 {
			b.WriteString("typical tools: " + strings.Join(v.ToolsList, ", "))
			b.WriteString("\n")
		}
	case feature.QuickAction:
		// Quick actions never reach the detail view
	}

	help := "enter: ask about this  esc: back"
	if w.selection.ShowVideoButton() {
		help = "enter: ask about this  v: live video  esc: back"
	}
	b.WriteString("\n" + FooterStyle.Render(help))

	return FeatureCardSelectedStyle.Render(b.String())
}
