package modals

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/guidelens/guidelens/internal/keys"
)

// HelpState shows the keyboard shortcut reference.
type HelpState struct {
	Sections     []HelpSection
	ScrollOffset int
	visibleLines int
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string {
	return "up/down: scroll  Esc: close"
}

// lines flattens the sections into display rows
func (s *HelpState) lines() []string {
	var out []string
	for i, section := range s.Sections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true).
			Render(section.Title))
		for _, sc := range section.Shortcuts {
			key := lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Width(12).
				Render(sc.Key)
			desc := lipgloss.NewStyle().
				Foreground(ColorText).
				Render(sc.Desc)
			out = append(out, "  "+key+desc)
		}
	}
	return out
}

func (s *HelpState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	lines := s.lines()
	end := s.ScrollOffset + s.visibleLines
	if end > len(lines) {
		end = len(lines)
	}
	body := strings.Join(lines[s.ScrollOffset:end], "\n")

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	maxOffset := len(s.lines()) - s.visibleLines
	if maxOffset < 0 {
		maxOffset = 0
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		if s.ScrollOffset > 0 {
			s.ScrollOffset--
		}
	case keys.Down, "j":
		if s.ScrollOffset < maxOffset {
			s.ScrollOffset++
		}
	}
	return s, nil
}

// DefaultHelpSections is the shortcut reference shown by the help modal
func DefaultHelpSections() []HelpSection {
	return []HelpSection{
		{
			Title: "General",
			Shortcuts: []HelpShortcut{
				{Key: "tab", Desc: "Switch between sidebar and chat"},
				{Key: "?", Desc: "Toggle this help"},
				{Key: "ctrl+o", Desc: "Settings"},
				{Key: "ctrl+c", Desc: "Quit"},
			},
		},
		{
			Title: "Chat",
			Shortcuts: []HelpShortcut{
				{Key: "enter", Desc: "Send message"},
				{Key: "ctrl+l", Desc: "Start a voice session"},
				{Key: "ctrl+y", Desc: "Copy the last reply"},
				{Key: "ctrl+v", Desc: "Paste image from clipboard"},
				{Key: "pgup/pgdn", Desc: "Scroll history"},
			},
		},
		{
			Title: "Sessions",
			Shortcuts: []HelpShortcut{
				{Key: "n", Desc: "New chat"},
				{Key: "R", Desc: "Rename chat"},
				{Key: "d", Desc: "Delete chat"},
				{Key: "a", Desc: "Open the guide's landing screen"},
			},
		},
		{
			Title: "Live sessions",
			Shortcuts: []HelpShortcut{
				{Key: "space", Desc: "Toggle microphone"},
				{Key: "m", Desc: "Mute (video call)"},
				{Key: "c", Desc: "Toggle camera (video call)"},
				{Key: "esc", Desc: "End the session"},
			},
		},
	}
}

// NewHelpState creates the help modal
func NewHelpState(visibleLines int) *HelpState {
	if visibleLines <= 0 {
		visibleLines = 20
	}
	return &HelpState{
		Sections:     DefaultHelpSections(),
		visibleLines: visibleLines,
	}
}
