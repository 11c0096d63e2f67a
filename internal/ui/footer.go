package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// FlashTickMsg dismisses a footer flash message. The generation strands
// ticks from flashes that have since been replaced.
type FlashTickMsg struct {
	Gen int
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer is the bottom bar: contextual keybindings, or a transient flash
// message that auto-dismisses after FlashDuration.
type Footer struct {
	width          int
	hasSession     bool
	sidebarFocused bool
	waiting        bool // agent response in flight
	voiceMode      bool
	videoMode      bool

	flash    string
	flashGen int
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasSession, sidebarFocused, waiting, voiceMode, videoMode bool) {
	f.hasSession = hasSession
	f.sidebarFocused = sidebarFocused
	f.waiting = waiting
	f.voiceMode = voiceMode
	f.videoMode = videoMode
}

// Flash shows a transient message in place of the keybindings and returns
// the command that dismisses it
func (f *Footer) Flash(message string) tea.Cmd {
	f.flash = message
	f.flashGen++
	gen := f.flashGen
	return tea.Tick(FlashDuration, func(time.Time) tea.Msg {
		return FlashTickMsg{Gen: gen}
	})
}

// HandleFlashTick clears the flash if the tick belongs to the current one
func (f *Footer) HandleFlashTick(msg FlashTickMsg) {
	if msg.Gen == f.flashGen {
		f.flash = ""
	}
}

// bindings picks the keybinding set for the current context
func (f *Footer) bindings() []KeyBinding {
	switch {
	case f.voiceMode:
		return []KeyBinding{
			{Key: "space", Desc: "mic"},
			{Key: "esc", Desc: "end session"},
		}
	case f.videoMode:
		return []KeyBinding{
			{Key: "m", Desc: "mute"},
			{Key: "c", Desc: "camera"},
			{Key: "esc", Desc: "end call"},
		}
	case f.sidebarFocused:
		return []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "enter", Desc: "open"},
			{Key: "n", Desc: "new chat"},
			{Key: "R", Desc: "rename"},
			{Key: "d", Desc: "delete"},
			{Key: "a", Desc: "switch agent"},
			{Key: "q", Desc: "quit"},
		}
	case f.waiting:
		return []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "pgup/dn", Desc: "scroll"},
		}
	case f.hasSession:
		return []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "tab", Desc: "switch pane"},
			{Key: "ctrl+l", Desc: "voice"},
			{Key: "ctrl+y", Desc: "copy reply"},
			{Key: "ctrl+o", Desc: "settings"},
			{Key: "?", Desc: "help"},
		}
	default:
		return []KeyBinding{
			{Key: "n", Desc: "new chat"},
			{Key: "tab", Desc: "switch pane"},
			{Key: "ctrl+o", Desc: "settings"},
			{Key: "q", Desc: "quit"},
		}
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flash != "" {
		return FooterStyle.Width(f.width).Render(FooterFlashStyle.Render(f.flash))
	}

	var parts []string
	for _, b := range f.bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterStyle.UnsetPadding().Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}
	sep := "  " + lipgloss.NewStyle().Foreground(ColorBorder).Render("|") + "  "
	content := strings.Join(parts, sep)
	return FooterStyle.Width(f.width).Render(content)
}
