package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/guidelens/guidelens/internal/agent"
	"github.com/guidelens/guidelens/internal/config"
)

// StopwatchTickMsg is sent to update the waiting stopwatch display
type StopwatchTickMsg time.Time

// thinkingVerbs cycle in the waiting indicator while the agent responds
var thinkingVerbs = []string{
	"Thinking",
	"Pondering",
	"Considering",
	"Mulling it over",
	"Consulting the notes",
	"Sketching an answer",
	"Simmering",
	"Measuring twice",
}

func randomThinkingVerb() string {
	return thinkingVerbs[rand.Intn(len(thinkingVerbs))]
}

// Chat is the conversation panel: message history in a viewport over a
// text input. The message list enforces append-only id-keyed updates; the
// newest agent reply plays through the typing reveal.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	list     *MessageList
	reveal   *Transcript

	agent       agent.Agent
	sessionName string
	hasSession  bool
	focused     bool

	waitStartTime time.Time
	waitingVerb   string

	// Mouse text selection, in viewport coordinates
	selStartCol   int
	selStartLine  int
	selEndCol     int
	selEndLine    int
	selDragging   bool
	selFlashFrame int
	clickCount    int
	lastClickTime time.Time
	lastClickX    int
	lastClickY    int

	width  int
	height int
}

// NewChat creates the chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Ask your guide..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
		list:     NewMessageList(),
		reveal:   NewTranscript(),
	}
	c.ClearSelection()
	c.updateContent()
	return c
}

// SetAgent switches the panel to a new agent, cancelling any in-flight
// reveal so stale ticks can't touch the new conversation
func (c *Chat) SetAgent(a agent.Agent) {
	c.agent = a
	c.reveal.Reset()
	c.updateContent()
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	viewportHeight := height - TextareaHeight - 4 // panel borders
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	c.viewport.SetWidth(width - 2)
	c.viewport.SetHeight(viewportHeight)
	c.input.SetWidth(width - 4)
	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetSession loads a session's history into the panel
func (c *Chat) SetSession(name string, messages []config.ChatMessage) {
	c.sessionName = name
	c.hasSession = true
	c.list.SetMessages(messages)
	c.list.SetThinking(false)
	c.reveal.Reset()
	c.updateContent()
}

// ClearSession clears the panel
func (c *Chat) ClearSession() {
	c.sessionName = ""
	c.hasSession = false
	c.list.SetMessages(nil)
	c.list.SetThinking(false)
	c.reveal.Reset()
	c.updateContent()
}

// AppendMessage adds a message to the list. Duplicate IDs are ignored.
// Agent messages start the typing reveal; the returned command drives it
// plus the debounced auto-scroll.
func (c *Chat) AppendMessage(m config.ChatMessage) tea.Cmd {
	if !c.list.Append(m) {
		return nil
	}

	var cmds []tea.Cmd
	if !m.FromUser && !strings.HasPrefix(m.Text, ErrorPrefix) {
		if cmd := c.reveal.SetText(m.Text, false); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, c.list.ScheduleScroll())
	c.updateContent()
	return tea.Batch(cmds...)
}

// SetWaiting toggles the thinking indicator
func (c *Chat) SetWaiting(waiting bool) {
	c.list.SetThinking(waiting)
	if waiting {
		c.waitStartTime = time.Now()
		c.waitingVerb = randomThinkingVerb()
	}
	c.updateContent()
}

// IsWaiting reports whether the thinking indicator is showing
func (c *Chat) IsWaiting() bool {
	return c.list.Thinking()
}

// ScrollTarget exposes the list's auto-scroll target for the app
func (c *Chat) ScrollTarget() int {
	return c.list.ScrollTarget()
}

// HandleScrollTick consumes a debounced scroll tick
func (c *Chat) HandleScrollTick(msg ScrollTickMsg) {
	if c.list.HandleScrollTick(msg) {
		c.viewport.GotoBottom()
	}
}

// HandleRevealTick advances the agent reply reveal
func (c *Chat) HandleRevealTick(msg RevealTickMsg) tea.Cmd {
	cmd := c.reveal.HandleRevealTick(msg)
	c.updateContent()
	return cmd
}

// GetInput returns the trimmed input text
func (c *Chat) GetInput() string {
	return strings.TrimSpace(c.input.Value())
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput sets the input field value (used by feature prompts)
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// Messages returns the visible message list
func (c *Chat) Messages() []config.ChatMessage {
	return c.list.Messages()
}

// StopwatchTick drives the waiting stopwatch
func StopwatchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

// formatElapsed formats a duration as a stopwatch string (e.g., "1.2s", "1:23")
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// messageLabel renders the speaker line for a message
func (c *Chat) messageLabel(m config.ChatMessage) string {
	label := c.agent.Name
	style := AgentLabelStyle
	if m.FromUser {
		label = "You"
		style = UserLabelStyle
	}
	line := style.Render(label + ":")
	if m.IsVoice {
		line += " " + VoiceFlagStyle.Render("🎤")
	}
	if !m.Timestamp.IsZero() {
		line += " " + TimestampStyle.Render(m.DisplayTimestamp())
	}
	return line
}

// messageBody renders a message's text, applying the typing reveal to the
// newest agent message and error styling to synthetic error messages
func (c *Chat) messageBody(m config.ChatMessage, isLast bool, wrapWidth int) string {
	if strings.HasPrefix(m.Text, ErrorPrefix) {
		return ErrorMessageStyle.Render(m.Text)
	}

	text := m.Text
	if isLast && !m.FromUser && !c.reveal.Done() {
		text = c.reveal.DisplayText()
		return lipgloss.NewStyle().Width(wrapWidth).Render(text)
	}

	body := renderMarkdown(strings.TrimSpace(text), wrapWidth)
	if len(m.ImagePaths) > 0 {
		body += "\n" + TimestampStyle.Render(fmt.Sprintf("📎 %d image(s) attached", len(m.ImagePaths)))
	}
	if len(m.GeneratedImage) > 0 {
		body += "\n" + TimestampStyle.Render(fmt.Sprintf("🖼 image received (%d KB)", len(m.GeneratedImage)/1024))
	}
	return body
}

func (c *Chat) updateContent() {
	var sb strings.Builder

	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	messages := c.list.Messages()
	switch {
	case !c.hasSession:
		sb.WriteString(c.renderNoSessionMessage())
	case len(messages) == 0 && !c.list.Thinking():
		sb.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render(fmt.Sprintf("Start a conversation with %s...", c.agent.Name)))
	default:
		for i, m := range messages {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(c.messageLabel(m))
			sb.WriteString("\n")
			sb.WriteString(c.messageBody(m, i == len(messages)-1, wrapWidth))
		}

		if c.list.Thinking() {
			if len(messages) > 0 {
				sb.WriteString("\n\n")
			}
			elapsed := time.Since(c.waitStartTime)
			sb.WriteString(AgentLabelStyle.Render(c.agent.Name + ":"))
			sb.WriteString("\n")
			sb.WriteString(ThinkingStyle.Render(c.waitingVerb + "... "))
			sb.WriteString(lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render(formatElapsed(elapsed)))
		}
	}

	c.viewport.SetContent(sb.String())
}

func (c *Chat) renderNoSessionMessage() string {
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(msgStyle.Italic(true).Render("No chat yet"))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("n"))
	sb.WriteString(msgStyle.Render(" to start a new chat"))
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("tab"))
	sb.WriteString(msgStyle.Render(" to browse your sessions"))
	return sb.String()
}

// Update handles messages for the focused panel
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	switch m := msg.(type) {
	case StopwatchTickMsg:
		if c.list.Thinking() {
			c.updateContent()
			cmds = append(cmds, StopwatchTick())
		}
		return c, tea.Batch(cmds...)
	case SelectionFlashTickMsg:
		return c, c.HandleSelectionFlashTick()
	case tea.MouseClickMsg:
		// Panel coordinates → viewport coordinates (1-cell border)
		if m.Button == tea.MouseLeft {
			return c, c.handleMouseClick(m.X-1, m.Y-1)
		}
	case tea.MouseMotionMsg:
		c.ExtendSelection(m.X-1, m.Y-1)
		return c, nil
	case tea.MouseReleaseMsg:
		if m.Button == tea.MouseLeft && c.selDragging {
			c.StopSelection()
			return c, c.CopySelection()
		}
	}

	if c.focused && c.hasSession {
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			case "pgup", "pgdown", "home", "end", "ctrl+u", "ctrl+d":
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				cmds = append(cmds, cmd)
				return c, tea.Batch(cmds...)
			}
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)

		// Keys stop here while typing so space/arrows don't scroll
		if _, isKey := msg.(tea.KeyPressMsg); isKey {
			return c, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	title := c.sessionName
	if title == "" {
		title = "Chat"
	}

	chatPanel := panelStyle.
		Width(c.width).
		Height(c.height - TextareaHeight - 2).
		Render(PanelTitleStyle.Render(title) + "\n" + c.selectionView(c.viewport.View()))

	inputPanel := panelStyle.
		Width(c.width).
		Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputPanel)
}
