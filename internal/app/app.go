package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/guidelens/guidelens/internal/agent"
	"github.com/guidelens/guidelens/internal/auth"
	"github.com/guidelens/guidelens/internal/config"
	"github.com/guidelens/guidelens/internal/gen"
	"github.com/guidelens/guidelens/internal/live"
	"github.com/guidelens/guidelens/internal/logger"
	"github.com/guidelens/guidelens/internal/ui"
)

// defaultAuthBaseURL is the account service endpoint
const defaultAuthBaseURL = "https://api.guidelens.app"

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	catalog *agent.Catalog

	genClient gen.Client
	liveMgr   live.Manager
	authMgr   *auth.Manager

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	welcome *ui.Welcome
	voice   *ui.Voice
	video   *ui.Video

	screen Screen
	focus  Focus

	activeAgent   agent.Agent
	activeSession *config.Session
	sessionState  *SessionStateManager

	// Last transcripts of the running live session; persisted as voice
	// messages when the session ends
	liveUserText  string
	liveAgentText string

	pendingImage string // image path attached to the next message

	width  int
	height int
}

// StartupModalMsg is sent on app start to trigger the onboarding wizard
type StartupModalMsg struct{}

// GenerationResultMsg is sent when an agent reply generation completes
type GenerationResultMsg struct {
	SessionID string
	Gen       int
	Response  gen.Response
	Err       error
}

// AuthResultMsg is sent when a sign-in, registration, or reset finishes
type AuthResultMsg struct {
	Err error
}

// Options configures dependency injection for the app. Zero values fall
// back to the real implementations.
type Options struct {
	GenClient   gen.Client
	LiveManager live.Manager
	AuthBaseURL string
}

// New creates a new app model
func New(cfg *config.Config, version string, opts Options) *Model {
	catalog := agent.DefaultCatalog()

	m := &Model{
		config:       cfg,
		version:      version,
		catalog:      catalog,
		genClient:    opts.GenClient,
		liveMgr:      opts.LiveManager,
		header:       ui.NewHeader(),
		footer:       ui.NewFooter(),
		sidebar:      ui.NewSidebar(catalog),
		chat:         ui.NewChat(),
		modal:        ui.NewModal(),
		focus:        FocusSidebar,
		sessionState: NewSessionStateManager(),
	}

	if m.genClient == nil {
		m.rebuildGenClient()
	}
	if m.liveMgr == nil {
		m.liveMgr = live.NewGeminiManager(cfg.GetAPIKey(), func(agentID string) string {
			if a, ok := catalog.ByID(agentID); ok {
				return gen.SystemPrompt(a)
			}
			return ""
		})
	}

	baseURL := opts.AuthBaseURL
	if baseURL == "" {
		baseURL = defaultAuthBaseURL
	}
	m.authMgr = auth.NewManager(baseURL, cfg)

	// Active agent: the current session's, or the configured default
	m.activeAgent = catalog.Default()
	if a, ok := catalog.ByID(cfg.GetDefaultAgentID()); ok {
		m.activeAgent = a
	}
	if sess := cfg.CurrentSession(); sess != nil {
		if a, ok := catalog.ByID(sess.AgentID); ok {
			m.activeAgent = a
		}
	}
	m.applyAgent(m.activeAgent)

	m.sidebar.SetSessions(cfg.GetSessions())
	m.sidebar.SetFocused(true)

	return m
}

// rebuildGenClient picks the generation client for the current API key
func (m *Model) rebuildGenClient() {
	key := m.config.GetAPIKey()
	if key == "" {
		logger.Info("no API key configured, using offline guidance")
		m.genClient = gen.NewOfflineClient()
		return
	}
	client, err := gen.NewGeminiClient(context.Background(), key)
	if err != nil {
		logger.Error("gemini client init failed: %v", err)
		m.genClient = gen.NewOfflineClient()
		return
	}
	m.genClient = client
}

// applyAgent switches the active agent: theme, header, chat panel
func (m *Model) applyAgent(a agent.Agent) {
	m.activeAgent = a
	ui.ApplyAgentTheme(a)
	m.header.SetAgent(a.Name, a.Icon, a.Capabilities)
	m.chat.SetAgent(a)
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		return StartupModalMsg{}
	}
}

// openSession switches to a session and loads its history
func (m *Model) openSession(id string) tea.Cmd {
	if !m.config.SwitchToSession(id) {
		return nil
	}
	sess := m.config.GetSession(id)
	if sess == nil {
		return nil
	}
	m.activeSession = sess

	if a, ok := m.catalog.ByID(sess.AgentID); ok {
		m.applyAgent(a)
	}

	messages, err := config.LoadSessionMessages(sess.ID)
	if err != nil {
		logger.Error("loading messages for %s: %v", sess.ID, err)
	}
	m.chat.SetSession(sess.Name, messages)
	m.chat.SetWaiting(m.sessionState.IsWaiting(sess.ID))

	if state := m.sessionState.GetIfExists(sess.ID); state != nil {
		m.chat.SetInput(state.DraftInput)
	} else {
		m.chat.ClearInput()
	}

	m.sidebar.SetCurrentSession(sess.ID)
	m.sidebar.SelectSession(sess.ID)
	m.screen = ScreenChat
	m.setFocus(FocusChat)

	if err := m.config.Save(); err != nil {
		logger.Error("saving config: %v", err)
	}

	if m.chat.IsWaiting() {
		return ui.StopwatchTick()
	}
	return nil
}

// newSessionFor creates a session for an agent and opens it
func (m *Model) newSessionFor(agentID, name string) tea.Cmd {
	if name == "" {
		if a, ok := m.catalog.ByID(agentID); ok {
			name = fmt.Sprintf("%s · %s", a.Name, time.Now().Format("Jan 2 15:04"))
		}
	}
	sess := m.config.CreateNewSession(name, agentID, m.userID())
	m.sidebar.SetSessions(m.config.GetSessions())
	return m.openSession(sess.ID)
}

// userID identifies the message author: the signed-in account or local
func (m *Model) userID() string {
	if st := m.authMgr.State(); st.LoggedIn && st.User.ID != "" {
		return st.User.ID
	}
	return "local"
}

// setFocus moves keyboard focus between the sidebar and the chat panel
func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.sidebar.SetFocused(f == FocusSidebar)
	m.chat.SetFocused(f == FocusChat)
}

// toggleFocus flips between the panels
func (m *Model) toggleFocus() {
	if m.focus == FocusSidebar {
		m.setFocus(FocusChat)
	} else {
		m.setFocus(FocusSidebar)
	}
}

// saveDraft stashes the chat input for the active session
func (m *Model) saveDraft() {
	if m.activeSession != nil {
		m.sessionState.Get(m.activeSession.ID).DraftInput = m.chat.GetInput()
	}
}

// sendMessage sends the chat input to the active agent
func (m *Model) sendMessage() tea.Cmd {
	if m.activeSession == nil {
		return nil
	}
	text := m.chat.GetInput()
	if text == "" && m.pendingImage == "" {
		return nil
	}
	if m.sessionState.IsWaiting(m.activeSession.ID) {
		return m.footer.Flash("Still thinking — hang on")
	}

	userMsg := config.ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		FromUser:  true,
		Timestamp: time.Now(),
	}
	if m.pendingImage != "" {
		userMsg.ImagePaths = []string{m.pendingImage}
		m.pendingImage = ""
	}

	if _, err := m.config.AddMessageToCurrentSession(userMsg, ui.MaxSessionMessages); err != nil {
		logger.Error("persisting user message: %v", err)
	}

	m.chat.ClearInput()
	m.sessionState.Get(m.activeSession.ID).DraftInput = ""

	var cmds []tea.Cmd
	cmds = append(cmds, m.chat.AppendMessage(userMsg))

	genNum := m.sessionState.StartWaiting(m.activeSession.ID)
	m.chat.SetWaiting(true)
	cmds = append(cmds, ui.StopwatchTick())
	cmds = append(cmds, m.generateReply(m.activeSession.ID, genNum, userMsg))

	return tea.Batch(cmds...)
}

// generateReply runs a generation call off the update loop. A panic in the
// client surfaces as an error result rather than killing the program.
func (m *Model) generateReply(sessionID string, genNum int, userMsg config.ChatMessage) tea.Cmd {
	client := m.genClient
	a := m.activeAgent
	history := m.chat.Messages()
	opts := gen.Options{IncludeHistory: true, ImagePaths: userMsg.ImagePaths}

	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("generation panic: %v", r)
				msg = GenerationResultMsg{
					SessionID: sessionID,
					Gen:       genNum,
					Err:       fmt.Errorf("reply generation failed: %v", r),
				}
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		resp, err := client.GenerateContent(ctx, userMsg.Text, a, history, opts)
		return GenerationResultMsg{SessionID: sessionID, Gen: genNum, Response: resp, Err: err}
	}
}
