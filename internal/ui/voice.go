package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/guidelens/guidelens/internal/agent"
	"github.com/guidelens/guidelens/internal/live"
)

// SessionStartedMsg reports the result of a StartSession call
type SessionStartedMsg struct {
	Err error
}

// AudioStartTickMsg fires when the post-connect audio start comes due
type AudioStartTickMsg struct {
	Gen int
}

// MicResumeTickMsg fires when the post-speech mic resume debounce elapses
type MicResumeTickMsg struct {
	Gen int
}

// Voice is the live voice session overlay. It renders the session's visual
// mode and owns the turn-taking policy: when the agent stops speaking while
// the session is connected and the mic is user-enabled, the microphone
// re-opens after a short debounce. The debounce is generation-counted so
// the agent resuming speech, navigation away, or session end strands the
// pending resume.
type Voice struct {
	agent      agent.Agent
	tier       string
	micEnabled bool // User preference: auto-reopen the mic between turns

	state      live.State
	listening  bool
	speaking   bool
	processing bool
	level      float64

	transcript   *Transcript
	insight      string
	emotion      live.Emotion
	responseTime time.Duration
	errStatus    string

	startedAt time.Time

	resumeGen     int
	audioStartGen int

	width  int
	height int
}

// NewVoice creates the overlay for a session with the given agent
func NewVoice(a agent.Agent, tier string, micEnabled bool) *Voice {
	return &Voice{
		agent:      a,
		tier:       tier,
		micEnabled: micEnabled,
		state:      live.Disconnected,
		transcript: NewTranscript(),
	}
}

// SetSize updates the overlay dimensions
func (v *Voice) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Mode is the visual mode the overlay is currently rendering
func (v *Voice) Mode() live.VisualMode {
	return live.ComputeVisualMode(v.state, v.listening, v.speaking, v.processing)
}

// ControlDisabled reports whether the main control ignores input right now
func (v *Voice) ControlDisabled() bool {
	return live.ControlDisabled(v.state)
}

// Tap handles the main session control. In transitional states it is a
// no-op; otherwise it starts the session, or toggles audio input on a
// connected one.
func (v *Voice) Tap(mgr live.Manager) tea.Cmd {
	if v.ControlDisabled() {
		return nil
	}

	switch live.TapIntentFor(v.state, v.listening) {
	case live.TapStartSession:
		v.errStatus = ""
		agentID, tier := v.agent.ID, v.tier
		return func() tea.Msg {
			err := mgr.StartSession(context.Background(), agentID, tier)
			return SessionStartedMsg{Err: err}
		}
	case live.TapStartAudio:
		return func() tea.Msg {
			mgr.StartAudioInput()
			return nil
		}
	case live.TapStopAudio:
		return func() tea.Msg {
			mgr.StopAudioInput()
			return nil
		}
	default:
		return nil
	}
}

// HandleSessionStarted consumes the StartSession result. On success the
// microphone opens after a short delay; on failure the error shows inline
// and the session stays down.
func (v *Voice) HandleSessionStarted(msg SessionStartedMsg) tea.Cmd {
	if msg.Err != nil {
		v.errStatus = msg.Err.Error()
		return nil
	}

	v.startedAt = time.Now()
	v.audioStartGen++
	gen := v.audioStartGen
	return tea.Tick(MicResumeDelay, func(time.Time) tea.Msg {
		return AudioStartTickMsg{Gen: gen}
	})
}

// HandleAudioStartTick opens the microphone once the post-connect delay
// elapses, unless the session already went away
func (v *Voice) HandleAudioStartTick(msg AudioStartTickMsg, mgr live.Manager) tea.Cmd {
	if msg.Gen != v.audioStartGen || v.state != live.Connected {
		return nil
	}
	return func() tea.Msg {
		mgr.StartAudioInput()
		return nil
	}
}

// HandleEvent folds a session event into the overlay state. Returns timer
// commands for reveal animation and the mic-resume debounce.
func (v *Voice) HandleEvent(ev live.Event) tea.Cmd {
	switch e := ev.(type) {
	case live.StateChanged:
		v.state = e.State
		if e.State != live.Connected {
			// Any pending resume or audio start no longer applies
			v.resumeGen++
			v.audioStartGen++
			v.listening = false
			v.speaking = false
			v.processing = false
		}
		return nil

	case live.RecordingChanged:
		v.listening = e.Recording
		if e.Recording {
			// Mic opened, a pending resume is moot
			v.resumeGen++
		}
		return nil

	case live.PlayingChanged:
		wasSpeaking := v.speaking
		v.speaking = e.Playing
		if e.Playing {
			v.processing = false
			// Agent started (or resumed) speaking: strand any pending resume
			v.resumeGen++
			return nil
		}
		if wasSpeaking && v.state == live.Connected && v.micEnabled && !v.listening {
			return v.scheduleMicResume()
		}
		return nil

	case live.AudioLevel:
		v.level = e.Level
		return nil

	case live.Transcription:
		return v.transcript.SetText(e.Text, e.IsUser)

	case live.Insight:
		v.insight = e.Text
		return nil

	case live.EmotionalContext:
		v.emotion = e.Emotion
		return nil

	case live.ResponseTime:
		v.responseTime = e.Duration
		return nil

	case live.SessionError:
		v.errStatus = e.Message
		return nil
	}
	return nil
}

// scheduleMicResume starts the turn-taking debounce
func (v *Voice) scheduleMicResume() tea.Cmd {
	v.resumeGen++
	gen := v.resumeGen
	return tea.Tick(MicResumeDelay, func(time.Time) tea.Msg {
		return MicResumeTickMsg{Gen: gen}
	})
}

// HandleMicResumeTick re-opens the microphone when the debounce elapses.
// Stale ticks, disconnection, a disabled mic, or the mic already being open
// all make it a no-op.
func (v *Voice) HandleMicResumeTick(msg MicResumeTickMsg, mgr live.Manager) tea.Cmd {
	if msg.Gen != v.resumeGen {
		return nil
	}
	if v.state != live.Connected || !v.micEnabled || v.listening {
		return nil
	}
	return func() tea.Msg {
		mgr.ResumeAudioInput()
		return nil
	}
}

// SetMicEnabled toggles the user's auto-resume preference. Disabling also
// strands any pending resume.
func (v *Voice) SetMicEnabled(enabled bool) {
	v.micEnabled = enabled
	if !enabled {
		v.resumeGen++
	}
}

// MicEnabled returns the user's mic preference
func (v *Voice) MicEnabled() bool {
	return v.micEnabled
}

// Leave cancels all pending timers when the user navigates away. The
// caller decides whether to stop the session itself.
func (v *Voice) Leave() {
	v.resumeGen++
	v.audioStartGen++
	v.transcript.Reset()
}

// RevealTick forwards a typing-reveal tick to the transcript
func (v *Voice) RevealTick(msg RevealTickMsg) tea.Cmd {
	return v.transcript.HandleRevealTick(msg)
}

// DurationString is the elapsed session time as m:ss
func (v *Voice) DurationString() string {
	if v.startedAt.IsZero() || v.state != live.Connected {
		return ""
	}
	d := time.Since(v.startedAt).Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// modeGlyph is the icon for each visual mode
func modeGlyph(m live.VisualMode) string {
	switch m {
	case live.ConnectingMode:
		return "◌"
	case live.ConnectedIdle:
		return "●"
	case live.Listening:
		return "🎤"
	case live.Speaking:
		return "🔊"
	default:
		return "○"
	}
}

// renderMeter draws the audio level bar
func renderMeter(level float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(level * float64(width))
	if filled > width {
		filled = width
	}
	return MeterFilledStyle.Render(strings.Repeat("█", filled)) +
		MeterEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// View renders the overlay
func (v *Voice) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s Live with %s", v.agent.Icon, v.agent.Name)
	if d := v.DurationString(); d != "" {
		title += "  " + TimestampStyle.Render(d)
	}
	b.WriteString(OverlayTitleStyle.Render(title))
	b.WriteString("\n\n")

	mode := v.Mode()
	status := fmt.Sprintf("%s %s", modeGlyph(mode), mode.String())
	if v.ControlDisabled() {
		status += " …"
	}
	b.WriteString(OverlayStatusStyle.Render(status))
	b.WriteString("\n")

	b.WriteString(renderMeter(v.level, 24))
	b.WriteString("\n\n")

	if text := v.transcript.DisplayText(); text != "" {
		b.WriteString(TranscriptStyle.Render(text))
		b.WriteString("\n")
	}
	if v.insight != "" {
		b.WriteString(InsightStyle.Render("💡 " + v.insight))
		b.WriteString("\n")
	}
	if v.responseTime > 0 {
		b.WriteString(TimestampStyle.Render(fmt.Sprintf("response in %s", v.responseTime.Round(10*time.Millisecond))))
		b.WriteString("\n")
	}
	if v.errStatus != "" {
		b.WriteString(OverlayErrorStyle.Render(v.errStatus))
		b.WriteString("\n")
	}

	mic := "mic auto-resume off"
	if v.micEnabled {
		mic = "mic auto-resume on"
	}
	help := fmt.Sprintf("space: talk  m: %s  esc: end session", mic)
	b.WriteString("\n" + FooterStyle.Render(help))

	content := b.String()
	if v.width > 0 {
		content = lipgloss.NewStyle().Width(v.width - 4).Render(content)
	}
	return PanelFocusedStyle.Render(content)
}
