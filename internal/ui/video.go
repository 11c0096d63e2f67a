package ui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/guidelens/guidelens/internal/agent"
	"github.com/guidelens/guidelens/internal/live"
)

// Video is the live video call overlay. The terminal renders no camera
// frames; the overlay tracks call state (muted, video on/off, recording,
// duration) and drives the same session manager as the voice overlay.
type Video struct {
	agent agent.Agent

	muted        bool
	videoEnabled bool
	recording    bool
	active       bool
	startedAt    time.Time

	state live.State
	level float64

	width  int
	height int
}

// NewVideo creates the overlay for a call with the given agent
func NewVideo(a agent.Agent) *Video {
	return &Video{agent: a, videoEnabled: true}
}

// SetSize updates the overlay dimensions
func (v *Video) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// HandleEvent folds session events into the call state
func (v *Video) HandleEvent(ev live.Event) tea.Cmd {
	switch e := ev.(type) {
	case live.StateChanged:
		v.state = e.State
		switch e.State {
		case live.Connected:
			v.active = true
			v.startedAt = time.Now()
		case live.Disconnected:
			v.active = false
			v.recording = false
		}
	case live.AudioLevel:
		v.level = e.Level
	case live.RecordingChanged:
		v.recording = e.Recording
	}
	return nil
}

// ToggleMute flips the microphone mute flag
func (v *Video) ToggleMute() {
	v.muted = !v.muted
}

// ToggleVideo flips the camera flag
func (v *Video) ToggleVideo() {
	v.videoEnabled = !v.videoEnabled
}

// Active reports whether a call is in progress
func (v *Video) Active() bool {
	return v.active
}

// Muted reports the mute flag
func (v *Video) Muted() bool {
	return v.muted
}

// VideoEnabled reports the camera flag
func (v *Video) VideoEnabled() bool {
	return v.videoEnabled
}

// DurationString is the elapsed call time as m:ss, empty before connect
func (v *Video) DurationString() string {
	if !v.active || v.startedAt.IsZero() {
		return ""
	}
	d := time.Since(v.startedAt).Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// View renders the overlay
func (v *Video) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s Video call with %s", v.agent.Icon, v.agent.Name)
	if d := v.DurationString(); d != "" {
		title += "  " + TimestampStyle.Render(d)
	}
	b.WriteString(OverlayTitleStyle.Render(title))
	b.WriteString("\n\n")

	var flags []string
	if v.muted {
		flags = append(flags, "muted")
	}
	if !v.videoEnabled {
		flags = append(flags, "camera off")
	}
	if v.recording {
		flags = append(flags, "● rec")
	}
	status := v.state.String()
	if len(flags) > 0 {
		status += "  " + strings.Join(flags, "  ")
	}
	b.WriteString(OverlayStatusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(renderMeter(v.level, 24))
	b.WriteString("\n\n")
	b.WriteString(FooterStyle.Render("m: mute  c: camera  esc: end call"))

	return PanelFocusedStyle.Render(b.String())
}
