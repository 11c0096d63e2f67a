package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/guidelens/guidelens/internal/agent"
	"github.com/guidelens/guidelens/internal/live"
)

func testAgent() agent.Agent {
	a, _ := agent.DefaultCatalog().ByID(agent.ChefID)
	return a
}

// run executes a command synchronously, returning its message
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestVoice_TapStartsSessionOnce(t *testing.T) {
	mgr := live.NewMockManager()
	v := NewVoice(testAgent(), "free", true)

	msg := run(v.Tap(mgr))
	started, ok := msg.(SessionStartedMsg)
	if !ok {
		t.Fatalf("Expected SessionStartedMsg, got %T", msg)
	}
	if started.Err != nil {
		t.Fatalf("StartSession failed: %v", started.Err)
	}
	if mgr.StartSessionCalls != 1 {
		t.Errorf("Expected exactly 1 StartSession call, got %d", mgr.StartSessionCalls)
	}
	if mgr.StartAudioCalls != 0 {
		t.Error("Audio must not start before the post-connect delay")
	}

	// Session result schedules the audio start; the tick opens the mic
	v.HandleEvent(live.StateChanged{State: live.Connected})
	if cmd := v.HandleSessionStarted(started); cmd == nil {
		t.Fatal("Successful start should schedule audio start")
	}
	run(v.HandleAudioStartTick(AudioStartTickMsg{Gen: 1}, mgr))
	if mgr.StartAudioCalls != 1 {
		t.Errorf("Expected 1 StartAudioInput call after delay, got %d", mgr.StartAudioCalls)
	}
}

func TestVoice_TapDisabledWhileTransitional(t *testing.T) {
	mgr := live.NewMockManager()
	v := NewVoice(testAgent(), "free", true)

	for _, s := range []live.State{live.Connecting, live.Disconnecting} {
		v.HandleEvent(live.StateChanged{State: s})
		if !v.ControlDisabled() {
			t.Errorf("Control should be disabled in %v", s)
		}
		if cmd := v.Tap(mgr); cmd != nil {
			t.Errorf("Tap in %v should be a no-op", s)
		}
	}
	if mgr.StartSessionCalls != 0 {
		t.Error("No session calls should have happened")
	}
}

func TestVoice_TapTogglesAudioWhenConnected(t *testing.T) {
	mgr := live.NewMockManager()
	mgr.SetState(live.Connected)
	v := NewVoice(testAgent(), "free", true)
	v.HandleEvent(live.StateChanged{State: live.Connected})

	run(v.Tap(mgr))
	if mgr.StartAudioCalls != 1 {
		t.Fatalf("Tap while idle should start audio, calls=%d", mgr.StartAudioCalls)
	}

	v.HandleEvent(live.RecordingChanged{Recording: true})
	run(v.Tap(mgr))
	if mgr.StopAudioCalls != 1 {
		t.Errorf("Tap while listening should stop audio, calls=%d", mgr.StopAudioCalls)
	}
}

func TestVoice_SessionStartFailureStaysDown(t *testing.T) {
	v := NewVoice(testAgent(), "free", true)

	cmd := v.HandleSessionStarted(SessionStartedMsg{Err: live.ErrNotConnected})
	if cmd != nil {
		t.Error("Failed start should not schedule audio")
	}
	if v.errStatus == "" {
		t.Error("Failure should surface as inline status")
	}
	if v.state != live.Disconnected {
		t.Errorf("State should remain Disconnected, got %v", v.state)
	}
	if !strings.Contains(v.View(), v.errStatus) {
		t.Error("View should render the error status")
	}
}

func TestVoice_MicResumesOnceAfterAgentStopsSpeaking(t *testing.T) {
	mgr := live.NewMockManager()
	mgr.StartSession(nil, "chef", "free")
	mgr.StartAudioInput() // mic used this session
	mgr.StopAudioInput()

	v := NewVoice(testAgent(), "free", true)
	v.HandleEvent(live.StateChanged{State: live.Connected})

	// Agent speaks, then stops: resume is scheduled but not yet run
	v.HandleEvent(live.PlayingChanged{Playing: true})
	cmd := v.HandleEvent(live.PlayingChanged{Playing: false})
	if cmd == nil {
		t.Fatal("Speaking true→false should schedule the mic resume")
	}
	if mgr.ResumeAudioCalls != 0 {
		t.Error("Resume must not fire before the debounce elapses")
	}

	// The debounce tick fires the resume exactly once
	run(v.HandleMicResumeTick(MicResumeTickMsg{Gen: v.resumeGen}, mgr))
	if mgr.ResumeAudioCalls != 1 {
		t.Errorf("Expected exactly 1 ResumeAudioInput, got %d", mgr.ResumeAudioCalls)
	}

	// A stale tick does nothing
	run(v.HandleMicResumeTick(MicResumeTickMsg{Gen: v.resumeGen - 1}, mgr))
	if mgr.ResumeAudioCalls != 1 {
		t.Errorf("Stale tick should not resume again, got %d", mgr.ResumeAudioCalls)
	}
}

func TestVoice_NoResumeWhenMicDisabled(t *testing.T) {
	v := NewVoice(testAgent(), "free", false)
	v.HandleEvent(live.StateChanged{State: live.Connected})

	v.HandleEvent(live.PlayingChanged{Playing: true})
	if cmd := v.HandleEvent(live.PlayingChanged{Playing: false}); cmd != nil {
		t.Error("No resume should be scheduled when the mic preference is off")
	}
}

func TestVoice_AgentResumingSpeechCancelsPendingResume(t *testing.T) {
	mgr := live.NewMockManager()
	v := NewVoice(testAgent(), "free", true)
	v.HandleEvent(live.StateChanged{State: live.Connected})

	v.HandleEvent(live.PlayingChanged{Playing: true})
	v.HandleEvent(live.PlayingChanged{Playing: false})
	pendingGen := v.resumeGen

	// Agent starts speaking again before the debounce lands
	v.HandleEvent(live.PlayingChanged{Playing: true})

	run(v.HandleMicResumeTick(MicResumeTickMsg{Gen: pendingGen}, mgr))
	if mgr.ResumeAudioCalls != 0 {
		t.Error("Resume scheduled before the agent resumed speaking must be stranded")
	}
}

func TestVoice_DisconnectCancelsPendingResume(t *testing.T) {
	mgr := live.NewMockManager()
	v := NewVoice(testAgent(), "free", true)
	v.HandleEvent(live.StateChanged{State: live.Connected})

	v.HandleEvent(live.PlayingChanged{Playing: true})
	v.HandleEvent(live.PlayingChanged{Playing: false})
	pendingGen := v.resumeGen

	v.HandleEvent(live.StateChanged{State: live.Disconnected})

	run(v.HandleMicResumeTick(MicResumeTickMsg{Gen: pendingGen}, mgr))
	if mgr.ResumeAudioCalls != 0 {
		t.Error("Disconnect must strand the pending resume")
	}
}

func TestVoice_LeaveCancelsTimers(t *testing.T) {
	mgr := live.NewMockManager()
	v := NewVoice(testAgent(), "free", true)
	v.HandleEvent(live.StateChanged{State: live.Connected})
	v.HandleEvent(live.PlayingChanged{Playing: true})
	v.HandleEvent(live.PlayingChanged{Playing: false})
	pendingResume := v.resumeGen

	v.Leave()

	run(v.HandleMicResumeTick(MicResumeTickMsg{Gen: pendingResume}, mgr))
	if mgr.ResumeAudioCalls != 0 {
		t.Error("Leaving the overlay must strand pending timers")
	}
}

func TestVoice_VisualModeFollowsEvents(t *testing.T) {
	v := NewVoice(testAgent(), "free", true)

	if v.Mode() != live.DisconnectedIdle {
		t.Errorf("Initial mode = %v", v.Mode())
	}
	v.HandleEvent(live.StateChanged{State: live.Connecting})
	if v.Mode() != live.ConnectingMode {
		t.Errorf("Connecting mode = %v", v.Mode())
	}
	v.HandleEvent(live.StateChanged{State: live.Connected})
	if v.Mode() != live.ConnectedIdle {
		t.Errorf("Connected idle mode = %v", v.Mode())
	}
	v.HandleEvent(live.RecordingChanged{Recording: true})
	if v.Mode() != live.Listening {
		t.Errorf("Listening mode = %v", v.Mode())
	}
	v.HandleEvent(live.PlayingChanged{Playing: true})
	if v.Mode() != live.Speaking {
		t.Errorf("Speaking mode = %v", v.Mode())
	}
}

func TestVoice_TranscriptionFlowsToPresenter(t *testing.T) {
	v := NewVoice(testAgent(), "free", true)
	v.HandleEvent(live.StateChanged{State: live.Connected})

	// User speech shows immediately
	v.HandleEvent(live.Transcription{Text: "how long do I boil eggs", IsUser: true})
	if !strings.Contains(v.View(), "how long do I boil eggs") {
		t.Error("User transcription should render immediately")
	}

	// Agent speech reveals gradually
	cmd := v.HandleEvent(live.Transcription{Text: "about seven minutes", IsUser: false})
	if cmd == nil {
		t.Error("Agent transcription should schedule a reveal")
	}
}

func TestRenderMeter_Bounds(t *testing.T) {
	for _, level := range []float64{0, 0.5, 1, 1.5} {
		bar := renderMeter(level, 10)
		if bar == "" {
			t.Errorf("Meter empty at level %f", level)
		}
	}
}
