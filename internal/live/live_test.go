package live

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestComputeVisualMode(t *testing.T) {
	tests := []struct {
		name         string
		state        State
		listening    bool
		speaking     bool
		processing   bool
		want         VisualMode
	}{
		{"disconnected idle", Disconnected, false, false, false, DisconnectedIdle},
		{"disconnected ignores flags", Disconnected, true, true, true, DisconnectedIdle},
		{"connecting", Connecting, false, false, false, ConnectingMode},
		{"disconnecting", Disconnecting, false, false, false, ConnectingMode},
		{"connected idle", Connected, false, false, false, ConnectedIdle},
		{"listening", Connected, true, false, false, Listening},
		{"speaking", Connected, false, true, false, Speaking},
		{"processing renders as speaking", Connected, false, false, true, Speaking},
		{"speaking wins over listening", Connected, true, true, false, Speaking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeVisualMode(tt.state, tt.listening, tt.speaking, tt.processing)
			if got != tt.want {
				t.Errorf("ComputeVisualMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestControlDisabled(t *testing.T) {
	// Disabled exactly in the two transitional states
	for _, s := range []State{Disconnected, Connected} {
		if ControlDisabled(s) {
			t.Errorf("Control should be enabled in %v", s)
		}
	}
	for _, s := range []State{Connecting, Disconnecting} {
		if !ControlDisabled(s) {
			t.Errorf("Control should be disabled in %v", s)
		}
	}
}

func TestTapIntentFor(t *testing.T) {
	tests := []struct {
		name      string
		state     State
		listening bool
		want      TapIntent
	}{
		{"disconnected starts session", Disconnected, false, TapStartSession},
		{"connected idle starts audio", Connected, false, TapStartAudio},
		{"connected listening stops audio", Connected, true, TapStopAudio},
		{"connecting is a no-op", Connecting, false, TapNone},
		{"disconnecting is a no-op", Disconnecting, false, TapNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TapIntentFor(tt.state, tt.listening); got != tt.want {
				t.Errorf("TapIntentFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMockManager_Lifecycle(t *testing.T) {
	m := NewMockManager()

	if m.State() != Disconnected {
		t.Fatalf("New manager should be Disconnected, got %v", m.State())
	}

	if err := m.StartSession(context.Background(), "chef", "free"); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if m.State() != Connected {
		t.Errorf("Expected Connected, got %v", m.State())
	}
	if m.StartSessionCalls != 1 {
		t.Errorf("Expected 1 StartSession call, got %d", m.StartSessionCalls)
	}

	m.StopSession()
	if m.State() != Disconnected {
		t.Errorf("Expected Disconnected after stop, got %v", m.State())
	}
}

func TestMockManager_StartSessionFailure_StaysDisconnected(t *testing.T) {
	m := NewMockManager()
	m.StartErr = errors.New("boom")

	if err := m.StartSession(context.Background(), "chef", "free"); err == nil {
		t.Fatal("StartSession should fail")
	}
	if m.State() != Disconnected {
		t.Errorf("State should remain Disconnected on failure, got %v", m.State())
	}
}

func TestMockManager_AudioInput(t *testing.T) {
	m := NewMockManager()

	// Audio before session fails
	if err := m.StartAudioInput(); err == nil {
		t.Error("StartAudioInput should fail when disconnected")
	}

	m.StartSession(context.Background(), "chef", "free")
	if err := m.StartAudioInput(); err != nil {
		t.Fatalf("StartAudioInput failed: %v", err)
	}

	m.StopAudioInput()

	// Resume works once mic has been used this session
	m.ResumeAudioInput()
	if m.ResumeAudioCalls != 1 {
		t.Errorf("Expected 1 ResumeAudioInput call, got %d", m.ResumeAudioCalls)
	}

	// Drain events; the last recording change should be true (resumed)
	var lastRecording *bool
	for {
		select {
		case ev := <-m.Events():
			if rc, ok := ev.(RecordingChanged); ok {
				v := rc.Recording
				lastRecording = &v
			}
			continue
		default:
		}
		break
	}
	if lastRecording == nil || !*lastRecording {
		t.Error("Resume should re-open the microphone")
	}
}

func TestMockManager_ResumeIsNoOpWhenMicNeverUsed(t *testing.T) {
	m := NewMockManager()
	m.StartSession(context.Background(), "chef", "free")

	m.ResumeAudioInput()

	// No RecordingChanged events should have been emitted
	for {
		select {
		case ev := <-m.Events():
			if _, ok := ev.(RecordingChanged); ok {
				t.Error("Resume should be a no-op before the mic was ever opened")
			}
			continue
		default:
		}
		break
	}
}

func TestMockManager_EmitsStateChanges(t *testing.T) {
	m := NewMockManager()
	m.StartSession(context.Background(), "chef", "free")

	ev := <-m.Events()
	sc, ok := ev.(StateChanged)
	if !ok {
		t.Fatalf("Expected StateChanged, got %T", ev)
	}
	if sc.State != Connected {
		t.Errorf("Expected Connected event, got %v", sc.State)
	}
}

func TestGeminiManager_AudioRequiresSession(t *testing.T) {
	g := NewGeminiManager("test-key", nil)

	if err := g.StartAudioInput(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected, got %v", err)
	}
	if err := g.SendAudio("data", "audio/pcm"); err == nil {
		t.Error("SendAudio should fail without a session")
	}

	// Stop/resume with no session must not panic or change state
	g.StopSession()
	g.StopAudioInput()
	g.ResumeAudioInput()
	if g.State() != Disconnected {
		t.Errorf("Expected Disconnected, got %v", g.State())
	}
}

func TestGeminiManager_LevelFromChunk(t *testing.T) {
	g := NewGeminiManager("test-key", nil)

	// Levels stay in [0,1] and rise with sustained large chunks
	first := g.levelFromChunk(fullLevelChunkBytes)
	second := g.levelFromChunk(fullLevelChunkBytes)
	if first <= 0 || first > 1 || second > 1 {
		t.Errorf("Levels out of range: %f, %f", first, second)
	}
	if second <= first {
		t.Errorf("Sustained audio should raise the smoothed level: %f then %f", first, second)
	}

	if g.levelFromChunk(0) >= second {
		t.Error("Silence should decay the level")
	}
}

func TestGeminiManager_HandleServerContent(t *testing.T) {
	g := NewGeminiManager("test-key", nil)

	g.handleServerContent(&serverContent{
		InputTranscription: &transcription{Text: "how do I "},
	})
	g.handleServerContent(&serverContent{
		InputTranscription: &transcription{Text: "fix this tap"},
	})
	g.handleServerContent(&serverContent{
		ModelTurn: &content{Parts: []part{{InlineData: &inlineData{MimeType: "audio/pcm", Data: "xxxx"}}}},
	})
	g.handleServerContent(&serverContent{TurnComplete: true})

	var (
		transcripts []Transcription
		playStates  []bool
		gotResponse bool
	)
	for {
		select {
		case ev := <-g.Events():
			switch e := ev.(type) {
			case Transcription:
				transcripts = append(transcripts, e)
			case PlayingChanged:
				playStates = append(playStates, e.Playing)
			case ResponseTime:
				gotResponse = true
			}
			continue
		default:
		}
		break
	}

	if len(transcripts) != 2 {
		t.Fatalf("Expected 2 transcription events, got %d", len(transcripts))
	}
	if !transcripts[0].IsUser || transcripts[1].Text != "how do I fix this tap" {
		t.Errorf("Transcript should accumulate user speech: %+v", transcripts)
	}
	if len(playStates) != 2 || !playStates[0] || playStates[1] {
		t.Errorf("Expected playing true then false, got %v", playStates)
	}
	if !gotResponse {
		t.Error("First audio chunk after user turn should report a response time")
	}
}

func TestClassifyEmotion(t *testing.T) {
	tests := []struct {
		text string
		want Emotion
	}{
		{"this is so frustrating, nothing works", EmotionFrustrated},
		{"I'm confused about the second step", EmotionConfused},
		{"thank you, that was great", EmotionHappy},
		{"what temperature for the oven", EmotionNeutral},
	}
	for _, tt := range tests {
		if got := classifyEmotion(tt.text); got != tt.want {
			t.Errorf("classifyEmotion(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestStateString(t *testing.T) {
	want := map[State]string{
		Disconnected:  "disconnected",
		Connecting:    "connecting",
		Connected:     "connected",
		Disconnecting: "disconnecting",
	}
	for s, str := range want {
		if s.String() != str {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), str)
		}
	}
}

func TestResponseTimeEventCarriesDuration(t *testing.T) {
	ev := ResponseTime{Duration: 1500 * time.Millisecond}
	if ev.Duration != 1500*time.Millisecond {
		t.Error("ResponseTime should carry its duration")
	}
}
