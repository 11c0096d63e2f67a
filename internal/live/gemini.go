package live

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/guidelens/guidelens/internal/logger"
)

const (
	liveEndpoint = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"

	// Live models by tier
	freeLiveModel    = "models/gemini-2.0-flash-live-001"
	premiumLiveModel = "models/gemini-2.5-flash-native-audio-preview-09-2025"

	pingInterval   = 20 * time.Second
	writeTimeout   = 10 * time.Second
	connectTimeout = 15 * time.Second

	// Inbound audio chunk size that maps to full level on the meter
	fullLevelChunkBytes = 8192
)

// GeminiManager runs live sessions over the Gemini bidirectional
// websocket API. One session at a time; events flow on a single channel
// that outlives individual sessions.
type GeminiManager struct {
	apiKey    string
	promptFor func(agentID string) string

	mu        sync.Mutex
	state     State
	conn      *websocket.Conn
	writeMu   sync.Mutex // gorilla allows one concurrent writer
	recording bool
	micUsed   bool // mic was opened at least once this session
	done      chan struct{}

	events chan Event

	// Per-turn tracking, owned by the read loop
	agentTranscript strings.Builder
	userTranscript  strings.Builder
	turnStarted     time.Time
	playing         bool
	level           float64

	log interface {
		Info(msg string, args ...any)
		Warn(msg string, args ...any)
		Debug(msg string, args ...any)
	}
}

// NewGeminiManager creates a manager. promptFor builds the system
// instruction for an agent ID; nil means no system instruction.
func NewGeminiManager(apiKey string, promptFor func(agentID string) string) *GeminiManager {
	return &GeminiManager{
		apiKey:    apiKey,
		promptFor: promptFor,
		state:     Disconnected,
		events:    make(chan Event, 64),
		log:       logger.ComponentLogger("Live"),
	}
}

// Events returns the manager's event stream
func (g *GeminiManager) Events() <-chan Event {
	return g.events
}

// State returns the current lifecycle state
func (g *GeminiManager) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// StartSession dials the live endpoint and sends the setup frame.
// On any failure the state is restored to Disconnected.
func (g *GeminiManager) StartSession(ctx context.Context, agentID, tier string) error {
	g.mu.Lock()
	if g.state != Disconnected {
		g.mu.Unlock()
		return fmt.Errorf("live: session already %s", g.state)
	}
	g.setStateLocked(Connecting)
	g.mu.Unlock()

	model := freeLiveModel
	if tier == "premium" {
		model = premiumLiveModel
	}

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	dialer := websocket.Dialer{HandshakeTimeout: connectTimeout}
	url := liveEndpoint + "?key=" + g.apiKey
	conn, resp, err := dialer.DialContext(dialCtx, url, http.Header{})
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		g.mu.Lock()
		g.setStateLocked(Disconnected)
		g.mu.Unlock()
		return fmt.Errorf("live: dial failed: %w", err)
	}

	setup := setupFrame{Setup: setupPayload{
		Model:              model,
		GenerationConfig:   &generationConfig{ResponseModalities: []string{"AUDIO"}},
		InputTranscription: &struct{}{},
		OutputTranscript:   &struct{}{},
	}}
	if g.promptFor != nil {
		if prompt := g.promptFor(agentID); prompt != "" {
			setup.Setup.SystemInstruction = &content{Parts: []part{{Text: prompt}}}
		}
	}

	if err := g.writeJSON(conn, setup); err != nil {
		conn.Close()
		g.mu.Lock()
		g.setStateLocked(Disconnected)
		g.mu.Unlock()
		return fmt.Errorf("live: setup failed: %w", err)
	}

	g.mu.Lock()
	g.conn = conn
	g.recording = false
	g.micUsed = false
	g.done = make(chan struct{})
	g.setStateLocked(Connected)
	done := g.done
	g.mu.Unlock()

	g.log.Info("Live session started", "agentID", agentID, "model", model)

	go g.readLoop(conn, done)
	go g.pingLoop(conn, done)

	return nil
}

// StopSession tears down the current session. Safe to call when idle.
func (g *GeminiManager) StopSession() {
	g.mu.Lock()
	if g.state != Connected && g.state != Connecting {
		g.mu.Unlock()
		return
	}
	g.setStateLocked(Disconnecting)
	conn := g.conn
	done := g.done
	g.conn = nil
	g.done = nil
	g.mu.Unlock()

	if done != nil {
		close(done)
	}
	if conn != nil {
		deadline := time.Now().Add(writeTimeout)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		g.writeMu.Lock()
		conn.WriteControl(websocket.CloseMessage, msg, deadline)
		g.writeMu.Unlock()
		conn.Close()
	}

	g.mu.Lock()
	g.recording = false
	g.setStateLocked(Disconnected)
	g.mu.Unlock()
	g.emit(RecordingChanged{Recording: false})
	g.emit(PlayingChanged{Playing: false})
	g.emit(AudioLevel{Level: 0})
	g.log.Info("Live session stopped")
}

// StartAudioInput opens the microphone stream
func (g *GeminiManager) StartAudioInput() error {
	g.mu.Lock()
	if g.state != Connected || g.conn == nil {
		g.mu.Unlock()
		return ErrNotConnected
	}
	conn := g.conn
	g.recording = true
	g.micUsed = true
	g.mu.Unlock()

	frame := realtimeInputFrame{RealtimeInput: realtimeInput{ActivityStart: &struct{}{}}}
	if err := g.writeJSON(conn, frame); err != nil {
		g.mu.Lock()
		g.recording = false
		g.mu.Unlock()
		return fmt.Errorf("live: start audio failed: %w", err)
	}

	g.emit(RecordingChanged{Recording: true})
	return nil
}

// StopAudioInput closes the microphone stream
func (g *GeminiManager) StopAudioInput() {
	g.mu.Lock()
	if !g.recording || g.conn == nil {
		g.mu.Unlock()
		return
	}
	conn := g.conn
	g.recording = false
	g.mu.Unlock()

	frame := realtimeInputFrame{RealtimeInput: realtimeInput{ActivityEnd: &struct{}{}}}
	if err := g.writeJSON(conn, frame); err != nil {
		g.log.Warn("Stop audio write failed", "err", err)
	}
	g.emit(RecordingChanged{Recording: false})
}

// ResumeAudioInput re-opens the microphone after the agent's turn. No-op
// unless connected and the mic was already used this session.
func (g *GeminiManager) ResumeAudioInput() {
	g.mu.Lock()
	resume := g.state == Connected && g.micUsed && !g.recording
	g.mu.Unlock()

	if !resume {
		return
	}
	if err := g.StartAudioInput(); err != nil {
		g.log.Warn("Audio resume failed", "err", err)
	}
}

// SendAudio streams a chunk of PCM microphone audio (base64 payload)
func (g *GeminiManager) SendAudio(data, mimeType string) error {
	g.mu.Lock()
	if g.state != Connected || g.conn == nil || !g.recording {
		g.mu.Unlock()
		return fmt.Errorf("live: audio input not active")
	}
	conn := g.conn
	g.mu.Unlock()

	frame := realtimeInputFrame{RealtimeInput: realtimeInput{
		Audio: &inlineData{MimeType: mimeType, Data: data},
	}}
	return g.writeJSON(conn, frame)
}

// Close shuts the manager down for good and closes the event stream
func (g *GeminiManager) Close() {
	g.StopSession()
	close(g.events)
}

// setStateLocked transitions state and emits. Caller holds g.mu.
func (g *GeminiManager) setStateLocked(s State) {
	if g.state == s {
		return
	}
	g.state = s
	g.emit(StateChanged{State: s})
}

// emit delivers an event without blocking the caller. Every event carries
// its full latest value, so dropping one under backpressure loses nothing
// the next event won't restate.
func (g *GeminiManager) emit(ev Event) {
	select {
	case g.events <- ev:
	default:
		g.log.Debug("Event dropped under backpressure")
	}
}

func (g *GeminiManager) writeJSON(conn *websocket.Conn, v any) error {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(v)
}

// pingLoop keeps the websocket alive while the session is up
func (g *GeminiManager) pingLoop(conn *websocket.Conn, done chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(writeTimeout)
			g.writeMu.Lock()
			err := conn.WriteControl(websocket.PingMessage, nil, deadline)
			g.writeMu.Unlock()
			if err != nil {
				g.log.Warn("Ping failed", "err", err)
				return
			}
		}
	}
}

// readLoop decodes server frames into events until the connection drops
func (g *GeminiManager) readLoop(conn *websocket.Conn, done chan struct{}) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-done:
				// Deliberate shutdown; StopSession handles state
			default:
				g.log.Warn("Read loop ended", "err", err)
				g.emit(SessionError{Message: "connection lost"})
				g.StopSession()
			}
			return
		}

		var frame serverFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			g.log.Debug("Undecodable server frame", "err", err)
			continue
		}
		if frame.ServerContent != nil {
			g.handleServerContent(frame.ServerContent)
		}
	}
}

func (g *GeminiManager) handleServerContent(sc *serverContent) {
	if sc.InputTranscription != nil && sc.InputTranscription.Text != "" {
		g.userTranscript.WriteString(sc.InputTranscription.Text)
		text := g.userTranscript.String()
		g.emit(Transcription{Text: text, IsUser: true})
		if e := classifyEmotion(text); e != EmotionNeutral {
			g.emit(EmotionalContext{Emotion: e})
		}
		if g.turnStarted.IsZero() {
			g.turnStarted = time.Now()
		}
	}

	if sc.OutputTranscription != nil && sc.OutputTranscription.Text != "" {
		g.agentTranscript.WriteString(sc.OutputTranscription.Text)
		g.emit(Transcription{Text: g.agentTranscript.String(), IsUser: false})
	}

	if sc.ModelTurn != nil {
		for _, p := range sc.ModelTurn.Parts {
			if p.InlineData != nil {
				if !g.playing {
					g.playing = true
					g.emit(PlayingChanged{Playing: true})
					if !g.turnStarted.IsZero() {
						g.emit(ResponseTime{Duration: time.Since(g.turnStarted)})
						g.turnStarted = time.Time{}
					}
				}
				g.emit(AudioLevel{Level: g.levelFromChunk(len(p.InlineData.Data))})
			}
			// A text part during an audio session is a contextual note
			if p.Text != "" {
				g.emit(Insight{Text: p.Text})
			}
		}
	}

	if sc.TurnComplete || sc.Interrupted {
		if g.playing {
			g.playing = false
			g.emit(PlayingChanged{Playing: false})
		}
		g.emit(AudioLevel{Level: 0})
		g.level = 0
		g.agentTranscript.Reset()
		g.userTranscript.Reset()
	}
}

// levelFromChunk synthesizes a meter level from inbound audio chunk sizes,
// smoothed so the meter doesn't flicker
func (g *GeminiManager) levelFromChunk(chunkBytes int) float64 {
	raw := float64(chunkBytes) / fullLevelChunkBytes
	if raw > 1 {
		raw = 1
	}
	g.level = 0.6*g.level + 0.4*raw
	return g.level
}

// classifyEmotion does a coarse keyword pass over the user's transcript.
// Good enough to tint the overlay; not a sentiment model.
func classifyEmotion(text string) Emotion {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "frustrat") || strings.Contains(t, "annoy") ||
		strings.Contains(t, "ugh") || strings.Contains(t, "not working"):
		return EmotionFrustrated
	case strings.Contains(t, "confus") || strings.Contains(t, "don't understand") ||
		strings.Contains(t, "what do you mean"):
		return EmotionConfused
	case strings.Contains(t, "thank") || strings.Contains(t, "great") ||
		strings.Contains(t, "love it") || strings.Contains(t, "awesome"):
		return EmotionHappy
	default:
		return EmotionNeutral
	}
}
