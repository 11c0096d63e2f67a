package live

// Wire frames for the Gemini Live bidirectional websocket API
// (BidiGenerateContent). Only the fields this client reads or writes are
// modeled; unknown fields are ignored on decode.

// setupFrame is the first client message on a new connection
type setupFrame struct {
	Setup setupPayload `json:"setup"`
}

type setupPayload struct {
	Model              string            `json:"model"`
	GenerationConfig   *generationConfig `json:"generationConfig,omitempty"`
	SystemInstruction  *content          `json:"systemInstruction,omitempty"`
	InputTranscription *struct{}         `json:"inputAudioTranscription,omitempty"`
	OutputTranscript   *struct{}         `json:"outputAudioTranscription,omitempty"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type content struct {
	Parts []part `json:"parts,omitempty"`
	Role  string `json:"role,omitempty"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"` // base64 payload
}

// realtimeInputFrame streams microphone audio to the agent
type realtimeInputFrame struct {
	RealtimeInput realtimeInput `json:"realtimeInput"`
}

type realtimeInput struct {
	Audio         *inlineData `json:"audio,omitempty"`
	ActivityStart *struct{}   `json:"activityStart,omitempty"`
	ActivityEnd   *struct{}   `json:"activityEnd,omitempty"`
}

// serverFrame is the union of messages the server sends
type serverFrame struct {
	SetupComplete *struct{}      `json:"setupComplete,omitempty"`
	ServerContent *serverContent `json:"serverContent,omitempty"`
}

type serverContent struct {
	ModelTurn           *content       `json:"modelTurn,omitempty"`
	TurnComplete        bool           `json:"turnComplete,omitempty"`
	Interrupted         bool           `json:"interrupted,omitempty"`
	InputTranscription  *transcription `json:"inputTranscription,omitempty"`
	OutputTranscription *transcription `json:"outputTranscription,omitempty"`
}

type transcription struct {
	Text string `json:"text,omitempty"`
}
