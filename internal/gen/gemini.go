package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/genai"

	"github.com/guidelens/guidelens/internal/agent"
	"github.com/guidelens/guidelens/internal/config"
	"github.com/guidelens/guidelens/internal/errors"
	"github.com/guidelens/guidelens/internal/logger"
)

const defaultModel = "gemini-2.0-flash"

// How many prior messages to fold into the prompt when history is requested
const historyWindow = 20

// GeminiClient generates responses with the Gemini API. A single client is
// shared by all sessions; the per-call agent decides the system instruction.
type GeminiClient struct {
	client  *genai.Client
	model   string
	offline *OfflineClient // Fallback when ForceOffline is set
}

// NewGeminiClient creates a client for the given API key
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gen: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gen: failed to create client: %w", err)
	}
	return &GeminiClient{
		client:  client,
		model:   defaultModel,
		offline: NewOfflineClient(),
	}, nil
}

// GenerateContent produces one reply. Errors come back wrapped; the caller
// turns them into error chat messages, never a crash.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, a agent.Agent, history []config.ChatMessage, opts Options) (Response, error) {
	if opts.ForceOffline {
		return c.offline.GenerateContent(ctx, prompt, a, history, opts)
	}

	contents, err := buildContents(prompt, history, opts)
	if err != nil {
		return Response{}, errors.GenerationFailed(a.ID, err)
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt(a), genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return Response{}, errors.GenerationFailed(a.ID, err)
	}

	resp, err := extractResponse(result)
	if err != nil {
		return Response{}, errors.GenerationFailed(a.ID, err)
	}

	logger.Debug("Generated %d chars for agent %s", len(resp.Text), a.ID)
	return resp, nil
}

// buildContents assembles the conversation to send: optional history window,
// then the prompt with any image attachments
func buildContents(prompt string, history []config.ChatMessage, opts Options) ([]*genai.Content, error) {
	var contents []*genai.Content

	if opts.IncludeHistory {
		msgs := history
		if len(msgs) > historyWindow {
			msgs = msgs[len(msgs)-historyWindow:]
		}
		for _, m := range msgs {
			var role genai.Role = genai.RoleModel
			if m.FromUser {
				role = genai.RoleUser
			}
			contents = append(contents, genai.NewContentFromText(m.Text, role))
		}
	}

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	for _, path := range opts.ImagePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read attachment %s: %w", path, err)
		}
		parts = append(parts, genai.NewPartFromBytes(data, mimeTypeFor(path)))
	}
	contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))

	return contents, nil
}

func extractResponse(result *genai.GenerateContentResponse) (Response, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return Response{}, fmt.Errorf("empty response")
	}

	var resp Response
	var text strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		if p.Text != "" {
			text.WriteString(p.Text)
		}
		if p.InlineData != nil && len(p.InlineData.Data) > 0 {
			resp.ImageData = p.InlineData.Data
		}
	}
	resp.Text = strings.TrimSpace(text.String())

	if resp.Text == "" && resp.ImageData == nil {
		return Response{}, fmt.Errorf("response had no usable parts")
	}
	return resp, nil
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
