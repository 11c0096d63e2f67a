// Package gen produces agent chat responses. The Client interface is what
// screens depend on; Gemini and Offline are the two implementations.
package gen

import (
	"context"
	"fmt"

	"github.com/guidelens/guidelens/internal/agent"
	"github.com/guidelens/guidelens/internal/config"
)

// Options tunes a single generation call
type Options struct {
	IncludeHistory bool     // Fold prior session messages into the prompt
	ForceOffline   bool     // Skip the network and answer from canned guidance
	ImagePaths     []string // Image files attached to the prompt
}

// Response is one generated agent reply
type Response struct {
	Text      string
	ImageData []byte // Inline image, when the agent produced one
}

// Client generates a reply to a user prompt in an agent's voice
type Client interface {
	GenerateContent(ctx context.Context, prompt string, a agent.Agent, history []config.ChatMessage, opts Options) (Response, error)
}

// SystemPrompt builds the instruction that keeps a model in character for
// an agent. Shared by the chat client and the live session manager.
func SystemPrompt(a agent.Agent) string {
	prompt := fmt.Sprintf(
		"You are %s, a guide agent. %s Stay in character, be practical, and keep answers focused on what the user can do next.",
		a.Name, a.Description)
	for _, c := range a.Capabilities {
		prompt += fmt.Sprintf(" You can help with %s.", c)
	}
	return prompt
}
