package gen

import (
	"context"
	"fmt"
	"strings"

	"github.com/guidelens/guidelens/internal/agent"
	"github.com/guidelens/guidelens/internal/config"
)

// OfflineClient answers from canned per-agent guidance. Used in demo mode
// and when a call explicitly forces offline operation.
type OfflineClient struct {
	byAgent map[string][]string
}

// NewOfflineClient builds the canned response table
func NewOfflineClient() *OfflineClient {
	return &OfflineClient{
		byAgent: map[string][]string{
			agent.ChefID: {
				"Start with what's in your fridge: a protein, an aromatic, and something green usually gets you to a solid weeknight dinner.",
				"Salt early, taste often. If a dish feels flat, a splash of acid fixes it more often than more salt does.",
			},
			agent.ArtisanID: {
				"Pick a project you can finish in one sitting first. Momentum matters more than ambition when you're starting out.",
				"Lay out all your materials before the first cut or knot. Most mistakes happen reaching for something mid-step.",
			},
			agent.BuddyID: {
				"I'm here. Tell me about your day — the ordinary parts count too.",
				"Here's a small one to think about: what's something you did this week that your past self would be proud of?",
			},
			agent.FixitID: {
				"Before anything else: find the shutoff. Water, power, or gas — know how to stop it before you open anything up.",
				"Take a photo before you disassemble. Future you will thank present you at reassembly time.",
			},
		},
	}
}

// GenerateContent returns canned guidance in the agent's voice. The pick is
// deterministic on the prompt so demos are stable.
func (c *OfflineClient) GenerateContent(ctx context.Context, prompt string, a agent.Agent, history []config.ChatMessage, opts Options) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	lines, ok := c.byAgent[a.ID]
	if !ok || len(lines) == 0 {
		return Response{
			Text: fmt.Sprintf("I'm %s — I can't reach the network right now, but ask me again when you're back online.", a.Name),
		}, nil
	}

	idx := 0
	if strings.TrimSpace(prompt) != "" {
		idx = len(prompt) % len(lines)
	}
	return Response{Text: lines[idx]}, nil
}
