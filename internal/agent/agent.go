// Package agent defines the static guide agent catalog. Agents are immutable
// descriptors built once at process start; everything else in the app refers
// to them by ID.
package agent

import "github.com/guidelens/guidelens/internal/feature"

// Agent is a static descriptor for one guide personality.
type Agent struct {
	ID          string
	Name        string
	Description string
	Tagline     string // One-line greeting shown on the welcome screen

	PrimaryColor   string // Hex color driving the theme accent
	SecondaryColor string // Hex color for secondary UI chrome
	Icon           string // Glyph shown next to the agent name

	QuickActions []feature.QuickAction
	Features     []feature.Feature // Agent-specific feature grid entries
	Capabilities []string          // Capability labels shown in the header

	SupportsVideo bool // Whether this agent offers live video sessions at all
}

// ShowVideoFor decides whether the expanded detail view for a feature offers
// a video session. Quick actions never do: they go straight to chat. Other
// features do whenever the agent supports video guidance.
func (a Agent) ShowVideoFor(f feature.Feature) bool {
	if !a.SupportsVideo {
		return false
	}
	if _, ok := f.(feature.QuickAction); ok {
		return false
	}
	return true
}

// Catalog is the fixed set of agents, keyed by ID
type Catalog struct {
	agents []Agent
	byID   map[string]Agent
}

// NewCatalog builds a catalog from a fixed agent list
func NewCatalog(agents []Agent) *Catalog {
	byID := make(map[string]Agent, len(agents))
	for _, a := range agents {
		byID[a.ID] = a
	}
	return &Catalog{agents: agents, byID: byID}
}

// All returns the agents in catalog order
func (c *Catalog) All() []Agent {
	out := make([]Agent, len(c.agents))
	copy(out, c.agents)
	return out
}

// ByID looks up an agent by ID
func (c *Catalog) ByID(id string) (Agent, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Default returns the agent used when no preference is stored
func (c *Catalog) Default() Agent {
	return c.agents[0]
}
