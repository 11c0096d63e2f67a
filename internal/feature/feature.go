// Package feature defines the closed set of agent feature variants and the
// selection state machine driving the welcome screen's collapsed/expanded views.
//
// Feature is a discriminated union: each variant implements the Feature
// interface with a marker method, and every consumer switches exhaustively
// over the concrete types. There is no generic fallback branch, so adding a
// variant forces every switch site to be revisited.
package feature

import "fmt"

// Feature is the discriminated union of everything an agent can offer
// from its welcome screen.
type Feature interface {
	feature() // marker method to restrict implementations
	Title() string
	Description() string
	Icon() string
}

// CookingFeature is a cooking capability offered by the chef agent,
// e.g. recipe generation or a guided cooking session.
type CookingFeature struct {
	Name    string
	Detail  string
	Glyph   string
	Example string // Sample request shown in the expanded view
}

func (CookingFeature) feature()              {}
func (f CookingFeature) Title() string       { return f.Name }
func (f CookingFeature) Description() string { return f.Detail }
func (f CookingFeature) Icon() string        { return f.Glyph }

// CraftingProject is a project template offered by the crafting agent.
type CraftingProject struct {
	Name       string
	Detail     string
	Glyph      string
	Difficulty string // "beginner", "intermediate", "advanced"
	Materials  []string
}

func (CraftingProject) feature()              {}
func (f CraftingProject) Title() string       { return f.Name }
func (f CraftingProject) Description() string { return f.Detail }
func (f CraftingProject) Icon() string        { return f.Glyph }

// FriendshipTool is a conversation activity offered by the companionship agent.
type FriendshipTool struct {
	Name   string
	Detail string
	Glyph  string
	Mood   string // Mood the activity suits, e.g. "reflective", "playful"
}

func (FriendshipTool) feature()              {}
func (f FriendshipTool) Title() string       { return f.Name }
func (f FriendshipTool) Description() string { return f.Detail }
func (f FriendshipTool) Icon() string        { return f.Glyph }

// DIYCategory is a home-improvement category offered by the DIY agent.
type DIYCategory struct {
	Name      string
	Detail    string
	Glyph     string
	ToolsList []string // Typical tools needed for this category
}

func (DIYCategory) feature()              {}
func (f DIYCategory) Title() string       { return f.Name }
func (f DIYCategory) Description() string { return f.Detail }
func (f DIYCategory) Icon() string        { return f.Glyph }

// QuickAction is a one-line prompt shortcut carried by every agent.
type QuickAction struct {
	Label string
}

func (QuickAction) feature()              {}
func (f QuickAction) Title() string       { return f.Label }
func (f QuickAction) Description() string { return "" }
func (f QuickAction) Icon() string        { return "⚡" }

// PromptFor builds the chat seed text for a selected feature. The switch is
// exhaustive over the variant set; a new variant will not compile into a
// silent default.
func PromptFor(f Feature) string {
	switch v := f.(type) {
	case CookingFeature:
		if v.Example != "" {
			return v.Example
		}
		return fmt.Sprintf("Help me with %s", v.Name)
	case CraftingProject:
		return fmt.Sprintf("I'd like to start the %s project. Walk me through it.", v.Name)
	case FriendshipTool:
		return fmt.Sprintf("Let's do %s together.", v.Name)
	case DIYCategory:
		return fmt.Sprintf("I have a %s question.", v.Name)
	case QuickAction:
		return v.Label
	default:
		// Unreachable while the marker method restricts implementations
		// to this package.
		return fmt.Sprintf("Help me with %s", f.Title())
	}
}
