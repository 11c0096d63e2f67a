package agent

import "github.com/guidelens/guidelens/internal/feature"

// Agent IDs
const (
	ChefID    = "chef"
	ArtisanID = "artisan"
	BuddyID   = "buddy"
	FixitID   = "fixit"
)

// Seed returns the four built-in guide agents.
func Seed() []Agent {
	return []Agent{
		{
			ID:             ChefID,
			Name:           "Chef",
			Description:    "Cooking guidance, recipes, and real-time kitchen help.",
			Tagline:        "What are we cooking today?",
			PrimaryColor:   "#E8590C",
			SecondaryColor: "#FFF4E6",
			Icon:           "🍳",
			QuickActions: []feature.QuickAction{
				{Label: "What's for dinner tonight?"},
				{Label: "Help me use up leftovers"},
				{Label: "Suggest a 30-minute meal"},
			},
			Features: []feature.Feature{
				feature.CookingFeature{
					Name:    "Recipe Ideas",
					Detail:  "Get recipe suggestions from ingredients you have on hand.",
					Glyph:   "📖",
					Example: "Suggest a weeknight pasta dinner",
				},
				feature.CookingFeature{
					Name:   "Guided Cooking",
					Detail: "Step-by-step live guidance while you cook, with timing help.",
					Glyph:  "⏲",
				},
				feature.CookingFeature{
					Name:   "Technique Coach",
					Detail: "Learn knife skills, sauces, and fundamentals with live feedback.",
					Glyph:  "🔪",
				},
			},
			Capabilities:  []string{"Recipes", "Live guidance", "Substitutions"},
			SupportsVideo: true,
		},
		{
			ID:             ArtisanID,
			Name:           "Artisan",
			Description:    "Craft projects, materials advice, and creative inspiration.",
			Tagline:        "Let's make something with your hands.",
			PrimaryColor:   "#9C36B5",
			SecondaryColor: "#F8F0FC",
			Icon:           "🧶",
			QuickActions: []feature.QuickAction{
				{Label: "Suggest a beginner project"},
				{Label: "What can I make with yarn?"},
			},
			Features: []feature.Feature{
				feature.CraftingProject{
					Name:       "Macramé Hanger",
					Detail:     "Knot a hanging planter from cotton cord.",
					Glyph:      "🪴",
					Difficulty: "beginner",
					Materials:  []string{"cotton cord", "metal ring", "scissors"},
				},
				feature.CraftingProject{
					Name:       "Hand-Poured Candles",
					Detail:     "Melt, scent, and pour soy-wax candles.",
					Glyph:      "🕯",
					Difficulty: "beginner",
					Materials:  []string{"soy wax", "wicks", "fragrance oil", "jars"},
				},
				feature.CraftingProject{
					Name:       "Bookbinding",
					Detail:     "Stitch a pocket notebook with a coptic binding.",
					Glyph:      "📓",
					Difficulty: "intermediate",
					Materials:  []string{"paper", "waxed thread", "needle", "board"},
				},
			},
			Capabilities:  []string{"Projects", "Materials", "Live guidance"},
			SupportsVideo: true,
		},
		{
			ID:             BuddyID,
			Name:           "Buddy",
			Description:    "A friendly companion for conversation and daily check-ins.",
			Tagline:        "Good to see you. How's your day going?",
			PrimaryColor:   "#1971C2",
			SecondaryColor: "#E7F5FF",
			Icon:           "💬",
			QuickActions: []feature.QuickAction{
				{Label: "Let's just chat"},
				{Label: "Tell me something interesting"},
			},
			Features: []feature.Feature{
				feature.FriendshipTool{
					Name:   "Daily Check-in",
					Detail: "A short guided reflection on how today went.",
					Glyph:  "☀",
					Mood:   "reflective",
				},
				feature.FriendshipTool{
					Name:   "Gratitude Practice",
					Detail: "Name three good things and talk them through.",
					Glyph:  "🙏",
					Mood:   "calm",
				},
				feature.FriendshipTool{
					Name:   "Story Swap",
					Detail: "Trade stories on a prompt, one each.",
					Glyph:  "📚",
					Mood:   "playful",
				},
			},
			Capabilities:  []string{"Conversation", "Check-ins"},
			SupportsVideo: false,
		},
		{
			ID:             FixitID,
			Name:           "Fixit",
			Description:    "Home repair and DIY help, from leaky taps to shelving.",
			Tagline:        "What needs fixing?",
			PrimaryColor:   "#2F9E44",
			SecondaryColor: "#EBFBEE",
			Icon:           "🔧",
			QuickActions: []feature.QuickAction{
				{Label: "My tap is dripping"},
				{Label: "Help me hang a shelf"},
			},
			Features: []feature.Feature{
				feature.DIYCategory{
					Name:      "Plumbing",
					Detail:    "Taps, drains, and toilet repairs.",
					Glyph:     "🚰",
					ToolsList: []string{"adjustable wrench", "plumber's tape", "bucket"},
				},
				feature.DIYCategory{
					Name:      "Electrical",
					Detail:    "Switches, outlets, and light fixtures (safety first).",
					Glyph:     "💡",
					ToolsList: []string{"voltage tester", "screwdriver", "wire stripper"},
				},
				feature.DIYCategory{
					Name:      "Carpentry",
					Detail:    "Shelving, furniture assembly, and small wood repairs.",
					Glyph:     "🪚",
					ToolsList: []string{"drill", "level", "stud finder"},
				},
			},
			Capabilities:  []string{"Repairs", "Tool advice", "Live guidance"},
			SupportsVideo: true,
		},
	}
}

// DefaultCatalog builds the catalog of built-in agents
func DefaultCatalog() *Catalog {
	return NewCatalog(Seed())
}
