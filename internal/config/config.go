package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Tier names for generation quality selection
const (
	TierFree    = "free"
	TierPremium = "premium"
)

// Config holds the application configuration
type Config struct {
	Sessions         []Session `json:"sessions"`
	CurrentSessionID string    `json:"current_session_id,omitempty"` // Active chat session (empty if none)

	APIKey         string `json:"api_key,omitempty"`          // Gemini API key
	Tier           string `json:"tier,omitempty"`             // Generation tier: "free" or "premium"
	Theme          string `json:"theme,omitempty"`            // UI theme name (e.g., "dark", "warm")
	DefaultAgentID string `json:"default_agent_id,omitempty"` // Agent selected on startup

	MicEnabled           bool   `json:"mic_enabled,omitempty"`           // Whether mic input starts enabled in voice sessions
	OnboardingDone       bool   `json:"onboarding_done,omitempty"`       // Whether first-run onboarding has completed
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notifications when a response completes
	AuthToken            string `json:"auth_token,omitempty"`            // Persisted backend auth token

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".guidelens"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Sessions: []Session{},
		Tier:     TierFree,
		filePath: path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Ensure slices are initialized (not nil) after unmarshaling
	// This must happen before Validate() since Validate() only reads
	cfg.ensureInitialized()

	// Validate loaded config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized ensures all slices are initialized and defaults applied.
//
// Thread-safety: This method is NOT thread-safe and must only be called
// during single-threaded initialization (i.e., from Load() before the Config
// is shared across goroutines).
func (c *Config) ensureInitialized() {
	if c.Sessions == nil {
		c.Sessions = []Session{}
	}
	if c.Tier == "" {
		c.Tier = TierFree
	}
}

// Validate checks that the config is internally consistent.
// This is a read-only operation - call ensureInitialized() first if needed.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Tier != TierFree && c.Tier != TierPremium {
		return fmt.Errorf("unknown tier: %s", c.Tier)
	}

	// Check for duplicate session IDs
	seenIDs := make(map[string]bool)
	for _, sess := range c.Sessions {
		if sess.ID == "" {
			return fmt.Errorf("session with empty ID found")
		}
		if seenIDs[sess.ID] {
			return fmt.Errorf("duplicate session ID: %s", sess.ID)
		}
		seenIDs[sess.ID] = true

		if sess.AgentID == "" {
			return fmt.Errorf("session %s has empty agent ID", sess.ID)
		}
	}

	// The current session must exist if set
	if c.CurrentSessionID != "" && !seenIDs[c.CurrentSessionID] {
		return fmt.Errorf("current session %s not found in session list", c.CurrentSessionID)
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir, err := configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath, data, 0644)
}

// GetAPIKey returns the Gemini API key, preferring the environment variable
// GEMINI_API_KEY over the persisted value.
func (c *Config) GetAPIKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.APIKey
}

// SetAPIKey sets the Gemini API key
func (c *Config) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.APIKey = key
}

// GetTier returns the generation tier, defaulting to free
func (c *Config) GetTier() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Tier == "" {
		return TierFree
	}
	return c.Tier
}

// SetTier sets the generation tier
func (c *Config) SetTier(tier string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Tier = tier
}

// IsPremium returns true if the premium tier is active
func (c *Config) IsPremium() bool {
	return c.GetTier() == TierPremium
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetDefaultAgentID returns the agent selected on startup
func (c *Config) GetDefaultAgentID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DefaultAgentID
}

// SetDefaultAgentID sets the agent selected on startup
func (c *Config) SetDefaultAgentID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DefaultAgentID = id
}

// GetMicEnabled returns whether mic input starts enabled in voice sessions
func (c *Config) GetMicEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.MicEnabled
}

// SetMicEnabled sets whether mic input starts enabled in voice sessions
func (c *Config) SetMicEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MicEnabled = enabled
}

// IsOnboardingDone returns whether first-run onboarding has completed
func (c *Config) IsOnboardingDone() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.OnboardingDone
}

// MarkOnboardingDone marks first-run onboarding as completed
func (c *Config) MarkOnboardingDone() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.OnboardingDone = true
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetAuthToken returns the persisted backend auth token
func (c *Config) GetAuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthToken
}

// SetAuthToken sets the persisted backend auth token. Pass empty string to clear.
func (c *Config) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AuthToken = token
}
