package app

import (
	"fmt"
	"os"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/guidelens/guidelens/internal/config"
	"github.com/guidelens/guidelens/internal/gen"
	"github.com/guidelens/guidelens/internal/keys"
	"github.com/guidelens/guidelens/internal/live"
	"github.com/guidelens/guidelens/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	if err := logger.Init(os.DevNull); err != nil {
		fmt.Fprintf(os.Stderr, "initializing test logger: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

// testConfig creates a minimal config for testing
func testConfig() *config.Config {
	return &config.Config{
		Sessions:       []config.Session{},
		Tier:           config.TierFree,
		OnboardingDone: true,
	}
}

// testConfigWithSessions creates a config with test sessions
func testConfigWithSessions() *config.Config {
	cfg := testConfig()
	cfg.Sessions = []config.Session{
		{ID: "session-1", Name: "Dinner plans", AgentID: "chef", CreatedAt: time.Now()},
		{ID: "session-2", Name: "Closet refresh", AgentID: "artisan", CreatedAt: time.Now()},
	}
	cfg.CurrentSessionID = "session-1"
	return cfg
}

// testModel creates a test Model with injected offline dependencies.
// Each call points HOME at a fresh temp dir so persisted config and
// message history never bleed between tests.
func testModel(t *testing.T, cfg *config.Config) (*Model, *live.MockManager) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	mock := live.NewMockManager()
	m := New(cfg, "0.0.0-test", Options{
		GenClient:   gen.NewOfflineClient(),
		LiveManager: mock,
	})
	return m, mock
}

// testModelWithSize creates a test Model and sets its size
func testModelWithSize(t *testing.T, cfg *config.Config, width, height int) (*Model, *live.MockManager) {
	t.Helper()
	m, mock := testModel(t, cfg)
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m, mock
}

// keyPress creates a tea.KeyPressMsg for the given key string
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlY:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	case "ctrl+o":
		return tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}
	case "ctrl+l":
		return tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}
	case "ctrl+r":
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	case "ctrl+p":
		return tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}

// typeText feeds a string into the model one key at a time
func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}
