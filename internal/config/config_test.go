package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// withTempHome points HOME at a temp dir so tests never touch the real config
func withTempHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	t.Cleanup(func() { os.Setenv("HOME", origHome) })
	return tmpDir
}

func TestConfig_CreateNewSession(t *testing.T) {
	cfg := &Config{Sessions: []Session{}}

	sess := cfg.CreateNewSession("Dinner plans", "chef", "user-1")

	if sess.ID == "" {
		t.Error("CreateNewSession should assign an ID")
	}
	if sess.AgentID != "chef" {
		t.Errorf("Expected agent chef, got %s", sess.AgentID)
	}
	if len(cfg.Sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(cfg.Sessions))
	}
	if cfg.CurrentSessionID != sess.ID {
		t.Error("New session should become current")
	}

	second := cfg.CreateNewSession("Birdhouse", "fixit", "user-1")
	if second.ID == sess.ID {
		t.Error("Sessions should get distinct IDs")
	}
	if cfg.CurrentSessionID != second.ID {
		t.Error("Latest created session should become current")
	}
}

func TestConfig_RemoveSession(t *testing.T) {
	cfg := &Config{Sessions: []Session{}}
	a := cfg.CreateNewSession("a", "chef", "")
	b := cfg.CreateNewSession("b", "buddy", "")

	if !cfg.RemoveSession(b.ID) {
		t.Error("RemoveSession should return true for existing session")
	}
	if len(cfg.Sessions) != 1 {
		t.Errorf("Expected 1 session after removal, got %d", len(cfg.Sessions))
	}
	if cfg.CurrentSessionID != a.ID {
		t.Error("Current session should fall back to remaining session")
	}

	if cfg.RemoveSession("nonexistent") {
		t.Error("RemoveSession should return false for non-existent session")
	}

	if !cfg.RemoveSession(a.ID) {
		t.Error("RemoveSession should return true for last session")
	}
	if cfg.CurrentSessionID != "" {
		t.Error("Current session should clear when last session is removed")
	}
}

func TestConfig_SwitchToSession(t *testing.T) {
	cfg := &Config{Sessions: []Session{}}
	a := cfg.CreateNewSession("a", "chef", "")
	cfg.CreateNewSession("b", "artisan", "")

	if !cfg.SwitchToSession(a.ID) {
		t.Error("SwitchToSession should return true for existing session")
	}
	if got := cfg.CurrentSession(); got == nil || got.ID != a.ID {
		t.Errorf("CurrentSession should be %s, got %+v", a.ID, got)
	}

	if cfg.SwitchToSession("nonexistent") {
		t.Error("SwitchToSession should return false for non-existent session")
	}
	if got := cfg.CurrentSession(); got == nil || got.ID != a.ID {
		t.Error("Failed switch should not change current session")
	}
}

func TestConfig_CurrentSession_None(t *testing.T) {
	cfg := &Config{Sessions: []Session{}}
	if cfg.CurrentSession() != nil {
		t.Error("CurrentSession should be nil when no session is active")
	}
}

func TestConfig_GetSession_ReturnsCopy(t *testing.T) {
	cfg := &Config{Sessions: []Session{}}
	sess := cfg.CreateNewSession("original", "chef", "")

	got := cfg.GetSession(sess.ID)
	if got == nil {
		t.Fatal("GetSession returned nil")
	}
	got.Name = "mutated"

	if cfg.GetSession(sess.ID).Name != "original" {
		t.Error("GetSession should return a copy, not a reference")
	}
}

func TestConfig_RenameSession(t *testing.T) {
	cfg := &Config{Sessions: []Session{}}
	sess := cfg.CreateNewSession("old name", "buddy", "")

	if !cfg.RenameSession(sess.ID, "new name") {
		t.Error("RenameSession should return true for existing session")
	}
	if cfg.GetSession(sess.ID).Name != "new name" {
		t.Error("RenameSession should update the name")
	}
	if cfg.RenameSession("nonexistent", "x") {
		t.Error("RenameSession should return false for non-existent session")
	}
}

func TestConfig_GetSessionsByAgent(t *testing.T) {
	cfg := &Config{Sessions: []Session{}}
	cfg.CreateNewSession("a", "chef", "")
	cfg.CreateNewSession("b", "fixit", "")
	cfg.CreateNewSession("c", "chef", "")

	chef := cfg.GetSessionsByAgent("chef")
	if len(chef) != 2 {
		t.Errorf("Expected 2 chef sessions, got %d", len(chef))
	}
	if len(cfg.GetSessionsByAgent("artisan")) != 0 {
		t.Error("Expected no artisan sessions")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name:    "valid empty config",
			cfg:     &Config{Sessions: []Session{}, Tier: TierFree},
			wantErr: false,
		},
		{
			name: "duplicate session IDs",
			cfg: &Config{
				Tier: TierFree,
				Sessions: []Session{
					{ID: "dup", AgentID: "chef"},
					{ID: "dup", AgentID: "buddy"},
				},
			},
			wantErr: true,
		},
		{
			name: "empty session ID",
			cfg: &Config{
				Tier:     TierFree,
				Sessions: []Session{{ID: "", AgentID: "chef"}},
			},
			wantErr: true,
		},
		{
			name: "empty agent ID",
			cfg: &Config{
				Tier:     TierFree,
				Sessions: []Session{{ID: "s1", AgentID: ""}},
			},
			wantErr: true,
		},
		{
			name: "current session missing",
			cfg: &Config{
				Tier:             TierFree,
				Sessions:         []Session{{ID: "s1", AgentID: "chef"}},
				CurrentSessionID: "other",
			},
			wantErr: true,
		},
		{
			name: "unknown tier",
			cfg: &Config{
				Tier:     "deluxe",
				Sessions: []Session{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	withTempHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	sess := cfg.CreateNewSession("Sunday roast", "chef", "user-9")
	cfg.SetAPIKey("test-key")
	cfg.SetTier(TierPremium)
	cfg.SetTheme("warm")
	cfg.SetMicEnabled(true)
	cfg.MarkOnboardingDone()

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("second Load() failed: %v", err)
	}

	if len(loaded.Sessions) != 1 {
		t.Fatalf("Expected 1 session after reload, got %d", len(loaded.Sessions))
	}
	if loaded.Sessions[0].ID != sess.ID {
		t.Error("Session ID should survive reload")
	}
	if got := loaded.CurrentSession(); got == nil || got.ID != sess.ID {
		t.Error("Current session should survive reload")
	}
	if !loaded.IsPremium() {
		t.Error("Tier should survive reload")
	}
	if loaded.GetTheme() != "warm" {
		t.Error("Theme should survive reload")
	}
	if !loaded.GetMicEnabled() {
		t.Error("Mic preference should survive reload")
	}
	if !loaded.IsOnboardingDone() {
		t.Error("Onboarding flag should survive reload")
	}
}

func TestLoad_NewConfig(t *testing.T) {
	withTempHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.Sessions == nil {
		t.Error("Sessions should be initialized")
	}
	if cfg.GetTier() != TierFree {
		t.Errorf("New config should default to free tier, got %s", cfg.GetTier())
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := withTempHome(t)

	dir := filepath.Join(tmpDir, ".guidelens")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on invalid JSON")
	}
}

func TestGetAPIKey_EnvOverride(t *testing.T) {
	origKey := os.Getenv("GEMINI_API_KEY")
	os.Setenv("GEMINI_API_KEY", "env-key")
	defer os.Setenv("GEMINI_API_KEY", origKey)

	cfg := &Config{APIKey: "file-key"}
	if cfg.GetAPIKey() != "env-key" {
		t.Error("Environment variable should take precedence over persisted key")
	}

	os.Setenv("GEMINI_API_KEY", "")
	if cfg.GetAPIKey() != "file-key" {
		t.Error("Persisted key should be used when env var is empty")
	}
}

func TestSessionMessages(t *testing.T) {
	withTempHome(t)
	sessionID := "test-session-123"

	messages := []ChatMessage{
		{ID: "m1", Text: "Hello", FromUser: true, Timestamp: time.Now()},
		{ID: "m2", Text: "Hi there!", FromUser: false, Timestamp: time.Now()},
	}

	if err := SaveSessionMessages(sessionID, messages, 100); err != nil {
		t.Errorf("SaveSessionMessages failed: %v", err)
	}

	loaded, err := LoadSessionMessages(sessionID)
	if err != nil {
		t.Errorf("LoadSessionMessages failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Errorf("Expected 2 messages, got %d", len(loaded))
	}
	if !loaded[0].FromUser || loaded[0].Text != "Hello" {
		t.Errorf("First message mismatch: %+v", loaded[0])
	}

	// Non-existent session returns empty, not error
	loaded, err = LoadSessionMessages("nonexistent-session")
	if err != nil {
		t.Errorf("LoadSessionMessages should not error for non-existent session: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("Expected 0 messages for non-existent session, got %d", len(loaded))
	}

	if err := DeleteSessionMessages(sessionID); err != nil {
		t.Errorf("DeleteSessionMessages failed: %v", err)
	}
	loaded, err = LoadSessionMessages(sessionID)
	if err != nil {
		t.Errorf("LoadSessionMessages after delete failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("Expected 0 messages after delete, got %d", len(loaded))
	}

	if err := DeleteSessionMessages("nonexistent-session"); err != nil {
		t.Errorf("DeleteSessionMessages should not error for non-existent session: %v", err)
	}
}

func TestSaveSessionMessages_MaxMessages(t *testing.T) {
	withTempHome(t)
	sessionID := "test-cap-session"

	messages := make([]ChatMessage, 20)
	for i := range messages {
		messages[i] = ChatMessage{ID: string(rune('a' + i)), Text: "msg"}
	}

	if err := SaveSessionMessages(sessionID, messages, 5); err != nil {
		t.Fatalf("SaveSessionMessages failed: %v", err)
	}

	loaded, err := LoadSessionMessages(sessionID)
	if err != nil {
		t.Fatalf("LoadSessionMessages failed: %v", err)
	}
	if len(loaded) != 5 {
		t.Errorf("Expected 5 messages after cap, got %d", len(loaded))
	}
	// Newest survive
	if loaded[len(loaded)-1].ID != messages[len(messages)-1].ID {
		t.Error("Cap should keep the newest messages")
	}
}

func TestAppendSessionMessage_DuplicateID(t *testing.T) {
	withTempHome(t)
	sessionID := "test-dup-session"

	msg := ChatMessage{ID: "m1", Text: "first"}
	if err := AppendSessionMessage(sessionID, msg, 100); err != nil {
		t.Fatalf("AppendSessionMessage failed: %v", err)
	}

	// Same ID with different text must be ignored
	dup := ChatMessage{ID: "m1", Text: "second"}
	if err := AppendSessionMessage(sessionID, dup, 100); err != nil {
		t.Fatalf("AppendSessionMessage (dup) failed: %v", err)
	}

	loaded, err := LoadSessionMessages(sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Fatalf("Expected 1 message after duplicate append, got %d", len(loaded))
	}
	if loaded[0].Text != "first" {
		t.Error("Duplicate append should not overwrite the original message")
	}
}

func TestAddMessageToCurrentSession(t *testing.T) {
	withTempHome(t)

	cfg := &Config{Sessions: []Session{}}

	// No current session
	ok, err := cfg.AddMessageToCurrentSession(ChatMessage{ID: "m1", Text: "hi"}, 100)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("AddMessageToCurrentSession should report false with no active session")
	}

	sess := cfg.CreateNewSession("chat", "chef", "")
	ok, err = cfg.AddMessageToCurrentSession(ChatMessage{ID: "m1", Text: "hi", FromUser: true}, 100)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("AddMessageToCurrentSession should report true with an active session")
	}

	loaded, err := LoadSessionMessages(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].Text != "hi" {
		t.Errorf("Expected persisted message, got %+v", loaded)
	}
}

func TestFindOrphanedMessageFiles(t *testing.T) {
	withTempHome(t)

	cfg := &Config{Sessions: []Session{}}
	sess := cfg.CreateNewSession("kept", "chef", "")

	if err := SaveSessionMessages(sess.ID, []ChatMessage{{ID: "m1", Text: "x"}}, 100); err != nil {
		t.Fatal(err)
	}
	if err := SaveSessionMessages("deleted-session", []ChatMessage{{ID: "m1", Text: "x"}}, 100); err != nil {
		t.Fatal(err)
	}

	orphaned, err := cfg.FindOrphanedMessageFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(orphaned) != 1 {
		t.Fatalf("Expected 1 orphaned file, got %d", len(orphaned))
	}
	if filepath.Base(orphaned[0]) != "deleted-session.json" {
		t.Errorf("Wrong orphan: %s", orphaned[0])
	}
}

func TestConfig_ConcurrentSave(t *testing.T) {
	withTempHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			cfg.SetTheme("warm")
			cfg.CreateNewSession("s", "chef", "")
			if err := cfg.Save(); err != nil {
				t.Errorf("Save failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load after concurrent saves failed: %v", err)
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("Config invalid after concurrent saves: %v", err)
	}
}
