package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestFooter_FlashReplacesBindings(t *testing.T) {
	f := NewFooter()
	f.SetWidth(120)

	cmd := f.Flash("Settings saved")
	if cmd == nil {
		t.Fatal("expected a dismiss command")
	}

	view := ansi.Strip(f.View())
	if !strings.Contains(view, "Settings saved") {
		t.Errorf("expected the flash text, got %q", view)
	}
	if strings.Contains(view, "tab") {
		t.Error("expected keybindings to be hidden during a flash")
	}
}

func TestFooter_StaleFlashTickIgnored(t *testing.T) {
	f := NewFooter()
	f.SetWidth(120)

	f.Flash("first")
	stale := f.flashGen
	f.Flash("second")

	f.HandleFlashTick(FlashTickMsg{Gen: stale})
	if f.flash != "second" {
		t.Errorf("expected the newer flash to survive, got %q", f.flash)
	}

	f.HandleFlashTick(FlashTickMsg{Gen: f.flashGen})
	if f.flash != "" {
		t.Error("expected the current tick to clear the flash")
	}
}

func TestFooter_BindingsFollowContext(t *testing.T) {
	tests := []struct {
		name                                              string
		hasSession, sidebarFocused, waiting, voice, video bool
		wantKey, missingKey                               string
	}{
		{name: "voice overlay", voice: true, wantKey: "space", missingKey: "n"},
		{name: "video overlay", video: true, wantKey: "c", missingKey: "enter"},
		{name: "sidebar focused", sidebarFocused: true, wantKey: "R", missingKey: "space"},
		{name: "waiting", waiting: true, wantKey: "pgup/dn", missingKey: "enter"},
		{name: "chat with session", hasSession: true, wantKey: "ctrl+l", missingKey: "R"},
		{name: "no session", wantKey: "n", missingKey: "ctrl+l"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFooter()
			f.SetContext(tt.hasSession, tt.sidebarFocused, tt.waiting, tt.voice, tt.video)

			keySet := make(map[string]bool)
			for _, b := range f.bindings() {
				keySet[b.Key] = true
			}
			if !keySet[tt.wantKey] {
				t.Errorf("expected binding %q in context %s", tt.wantKey, tt.name)
			}
			if keySet[tt.missingKey] {
				t.Errorf("did not expect binding %q in context %s", tt.missingKey, tt.name)
			}
		})
	}
}
