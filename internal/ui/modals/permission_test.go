package modals

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestPermissionState_DenyResolvesUngranted(t *testing.T) {
	state := NewPermissionState("camera", "Chef")

	_, cmd := state.Update(tea.KeyPressMsg{Code: 'n'})
	if cmd == nil {
		t.Fatal("expected a resolve command")
	}

	msg, ok := cmd().(PermissionResolvedMsg)
	if !ok {
		t.Fatalf("expected PermissionResolvedMsg, got %T", cmd())
	}
	if msg.Granted {
		t.Error("deny must resolve ungranted")
	}
	if msg.Device != "camera" {
		t.Errorf("device = %q", msg.Device)
	}
}

func TestPermissionState_AllowIsDefault(t *testing.T) {
	state := NewPermissionState("microphone", "Chef")

	_, cmd := state.Update(keyPress(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a resolve command")
	}
	msg := cmd().(PermissionResolvedMsg)
	if !msg.Granted {
		t.Error("enter on default selection should grant")
	}
}
