package input

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

// TestLoadKeyConfig verifies rune, alias and special key parsing
func TestLoadKeyConfig(t *testing.T) {
	kt, err := LoadKeyConfig(map[string]string{
		"x":      "quit",
		"space":  "toggle_mute",
		"Ctrl-Q": "quit",
		"m":      "none",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if kt.Runes['x'] != IntentQuit {
		t.Errorf("Expected x bound to quit, got %s", kt.Runes['x'])
	}
	if kt.Runes[' '] != IntentToggleMute {
		t.Errorf("Expected space bound to toggle_mute, got %s", kt.Runes[' '])
	}
	if kt.SpecialKeys[tcell.KeyCtrlQ] != IntentQuit {
		t.Errorf("Expected Ctrl-Q bound to quit, got %s", kt.SpecialKeys[tcell.KeyCtrlQ])
	}

	table := DefaultKeyTable()
	table.Merge(kt)
	if _, ok := table.Runes['m']; ok {
		t.Error("Expected m unbound after merge")
	}
	if table.Runes['q'] != IntentQuit || table.Runes['x'] != IntentQuit {
		t.Error("Expected defaults kept and overrides added")
	}
}

// TestLoadKeyConfigErrors verifies unknown names are rejected
func TestLoadKeyConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		bindings map[string]string
		contains string
	}{
		{"unknown action", map[string]string{"x": "jump"}, "unknown action"},
		{"lists actions", map[string]string{"x": "jump"}, "none, pause, quit, toggle_mute"},
		{"unknown key", map[string]string{"hyper-x": "quit"}, "unknown key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadKeyConfig(tt.bindings)
			if err == nil || !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error containing %q, got %v", tt.contains, err)
			}
		})
	}
}
