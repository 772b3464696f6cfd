package input

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// actions are the bindable names; "none" unbinds a default key
var actions = map[string]IntentType{
	"none":        IntentNone,
	"quit":        IntentQuit,
	"pause":       IntentPause,
	"toggle_mute": IntentToggleMute,
}

// ActionNames returns the bindable action names in sorted order
func ActionNames() []string {
	return slices.Sorted(maps.Keys(actions))
}

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// specialKeyNames resolves lowercase tcell key names ("esc", "ctrl-c", "f1")
var specialKeyNames = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// LoadKeyConfig turns a key -> action table into a sparse override KeyTable
// Keys are single runes, rune aliases, or tcell key names such as "Esc" or "Ctrl-Q"
// Returns error on unknown action or key names
func LoadKeyConfig(bindings map[string]string) (*KeyTable, error) {
	kt := &KeyTable{
		SpecialKeys: make(map[tcell.Key]IntentType),
		Runes:       make(map[rune]IntentType),
	}

	for keyName, action := range bindings {
		intent, ok := actions[strings.ToLower(action)]
		if !ok {
			return nil, fmt.Errorf("keymap: unknown action %q for key %q (want one of %s)",
				action, keyName, strings.Join(ActionNames(), ", "))
		}

		if utf8.RuneCountInString(keyName) == 1 {
			r, _ := utf8.DecodeRuneInString(keyName)
			kt.Runes[r] = intent
			continue
		}

		lower := strings.ToLower(keyName)
		if r, ok := runeAliases[lower]; ok {
			kt.Runes[r] = intent
			continue
		}
		if k, ok := specialKeyNames[lower]; ok {
			kt.SpecialKeys[k] = intent
			continue
		}
		return nil, fmt.Errorf("keymap: unknown key %q", keyName)
	}

	return kt, nil
}
