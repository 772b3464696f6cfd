package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, Esc, function keys)
	SpecialKeys map[tcell.Key]IntentType

	// Printable rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'p': IntentPause,
			' ': IntentPause,
			'm': IntentToggleMute,
		},
	}
}

// Merge applies overrides on top of kt; IntentNone entries unbind the key
func (kt *KeyTable) Merge(override *KeyTable) {
	if override == nil {
		return
	}
	for k, v := range override.SpecialKeys {
		if v == IntentNone {
			delete(kt.SpecialKeys, k)
			continue
		}
		kt.SpecialKeys[k] = v
	}
	for r, v := range override.Runes {
		if v == IntentNone {
			delete(kt.Runes, r)
			continue
		}
		kt.Runes[r] = v
	}
}

// Lookup resolves a key event
func (kt *KeyTable) Lookup(ev *tcell.EventKey) IntentType {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.SpecialKeys[ev.Key()]
}
