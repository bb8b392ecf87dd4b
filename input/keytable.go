package input

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/liquid-sort/core"
)

// ErrInvalidBinding reports an unknown key or action name in a rebinding
var ErrInvalidBinding = errors.New("invalid key binding")

// Rune aliases for keys that are awkward as bare config keys
var runeAliases = map[string]rune{
	"space": ' ',
}

// Named special keys accepted in bindings
var keyNames = map[string]tcell.Key{
	"esc":    tcell.KeyEscape,
	"enter":  tcell.KeyEnter,
	"tab":    tcell.KeyTab,
	"ctrl+c": tcell.KeyCtrlC,
	"ctrl+q": tcell.KeyCtrlQ,
	"ctrl+r": tcell.KeyCtrlR,
}

// KeyTable maps keys to actions
type KeyTable struct {
	Runes map[rune]KeyEntry
	Keys  map[tcell.Key]KeyEntry
}

// DefaultKeyTable binds 1-9 and 0 to containers, r restart, p pause, q quit
func DefaultKeyTable() *KeyTable {
	kt := &KeyTable{
		Runes: map[rune]KeyEntry{
			'r': {Action: ActionRestart},
			'R': {Action: ActionRestart},
			'p': {Action: ActionPause},
			' ': {Action: ActionPause},
			'q': {Action: ActionQuit},
		},
		Keys: map[tcell.Key]KeyEntry{
			tcell.KeyEscape: {Action: ActionQuit},
			tcell.KeyCtrlC:  {Action: ActionQuit},
			tcell.KeyCtrlQ:  {Action: ActionQuit},
		},
	}
	for i := 0; i < 9; i++ {
		kt.Runes[rune('1'+i)] = KeyEntry{Action: ActionPick, Container: core.ContainerID(i)}
	}
	kt.Runes['0'] = KeyEntry{Action: ActionPick, Container: 9}
	return kt
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		Runes: maps.Clone(kt.Runes),
		Keys:  maps.Clone(kt.Keys),
	}
}

// Bind applies key to action-name overrides; "none" unbinds a key
// The table is unchanged when any binding is invalid
func (kt *KeyTable) Bind(bindings map[string]string) error {
	next := kt.Clone()
	for key, name := range bindings {
		entry, ok := ActionEntry(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return fmt.Errorf("%w: key %q: unknown action %q", ErrInvalidBinding, key, name)
		}
		if err := next.set(key, entry); err != nil {
			return err
		}
	}
	kt.Runes, kt.Keys = next.Runes, next.Keys
	return nil
}

func (kt *KeyTable) set(key string, entry KeyEntry) error {
	if k, ok := keyNames[strings.ToLower(key)]; ok {
		if entry.Action == ActionNone {
			delete(kt.Keys, k)
		} else {
			kt.Keys[k] = entry
		}
		return nil
	}

	r, ok := runeAliases[strings.ToLower(key)]
	if !ok {
		if utf8.RuneCountInString(key) != 1 {
			return fmt.Errorf("%w: unknown key %q", ErrInvalidBinding, key)
		}
		r, _ = utf8.DecodeRuneInString(key)
	}
	if entry.Action == ActionNone {
		delete(kt.Runes, r)
	} else {
		kt.Runes[r] = entry
	}
	return nil
}
