package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/liquid-sort/core"
	"github.com/lixenwraith/liquid-sort/event"
)

// HitFunc maps a screen cell to the container drawn there
type HitFunc func(x, y int) (core.ContainerID, bool)

// Translator turns terminal events into game events
// Owned by the input poller goroutine
type Translator struct {
	keys *KeyTable
	hit  HitFunc

	// buttons held on the previous mouse event, so a drag does not repeat a pick
	buttons tcell.ButtonMask
}

// NewTranslator uses keys for the keyboard and hit for mouse clicks; hit may be nil
func NewTranslator(keys *KeyTable, hit HitFunc) *Translator {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Translator{keys: keys, hit: hit}
}

// Translate returns the game event for ev, false when ev means nothing to the game
func (t *Translator) Translate(ev tcell.Event) (event.GameEvent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.key(ev)
	case *tcell.EventMouse:
		return t.mouse(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return event.GameEvent{Type: event.EventInputResize, Payload: [2]int{w, h}}, true
	}
	return event.GameEvent{}, false
}

func (t *Translator) key(ev *tcell.EventKey) (event.GameEvent, bool) {
	if ev.Key() == tcell.KeyRune {
		if entry, ok := t.keys.Runes[ev.Rune()]; ok {
			return entry.event()
		}
		return event.GameEvent{}, false
	}
	if entry, ok := t.keys.Keys[ev.Key()]; ok {
		return entry.event()
	}
	return event.GameEvent{}, false
}

func (t *Translator) mouse(ev *tcell.EventMouse) (event.GameEvent, bool) {
	prev := t.buttons
	t.buttons = ev.Buttons()

	pressed := ev.Buttons()&tcell.Button1 != 0 && prev&tcell.Button1 == 0
	if !pressed || t.hit == nil {
		return event.GameEvent{}, false
	}
	x, y := ev.Position()
	id, ok := t.hit(x, y)
	if !ok {
		return event.GameEvent{}, false
	}
	return event.GameEvent{Type: event.EventInputPick, Payload: id}, true
}
