package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/alienfield/internal/input"
)

// keyBindings maps each key to the event its press produces.
var keyBindings = []struct {
	key  ebiten.Key
	kind input.Kind
}{
	{ebiten.KeyW, input.Up},
	{ebiten.KeyArrowUp, input.Up},
	{ebiten.KeyS, input.Down},
	{ebiten.KeyArrowDown, input.Down},
	{ebiten.KeyA, input.Left},
	{ebiten.KeyArrowLeft, input.Left},
	{ebiten.KeyD, input.Right},
	{ebiten.KeyArrowRight, input.Right},
	{ebiten.KeySpace, input.Fire},
	{ebiten.KeyEnter, input.Confirm},
	{ebiten.KeyEscape, input.Quit},
	{ebiten.KeyQ, input.Quit},
}

// holdKey starts auto-fire while held. Unlike terminals, ebiten reports
// releases, so holding is real rather than a toggle.
const holdKey = ebiten.KeyF

// Keyboard turns key edges into events. Call Drain once per Update.
type Keyboard struct {
	pressed func(ebiten.Key) bool
	prev    map[ebiten.Key]bool
}

// NewKeyboard reads ebiten's key state.
func NewKeyboard() *Keyboard {
	return newKeyboard(ebiten.IsKeyPressed)
}

func newKeyboard(pressed func(ebiten.Key) bool) *Keyboard {
	return &Keyboard{pressed: pressed, prev: make(map[ebiten.Key]bool)}
}

// Drain implements input.Source.
func (k *Keyboard) Drain(dst []input.Event) []input.Event {
	for _, b := range keyBindings {
		if k.edge(b.key) == 1 {
			dst = append(dst, input.Event{Kind: b.kind})
		}
	}
	switch k.edge(holdKey) {
	case 1:
		dst = append(dst, input.Event{Kind: input.HoldStart})
	case -1:
		dst = append(dst, input.Event{Kind: input.HoldEnd})
	}
	return dst
}

// edge returns 1 on press, -1 on release and 0 otherwise.
func (k *Keyboard) edge(key ebiten.Key) int {
	now := k.pressed(key)
	was := k.prev[key]
	k.prev[key] = now
	switch {
	case now && !was:
		return 1
	case !now && was:
		return -1
	}
	return 0
}

var _ input.Source = (*Keyboard)(nil)
