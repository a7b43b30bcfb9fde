package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/alienfield/internal/input"
	"github.com/tomz197/alienfield/internal/physics"
)

// Pad is one on-screen touch control.
type Pad struct {
	Kind  input.Kind
	Label string
	Rect  physics.Rect
}

// Contains reports whether screen point (x, y) falls on the pad.
func (p Pad) Contains(x, y float64) bool {
	r := p.Rect
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// PadLayout places the controls in a strip of height h starting at top:
// a direction cross on the left, fire in the middle and the hold zone on
// the right.
func PadLayout(w, top, h float64) []Pad {
	u := h / 3
	return []Pad{
		{input.Up, "^", physics.Rect{X: u, Y: top, W: u, H: u}},
		{input.Left, "<", physics.Rect{X: 0, Y: top + u, W: u, H: u}},
		{input.Right, ">", physics.Rect{X: 2 * u, Y: top + u, W: u, H: u}},
		{input.Down, "v", physics.Rect{X: u, Y: top + 2*u, W: u, H: u}},
		{input.Fire, "FIRE", physics.Rect{X: w/2 - h/2, Y: top + u/2, W: h, H: 2 * u}},
		{input.HoldStart, "HOLD", physics.Rect{X: w - 1.5*h, Y: top + u/2, W: 1.5 * h, H: 2 * u}},
	}
}

// Touch turns touches on the pads into events. A touch that starts on the
// hold pad keeps auto-fire on until it lifts, wherever it moves.
type Touch struct {
	pads     []Pad
	ids      func([]ebiten.TouchID) []ebiten.TouchID
	position func(ebiten.TouchID) (int, int)

	seen    map[ebiten.TouchID]bool
	holdID  ebiten.TouchID
	holding bool
	buf     []ebiten.TouchID
}

// NewTouch reads ebiten's touch state.
func NewTouch(pads []Pad) *Touch {
	return newTouch(pads, ebiten.AppendTouchIDs, ebiten.TouchPosition)
}

func newTouch(pads []Pad, ids func([]ebiten.TouchID) []ebiten.TouchID, position func(ebiten.TouchID) (int, int)) *Touch {
	return &Touch{pads: pads, ids: ids, position: position, seen: make(map[ebiten.TouchID]bool)}
}

// Pads returns the layout, for drawing.
func (t *Touch) Pads() []Pad {
	return t.pads
}

// Holding reports whether a touch is on the hold pad.
func (t *Touch) Holding() bool {
	return t.holding
}

// Drain implements input.Source.
func (t *Touch) Drain(dst []input.Event) []input.Event {
	t.buf = t.ids(t.buf[:0])
	current := make(map[ebiten.TouchID]bool, len(t.buf))
	for _, id := range t.buf {
		current[id] = true
		if t.seen[id] {
			continue
		}
		x, y := t.position(id)
		pad, ok := t.hit(float64(x), float64(y))
		if !ok {
			continue
		}
		if pad.Kind == input.HoldStart {
			if t.holding {
				continue
			}
			t.holding, t.holdID = true, id
		}
		dst = append(dst, input.Event{Kind: pad.Kind})
	}
	if t.holding && !current[t.holdID] {
		t.holding = false
		dst = append(dst, input.Event{Kind: input.HoldEnd})
	}
	t.seen = current
	return dst
}

func (t *Touch) hit(x, y float64) (Pad, bool) {
	for _, p := range t.pads {
		if p.Contains(x, y) {
			return p, true
		}
	}
	return Pad{}, false
}

var _ input.Source = (*Touch)(nil)
