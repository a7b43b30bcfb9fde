// Package desktop runs a session in an ebiten window with keyboard and
// touch controls.
package desktop

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/tomz197/alienfield/internal/input"
	"github.com/tomz197/alienfield/internal/object"
	"github.com/tomz197/alienfield/internal/sim"
)

// StripHeight is the height of the touch control strip under the field.
const StripHeight = 120

const (
	playerRadius = 7
	enemyRadius  = 9
)

var (
	colBackground = color.RGBA{12, 14, 20, 255}
	colStrip      = color.RGBA{24, 26, 34, 255}
	colTerrain    = color.RGBA{70, 78, 96, 255}
	colEnemy      = color.RGBA{214, 72, 64, 255}
	colProjectile = color.RGBA{250, 220, 90, 255}
	colPlayer     = color.RGBA{90, 200, 120, 255}
	colPad        = color.RGBA{120, 130, 150, 255}
	colPadActive  = color.RGBA{250, 220, 90, 255}
)

// Game implements ebiten.Game over a Scheduler. A finished session
// restarts on Confirm.
type Game struct {
	cfg  sim.Config
	log  *zap.SugaredLogger
	step time.Duration

	sched   *sim.Scheduler
	sources []input.Source
	touch   *Touch
	buf     []input.Event
	games   int
	held    bool // A hold control is down on some source
}

// New validates cfg and starts the first session. A nil logger disables
// logging.
func New(cfg sim.Config, log *zap.SugaredLogger) (*Game, error) {
	touch := NewTouch(PadLayout(cfg.FieldWidth, cfg.FieldHeight, StripHeight))
	return newGame(cfg, log, NewKeyboard(), touch)
}

func newGame(cfg sim.Config, log *zap.SugaredLogger, keys input.Source, touch *Touch) (*Game, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	g := &Game{
		cfg:     cfg,
		log:     log,
		step:    time.Second / ebiten.DefaultTPS,
		sources: []input.Source{keys, touch},
		touch:   touch,
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) restart() error {
	sched, err := sim.NewScheduler(g.cfg, g.log)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	g.sched = sched
	if g.held {
		// Sources only report edges, so a hold kept down across the
		// restart is handed to the new session here.
		sched.Press(input.Event{Kind: input.HoldStart})
	}
	g.games++
	g.log.Infow("session started", "game", g.games, "seed", sched.Seed())
	return nil
}

// Scheduler returns the current session.
func (g *Game) Scheduler() *sim.Scheduler {
	return g.sched
}

// Update drains input and advances the simulation by one ebiten tick.
func (g *Game) Update() error {
	g.buf = g.buf[:0]
	for _, src := range g.sources {
		g.buf = src.Drain(g.buf)
	}
	for _, ev := range g.buf {
		switch {
		case ev.Kind == input.Quit:
			g.log.Infow("window closed by player", "game", g.games)
			return ebiten.Termination
		case ev.Kind == input.Confirm:
			if g.sched.Status().Terminal() {
				if err := g.restart(); err != nil {
					return err
				}
			}
		default:
			switch ev.Kind {
			case input.HoldStart:
				g.held = true
			case input.HoldEnd:
				g.held = false
			}
			g.sched.Press(ev)
		}
	}
	before := g.sched.Status()
	g.sched.Advance(g.step)
	if st := g.sched.Status(); st != before {
		snap := g.sched.Snapshot()
		g.log.Infow("session ended", "game", g.games, "status", st, "tick", snap.Tick, "kills", snap.Kills, "shots", snap.Shots)
	}
	return nil
}

// Draw renders the current snapshot and the touch pads.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sched.Snapshot()
	fw, fh := float32(snap.Field.W), float32(snap.Field.H)

	screen.Fill(colBackground)
	vector.FillRect(screen, 0, fh, fw, StripHeight, colStrip, false)

	for _, r := range snap.Terrain {
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), colTerrain, false)
	}
	for _, e := range snap.Enemies {
		vector.FillCircle(screen, float32(e.X), float32(e.Y), enemyRadius, colEnemy, true)
	}
	for _, p := range snap.Projectiles {
		vector.FillCircle(screen, float32(p.X), float32(p.Y), max(float32(p.R), 2), colProjectile, true)
	}

	facing, ok := object.ParseDirection(snap.Player.Facing)
	if !ok {
		facing = object.Up
	}
	dx, dy := facing.Unit()
	px, py := float32(snap.Player.X), float32(snap.Player.Y)
	vector.FillCircle(screen, px, py, playerRadius, colPlayer, true)
	vector.StrokeLine(screen, px, py, px+float32(dx)*playerRadius*2, py+float32(dy)*playerRadius*2, 3, colPlayer, true)

	for _, pad := range g.touch.Pads() {
		clr := colPad
		if pad.Kind == input.HoldStart && (g.touch.Holding() || g.sched.Holding()) {
			clr = colPadActive
		}
		r := pad.Rect
		vector.StrokeRect(screen, float32(r.X)+2, float32(r.Y)+2, float32(r.W)-4, float32(r.H)-4, 2, clr, false)
		ebitenutil.DebugPrintAt(screen, pad.Label, int(r.X+r.W/2)-len(pad.Label)*3, int(r.Y+r.H/2)-8)
	}

	ebitenutil.DebugPrintAt(screen, g.hud(snap), 8, 8)
	if snap.Status.Terminal() {
		msg := fmt.Sprintf("%s  -  press ENTER to play again", g.result(snap.Status))
		ebitenutil.DebugPrintAt(screen, msg, int(fw)/2-len(msg)*3, int(fh)/2)
	}
}

func (g *Game) hud(snap *sim.Snapshot) string {
	hold := ""
	if g.sched.Holding() {
		hold = "  [AUTO]"
	}
	return fmt.Sprintf("game %d  tick %d  kills %d  shots %d  enemies %d%s",
		g.games, snap.Tick, snap.Kills, snap.Shots, len(snap.Enemies), hold)
}

func (g *Game) result(st sim.Status) string {
	if st == sim.Cleared {
		return "FIELD CLEARED"
	}
	return "OVERRUN"
}

// Layout fixes the logical screen to the field plus the control strip.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.cfg.FieldWidth), int(g.cfg.FieldHeight) + StripHeight
}

var _ ebiten.Game = (*Game)(nil)
