// Package client runs one terminal connection: it reads keys, forwards them
// to a session, and renders the session's snapshots.
package client

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/alienfield/internal/draw"
	"github.com/tomz197/alienfield/internal/input"
	"github.com/tomz197/alienfield/internal/loop/config"
	"github.com/tomz197/alienfield/internal/loop/server"
	"github.com/tomz197/alienfield/internal/sim"
)

// Keys is the terminal input the client polls each frame.
type Keys interface {
	input.Source
	Closed() bool
	Reset()
}

// Factory starts a new session that stops when ctx is cancelled.
type Factory func(ctx context.Context) (server.Session, error)

// Options configures the client.
type Options struct {
	NewSession   Factory
	Field        sim.Field // Field size used to scale the canvas
	TermSizeFunc draw.TermSizeFunc
	// Shutdown is closed by the host when it is going away.
	Shutdown <-chan struct{}
	Log      *zap.SugaredLogger
}

// Client handles rendering and input for a single connection.
type Client struct {
	opts         Options
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	keys         Keys
	events       []input.Event
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	log          *zap.SugaredLogger

	session     server.Session
	stopSession context.CancelFunc
}

// NewClient creates a client reading from keys and drawing to w.
func NewClient(keys Keys, w io.Writer, opts Options) *Client {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Field.W <= 0 || opts.Field.H <= 0 {
		d := sim.DefaultConfig()
		opts.Field = sim.Field{W: d.FieldWidth, H: d.FieldHeight}
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	termW, termH, _ := opts.TermSizeFunc()
	w0, h0, offCol, offRow := fitArea(termW, termH, opts.Field)
	canvas := draw.NewCanvas(w0, h0, opts.Field.W, opts.Field.H)
	canvas.SetOffset(offCol, offRow)

	return &Client{
		opts:         opts,
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offCol, offRow),
		writer:       w,
		keys:         keys,
		lastInput:    time.Now(),
		termSizeFunc: opts.TermSizeFunc,
		log:          log,
	}
}

// State exposes the client state, mainly for tests.
func (c *Client) State() *ClientState {
	return c.state
}

// Run drives the client until the player quits, the input ends, the
// inactivity limit passes or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer c.endSession()

	for c.state.Running {
		frameStart := time.Now()
		if ctx.Err() != nil {
			break
		}

		c.processInput()
		c.processSessionEvents()
		c.checkShutdown()
		c.updateScreen()

		if err := c.drawFrame(); err != nil {
			return err
		}

		if elapsed := time.Since(frameStart); elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput drains pending keys and acts on them for the current screen.
func (c *Client) processInput() {
	c.events = c.keys.Drain(c.events[:0])
	if c.keys.Closed() {
		c.state.Running = false
	}

	idle := time.Since(c.lastInput)
	switch {
	case len(c.events) > 0:
		c.lastInput = time.Now()
		c.state.isInactive = false
	case idle > config.InactivityDisconnectUser:
		c.log.Infow("disconnecting inactive client", "idle", idle)
		c.state.Running = false
	case idle > config.InactivityWarnUser:
		c.state.isInactive = true
	}

	for _, ev := range c.events {
		if ev.Kind == input.Quit {
			c.state.Running = false
			return
		}
		switch c.state.GameState {
		case GameStateStart, GameStateOver:
			if ev.Kind == input.Confirm || ev.Kind == input.Fire {
				c.startGame()
			}
		case GameStatePlaying:
			c.forward(ev)
		}
	}
}

func (c *Client) forward(ev input.Event) {
	switch ev.Kind {
	case input.Confirm:
		return
	case input.HoldStart:
		c.state.Holding = true
	case input.HoldEnd:
		c.state.Holding = false
	}
	c.session.Send(ev)
}

// processSessionEvents moves to the result screen when the session ends.
func (c *Client) processSessionEvents() {
	if c.state.GameState != GameStatePlaying {
		return
	}
	select {
	case ev, ok := <-c.session.Events():
		if !ok {
			return
		}
		c.state.Result = ev
		c.state.Holding = false
		c.state.GameState = GameStateOver
	default:
	}
}

func (c *Client) checkShutdown() {
	if c.state.GameState == GameStateShutdown {
		if time.Now().After(c.state.shutdownUntil) {
			c.state.Running = false
		}
		return
	}
	if c.opts.Shutdown == nil {
		return
	}
	select {
	case <-c.opts.Shutdown:
		c.endSession()
		c.state.GameState = GameStateShutdown
		c.state.shutdownUntil = time.Now().Add(config.ShutdownDisplayTime)
	default:
	}
}

// startGame replaces any previous session with a fresh one.
func (c *Client) startGame() {
	c.endSession()
	c.keys.Reset()
	c.state.Holding = false

	ctx, cancel := context.WithCancel(context.Background())
	sess, err := c.opts.NewSession(ctx)
	if err != nil {
		cancel()
		c.log.Errorw("session start failed", "error", err)
		c.state.Running = false
		return
	}
	c.session, c.stopSession = sess, cancel
	c.state.Games++
	c.state.GameState = GameStatePlaying
}

func (c *Client) endSession() {
	if c.stopSession == nil {
		return
	}
	c.stopSession()
	<-c.session.Done()
	c.stopSession = nil
}

// updateScreen follows terminal resizes.
func (c *Client) updateScreen() {
	termW, termH, err := c.termSizeFunc()
	if err != nil {
		return
	}
	w, h, offCol, offRow := fitArea(termW, termH, c.opts.Field)
	cols, rows := c.canvas.Size()
	oc, orow := c.canvas.Offset()
	if w != cols || h != rows || offCol != oc || offRow != orow {
		draw.ClearScreen(c.writer)
		c.canvas.Resize(w, h)
		c.canvas.ForceRedraw()
	}
	c.canvas.SetOffset(offCol, offRow)
	c.chunkWriter.SetOffset(offCol, offRow)
}

// fitArea picks the largest area within the terminal and the render caps
// that keeps the field's aspect ratio (a cell is two pixels tall), centered.
func fitArea(termW, termH int, field sim.Field) (w, h, offCol, offRow int) {
	termW, termH = max(termW, 1), max(termH, 1)
	w = min(termW, config.MaxTermWidth)
	h = min(termH, config.MaxTermHeight)
	aspect := field.W / field.H
	if float64(w) > 2*float64(h)*aspect {
		w = max(int(2*float64(h)*aspect), 1)
	} else {
		h = max(int(float64(w)/aspect/2), 1)
	}
	return w, h, (termW - w) / 2, (termH - h) / 2
}
