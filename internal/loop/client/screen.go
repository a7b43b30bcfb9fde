package client

import (
	"fmt"
	"time"

	"github.com/tomz197/alienfield/internal/draw"
	"github.com/tomz197/alienfield/internal/loop/config"
	"github.com/tomz197/alienfield/internal/sim"
)

var titleArt = []string{
	`    _   _    ___ ___ _  _   ___ ___ ___ _    ___  `,
	`   /_\ | |  |_ _| __| \| | | __|_ _| __| |  |   \ `,
	`  / _ \| |__ | || _|| .' | | _| | || _|| |__| |) |`,
	` /_/ \_\____|___|___|_|\_| |_| |___|___|____|___/ `,
}

// drawFrame renders the canvas and the overlay for the current screen.
func (c *Client) drawFrame() error {
	// Screen transitions leave text behind; start from a blank terminal.
	if c.state.GameState != c.state.prevGameState || c.state.isInactive != c.state.wasInactive {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	var snap *sim.Snapshot
	if c.session != nil && c.state.GameState != GameStateShutdown {
		snap = c.session.Snapshot()
	}
	if snap != nil && c.state.GameState != GameStateStart {
		draw.Scene(c.canvas, snap)
	} else {
		c.canvas.Clear()
	}
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI(snap)
	return c.chunkWriter.Flush()
}

func (c *Client) drawUI(snap *sim.Snapshot) {
	cols, rows := c.canvas.Size()
	centerX, centerY := cols/2, rows/2

	switch {
	case c.state.GameState == GameStateShutdown:
		c.drawShutdownScreen(centerX, centerY)
	case c.state.isInactive:
		c.drawInactivityScreen(centerX, centerY)
	case c.state.GameState == GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case c.state.GameState == GameStatePlaying && snap != nil:
		c.drawPlayingHUD(cols, rows, snap)
	case c.state.GameState == GameStateOver:
		c.drawOverScreen(centerX, centerY)
	}
}

// text writes s and marks the covered cells for repaint next frame.
func (c *Client) text(col, row int, s string) {
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkDirty(col, row, len([]rune(s)))
}

func (c *Client) centered(centerX, row int, s string) {
	c.text(max(centerX-len([]rune(s))/2, 1), row, s)
}

func (c *Client) drawStartScreen(centerX, centerY int) {
	top := centerY - 7
	for i, line := range titleArt {
		c.centered(centerX, top+i, line)
	}
	c.centered(centerX, top+len(titleArt)+1, "~ Hold the field. Clear every alien. ~")

	controls := []string{
		"W A S D / arrows . . Move",
		"SPACE . . . . . . .  Fire",
		"F . . . . .  Toggle auto-fire",
		"Q . . . . . . . . .  Quit",
	}
	y := top + len(titleArt) + 3
	c.centered(centerX, y, "Controls")
	for i, line := range controls {
		c.centered(centerX, y+1+i, line)
	}
	if time.Now().UnixMilli()/600%2 == 0 {
		c.centered(centerX, y+len(controls)+2, ">>  Press SPACE to Start  <<")
	}
}

// drawPlayingHUD uses fixed-width fields so shrinking numbers leave no
// residue between frames.
func (c *Client) drawPlayingHUD(cols, rows int, snap *sim.Snapshot) {
	c.text(2, 1, fmt.Sprintf("Kills: %-5d Enemies: %-5d", snap.Kills, len(snap.Enemies)))
	tick := fmt.Sprintf("Tick: %-8d", snap.Tick)
	c.text(max(cols-len(tick), 1), 1, tick)

	auto := "          "
	if c.state.Holding {
		auto = "AUTO-FIRE "
	}
	c.text(2, rows, fmt.Sprintf("%sShots: %-6d", auto, snap.Shots))
}

func (c *Client) drawOverScreen(centerX, centerY int) {
	r := c.state.Result
	title := "FIELD CLEARED"
	if r.Status == sim.Overrun {
		title = "OVERRUN"
	}
	c.centered(centerX, centerY-4, title)
	c.centered(centerX, centerY-2, fmt.Sprintf("Kills: %d   Shots: %d   Ticks: %d", r.Kills, r.Shots, r.Tick))
	if r.Shots > 0 {
		c.centered(centerX, centerY-1, fmt.Sprintf("Accuracy: %.0f%%", r.Accuracy()))
	}
	if time.Now().UnixMilli()/600%2 == 0 {
		c.centered(centerX, centerY+1, ">>  Press SPACE to Play Again  <<")
	}
	c.centered(centerX, centerY+3, "Q to quit")
}

func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.centered(centerX, centerY-2, "INACTIVITY WARNING")
	left := int((config.InactivityDisconnectUser - time.Since(c.lastInput)).Seconds())
	c.centered(centerX, centerY, fmt.Sprintf("You will be disconnected in %d seconds.", max(left, 0)))
	c.centered(centerX, centerY+2, "Press any key to continue")
}

func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.centered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.centered(centerX, centerY-1, "Please reconnect in a moment.")
	left := int(time.Until(c.state.shutdownUntil).Seconds()) + 1
	c.centered(centerX, centerY+1, fmt.Sprintf("Disconnecting in %d seconds...", max(left, 0)))
	c.centered(centerX, centerY+3, "Press Q to disconnect now")
}
