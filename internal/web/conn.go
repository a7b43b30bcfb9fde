package web

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tomz197/alienfield/internal/input"
	"github.com/tomz197/alienfield/internal/loop/server"
	"github.com/tomz197/alienfield/internal/sim"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
)

// conn pumps one browser connection. Only writePump writes to ws.
type conn struct {
	ws     *websocket.Conn
	codec  Codec
	runner *server.Runner
	every  time.Duration // Snapshot push period
	log    *zap.SugaredLogger
}

func (c *conn) write(v any) error {
	b, err := c.codec.Marshal(v)
	if err != nil {
		return err
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(c.codec.MessageType(), b)
}

func (c *conn) closeNormal(reason string) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// writePump pushes new snapshots at the tick cadence until the session
// ends or ctx is cancelled, then closes the socket.
func (c *conn) writePump(ctx context.Context) {
	defer c.ws.Close()

	push := time.NewTicker(c.every)
	defer push.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	var last *sim.Snapshot
	sendState := func() error {
		snap := c.runner.Snapshot()
		if snap == last {
			return nil
		}
		last = snap
		return c.write(StateMessage{Type: MsgState, State: snap})
	}

	for {
		select {
		case <-ctx.Done():
			c.closeNormal("bye")
			return
		case ev, ok := <-c.runner.Events():
			if !ok {
				c.closeNormal("session stopped")
				return
			}
			if err := sendState(); err != nil {
				return
			}
			if err := c.write(newEndMessage(ev)); err != nil {
				return
			}
			c.closeNormal(ev.Status.String())
			return
		case <-push.C:
			if err := sendState(); err != nil {
				c.log.Debugw("write failed", "error", err)
				return
			}
		case <-ping.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readPump forwards input messages to the runner until the socket fails
// or the browser sends quit.
func (c *conn) readPump() {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		mt, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := codecForFrame(mt).Unmarshal(payload, &msg); err != nil {
			c.log.Debugw("bad client message", "error", err)
			continue
		}
		if msg.Type != MsgInput {
			continue
		}
		kind, ok := input.ParseKind(msg.Event)
		if !ok {
			continue
		}
		switch kind {
		case input.Quit:
			return
		case input.Confirm:
			continue
		}
		if !c.runner.Send(input.Event{Kind: kind}) {
			c.log.Warnw("input dropped", "event", msg.Event)
		}
	}
}
