package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/alienfield/internal/sim"
)

// testConfig keeps one motionless enemy that shots practically never hit.
func testConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Terrain = nil
	cfg.EnemyCount = 1
	cfg.MinEnemySpeed, cfg.MaxEnemySpeed = 0, 0
	cfg.KillRadius = 1e-9
	cfg.ProjectileRadius = 0
	cfg.TickInterval = 5 * time.Millisecond
	cfg.AutoFireInterval = 20 * time.Millisecond
	cfg.Seed = 3
	return cfg
}

func startServer(t *testing.T, newConfig func() sim.Config) (*Server, *httptest.Server) {
	t.Helper()
	s := New(newConfig, nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server, codec string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?codec=" + codec
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	return ws
}

type envelope struct {
	Type    string        `json:"type"`
	Session string        `json:"session"`
	TickMs  int64         `json:"tick_ms"`
	State   *sim.Snapshot `json:"state"`
	Status  string        `json:"status"`
	Kills   int           `json:"kills"`
}

func readJSON(t *testing.T, ws *websocket.Conn) envelope {
	t.Helper()
	mt, b, err := ws.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, mt)
	var env envelope
	require.NoError(t, json.Unmarshal(b, &env))
	return env
}

func sendInput(t *testing.T, ws *websocket.Conn, ev string) {
	t.Helper()
	require.NoError(t, ws.WriteJSON(ClientMessage{Type: MsgInput, Event: ev}))
}

func TestCodecByName(t *testing.T) {
	for _, name := range []string{"", "json", "msgpack"} {
		_, ok := CodecByName(name)
		assert.True(t, ok, name)
	}
	_, ok := CodecByName("xml")
	assert.False(t, ok)
}

func TestIndexAndHealth(t *testing.T) {
	_, ts := startServer(t, testConfig)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "/ws?codec=json")

	resp, err = http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))
}

func TestRejectsUnknownCodec(t *testing.T) {
	_, ts := startServer(t, testConfig)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?codec=xml"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRejectsInvalidConfig(t *testing.T) {
	_, ts := startServer(t, func() sim.Config {
		cfg := testConfig()
		cfg.MoveStep = 0
		return cfg
	})
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestJSONSessionFlow(t *testing.T) {
	s, ts := startServer(t, testConfig)
	ws := dial(t, ts, "json")

	welcome := readJSON(t, ws)
	require.Equal(t, MsgWelcome, welcome.Type)
	require.NotEmpty(t, welcome.Session)
	assert.Equal(t, int64(5), welcome.TickMs)
	assert.Equal(t, []string{welcome.Session}, s.Sessions())

	sendInput(t, ws, "right")
	sendInput(t, ws, "fire")
	sendInput(t, ws, "bogus")

	for {
		env := readJSON(t, ws)
		require.Equal(t, MsgState, env.Type)
		if env.State.Shots == 1 {
			assert.Equal(t, "right", env.State.Player.Facing)
			break
		}
	}

	resp, err := http.Get(ts.URL + "/metrics?session=" + welcome.Session)
	require.NoError(t, err)
	var m struct {
		Session string         `json:"session"`
		Metrics map[string]any `json:"metrics"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	resp.Body.Close()
	assert.Equal(t, welcome.Session, m.Session)
	assert.EqualValues(t, 2, m.Metrics["inputs_accepted"])
}

func TestQuitClosesSession(t *testing.T) {
	s, ts := startServer(t, testConfig)
	ws := dial(t, ts, "json")
	readJSON(t, ws)
	sendInput(t, ws, "quit")

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	require.Eventually(t, func() bool { return len(s.Sessions()) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestSessionEndMessage(t *testing.T) {
	_, ts := startServer(t, func() sim.Config {
		cfg := testConfig()
		cfg.EnemyCount = 0
		return cfg
	})
	ws := dial(t, ts, "json")
	readJSON(t, ws)

	var end envelope
	for end.Type != MsgEnd {
		end = readJSON(t, ws)
	}
	assert.Equal(t, "cleared", end.Status)

	_, _, err := ws.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestMsgpackCodec(t *testing.T) {
	_, ts := startServer(t, testConfig)
	ws := dial(t, ts, "msgpack")

	mt, b, err := ws.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.BinaryMessage, mt)
	var welcome Welcome
	require.NoError(t, msgpack.Unmarshal(b, &welcome))
	assert.Equal(t, "msgpack", welcome.Codec)
	assert.Equal(t, sim.Field{W: 800, H: 600}, welcome.Field)

	in, err := msgpack.Marshal(ClientMessage{Type: MsgInput, Event: "fire"})
	require.NoError(t, err)
	require.NoError(t, ws.WriteMessage(websocket.BinaryMessage, in))

	for {
		mt, b, err := ws.ReadMessage()
		require.NoError(t, err)
		require.Equal(t, websocket.BinaryMessage, mt)
		var msg StateMessage
		require.NoError(t, msgpack.Unmarshal(b, &msg))
		require.Equal(t, MsgState, msg.Type)
		if msg.State.Shots == 1 {
			assert.Len(t, msg.State.Enemies, 1)
			break
		}
	}
}

func TestMetricsUnknownAndList(t *testing.T) {
	_, ts := startServer(t, testConfig)

	resp, err := http.Get(ts.URL + "/metrics?session=missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	var list struct {
		Sessions int `json:"sessions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	assert.Zero(t, list.Sessions)
}

func TestShutdownClosesConnections(t *testing.T) {
	s, ts := startServer(t, testConfig)
	ws := dial(t, ts, "json")
	readJSON(t, ws)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.Empty(t, s.Sessions())

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}
