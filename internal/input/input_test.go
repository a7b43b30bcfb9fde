package input

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drainAll waits until all n bytes are buffered, so escape sequences are
// never split across drains, then polls s until its reader is exhausted.
func drainAll(t *testing.T, s *Stream, n int) []Event {
	t.Helper()
	require.Eventually(t, func() bool { return len(s.ch) == n }, time.Second, time.Millisecond)
	var events []Event
	require.Eventually(t, func() bool {
		events = s.Drain(events)
		return s.Closed()
	}, time.Second, time.Millisecond)
	return s.Drain(events)
}

func kinds(events []Event) []Kind {
	out := make([]Kind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestStreamDecodesKeys(t *testing.T) {
	const keys = "wasd \x1b[A\x1b[D\rxq"
	s := StartStream(bufio.NewReader(strings.NewReader(keys)))
	got := kinds(drainAll(t, s, len(keys)))
	assert.Equal(t, []Kind{Up, Left, Down, Right, Fire, Up, Left, Confirm, Quit}, got)
}

func TestStreamHoldToggle(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("ffF")))
	got := kinds(drainAll(t, s, 3))
	assert.Equal(t, []Kind{HoldStart, HoldEnd, HoldStart}, got)

	s.Reset()
	assert.False(t, s.holding)
}

func TestStreamJoinsSplitArrowKeys(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	s := StartStream(bufio.NewReader(pr))

	send := func(b string) {
		t.Helper()
		_, err := pw.Write([]byte(b))
		require.NoError(t, err)
		require.Eventually(t, func() bool { return len(s.ch) == len(b) }, time.Second, time.Millisecond)
	}

	send("\x1b[")
	assert.Empty(t, s.Drain(nil))
	send("A")
	assert.Equal(t, []Kind{Up}, kinds(s.Drain(nil)))

	send("w\x1b")
	assert.Equal(t, []Kind{Up}, kinds(s.Drain(nil)))
	send("[D")
	assert.Equal(t, []Kind{Left}, kinds(s.Drain(nil)))

	// An ESC that does not start a sequence is dropped on its own.
	send("\x1b")
	assert.Empty(t, s.Drain(nil))
	send("d")
	assert.Equal(t, []Kind{Right}, kinds(s.Drain(nil)))
}

func TestStreamIgnoresUnknownBytes(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("zx9\x1b[Z")))
	events := drainAll(t, s, 6)
	assert.Empty(t, events)
	assert.Less(t, s.Idle(), time.Second)
}

func TestQueueDrainsInOrder(t *testing.T) {
	q := NewQueue(4)
	assert.True(t, q.Push(Event{Kind: Up}))
	assert.True(t, q.Push(Event{Kind: Fire}))
	assert.Equal(t, 2, q.Len())

	got := q.Drain(nil)
	assert.Equal(t, []Kind{Up, Fire}, kinds(got))
	assert.Empty(t, q.Drain(nil))
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := NewQueue(2)
	assert.True(t, q.Push(Event{Kind: Up}))
	assert.True(t, q.Push(Event{Kind: Down}))
	assert.False(t, q.Push(Event{Kind: Left}))
	assert.Len(t, q.Drain(nil), 2)
}

func TestQueueConcurrentPush(t *testing.T) {
	q := NewQueue(1000)
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				q.Push(Event{Kind: Fire})
			}
		}()
	}
	wg.Wait()
	assert.Len(t, q.Drain(nil), 500)
}

func TestKindNames(t *testing.T) {
	for k := Up; k <= Quit; k++ {
		got, ok := ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("jump")
	assert.False(t, ok)
	assert.True(t, Event{Kind: Right}.IsMove())
	assert.False(t, Event{Kind: Fire}.IsMove())
}
