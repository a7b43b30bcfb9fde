package input

import (
	"bufio"
	"sync/atomic"
	"time"
)

// Stream reads raw terminal bytes on its own goroutine and decodes them into
// events. Terminals report no key releases, so hold-fire is a toggle.
type Stream struct {
	ch       chan byte
	closed   atomic.Bool
	holding  bool
	lastSeen time.Time
	pending  []byte // Incomplete escape sequence from the previous Drain
}

// StartStream spawns a goroutine that reads from r until it fails.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:       make(chan byte, 128),
		lastSeen: time.Now(),
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Drain implements Source. Arrow keys arrive as CSI sequences (ESC [ A..D).
// A sequence cut off at the end of a batch is finished on the next Drain.
func (s *Stream) Drain(dst []Event) []Event {
	buf := s.pending
	s.pending = nil
	n := len(buf)
read:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed.Store(true)
				break read
			}
			buf = append(buf, b)
		default:
			break read
		}
	}
	if len(buf) == n {
		s.pending = buf
		return dst
	}
	s.lastSeen = time.Now()

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' && csiPrefix(buf[i+1:]) && !s.closed.Load() {
			s.pending = append([]byte(nil), buf[i:]...)
			break
		}
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if k, ok := arrowKind(buf[i+2]); ok {
				dst = append(dst, Event{Kind: k})
				i += 2
				continue
			}
		}
		dst = s.appendByte(dst, b)
	}
	return dst
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed.Load()
}

// Idle returns how long it has been since any byte arrived.
func (s *Stream) Idle() time.Duration {
	return time.Since(s.lastSeen)
}

// Reset drops the hold-fire toggle, e.g. when a new session starts.
func (s *Stream) Reset() {
	s.holding = false
}

// csiPrefix reports whether rest, the bytes after an ESC, could still grow
// into ESC [ <code>.
func csiPrefix(rest []byte) bool {
	return len(rest) == 0 || (len(rest) == 1 && rest[0] == '[')
}

func arrowKind(code byte) (Kind, bool) {
	switch code {
	case 'A':
		return Up, true
	case 'B':
		return Down, true
	case 'C':
		return Right, true
	case 'D':
		return Left, true
	}
	return 0, false
}

func (s *Stream) appendByte(dst []Event, b byte) []Event {
	switch b {
	case 'w', 'W', 'i', 'I':
		return append(dst, Event{Kind: Up})
	case 's', 'S', 'k', 'K':
		return append(dst, Event{Kind: Down})
	case 'a', 'A', 'j', 'J':
		return append(dst, Event{Kind: Left})
	case 'd', 'D', 'l', 'L':
		return append(dst, Event{Kind: Right})
	case ' ':
		return append(dst, Event{Kind: Fire})
	case 'f', 'F':
		s.holding = !s.holding
		if s.holding {
			return append(dst, Event{Kind: HoldStart})
		}
		return append(dst, Event{Kind: HoldEnd})
	case '\n', '\r':
		return append(dst, Event{Kind: Confirm})
	case 'q', 'Q', '\x03':
		return append(dst, Event{Kind: Quit})
	}
	return dst
}

var _ Source = (*Stream)(nil)
