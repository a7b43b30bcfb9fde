package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tomz197/alienfield/internal/config"
	"github.com/tomz197/alienfield/internal/draw"
	"github.com/tomz197/alienfield/internal/input"
	applog "github.com/tomz197/alienfield/internal/logging"
	"github.com/tomz197/alienfield/internal/loop/client"
	loopcfg "github.com/tomz197/alienfield/internal/loop/config"
	"github.com/tomz197/alienfield/internal/loop/server"
	"github.com/tomz197/alienfield/internal/sim"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// host hands every SSH session its own simulation.
type host struct {
	cfg      sim.Config
	log      *zap.SugaredLogger
	shutdown chan struct{}
	active   sync.WaitGroup
}

func main() {
	log, closeLog := applog.New(applog.FromEnv())
	defer closeLog()

	addr := net.JoinHostPort(config.GetEnv("SSH_HOST", defaultHost), config.GetEnv("SSH_PORT", defaultPort))
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	cfg := config.Session("ALIENFIELD_")
	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid session config", "error", err)
	}
	log.Infow("ssh config", "addr", addr, "host_key", hostKeyPath, "enemies", cfg.EnemyCount, "tick", cfg.TickInterval)

	h := &host{cfg: cfg, log: log, shutdown: make(chan struct{})}

	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			h.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(applog.Printf{Log: log}),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatalw("failed to create server", "error", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	log.Infof("starting SSH server on %s", addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalw("server error", "error", err)
		}
	}()

	<-done
	log.Info("shutting down, notifying players")
	close(h.shutdown)
	h.waitSessions(loopcfg.ShutdownGracePeriod)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Errorw("shutdown error", "error", err)
	}
}

// gameMiddleware runs a terminal client for one SSH session.
func (h *host) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}
		h.active.Add(1)
		defer h.active.Done()

		id := uuid.NewString()
		log := h.log.With("conn", id, "user", sess.User())
		log.Infow("new game session", "term", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		games := 0
		c := client.NewClient(input.StartStream(bufio.NewReader(sess)), sess, client.Options{
			Field:        sim.Field{W: h.cfg.FieldWidth, H: h.cfg.FieldHeight},
			TermSizeFunc: sizeTracker.getSize,
			Shutdown:     h.shutdown,
			Log:          log,
			NewSession: func(ctx context.Context) (server.Session, error) {
				games++
				r, err := server.NewRunner(fmt.Sprintf("%s/%d", id, games), h.cfg, log)
				if err != nil {
					return nil, err
				}
				go r.Run(ctx)
				return r, nil
			},
		})
		if err := c.Run(sess.Context()); err != nil {
			log.Warnw("game error", "error", err)
		}

		log.Infow("session ended", "games", games)
		next(sess)
	}
}

func (h *host) waitSessions(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		h.active.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		h.log.Warn("players still connected after grace period")
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
