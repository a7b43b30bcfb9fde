package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/alienfield/internal/config"
	"github.com/tomz197/alienfield/internal/input"
	"github.com/tomz197/alienfield/internal/logging"
	"github.com/tomz197/alienfield/internal/loop/client"
	"github.com/tomz197/alienfield/internal/loop/server"
	"github.com/tomz197/alienfield/internal/sim"
)

func main() {
	cfg := config.Session("ALIENFIELD_")
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// The terminal is the screen, so logs only go to LOG_FILE when set.
	opts := logging.FromEnv()
	log := logging.Nop()
	if opts.File != "" {
		var closeLog func()
		log, closeLog = logging.New(opts)
		defer closeLog()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	games := 0
	c := client.NewClient(input.StartStream(bufio.NewReader(os.Stdin)), os.Stdout, client.Options{
		Field: sim.Field{W: cfg.FieldWidth, H: cfg.FieldHeight},
		Log:   log,
		NewSession: func(ctx context.Context) (server.Session, error) {
			games++
			r, err := server.NewRunner(fmt.Sprintf("local-%d", games), cfg, log)
			if err != nil {
				return nil, err
			}
			go r.Run(ctx)
			return r, nil
		},
	})
	if err := c.Run(context.Background()); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
