package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/alienfield/internal/config"
	"github.com/tomz197/alienfield/internal/logging"
	loopcfg "github.com/tomz197/alienfield/internal/loop/config"
	"github.com/tomz197/alienfield/internal/sim"
	"github.com/tomz197/alienfield/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

func main() {
	var addr string
	flag.StringVar(&addr, "addr",
		net.JoinHostPort(config.GetEnv("WEB_HOST", defaultHost), config.GetEnv("WEB_PORT", defaultPort)),
		"listen address, e.g. :8080")
	flag.Parse()

	log, closeLog := logging.New(logging.FromEnv())
	defer closeLog()

	// Fail fast on a bad environment instead of on the first connection.
	if err := config.Session("ALIENFIELD_").Validate(); err != nil {
		log.Fatalw("invalid session config", "error", err)
	}

	host := web.New(func() sim.Config { return config.Session("ALIENFIELD_") }, log)
	srv := &http.Server{Addr: addr, Handler: host.Handler()}

	go func() {
		log.Infof("web host listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), loopcfg.ShutdownGracePeriod)
	defer cancel()
	if err := host.Shutdown(ctx); err != nil {
		log.Warnw("sessions did not close in time", "error", err)
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnw("http shutdown", "error", err)
	}
}
