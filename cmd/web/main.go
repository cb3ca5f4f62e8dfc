package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tomz197/futbolito/internal/config"
	"github.com/tomz197/futbolito/internal/input"
	loopconfig "github.com/tomz197/futbolito/internal/loop/config"
	"github.com/tomz197/futbolito/internal/loop/server"
	"github.com/tomz197/futbolito/internal/object"
	"github.com/tomz197/futbolito/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

func main() {
	logger := config.NewLogger(os.Stderr, config.GetEnv("FUTBOLITO_LOG_LEVEL", "info"))

	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("load environment", "err", err)
	}
	cfg, err := config.LoadGame()
	if err != nil {
		logger.Fatal("invalid game configuration", "err", err)
	}
	// Browsers report raw device axes, so phones default to portrait mapping.
	if _, ok := os.LookupEnv("FUTBOLITO_AXES"); !ok {
		cfg.Axes = input.AxesPortrait
	}
	if _, _, err := config.Seed(); err != nil {
		logger.Fatal("invalid seed", "err", err)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	gin.SetMode(config.GetEnv("GIN_MODE", gin.ReleaseMode))

	// The seed was validated above, so per-session sources cannot fail.
	newRand := func() object.Rand {
		rng, _ := config.NewRand()
		return rng
	}

	hub := server.NewHub()
	handler, err := web.NewHandler(web.Options{
		Game:    cfg,
		NewRand: newRand,
		Hub:     hub,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("create web handler", "err", err)
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           web.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting web server", "addr", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "sessions", hub.Len())

	// Hijacked websocket connections are not tracked by http.Server, so the
	// hub closes them before the listener goes away.
	hub.Shutdown(loopconfig.ShutdownGracePeriod)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
	logger.Info("server stopped")
}
