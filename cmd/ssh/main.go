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

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/futbolito/internal/config"
	"github.com/tomz197/futbolito/internal/draw"
	"github.com/tomz197/futbolito/internal/game"
	"github.com/tomz197/futbolito/internal/loop/client"
	loopconfig "github.com/tomz197/futbolito/internal/loop/config"
	"github.com/tomz197/futbolito/internal/loop/server"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
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
	if _, _, err := config.Seed(); err != nil {
		logger.Fatal("invalid seed", "err", err)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	hub := server.NewHub()
	games := &sessionGames{cfg: cfg, hub: hub, logger: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
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
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "sessions", hub.Len())

	// Notify players and wait for them to disconnect
	hub.Shutdown(loopconfig.ShutdownGracePeriod)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
	logger.Info("server stopped")
}

// sessionGames starts a fresh match for every SSH session.
type sessionGames struct {
	cfg    game.Config
	hub    *server.Hub
	logger *log.Logger
}

func (g *sessionGames) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		defer next(sess)

		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := g.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		if err := g.play(sess, pty.Window, winCh, logger); err != nil {
			logger.Error("game error", "err", err)
		}
		logger.Info("session ended")
	}
}

func (g *sessionGames) play(sess ssh.Session, win ssh.Window, winCh <-chan ssh.Window, logger *log.Logger) error {
	rng, err := config.NewRand()
	if err != nil {
		return err
	}
	match, err := game.New(g.cfg, rng)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	srv := server.NewServer(match, logger)
	go srv.Run(ctx)
	g.hub.Register(srv)
	defer g.hub.Unregister(srv)

	// Track window size changes for the client's resize handling
	sizeTracker := newSizeTracker(win.Width, win.Height)
	go func() {
		for w := range winCh {
			sizeTracker.update(w.Width, w.Height)
		}
	}()

	c := client.NewClient(srv, bufio.NewReader(sess), sess, client.ClientOptions{
		TermSizeFunc: sizeTracker.getSize,
		Logger:       logger,
	})
	return c.Run()
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
