// Package loop runs a complete local match: the simulation server and a
// terminal client in one process.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/futbolito/internal/draw"
	"github.com/tomz197/futbolito/internal/game"
	"github.com/tomz197/futbolito/internal/loop/client"
	"github.com/tomz197/futbolito/internal/loop/server"
	"github.com/tomz197/futbolito/internal/object"
)

// Options configures a local match.
type Options struct {
	Game         game.Config
	Rand         object.Rand // nil seeds from the clock
	TermSizeFunc draw.TermSizeFunc
	Whistler     client.Whistler
	Logger       *log.Logger
}

// Run plays until the player quits. Blocks for the whole session.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	g, err := game.New(opts.Game, rng)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := server.NewServer(g, opts.Logger)
	go srv.Run(ctx)

	c := client.NewClient(srv, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Whistler:     opts.Whistler,
		Logger:       opts.Logger,
	})
	if err := c.Run(); err != nil {
		return fmt.Errorf("terminal client: %w", err)
	}
	return nil
}
