package client

import (
	"bufio"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/tomz197/futbolito/internal/draw"
	"github.com/tomz197/futbolito/internal/input"
	"github.com/tomz197/futbolito/internal/loop/config"
	"github.com/tomz197/futbolito/internal/loop/server"
)

// Whistler plays the referee whistle.
type Whistler interface {
	Goal()
	FullTime()
}

type silentWhistler struct{}

func (silentWhistler) Goal()     {}
func (silentWhistler) FullTime() {}

// Client handles rendering and input for a single terminal.
type Client struct {
	server       server.GameServer
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	styles       styles
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	whistler     Whistler
	tiltStrength float64
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Whistler     Whistler    // nil plays nothing
	Logger       *log.Logger // nil discards
	TiltStrength float64     // Virtual tilt of a held key, 0 uses the default
}

// NewClient creates a new client attached to the given match.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	whistler := opts.Whistler
	if whistler == nil {
		whistler = silentWhistler{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	strength := opts.TiltStrength
	if strength <= 0 {
		strength = config.KeyTiltStrength
	}

	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	snap := gs.Snapshot()
	termWidth, termHeight, _ := draw.TerminalSize(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := fitField(termWidth, termHeight, snap.Width, snap.Height)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, snap.Width, snap.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	// Styles render for the session, which may not be the process's stdout.
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.ANSI)

	return &Client{
		server:       gs,
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		styles:       newStyles(renderer),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		whistler:     whistler,
		tiltStrength: strength,
		logger:       logger,
	}
}

// Run starts the client loop. Blocks until the player quits, goes idle or the
// server shuts down.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		if c.state.GameState == GameStateShutdown {
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// Let the ball roll to a stop if the match outlives this client.
	c.server.SetTilt(input.Tilt{})

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and forwards tilt and restart requests.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting idle player")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}

	tilt := input.KeyTilt(c.state.Input, c.tiltStrength)
	if tilt != c.state.Tilt {
		c.server.SetTilt(tilt)
		c.state.Tilt = tilt
	}

	// The snapshot decides, since the round-ended event may have been dropped.
	if c.state.Input.Restart && c.server.Snapshot().Ended {
		c.server.Restart()
		input.ResetKeyInput(c.inputStream)
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event := <-c.server.Events():
			switch event.Type {
			case server.EventGoal:
				c.whistler.Goal()
			case server.EventRoundEnded:
				c.whistler.FullTime()
				c.state.GameState = GameStateEnded
			case server.EventRestarted:
				c.state.GameState = GameStatePlaying
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize and field size changes, keeping the
// field's aspect ratio within the max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSize(c.termSizeFunc)
	if err != nil {
		return
	}
	snap := c.server.Snapshot()
	renderWidth, renderHeight, offsetCol, offsetRow := fitField(termWidth, termHeight, snap.Width, snap.Height)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetLogicalSize(snap.Width, snap.Height)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// fitField picks the largest render area with the field's aspect ratio that
// fits both the terminal and the max render resolution, and the offset that
// centers it. Half-block pixels are square, so a row holds two pixels.
func fitField(termWidth, termHeight int, fieldWidth, fieldHeight float64) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	maxWidth := min(termWidth, config.MaxTermWidth)
	maxHeight := min(termHeight, config.MaxTermHeight)
	if maxWidth <= 0 || maxHeight <= 0 || fieldWidth <= 0 || fieldHeight <= 0 {
		return 0, 0, 0, 0
	}

	ratio := fieldWidth / fieldHeight
	renderHeight = maxHeight
	renderWidth = int(math.Round(float64(2*maxHeight) * ratio))
	if renderWidth > maxWidth {
		renderWidth = maxWidth
		renderHeight = int(math.Round(float64(maxWidth) / ratio / 2))
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)

	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
