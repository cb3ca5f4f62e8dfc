package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/futbolito/internal/draw"
	"github.com/tomz197/futbolito/internal/loop/config"
	"github.com/tomz197/futbolito/internal/match"
	"github.com/tomz197/futbolito/internal/object"
	"github.com/tomz197/futbolito/internal/scene"
)

// Canvas and ANSI 256 palette entries for scene colors.
var (
	canvasColors = map[object.Color]draw.Color{
		object.ColorWhite:   draw.ColorWhite,
		object.ColorYellow:  draw.ColorYellow,
		object.ColorMagenta: draw.ColorMagenta,
		object.ColorCyan:    draw.ColorCyan,
		object.ColorGreen:   draw.ColorGreen,
		object.ColorRed:     draw.ColorRed,
		object.ColorGray:    draw.ColorGray,
	}
	termColors = map[object.Color]lipgloss.Color{
		object.ColorWhite:   lipgloss.Color("15"),
		object.ColorYellow:  lipgloss.Color("11"),
		object.ColorMagenta: lipgloss.Color("13"),
		object.ColorCyan:    lipgloss.Color("14"),
		object.ColorGreen:   lipgloss.Color("10"),
		object.ColorRed:     lipgloss.Color("9"),
		object.ColorGray:    lipgloss.Color("8"),
	}
)

type styles struct {
	scoreBox lipgloss.Style
	banner   lipgloss.Style
	title    lipgloss.Style
	hint     lipgloss.Style
	renderer *lipgloss.Renderer
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		scoreBox: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(termColors[object.ColorGray]).
			Padding(0, 1),
		banner: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(termColors[object.ColorYellow]).
			Padding(1, 3).
			Align(lipgloss.Center),
		title:    r.NewStyle().Bold(true).Foreground(termColors[object.ColorYellow]),
		hint:     r.NewStyle().Faint(true),
		renderer: r,
	}
}

func (s styles) team(c object.Color) lipgloss.Style {
	return s.renderer.NewStyle().Bold(true).Foreground(termColors[c])
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	snapshot := c.server.Snapshot()
	c.syncGameState(snapshot)

	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.ClearAll()
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	c.drawField(snapshot)

	if _, err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	// Draw border when terminal exceeds max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

// syncGameState follows the published phase unless the server is going away.
func (c *Client) syncGameState(snapshot *scene.Snapshot) {
	if c.state.GameState == GameStateShutdown {
		return
	}
	if snapshot.Ended {
		c.state.GameState = GameStateEnded
	} else {
		c.state.GameState = GameStatePlaying
	}
}

// drawField draws the table, goals, confetti and ball onto the canvas.
func (c *Client) drawField(s *scene.Snapshot) {
	tw, th := c.canvas.TerminalWidth(), c.canvas.TerminalHeight()
	if tw == 0 || th == 0 {
		return
	}

	// Keep the right and bottom lines on the last pixel instead of past it.
	right := s.Width - s.Width/float64(tw)
	bottom := s.Height - s.Height/float64(2*th)
	top := s.TopBound - s.Ball.Radius
	halfway := (top + bottom) / 2

	c.canvas.DrawRect(draw.Point{X: 0, Y: top}, draw.Point{X: right, Y: bottom}, draw.ColorGray)
	c.canvas.DrawLine(draw.Point{X: 0, Y: halfway}, draw.Point{X: right, Y: halfway}, draw.ColorGray)
	c.canvas.FillCircle(draw.Point{X: s.Width / 2, Y: halfway}, s.Ball.VisibleRadius/3, draw.ColorGray)

	for _, g := range s.Goals {
		c.canvas.FillRect(
			draw.Point{X: g.Rect.Min.X, Y: g.Rect.Min.Y},
			draw.Point{X: g.Rect.Max.X, Y: min(g.Rect.Max.Y, bottom)},
			canvasColors[g.Color],
		)
	}

	dot := s.Width * config.ConfettiDotScale
	for _, p := range s.Particles {
		c.canvas.FillCircle(draw.Point{X: p.Position.X, Y: p.Position.Y}, dot, canvasColors[p.Color])
	}

	c.canvas.FillCircle(draw.Point{X: s.Ball.Center.X, Y: s.Ball.Center.Y}, s.Ball.VisibleRadius, canvasColors[s.Ball.Color])
}

// drawUI draws the text overlay.
func (c *Client) drawUI(s *scene.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	c.drawHUD(termWidth, s)
	if s.Ended {
		c.drawGameOver(centerX, centerY, s)
	}
}

// drawHUD draws the round clock and the score box.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD(termWidth int, s *scene.Snapshot) {
	cw := c.chunkWriter

	cw.WriteCentered(termWidth/2+1, 2, fmt.Sprintf("%-11s", s.TimeText))

	box := c.styles.scoreBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		c.styles.team(s.Top.Color).Render(fmt.Sprintf("%s %3d", teamName(s.Top.Color), s.Top.Goals)),
		c.styles.team(s.Bottom.Color).Render(fmt.Sprintf("%s %3d", teamName(s.Bottom.Color), s.Bottom.Goals)),
	))
	if lipgloss.Width(box) < termWidth/2 {
		c.writeBlock(2, 1, box)
	}
}

// teamName pads team names to the same width.
func teamName(color object.Color) string {
	switch color {
	case object.ColorGreen:
		return "Green"
	case object.ColorRed:
		return "Red  "
	default:
		return fmt.Sprintf("%-5s", color)
	}
}

// drawGameOver draws the end of round banner centered on the field.
func (c *Client) drawGameOver(centerX, centerY int, s *scene.Snapshot) {
	outcomeStyle := c.styles.team(object.ColorWhite)
	if s.Outcome != nil {
		switch *s.Outcome {
		case match.OutcomeTop:
			outcomeStyle = c.styles.team(s.Top.Color)
		case match.OutcomeBottom:
			outcomeStyle = c.styles.team(s.Bottom.Color)
		}
	}

	// Blinking restart prompt
	prompt := strings.Repeat(" ", len("press R to play again"))
	if time.Now().UnixMilli()/600%2 == 0 {
		prompt = "press R to play again"
	}

	banner := c.styles.banner.Render(lipgloss.JoinVertical(lipgloss.Center,
		c.styles.title.Render("FULL TIME"),
		"",
		outcomeStyle.Render(s.OutcomeText),
		s.ScoreText,
		"",
		c.styles.hint.Render(prompt),
	))

	w, h := lipgloss.Width(banner), lipgloss.Height(banner)
	c.writeBlock(centerX-w/2+1, centerY-h/2+1, banner)
}

// writeBlock writes a multi-line block with its top-left corner at (col, row)
// and marks the covered cells so the canvas repaints them next frame.
func (c *Client) writeBlock(col, row int, block string) {
	for i, line := range strings.Split(block, "\n") {
		c.chunkWriter.WriteAt(col, row+i, line)
		c.canvas.MarkTextDirty(col, row+i, lipgloss.Width(line))
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")
	cw.WriteCentered(centerX, centerY, fmt.Sprintf(
		"Disconnecting in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	))
	cw.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	cw.WriteCentered(centerX, centerY-1, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	cw.WriteCentered(centerX, centerY+1, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	cw.WriteCentered(centerX, centerY+3, "Press Q to disconnect now")
}
