package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestFillCircleScaled(t *testing.T) {
	c := NewScaledCanvas(36, 32, 360, 640) // 10 logical units per pixel
	c.FillCircle(Point{X: 180, Y: 320}, 20, ColorWhite)

	if got := c.Pixel(18, 32); got != ColorWhite {
		t.Fatalf("center pixel = %v, want white", got)
	}
	if got := c.Pixel(0, 0); got != ColorNone {
		t.Fatalf("corner pixel = %v, want none", got)
	}
}

func TestFillCircleTinyStillVisible(t *testing.T) {
	c := NewScaledCanvas(36, 32, 360, 640)
	c.FillCircle(Point{X: 100, Y: 100}, 0.5, ColorCyan)

	if got := c.Pixel(10, 10); got != ColorCyan {
		t.Fatalf("tiny circle pixel = %v, want cyan", got)
	}
}

func TestFillRectAndLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillRect(Point{X: 2, Y: 2}, Point{X: 4, Y: 3}, ColorRed)
	for x := 2; x <= 4; x++ {
		for y := 2; y <= 3; y++ {
			if c.Pixel(x, y) != ColorRed {
				t.Fatalf("pixel (%d,%d) not filled", x, y)
			}
		}
	}

	c.DrawLine(Point{X: 0, Y: 9}, Point{X: 9, Y: 9}, ColorGray)
	for x := 0; x < 10; x++ {
		if c.Pixel(x, 9) != ColorGray {
			t.Fatalf("line pixel (%d,9) not set", x)
		}
	}
}

func TestCellComposition(t *testing.T) {
	c := NewCanvas(4, 1)
	c.setPixel(0, 0, ColorRed)
	c.setPixel(1, 1, ColorGreen)
	c.setPixel(2, 0, ColorRed)
	c.setPixel(2, 1, ColorGreen)
	c.setPixel(3, 0, ColorYellow)
	c.setPixel(3, 1, ColorYellow)

	want := []cell{
		{ch: BlockUpperHalf, fg: ColorRed},
		{ch: BlockLowerHalf, fg: ColorGreen},
		{ch: BlockUpperHalf, fg: ColorRed, bg: ColorGreen},
		{ch: BlockFull, fg: ColorYellow},
	}
	for col, w := range want {
		if got := c.cellAt(0, col); got != w {
			t.Errorf("cell %d = %+v, want %+v", col, got, w)
		}
	}
}

func TestRenderOnlyRepaintsChanges(t *testing.T) {
	c := NewCanvas(8, 4)
	var buf bytes.Buffer

	n, err := c.Render(&buf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n != 32 {
		t.Fatalf("first render should paint every cell, painted %d", n)
	}

	buf.Reset()
	if n, _ := c.Render(&buf); n != 0 || buf.Len() != 0 {
		t.Fatalf("unchanged frame painted %d cells (%q)", n, buf.String())
	}

	c.setPixel(3, 2, ColorCyan)
	buf.Reset()
	if n, _ := c.Render(&buf); n != 1 {
		t.Fatalf("expected 1 changed cell, got %d", n)
	}
	if !strings.Contains(buf.String(), "\033[2;4H") || !strings.Contains(buf.String(), "▀") {
		t.Fatalf("unexpected output %q", buf.String())
	}

	c.MarkTextDirty(1, 1, 3)
	buf.Reset()
	if n, _ := c.Render(&buf); n != 3 {
		t.Fatalf("expected 3 dirty cells repainted, got %d", n)
	}

	c.ForceRedraw()
	buf.Reset()
	if n, _ := c.Render(&buf); n != 32 {
		t.Fatalf("forced redraw painted %d cells", n)
	}
}

func TestLogicalToTerminal(t *testing.T) {
	c := NewScaledCanvas(36, 32, 360, 640)
	col, row := c.LogicalToTerminal(180, 320)
	if col != 19 || row != 17 {
		t.Fatalf("got (%d,%d), want (19,17)", col, row)
	}
}

func TestResizeKeepsLogicalSize(t *testing.T) {
	c := NewScaledCanvas(36, 32, 360, 640)
	c.Resize(72, 64)
	if c.TerminalWidth() != 72 || c.LogicalWidth() != 360 {
		t.Fatalf("unexpected sizes %d %v", c.TerminalWidth(), c.LogicalWidth())
	}
	c.SetFloat(360, 640, ColorWhite)
	if c.Pixel(72, 128) != ColorNone {
		t.Fatal("out-of-range pixels must be ignored")
	}
	c.SetFloat(355, 635, ColorWhite)
	if c.Pixel(71, 127) != ColorWhite {
		t.Fatal("expected the bottom-right pixel to be set")
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 3)
	cw.WriteAt(1, 1, "hi")
	cw.Write([]byte(strings.Repeat("x", 3000)))
	if buf.Len() != 0 {
		t.Fatal("nothing should be written before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "\033[4;3Hhi") || buf.Len() != len("\033[4;3Hhi")+3000 {
		t.Fatalf("unexpected output prefix %q (len %d)", buf.String()[:12], buf.Len())
	}
}

func TestChunkWriterCentersText(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 0, 0)
	cw.ClearAll()
	cw.WriteCentered(10, 2, "FULL")
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got, want := buf.String(), "\033[H\033[2J\033[2;8HFULL"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTerminalSizeRejectsEmpty(t *testing.T) {
	w, h, err := TerminalSize(func() (int, int, error) { return 80, 24, nil })
	if err != nil || w != 80 || h != 24 {
		t.Fatalf("got %dx%d, %v", w, h, err)
	}
	if _, _, err := TerminalSize(func() (int, int, error) { return 0, 0, nil }); !errors.Is(err, ErrNoTerminalSize) {
		t.Fatalf("expected ErrNoTerminalSize, got %v", err)
	}
	failing := errors.New("not a tty")
	_, _, err = TerminalSize(func() (int, int, error) { return 0, 0, failing })
	if !errors.Is(err, ErrNoTerminalSize) || !errors.Is(err, failing) {
		t.Fatalf("expected both errors wrapped, got %v", err)
	}
}
