package loop

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/futbolito/internal/game"
)

func TestRunQuitsOnKey(t *testing.T) {
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- Run(bufio.NewReader(strings.NewReader("q")), &out, Options{
			Game:         game.DefaultConfig(),
			TermSizeFunc: func() (int, int, error) { return 80, 40, nil },
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	if !strings.Contains(out.String(), "Time: 60 s") {
		t.Fatal("expected at least one frame to be drawn")
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Width = -1

	err := Run(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{}, Options{Game: cfg})
	if !errors.Is(err, game.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
