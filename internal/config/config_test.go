package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomz197/futbolito/internal/game"
	"github.com/tomz197/futbolito/internal/input"
	"github.com/tomz197/futbolito/internal/object"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("FUTBOLITO_TEST", "value")
	if got := GetEnv("FUTBOLITO_TEST", "fallback"); got != "value" {
		t.Fatalf("got %q", got)
	}
	if got := GetEnv("FUTBOLITO_TEST_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("got %q", got)
	}
}

func TestTypedGetters(t *testing.T) {
	t.Setenv("FUTBOLITO_INT", " 42 ")
	t.Setenv("FUTBOLITO_FLOAT", "0.5")
	t.Setenv("FUTBOLITO_BOOL", "true")
	t.Setenv("FUTBOLITO_BAD", "abc")

	if n, err := GetEnvInt("FUTBOLITO_INT", 1); err != nil || n != 42 {
		t.Fatalf("GetEnvInt = %d, %v", n, err)
	}
	if f, err := GetEnvFloat("FUTBOLITO_FLOAT", 1); err != nil || f != 0.5 {
		t.Fatalf("GetEnvFloat = %v, %v", f, err)
	}
	if b, err := GetEnvBool("FUTBOLITO_BOOL", false); err != nil || !b {
		t.Fatalf("GetEnvBool = %v, %v", b, err)
	}
	if n, err := GetEnvInt("FUTBOLITO_UNSET", 7); err != nil || n != 7 {
		t.Fatalf("unset int = %d, %v", n, err)
	}

	if _, err := GetEnvInt("FUTBOLITO_BAD", 1); !errors.Is(err, ErrInvalidEnv) {
		t.Fatalf("expected ErrInvalidEnv, got %v", err)
	}
	if _, err := GetEnvFloat("FUTBOLITO_BAD", 1); !errors.Is(err, ErrInvalidEnv) {
		t.Fatalf("expected ErrInvalidEnv, got %v", err)
	}
	if _, err := GetEnvBool("FUTBOLITO_BAD", false); !errors.Is(err, ErrInvalidEnv) {
		t.Fatalf("expected ErrInvalidEnv, got %v", err)
	}
}

func TestLoadGameDefaults(t *testing.T) {
	cfg, err := LoadGame()
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	def := game.DefaultConfig()
	if cfg.Width != def.Width || cfg.Damping != def.Damping || cfg.RoundSeconds != def.RoundSeconds {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadGameOverrides(t *testing.T) {
	t.Setenv("FUTBOLITO_WIDTH", "720")
	t.Setenv("FUTBOLITO_HEIGHT", "1280")
	t.Setenv("FUTBOLITO_DAMPING", "0.5")
	t.Setenv("FUTBOLITO_ROUND_SECONDS", "90")
	t.Setenv("FUTBOLITO_BURST_SPEED_MAX", "8")
	t.Setenv("FUTBOLITO_PALETTE", "red, cyan")
	t.Setenv("FUTBOLITO_AXES", "portrait")

	cfg, err := LoadGame()
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if cfg.Width != 720 || cfg.Height != 1280 || cfg.Damping != 0.5 || cfg.RoundSeconds != 90 || cfg.BurstSpeed.Max != 8 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.Palette) != 2 || cfg.Palette[0] != object.ColorRed || cfg.Palette[1] != object.ColorCyan {
		t.Fatalf("unexpected palette %v", cfg.Palette)
	}
	if got := cfg.Axes(input.Tilt{X: 1, Y: 2}); got != (input.Tilt{X: -1, Y: 2}) {
		t.Fatalf("portrait axes not applied: %+v", got)
	}
}

func TestLoadGameReportsEveryBadVariable(t *testing.T) {
	t.Setenv("FUTBOLITO_WIDTH", "wide")
	t.Setenv("FUTBOLITO_BURST_SIZE", "many")
	t.Setenv("FUTBOLITO_AXES", "sideways")

	_, err := LoadGame()
	if !errors.Is(err, ErrInvalidEnv) {
		t.Fatalf("expected ErrInvalidEnv, got %v", err)
	}
	for _, key := range []string{"FUTBOLITO_WIDTH", "FUTBOLITO_BURST_SIZE", "FUTBOLITO_AXES"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error does not mention %s: %v", key, err)
		}
	}
}

func TestLoadGameValidates(t *testing.T) {
	t.Setenv("FUTBOLITO_DAMPING", "2")
	if _, err := LoadGame(); !errors.Is(err, game.ErrInvalidConfig) {
		t.Fatalf("expected game.ErrInvalidConfig, got %v", err)
	}
}

func TestNewRandSeeded(t *testing.T) {
	t.Setenv("FUTBOLITO_SEED", "1234")
	a, err := NewRand()
	if err != nil {
		t.Fatalf("NewRand: %v", err)
	}
	b, _ := NewRand()
	if a.Float64() != b.Float64() {
		t.Fatal("same seed must give the same sequence")
	}

	t.Setenv("FUTBOLITO_SEED", "-1")
	if _, err := NewRand(); !errors.Is(err, ErrInvalidEnv) {
		t.Fatalf("expected ErrInvalidEnv, got %v", err)
	}
}

func TestSeed(t *testing.T) {
	t.Setenv("FUTBOLITO_SEED", "")
	if _, ok, err := Seed(); ok || err != nil {
		t.Fatalf("unset seed: ok=%v err=%v", ok, err)
	}

	t.Setenv("FUTBOLITO_SEED", " 42 ")
	if seed, ok, err := Seed(); !ok || err != nil || seed != 42 {
		t.Fatalf("got %d, %v, %v", seed, ok, err)
	}

	t.Setenv("FUTBOLITO_SEED", "forty-two")
	if _, _, err := Seed(); !errors.Is(err, ErrInvalidEnv) {
		t.Fatalf("expected ErrInvalidEnv, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("FUTBOLITO_DOTENV_TEST=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FUTBOLITO_DOTENV_TEST", "")
	os.Unsetenv("FUTBOLITO_DOTENV_TEST")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("FUTBOLITO_DOTENV_TEST"); got != "from-file" {
		t.Fatalf("got %q", got)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Fatalf("unexpected log output %q", out)
	}
}
