package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/tomz197/futbolito/internal/audio"
	"github.com/tomz197/futbolito/internal/config"
	"github.com/tomz197/futbolito/internal/loop"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "futbolito: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadGame()
	if err != nil {
		return err
	}
	rng, err := config.NewRand()
	if err != nil {
		return err
	}
	sound, err := config.GetEnvBool("FUTBOLITO_SOUND", false)
	if err != nil {
		return err
	}
	volume, err := config.GetEnvFloat("FUTBOLITO_VOLUME", 0)
	if err != nil {
		return err
	}

	// The terminal is the display, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("FUTBOLITO_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, config.GetEnv("FUTBOLITO_LOG_LEVEL", "info"))

	player := audio.NewPlayer(sound, volume, logger)
	defer player.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	logger.Info("local match started", "width", cfg.Width, "height", cfg.Height, "sound", player.Enabled())
	return loop.Run(bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Game:     cfg,
		Rand:     rng,
		Whistler: player,
		Logger:   logger,
	})
}
