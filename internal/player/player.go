// Package player plays narration audio through an OS audio command.
package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
)

// ErrUnavailable is returned when no supported audio command is installed.
var ErrUnavailable = errors.New("no audio player available")

// Player plays MP3 clips one at a time.
type Player struct {
	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error

	mu sync.Mutex // Clips never overlap
}

// New creates a player using the system commands.
func New() *Player {
	return &Player{
		lookPath: exec.LookPath,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
}

// command returns the program and arguments that play file.
func (p *Player) command(file string) (string, []string, error) {
	switch runtime.GOOS {
	case "darwin":
		return "afplay", []string{file}, nil
	case "windows":
		return "", nil, ErrUnavailable
	default:
		// Try mpg123 first, fall back to ffplay
		if _, err := p.lookPath("mpg123"); err == nil {
			return "mpg123", []string{"-q", file}, nil
		}
		if _, err := p.lookPath("ffplay"); err == nil {
			return "ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", file}, nil
		}
		return "", nil, ErrUnavailable
	}
}

// Available checks if audio playback is possible.
func (p *Player) Available() bool {
	name, _, err := p.command("")
	if err != nil {
		return false
	}
	_, err = p.lookPath(name)
	return err == nil
}

// Play writes the clip to a temporary file and blocks until it finishes.
func (p *Player) Play(ctx context.Context, clip []byte) error {
	if len(clip) == 0 {
		return nil
	}

	f, err := os.CreateTemp("", "mindvault-*.mp3")
	if err != nil {
		return fmt.Errorf("creating clip file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(clip); err != nil {
		f.Close()
		return fmt.Errorf("writing clip file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing clip file: %w", err)
	}

	name, args, err := p.command(f.Name())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.run(ctx, name, args...); err != nil {
		return fmt.Errorf("playing clip with %s: %w", name, err)
	}
	return nil
}
