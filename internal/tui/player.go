package tui

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Player plays MP3 audio.
type Player interface {
	Play(ctx context.Context, audio []byte) error
}

// CommandPlayer pipes audio into an external player such as "mpg123 -q -".
type CommandPlayer struct {
	name string
	args []string
}

// NewCommandPlayer parses a whitespace-separated command line.
func NewCommandPlayer(command string) (*CommandPlayer, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty audio player command")
	}
	return &CommandPlayer{name: fields[0], args: fields[1:]}, nil
}

// Play blocks until the player exits.
func (p *CommandPlayer) Play(ctx context.Context, audio []byte) error {
	cmd := exec.CommandContext(ctx, p.name, p.args...)
	cmd.Stdin = bytes.NewReader(audio)

	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("%s: %w", p.name, err)
		}
		return fmt.Errorf("%s: %w: %s", p.name, err, msg)
	}
	return nil
}
