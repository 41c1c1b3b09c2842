// Package speech speaks text through a local TTS binary such as espeak or say.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var ErrUnavailable = errors.New("speech: no tts command available")

type Command struct {
	path string
	args []string
}

// Lookup resolves cmdline ("espeak -s 150") on PATH. It returns
// ErrUnavailable when the binary is missing, e.g. on a headless host.
func Lookup(cmdline string) (*Command, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, ErrUnavailable
	}
	path, err := exec.LookPath(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, fields[0])
	}
	return &Command{path: path, args: fields[1:]}, nil
}

// Speak blocks until playback finishes or ctx is done.
func (c *Command) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	args := append(append([]string{}, c.args...), text)
	out, err := exec.CommandContext(ctx, c.path, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("speak: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
