// Package speech holds the local ports.Speaker implementations: a console
// progress line, an external TTS command, and a fan-out of several speakers.
package speech

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/gaubuali/bingo-generator/internal/domain"
	"github.com/gaubuali/bingo-generator/internal/ports"
)

// ConsoleSpeaker prints one progress line per call.
type ConsoleSpeaker struct {
	w io.Writer
}

func NewConsoleSpeaker(w io.Writer) *ConsoleSpeaker {
	return &ConsoleSpeaker{w: w}
}

func (s *ConsoleSpeaker) Speak(_ context.Context, ev domain.CallEvent) error {
	_, err := fmt.Fprintf(s.w, "  [%3d/%d]  #%3d  -  %s\n", ev.SequenceIndex, ev.Total, ev.Number, ev.Phrase)
	return err
}

// CommandSpeaker runs an offline TTS command with the phrase as its last
// argument, e.g. "espeak -s 150".
type CommandSpeaker struct {
	command []string
}

func NewCommandSpeaker(command string) (*CommandSpeaker, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("speak command is empty")
	}
	return &CommandSpeaker{command: fields}, nil
}

func (s *CommandSpeaker) Speak(ctx context.Context, ev domain.CallEvent) error {
	args := append(append([]string{}, s.command[1:]...), ev.Phrase)
	cmd := exec.CommandContext(ctx, s.command[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("run %s: %w: %s", s.command[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Multi speaks through each speaker in order and stops at the first error.
type Multi []ports.Speaker

func (m Multi) Speak(ctx context.Context, ev domain.CallEvent) error {
	for _, s := range m {
		if err := s.Speak(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}
