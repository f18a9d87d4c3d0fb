package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gaubuali/bingo-generator/internal/adapters/phrases"
	"github.com/gaubuali/bingo-generator/internal/adapters/speech"
	"github.com/gaubuali/bingo-generator/internal/adapters/speech/remote"
	"github.com/gaubuali/bingo-generator/internal/app"
	"github.com/gaubuali/bingo-generator/internal/config"
	"github.com/gaubuali/bingo-generator/internal/ports"
)

func runCall(ctx context.Context, cfg config.Config) error {
	logger := newLogger(os.Stderr, cfg.LogLevel)

	speaker, err := newSpeaker(cfg, logger)
	if err != nil {
		return err
	}

	caller := app.NewCaller(newRNG(cfg.Seed), speaker, phrases.NewStore(cfg.PhrasesFile), logger, app.CallerOptions{
		Range:        cfg.Range(),
		Pacing:       cfg.CallPacing,
		ColumnLabels: cfg.ColumnLabels,
	})

	fmt.Printf("Calling %d..%d every %s. Type p to pause, r to resume, q to quit.\n",
		cfg.RangeStart, cfg.RangeEnd, cfg.CallPacing)
	go readControls(os.Stdin, caller)

	summary, err := caller.Run(ctx)
	fmt.Println()
	if summary.Cancelled {
		fmt.Println("Session stopped.")
	} else if err == nil {
		fmt.Println("All numbers called.")
	}
	fmt.Printf("Called %d of %d numbers.\n", len(summary.Called), summary.Total)
	if len(summary.Uncalled) > 0 {
		fmt.Println("Uncalled:")
		printWrapped(os.Stdout, summary.Uncalled, uncalledPerLine)
	}
	return err
}

// newSpeaker always keeps the console line so the caller can follow along
// even when audio goes elsewhere.
func newSpeaker(cfg config.Config, logger *slog.Logger) (ports.Speaker, error) {
	console := speech.NewConsoleSpeaker(os.Stdout)

	switch cfg.Speaker {
	case config.SpeakerCommand:
		cmd, err := speech.NewCommandSpeaker(cfg.SpeakCommand)
		if err != nil {
			return nil, err
		}
		return speech.Multi{console, cmd}, nil
	case config.SpeakerRemote:
		client := remote.NewClient(
			&http.Client{Timeout: cfg.TTSTimeout},
			cfg.TTSAPIKey,
			cfg.TTSBaseURL,
			cfg.TTSModel,
			cfg.TTSVoices,
			cfg.TTSSpeed,
			cfg.PlayerArgs(),
			logger,
		)
		return speech.Multi{console, client}, nil
	default:
		return console, nil
	}
}

func readControls(r io.Reader, caller *app.Caller) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var err error
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "p", "pause":
			if err = caller.Pause(); err == nil {
				fmt.Println("  paused")
			}
		case "r", "resume":
			if err = caller.Resume(); err == nil {
				fmt.Println("  resumed")
			}
		case "q", "quit", "stop":
			caller.Cancel()
			return
		case "":
		default:
			fmt.Println("  commands: p (pause), r (resume), q (quit)")
		}
		if err != nil {
			fmt.Printf("  %v\n", err)
		}
	}
}

// uncalledPerLine matches a row of the reference sheet.
const uncalledPerLine = 10

// printWrapped writes ns as comma-separated lines of at most perLine numbers.
func printWrapped(w io.Writer, ns []int, perLine int) {
	for start := 0; start < len(ns); start += perLine {
		end := min(start+perLine, len(ns))
		fmt.Fprintf(w, "  %s\n", joinInts(ns[start:end]))
	}
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
