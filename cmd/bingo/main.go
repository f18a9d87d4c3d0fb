// Command bingo prints bingo cards, calls numbers aloud and serves both over
// HTTP.
//
//	bingo cards [flags]   write cards and a reference sheet to a PDF
//	bingo call  [flags]   call every number in the range, one at a time
//	bingo serve [flags]   expose card generation over HTTP
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gaubuali/bingo-generator/internal/config"
	"github.com/gaubuali/bingo-generator/internal/domain"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

// seededRNG replays the same draws for the same seed. The HTTP server shares
// it across requests, hence the lock.
type seededRNG struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newSeededRNG(seed uint64) *seededRNG {
	return &seededRNG{rnd: rand.New(rand.NewPCG(seed, seed))}
}

func (r *seededRNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.IntN(n)
}

func newRNG(seed uint64) domain.RNG {
	if seed == 0 {
		return stdRNG{}
	}
	return newSeededRNG(seed)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: bingo <cards|call|serve> [flags]")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	name, args := os.Args[1], os.Args[2:]
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	var run func(context.Context, config.Config) error
	switch name {
	case "cards":
		run = runCards
	case "call":
		run = runCall
	case "serve":
		run = runServe
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}

	cfg, err := config.Parse(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "bingo %s: %v\n", name, err)
		os.Exit(2)
	}

	if err := run(ctx, cfg); err != nil {
		slog.Error("command failed", "command", name, "error", err)
		fmt.Fprintf(os.Stderr, "bingo %s: %v\n", name, err)
		os.Exit(1)
	}
}
