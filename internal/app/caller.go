package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/gaubuali/bingo-generator/internal/domain"
	"github.com/gaubuali/bingo-generator/internal/ports"
)

// CallerOptions configures a calling session.
type CallerOptions struct {
	Range        domain.Range
	Pacing       time.Duration
	ColumnLabels bool
}

// CallSummary describes how a session ended.
type CallSummary struct {
	SessionID string
	Total     int
	Called    []int
	Uncalled  []int
	Cancelled bool
}

// Caller drives one calling session: draw, format, speak, wait, repeat.
// Pause, Resume and Cancel may be called from another goroutine; they take
// effect before the next draw.
type Caller struct {
	id      string
	seq     *domain.DrawSequencer
	speaker ports.Speaker
	phrases ports.PhraseStore
	logger  *slog.Logger
	opts    CallerOptions
	wake    chan struct{}
}

func NewCaller(rng domain.RNG, speaker ports.Speaker, phrases ports.PhraseStore, logger *slog.Logger, opts CallerOptions) *Caller {
	id := uuid.NewString()
	return &Caller{
		id:      id,
		seq:     domain.NewDrawSequencer(rng),
		speaker: speaker,
		phrases: phrases,
		logger:  logger.With("session_id", id),
		opts:    opts,
		wake:    make(chan struct{}, 1),
	}
}

func (c *Caller) ID() string { return c.id }

func (c *Caller) Pause() error {
	if err := c.seq.Pause(); err != nil {
		return err
	}
	c.logger.Info("caller paused")
	return nil
}

func (c *Caller) Resume() error {
	if err := c.seq.Resume(); err != nil {
		return err
	}
	c.logger.Info("caller resumed")
	c.signal()
	return nil
}

func (c *Caller) Cancel() {
	c.seq.Cancel()
	c.signal()
}

// Paused reports whether draws are currently held.
func (c *Caller) Paused() bool { return c.seq.Paused() }

// Run calls numbers until the range is exhausted, the session is cancelled
// or ctx is done. Cancellation is not an error; the summary says so.
func (c *Caller) Run(ctx context.Context) (CallSummary, error) {
	table, err := c.phrases.PhraseTable(ctx)
	if err != nil {
		return CallSummary{}, fmt.Errorf("load phrases: %w", err)
	}
	if err := c.seq.Start(c.opts.Range); err != nil {
		return CallSummary{}, fmt.Errorf("start caller: %w", err)
	}

	total := c.opts.Range.Size()
	summary := CallSummary{SessionID: c.id, Total: total, Called: make([]int, 0, total)}
	c.logger.InfoContext(ctx, "caller started",
		"start", c.opts.Range.Start, "end", c.opts.Range.End, "pacing", c.opts.Pacing.String())

loop:
	for {
		if ctx.Err() != nil {
			c.seq.Cancel()
		}

		n, err := c.seq.Next()
		switch {
		case errors.Is(err, domain.ErrPaused):
			c.waitResume(ctx)
			continue
		case errors.Is(err, domain.ErrExhausted):
			break loop
		case errors.Is(err, domain.ErrSessionEnded):
			summary.Cancelled = true
			break loop
		case err != nil:
			c.seq.Cancel()
			return c.finish(summary), fmt.Errorf("draw: %w", err)
		}

		summary.Called = append(summary.Called, n)
		column := ""
		if c.opts.ColumnLabels {
			column = domain.ColumnLabel(n, c.opts.Range, domain.HeaderLabels)
		}
		ev := domain.CallEvent{
			Number:        n,
			Phrase:        domain.FormatCall(n, table, column),
			SequenceIndex: len(summary.Called),
			Total:         total,
		}
		c.logger.DebugContext(ctx, "calling number",
			"number", n, "sequence", ev.SequenceIndex, "total", total)

		if err := c.speaker.Speak(ctx, ev); err != nil {
			if ctx.Err() != nil {
				continue
			}
			c.seq.Cancel()
			return c.finish(summary), fmt.Errorf("speak %d: %w", n, err)
		}

		if ev.SequenceIndex < total {
			c.pace(ctx)
		}
	}

	summary = c.finish(summary)
	c.logger.InfoContext(ctx, "caller finished",
		"called", len(summary.Called), "total", total, "cancelled", summary.Cancelled)
	return summary, nil
}

// pace waits out the interval between calls. Only cancellation or ctx
// cuts it short; a resume keeps waiting.
func (c *Caller) pace(ctx context.Context) {
	if c.opts.Pacing <= 0 {
		return
	}
	timer := time.NewTimer(c.opts.Pacing)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			return
		case <-c.wake:
			if c.seq.State() == domain.StateCancelled {
				return
			}
		}
	}
}

func (c *Caller) waitResume(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-c.wake:
	}
}

func (c *Caller) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Caller) finish(s CallSummary) CallSummary {
	called := make(map[int]struct{}, len(s.Called))
	for _, n := range s.Called {
		called[n] = struct{}{}
	}
	s.Uncalled = s.Uncalled[:0]
	for _, n := range c.opts.Range.Values() {
		if _, ok := called[n]; !ok {
			s.Uncalled = append(s.Uncalled, n)
		}
	}
	slices.Sort(s.Uncalled)
	return s
}
