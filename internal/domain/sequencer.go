package domain

import (
	"fmt"
	"slices"
	"sync"
)

// SequencerState is the lifecycle position of a DrawSequencer.
type SequencerState string

const (
	StateReady     SequencerState = "ready"
	StateDrawing   SequencerState = "drawing"
	StateExhausted SequencerState = "exhausted"
	StateCancelled SequencerState = "cancelled"
)

// DrawSequencer yields the numbers of a range one at a time, in random
// order, without repetition. Paused is orthogonal to the Drawing state.
//
// A failed call never changes the drawn/remaining partition.
type DrawSequencer struct {
	mu        sync.Mutex
	rng       RNG
	state     SequencerState
	paused    bool
	rangeOf   Range
	remaining []int
	drawn     []int
}

func NewDrawSequencer(rng RNG) *DrawSequencer {
	return &DrawSequencer{rng: rng, state: StateReady}
}

// Start moves Ready to Drawing with every number of r remaining.
func (s *DrawSequencer) Start(r Range) error {
	if err := r.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateReady:
	case StateCancelled:
		return ErrSessionEnded
	default:
		return ErrAlreadyStarted
	}

	s.rangeOf = r
	s.remaining = r.Values()
	s.drawn = make([]int, 0, r.Size())
	s.state = StateDrawing
	return nil
}

// Next draws one number uniformly from the remaining pool.
func (s *DrawSequencer) Next() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkDrawing(); err != nil {
		return 0, err
	}
	if s.paused {
		return 0, ErrPaused
	}

	i := s.rng.Intn(len(s.remaining))
	n := s.remaining[i]
	last := len(s.remaining) - 1
	s.remaining[i] = s.remaining[last]
	s.remaining = s.remaining[:last]
	s.drawn = append(s.drawn, n)

	if len(s.remaining) == 0 {
		s.state = StateExhausted
		s.paused = false
	}
	return n, nil
}

// Pause stops draws until Resume. Pausing twice is a no-op.
func (s *DrawSequencer) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkDrawing(); err != nil {
		return err
	}
	s.paused = true
	return nil
}

// Resume re-enables draws. Resuming an unpaused sequencer is a no-op.
func (s *DrawSequencer) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkDrawing(); err != nil {
		return err
	}
	s.paused = false
	return nil
}

// Cancel ends the session from any state and discards the draw state.
func (s *DrawSequencer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateCancelled
	s.paused = false
	s.remaining = nil
	s.drawn = nil
}

func (s *DrawSequencer) State() SequencerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *DrawSequencer) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Drawn returns the numbers drawn so far, in draw order.
func (s *DrawSequencer) Drawn() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.drawn)
}

// Remaining returns the undrawn numbers, ascending.
func (s *DrawSequencer) Remaining() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.remaining)
	slices.Sort(out)
	return out
}

// Total is the size of the started range, or 0 before Start.
func (s *DrawSequencer) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateReady {
		return 0
	}
	return s.rangeOf.Size()
}

func (s *DrawSequencer) checkDrawing() error {
	switch s.state {
	case StateDrawing:
		return nil
	case StateReady:
		return ErrNotStarted
	case StateExhausted:
		return ErrExhausted
	case StateCancelled:
		return ErrSessionEnded
	default:
		return fmt.Errorf("unknown sequencer state %q", s.state)
	}
}
