package domain_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/gaubuali/bingo-generator/internal/domain"
)

func TestDrawSequencer_DrawsPermutation(t *testing.T) {
	seq := domain.NewDrawSequencer(newSeededRNG(99))
	if err := seq.Start(domain.Range{Start: 1, End: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []int
	for range 10 {
		n, err := seq.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, n)
	}

	slices.Sort(got)
	want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if !slices.Equal(got, want) {
		t.Errorf("expected each of 1..10 once, got %v", got)
	}
	if seq.State() != domain.StateExhausted {
		t.Errorf("expected exhausted, got %s", seq.State())
	}

	if _, err := seq.Next(); !errors.Is(err, domain.ErrExhausted) {
		t.Errorf("11th draw: expected ErrExhausted, got %v", err)
	}
}

func TestDrawSequencer_PartitionInvariant(t *testing.T) {
	r := domain.Range{Start: 5, End: 29}
	seq := domain.NewDrawSequencer(newSeededRNG(3))
	if err := seq.Start(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for range 12 {
		if _, err := seq.Next(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		drawn, remaining := seq.Drawn(), seq.Remaining()
		if len(drawn)+len(remaining) != r.Size() {
			t.Fatalf("partition sizes %d+%d != %d", len(drawn), len(remaining), r.Size())
		}
		union := append(slices.Clone(drawn), remaining...)
		slices.Sort(union)
		if !slices.Equal(union, r.Values()) {
			t.Fatalf("drawn ∪ remaining != range: %v", union)
		}
	}
}

func TestDrawSequencer_PausedDrawLeavesStateUnchanged(t *testing.T) {
	seq := domain.NewDrawSequencer(newSeededRNG(1))
	if err := seq.Start(domain.Range{Start: 1, End: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := seq.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := seq.Pause(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	drawn, remaining := seq.Drawn(), seq.Remaining()

	if _, err := seq.Next(); !errors.Is(err, domain.ErrPaused) {
		t.Fatalf("expected ErrPaused, got %v", err)
	}
	if !slices.Equal(drawn, seq.Drawn()) || !slices.Equal(remaining, seq.Remaining()) {
		t.Error("failed draw changed the draw state")
	}

	if err := seq.Resume(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := seq.Next(); err != nil {
		t.Errorf("draw after resume: %v", err)
	}
	if len(seq.Drawn()) != 2 {
		t.Errorf("expected 2 drawn, got %d", len(seq.Drawn()))
	}
}

func TestDrawSequencer_Cancel(t *testing.T) {
	seq := domain.NewDrawSequencer(newSeededRNG(1))
	if err := seq.Start(domain.Range{Start: 1, End: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seq.Cancel()

	if seq.State() != domain.StateCancelled {
		t.Errorf("expected cancelled, got %s", seq.State())
	}
	if len(seq.Drawn()) != 0 || len(seq.Remaining()) != 0 {
		t.Error("expected draw state to be discarded")
	}
	if _, err := seq.Next(); !errors.Is(err, domain.ErrSessionEnded) {
		t.Errorf("Next: expected ErrSessionEnded, got %v", err)
	}
	if err := seq.Pause(); !errors.Is(err, domain.ErrSessionEnded) {
		t.Errorf("Pause: expected ErrSessionEnded, got %v", err)
	}
	if err := seq.Resume(); !errors.Is(err, domain.ErrSessionEnded) {
		t.Errorf("Resume: expected ErrSessionEnded, got %v", err)
	}
	if err := seq.Start(domain.Range{Start: 1, End: 10}); !errors.Is(err, domain.ErrSessionEnded) {
		t.Errorf("Start: expected ErrSessionEnded, got %v", err)
	}
}

func TestDrawSequencer_Lifecycle(t *testing.T) {
	seq := domain.NewDrawSequencer(newSeededRNG(1))

	if _, err := seq.Next(); !errors.Is(err, domain.ErrNotStarted) {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}
	if err := seq.Pause(); !errors.Is(err, domain.ErrNotStarted) {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}
	if err := seq.Start(domain.Range{Start: 3, End: 3}); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
	if err := seq.Start(domain.Range{Start: 1, End: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := seq.Start(domain.Range{Start: 1, End: 2}); !errors.Is(err, domain.ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
	if seq.Total() != 2 {
		t.Errorf("expected total 2, got %d", seq.Total())
	}

	_, _ = seq.Next()
	_, _ = seq.Next()
	if err := seq.Pause(); !errors.Is(err, domain.ErrExhausted) {
		t.Errorf("pause after exhaustion: expected ErrExhausted, got %v", err)
	}
}

func TestDrawSequencer_DeterministicOrder(t *testing.T) {
	// Always picking index 0 with swap-remove yields 1, 5, 4, 3, 2.
	seq := domain.NewDrawSequencer(&deterministicRNG{values: []int{0}})
	if err := seq.Start(domain.Range{Start: 1, End: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []int
	for {
		n, err := seq.Next()
		if errors.Is(err, domain.ErrExhausted) {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, n)
	}

	want := []int{1, 5, 4, 3, 2}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDrawSequencer_RangeAtIntLimits(t *testing.T) {
	s := domain.NewDrawSequencer(newSeededRNG(5))
	if err := s.Start(domain.Range{Start: math.MinInt, End: math.MaxInt}); !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	top := domain.Range{Start: math.MaxInt - 3, End: math.MaxInt}
	if err := s.Start(top); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for range top.Size() {
		n, err := s.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !top.Contains(n) {
			t.Errorf("drew %d outside %d..%d", n, top.Start, top.End)
		}
	}
	if _, err := s.Next(); !errors.Is(err, domain.ErrExhausted) {
		t.Errorf("expected ErrExhausted, got %v", err)
	}
}
