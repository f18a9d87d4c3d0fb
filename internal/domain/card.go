package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// MaxDuplicateRetries is how many times a single card slot is regenerated
// before a batch gives up on finding a distinct card.
const MaxDuplicateRetries = 64

// DuplicateCriterion decides when two cards count as the same card.
type DuplicateCriterion string

const (
	// DuplicateOrdered compares the row-major sequence of numbers.
	DuplicateOrdered DuplicateCriterion = "ordered"
	// DuplicateSet compares the numbers regardless of their placement.
	DuplicateSet DuplicateCriterion = "set"
)

// Valid reports whether c is a known criterion.
func (c DuplicateCriterion) Valid() bool {
	return c == DuplicateOrdered || c == DuplicateSet
}

// BatchOptions configures GenerateBatch.
type BatchOptions struct {
	Count           int
	AllowDuplicates bool
	Criterion       DuplicateCriterion
}

// GenerateCard draws the card's numbers uniformly without replacement from r
// and places them row-major, skipping the FREE center when the shape has one.
func GenerateCard(r Range, shape GridShape, rng RNG) (Card, error) {
	if err := r.Validate(); err != nil {
		return Card{}, err
	}
	need := shape.NumberCount()
	if shape.Rows < 1 || shape.Cols < 1 || need < 1 {
		return Card{}, fmt.Errorf("%w: invalid shape %dx%d", ErrConfiguration, shape.Rows, shape.Cols)
	}
	if r.Size() < need {
		return Card{}, fmt.Errorf("%w: need %d numbers, range %d..%d has %d",
			ErrRangeTooSmall, need, r.Start, r.End, r.Size())
	}

	picks := drawDistinct(r, need, rng)

	cells := make([][]Cell, shape.Rows)
	idx := 0
	for row := range shape.Rows {
		cells[row] = make([]Cell, shape.Cols)
		for col := range shape.Cols {
			if shape.HasFreeCenter && shape.IsCenter(row, col) {
				cells[row][col] = Cell{Free: true}
				continue
			}
			cells[row][col] = Cell{Number: picks[idx]}
			idx++
		}
	}

	return Card{Cells: cells}, nil
}

// drawDistinct is a partial Fisher-Yates shuffle over the virtual pool
// r.Start..r.End. Only displaced slots are stored, so the cost is O(need)
// whatever the range size.
func drawDistinct(r Range, need int, rng RNG) []int {
	size := r.Size()
	swapped := make(map[int]int, need)
	at := func(i int) int {
		if v, ok := swapped[i]; ok {
			return v
		}
		return r.Start + i
	}

	out := make([]int, need)
	for i := range need {
		j := i + rng.Intn(size-i)
		out[i] = at(j)
		swapped[j] = at(i)
	}
	return out
}

// GenerateBatch produces opts.Count cards. Unless duplicates are allowed, a
// card whose signature matches an earlier one is regenerated, at most
// MaxDuplicateRetries times per card.
func GenerateBatch(r Range, shape GridShape, opts BatchOptions, rng RNG) (CardBatch, error) {
	if opts.Count < 1 {
		return CardBatch{}, fmt.Errorf("%w: card count must be at least 1, got %d", ErrConfiguration, opts.Count)
	}
	criterion := opts.Criterion
	if criterion == "" {
		criterion = DuplicateOrdered
	}
	if !criterion.Valid() {
		return CardBatch{}, fmt.Errorf("%w: unknown duplicate criterion %q", ErrConfiguration, criterion)
	}

	batch := CardBatch{Range: r, Shape: shape, Cards: make([]Card, 0, opts.Count)}
	seen := make(map[string]struct{}, opts.Count)

	for len(batch.Cards) < opts.Count {
		var (
			card   Card
			unique bool
		)
		for attempt := 0; attempt <= MaxDuplicateRetries; attempt++ {
			c, err := GenerateCard(r, shape, rng)
			if err != nil {
				return CardBatch{}, err
			}
			if opts.AllowDuplicates {
				card, unique = c, true
				break
			}
			sig := Signature(c, criterion)
			if _, dup := seen[sig]; !dup {
				seen[sig] = struct{}{}
				card, unique = c, true
				break
			}
			batch.Retries++
		}
		if !unique {
			return CardBatch{}, &DuplicateExhaustionError{Requested: opts.Count, Achieved: len(batch.Cards)}
		}
		batch.Cards = append(batch.Cards, card)
	}

	return batch, nil
}

// Signature is the duplicate-detection key of a card under criterion.
func Signature(c Card, criterion DuplicateCriterion) string {
	nums := c.Numbers()
	if criterion == DuplicateSet {
		nums = slices.Clone(nums)
		slices.Sort(nums)
	}
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
