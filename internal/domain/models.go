package domain

import "fmt"

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Range is an inclusive span of callable numbers.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// MaxRangeSize bounds how many numbers a range may span. Reference sheets,
// draw sessions and summaries hold the whole range in memory.
const MaxRangeSize = 1_000_000

// Validate checks Start < End and that the range spans at most
// MaxRangeSize numbers.
func (r Range) Validate() error {
	if r.Start >= r.End {
		return fmt.Errorf("%w: got %d..%d", ErrInvalidRange, r.Start, r.End)
	}
	// End > Start, so the unsigned difference is exact even when End-Start
	// overflows int.
	if span := uint64(r.End) - uint64(r.Start); span >= MaxRangeSize {
		return fmt.Errorf("%w: %d..%d spans more than %d numbers",
			ErrInvalidRange, r.Start, r.End, MaxRangeSize)
	}
	return nil
}

// Size is the count of numbers in a validated range.
func (r Range) Size() int { return r.End - r.Start + 1 }

// Contains reports whether n lies inside the range.
func (r Range) Contains(n int) bool { return n >= r.Start && n <= r.End }

// Values returns every number of a validated range, ascending.
func (r Range) Values() []int {
	size := r.Size()
	if size < 1 {
		return nil
	}
	out := make([]int, size)
	for i := range size {
		out[i] = r.Start + i
	}
	return out
}

// GridShape is the row/column layout of a card.
type GridShape struct {
	Rows          int  `json:"rows"`
	Cols          int  `json:"cols"`
	HasHeader     bool `json:"has_header"`
	HasFreeCenter bool `json:"has_free_center"`
}

// NumberCount is how many numbered cells a card of this shape holds.
func (s GridShape) NumberCount() int {
	n := s.Rows * s.Cols
	if s.HasFreeCenter {
		n--
	}
	return n
}

// IsCenter reports whether (row, col) is the geometric center of the grid.
func (s GridShape) IsCenter(row, col int) bool {
	return row == s.Rows/2 && col == s.Cols/2
}

// Cell is a single card cell: a number, or the FREE center when Free is set.
type Cell struct {
	Number int  `json:"number"`
	Free   bool `json:"free,omitempty"`
}

// Label is the printable text of the cell.
func (c Cell) Label() string {
	if c.Free {
		return FreeLabel
	}
	return fmt.Sprintf("%d", c.Number)
}

// Card is a grid of cells, indexed [row][col].
type Card struct {
	Cells [][]Cell `json:"cells"`
}

// Numbers returns the card's numbers in row-major order, skipping FREE.
func (c Card) Numbers() []int {
	var out []int
	for _, row := range c.Cells {
		for _, cell := range row {
			if !cell.Free {
				out = append(out, cell.Number)
			}
		}
	}
	return out
}

// CardBatch is an ordered set of cards sharing one shape and range.
type CardBatch struct {
	ID    string    `json:"id"`
	Range Range     `json:"range"`
	Shape GridShape `json:"shape"`
	Cards []Card    `json:"cards"`
	// Retries counts regenerations spent avoiding duplicate cards.
	Retries int `json:"retries"`
}

// ReferenceSheet is the caller's ascending listing of the whole range.
type ReferenceSheet struct {
	Range   Range `json:"range"`
	Numbers []int `json:"numbers"`
}

// CallEvent is produced once per draw and handed to a speaker.
type CallEvent struct {
	Number        int    `json:"number"`
	Phrase        string `json:"phrase"`
	SequenceIndex int    `json:"sequence_index"`
	Total         int    `json:"total"`
}
