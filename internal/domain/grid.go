package domain

import "fmt"

const (
	// HeaderLabels is printed above the columns of five-column cards.
	HeaderLabels = "BINGO"
	// FreeLabel marks the reserved center cell.
	FreeLabel = "FREE"
	// MaxNumbersPerCard bounds the grid so a card still fits on half a page.
	MaxNumbersPerCard = 400
	// MaxLineCells is the widest single-row card, one cell per header letter.
	MaxLineCells = len(HeaderLabels)
)

// PlanGrid maps a numbers-per-card count to a grid shape.
//
// Without a FREE cell the factor pair rows×cols == numbersPerCard with the
// smallest cols-rows wins (rows <= cols). A single row may be at most
// MaxLineCells wide, so large primes have no split and are rejected. With a
// FREE cell numbersPerCard+1 must be an odd perfect square so a true center
// exists. Five-column grids get a header row.
func PlanGrid(numbersPerCard int, wantFree bool) (GridShape, error) {
	if numbersPerCard < 1 || numbersPerCard > MaxNumbersPerCard {
		return GridShape{}, fmt.Errorf("%w: numbers per card must be between 1 and %d, got %d",
			ErrConfiguration, MaxNumbersPerCard, numbersPerCard)
	}

	var shape GridShape
	if wantFree {
		total := numbersPerCard + 1
		side := isqrt(total)
		if side*side != total || side%2 == 0 {
			return GridShape{}, fmt.Errorf("%w: %d numbers plus a FREE center is not an odd square grid",
				ErrConfiguration, numbersPerCard)
		}
		shape = GridShape{Rows: side, Cols: side, HasFreeCenter: true}
	} else {
		rows := 1
		for r := 1; r*r <= numbersPerCard; r++ {
			if numbersPerCard%r == 0 {
				rows = r
			}
		}
		shape = GridShape{Rows: rows, Cols: numbersPerCard / rows}
		if shape.Rows == 1 && shape.Cols > MaxLineCells {
			return GridShape{}, fmt.Errorf("%w: %d numbers have no row/column split; a single row holds at most %d",
				ErrConfiguration, numbersPerCard, MaxLineCells)
		}
	}

	shape.HasHeader = shape.Cols == len(HeaderLabels)
	return shape, nil
}

// FreeCountFor reports the numbers-per-card value that fills a square grid
// of the given side with a FREE center, or false when no true center exists.
func FreeCountFor(side int) (int, bool) {
	if side < 1 || side%2 == 0 {
		return 0, false
	}
	return side*side - 1, true
}

func isqrt(n int) int {
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
