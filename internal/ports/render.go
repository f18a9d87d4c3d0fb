package ports

import (
	"context"
	"io"

	"github.com/gaubuali/bingo-generator/internal/domain"
)

// Printable is everything a renderer needs: cards with their cell content
// already resolved, plus the caller's reference sheet.
type Printable struct {
	Batch domain.CardBatch
	Sheet domain.ReferenceSheet
}

// CardRenderer writes a printable document for a batch of cards.
type CardRenderer interface {
	Render(ctx context.Context, w io.Writer, p Printable) error
}
