package ports

import (
	"context"

	"github.com/gaubuali/bingo-generator/internal/domain"
)

// PhraseStore provides the call phrase table.
type PhraseStore interface {
	PhraseTable(ctx context.Context) (domain.PhraseTable, error)
}
