package ports

import (
	"context"

	"github.com/gaubuali/bingo-generator/internal/domain"
)

// Speaker announces one call. Speak may block until playback finishes;
// the caller does not draw again until it returns.
type Speaker interface {
	Speak(ctx context.Context, ev domain.CallEvent) error
}
