package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration       = errors.New("unsatisfiable card configuration")
	ErrInvalidRange        = errors.New("range start must be less than range end")
	ErrRangeTooSmall       = errors.New("range too small to fill a card")
	ErrDuplicateExhaustion = errors.New("could not generate enough distinct cards")
	ErrExhausted           = errors.New("all numbers have been drawn")
	ErrPaused              = errors.New("caller is paused")
	ErrSessionEnded        = errors.New("caller session has ended")
	ErrNotStarted          = errors.New("caller session has not started")
	ErrAlreadyStarted      = errors.New("caller session already started")
	ErrUpstreamTTS         = errors.New("upstream speech synthesis failure")
)

// DuplicateExhaustionError reports how many distinct cards were produced
// before the retry bound ran out.
type DuplicateExhaustionError struct {
	Requested int
	Achieved  int
}

func (e *DuplicateExhaustionError) Error() string {
	return fmt.Sprintf("%s: achieved %d of %d", ErrDuplicateExhaustion, e.Achieved, e.Requested)
}

func (e *DuplicateExhaustionError) Unwrap() error { return ErrDuplicateExhaustion }
