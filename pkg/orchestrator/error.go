package orchestrator

import (
	"fmt"

	// Packages
	stylist "github.com/mutablelogic/go-stylist"
	schema "github.com/mutablelogic/go-stylist/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TurnLimitError is returned when the model is still requesting tools after
// the maximum number of turns. It carries the transcript for diagnostics.
type TurnLimitError struct {
	Turns      uint
	Transcript schema.Transcript
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e *TurnLimitError) Error() string {
	return fmt.Sprintf("%v: no final answer after %d turns", stylist.ErrTurnLimitExceeded, e.Turns)
}

func (e *TurnLimitError) Unwrap() error {
	return stylist.ErrTurnLimitExceeded
}
