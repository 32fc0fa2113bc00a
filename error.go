package stylist

import (
	"errors"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota
	ErrNotFound
	ErrBadParameter
	ErrNotImplemented
	ErrConflict
	ErrInternalServerError
	ErrServiceUnavailable
	ErrToolNotFound
	ErrHandler
	ErrBackendUnavailable
	ErrBackendProtocol
	ErrTurnLimitExceeded
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Errors
type Err int

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) Error() string {
	switch e {
	case ErrSuccess:
		return "success"
	case ErrNotFound:
		return "not found"
	case ErrBadParameter:
		return "bad parameter"
	case ErrNotImplemented:
		return "not implemented"
	case ErrConflict:
		return "conflict"
	case ErrInternalServerError:
		return "internal server error"
	case ErrServiceUnavailable:
		return "service unavailable"
	case ErrToolNotFound:
		return "tool not found"
	case ErrHandler:
		return "tool failed"
	case ErrBackendUnavailable:
		return "model backend unavailable"
	case ErrBackendProtocol:
		return "model backend protocol error"
	case ErrTurnLimitExceeded:
		return "turn limit exceeded"
	}
	return fmt.Sprintf("error code %d", int(e))
}

func (e Err) With(args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

func (e Err) Withf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}

// Wrap returns an error which matches both the code and err with errors.Is
// and errors.As. It returns nil if err is nil.
func (e Err) Wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", e, err)
}

// Contained reports whether the error is one which is fed back into the
// conversation as a tool result, rather than aborting a run.
func Contained(err error) bool {
	return errors.Is(err, ErrToolNotFound) || errors.Is(err, ErrHandler)
}
