package db

import (
	"errors"
	"fmt"
)

// ErrBackendUnavailable is wrapped by every error that prevents the store
// from opening or initializing its database.
var ErrBackendUnavailable = errors.New("storage backend unavailable")

// QueryError reports a failed statement.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *QueryError) Unwrap() error { return e.Err }

// DecodeError reports a word_def row whose payload could not be decoded.
type DecodeError struct {
	Row WordDefID
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode word_def %s: %v", e.Row, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func queryErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Op: op, Err: err}
}
