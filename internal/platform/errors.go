package platform

import (
	"errors"
	"fmt"
)

// ErrAdapterUnavailable indicates no supported embedded database engine could be selected.
var ErrAdapterUnavailable = errors.New("no supported database engine available")

// QueryError carries the engine's message for a failed statement.
type QueryError struct {
	Engine string
	Op     string // "execute" or "query"
	Query  string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %s failed: %v (sql: %s)", e.Engine, e.Op, e.Err, e.Query)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// FatalUserError is an unrecoverable condition that must be shown to the user and stop the
// calling flow.
type FatalUserError struct {
	Op      string
	Message string
	Err     error
}

func (e *FatalUserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *FatalUserError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err is, or wraps, a FatalUserError.
func IsFatal(err error) bool {
	var fatal *FatalUserError
	return errors.As(err, &fatal)
}
