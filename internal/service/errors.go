package service

import "fmt"

// ValidationError reports rejected input: a non-positive amount, a
// split sum that does not match the expense amount, and so on. It is
// always returned before any write is attempted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
