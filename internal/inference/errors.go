package inference

import "fmt"

// Error is returned by every model wrapper when inference cannot produce a
// usable answer. Classifiers treat it as a signal to use their heuristic path.
type Error struct {
	Model string
	Op    string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("inference %s on %s: %v", e.Op, e.Model, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(model, op string, err error) *Error {
	return &Error{Model: model, Op: op, Err: err}
}
