package task

import "fmt"

// ValidationError reports bad input to a store operation.
type ValidationError struct {
	Field string // offending field, empty when not tied to one
	Err   error  // underlying error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an id that names no task in the store.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

// InvalidStateError reports a status transition the task cannot make,
// such as completing a task that is already done.
type InvalidStateError struct {
	ID     int
	Status Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("task %d is already %s", e.ID, e.Status)
}
