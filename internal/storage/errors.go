package storage

import "fmt"

// CorruptStateError reports a task file that exists but cannot be
// trusted: unparseable content, a schema violation, or id bookkeeping
// that would force id reuse. The file is left untouched so the user
// can inspect or repair it.
type CorruptStateError struct {
	Path string
	Err  error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("task file %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Err
}
