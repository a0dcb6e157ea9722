package services

import "fmt"

// PersistenceError reports one failed step of the save fan-out. Only the
// root step aborts the save; the rest are carried on the result.
type PersistenceError struct {
	Step string // "case", "schedules", "rights", "analysis", "photos"
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
