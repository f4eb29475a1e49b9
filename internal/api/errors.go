package api

import "fmt"

// FetchError marks a failed progress read. The caller surfaces it with a
// retry affordance; the store keeps whatever state it already held.
type FetchError struct {
	err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("api: fetch progress: %v", e.err)
}

func (e *FetchError) Unwrap() error { return e.err }

// MutationError marks a failed (and not superseded) task write.
type MutationError struct {
	Task string
	err  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("api: toggle %s: %v", e.Task, e.err)
}

func (e *MutationError) Unwrap() error { return e.err }
