package models

import "fmt"

// Phase represents the current step of a resource load
type Phase string

const (
	PhaseIdle    Phase = "idle"    // Pre-mount, nothing requested yet
	PhaseLoading Phase = "loading" // Request in flight
	PhaseSuccess Phase = "success" // Collection received and normalized
	PhaseError   Phase = "error"   // Load failed, message available
)

// LoadState is the tagged state of a single view's load.
// Records is only meaningful in PhaseSuccess, Err only in PhaseError.
type LoadState struct {
	Phase   Phase
	Records Collection
	Err     error
}

// Idle returns the pre-mount state
func Idle() LoadState {
	return LoadState{Phase: PhaseIdle}
}

// Loading returns the in-flight state
func Loading() LoadState {
	return LoadState{Phase: PhaseLoading}
}

// Succeeded returns a success state carrying the normalized collection.
// A nil collection is stored as an empty one.
func Succeeded(records Collection) LoadState {
	if records == nil {
		records = Collection{}
	}
	return LoadState{Phase: PhaseSuccess, Records: records}
}

// Failed returns an error state carrying the cause
func Failed(err error) LoadState {
	return LoadState{Phase: PhaseError, Err: err}
}

// Message returns the user-visible error text, empty outside PhaseError
func (s LoadState) Message() string {
	if s.Phase != PhaseError || s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Len returns the number of records held by a success state
func (s LoadState) Len() int {
	if s.Phase != PhaseSuccess {
		return 0
	}
	return len(s.Records)
}

// CanTransition reports whether next is reachable from the current phase.
// Idle only leads to Loading, Loading only leads to a terminal phase.
func (s LoadState) CanTransition(next Phase) bool {
	switch s.Phase {
	case PhaseIdle:
		return next == PhaseLoading
	case PhaseLoading:
		return next == PhaseSuccess || next == PhaseError
	default:
		return false
	}
}

// Transition moves to next or returns an error if the move is not allowed
func (s LoadState) Transition(next LoadState) (LoadState, error) {
	if !s.CanTransition(next.Phase) {
		return s, fmt.Errorf("invalid load transition %s -> %s", s.Phase, next.Phase)
	}
	return next, nil
}
