package session

import "errors"

// Load-time errors (availability window). The remaining load failure modes
// (not found, forbidden, malformed) surface as examapi errors.
var (
	ErrNotYetAvailable = errors.New("exam is not yet available")
	ErrExamExpired     = errors.New("exam availability window has closed")
)

// Command errors.
var (
	ErrAttemptLimit     = errors.New("attempt limit reached")
	ErrAlreadyStarted   = errors.New("session already started")
	ErrNotStarted       = errors.New("session not started")
	ErrAnswersLocked    = errors.New("answers are read-only once submission begins")
	ErrSubmitInFlight   = errors.New("a submission is already in flight")
	ErrSessionClosed    = errors.New("session has been torn down")
	ErrNoConfirmPending = errors.New("no submission confirmation is pending")
	ErrTerminalOutcome  = errors.New("session already reached a terminal outcome")
	ErrIndexOutOfRange  = errors.New("question index out of range")
)
