package examapi

import (
	"errors"
	"fmt"
)

// Load-time errors. All of these abort session construction entirely;
// the caller is routed away and nothing is retried.
var (
	// ErrExamNotFound: the exam does not exist.
	ErrExamNotFound = errors.New("exam not found")
	// ErrExamForbidden: the caller lacks access to the exam.
	ErrExamForbidden = errors.New("exam access forbidden")
	// ErrMalformedExam: the definition has no well-formed question list.
	ErrMalformedExam = errors.New("exam definition is malformed")
)

// SubmissionErrorKind classifies a failed submission exchange.
type SubmissionErrorKind string

const (
	// SubmissionInvalid: the backend rejected the payload (retryable).
	SubmissionInvalid SubmissionErrorKind = "VALIDATION"
	// SubmissionLimitExceeded: attempts already exhausted (terminal).
	SubmissionLimitExceeded SubmissionErrorKind = "ATTEMPT_LIMIT"
	// SubmissionNetwork: transport failure or backend outage (retryable).
	SubmissionNetwork SubmissionErrorKind = "NETWORK"
)

// SubmissionError is the typed outcome of a failed POST examSubmission.
// AttemptsMade/AttemptsAllowed are only populated for the attempt-limit kind.
type SubmissionError struct {
	Kind            SubmissionErrorKind
	Message         string
	AttemptsMade    int
	AttemptsAllowed int
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("submission failed (%s): %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("submission failed (%s)", e.Kind)
}

// AsSubmissionError unwraps err into a *SubmissionError if possible.
func AsSubmissionError(err error) (*SubmissionError, bool) {
	var se *SubmissionError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
