package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptSummary is a prior attempt as reported by the backend's attempt
// history endpoint. The gateway only uses the count; scores are passed
// through for the pre-start instructions screen.
type AttemptSummary struct {
	ID          uuid.UUID  `json:"id"`
	ExamID      uuid.UUID  `json:"exam_id"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	Score       *float64   `json:"score,omitempty"`
}

// AttemptContext is fixed at load time. The count is advisory; the backend
// re-enforces the limit at submission time and stays the source of truth.
type AttemptContext struct {
	ExistingAttempts int `json:"existing_attempts"`
	AttemptLimit     int `json:"attempt_limit"`
}

// CanStart reports whether a new attempt may begin. A non-positive limit
// means unlimited attempts.
func (a AttemptContext) CanStart() bool {
	return a.AttemptLimit <= 0 || a.ExistingAttempts < a.AttemptLimit
}

// AttemptNumber is the 1-based number the current attempt would get.
func (a AttemptContext) AttemptNumber() int {
	return a.ExistingAttempts + 1
}
