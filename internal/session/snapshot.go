package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/santhosh0728/edutask-exam-gateway/internal/model"
)

// Snapshot is the read-only session view handed to the host view layer.
// It is a value copy; renderers never share memory with the controller.
type Snapshot struct {
	SessionID       uuid.UUID `json:"session_id"`
	ExamID          uuid.UUID `json:"exam_id"`
	Title           string    `json:"title"`
	Subject         string    `json:"subject"`
	DurationMinutes int       `json:"duration_minutes"`
	QuestionCount   int       `json:"question_count"`

	TimerState       TimerState `json:"timer_state"`
	RemainingSeconds int        `json:"remaining_seconds"`
	RemainingDisplay string     `json:"remaining_display"`
	Warning          bool       `json:"warning"`
	Danger           bool       `json:"danger"`

	CurrentIndex     int             `json:"current_index"`
	CurrentQuestion  *model.Question `json:"current_question,omitempty"`
	CurrentSelection []int           `json:"current_selection"`
	Answered         []bool          `json:"answered"`
	AnsweredCount    int             `json:"answered_count"`
	ProgressPercent  int             `json:"progress_percent"`

	// AnswerStates backs the question-grid view: one entry per question with
	// its selection and accumulated viewing time.
	AnswerStates []model.AnswerState `json:"answer_states"`

	Attempt       model.AttemptContext `json:"attempt"`
	AttemptNumber int                  `json:"attempt_number"`
	StartedAt     *time.Time           `json:"started_at,omitempty"`

	Submitting     bool            `json:"submitting"`
	ConfirmPending bool            `json:"confirm_pending"`
	PendingSummary *ConfirmSummary `json:"pending_summary,omitempty"`

	Outcome        Outcome `json:"outcome,omitempty"`
	OutcomeMessage string  `json:"outcome_message,omitempty"`
	ResultID       string  `json:"result_id,omitempty"`
	AutoSubmitted  bool    `json:"auto_submitted,omitempty"`
}

// ConfirmSummary is the pre-submit summary shown by the confirmation gate.
// Purely informational; it never blocks submitting an incomplete exam.
type ConfirmSummary struct {
	AnsweredCount    int    `json:"answered_count"`
	QuestionCount    int    `json:"question_count"`
	RemainingSeconds int    `json:"remaining_seconds"`
	RemainingDisplay string `json:"remaining_display"`
	AttemptNumber    int    `json:"attempt_number"`
	AttemptLimit     int    `json:"attempt_limit"`
}

// FormatRemaining renders seconds as H:MM:SS when at least an hour remains,
// else M:SS.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
