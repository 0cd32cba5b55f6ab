package model

import (
	"time"

	"github.com/google/uuid"
)

// AnswerState is the per-question selection snapshot exposed to the view
// layer. Selections are kept sorted and order-insensitive.
type AnswerState struct {
	QuestionIndex    int   `json:"question_index"`
	SelectedOptions  []int `json:"selected_options"`
	TimeSpentSeconds int   `json:"time_spent_seconds"`
}

// SubmittedAnswer is one entry of a submission, in original question order.
// Unanswered questions carry an empty (non-nil) selection list.
type SubmittedAnswer struct {
	QuestionID       uuid.UUID `json:"question_id"`
	SelectedOptions  []int     `json:"selected_options"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
}

// SubmissionPayload is built exactly once per submission attempt and is
// immutable afterward. Its Answers length always equals the exam's question
// count.
type SubmissionPayload struct {
	Answers          []SubmittedAnswer `json:"answers"`
	TotalTimeSeconds int               `json:"total_time_seconds"`
	StartedAt        time.Time         `json:"started_at"`
}
