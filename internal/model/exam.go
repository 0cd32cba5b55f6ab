package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionType enumerates the supported answer semantics.
type QuestionType string

const (
	// QuestionTypeSingle allows exactly one selected option (radio semantics).
	QuestionTypeSingle QuestionType = "SINGLE"
	// QuestionTypeMultiple allows any subset of options (checkbox semantics).
	QuestionTypeMultiple QuestionType = "MULTIPLE"
)

// Option is one answer choice of a question. IsCorrect is delivered by the
// backend for local hinting/explanations only and is never trusted for
// scoring; grading happens server-side.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is a single exam question as delivered by the backend.
type Question struct {
	ID          uuid.UUID    `json:"id"`
	Prompt      string       `json:"prompt"`
	Type        QuestionType `json:"type"`
	Options     []Option     `json:"options"`
	Points      int          `json:"points"`
	Topic       string       `json:"topic,omitempty"`
	Difficulty  string       `json:"difficulty,omitempty"`
	Explanation string       `json:"explanation,omitempty"`
}

// ExamDefinition is the immutable exam content a session is built from.
// It is owned exclusively by the session for its lifetime and never
// mutated locally.
type ExamDefinition struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Subject         string     `json:"subject"`
	Description     string     `json:"description,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	AttemptLimit    int        `json:"attempt_limit"`
	PassingScore    float64    `json:"passing_score"`
	Questions       []Question `json:"questions"`
}
