package session

import (
	"sort"
	"time"

	"github.com/santhosh0728/edutask-exam-gateway/internal/model"
)

// answerTracker holds the per-question selection sets and accumulated
// per-question time. It is created with empty selections at load time and
// mutated only through Select; the Controller freezes it once a submission
// begins.
type answerTracker struct {
	questions []model.Question
	selected  []map[int]struct{}
	timeSpent []time.Duration
}

func newAnswerTracker(questions []model.Question) *answerTracker {
	t := &answerTracker{
		questions: questions,
		selected:  make([]map[int]struct{}, len(questions)),
		timeSpent: make([]time.Duration, len(questions)),
	}
	for i := range t.selected {
		t.selected[i] = make(map[int]struct{})
	}
	return t
}

// Select applies one checked/unchecked toggle.
//
// SINGLE questions use radio semantics: a check replaces the entire
// selection with that one index and an uncheck clears it, so cardinality
// never exceeds one regardless of the event order the caller delivers.
// MULTIPLE questions use checkbox semantics: independent add/remove.
func (t *answerTracker) Select(questionIndex, optionIndex int, checked bool) error {
	if questionIndex < 0 || questionIndex >= len(t.questions) {
		return ErrIndexOutOfRange
	}
	q := t.questions[questionIndex]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return ErrIndexOutOfRange
	}

	set := t.selected[questionIndex]
	switch q.Type {
	case model.QuestionTypeMultiple:
		if checked {
			set[optionIndex] = struct{}{}
		} else {
			delete(set, optionIndex)
		}
	default: // SINGLE and anything unrecognized behaves as single-select
		if checked {
			clear(set)
			set[optionIndex] = struct{}{}
		} else {
			delete(set, optionIndex)
		}
	}
	return nil
}

// Selected returns the sorted selection for a question. Always non-nil so
// unanswered questions serialize as an empty list, never null.
func (t *answerTracker) Selected(questionIndex int) []int {
	out := make([]int, 0, len(t.selected[questionIndex]))
	for idx := range t.selected[questionIndex] {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// IsAnswered reports whether the question's selection set is non-empty.
func (t *answerTracker) IsAnswered(questionIndex int) bool {
	return len(t.selected[questionIndex]) > 0
}

// AnsweredCount is the number of questions with non-empty selections.
func (t *answerTracker) AnsweredCount() int {
	n := 0
	for _, set := range t.selected {
		if len(set) > 0 {
			n++
		}
	}
	return n
}

// AddTime accrues viewing time against a question. Called by the Controller
// whenever the current question changes and when a submission is built.
func (t *answerTracker) AddTime(questionIndex int, d time.Duration) {
	if questionIndex < 0 || questionIndex >= len(t.timeSpent) || d < 0 {
		return
	}
	t.timeSpent[questionIndex] += d
}

// TimeSpentSeconds returns whole seconds accumulated on a question.
func (t *answerTracker) TimeSpentSeconds(questionIndex int) int {
	return int(t.timeSpent[questionIndex] / time.Second)
}
