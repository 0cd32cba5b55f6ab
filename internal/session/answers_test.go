package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santhosh0728/edutask-exam-gateway/internal/model"
)

func makeQuestions(types ...model.QuestionType) []model.Question {
	qs := make([]model.Question, len(types))
	for i, typ := range types {
		qs[i] = model.Question{
			ID:     uuid.New(),
			Prompt: "question",
			Type:   typ,
			Options: []model.Option{
				{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"},
			},
			Points: 1,
		}
	}
	return qs
}

func TestSingleSelectReplacesPreviousChoice(t *testing.T) {
	tr := newAnswerTracker(makeQuestions(model.QuestionTypeSingle))

	require.NoError(t, tr.Select(0, 0, true))
	assert.Equal(t, []int{0}, tr.Selected(0))

	// Re-selecting a different option replaces the previous one outright,
	// regardless of the checked/unchecked event order the caller delivers.
	require.NoError(t, tr.Select(0, 1, true))
	assert.Equal(t, []int{1}, tr.Selected(0))

	require.NoError(t, tr.Select(0, 3, true))
	assert.Equal(t, []int{3}, tr.Selected(0))
}

func TestSingleSelectCardinalityNeverExceedsOne(t *testing.T) {
	tr := newAnswerTracker(makeQuestions(model.QuestionTypeSingle))

	toggles := []struct {
		opt     int
		checked bool
	}{
		{0, true}, {1, true}, {1, false}, {2, true}, {0, true}, {3, true}, {3, false}, {2, true},
	}
	for _, tg := range toggles {
		require.NoError(t, tr.Select(0, tg.opt, tg.checked))
		assert.LessOrEqual(t, len(tr.Selected(0)), 1)
	}
	assert.Equal(t, []int{2}, tr.Selected(0))
}

func TestSingleSelectUncheckClears(t *testing.T) {
	tr := newAnswerTracker(makeQuestions(model.QuestionTypeSingle))

	require.NoError(t, tr.Select(0, 2, true))
	require.NoError(t, tr.Select(0, 2, false))
	assert.Empty(t, tr.Selected(0))
	assert.False(t, tr.IsAnswered(0))
}

func TestMultipleSelectTogglesIndependently(t *testing.T) {
	tr := newAnswerTracker(makeQuestions(model.QuestionTypeMultiple))

	require.NoError(t, tr.Select(0, 0, true))
	require.NoError(t, tr.Select(0, 2, true))
	require.NoError(t, tr.Select(0, 3, true))
	assert.Equal(t, []int{0, 2, 3}, tr.Selected(0))

	require.NoError(t, tr.Select(0, 2, false))
	assert.Equal(t, []int{0, 3}, tr.Selected(0))

	// Selection equals the set of indices whose last toggle was "checked".
	require.NoError(t, tr.Select(0, 0, false))
	require.NoError(t, tr.Select(0, 0, true))
	assert.Equal(t, []int{0, 3}, tr.Selected(0))
}

func TestAnsweredCount(t *testing.T) {
	tr := newAnswerTracker(makeQuestions(
		model.QuestionTypeSingle, model.QuestionTypeMultiple, model.QuestionTypeSingle,
	))
	assert.Equal(t, 0, tr.AnsweredCount())

	require.NoError(t, tr.Select(0, 1, true))
	require.NoError(t, tr.Select(2, 0, true))
	assert.Equal(t, 2, tr.AnsweredCount())
	assert.True(t, tr.IsAnswered(0))
	assert.False(t, tr.IsAnswered(1))

	require.NoError(t, tr.Select(0, 1, false))
	assert.Equal(t, 1, tr.AnsweredCount())
}

func TestSelectRejectsOutOfRangeIndices(t *testing.T) {
	tr := newAnswerTracker(makeQuestions(model.QuestionTypeSingle))

	assert.ErrorIs(t, tr.Select(1, 0, true), ErrIndexOutOfRange)
	assert.ErrorIs(t, tr.Select(-1, 0, true), ErrIndexOutOfRange)
	assert.ErrorIs(t, tr.Select(0, 4, true), ErrIndexOutOfRange)
	assert.ErrorIs(t, tr.Select(0, -1, true), ErrIndexOutOfRange)
}

func TestTimeAccrual(t *testing.T) {
	tr := newAnswerTracker(makeQuestions(model.QuestionTypeSingle, model.QuestionTypeSingle))

	tr.AddTime(0, 90*time.Second)
	tr.AddTime(0, 30*time.Second)
	tr.AddTime(1, 1500*time.Millisecond)

	assert.Equal(t, 120, tr.TimeSpentSeconds(0))
	assert.Equal(t, 1, tr.TimeSpentSeconds(1))

	// Out-of-range and negative durations are ignored.
	tr.AddTime(5, time.Second)
	tr.AddTime(0, -time.Second)
	assert.Equal(t, 120, tr.TimeSpentSeconds(0))
}
