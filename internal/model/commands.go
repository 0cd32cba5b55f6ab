package model

// Navigation operations accepted by the session navigation endpoint.
const (
	NavOpNext     = "next"
	NavOpPrevious = "previous"
	NavOpGoto     = "goto"
)

// SelectAnswerRequest toggles one option of one question.
type SelectAnswerRequest struct {
	QuestionIndex *int  `json:"question_index" binding:"required,min=0"`
	OptionIndex   *int  `json:"option_index" binding:"required,min=0"`
	Checked       *bool `json:"checked" binding:"required"`
}

// NavigationRequest moves the current question pointer. Index is only
// consulted for the "goto" op (question-grid navigator).
type NavigationRequest struct {
	Op    string `json:"op" binding:"required,oneof=next previous goto"`
	Index *int   `json:"index" binding:"omitempty,min=0"`
}
