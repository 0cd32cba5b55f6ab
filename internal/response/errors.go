package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Exam loading ──────────────────────────────────────────────────
	ErrExamNotFound        ErrCode = "EXAM_NOT_FOUND"
	ErrExamForbidden       ErrCode = "EXAM_FORBIDDEN"
	ErrExamNotYetAvailable ErrCode = "EXAM_NOT_YET_AVAILABLE"
	ErrExamWindowClosed    ErrCode = "EXAM_WINDOW_CLOSED"
	ErrExamMalformed       ErrCode = "EXAM_MALFORMED"

	// ─── Session commands ──────────────────────────────────────────────
	ErrSessionNotFound    ErrCode = "SESSION_NOT_FOUND"
	ErrSessionClosed      ErrCode = "SESSION_CLOSED"
	ErrSessionNotStarted  ErrCode = "SESSION_NOT_STARTED"
	ErrSessionStarted     ErrCode = "SESSION_ALREADY_STARTED"
	ErrAttemptLimit       ErrCode = "ATTEMPT_LIMIT_REACHED"
	ErrAnswersLocked      ErrCode = "ANSWERS_LOCKED"
	ErrSubmitInFlight     ErrCode = "SUBMISSION_IN_FLIGHT"
	ErrNoConfirmPending   ErrCode = "NO_CONFIRMATION_PENDING"
	ErrSessionTerminal    ErrCode = "SESSION_TERMINAL"
	ErrQuestionOutOfRange ErrCode = "QUESTION_OUT_OF_RANGE"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or expired."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "The identifier format is invalid."
	case ErrInvalidPayload:
		return "The request payload is invalid."
	case ErrExamNotFound:
		return "This exam does not exist."
	case ErrExamForbidden:
		return "You do not have access to this exam."
	case ErrExamNotYetAvailable:
		return "This exam has not opened yet. Please come back at the scheduled start time."
	case ErrExamWindowClosed:
		return "The availability window for this exam has closed."
	case ErrExamMalformed:
		return "The exam content could not be loaded correctly. Please contact your tutor."
	case ErrSessionNotFound:
		return "No such exam session. It may have ended or been cleaned up."
	case ErrSessionClosed:
		return "This exam session has been closed."
	case ErrSessionNotStarted:
		return "The exam has not been started yet."
	case ErrSessionStarted:
		return "The exam has already been started."
	case ErrAttemptLimit:
		return "You have used all allowed attempts for this exam."
	case ErrAnswersLocked:
		return "Answers can no longer be changed once submission has begun."
	case ErrSubmitInFlight:
		return "A submission is already being processed."
	case ErrNoConfirmPending:
		return "There is no submission waiting for confirmation."
	case ErrSessionTerminal:
		return "This exam session has already finished."
	case ErrQuestionOutOfRange:
		return "The question or option index is out of range."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
