package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/santhosh0728/edutask-exam-gateway/internal/examapi"
	"github.com/santhosh0728/edutask-exam-gateway/internal/middleware"
	"github.com/santhosh0728/edutask-exam-gateway/internal/model"
	"github.com/santhosh0728/edutask-exam-gateway/internal/response"
	"github.com/santhosh0728/edutask-exam-gateway/internal/session"
	"github.com/santhosh0728/edutask-exam-gateway/internal/validator"
)

// SessionHandler exposes the exam-taking session's imperative entry points
// and its read-only snapshot to the portal's view layer.
type SessionHandler struct {
	mgr *session.Manager
	log zerolog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(mgr *session.Manager, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		mgr: mgr,
		log: log.With().Str("component", "session_handler").Logger(),
	}
}

// CreateSession godoc
// POST /api/v1/portal/exams/:exam_id/session
// Loads the exam definition plus attempt history and registers an unstarted
// session. Load failures are fatal and classified (404/403/409).
func (h *SessionHandler) CreateSession(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	ctrl, err := h.mgr.Create(c.Request.Context(), middleware.GetToken(c), examID)
	if err != nil {
		h.failLoad(c, err)
		return
	}

	if claims := middleware.GetClaims(c); claims != nil {
		h.log.Info().
			Int("user_id", claims.UserID).
			Str("session_id", ctrl.ID().String()).
			Str("exam_id", examID.String()).
			Msg("Session created for student")
	}
	response.Success(c, http.StatusCreated, ctrl.Snapshot())
}

// GetSession godoc
// GET /api/v1/portal/sessions/:session_id
// Returns the read-only session snapshot for rendering.
func (h *SessionHandler) GetSession(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, ctrl.Snapshot())
}

// StartSession godoc
// POST /api/v1/portal/sessions/:session_id/start
// Begins the attempt after the instructions screen; re-validates the
// attempt limit and launches the countdown.
func (h *SessionHandler) StartSession(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := ctrl.Start(); err != nil {
		h.failCommand(c, err)
		return
	}
	response.Success(c, http.StatusOK, ctrl.Snapshot())
}

// SelectAnswer godoc
// POST /api/v1/portal/sessions/:session_id/answers
// Toggles one option of one question (radio or checkbox semantics depending
// on the question type).
func (h *SessionHandler) SelectAnswer(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	var req model.SelectAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := ctrl.Select(*req.QuestionIndex, *req.OptionIndex, *req.Checked); err != nil {
		h.failCommand(c, err)
		return
	}
	response.Success(c, http.StatusOK, ctrl.Snapshot())
}

// Navigate godoc
// POST /api/v1/portal/sessions/:session_id/navigation
// Moves the current-question pointer: next/previous (clamped) or goto
// (question-grid navigator). Never alters answer state.
func (h *SessionHandler) Navigate(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	var req model.NavigationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var err error
	switch req.Op {
	case model.NavOpNext:
		err = ctrl.Next()
	case model.NavOpPrevious:
		err = ctrl.Previous()
	case model.NavOpGoto:
		if req.Index == nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"index": "index is required for the goto op"})
			return
		}
		err = ctrl.GoTo(*req.Index)
	}
	if err != nil {
		h.failCommand(c, err)
		return
	}
	response.Success(c, http.StatusOK, ctrl.Snapshot())
}

// RequestSubmit godoc
// POST /api/v1/portal/sessions/:session_id/submit-request
// Opens the confirmation gate and returns the pre-submit summary
// (answered vs total, remaining time, attempt number vs limit).
func (h *SessionHandler) RequestSubmit(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	summary, err := ctrl.RequestManualSubmit()
	if err != nil {
		h.failCommand(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

// ConfirmSubmit godoc
// POST /api/v1/portal/sessions/:session_id/submit-confirm
// Runs the submission pipeline for a confirmed manual submission and
// returns the classified outcome in the snapshot.
func (h *SessionHandler) ConfirmSubmit(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	// The exchange is detached from the request context: a client that
	// disconnects mid-submission must not cancel an already-sent attempt.
	snap, err := ctrl.ConfirmSubmit(context.Background())
	if err != nil {
		h.failCommand(c, err)
		return
	}
	response.Success(c, http.StatusOK, snap)
}

// CancelSubmit godoc
// POST /api/v1/portal/sessions/:session_id/submit-cancel
// Closes the confirmation dialog with no side effects.
func (h *SessionHandler) CancelSubmit(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := ctrl.CancelSubmitDialog(); err != nil {
		h.failCommand(c, err)
		return
	}
	response.Success(c, http.StatusOK, ctrl.Snapshot())
}

// TeardownSession godoc
// DELETE /api/v1/portal/sessions/:session_id
// Destroys the session with no submission side effects (navigating away).
func (h *SessionHandler) TeardownSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if !h.mgr.Teardown(id) {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// lookup resolves the :session_id path param to a live controller,
// writing the error response itself when it cannot.
func (h *SessionHandler) lookup(c *gin.Context) (*session.Controller, bool) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return nil, false
	}

	ctrl, ok := h.mgr.Get(id)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return nil, false
	}
	return ctrl, true
}

// failLoad maps the load-time error taxonomy onto HTTP codes.
func (h *SessionHandler) failLoad(c *gin.Context, err error) {
	switch {
	case errors.Is(err, examapi.ErrExamNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
	case errors.Is(err, examapi.ErrExamForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrExamForbidden)
	case errors.Is(err, examapi.ErrMalformedExam):
		response.Fail(c, http.StatusConflict, response.ErrExamMalformed)
	case errors.Is(err, session.ErrNotYetAvailable):
		response.Fail(c, http.StatusConflict, response.ErrExamNotYetAvailable)
	case errors.Is(err, session.ErrExamExpired):
		response.Fail(c, http.StatusConflict, response.ErrExamWindowClosed)
	case errors.Is(err, context.Canceled):
		// Caller navigated away during the load; nothing to answer.
		c.Abort()
	default:
		h.log.Error().Err(err).Msg("Session load failed")
		response.Fail(c, http.StatusBadGateway, response.ErrInternal)
	}
}

// failCommand maps session command errors onto HTTP codes.
func (h *SessionHandler) failCommand(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrSessionClosed):
		response.Fail(c, http.StatusGone, response.ErrSessionClosed)
	case errors.Is(err, session.ErrNotStarted):
		response.Fail(c, http.StatusConflict, response.ErrSessionNotStarted)
	case errors.Is(err, session.ErrAlreadyStarted):
		response.Fail(c, http.StatusConflict, response.ErrSessionStarted)
	case errors.Is(err, session.ErrAttemptLimit):
		response.Fail(c, http.StatusConflict, response.ErrAttemptLimit)
	case errors.Is(err, session.ErrAnswersLocked):
		response.Fail(c, http.StatusConflict, response.ErrAnswersLocked)
	case errors.Is(err, session.ErrSubmitInFlight):
		response.Fail(c, http.StatusConflict, response.ErrSubmitInFlight)
	case errors.Is(err, session.ErrNoConfirmPending):
		response.Fail(c, http.StatusConflict, response.ErrNoConfirmPending)
	case errors.Is(err, session.ErrTerminalOutcome):
		response.Fail(c, http.StatusConflict, response.ErrSessionTerminal)
	case errors.Is(err, session.ErrIndexOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrQuestionOutOfRange)
	default:
		h.log.Error().Err(err).Msg("Session command failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
