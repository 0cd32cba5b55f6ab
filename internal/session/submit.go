package session

import (
	"context"
	"fmt"
	"time"

	"github.com/santhosh0728/edutask-exam-gateway/internal/examapi"
	"github.com/santhosh0728/edutask-exam-gateway/internal/model"
)

// SubmitTrigger distinguishes user-confirmed submissions from timer expiry.
type SubmitTrigger string

const (
	TriggerManual SubmitTrigger = "manual"
	TriggerAuto   SubmitTrigger = "auto"
)

// Outcome is the terminal (or conditionally retryable) result of the
// submission pipeline.
type Outcome string

const (
	OutcomeCompleted          Outcome = "COMPLETED"
	OutcomeCompletedPendingID Outcome = "COMPLETED_PENDING_ID"
	OutcomeCompletedUnknown   Outcome = "COMPLETED_UNKNOWN"
	OutcomeRejectedValidation Outcome = "REJECTED_VALIDATION"
	OutcomeRejectedLimit      Outcome = "REJECTED_LIMIT_EXCEEDED"
	OutcomeRejectedNetwork    Outcome = "REJECTED_NETWORK"
)

// Completed reports whether the backend definitively accepted the submission.
func (o Outcome) Completed() bool {
	switch o {
	case OutcomeCompleted, OutcomeCompletedPendingID, OutcomeCompletedUnknown:
		return true
	}
	return false
}

// Retryable reports whether a manual retry is permitted after this outcome.
// Attempt-limit rejections are terminal for the session.
func (o Outcome) Retryable() bool {
	return o == OutcomeRejectedValidation || o == OutcomeRejectedNetwork
}

// RequestManualSubmit opens the confirmation gate and returns the pre-submit
// summary. It never blocks submitting an incomplete exam.
func (c *Controller) RequestManualSubmit() (ConfirmSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ConfirmSummary{}, ErrSessionClosed
	}
	if c.clock.state == TimerIdle {
		return ConfirmSummary{}, ErrNotStarted
	}
	if c.submitting {
		return ConfirmSummary{}, ErrSubmitInFlight
	}
	if c.completed || c.outcome == OutcomeRejectedLimit {
		return ConfirmSummary{}, ErrTerminalOutcome
	}

	c.confirmPending = true
	c.lastActivity = c.now()
	return c.confirmSummaryLocked(), nil
}

// CancelSubmitDialog closes the confirmation gate without side effects.
func (c *Controller) CancelSubmitDialog() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrSessionClosed
	}
	c.confirmPending = false
	c.lastActivity = c.now()
	return nil
}

// ConfirmSubmit runs the pipeline for a user-confirmed submission and
// returns the resulting snapshot. The call is synchronous: it returns once
// the exchange has been classified.
func (c *Controller) ConfirmSubmit(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Snapshot{}, ErrSessionClosed
	}
	if !c.confirmPending {
		c.mu.Unlock()
		return Snapshot{}, ErrNoConfirmPending
	}
	c.confirmPending = false
	c.mu.Unlock()

	c.submit(ctx, TriggerManual)
	return c.Snapshot(), nil
}

// submit runs the pipeline:
//  1. stop the countdown and reject re-entry, so at most one submission is
//     ever in flight per session;
//  2. compute elapsed wall-clock time from startedAt, independent of the
//     countdown's remaining value;
//  3. build the payload in original question order;
//  4. perform the exchange;
//  5. classify the outcome.
//
// The controller mutex is released around the network call so snapshot
// reads keep working while the exchange is in flight.
func (c *Controller) submit(ctx context.Context, trigger SubmitTrigger) {
	c.mu.Lock()
	if c.closed || c.submitting || c.completed || c.outcome == OutcomeRejectedLimit {
		c.mu.Unlock()
		return
	}
	if c.clock.state == TimerIdle {
		c.mu.Unlock()
		return
	}

	c.submitting = true
	c.submitStarted = true
	c.confirmPending = false
	if trigger == TriggerAuto {
		c.autoSubmitted = true
	}
	c.haltTimerLocked()

	t := c.now()
	c.flushTimeLocked(t)
	elapsed := int(t.Sub(c.startedAt) / time.Second)
	payload := c.buildPayloadLocked(elapsed)
	token, examID := c.token, c.exam.ID
	c.mu.Unlock()

	c.log.Info().
		Str("trigger", string(trigger)).
		Int("elapsed_seconds", elapsed).
		Int("answered", payload.answeredCount).
		Msg("Submitting exam")

	result, err := c.backend.SubmitExam(ctx, token, examID, payload.SubmissionPayload)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		// Torn down while in flight; never apply a result to a dead session.
		return
	}
	c.submitting = false
	c.applyOutcomeLocked(trigger, result, err)
}

// payloadWithStats carries the payload plus derived numbers for logging.
type payloadWithStats struct {
	*model.SubmissionPayload
	answeredCount int
}

// buildPayloadLocked serializes the answer state in original question order.
// Its length always equals the question count; unanswered questions get an
// empty selection list.
func (c *Controller) buildPayloadLocked(elapsedSeconds int) payloadWithStats {
	answers := make([]model.SubmittedAnswer, len(c.exam.Questions))
	answeredCount := 0
	for i, q := range c.exam.Questions {
		selected := c.tracker.Selected(i)
		if len(selected) > 0 {
			answeredCount++
		}
		answers[i] = model.SubmittedAnswer{
			QuestionID:       q.ID,
			SelectedOptions:  selected,
			TimeSpentSeconds: c.tracker.TimeSpentSeconds(i),
		}
	}
	return payloadWithStats{
		SubmissionPayload: &model.SubmissionPayload{
			Answers:          answers,
			TotalTimeSeconds: elapsedSeconds,
			StartedAt:        c.startedAt,
		},
		answeredCount: answeredCount,
	}
}

func (c *Controller) applyOutcomeLocked(trigger SubmitTrigger, result *examapi.SubmitResult, err error) {
	if err == nil {
		c.completed = true
		switch {
		case result.ResultID != "":
			c.outcome = OutcomeCompleted
			c.resultID = result.ResultID
		case result.HasResult():
			c.outcome = OutcomeCompletedPendingID
		default:
			c.outcome = OutcomeCompletedUnknown
		}
		if trigger == TriggerAuto {
			c.outcomeMessage = "Time is up. Your exam was submitted automatically."
		} else {
			c.outcomeMessage = "Your exam has been submitted."
		}
		c.log.Info().Str("outcome", string(c.outcome)).Str("result_id", c.resultID).Msg("Submission accepted")
		return
	}

	se, ok := examapi.AsSubmissionError(err)
	if !ok {
		se = &examapi.SubmissionError{Kind: examapi.SubmissionNetwork, Message: err.Error()}
	}

	switch se.Kind {
	case examapi.SubmissionLimitExceeded:
		c.outcome = OutcomeRejectedLimit
		c.outcomeMessage = fmt.Sprintf(
			"Submission rejected: you have used %d of %d allowed attempts.",
			se.AttemptsMade, se.AttemptsAllowed,
		)
	case examapi.SubmissionInvalid:
		c.outcome = OutcomeRejectedValidation
		c.outcomeMessage = fmt.Sprintf("Submission rejected by the server: %s You may try again.", se.Message)
	default:
		c.outcome = OutcomeRejectedNetwork
		c.outcomeMessage = "Submission could not reach the server. Check your connection and try again."
	}

	c.log.Warn().
		Str("trigger", string(trigger)).
		Str("kind", string(se.Kind)).
		Str("detail", se.Message).
		Msg("Submission rejected")
}
