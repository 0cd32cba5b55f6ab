package examapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/santhosh0728/edutask-exam-gateway/internal/model"
)

// Client wraps the portal backend's REST API. The gateway performs exactly
// three operations against it: fetch an exam definition, fetch the caller's
// attempt history, and post a submission.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

// NewClient creates a backend client rooted at baseURL. The timeout bounds
// every call; there is no automatic retry; submission retries are always
// user-initiated.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http: httpClient,
		log:  log.With().Str("component", "examapi").Logger(),
	}
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error,omitempty"`
}

type apiError struct {
	Code            string `json:"code"`
	Message         string `json:"message"`
	AttemptsMade    int    `json:"attempts_made,omitempty"`
	AttemptsAllowed int    `json:"attempts_allowed,omitempty"`
}

// SubmitResult is a successful submission exchange. ResultID may be empty:
// some backend versions acknowledge before the graded result row exists.
type SubmitResult struct {
	ResultID string          `json:"result_id,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
}

// HasResult reports whether the backend returned a result body even though
// no identifier was assigned yet.
func (r *SubmitResult) HasResult() bool {
	return len(r.Result) > 0 && string(r.Result) != "null"
}

// GetExam fetches the exam definition. Returns ErrExamNotFound,
// ErrExamForbidden or ErrMalformedExam for the classified failure modes;
// any other error is a transport problem.
func (c *Client) GetExam(ctx context.Context, token string, examID uuid.UUID) (*model.ExamDefinition, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get(fmt.Sprintf("/exams/%s", examID))
	if err != nil {
		return nil, fmt.Errorf("get exam: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrExamNotFound
	case http.StatusForbidden, http.StatusUnauthorized:
		return nil, ErrExamForbidden
	default:
		return nil, fmt.Errorf("get exam: backend returned %d", resp.StatusCode())
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil || len(env.Data) == 0 {
		return nil, ErrMalformedExam
	}

	var exam model.ExamDefinition
	if err := json.Unmarshal(env.Data, &exam); err != nil {
		c.log.Warn().Err(err).Str("exam_id", examID.String()).Msg("Exam definition failed to decode")
		return nil, ErrMalformedExam
	}

	return &exam, nil
}

// ListAttempts fetches the caller's prior attempts for the exam. Callers
// treat any error here as advisory (zero prior attempts); the backend
// re-enforces the limit at submission time.
func (c *Client) ListAttempts(ctx context.Context, token string, examID uuid.UUID) ([]model.AttemptSummary, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get(fmt.Sprintf("/exams/%s/attempts", examID))
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("list attempts: backend returned %d", resp.StatusCode())
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("list attempts: decode envelope: %w", err)
	}

	var body struct {
		Attempts []model.AttemptSummary `json:"attempts"`
	}
	if err := json.Unmarshal(env.Data, &body); err != nil {
		return nil, fmt.Errorf("list attempts: decode attempts: %w", err)
	}

	return body.Attempts, nil
}

// SubmitExam posts the submission payload. Failures are classified into the
// typed SubmissionError taxonomy: validation (retryable), attempt-limit
// (terminal) and network (retryable).
func (c *Client) SubmitExam(ctx context.Context, token string, examID uuid.UUID, payload *model.SubmissionPayload) (*SubmitResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload).
		Post(fmt.Sprintf("/exams/%s/submissions", examID))
	if err != nil {
		return nil, &SubmissionError{Kind: SubmissionNetwork, Message: err.Error()}
	}

	code := resp.StatusCode()
	if code == http.StatusOK || code == http.StatusCreated {
		var env envelope
		if err := json.Unmarshal(resp.Body(), &env); err != nil {
			// Accepted but unreadable; treat as a bare acknowledgement.
			return &SubmitResult{}, nil
		}
		var result SubmitResult
		if len(env.Data) > 0 {
			_ = json.Unmarshal(env.Data, &result)
		}
		return &result, nil
	}

	var env envelope
	_ = json.Unmarshal(resp.Body(), &env)

	if env.Error != nil && env.Error.Code == "ATTEMPT_LIMIT_REACHED" {
		return nil, &SubmissionError{
			Kind:            SubmissionLimitExceeded,
			Message:         env.Error.Message,
			AttemptsMade:    env.Error.AttemptsMade,
			AttemptsAllowed: env.Error.AttemptsAllowed,
		}
	}

	if code == http.StatusBadRequest || code == http.StatusUnprocessableEntity {
		msg := "submission payload rejected"
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		return nil, &SubmissionError{Kind: SubmissionInvalid, Message: msg}
	}

	return nil, &SubmissionError{
		Kind:    SubmissionNetwork,
		Message: fmt.Sprintf("backend returned %d", code),
	}
}
