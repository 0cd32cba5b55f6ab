package examapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santhosh0728/edutask-exam-gateway/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, zerolog.Nop())
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func writeError(w http.ResponseWriter, status int, errBody map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": errBody})
}

func TestGetExamDecodesDefinition(t *testing.T) {
	examID := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exams/"+examID.String(), r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		writeData(w, http.StatusOK, map[string]any{
			"id":               examID,
			"title":            "Physics Final",
			"subject":          "Physics",
			"duration_minutes": 90,
			"attempt_limit":    2,
			"questions": []map[string]any{
				{
					"id":     uuid.New(),
					"prompt": "What is F = ma?",
					"type":   "SINGLE",
					"options": []map[string]any{
						{"text": "Newton's second law"},
						{"text": "Ohm's law"},
					},
					"points": 5,
				},
			},
		})
	})

	exam, err := client.GetExam(context.Background(), "tok-123", examID)
	require.NoError(t, err)
	assert.Equal(t, examID, exam.ID)
	assert.Equal(t, "Physics Final", exam.Title)
	assert.Equal(t, 90, exam.DurationMinutes)
	assert.Equal(t, 2, exam.AttemptLimit)
	require.Len(t, exam.Questions, 1)
	assert.Equal(t, model.QuestionTypeSingle, exam.Questions[0].Type)
	assert.Len(t, exam.Questions[0].Options, 2)
}

func TestGetExamClassifiesFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusNotFound, map[string]any{"code": "EXAM_NOT_FOUND"})
			},
			wantErr: ErrExamNotFound,
		},
		{
			name: "forbidden",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusForbidden, map[string]any{"code": "FORBIDDEN"})
			},
			wantErr: ErrExamForbidden,
		},
		{
			name: "unauthorized maps to forbidden",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusUnauthorized, map[string]any{"code": "TOKEN_INVALID"})
			},
			wantErr: ErrExamForbidden,
		},
		{
			name: "unparseable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("<html>not json</html>"))
			},
			wantErr: ErrMalformedExam,
		},
		{
			name: "empty data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{}`))
			},
			wantErr: ErrMalformedExam,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.GetExam(context.Background(), "tok", uuid.New())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetExamSurfacesUnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := client.GetExam(context.Background(), "tok", uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestListAttempts(t *testing.T) {
	examID := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exams/"+examID.String()+"/attempts", r.URL.Path)
		writeData(w, http.StatusOK, map[string]any{
			"attempts": []map[string]any{
				{"id": uuid.New(), "score": 72},
				{"id": uuid.New(), "score": 85},
			},
		})
	})

	attempts, err := client.ListAttempts(context.Background(), "tok", examID)
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
}

func TestListAttemptsErrorIsAdvisory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := client.ListAttempts(context.Background(), "tok", uuid.New())
	assert.Error(t, err)
}

func TestSubmitExamSuccessVariants(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		wantID     string
		wantResult bool
	}{
		{
			name:   "graded immediately",
			data:   map[string]any{"result_id": "res-7", "result": map[string]any{"score": 88}},
			wantID: "res-7",
		},
		{
			name:       "result without id",
			data:       map[string]any{"result": map[string]any{"score": 88}},
			wantResult: true,
		},
		{
			name: "bare acknowledgement",
			data: map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				var payload model.SubmissionPayload
				require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				writeData(w, http.StatusCreated, tt.data)
			})

			result, err := client.SubmitExam(context.Background(), "tok", uuid.New(), &model.SubmissionPayload{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, result.ResultID)
			assert.Equal(t, tt.wantResult, result.HasResult() && result.ResultID == "")
		})
	}
}

func TestSubmitExamAttemptLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusConflict, map[string]any{
			"code":             "ATTEMPT_LIMIT_REACHED",
			"message":          "no attempts remaining",
			"attempts_made":    2,
			"attempts_allowed": 2,
		})
	})

	_, err := client.SubmitExam(context.Background(), "tok", uuid.New(), &model.SubmissionPayload{})
	se, ok := AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, SubmissionLimitExceeded, se.Kind)
	assert.Equal(t, 2, se.AttemptsMade)
	assert.Equal(t, 2, se.AttemptsAllowed)
}

func TestSubmitExamValidationRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnprocessableEntity, map[string]any{
			"code":    "VALIDATION_ERROR",
			"message": "answer references unknown question",
		})
	})

	_, err := client.SubmitExam(context.Background(), "tok", uuid.New(), &model.SubmissionPayload{})
	se, ok := AsSubmissionError(err)
	require.True(t, ok)
	assert.Equal(t, SubmissionInvalid, se.Kind)
	assert.Equal(t, "answer references unknown question", se.Message)
}

func TestSubmitExamNetworkClassification(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		_, err := client.SubmitExam(context.Background(), "tok", uuid.New(), &model.SubmissionPayload{})
		se, ok := AsSubmissionError(err)
		require.True(t, ok)
		assert.Equal(t, SubmissionNetwork, se.Kind)
	})

	t.Run("unreachable backend", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", time.Second, zerolog.Nop())
		_, err := client.SubmitExam(context.Background(), "tok", uuid.New(), &model.SubmissionPayload{})
		se, ok := AsSubmissionError(err)
		require.True(t, ok)
		assert.Equal(t, SubmissionNetwork, se.Kind)
	})
}
