package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/santhosh0728/edutask-exam-gateway/internal/examapi"
	"github.com/santhosh0728/edutask-exam-gateway/internal/model"
)

// Backend is the slice of the portal REST backend the session core consumes.
// *examapi.Client satisfies it; tests substitute stubs.
type Backend interface {
	GetExam(ctx context.Context, token string, examID uuid.UUID) (*model.ExamDefinition, error)
	ListAttempts(ctx context.Context, token string, examID uuid.UUID) ([]model.AttemptSummary, error)
	SubmitExam(ctx context.Context, token string, examID uuid.UUID, payload *model.SubmissionPayload) (*examapi.SubmitResult, error)
}

// Controller owns one exam-taking session: the countdown timer, the answer
// tracker, the navigation pointer and the submission pipeline. All commands
// and the tick loop serialize on one mutex, so the state machine sees no
// parallel mutation.
type Controller struct {
	mu sync.Mutex

	id      uuid.UUID
	token   string
	backend Backend
	log     zerolog.Logger

	// now and tickInterval are fixed at construction; tests inject a frozen
	// clock and a short interval.
	now          func() time.Time
	tickInterval time.Duration

	exam    *model.ExamDefinition
	attempt model.AttemptContext

	clock   *countdown
	tracker *answerTracker
	nav     *navigator

	startedAt    time.Time
	enteredAt    time.Time
	lastActivity time.Time

	confirmPending bool
	submitting     bool
	submitStarted  bool
	completed      bool
	autoSubmitted  bool
	outcome        Outcome
	outcomeMessage string
	resultID       string

	stopTick chan struct{}
	stopOnce sync.Once
	closed   bool
}

// Load fetches the exam definition and the caller's prior attempt count,
// validates the availability window and constructs an unstarted session.
//
// Failure modes: examapi.ErrExamNotFound, examapi.ErrExamForbidden,
// examapi.ErrMalformedExam, ErrNotYetAvailable, ErrExamExpired, or a
// transport error. All of them abort construction; no partial session is
// ever returned.
func Load(ctx context.Context, backend Backend, log zerolog.Logger, token string, examID uuid.UUID) (*Controller, error) {
	return load(ctx, backend, log, token, examID, time.Now, time.Second)
}

func load(ctx context.Context, backend Backend, log zerolog.Logger, token string, examID uuid.UUID, now func() time.Time, tickInterval time.Duration) (*Controller, error) {
	exam, err := backend.GetExam(ctx, token, examID)
	if err != nil {
		return nil, err
	}
	if err := validateDefinition(exam); err != nil {
		return nil, err
	}

	current := now()
	if exam.StartTime != nil && current.Before(*exam.StartTime) {
		return nil, ErrNotYetAvailable
	}
	if exam.EndTime != nil && current.After(*exam.EndTime) {
		return nil, ErrExamExpired
	}

	// The attempt history is advisory: a failure here defaults to zero prior
	// attempts, and the backend re-enforces the limit at submission time.
	existing := 0
	if attempts, err := backend.ListAttempts(ctx, token, examID); err != nil {
		log.Warn().Err(err).Str("exam_id", examID.String()).Msg("Attempt history fetch failed, assuming zero")
	} else {
		existing = len(attempts)
	}

	if err := ctx.Err(); err != nil {
		// Caller went away while loading; never surface a session for it.
		return nil, err
	}

	c := &Controller{
		id:           uuid.New(),
		token:        token,
		backend:      backend,
		now:          now,
		tickInterval: tickInterval,
		exam:         exam,
		attempt: model.AttemptContext{
			ExistingAttempts: existing,
			AttemptLimit:     exam.AttemptLimit,
		},
		clock:        newCountdown(exam.DurationMinutes * 60),
		tracker:      newAnswerTracker(exam.Questions),
		nav:          newNavigator(len(exam.Questions)),
		lastActivity: current,
		stopTick:     make(chan struct{}),
	}
	c.log = log.With().Str("component", "session").Str("session_id", c.id.String()).Logger()
	return c, nil
}

// validateDefinition rejects definitions the session cannot run on: a
// missing or empty question list, or a choice question without options.
func validateDefinition(exam *model.ExamDefinition) error {
	if len(exam.Questions) == 0 {
		return examapi.ErrMalformedExam
	}
	for _, q := range exam.Questions {
		if len(q.Options) == 0 {
			return examapi.ErrMalformedExam
		}
	}
	return nil
}

// ID returns the session identifier.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// LastActivity returns the time of the last command, for idle reaping.
func (c *Controller) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActivity
}

// Start begins the attempt: it re-validates the attempt limit, stamps
// startedAt and launches the tick loop. Only valid once, from Idle.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrSessionClosed
	}
	if c.clock.state != TimerIdle {
		return ErrAlreadyStarted
	}
	if !c.attempt.CanStart() {
		return ErrAttemptLimit
	}

	t := c.now()
	c.startedAt = t
	c.enteredAt = t
	c.lastActivity = t
	if err := c.clock.start(); err != nil {
		return err
	}

	go c.tickLoop()

	c.log.Info().
		Str("exam_id", c.exam.ID.String()).
		Int("attempt_number", c.attempt.AttemptNumber()).
		Int("duration_minutes", c.exam.DurationMinutes).
		Msg("Session started")
	return nil
}

// tickLoop drives the countdown, one decrement per tick interval. It exits
// when the stop channel closes (teardown or submission start) or when the
// clock leaves Running. Expiry triggers exactly one auto-submission.
func (c *Controller) tickLoop() {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopTick:
			return
		case <-ticker.C:
			expired, running := c.advanceClock()
			if expired {
				c.submit(context.Background(), TriggerAuto)
				return
			}
			if !running {
				return
			}
		}
	}
}

// advanceClock applies one tick under the controller mutex.
func (c *Controller) advanceClock() (expired, running bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.clock.state != TimerRunning {
		return false, false
	}
	expired = c.clock.tick()
	return expired, c.clock.state == TimerRunning
}

// Select toggles an option on a question. Selections are frozen once any
// submission has begun; a retryable rejection keeps the exact answer state
// for the retry.
func (c *Controller) Select(questionIndex, optionIndex int, checked bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrSessionClosed
	}
	if c.clock.state == TimerIdle {
		return ErrNotStarted
	}
	if c.submitStarted {
		return ErrAnswersLocked
	}

	if err := c.tracker.Select(questionIndex, optionIndex, checked); err != nil {
		return err
	}
	c.lastActivity = c.now()
	return nil
}

// Next moves to the following question, clamped at the last one.
func (c *Controller) Next() error {
	return c.navigate(func() error { c.nav.Next(); return nil })
}

// Previous moves to the preceding question, clamped at the first one.
func (c *Controller) Previous() error {
	return c.navigate(func() error { c.nav.Previous(); return nil })
}

// GoTo jumps straight to a question from the grid navigator.
func (c *Controller) GoTo(index int) error {
	return c.navigate(func() error { return c.nav.GoTo(index) })
}

func (c *Controller) navigate(move func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrSessionClosed
	}
	if c.clock.state == TimerIdle {
		return ErrNotStarted
	}

	t := c.now()
	c.flushTimeLocked(t)
	if err := move(); err != nil {
		return err
	}
	c.enteredAt = t
	c.lastActivity = t
	return nil
}

// flushTimeLocked accrues the viewing time of the current question up to t.
func (c *Controller) flushTimeLocked(t time.Time) {
	if c.enteredAt.IsZero() {
		return
	}
	c.tracker.AddTime(c.nav.Current(), t.Sub(c.enteredAt))
	c.enteredAt = t
}

// Teardown cancels the session deterministically: the tick loop stops, no
// auto-submit can fire afterward, and a submission still in flight will not
// apply its result. It never submits anything itself.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.haltTimerLocked()
	c.log.Info().Msg("Session torn down")
}

// haltTimerLocked closes the stop channel exactly once and stops a Running
// clock. Safe to call in any state.
func (c *Controller) haltTimerLocked() {
	c.stopOnce.Do(func() { close(c.stopTick) })
	c.clock.stop()
}

// Snapshot returns the read-only session view for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.exam.Questions)
	answered := make([]bool, n)
	states := make([]model.AnswerState, n)
	for i := range states {
		answered[i] = c.tracker.IsAnswered(i)
		states[i] = model.AnswerState{
			QuestionIndex:    i,
			SelectedOptions:  c.tracker.Selected(i),
			TimeSpentSeconds: c.tracker.TimeSpentSeconds(i),
		}
	}
	answeredCount := c.tracker.AnsweredCount()

	progress := 0
	if n > 0 {
		progress = answeredCount * 100 / n
	}

	snap := Snapshot{
		SessionID:        c.id,
		ExamID:           c.exam.ID,
		Title:            c.exam.Title,
		Subject:          c.exam.Subject,
		DurationMinutes:  c.exam.DurationMinutes,
		QuestionCount:    n,
		TimerState:       c.clock.state,
		RemainingSeconds: c.clock.remaining,
		RemainingDisplay: FormatRemaining(c.clock.remaining),
		Warning:          c.clock.warning(),
		Danger:           c.clock.danger(),
		CurrentIndex:     c.nav.Current(),
		CurrentSelection: c.tracker.Selected(c.nav.Current()),
		Answered:         answered,
		AnswerStates:     states,
		AnsweredCount:    answeredCount,
		ProgressPercent:  progress,
		Attempt:          c.attempt,
		AttemptNumber:    c.attempt.AttemptNumber(),
		Submitting:       c.submitting,
		ConfirmPending:   c.confirmPending,
		Outcome:          c.outcome,
		OutcomeMessage:   c.outcomeMessage,
		ResultID:         c.resultID,
		AutoSubmitted:    c.autoSubmitted,
	}

	if n > 0 {
		q := c.exam.Questions[c.nav.Current()]
		snap.CurrentQuestion = &q
	}
	if !c.startedAt.IsZero() {
		t := c.startedAt
		snap.StartedAt = &t
	}
	if c.confirmPending {
		s := c.confirmSummaryLocked()
		snap.PendingSummary = &s
	}
	return snap
}

func (c *Controller) confirmSummaryLocked() ConfirmSummary {
	return ConfirmSummary{
		AnsweredCount:    c.tracker.AnsweredCount(),
		QuestionCount:    len(c.exam.Questions),
		RemainingSeconds: c.clock.remaining,
		RemainingDisplay: FormatRemaining(c.clock.remaining),
		AttemptNumber:    c.attempt.AttemptNumber(),
		AttemptLimit:     c.attempt.AttemptLimit,
	}
}
