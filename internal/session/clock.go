package session

// TimerState enumerates the countdown timer's state machine.
type TimerState string

const (
	TimerIdle    TimerState = "IDLE"
	TimerRunning TimerState = "RUNNING"
	TimerExpired TimerState = "EXPIRED"
	TimerStopped TimerState = "STOPPED"
)

// Presentation thresholds, in seconds. They carry no behavioral effect;
// the snapshot only flags them for UI emphasis.
const (
	warningThresholdSeconds = 10 * 60
	dangerThresholdSeconds  = 5 * 60
)

// countdown is the authoritative session clock: Idle → Running →
// {Expired, Stopped}. remaining decrements by exactly one per tick while
// Running; reaching zero transitions to Expired exactly once.
//
// countdown itself is not goroutine-safe; the owning Controller serializes
// all access under its mutex.
type countdown struct {
	state     TimerState
	remaining int
}

func newCountdown(seconds int) *countdown {
	if seconds < 0 {
		seconds = 0
	}
	return &countdown{state: TimerIdle, remaining: seconds}
}

// start transitions Idle → Running.
func (c *countdown) start() error {
	if c.state != TimerIdle {
		return ErrAlreadyStarted
	}
	c.state = TimerRunning
	return nil
}

// tick consumes one second. Returns true on the single tick that reaches
// zero and moves the clock to Expired. Ticks in any other state are no-ops.
func (c *countdown) tick() bool {
	if c.state != TimerRunning {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.state = TimerExpired
		return true
	}
	return false
}

// stop halts a Running clock before expiry. Called when a submission
// (manual or auto) begins, or on session teardown.
func (c *countdown) stop() {
	if c.state == TimerRunning {
		c.state = TimerStopped
	}
}

func (c *countdown) warning() bool {
	return c.remaining <= warningThresholdSeconds
}

func (c *countdown) danger() bool {
	return c.remaining <= dangerThresholdSeconds
}
