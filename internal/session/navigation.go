package session

// navigator tracks the current question index within [0, count). Movement
// never touches answer state; all selections are keyed by question index
// and survive navigation in either direction.
type navigator struct {
	current int
	count   int
}

func newNavigator(count int) *navigator {
	return &navigator{count: count}
}

func (n *navigator) Current() int {
	return n.current
}

// Next advances by one, clamped at the last index.
func (n *navigator) Next() {
	if n.current < n.count-1 {
		n.current++
	}
}

// Previous moves back by one, clamped at zero.
func (n *navigator) Previous() {
	if n.current > 0 {
		n.current--
	}
}

// GoTo jumps directly to an index (question-grid navigator).
func (n *navigator) GoTo(index int) error {
	if index < 0 || index >= n.count {
		return ErrIndexOutOfRange
	}
	n.current = index
	return nil
}
