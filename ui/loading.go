package ui

import "sync"

// Loading is a reference counted busy indicator. Nested Begin calls keep it visible until the
// matching number of done calls has happened.
type Loading struct {
	mu       sync.Mutex
	depth    int
	onChange func(visible bool)
}

// NewLoading creates an indicator. onChange, if set, is called on every hidden/visible transition.
func NewLoading(onChange func(visible bool)) *Loading {
	return &Loading{onChange: onChange}
}

// Begin shows the indicator and returns the func that releases this hold. Calling the
// returned func more than once has no further effect.
func (l *Loading) Begin() (done func()) {
	l.mu.Lock()
	l.depth++
	show := l.depth == 1
	l.mu.Unlock()

	if show && l.onChange != nil {
		l.onChange(true)
	}

	var once sync.Once
	return func() {
		once.Do(l.end)
	}
}

func (l *Loading) end() {
	l.mu.Lock()
	if l.depth == 0 {
		l.mu.Unlock()
		return
	}
	l.depth--
	hide := l.depth == 0
	l.mu.Unlock()

	if hide && l.onChange != nil {
		l.onChange(false)
	}
}

// Visible reports whether any hold is outstanding.
func (l *Loading) Visible() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.depth > 0
}

// Depth returns the number of outstanding holds.
func (l *Loading) Depth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.depth
}
