package session

import (
	"time"

	"github.com/odvcencio/scribe/clock"
)

// DefaultStatusDelay is how long a transient status message stays up.
const DefaultStatusDelay = 3 * time.Second

// Status holds the transient status message. Setting a message restarts
// its clear timer; an older timer that fires late is ignored.
type Status struct {
	clock      clock.Clock
	delay      time.Duration
	dispatch   func(func())
	onChange   func(text string)
	text       string
	timer      *clock.Timer
	generation uint64
}

func newStatus(c clock.Clock, delay time.Duration, dispatch func(func()), onChange func(string)) *Status {
	return &Status{clock: c, delay: delay, dispatch: dispatch, onChange: onChange}
}

// Text returns the current message.
func (st *Status) Text() string {
	return st.text
}

// Set shows text and arms the clear timer.
func (st *Status) Set(text string) {
	st.timer.Stop()
	st.generation++
	gen := st.generation
	st.show(text)
	if text == "" || st.delay <= 0 {
		return
	}
	st.timer = st.clock.AfterFunc(st.delay, func() {
		st.dispatch(func() {
			if gen != st.generation {
				return
			}
			st.timer = nil
			st.show("")
		})
	})
}

// Clear removes the message now.
func (st *Status) Clear() {
	st.Set("")
}

func (st *Status) show(text string) {
	st.text = text
	if st.onChange != nil {
		st.onChange(text)
	}
}
