package session

type exitState int

const (
	exitIdle exitState = iota
	exitScanning
	exitAwaiting
	exitDone
)

func (s exitState) String() string {
	switch s {
	case exitScanning:
		return "scanning"
	case exitAwaiting:
		return "awaiting-confirm"
	case exitDone:
		return "exiting"
	}
	return "idle"
}

// exitSequence resolves every dirty buffer, lowest index first, before
// quitting. A cancel at any prompt aborts the whole sequence.
type exitSequence struct {
	s     *Session
	state exitState
	index int
}

func (e *exitSequence) start() {
	if e.state != exitIdle {
		return
	}
	e.s.logger.Info("exit requested", "buffers", e.s.reg.Count())
	e.state = exitScanning
	e.scan()
}

func (e *exitSequence) scan() {
	reg := e.s.reg
	i := -1
	for j, b := range reg.Buffers() {
		if b.Dirty() {
			i = j
			break
		}
	}
	if i < 0 {
		e.state = exitDone
		e.s.logger.Info("exiting")
		call(e.s.quit)
		return
	}

	e.state = exitAwaiting
	e.index = i
	e.s.activate(i)
	b := reg.Buffer(i)
	e.s.workflow.Guard(GuardRequest{
		Buffer: b,
		Dirty:  true,
		OnContinue: func() {
			if b.Dirty() {
				b.Discard()
				e.s.afterTextReset(b)
			}
			e.state = exitScanning
			e.scan()
		},
		OnCancel: func() {
			e.s.logger.Info("exit cancelled", "buffer", b.DisplayName())
			e.state = exitIdle
			e.s.status.Set("Exit cancelled")
		},
	})
}
