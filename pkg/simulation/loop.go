package simulation

// Loop drives Engine.Step through a TickSource until the engine settles,
// and resumes automatically when the engine is reheated. Stop cancels the
// loop permanently: a stopped loop never steps again, which is what lets a
// snapshot change tear down the old simulation before the new one starts.
type Loop struct {
	eng     *Engine
	src     TickSource
	stopped bool
	queued  bool
}

// NewLoop binds an engine to a tick source. The loop does not start until
// Start is called.
func NewLoop(eng *Engine, src TickSource) *Loop {
	l := &Loop{eng: eng, src: src}
	eng.onWake(l.resume)
	return l
}

// Start schedules the first tick. Starting an engine that is already
// settled (e.g. a zero-node snapshot) is a no-op.
func (l *Loop) Start() {
	if l.stopped || l.eng.Settled() {
		return
	}
	l.schedule()
}

// Stop cancels the loop. Ticks already scheduled on the source become
// no-ops when they fire.
func (l *Loop) Stop() {
	l.stopped = true
}

// Running reports whether the loop will keep stepping.
func (l *Loop) Running() bool {
	return !l.stopped && !l.eng.Settled()
}

func (l *Loop) schedule() {
	if l.queued {
		return
	}
	l.queued = true
	l.src.Schedule(l.step)
}

func (l *Loop) step() {
	l.queued = false
	if l.stopped {
		return
	}
	l.eng.Step()
	if !l.eng.Settled() {
		l.schedule()
	}
}

// resume is installed as the engine's wake hook so a Reheat on a settled
// engine restarts ticking.
func (l *Loop) resume() {
	if l.stopped {
		return
	}
	l.schedule()
}
