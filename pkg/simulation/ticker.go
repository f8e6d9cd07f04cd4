package simulation

// TickSource schedules a callback for the next frame. Hosts adapt whatever
// drives their frames (a terminal tick message, a game loop's update pass)
// to this interface; tests use ManualSource to step synchronously without a
// timer or render surface.
//
// A scheduled callback must run on the same logical thread as all other
// engine access. Schedule never blocks.
type TickSource interface {
	Schedule(fn func())
}

// ManualSource is a deterministic TickSource: callbacks queue up until the
// caller drains them.
type ManualSource struct {
	pending []func()
}

// Schedule queues fn for a later Run call.
func (m *ManualSource) Schedule(fn func()) {
	m.pending = append(m.pending, fn)
}

// RunNext executes the oldest queued callback. It reports whether one ran.
func (m *ManualSource) RunNext() bool {
	if len(m.pending) == 0 {
		return false
	}
	fn := m.pending[0]
	m.pending = m.pending[1:]
	fn()
	return true
}

// Run executes queued callbacks, including ones scheduled while draining,
// until the queue is empty or max callbacks have run. It returns the number
// executed.
func (m *ManualSource) Run(max int) int {
	ran := 0
	for ran < max && m.RunNext() {
		ran++
	}
	return ran
}

// Pending returns the number of queued callbacks.
func (m *ManualSource) Pending() int {
	return len(m.pending)
}
