package tuiocanvas

// TickID identifies a requested tick so it can be cancelled.
type TickID uint64

// Scheduler requests frame callbacks from the host, the way a browser's
// requestAnimationFrame does. Callbacks run on the render goroutine, one
// per requested tick.
type Scheduler interface {
	RequestNextTick(fn func()) TickID
	Cancel(id TickID)
}

type pendingTick struct {
	id TickID
	fn func()
}

// TickQueue is a Scheduler driven explicitly by its owner: RunPending runs
// every callback that was requested before the call. Callbacks requested
// while RunPending is running wait for the next call, so a self-rescheduling
// loop advances exactly one frame per RunPending.
//
// The windowed host calls RunPending once per ebiten Draw; tests call it to
// single-step the render loop.
type TickQueue struct {
	next    TickID
	pending []pendingTick
}

// NewTickQueue creates an empty queue.
func NewTickQueue() *TickQueue { return &TickQueue{} }

// RequestNextTick queues fn for the next RunPending.
func (q *TickQueue) RequestNextTick(fn func()) TickID {
	q.next++
	q.pending = append(q.pending, pendingTick{id: q.next, fn: fn})
	return q.next
}

// Cancel drops a queued callback. Unknown ids are ignored.
func (q *TickQueue) Cancel(id TickID) {
	for i, t := range q.pending {
		if t.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// RunPending runs the callbacks queued before this call and returns how
// many ran.
func (q *TickQueue) RunPending() int {
	batch := q.pending
	q.pending = nil
	for _, t := range batch {
		t.fn()
	}
	return len(batch)
}

// Pending returns the number of queued callbacks.
func (q *TickQueue) Pending() int { return len(q.pending) }

// LoopState is the render loop state.
type LoopState uint8

const (
	LoopIdle      LoopState = iota // never started
	LoopScheduled                  // a tick is requested and will draw
	LoopDrawing                    // inside a tick, drawing
	LoopStopped                    // a tick observed the stop request; nothing is scheduled
)

// String returns the state name.
func (s LoopState) String() string {
	switch s {
	case LoopIdle:
		return "idle"
	case LoopScheduled:
		return "scheduled"
	case LoopDrawing:
		return "drawing"
	case LoopStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// renderLoop is the self-rescheduling frame state machine. stop is
// cooperative: it only clears shouldDraw, and the next tick observes it.
type renderLoop struct {
	sched      Scheduler
	draw       func()
	state      LoopState
	shouldDraw bool
	pending    TickID
	hasPending bool
	frames     uint64
}

func (l *renderLoop) start() {
	l.shouldDraw = true
	if l.hasPending || l.state == LoopDrawing {
		// The in-flight or queued tick keeps the loop going; a second
		// request would run two loops side by side.
		if l.state != LoopDrawing {
			l.state = LoopScheduled
		}
		return
	}
	l.request()
}

func (l *renderLoop) stop() {
	l.shouldDraw = false
}

// cancel drops any queued tick and parks the loop.
func (l *renderLoop) cancel() {
	l.shouldDraw = false
	if l.hasPending {
		l.sched.Cancel(l.pending)
		l.hasPending = false
	}
	if l.state != LoopIdle {
		l.state = LoopStopped
	}
}

func (l *renderLoop) request() {
	l.pending = l.sched.RequestNextTick(l.tick)
	l.hasPending = true
	l.state = LoopScheduled
}

func (l *renderLoop) tick() {
	l.hasPending = false
	if !l.shouldDraw {
		l.state = LoopStopped
		return
	}
	l.state = LoopDrawing
	l.draw()
	l.frames++
	l.request()
}
