package tuiocanvas

import "testing"

func newTestLoop() (*renderLoop, *TickQueue, *int) {
	q := NewTickQueue()
	draws := 0
	l := &renderLoop{sched: q, draw: func() { draws++ }}
	return l, q, &draws
}

func TestTickQueueRunsOnlyQueuedCallbacks(t *testing.T) {
	q := NewTickQueue()
	runs := 0
	var again func()
	again = func() {
		runs++
		q.RequestNextTick(again)
	}
	q.RequestNextTick(again)

	if n := q.RunPending(); n != 1 {
		t.Errorf("RunPending = %d, want 1", n)
	}
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
	if q.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", q.Pending())
	}
}

func TestTickQueueCancel(t *testing.T) {
	q := NewTickQueue()
	ran := false
	id := q.RequestNextTick(func() { ran = true })
	q.Cancel(id)
	q.Cancel(id + 100) // unknown ids are ignored
	q.RunPending()
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestRenderLoopIdleUntilStart(t *testing.T) {
	l, q, draws := newTestLoop()
	if l.state != LoopIdle {
		t.Errorf("state = %v, want idle", l.state)
	}
	q.RunPending()
	if *draws != 0 {
		t.Errorf("draws = %d, want 0", *draws)
	}
}

func TestRenderLoopDrawsOncePerTick(t *testing.T) {
	l, q, draws := newTestLoop()
	l.start()
	if l.state != LoopScheduled {
		t.Fatalf("state = %v, want scheduled", l.state)
	}
	for i := 1; i <= 3; i++ {
		q.RunPending()
		if *draws != i {
			t.Errorf("after tick %d draws = %d, want %d", i, *draws, i)
		}
		if l.state != LoopScheduled {
			t.Errorf("after tick %d state = %v, want scheduled", i, l.state)
		}
	}
	if l.frames != 3 {
		t.Errorf("frames = %d, want 3", l.frames)
	}
}

func TestRenderLoopStopObservedByNextTick(t *testing.T) {
	l, q, draws := newTestLoop()
	l.start()
	q.RunPending()

	l.stop()
	if l.state != LoopScheduled {
		t.Errorf("stop should not change state immediately, got %v", l.state)
	}
	q.RunPending()
	if *draws != 1 {
		t.Errorf("draws = %d, want 1 (tick after stop must not draw)", *draws)
	}
	if l.state != LoopStopped {
		t.Errorf("state = %v, want stopped", l.state)
	}
	if q.Pending() != 0 {
		t.Errorf("Pending = %d, want 0 (stopped loop rescheduled)", q.Pending())
	}

	q.RunPending()
	if *draws != 1 {
		t.Errorf("draws = %d, want 1", *draws)
	}
}

func TestRenderLoopStopDuringDrawFinishesFrame(t *testing.T) {
	q := NewTickQueue()
	draws := 0
	l := &renderLoop{sched: q}
	l.draw = func() {
		draws++
		if l.state != LoopDrawing {
			t.Errorf("state during draw = %v, want drawing", l.state)
		}
		l.stop()
	}
	l.start()

	q.RunPending()
	if draws != 1 {
		t.Fatalf("draws = %d, want 1", draws)
	}
	// The in-flight tick completes and reschedules; the next one observes
	// the stop.
	if q.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", q.Pending())
	}
	q.RunPending()
	if draws != 1 || l.state != LoopStopped {
		t.Errorf("draws = %d state = %v, want 1 stopped", draws, l.state)
	}
}

func TestRenderLoopRestartAfterStop(t *testing.T) {
	l, q, draws := newTestLoop()
	l.start()
	q.RunPending()
	l.stop()
	q.RunPending()

	l.start()
	q.RunPending()
	if *draws != 2 {
		t.Errorf("draws = %d, want 2", *draws)
	}
	if l.state != LoopScheduled {
		t.Errorf("state = %v, want scheduled", l.state)
	}
}

func TestRenderLoopStartReusesPendingTick(t *testing.T) {
	l, q, draws := newTestLoop()
	l.start()
	l.stop()
	l.start()
	l.start()
	if q.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", q.Pending())
	}
	q.RunPending()
	if *draws != 1 {
		t.Errorf("draws = %d, want 1", *draws)
	}
}

func TestRenderLoopCancel(t *testing.T) {
	l, q, draws := newTestLoop()
	l.start()
	l.cancel()
	if q.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", q.Pending())
	}
	if l.state != LoopStopped {
		t.Errorf("state = %v, want stopped", l.state)
	}
	q.RunPending()
	if *draws != 0 {
		t.Errorf("draws = %d, want 0", *draws)
	}
}

func TestLoopStateString(t *testing.T) {
	tests := []struct {
		s    LoopState
		want string
	}{
		{LoopIdle, "idle"},
		{LoopScheduled, "scheduled"},
		{LoopDrawing, "drawing"},
		{LoopStopped, "stopped"},
		{LoopState(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("LoopState(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
