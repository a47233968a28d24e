package tuio

import (
	"fmt"
	"sync"
	"testing"
)

// eventLog records listener callbacks as short strings, e.g. "add 3 ptr".
type eventLog struct {
	events []string
}

func kinds(o *Object, fresh bool) string {
	s := ""
	add := func(ok bool, k Kind) {
		if ok {
			s += " " + k.String()
		}
	}
	if fresh {
		add(o.ContainsNewPointer(), KindPointer)
		add(o.ContainsNewToken(), KindToken)
		add(o.ContainsNewBounds(), KindBounds)
		add(o.ContainsNewSymbol(), KindSymbol)
		return s
	}
	add(o.ContainsPointer(), KindPointer)
	add(o.ContainsToken(), KindToken)
	add(o.ContainsBounds(), KindBounds)
	add(o.ContainsSymbol(), KindSymbol)
	return s
}

func (l *eventLog) TuioAdd(o *Object) {
	l.events = append(l.events, fmt.Sprintf("add %d%s", o.SessionID, kinds(o, true)))
}

func (l *eventLog) TuioUpdate(o *Object) {
	l.events = append(l.events, fmt.Sprintf("update %d", o.SessionID))
}

func (l *eventLog) TuioRemove(o *Object) {
	l.events = append(l.events, fmt.Sprintf("remove %d%s", o.SessionID, kinds(o, false)))
}

func (l *eventLog) TuioRefresh(t Time) {
	l.events = append(l.events, fmt.Sprintf("refresh %d", t.FrameID))
}

func (l *eventLog) take() []string {
	out := l.events
	l.events = nil
	return out
}

func assertEvents(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("events = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %q, want %q", got, want)
		}
	}
}

func newLoggedClient() (*Client, *eventLog) {
	c := NewClient()
	l := &eventLog{}
	c.AddListener(l)
	return c, l
}

func TestClientNotificationOrder(t *testing.T) {
	c, l := newLoggedClient()

	c.Apply(Frame{
		Time:     Time{FrameID: 1},
		Pointers: []Pointer{{SessionID: 1}},
		Tokens:   []Token{{SessionID: 2}},
		Bounds:   []Bounds{{SessionID: 2}},
		Alive:    []uint32{1, 2},
	})
	assertEvents(t, l.take(), "add 1 ptr", "add 2 tok bnd", "refresh 1")

	c.Apply(Frame{
		Time:     Time{FrameID: 2},
		Tokens:   []Token{{SessionID: 2, Angle: 1}},
		Pointers: []Pointer{{SessionID: 3}},
		Alive:    []uint32{2, 3},
	})
	assertEvents(t, l.take(), "add 3 ptr", "update 2", "remove 1 ptr", "refresh 2")
}

func TestClientAddReportsOnlyNewComponents(t *testing.T) {
	c, l := newLoggedClient()
	c.Apply(Frame{Tokens: []Token{{SessionID: 5}}})
	l.take()

	c.Apply(Frame{
		Tokens:  []Token{{SessionID: 5}},
		Symbols: []Symbol{{SessionID: 5, Data: "late"}},
	})
	assertEvents(t, l.take(), "add 5 sym", "refresh 0")

	// Fresh flags are cleared once the frame is delivered.
	c.Apply(Frame{Tokens: []Token{{SessionID: 5}}})
	assertEvents(t, l.take(), "update 5", "refresh 0")
}

func TestClientNilAliveRemovesNothing(t *testing.T) {
	c, l := newLoggedClient()
	c.Apply(Frame{Pointers: []Pointer{{SessionID: 1}}})
	c.Apply(Frame{Pointers: []Pointer{{SessionID: 2}}})
	l.take()

	c.Apply(Frame{})
	assertEvents(t, l.take(), "refresh 0")
	if len(c.Objects()) != 2 {
		t.Errorf("objects = %d, want 2", len(c.Objects()))
	}

	c.Apply(Frame{Alive: []uint32{}})
	assertEvents(t, l.take(), "remove 1 ptr", "remove 2 ptr", "refresh 0")
	if len(c.Objects()) != 0 {
		t.Errorf("objects = %d, want 0", len(c.Objects()))
	}
}

func TestClientRemovedIDIsNew(t *testing.T) {
	c, l := newLoggedClient()
	c.Apply(Frame{Pointers: []Pointer{{SessionID: 1}}, Alive: []uint32{1}})
	c.Apply(Frame{Alive: []uint32{}})
	l.take()
	c.Apply(Frame{Pointers: []Pointer{{SessionID: 1}}, Alive: []uint32{1}})
	assertEvents(t, l.take(), "add 1 ptr", "refresh 0")
}

func TestClientDim(t *testing.T) {
	c := NewClient()
	if c.Dim() != 0 {
		t.Errorf("initial Dim = %d, want 0", c.Dim())
	}
	c.Apply(Frame{Dim: PackDim(640, 480), Source: "cam"})
	c.Apply(Frame{Source: "cam2"})
	if c.Dim() != PackDim(640, 480) {
		t.Errorf("Dim = %#x, want %#x", c.Dim(), PackDim(640, 480))
	}
	if c.Source() != "cam2" {
		t.Errorf("Source = %q, want cam2", c.Source())
	}
}

func TestPackDim(t *testing.T) {
	d := PackDim(1920, 1080)
	if d%65536 != 1920 || d/65536 != 1080 {
		t.Errorf("PackDim = %#x, want width low and height high", d)
	}
	if PackDim(0xffff, 0xffff) != 0xffffffff {
		t.Errorf("PackDim(max) = %#x", PackDim(0xffff, 0xffff))
	}
}

func TestClientListenerDedupe(t *testing.T) {
	c := NewClient()
	l := &eventLog{}
	c.AddListener(l)
	c.AddListener(l)
	c.Apply(Frame{})
	assertEvents(t, l.take(), "refresh 0")

	c.RemoveListener(l)
	c.Apply(Frame{})
	if len(l.take()) != 0 {
		t.Error("removed listener still notified")
	}
}

func TestClientSnapshotsAreCopies(t *testing.T) {
	c := NewClient()
	c.Apply(Frame{Tokens: []Token{{SessionID: 1, CID: 3}}})

	tok, ok := c.Token(1)
	if !ok || tok.CID != 3 {
		t.Fatalf("Token = %+v, %v", tok, ok)
	}
	tok.CID = 99
	if again, _ := c.Token(1); again.CID != 3 {
		t.Error("modifying a snapshot changed the client state")
	}

	if _, ok := c.Pointer(1); ok {
		t.Error("Pointer reported a component the object does not hold")
	}
	if _, ok := c.Bounds(7); ok {
		t.Error("Bounds reported an unknown id")
	}
	if _, ok := c.Symbol(1); ok {
		t.Error("Symbol reported a component the object does not hold")
	}
}

func TestClientObjectsOrder(t *testing.T) {
	c := NewClient()
	c.Apply(Frame{Pointers: []Pointer{{SessionID: 9}, {SessionID: 4}}})
	c.Apply(Frame{Tokens: []Token{{SessionID: 6}}})
	var ids []uint32
	for _, o := range c.Objects() {
		ids = append(ids, o.SessionID)
	}
	if fmt.Sprint(ids) != "[9 4 6]" {
		t.Errorf("ids = %v, want [9 4 6]", ids)
	}
}

func TestClientEnqueueDrain(t *testing.T) {
	c, l := newLoggedClient()

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(id uint32) {
			defer wg.Done()
			c.Enqueue(Frame{Pointers: []Pointer{{SessionID: id}}})
		}(uint32(i))
	}
	wg.Wait()

	if n := c.Drain(); n != 8 {
		t.Errorf("Drain = %d, want 8", n)
	}
	if len(c.Objects()) != 8 {
		t.Errorf("objects = %d, want 8", len(c.Objects()))
	}
	if n := c.Drain(); n != 0 {
		t.Errorf("second Drain = %d, want 0", n)
	}
	if got := len(l.take()); got != 16 {
		t.Errorf("events = %d, want 16 (8 adds, 8 refreshes)", got)
	}
}

func TestClientReset(t *testing.T) {
	c, l := newLoggedClient()
	c.Apply(Frame{Pointers: []Pointer{{SessionID: 1}}})
	l.take()
	c.Reset()
	if len(c.Objects()) != 0 {
		t.Errorf("objects = %d, want 0", len(c.Objects()))
	}
	if len(l.take()) != 0 {
		t.Error("Reset notified listeners")
	}
	c.Apply(Frame{Pointers: []Pointer{{SessionID: 1}}})
	assertEvents(t, l.take(), "add 1 ptr", "refresh 0")
}

func TestKindString(t *testing.T) {
	want := map[Kind]string{KindPointer: "ptr", KindToken: "tok", KindBounds: "bnd", KindSymbol: "sym", Kind(9): "unknown"}
	for k, s := range want {
		if k.String() != s {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), s)
		}
	}
}

func TestObjectMarkNewIgnoresUnknownKind(t *testing.T) {
	o := &Object{SessionID: 1, Pointer: &Pointer{}}
	o.MarkNew(Kind(9), KindPointer)
	if !o.ContainsNewPointer() {
		t.Error("pointer not marked new")
	}
}
