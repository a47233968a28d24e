package tuio

import (
	"slices"
	"sync"
)

// Frame is one decoded TUIO 2.0 bundle: the components that changed, the
// session ids still alive afterwards, and the frame header fields.
type Frame struct {
	Time Time
	// Dim is the packed sensor dimension from the frame header
	// (width in the low 16 bits, height in the high 16 bits). Zero leaves the
	// client's current value unchanged.
	Dim    uint32
	Source string

	Pointers []Pointer
	Tokens   []Token
	Bounds   []Bounds
	Symbols  []Symbol

	// Alive lists every session id alive after this frame. Objects the client
	// knows about that are missing from Alive are removed. A nil Alive means
	// the bundle carried no alive message and nothing is removed.
	Alive []uint32
}

// Client reconciles frames into a set of live objects and notifies listeners.
//
// Apply and Drain must be called from a single goroutine (the render loop).
// Enqueue may be called from any goroutine, typically a network receiver.
type Client struct {
	listeners []Listener
	objects   map[uint32]*Object
	order     []uint32
	dim       uint32
	source    string

	mu      sync.Mutex
	pending []Frame
}

// NewClient creates a client with no objects and no listeners.
func NewClient() *Client {
	return &Client{objects: make(map[uint32]*Object)}
}

// AddListener registers l for lifecycle notifications. Adding the same
// listener twice has no effect.
func (c *Client) AddListener(l Listener) {
	if slices.Contains(c.listeners, l) {
		return
	}
	c.listeners = append(c.listeners, l)
}

// RemoveListener unregisters l.
func (c *Client) RemoveListener(l Listener) {
	c.listeners = slices.DeleteFunc(c.listeners, func(x Listener) bool { return x == l })
}

// Dim returns the last non-zero packed sensor dimension, or 0 if none was
// received yet.
func (c *Client) Dim() uint32 { return c.dim }

// Source returns the source name of the last frame.
func (c *Client) Source() string { return c.source }

// Objects returns the live objects in the order they first appeared.
func (c *Client) Objects() []*Object {
	out := make([]*Object, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.objects[id])
	}
	return out
}

// Pointer returns a copy of the live pointer component for the session id.
func (c *Client) Pointer(id uint32) (Pointer, bool) {
	if o := c.objects[id]; o != nil && o.Pointer != nil {
		return *o.Pointer, true
	}
	return Pointer{}, false
}

// Token returns a copy of the live token component for the session id.
func (c *Client) Token(id uint32) (Token, bool) {
	if o := c.objects[id]; o != nil && o.Token != nil {
		return *o.Token, true
	}
	return Token{}, false
}

// Bounds returns a copy of the live bounds component for the session id.
func (c *Client) Bounds(id uint32) (Bounds, bool) {
	if o := c.objects[id]; o != nil && o.Bounds != nil {
		return *o.Bounds, true
	}
	return Bounds{}, false
}

// Symbol returns a copy of the live symbol component for the session id.
func (c *Client) Symbol(id uint32) (Symbol, bool) {
	if o := c.objects[id]; o != nil && o.Symbol != nil {
		return *o.Symbol, true
	}
	return Symbol{}, false
}

// Enqueue queues a frame for the next Drain. Safe for concurrent use.
func (c *Client) Enqueue(f Frame) {
	c.mu.Lock()
	c.pending = append(c.pending, f)
	c.mu.Unlock()
}

// Drain applies every queued frame in arrival order and returns how many
// were applied.
func (c *Client) Drain() int {
	c.mu.Lock()
	frames := c.pending
	c.pending = nil
	c.mu.Unlock()

	for i := range frames {
		c.Apply(frames[i])
	}
	return len(frames)
}

// Apply reconciles a frame against the live objects and notifies listeners:
// TuioAdd for objects that gained a component, TuioUpdate for objects whose
// components changed, TuioRemove for objects missing from the alive list and
// finally TuioRefresh.
func (c *Client) Apply(f Frame) {
	var added, updated []*Object
	touched := make(map[uint32]bool)

	touch := func(id uint32) *Object {
		o := c.objects[id]
		if o == nil {
			o = &Object{SessionID: id}
			c.objects[id] = o
			c.order = append(c.order, id)
		}
		touched[id] = true
		return o
	}

	for i := range f.Pointers {
		p := f.Pointers[i]
		o := touch(p.SessionID)
		if o.Pointer == nil {
			o.Pointer = &Pointer{}
			o.MarkNew(KindPointer)
		}
		*o.Pointer = p
	}
	for i := range f.Tokens {
		t := f.Tokens[i]
		o := touch(t.SessionID)
		if o.Token == nil {
			o.Token = &Token{}
			o.MarkNew(KindToken)
		}
		*o.Token = t
	}
	for i := range f.Bounds {
		b := f.Bounds[i]
		o := touch(b.SessionID)
		if o.Bounds == nil {
			o.Bounds = &Bounds{}
			o.MarkNew(KindBounds)
		}
		*o.Bounds = b
	}
	for i := range f.Symbols {
		s := f.Symbols[i]
		o := touch(s.SessionID)
		if o.Symbol == nil {
			o.Symbol = &Symbol{}
			o.MarkNew(KindSymbol)
		}
		*o.Symbol = s
	}

	for _, id := range c.order {
		if !touched[id] {
			continue
		}
		o := c.objects[id]
		if o.fresh != [4]bool{} {
			added = append(added, o)
		} else {
			updated = append(updated, o)
		}
	}

	var removed []*Object
	if f.Alive != nil {
		alive := make(map[uint32]bool, len(f.Alive))
		for _, id := range f.Alive {
			alive[id] = true
		}
		kept := c.order[:0]
		for _, id := range c.order {
			if alive[id] {
				kept = append(kept, id)
				continue
			}
			removed = append(removed, c.objects[id])
			delete(c.objects, id)
		}
		c.order = kept
	}

	if f.Dim != 0 {
		c.dim = f.Dim
	}
	c.source = f.Source

	for _, o := range added {
		for _, l := range c.listeners {
			l.TuioAdd(o)
		}
	}
	for _, o := range updated {
		for _, l := range c.listeners {
			l.TuioUpdate(o)
		}
	}
	for _, o := range removed {
		for _, l := range c.listeners {
			l.TuioRemove(o)
		}
	}
	for _, o := range added {
		o.clearNew()
	}
	for _, l := range c.listeners {
		l.TuioRefresh(f.Time)
	}
}

// Reset forgets every live object without notifying listeners. Used when a
// source reconnects and its session ids start over.
func (c *Client) Reset() {
	c.objects = make(map[uint32]*Object)
	c.order = nil
}

// PackDim packs a sensor width and height into the TUIO 2.0 dimension field.
func PackDim(width, height uint16) uint32 {
	return uint32(height)<<16 | uint32(width)
}
