// Package tuio models the TUIO 2.0 entities a canvas renders and the client
// that turns per-frame component updates into add, update, remove and refresh
// notifications.
//
// Decoding OSC bundles and receiving them from the network is left to the
// caller: a receiver builds [Frame] values and hands them to [Client.Enqueue]
// (from any goroutine) or [Client.Apply] (from the loop goroutine).
package tuio

import "time"

// Point is a normalized 2D position or extent. Positions are in [0, 1] on
// both axes, origin top-left.
type Point struct {
	X, Y float64
}

// Time identifies a TUIO frame.
type Time struct {
	FrameID uint32
	At      time.Time
}

// Pointer is a touch, finger or pen contact (TUIO 2.0 /tuio2/ptr).
type Pointer struct {
	SessionID   uint32
	TypeUserID  uint32
	ComponentID uint32
	Position    Point
	Angle       float64
	Shear       float64
	Radius      float64
	Pressure    float64
}

// Token is a tagged physical object (TUIO 2.0 /tuio2/tok). CID is the
// classifier id of the tag; zero means the tag is not classified.
type Token struct {
	SessionID  uint32
	TypeUserID uint32
	CID        uint32
	Position   Point
	Angle      float64
}

// Bounds is an oriented bounding box around an untagged blob
// (TUIO 2.0 /tuio2/bnd).
type Bounds struct {
	SessionID uint32
	Position  Point
	Angle     float64
	Size      Point
	Area      float64
}

// Symbol carries decoded marker content attached to an object
// (TUIO 2.0 /tuio2/sym), e.g. the text of a QR code lying on the surface.
type Symbol struct {
	SessionID  uint32
	TypeUserID uint32
	CID        uint32
	Group      string
	Data       string
}

// Kind identifies one of the component kinds an Object can hold.
type Kind uint8

const (
	KindPointer Kind = iota // pointer component
	KindToken               // token component
	KindBounds              // bounds component
	KindSymbol              // symbol component
)

// String returns the TUIO message name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPointer:
		return "ptr"
	case KindToken:
		return "tok"
	case KindBounds:
		return "bnd"
	case KindSymbol:
		return "sym"
	default:
		return "unknown"
	}
}

// Object is the composite container the protocol reports per session id.
// A single object may hold several components at once (a token with its
// bounds and symbol, for instance). Component pointers are nil when absent.
type Object struct {
	SessionID uint32
	Pointer   *Pointer
	Token     *Token
	Bounds    *Bounds
	Symbol    *Symbol

	fresh [4]bool // components added in the frame being delivered
}

// ContainsPointer reports whether the object holds a pointer component.
func (o *Object) ContainsPointer() bool { return o.Pointer != nil }

// ContainsToken reports whether the object holds a token component.
func (o *Object) ContainsToken() bool { return o.Token != nil }

// ContainsBounds reports whether the object holds a bounds component.
func (o *Object) ContainsBounds() bool { return o.Bounds != nil }

// ContainsSymbol reports whether the object holds a symbol component.
func (o *Object) ContainsSymbol() bool { return o.Symbol != nil }

// ContainsNewPointer reports whether the pointer component first appeared in
// the frame currently being delivered.
func (o *Object) ContainsNewPointer() bool { return o.Pointer != nil && o.fresh[KindPointer] }

// ContainsNewToken reports whether the token component first appeared in the
// frame currently being delivered.
func (o *Object) ContainsNewToken() bool { return o.Token != nil && o.fresh[KindToken] }

// ContainsNewBounds reports whether the bounds component first appeared in
// the frame currently being delivered.
func (o *Object) ContainsNewBounds() bool { return o.Bounds != nil && o.fresh[KindBounds] }

// ContainsNewSymbol reports whether the symbol component first appeared in
// the frame currently being delivered.
func (o *Object) ContainsNewSymbol() bool { return o.Symbol != nil && o.fresh[KindSymbol] }

// MarkNew flags the given kinds as newly added. Clients set this while
// delivering a frame; it is exported so tests and alternative event sources
// can build objects by hand.
func (o *Object) MarkNew(kinds ...Kind) {
	for _, k := range kinds {
		if int(k) < len(o.fresh) {
			o.fresh[k] = true
		}
	}
}

func (o *Object) clearNew() {
	o.fresh = [4]bool{}
}

// Listener receives lifecycle notifications from a Client. All callbacks run
// on the goroutine that calls Client.Apply or Client.Drain.
type Listener interface {
	TuioAdd(obj *Object)
	TuioUpdate(obj *Object)
	TuioRemove(obj *Object)
	TuioRefresh(t Time)
}
