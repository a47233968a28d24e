package tuiocanvas

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/phanxgames/tuiocanvas/tuio"
)

// PointerVisual is the registry record of a live pointer.
type PointerVisual struct {
	SessionID uint32
	Pointer   tuio.Pointer
	Visual    *Visual
}

// TokenVisual is the registry record of a live token.
type TokenVisual struct {
	SessionID uint32
	Token     tuio.Token
	Visual    *Visual
	Created   time.Time
	// UUID correlates the token with an external record. uuid.Nil until
	// CorrelateToken is called.
	UUID uuid.UUID
}

// BlobVisual is the registry record of a live bounded blob. Symbol is nil
// when the blob carries no decoded marker.
type BlobVisual struct {
	SessionID uint32
	Bounds    tuio.Bounds
	Symbol    *tuio.Symbol
	Visual    *Visual
}

// SnapshotSource hands out immutable copies of live protocol components.
// *tuio.Client implements it.
type SnapshotSource interface {
	Pointer(id uint32) (tuio.Pointer, bool)
	Token(id uint32) (tuio.Token, bool)
	Bounds(id uint32) (tuio.Bounds, bool)
	Symbol(id uint32) (tuio.Symbol, bool)
}

// refresh replaces the snapshot with the source's current value. A missing
// component keeps the last snapshot.
func (v *PointerVisual) refresh(src SnapshotSource) {
	if src == nil {
		return
	}
	if p, ok := src.Pointer(v.SessionID); ok {
		v.Pointer = p
	}
}

func (v *TokenVisual) refresh(src SnapshotSource) {
	if src == nil {
		return
	}
	if t, ok := src.Token(v.SessionID); ok {
		v.Token = t
	}
}

func (v *BlobVisual) refresh(src SnapshotSource) {
	if src == nil {
		return
	}
	if b, ok := src.Bounds(v.SessionID); ok {
		v.Bounds = b
	}
	if s, ok := src.Symbol(v.SessionID); ok {
		v.Symbol = &s
	}
}

// orderedMap is a session-id keyed map that iterates in insertion order.
type orderedMap[V any] struct {
	items map[uint32]V
	order []uint32
}

func newOrderedMap[V any]() orderedMap[V] {
	return orderedMap[V]{items: make(map[uint32]V)}
}

func (m *orderedMap[V]) get(id uint32) (V, bool) {
	v, ok := m.items[id]
	return v, ok
}

func (m *orderedMap[V]) set(id uint32, v V) {
	if _, ok := m.items[id]; !ok {
		m.order = append(m.order, id)
	}
	m.items[id] = v
}

func (m *orderedMap[V]) delete(id uint32) bool {
	if _, ok := m.items[id]; !ok {
		return false
	}
	delete(m.items, id)
	if i := slices.Index(m.order, id); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	return true
}

func (m *orderedMap[V]) values() []V {
	out := make([]V, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out
}

func (m *orderedMap[V]) len() int { return len(m.order) }

// Registry maps session ids to visual records, one map per entity kind.
// A record's Visual is created once, on the first upsert of its id, and
// survives later upserts so animations never restart mid-session.
//
// Registry is not safe for concurrent use; it lives on the render loop.
type Registry struct {
	palette *Palette
	now     func() time.Time

	pointers orderedMap[*PointerVisual]
	tokens   orderedMap[*TokenVisual]
	blobs    orderedMap[*BlobVisual]
}

// NewRegistry creates an empty registry that colors new entities from
// palette. A nil palette uses DefaultPalette.
func NewRegistry(palette *Palette) *Registry {
	if palette == nil {
		palette = NewPalette(nil)
	}
	return &Registry{
		palette:  palette,
		now:      time.Now,
		pointers: newOrderedMap[*PointerVisual](),
		tokens:   newOrderedMap[*TokenVisual](),
		blobs:    newOrderedMap[*BlobVisual](),
	}
}

// Palette returns the color assigner shared by all three maps.
func (r *Registry) Palette() *Palette { return r.palette }

// UpsertPointer records a pointer. A new id gets a fresh Visual and the next
// palette color; a known id only has its snapshot replaced. Reports whether
// a record was created.
func (r *Registry) UpsertPointer(id uint32, p tuio.Pointer) (*PointerVisual, bool) {
	if v, ok := r.pointers.get(id); ok {
		v.Pointer = p
		return v, false
	}
	v := &PointerVisual{
		SessionID: id,
		Pointer:   p,
		Visual:    NewVisual(r.palette.NextColor(), true),
	}
	r.pointers.set(id, v)
	return v, true
}

// UpsertToken records a token. See UpsertPointer.
func (r *Registry) UpsertToken(id uint32, t tuio.Token) (*TokenVisual, bool) {
	if v, ok := r.tokens.get(id); ok {
		v.Token = t
		return v, false
	}
	v := &TokenVisual{
		SessionID: id,
		Token:     t,
		Visual:    NewVisual(r.palette.NextColor(), false),
		Created:   r.now(),
	}
	r.tokens.set(id, v)
	return v, true
}

// UpsertBlob records a bounded blob with its optional symbol. See
// UpsertPointer.
func (r *Registry) UpsertBlob(id uint32, b tuio.Bounds, sym *tuio.Symbol) (*BlobVisual, bool) {
	var symCopy *tuio.Symbol
	if sym != nil {
		s := *sym
		symCopy = &s
	}
	if v, ok := r.blobs.get(id); ok {
		v.Bounds = b
		if symCopy != nil {
			v.Symbol = symCopy
		}
		return v, false
	}
	v := &BlobVisual{
		SessionID: id,
		Bounds:    b,
		Symbol:    symCopy,
		Visual:    NewVisual(r.palette.NextColor(), false),
	}
	r.blobs.set(id, v)
	return v, true
}

// Remove forgets id in the map for kind. Removing an absent id is a no-op.
// Reports whether a record was removed.
func (r *Registry) Remove(id uint32, kind Kind) bool {
	switch kind {
	case KindPointer:
		return r.pointers.delete(id)
	case KindToken:
		return r.tokens.delete(id)
	case KindBlob:
		return r.blobs.delete(id)
	}
	return false
}

// ClearAll empties all three maps. The palette position is kept.
func (r *Registry) ClearAll() {
	r.pointers = newOrderedMap[*PointerVisual]()
	r.tokens = newOrderedMap[*TokenVisual]()
	r.blobs = newOrderedMap[*BlobVisual]()
}

// Has reports whether id is live in the map for kind.
func (r *Registry) Has(id uint32, kind Kind) bool {
	switch kind {
	case KindPointer:
		_, ok := r.pointers.get(id)
		return ok
	case KindToken:
		_, ok := r.tokens.get(id)
		return ok
	case KindBlob:
		_, ok := r.blobs.get(id)
		return ok
	}
	return false
}

// Len returns the number of live records of kind.
func (r *Registry) Len(kind Kind) int {
	switch kind {
	case KindPointer:
		return r.pointers.len()
	case KindToken:
		return r.tokens.len()
	case KindBlob:
		return r.blobs.len()
	}
	return 0
}

// Total returns the number of live records across all kinds.
func (r *Registry) Total() int {
	return r.pointers.len() + r.tokens.len() + r.blobs.len()
}

// Pointer returns the record for id.
func (r *Registry) Pointer(id uint32) (*PointerVisual, bool) { return r.pointers.get(id) }

// Token returns the record for id.
func (r *Registry) Token(id uint32) (*TokenVisual, bool) { return r.tokens.get(id) }

// Blob returns the record for id.
func (r *Registry) Blob(id uint32) (*BlobVisual, bool) { return r.blobs.get(id) }

// Pointers returns the live pointers in creation order.
func (r *Registry) Pointers() []*PointerVisual { return r.pointers.values() }

// Tokens returns the live tokens in creation order.
func (r *Registry) Tokens() []*TokenVisual { return r.tokens.values() }

// Blobs returns the live blobs in creation order.
func (r *Registry) Blobs() []*BlobVisual { return r.blobs.values() }

// CorrelateToken attaches an external uuid to a live token. Reports false if
// the token is not live.
func (r *Registry) CorrelateToken(id uint32, u uuid.UUID) bool {
	v, ok := r.tokens.get(id)
	if !ok {
		return false
	}
	v.UUID = u
	return true
}
