package tuiocanvas

import (
	"time"

	"github.com/google/uuid"

	"github.com/phanxgames/tuiocanvas/tuio"
)

// Source is the protocol collaborator a Canvas listens to. *tuio.Client
// implements it.
type Source interface {
	SnapshotSource
	Dim() uint32
	AddListener(l tuio.Listener)
	RemoveListener(l tuio.Listener)
}

// Options configures a Canvas. Zero fields take the defaults noted. The
// fill colors are pointers so transparent black stays expressible.
type Options struct {
	DrawingScale float64 // DefaultDrawingScale
	FlipBounds   bool    // swap width and height when decoding Dim
	Website      string  // QR content for the calibration backdrop; empty draws no code
	Palette      []Color // DefaultPalette
	Background   *Color  // #1d1d1d
	Backdrop     *Color  // opaque black
	LabelSize    float64 // DefaultLabelSize
	QRSize       float64 // DefaultQRSize, logical units
	Debug        bool    // log per-frame timing at debug level
}

func (o Options) withDefaults() Options {
	if o.DrawingScale <= 0 {
		o.DrawingScale = DefaultDrawingScale
	}
	o.Background = colorOr(o.Background, MustParseColor("#1d1d1d"))
	o.Backdrop = colorOr(o.Backdrop, ColorBlack)
	if o.LabelSize <= 0 {
		o.LabelSize = DefaultLabelSize
	}
	if o.QRSize <= 0 {
		o.QRSize = DefaultQRSize
	}
	return o
}

// colorOr returns a private copy of c, or of def when c is nil.
func colorOr(c *Color, def Color) *Color {
	if c != nil {
		def = *c
	}
	return &def
}

// Canvas renders the live entities of a TUIO source onto a Surface.
//
// It is a tuio.Listener: add notifications create registry records, remove
// notifications delete them, refresh notifications update the logical
// sensor size. Drawing runs from a render loop driven by a Scheduler.
// Everything runs on one goroutine; Canvas is not safe for concurrent use.
type Canvas struct {
	opts     Options
	source   Source
	registry *Registry
	surface  Surface
	loop     renderLoop
	qr       qrCache

	canvasSize Size
	sensor     Size
	lastProj   Projection
	stats      frameStats
}

// NewCanvas creates a canvas listening to source and scheduling frames on
// sched. A nil sched gets a private TickQueue, reachable via Scheduler.
func NewCanvas(source Source, sched Scheduler, opts Options) *Canvas {
	if sched == nil {
		sched = NewTickQueue()
	}
	opts = opts.withDefaults()
	c := &Canvas{
		opts:     opts,
		source:   source,
		registry: NewRegistry(NewPalette(opts.Palette)),
		sensor:   DefaultSensorSize,
	}
	c.loop = renderLoop{sched: sched, draw: c.RenderFrame}
	if source != nil {
		source.AddListener(c)
	}
	return c
}

// Options returns the effective options.
func (c *Canvas) Options() Options { return c.opts }

// Registry returns the entity registry.
func (c *Canvas) Registry() *Registry { return c.registry }

// Scheduler returns the scheduler driving the render loop.
func (c *Canvas) Scheduler() Scheduler { return c.loop.sched }

// State returns the render loop state.
func (c *Canvas) State() LoopState { return c.loop.state }

// FramesDrawn returns how many frames the render loop has drawn.
func (c *Canvas) FramesDrawn() uint64 { return c.loop.frames }

// SensorSize returns the current logical sensor size.
func (c *Canvas) SensorSize() Size { return c.sensor }

// CanvasSize returns the current canvas size in pixels.
func (c *Canvas) CanvasSize() Size { return c.canvasSize }

// Projection returns the projection computed by the last drawn frame.
func (c *Canvas) Projection() Projection { return c.lastProj }

// Mount acquires a surface and sizes the canvas to it.
func (c *Canvas) Mount(s Surface) {
	c.surface = s
	c.canvasSize = s.Size()
	Logger().Info("canvas mounted", "width", c.canvasSize.W, "height", c.canvasSize.H)
}

// Mounted reports whether a surface is mounted.
func (c *Canvas) Mounted() bool { return c.surface != nil }

// Resize sets the canvas pixel size. Ignored while no surface is mounted.
func (c *Canvas) Resize(width, height int) {
	if c.surface == nil {
		return
	}
	c.canvasSize = Size{W: float64(width), H: float64(height)}
	Logger().Debug("canvas resized", "width", width, "height", height)
}

// Start clears every registry and starts the render loop.
func (c *Canvas) Start() {
	c.registry.ClearAll()
	c.loop.start()
	Logger().Info("render loop started")
}

// Stop asks the render loop to stop. The next scheduled tick observes the
// request and ends the loop without drawing.
func (c *Canvas) Stop() {
	c.loop.stop()
	Logger().Info("render loop stop requested")
}

// Destroy stops the loop, cancels any queued tick, stops listening to the
// source and releases the surface.
func (c *Canvas) Destroy() {
	c.loop.cancel()
	if c.source != nil {
		c.source.RemoveListener(c)
	}
	c.surface = nil
}

// CorrelateToken attaches an external uuid to a live token.
func (c *Canvas) CorrelateToken(sessionID uint32, u uuid.UUID) bool {
	return c.registry.CorrelateToken(sessionID, u)
}

// TuioAdd registers every newly added component of obj. One notification
// can populate several registries.
func (c *Canvas) TuioAdd(obj *tuio.Object) {
	if obj == nil {
		return
	}
	if obj.ContainsNewPointer() {
		c.addPointer(obj.Pointer)
	}
	if obj.ContainsNewToken() {
		c.addToken(obj.Token)
	}
	if obj.ContainsNewBounds() {
		c.addBlob(obj.Bounds, obj.Symbol)
	}
}

// TuioUpdate is a no-op: positions are re-read from the source each frame.
func (c *Canvas) TuioUpdate(*tuio.Object) {}

// TuioRemove forgets obj's session id in every registry it is a member of.
func (c *Canvas) TuioRemove(obj *tuio.Object) {
	if obj == nil {
		return
	}
	if obj.ContainsPointer() {
		c.registry.Remove(obj.SessionID, KindPointer)
	}
	if obj.ContainsToken() {
		c.registry.Remove(obj.SessionID, KindToken)
	}
	if obj.ContainsBounds() {
		c.registry.Remove(obj.SessionID, KindBlob)
	}
	Logger().Debug("entity removed", "session", obj.SessionID)
}

// TuioRefresh decodes the source's packed sensor dimension. A zero
// dimension keeps the current sensor size.
func (c *Canvas) TuioRefresh(tuio.Time) {
	if c.source == nil {
		return
	}
	dim := c.source.Dim()
	if dim == 0 {
		return
	}
	size := UnpackDim(dim, c.opts.FlipBounds)
	if size != c.sensor {
		Logger().Info("sensor size changed", "width", size.W, "height", size.H)
	}
	c.sensor = size
}

func (c *Canvas) addPointer(p *tuio.Pointer) {
	if p == nil {
		return
	}
	if _, created := c.registry.UpsertPointer(p.SessionID, *p); created {
		Logger().Debug("pointer added", "session", p.SessionID)
	}
}

func (c *Canvas) addToken(t *tuio.Token) {
	if t == nil {
		return
	}
	if _, created := c.registry.UpsertToken(t.SessionID, *t); created {
		Logger().Debug("token added", "session", t.SessionID, "cid", t.CID)
	}
}

func (c *Canvas) addBlob(b *tuio.Bounds, sym *tuio.Symbol) {
	if b == nil {
		return
	}
	if _, created := c.registry.UpsertBlob(b.SessionID, *b, sym); created {
		Logger().Debug("blob added", "session", b.SessionID)
	}
}

// RenderFrame draws one frame: the backdrop, then every pointer, token and
// blob in that order. The render loop calls it once per tick; headless
// callers may call it directly. A no-op without a mounted surface.
func (c *Canvas) RenderFrame() {
	if c.surface == nil {
		return
	}
	var t0 time.Time
	if c.opts.Debug {
		t0 = time.Now()
	}

	proj := c.prepare()
	c.lastProj = proj

	if c.opts.Debug {
		c.stats.prepareTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, p := range c.registry.Pointers() {
		c.drawPointer(p, proj)
	}
	for _, t := range c.registry.Tokens() {
		c.drawToken(t, proj)
	}
	for _, b := range c.registry.Blobs() {
		c.drawBlob(b, proj)
	}

	if c.opts.Debug {
		c.stats.entityTime = time.Since(t0)
		c.stats.pointers = c.registry.Len(KindPointer)
		c.stats.tokens = c.registry.Len(KindToken)
		c.stats.blobs = c.registry.Len(KindBlob)
		c.logStats()
	}
}
