// Package sim generates synthetic TUIO 2.0 sessions: fingers tracing
// orbits, tagged tokens drifting and spinning, and labelled blobs. Sessions
// are deterministic for a given seed so demos and snapshots are repeatable.
package sim

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/phanxgames/tuiocanvas/tuio"
)

// Config controls how many entities of each kind are kept alive.
type Config struct {
	Seed     uint64
	Pointers int
	Tokens   int
	Blobs    int
	// Sensor is the logical sensor size reported in every frame's Dim.
	Sensor [2]uint16
	// MinLife and MaxLife bound an entity's lifetime in frames. When it
	// expires the entity is removed and a new one with a fresh session id
	// takes its place.
	MinLife, MaxLife int
	Source           string
}

// DefaultConfig returns a small mixed session on a 16:9 sensor.
func DefaultConfig() Config {
	return Config{
		Seed:     1,
		Pointers: 3,
		Tokens:   2,
		Blobs:    1,
		Sensor:   [2]uint16{1920, 1080},
		MinLife:  180,
		MaxLife:  600,
		Source:   "sim",
	}
}

type pattern uint8

const (
	patternOrbit pattern = iota // circles a fixed center
	patternDrift                // bounces off the sensor edges
	patternSpin                 // stays put and rotates
)

type entity struct {
	kind    tuio.Kind
	id      uint32
	cid     uint32
	symbol  string
	pattern pattern

	cx, cy, orbit, phase, speed float64
	x, y, vx, vy                float64
	angle, spin                 float64
	w, h                        float64

	life int
}

var symbols = []string{"hello", "tuio", "canvas", "42", "marker"}

// Generator produces one frame per Next call.
type Generator struct {
	cfg      Config
	rng      *rand.Rand
	frame    uint32
	nextID   uint32
	entities []*entity
}

// NewGenerator creates a generator. Zero counts in cfg are kept as zero;
// start from DefaultConfig for a populated session.
func NewGenerator(cfg Config) *Generator {
	if cfg.MinLife <= 0 {
		cfg.MinLife = 1
	}
	if cfg.MaxLife < cfg.MinLife {
		cfg.MaxLife = cfg.MinLife
	}
	if cfg.Source == "" {
		cfg.Source = "sim"
	}
	g := &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	for range cfg.Pointers {
		g.entities = append(g.entities, g.spawn(tuio.KindPointer))
	}
	for range cfg.Tokens {
		g.entities = append(g.entities, g.spawn(tuio.KindToken))
	}
	for range cfg.Blobs {
		g.entities = append(g.entities, g.spawn(tuio.KindBounds))
	}
	return g
}

func (g *Generator) spawn(kind tuio.Kind) *entity {
	g.nextID++
	e := &entity{
		kind:  kind,
		id:    g.nextID,
		life:  g.cfg.MinLife + g.rng.IntN(g.cfg.MaxLife-g.cfg.MinLife+1),
		cx:    0.2 + 0.6*g.rng.Float64(),
		cy:    0.2 + 0.6*g.rng.Float64(),
		orbit: 0.05 + 0.15*g.rng.Float64(),
		phase: 2 * math.Pi * g.rng.Float64(),
		speed: 0.01 + 0.03*g.rng.Float64(),
		spin:  (g.rng.Float64() - 0.5) * 0.1,
	}
	e.x, e.y = e.cx, e.cy
	e.vx = (g.rng.Float64() - 0.5) * 0.01
	e.vy = (g.rng.Float64() - 0.5) * 0.01

	switch kind {
	case tuio.KindPointer:
		e.pattern = patternOrbit
	case tuio.KindToken:
		e.pattern = pattern(g.rng.IntN(3))
		// A quarter of the tokens carry no classifier.
		if g.rng.IntN(4) > 0 {
			e.cid = uint32(1 + g.rng.IntN(99))
		}
	case tuio.KindBounds:
		e.pattern = patternDrift
		e.w = 0.05 + 0.1*g.rng.Float64()
		e.h = 0.05 + 0.1*g.rng.Float64()
		if g.rng.IntN(3) > 0 {
			e.symbol = symbols[g.rng.IntN(len(symbols))]
		}
	}
	e.advance()
	return e
}

func (e *entity) advance() {
	switch e.pattern {
	case patternOrbit:
		e.phase += e.speed
		e.x = e.cx + e.orbit*math.Cos(e.phase)
		e.y = e.cy + e.orbit*math.Sin(e.phase)
	case patternDrift:
		e.x += e.vx
		e.y += e.vy
		if e.x < 0 || e.x > 1 {
			e.vx = -e.vx
			e.x = math.Max(0, math.Min(1, e.x))
		}
		if e.y < 0 || e.y > 1 {
			e.vy = -e.vy
			e.y = math.Max(0, math.Min(1, e.y))
		}
	}
	e.angle = math.Mod(e.angle+e.spin+2*math.Pi, 2*math.Pi)
}

// Next advances every entity by one frame and returns the resulting frame.
// Expired entities are left out of the alive list and replaced.
func (g *Generator) Next() tuio.Frame {
	g.frame++
	f := tuio.Frame{
		Time:   tuio.Time{FrameID: g.frame, At: time.Now()},
		Dim:    tuio.PackDim(g.cfg.Sensor[0], g.cfg.Sensor[1]),
		Source: g.cfg.Source,
		Alive:  make([]uint32, 0, len(g.entities)),
	}

	for i, e := range g.entities {
		e.life--
		if e.life <= 0 {
			e = g.spawn(e.kind)
			g.entities[i] = e
		} else {
			e.advance()
		}
		f.Alive = append(f.Alive, e.id)

		pos := tuio.Point{X: e.x, Y: e.y}
		switch e.kind {
		case tuio.KindPointer:
			f.Pointers = append(f.Pointers, tuio.Pointer{SessionID: e.id, Position: pos, Pressure: 1})
		case tuio.KindToken:
			f.Tokens = append(f.Tokens, tuio.Token{SessionID: e.id, CID: e.cid, Position: pos, Angle: e.angle})
		case tuio.KindBounds:
			f.Bounds = append(f.Bounds, tuio.Bounds{
				SessionID: e.id,
				Position:  pos,
				Angle:     e.angle,
				Size:      tuio.Point{X: e.w, Y: e.h},
				Area:      e.w * e.h,
			})
			if e.symbol != "" {
				f.Symbols = append(f.Symbols, tuio.Symbol{SessionID: e.id, Group: "text/plain", Data: e.symbol})
			}
		}
	}
	return f
}

// Sink receives generated frames. *tuio.Client satisfies it through
// Enqueue, which is safe to call from the generator goroutine.
type Sink interface {
	Enqueue(f tuio.Frame)
}

// Start emits a frame to sink every interval until ctx is cancelled. It
// returns immediately; frames are produced on a separate goroutine.
func (g *Generator) Start(ctx context.Context, sink Sink, interval time.Duration) {
	go g.run(ctx, sink, interval)
}

func (g *Generator) run(ctx context.Context, sink Sink, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sink.Enqueue(g.Next())
		}
	}
}
