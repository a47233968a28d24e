package sim

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/phanxgames/tuiocanvas/tuio"
)

func TestGeneratorCounts(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGenerator(cfg)
	f := g.Next()

	if len(f.Pointers) != cfg.Pointers || len(f.Tokens) != cfg.Tokens || len(f.Bounds) != cfg.Blobs {
		t.Errorf("counts = %d/%d/%d, want %d/%d/%d",
			len(f.Pointers), len(f.Tokens), len(f.Bounds), cfg.Pointers, cfg.Tokens, cfg.Blobs)
	}
	if len(f.Alive) != cfg.Pointers+cfg.Tokens+cfg.Blobs {
		t.Errorf("alive = %d, want %d", len(f.Alive), cfg.Pointers+cfg.Tokens+cfg.Blobs)
	}
	if f.Dim != tuio.PackDim(1920, 1080) {
		t.Errorf("Dim = %#x, want %#x", f.Dim, tuio.PackDim(1920, 1080))
	}
	if f.Source != "sim" || f.Time.FrameID != 1 {
		t.Errorf("header = %q %d, want sim 1", f.Source, f.Time.FrameID)
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(DefaultConfig())
	b := NewGenerator(DefaultConfig())
	for i := 0; i < 50; i++ {
		fa, fb := a.Next(), b.Next()
		for j := range fa.Pointers {
			if fa.Pointers[j] != fb.Pointers[j] {
				t.Fatalf("frame %d pointer %d differs: %+v vs %+v", i, j, fa.Pointers[j], fb.Pointers[j])
			}
		}
		for j := range fa.Tokens {
			if fa.Tokens[j] != fb.Tokens[j] {
				t.Fatalf("frame %d token %d differs", i, j)
			}
		}
	}

	cfg := DefaultConfig()
	cfg.Seed = 2
	c := NewGenerator(cfg)
	if c.Next().Pointers[0] == NewGenerator(DefaultConfig()).Next().Pointers[0] {
		t.Error("different seeds produced the same first pointer")
	}
}

func TestGeneratorPositionsInRange(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	for i := 0; i < 300; i++ {
		f := g.Next()
		for _, b := range f.Bounds {
			if b.Position.X < 0 || b.Position.X > 1 || b.Position.Y < 0 || b.Position.Y > 1 {
				t.Fatalf("frame %d blob position %+v outside [0, 1]", i, b.Position)
			}
			if b.Size.X <= 0 || b.Size.Y <= 0 {
				t.Fatalf("frame %d blob size %+v not positive", i, b.Size)
			}
		}
		for _, tk := range f.Tokens {
			if tk.Angle < 0 || tk.Angle >= 2*math.Pi {
				t.Fatalf("frame %d token angle %f outside [0, 2π)", i, tk.Angle)
			}
		}
	}
}

func TestGeneratorRespawnsWithNewIDs(t *testing.T) {
	g := NewGenerator(Config{Seed: 7, Pointers: 2, MinLife: 3, MaxLife: 3})
	first := g.Next()
	g.Next()
	third := g.Next()

	seen := map[uint32]bool{}
	for _, id := range first.Alive {
		seen[id] = true
	}
	for _, id := range third.Alive {
		if seen[id] {
			t.Errorf("id %d survived past its lifetime", id)
		}
	}
	if len(third.Alive) != 2 {
		t.Errorf("alive = %v, want 2 replacements", third.Alive)
	}
}

func TestGeneratorDrivesClient(t *testing.T) {
	client := tuio.NewClient()
	g := NewGenerator(Config{Seed: 3, Pointers: 2, Tokens: 1, MinLife: 5, MaxLife: 10})
	for i := 0; i < 100; i++ {
		client.Apply(g.Next())
		if n := len(client.Objects()); n != 3 {
			t.Fatalf("frame %d objects = %d, want 3", i, n)
		}
	}
}

func TestNewGeneratorDefaults(t *testing.T) {
	g := NewGenerator(Config{MaxLife: -1})
	if g.cfg.MinLife != 1 || g.cfg.MaxLife != 1 {
		t.Errorf("life = %d..%d, want 1..1", g.cfg.MinLife, g.cfg.MaxLife)
	}
	if f := g.Next(); len(f.Alive) != 0 || f.Alive == nil {
		t.Errorf("Alive = %#v, want empty non-nil", f.Alive)
	}
}

type chanSink struct {
	mu     sync.Mutex
	frames []tuio.Frame
	got    chan struct{}
}

func (s *chanSink) Enqueue(f tuio.Frame) {
	s.mu.Lock()
	s.frames = append(s.frames, f)
	s.mu.Unlock()
	select {
	case s.got <- struct{}{}:
	default:
	}
}

func TestGeneratorStart(t *testing.T) {
	sink := &chanSink{got: make(chan struct{}, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	NewGenerator(DefaultConfig()).Start(ctx, sink, time.Millisecond)

	for i := 0; i < 3; i++ {
		select {
		case <-sink.got:
		case <-time.After(2 * time.Second):
			t.Fatal("no frame received")
		}
	}
	cancel()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.frames) < 3 {
		t.Errorf("frames = %d, want at least 3", len(sink.frames))
	}
	for i := 1; i < len(sink.frames); i++ {
		if sink.frames[i].Time.FrameID <= sink.frames[i-1].Time.FrameID {
			t.Fatalf("frame ids not increasing: %d then %d", sink.frames[i-1].Time.FrameID, sink.frames[i].Time.FrameID)
		}
	}
}
