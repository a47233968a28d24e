package tuiocanvas

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshots queues labeled captures of the rendered frame. Labels queued
// during a frame are written by the host at the end of that frame's draw,
// each as <dir>/<timestamp>_<label>_<seq>.png. seq counts every capture the
// queue has written, so equal labels within one second never collide.
type Screenshots struct {
	Dir string

	queue []string
	seq   int
	now   func() time.Time
	enc   png.Encoder
}

// NewScreenshots creates a queue writing into dir. An empty dir means
// "screenshots".
func NewScreenshots(dir string) *Screenshots {
	if dir == "" {
		dir = "screenshots"
	}
	return &Screenshots{
		Dir: dir,
		now: time.Now,
		enc: png.Encoder{CompressionLevel: png.BestSpeed},
	}
}

// Queue requests a capture of the current frame.
func (s *Screenshots) Queue(label string) {
	s.queue = append(s.queue, label)
}

// Pending returns the number of queued captures.
func (s *Screenshots) Pending() int { return len(s.queue) }

// Flush writes img once per queued label and empties the queue. It returns
// the paths written. Failures are logged and skipped.
func (s *Screenshots) Flush(img image.Image) []string {
	if len(s.queue) == 0 || img == nil {
		return nil
	}
	labels := s.queue
	s.queue = nil

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		Logger().Warn("screenshot: mkdir failed", "dir", s.Dir, "err", err)
		return nil
	}

	stamp := s.now().Format("20060102_150405")
	written := make([]string, 0, len(labels))
	for _, label := range labels {
		s.seq++
		path := filepath.Join(s.Dir, s.fileName(stamp, label))
		if err := s.save(path, img); err != nil {
			Logger().Warn("screenshot failed", "path", path, "err", err)
			continue
		}
		Logger().Info("screenshot written", "path", path)
		written = append(written, path)
	}
	return written
}

// FlushEbiten reads back screen and flushes the queue with it. The read back
// only happens when something is queued.
func (s *Screenshots) FlushEbiten(screen *ebiten.Image) []string {
	if len(s.queue) == 0 || screen == nil {
		return nil
	}
	// ReadPixels yields premultiplied RGBA, which is exactly image.RGBA's
	// layout; the PNG encoder converts it to straight alpha.
	img := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(img.Pix)
	return s.Flush(img)
}

// fileName builds the file name for the current sequence number. Anything
// outside [A-Za-z0-9.-] in label becomes an underscore.
func (s *Screenshots) fileName(stamp, label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		label = "unlabeled"
	}
	label = strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			return r
		}
		return '_'
	}, label)
	return fmt.Sprintf("%s_%s_%03d.png", stamp, label, s.seq)
}

func (s *Screenshots) save(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tuiocanvas: screenshot %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("tuiocanvas: screenshot %s: %w", path, cerr)
		}
	}()
	if err := s.enc.Encode(f, img); err != nil {
		return fmt.Errorf("tuiocanvas: screenshot %s: %w", path, err)
	}
	return nil
}
