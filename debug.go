package tuiocanvas

import "time"

// frameStats holds per-frame timing and entity counts.
// Only populated when Options.Debug is true.
type frameStats struct {
	prepareTime time.Duration
	entityTime  time.Duration
	pointers    int
	tokens      int
	blobs       int
}

// logStats logs the last frame's timing at debug level.
func (c *Canvas) logStats() {
	if !c.opts.Debug {
		return
	}
	s := c.stats
	Logger().Debug("frame",
		"prepare", s.prepareTime,
		"entities", s.entityTime,
		"total", s.prepareTime+s.entityTime,
		"pointers", s.pointers,
		"tokens", s.tokens,
		"blobs", s.blobs,
		"frame", c.loop.frames,
	)
}
