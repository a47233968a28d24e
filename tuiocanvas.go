package tuiocanvas

import (
	"errors"
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication happens in RGBA, so a Color can be handed to anything
// that accepts a color.Color.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is opaque black, the calibration backdrop fill.
var ColorBlack = Color{0, 0, 0, 1}

// RGBA implements color.Color with alpha-premultiplied 16-bit channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	a16 := clamp01(c.A) * 0xffff
	return uint32(clamp01(c.R) * a16),
		uint32(clamp01(c.G) * a16),
		uint32(clamp01(c.B) * a16),
		uint32(a16)
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGB255 returns the color channels scaled to 0..255.
func (c Color) RGB255() (r, g, b uint8) {
	return uint8(math.Round(clamp01(c.R) * 255)),
		uint8(math.Round(clamp01(c.G) * 255)),
		uint8(math.Round(clamp01(c.B) * 255))
}

// String formats the color the way CSS does, e.g. "rgba(145,210,85,0.5)".
func (c Color) String() string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", r, g, b, clamp01(c.A))
}

// ErrInvalidColor is returned by ParseColor for malformed input.
var ErrInvalidColor = errors.New("tuiocanvas: invalid color")

// ParseColor parses a "#rrggbb" or "#rgb" hex string into an opaque Color.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(expandShortHex(hex))
	if err != nil {
		return Color{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, hex, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// MustParseColor is like ParseColor but panics on error. Intended for
// package-level palette literals.
func MustParseColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func expandShortHex(s string) string {
	if len(s) == 4 && s[0] == '#' {
		return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair. Used for both the logical sensor size and the
// canvas pixel size.
type Size struct {
	W, H float64
}

// Valid reports whether both components are strictly positive.
func (s Size) Valid() bool {
	return s.W > 0 && s.H > 0
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Kind distinguishes the three entity registries.
type Kind uint8

const (
	KindPointer Kind = iota // touch / pointer contacts
	KindToken               // tagged objects
	KindBlob                // untagged bounded blobs
)

// String returns a lower-case name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPointer:
		return "pointer"
	case KindToken:
		return "token"
	case KindBlob:
		return "blob"
	default:
		return "unknown"
	}
}

// TextAlign controls horizontal text alignment relative to the draw origin.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // text starts at the origin (default)
	TextAlignCenter                  // text is centered on the origin
	TextAlignRight                   // text ends at the origin
)

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }
