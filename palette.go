package tuiocanvas

// DefaultPalette is the color cycle assigned to new entities.
var DefaultPalette = []Color{
	MustParseColor("#91d255"),
	MustParseColor("#55c8b4"),
	MustParseColor("#2896af"),
	MustParseColor("#73d2ff"),
	MustParseColor("#ffa541"),
	MustParseColor("#eb4b50"),
	MustParseColor("#f57d7d"),
	MustParseColor("#e1afdc"),
	MustParseColor("#d2b4a0"),
	MustParseColor("#d7af69"),
}

// Palette hands out colors round-robin. One Palette is shared by all three
// registries so creation order, not entity kind, decides the color.
type Palette struct {
	colors []Color
	next   int
}

// NewPalette creates an assigner over colors. An empty list falls back to
// DefaultPalette. The slice is copied.
func NewPalette(colors []Color) *Palette {
	if len(colors) == 0 {
		colors = DefaultPalette
	}
	return &Palette{colors: append([]Color(nil), colors...)}
}

// NextColor returns the next color in the cycle.
func (p *Palette) NextColor() Color {
	c := p.colors[p.next]
	p.next = (p.next + 1) % len(p.colors)
	return c
}

// Len returns the number of colors in the cycle.
func (p *Palette) Len() int { return len(p.colors) }
