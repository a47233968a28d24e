package tuiocanvas

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
)

// DefaultLabelSize is the label font size in logical units.
const DefaultLabelSize = 24

// LabelFont is the TrueType font used for entity labels. It keeps the raw
// font data so each surface can parse it with its own text engine.
type LabelFont struct {
	data   []byte
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// LoadLabelFont parses TrueType/OpenType data for label rendering.
func LoadLabelFont(ttfData []byte) (*LabelFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("tuiocanvas: failed to parse label font: %w", err)
	}
	return &LabelFont{
		data:   ttfData,
		source: source,
		faces:  make(map[float64]*text.GoTextFace),
	}, nil
}

// DefaultLabelFont loads Go Bold, the bundled label font.
func DefaultLabelFont() (*LabelFont, error) {
	return LoadLabelFont(gobold.TTF)
}

// Data returns the raw font bytes.
func (f *LabelFont) Data() []byte { return f.data }

// ebitenFace returns a cached face for the given size.
func (f *LabelFont) ebitenFace(size float64) *text.GoTextFace {
	if size <= 0 {
		size = DefaultLabelSize
	}
	face, ok := f.faces[size]
	if !ok {
		face = &text.GoTextFace{Source: f.source, Size: size}
		f.faces[size] = face
	}
	return face
}
