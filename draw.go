package tuiocanvas

import (
	"math"
	"strconv"
)

const (
	// arcSweep is the angular extent of the pointer and token glyph.
	arcSweep = 315.0
	// tokenLabelBox is the square the token labels are laid out around.
	tokenLabelBox = 441.0
	// labelGap separates a label from the glyph edge.
	labelGap = 20.0
	// blobCornerInset is subtracted from the sampled radius to get the
	// blob corner radius.
	blobCornerInset = 80.0
)

// prepare clears the canvas, fills the background, installs the projection
// and draws the calibration backdrop. It returns the projection so the
// entity routines can map positions with the same sensor size and scale.
func (c *Canvas) prepare() Projection {
	s := c.surface
	cw, ch := c.canvasSize.W, c.canvasSize.H

	s.SetTransform(Identity)
	region := Rect{X: -cw, Y: -ch, Width: 3 * cw, Height: 3 * ch}
	s.Clear(region)
	s.FillRect(region, *c.opts.Background)

	proj := Project(c.canvasSize, c.sensor, c.opts.DrawingScale)
	s.SetTransform(proj.Matrix())

	backdrop := proj.Backdrop()
	s.FillRect(backdrop, *c.opts.Backdrop)
	c.drawQRCode(backdrop)
	return proj
}

// drawQRCode draws the website QR code centered in the backdrop.
func (c *Canvas) drawQRCode(backdrop Rect) {
	if c.opts.Website == "" {
		return
	}
	img, err := c.qr.image(c.opts.Website)
	if err != nil {
		return
	}
	size := math.Min(c.opts.QRSize, 0.8*math.Min(backdrop.Width, backdrop.Height))
	if size <= 0 {
		return
	}
	x := backdrop.X + (backdrop.Width-size)/2
	y := backdrop.Y + (backdrop.Height-size)/2
	c.surface.DrawImage(img, x, y, size, size)
}

// strokeArcGlyph strokes the 315° ring shared by pointers and tokens.
func (c *Canvas) strokeArcGlyph(at Vec2, circle Circle) {
	if circle.Radius <= 0 {
		return
	}
	start := degToRad(circle.Rotation)
	end := degToRad(circle.Rotation + arcSweep)
	var p Path
	p.Arc(at.X, at.Y, circle.Radius, start, end)
	c.surface.StrokePath(&p, Stroke{Color: circle.Color(), Width: circle.Thickness})
}

func (c *Canvas) drawPointer(pv *PointerVisual, proj Projection) {
	pv.Visual.Step()
	circle := pv.Visual.Circle(0)
	pv.refresh(c.source)

	pos := proj.ToLogical(Vec2{X: pv.Pointer.Position.X, Y: pv.Pointer.Position.Y})
	c.strokeArcGlyph(pos, circle)
}

func (c *Canvas) drawToken(tv *TokenVisual, proj Projection) {
	tv.Visual.Step()
	circle := tv.Visual.Circle(0)
	tv.refresh(c.source)

	pos := proj.ToLogical(Vec2{X: tv.Token.Position.X, Y: tv.Token.Position.Y})
	c.strokeArcGlyph(pos, circle)

	angle := tv.Token.Angle
	style := TextStyle{Color: tv.Visual.TextColor(), Size: c.opts.LabelSize}
	withTransform(c.surface, func() {
		Translate(c.surface, pos.X, pos.Y)
		Rotate(c.surface, angle)

		style.Align = TextAlignRight
		c.surface.FillText(TokenAngleLabel(angle), -tokenLabelBox/2-labelGap, 0, style)
		style.Align = TextAlignLeft
		c.surface.FillText(TokenIDLabel(tv.Token.CID), tokenLabelBox/2+labelGap, 0, style)
	})
}

func (c *Canvas) drawBlob(bv *BlobVisual, proj Projection) {
	bv.Visual.Step()
	circle := bv.Visual.Circle(0)
	bv.refresh(c.source)

	pos := proj.ToLogical(Vec2{X: bv.Bounds.Position.X, Y: bv.Bounds.Position.Y})
	extent := proj.ToLogical(Vec2{X: bv.Bounds.Size.X, Y: bv.Bounds.Size.Y})
	w, h, r := BlobGeometry(extent, circle.Radius)
	angle := bv.Bounds.Angle

	withTransform(c.surface, func() {
		Translate(c.surface, pos.X, pos.Y)
		Rotate(c.surface, angle)

		if w > 0 && h > 0 {
			var p Path
			p.RoundedRect(w, h, r)
			c.surface.StrokePath(&p, Stroke{Color: circle.Color(), Width: circle.Thickness})
		}
		if bv.Symbol == nil {
			return
		}
		style := TextStyle{Color: bv.Visual.TextColor(), Size: c.opts.LabelSize, Align: TextAlignLeft}
		c.surface.FillText(BlobLabel(bv.Symbol.Data), w/2+labelGap, 0, style)
	})
}

// BlobGeometry returns the outline size and corner radius of a blob whose
// logical extent is extent, given the sampled ring radius. The outline grows
// by the corner radius on every side; negative sizes collapse to zero.
func BlobGeometry(extent Vec2, radius float64) (w, h, corner float64) {
	r := radius - blobCornerInset
	w = math.Max(0, extent.X+2*r)
	h = math.Max(0, extent.Y+2*r)
	return w, h, ClampCornerRadius(w, h, r)
}

// TokenAngleLabel formats a token angle (radians) as whole degrees in
// (-360, 360), e.g. "90°".
func TokenAngleLabel(angle float64) string {
	deg := int(math.Round(radToDeg(angle))) % 360
	return strconv.Itoa(deg) + "°"
}

// TokenIDLabel formats a classifier id; 0 means unknown.
func TokenIDLabel(cid uint32) string {
	if cid == 0 {
		return "ID: -"
	}
	return "ID: " + strconv.FormatUint(uint64(cid), 10)
}

// BlobLabel formats a blob's symbol payload.
func BlobLabel(data string) string {
	return "ID: " + data
}
