package tuiocanvas

// DefaultSensorSize is the logical sensor size used until the first refresh
// carrying a dimension.
var DefaultSensorSize = Size{W: 160, H: 90}

// DefaultDrawingScale shrinks the sensor area inside the canvas so a margin
// of calibration backdrop stays visible.
const DefaultDrawingScale = 0.8

// Projection is the per-frame letterbox transform from logical sensor space
// into canvas pixels.
type Projection struct {
	// EffectiveW and EffectiveH are the canvas area the sensor aspect ratio
	// occupies after letterboxing.
	EffectiveW, EffectiveH float64
	// TranslateX and TranslateY center the effective area in the canvas.
	TranslateX, TranslateY float64
	// Scale is applied uniformly after the translation.
	Scale float64

	sensor       Size
	drawingScale float64
}

// Project computes the letterbox for a canvas of pixel size canvas showing a
// sensor of logical size sensor at the given drawing scale.
//
// When the canvas is wider than the sensor aspect ratio the effective width
// shrinks to canvas.H*sensor.W/sensor.H; when it is taller the effective
// height shrinks to canvas.W*sensor.H/sensor.W. A sensor size with a
// non-positive component skips the letterbox and the scale entirely.
func Project(canvas, sensor Size, drawingScale float64) Projection {
	p := Projection{
		EffectiveW:   canvas.W,
		EffectiveH:   canvas.H,
		Scale:        1,
		sensor:       sensor,
		drawingScale: drawingScale,
	}
	if !sensor.Valid() || !canvas.Valid() {
		return p
	}

	canvasAspect := canvas.W / canvas.H
	sensorAspect := sensor.W / sensor.H
	if canvasAspect > sensorAspect {
		p.EffectiveW = canvas.H * sensor.W / sensor.H
	} else if canvasAspect < sensorAspect {
		p.EffectiveH = canvas.W * sensor.H / sensor.W
	}

	p.TranslateX = 0.5 * (canvas.W - p.EffectiveW)
	p.TranslateY = 0.5 * (canvas.H - p.EffectiveH)
	p.Scale = drawingScale * p.EffectiveH / sensor.H
	return p
}

// Matrix returns the affine applying the translation then the uniform scale.
func (p Projection) Matrix() Affine {
	return TranslateAffine(p.TranslateX, p.TranslateY).Scale(p.Scale, p.Scale)
}

// ToLogical maps a normalized position into the logical space the Matrix
// expects: pos * sensor / drawingScale.
func (p Projection) ToLogical(pos Vec2) Vec2 {
	return ToLogical(pos, p.sensor, p.drawingScale)
}

// Backdrop returns the logical rectangle covering the whole sensor area,
// [0, 0, sensor.W/drawingScale, sensor.H/drawingScale].
func (p Projection) Backdrop() Rect {
	if p.drawingScale == 0 {
		return Rect{}
	}
	return Rect{Width: p.sensor.W / p.drawingScale, Height: p.sensor.H / p.drawingScale}
}

// ToLogical maps a normalized position into logical canvas units. Dividing
// by drawingScale here and multiplying by it inside Projection.Scale lets the
// backdrop rectangle tile the sensor area before scaling.
func ToLogical(pos Vec2, sensor Size, drawingScale float64) Vec2 {
	if drawingScale == 0 {
		return Vec2{}
	}
	return Vec2{X: pos.X * sensor.W / drawingScale, Y: pos.Y * sensor.H / drawingScale}
}

// UnpackDim decodes the packed TUIO 2.0 dimension field: width in the low 16
// bits, height in the high 16 bits. flip swaps the axes.
func UnpackDim(dim uint32, flip bool) Size {
	w := float64(dim % 65536)
	h := float64(dim / 65536)
	if flip {
		return Size{W: h, H: w}
	}
	return Size{W: w, H: h}
}
