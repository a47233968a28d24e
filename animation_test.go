package tuiocanvas

import "testing"

func TestVisualStartsHidden(t *testing.T) {
	v := NewVisual(DefaultPalette[0], false)
	c := v.Circle(0)
	if c.Radius != 0 || c.Alpha != 0 {
		t.Errorf("initial circle = %+v, want zero radius and alpha", c)
	}
	if v.Steps() != 0 {
		t.Errorf("Steps = %d, want 0", v.Steps())
	}
	if v.TextColor().A != 0 {
		t.Errorf("TextColor alpha = %f, want 0", v.TextColor().A)
	}
}

func TestVisualSettles(t *testing.T) {
	tests := []struct {
		name    string
		pointer bool
		style   VisualStyle
	}{
		{"pointer", true, PointerStyle},
		{"token", false, TokenStyle},
	}
	for _, tt := range tests {
		v := NewVisual(DefaultPalette[2], tt.pointer)
		for i := 0; i < 120; i++ {
			v.Step()
		}
		if !v.Settled() {
			t.Errorf("%s: not settled after 2s", tt.name)
			continue
		}
		c := v.Circle(0)
		if !approxEqual(c.Radius, tt.style.Radius, 1e-3) {
			t.Errorf("%s: radius = %f, want %f", tt.name, c.Radius, tt.style.Radius)
		}
		if !approxEqual(c.Thickness, tt.style.Thickness, 1e-3) {
			t.Errorf("%s: thickness = %f, want %f", tt.name, c.Thickness, tt.style.Thickness)
		}
		if !approxEqual(c.Alpha, 1, 1e-3) {
			t.Errorf("%s: alpha = %f, want 1", tt.name, c.Alpha)
		}
		if v.Steps() != 120 {
			t.Errorf("%s: Steps = %d, want 120", tt.name, v.Steps())
		}
	}
}

func TestVisualHaloIsFainter(t *testing.T) {
	v := NewVisual(DefaultPalette[0], false)
	for i := 0; i < 120; i++ {
		v.Step()
	}
	halo := v.Circle(1)
	if !approxEqual(halo.Alpha, 0.35, 1e-3) {
		t.Errorf("halo alpha = %f, want 0.35", halo.Alpha)
	}
	if !approxEqual(halo.Radius, TokenStyle.Radius*1.25, 1e-3) {
		t.Errorf("halo radius = %f, want %f", halo.Radius, TokenStyle.Radius*1.25)
	}
}

func TestVisualRotationWraps(t *testing.T) {
	v := NewVisual(DefaultPalette[0], true)
	for i := 0; i < 500; i++ {
		v.Step()
		if r := v.Circle(0).Rotation; r < 0 || r >= 360 {
			t.Fatalf("step %d rotation = %f, want [0, 360)", i, r)
		}
		// The halo spins the other way.
		if r := v.Circle(1).Rotation; r <= -360 || r > 0 {
			t.Fatalf("step %d halo rotation = %f, want (-360, 0]", i, r)
		}
	}
}

func TestVisualCircleOutOfRange(t *testing.T) {
	v := NewVisual(DefaultPalette[0], false)
	v.Step()
	for _, i := range []int{-1, 2, 10} {
		if c := v.Circle(i); c != (Circle{}) {
			t.Errorf("Circle(%d) = %+v, want zero", i, c)
		}
	}
}

func TestVisualTextColorFollowsAlpha(t *testing.T) {
	base := DefaultPalette[4]
	v := NewVisual(base, false)
	for i := 0; i < 5; i++ {
		v.Step()
	}
	tc := v.TextColor()
	if tc.R != base.R || tc.G != base.G || tc.B != base.B {
		t.Errorf("TextColor = %v, want base rgb %v", tc, base)
	}
	if tc.A != v.Circle(0).Alpha {
		t.Errorf("TextColor alpha = %f, want %f", tc.A, v.Circle(0).Alpha)
	}
}

func TestCircleColor(t *testing.T) {
	c := Circle{RGB: Color{R: 1, G: 0.5, B: 0, A: 1}, Alpha: 0.25}
	if got := c.Color(); got != (Color{R: 1, G: 0.5, B: 0, A: 0.25}) {
		t.Errorf("Color = %v, want alpha 0.25", got)
	}
}
