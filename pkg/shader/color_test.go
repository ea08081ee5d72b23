package shader

import "testing"

func TestColorClamp(t *testing.T) {
	c := Color{R: 1.5, G: -0.2, B: 0.5, A: 2}.Clamp()
	want := Color{R: 1, G: 0, B: 0.5, A: 1}
	if c != want {
		t.Errorf("Clamp() = %+v, want %+v", c, want)
	}
}

func TestColorRGBA(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		r    uint8
		g    uint8
		b    uint8
		a    uint8
	}{
		{"black", NewColor(0, 0, 0), 0, 0, 0, 255},
		{"white", NewColor(1, 1, 1), 255, 255, 255, 255},
		{"half", NewColorA(0.5, 0.5, 0.5, 0.5), 127, 127, 127, 127},
		{"rounds up", NewColor(0.999, 0.999, 0.999), 255, 255, 255, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.RGBA()
			if got.R != tt.r || got.G != tt.g || got.B != tt.b || got.A != tt.a {
				t.Errorf("RGBA() = %+v, want {%d %d %d %d}", got, tt.r, tt.g, tt.b, tt.a)
			}
		})
	}
}

func TestColorLerp(t *testing.T) {
	a := NewColor(0, 0, 0)
	b := NewColor(1, 0.5, 0)
	mid := a.Lerp(b, 0.5)
	want := NewColor(0.5, 0.25, 0)
	if mid != want {
		t.Errorf("Lerp(0.5) = %+v, want %+v", mid, want)
	}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %+v, want %+v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %+v, want %+v", got, b)
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name  string
		edge0 float64
		edge1 float64
		x     float64
		want  float64
	}{
		{"below", 0, 1, -1, 0},
		{"at low edge", 0, 1, 0, 0},
		{"midpoint", 0, 1, 0.5, 0.5},
		{"at high edge", 0, 1, 1, 1},
		{"above", 0, 1, 2, 1},
		{"reversed edges below", 1, 0, 2, 0},
		{"reversed edges above", 1, 0, -1, 1},
		{"degenerate equal edges", 0.5, 0.5, 0.7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Smoothstep(tt.edge0, tt.edge1, tt.x); got != tt.want {
				t.Errorf("Smoothstep(%v, %v, %v) = %v, want %v",
					tt.edge0, tt.edge1, tt.x, got, tt.want)
			}
		})
	}
}

func TestSmoothstepMonotonic(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 100; i++ {
		x := float64(i) / 100
		v := Smoothstep(0, 1, x)
		if v < prev {
			t.Fatalf("not monotonic at x=%v: %v < %v", x, v, prev)
		}
		prev = v
	}
}

func TestPaletteSample(t *testing.T) {
	p := Palette{
		{0.0, NewColor(0, 0, 0)},
		{0.5, NewColor(1, 0, 0)},
		{1.0, NewColor(1, 1, 1)},
	}
	if got := p.Sample(-2); got != NewColor(0, 0, 0) {
		t.Errorf("Sample below range = %+v", got)
	}
	if got := p.Sample(3); got != NewColor(1, 1, 1) {
		t.Errorf("Sample above range = %+v", got)
	}
	if got := p.Sample(0.25); got != NewColor(0.5, 0, 0) {
		t.Errorf("Sample(0.25) = %+v, want half red", got)
	}
	if got := p.Sample(0.5); got != NewColor(1, 0, 0) {
		t.Errorf("Sample(0.5) = %+v, want red", got)
	}
}

func TestHCLRamp(t *testing.T) {
	from := NewColor(0.1, 0.2, 0.8)
	to := NewColor(0.9, 0.5, 0.1)
	ramp := HCLRamp(from, to, 5)
	if len(ramp) != 5 {
		t.Fatalf("len = %d, want 5", len(ramp))
	}
	for i, c := range ramp {
		for _, ch := range []float64{c.R, c.G, c.B} {
			if ch < 0 || ch > 1 {
				t.Errorf("ramp[%d] channel out of range: %+v", i, c)
			}
		}
		if c.A != 1 {
			t.Errorf("ramp[%d] alpha = %v, want 1", i, c.A)
		}
	}
	if dr, dg, db := ramp[0].R-from.R, ramp[0].G-from.G, ramp[0].B-from.B; dr > 0.01 || dg > 0.01 || db > 0.01 {
		t.Errorf("ramp[0] = %+v, want ~%+v", ramp[0], from)
	}
}
