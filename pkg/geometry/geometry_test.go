package geometry

import (
	"math"
	"strconv"
	"strings"
	"testing"
)

const eps = 1e-9

// arcEndpoints extracts the move-to and arc end points from a DescribeArc path.
func arcEndpoints(t *testing.T, path string) (start, end Point, largeArc string, closed bool) {
	t.Helper()
	f := strings.Fields(path)
	if len(f) < 11 || f[0] != "M" || f[3] != "A" {
		t.Fatalf("unexpected path shape: %q", path)
	}
	num := func(s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		return v
	}
	start = Point{num(f[1]), num(f[2])}
	end = Point{num(f[9]), num(f[10])}
	return start, end, f[7], len(f) == 12 && f[11] == "z"
}

func TestPolarToCartesian(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  Point
	}{
		{"zero", 0, Point{200, 150}},
		{"quarter", 90, Point{150, 200}},
		{"half", 180, Point{100, 150}},
		{"three quarters", 270, Point{150, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PolarToCartesian(150, 150, 50, tt.angle)
			if got.Distance(tt.want) > eps {
				t.Errorf("PolarToCartesian(150,150,50,%v) = %+v, want %+v", tt.angle, got, tt.want)
			}
		})
	}
}

func TestPointAtAngleMatchesPolar(t *testing.T) {
	for deg := 0.0; deg < 360; deg += 7.5 {
		a := PolarToCartesian(150, 150, 80, deg)
		b := PointAtAngle(DegreesToRadians(deg), 80, 150, 150)
		if a.Distance(b) > eps {
			t.Fatalf("angle %v: polar %+v, radians %+v", deg, a, b)
		}
	}
}

func TestDescribeArcEndpointsOnCircle(t *testing.T) {
	center := Point{150, 150}
	for _, r := range []float64{1, 50, 120.5} {
		for span := 0.0; span <= 360; span += 15 {
			path := DescribeArc(center.X, center.Y, r, 0, span)
			start, end, _, _ := arcEndpoints(t, path)
			if d := start.Distance(center); math.Abs(d-r) > 1e-6 {
				t.Errorf("r=%v span=%v: start at distance %v", r, span, d)
			}
			if d := end.Distance(center); math.Abs(d-r) > 1e-6 {
				t.Errorf("r=%v span=%v: end at distance %v", r, span, d)
			}
		}
	}
}

func TestDescribeArcFullCircle(t *testing.T) {
	path := DescribeArc(150, 150, 50, 0, 360)
	start, end, largeArc, closed := arcEndpoints(t, path)
	if !closed {
		t.Errorf("full circle path should end with z: %q", path)
	}
	if start.Distance(end) < 0.1 {
		t.Errorf("full circle degenerated to zero-length arc: %q", path)
	}
	if largeArc != "1" {
		t.Errorf("full circle should use the major arc, got flag %q", largeArc)
	}
	want := PolarToCartesian(150, 150, 50, 359)
	if start.Distance(want) > eps {
		t.Errorf("full circle should start at 359°, got %+v", start)
	}
}

func TestDescribeArcLargeArcFlag(t *testing.T) {
	tests := []struct {
		span float64
		want string
	}{
		{0, "0"},
		{90, "0"},
		{179.9, "0"},
		{180, "0"},
		{180.1, "1"},
		{270, "1"},
		{359.6, "1"},
	}
	for _, tt := range tests {
		_, _, got, closed := arcEndpoints(t, DescribeArc(150, 150, 50, 0, tt.span))
		if got != tt.want {
			t.Errorf("span %v: large-arc flag = %q, want %q", tt.span, got, tt.want)
		}
		if closed {
			t.Errorf("span %v: only a full circle should be closed", tt.span)
		}
	}
}

func TestDescribeArcFormat(t *testing.T) {
	got := DescribeArc(150, 150, 50, 0, 0)
	want := "M 200 150 A 50 50 0 0 0 200 150"
	if got != want {
		t.Errorf("DescribeArc = %q, want %q", got, want)
	}
}

// screenPoint places a pointer on a circle at clockwise angle theta from 12 o'clock.
func screenPoint(c Point, r, theta float64) Point {
	return Point{X: c.X + r*math.Sin(theta), Y: c.Y - r*math.Cos(theta)}
}

func TestPointerAngleCardinal(t *testing.T) {
	c := Point{150, 150}
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"12 o'clock", Point{150, 100}, 0},
		{"3 o'clock", Point{200, 150}, Tau / 4},
		{"6 o'clock", Point{150, 200}, Tau / 2},
		{"9 o'clock", Point{100, 150}, 3 * Tau / 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointerAngle(tt.p.X, tt.p.Y, c.X, c.Y)
			if math.Abs(got-tt.want) > eps {
				t.Errorf("PointerAngle(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPointerAngleContinuity(t *testing.T) {
	c := Point{150, 150}
	const steps = 3600
	prev := -1.0
	for i := 1; i < steps; i++ {
		theta := Tau * float64(i) / steps
		p := screenPoint(c, 75, theta)
		got := PointerAngle(p.X, p.Y, c.X, c.Y)
		if got < 0 || got >= Tau {
			t.Fatalf("step %d: angle %v outside [0, 2π)", i, got)
		}
		if math.Abs(got-theta) > 1e-9 {
			t.Fatalf("step %d: angle %v, want %v", i, got, theta)
		}
		if got < prev-1e-12 {
			t.Fatalf("step %d: angle jumped backwards from %v to %v", i, prev, got)
		}
		prev = got
	}
}

func TestPointerAngleRange(t *testing.T) {
	c := Point{150, 150}
	for _, p := range []Point{{0, 150}, {0, 149.999}, {0, 150.001}, {150, 0}, {300, 300}, {150, 150}} {
		got := PointerAngle(p.X, p.Y, c.X, c.Y)
		if got < 0 || got >= Tau {
			t.Errorf("PointerAngle(%+v) = %v, outside [0, 2π)", p, got)
		}
	}

	// Exactly left of center with dy = -0: atan2 yields -π, which must wrap
	// to 9 o'clock (1.5π) rather than fall out of range at -π/2.
	negZero := math.Copysign(0, -1)
	if got := PointerAngle(-50, negZero, 0, 0); math.Abs(got-Tau*0.75) > 1e-12 {
		t.Errorf("PointerAngle at -π = %v, want %v", got, Tau*0.75)
	}
	if got := PointerAngle(-50, 0, 0, 0); math.Abs(got-Tau*0.75) > 1e-12 {
		t.Errorf("PointerAngle at +π = %v, want %v", got, Tau*0.75)
	}
}

func TestRotateMatchesGroupTransform(t *testing.T) {
	c := Point{150, 150}
	// Group-space angle 0 is 3 o'clock before the −90° rotation, 12 o'clock after.
	got := Rotate(PolarToCartesian(c.X, c.Y, 50, 0), c, -90)
	if got.Distance(Point{150, 100}) > eps {
		t.Errorf("Rotate = %+v, want 12 o'clock", got)
	}
	got = Rotate(PolarToCartesian(c.X, c.Y, 50, 90), c, -90)
	if got.Distance(Point{200, 150}) > eps {
		t.Errorf("Rotate = %+v, want 3 o'clock", got)
	}
}

func TestPointerAngleInvertsHandlePlacement(t *testing.T) {
	c := Point{150, 150}
	for deg := 1.0; deg < 360; deg += 11 {
		handle := Rotate(PolarToCartesian(c.X, c.Y, 60, deg), c, -90)
		got := RadiansToDegrees(PointerAngle(handle.X, handle.Y, c.X, c.Y))
		if math.Abs(got-deg) > 1e-9 {
			t.Errorf("deg %v: pointer angle %v", deg, got)
		}
	}
}

func TestDegreeRadianRoundTrip(t *testing.T) {
	for _, d := range []float64{0, 1, 45, 90, 180, 359.6, 360} {
		if got := RadiansToDegrees(DegreesToRadians(d)); math.Abs(got-d) > eps {
			t.Errorf("round trip %v = %v", d, got)
		}
	}
}
