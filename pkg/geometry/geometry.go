package geometry

import (
	"math"
	"strconv"
	"strings"
)

// Tau is one full turn in radians.
const Tau = 2 * math.Pi

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// PolarToCartesian converts an angle in degrees and a radius around
// (centerX, centerY) into a point.
func PolarToCartesian(centerX, centerY, radius, angleDegrees float64) Point {
	return PointAtAngle(DegreesToRadians(angleDegrees), radius, centerX, centerY)
}

// PointAtAngle is PolarToCartesian for an angle already in radians. Handle
// placement during a drag uses it directly to avoid a degree round-trip.
func PointAtAngle(angleRadians, radius, centerX, centerY float64) Point {
	return Point{
		X: centerX + radius*math.Cos(angleRadians),
		Y: centerY + radius*math.Sin(angleRadians),
	}
}

// DescribeArc returns the SVG path data for the arc from startDegrees to
// endDegrees around (centerX, centerY).
//
// Spans up to and including 180° use the minor arc; larger spans use the
// major arc. A span of exactly 360° is nudged to end at 359° and closed with
// "z" so the renderer draws a ring.
func DescribeArc(centerX, centerY, radius, startDegrees, endDegrees float64) string {
	fullCircle := endDegrees-startDegrees == 360
	if fullCircle {
		endDegrees = 359
	}

	start := PolarToCartesian(centerX, centerY, radius, endDegrees)
	end := PolarToCartesian(centerX, centerY, radius, startDegrees)

	largeArc := "0"
	if endDegrees-startDegrees > 180 {
		largeArc = "1"
	}

	parts := []string{
		"M", formatFloat(start.X), formatFloat(start.Y),
		"A", formatFloat(radius), formatFloat(radius), "0", largeArc, "0", formatFloat(end.X), formatFloat(end.Y),
	}
	if fullCircle {
		parts = append(parts, "z")
	}
	return strings.Join(parts, " ")
}

// PointerAngle returns the angle of (pointerX, pointerY) around
// (centerX, centerY) in radians, re-based so that 0 is 12 o'clock and the
// angle grows clockwise. The result is in [0, 2π).
//
// Raw atan2 output has its origin at 3 o'clock. Everything left of
// 12 o'clock in the upper half, [−π, −π/2), wraps by 2.5π; the rest shifts
// by 0.5π. That split keeps the angle continuous while the pointer travels
// clockwise through a full turn.
func PointerAngle(pointerX, pointerY, centerX, centerY float64) float64 {
	angle := math.Atan2(pointerY-centerY, pointerX-centerX)
	if angle < -Tau/4 {
		return angle + Tau*1.25
	}
	return angle + Tau*0.25
}

// Rotate rotates p around center by degrees. Positive values rotate
// clockwise in screen space, matching the SVG rotate() transform.
func Rotate(p, center Point, degrees float64) Point {
	rad := DegreesToRadians(degrees)
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-center.X, p.Y-center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// DegreesToRadians converts degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad / (math.Pi / 180)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
