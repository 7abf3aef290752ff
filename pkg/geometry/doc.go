// Package geometry implements the ring math behind a circular range slider.
//
// All functions are pure: they take explicit centers, radii and angles and
// return values without touching shared state, so any number of sliders can
// call them concurrently.
//
// # Coordinate spaces
//
// Two spaces are involved. Screen space is the container's local space with
// its origin at the top-left corner and y growing downwards. Group space is
// screen space rotated by −90° around the ring center; renderers draw the
// slider group with that rotation so that angle 0 sits at 12 o'clock.
//
// [PolarToCartesian], [PointAtAngle] and [DescribeArc] produce group-space
// coordinates. [PointerAngle] consumes screen-space pointer positions and
// returns an angle that is already re-based to group space. [Rotate] maps a
// group-space point back to screen space for sinks that cannot apply an SVG
// transform themselves.
//
// # Arc paths
//
// [DescribeArc] emits an SVG path of the form
//
//	M <x1> <y1> A <r> <r> 0 <large-arc> 0 <x2> <y2>
//
// starting at the end angle and finishing at the start angle. A span of
// exactly 360° is drawn as a 359° arc followed by a closing "z" because an
// arc between two identical points renders as nothing.
package geometry
