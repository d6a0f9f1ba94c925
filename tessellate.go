package dwg

import "math"

// chordEpsilon is the chord length below which a bulge segment is treated
// as degenerate and contributes no arc points.
const chordEpsilon = 1e-10

// DefaultArcSegments is the default sample count for full arcs and circles.
const DefaultArcSegments = 48

// BulgeToArc expands the circular arc encoded by a bulge value between two
// vertices into its interior sample points. The returned slice excludes both
// start and end, so callers can append it between the two vertices they
// already emit. A chord shorter than an internal epsilon yields nil.
//
// The bulge is the tangent of a quarter of the included angle; its sign
// gives the sweep direction (positive = counter-clockwise from start to
// end).
func BulgeToArc(start, end Vec2, bulge float64) []Vec2 {
	chord := end.Sub(start)
	chordLen := chord.Length()
	if chordLen < chordEpsilon || bulge == 0 {
		return nil
	}

	theta := 4 * math.Atan(math.Abs(bulge))
	radius := chordLen / (2 * math.Sin(theta/2))
	sagitta := radius * (1 - math.Cos(theta/2))
	apothem := radius - sagitta

	// Center sits on the chord's perpendicular bisector, offset along the
	// left normal for a positive bulge and the right normal for a negative
	// one.
	mid := start.Add(end).Mul(0.5)
	normal := V2(-chord.Y, chord.X).Mul(1 / chordLen)
	dir := 1.0
	if bulge < 0 {
		dir = -1
	}
	center := mid.Add(normal.Mul(dir * apothem))

	startAngle := math.Atan2(start.Y-center.Y, start.X-center.X)
	steps := int(math.Ceil(math.Abs(theta) * 10))
	if steps < 8 {
		steps = 8
	}

	pts := make([]Vec2, 0, steps-1)
	for i := 1; i < steps; i++ {
		a := startAngle + dir*theta*float64(i)/float64(steps)
		pts = append(pts, V2(
			center.X+radius*math.Cos(a),
			center.Y+radius*math.Sin(a),
		))
	}
	return pts
}

// SampleArc samples a circular arc from startAngle to endAngle (radians),
// including both endpoints. The sweep is normalized to the requested winding
// before sampling: counter-clockwise sweeps are positive, clockwise sweeps
// negative. Callers joining the arc onto a previous segment at a shared
// vertex drop the first returned point themselves. segments below 2 falls
// back to DefaultArcSegments.
func SampleArc(center Vec2, radius, startAngle, endAngle float64, ccw bool, segments int) []Vec2 {
	if segments < 2 {
		segments = DefaultArcSegments
	}
	sweep := normalizeSweep(startAngle, endAngle, ccw)
	pts := make([]Vec2, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := startAngle + sweep*float64(i)/float64(segments)
		pts = append(pts, V2(
			center.X+radius*math.Cos(a),
			center.Y+radius*math.Sin(a),
		))
	}
	return pts
}

// SampleCircle samples a full circle counter-clockwise from angle zero,
// closing back on the first point.
func SampleCircle(center Vec2, radius float64, segments int) []Vec2 {
	return SampleArc(center, radius, 0, 2*math.Pi, true, segments)
}

// SampleEllipse samples an elliptical arc. The raw parametric point
// (major*cos t, minor*sin t) gets an in-plane rotation and the center
// translation applied. Start and end are parametric angles; an empty or
// inverted span is normalized to a counter-clockwise sweep, and equal
// angles produce the full ellipse. Both endpoints are included.
func SampleEllipse(center Vec2, major, minor, rotation, start, end float64, segments int) []Vec2 {
	if segments < 2 {
		segments = DefaultArcSegments
	}
	if end <= start {
		end += 2 * math.Pi
	}
	sin, cos := math.Sincos(rotation)
	pts := make([]Vec2, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := start + (end-start)*float64(i)/float64(segments)
		x := major * math.Cos(t)
		y := minor * math.Sin(t)
		pts = append(pts, V2(
			center.X+x*cos-y*sin,
			center.Y+x*sin+y*cos,
		))
	}
	return pts
}

// normalizeSweep returns the signed swept angle from start to end matching
// the requested winding direction: positive for counter-clockwise, negative
// for clockwise, never zero for distinct normalized angles.
func normalizeSweep(start, end float64, ccw bool) float64 {
	sweep := end - start
	if ccw {
		for sweep <= 0 {
			sweep += 2 * math.Pi
		}
	} else {
		for sweep >= 0 {
			sweep -= 2 * math.Pi
		}
	}
	return sweep
}

// expandPolyVertices expands a bulge-encoded vertex sequence into a flat 2D
// point sequence. When closed, the final vertex's bulge wraps around to the
// first vertex and the caller is expected to close the loop.
func expandPolyVertices(verts []PolyVertex, closed bool) []Vec2 {
	pts := make([]Vec2, 0, len(verts))
	for i, v := range verts {
		p := v.Point.XY()
		pts = append(pts, p)
		last := i == len(verts)-1
		if last && !closed {
			break
		}
		var next Vec2
		if last {
			next = verts[0].Point.XY()
		} else {
			next = verts[i+1].Point.XY()
		}
		if v.Bulge != 0 {
			pts = append(pts, BulgeToArc(p, next, v.Bulge)...)
		}
	}
	return pts
}
