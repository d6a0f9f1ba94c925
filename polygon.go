package dwg

import "math"

// cleanEpsilon is the default distance below which two loop vertices are
// considered duplicates during cleaning.
const cleanEpsilon = 1e-9

// SignedArea computes the signed area of a closed loop via the shoelace
// formula. Positive means counter-clockwise winding.
func SignedArea(loop []Vec2) float64 {
	var sum float64
	n := len(loop)
	for i := 0; i < n; i++ {
		p := loop[i]
		q := loop[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// CleanLoop prepares a closed loop for containment analysis and
// triangulation. It removes near-duplicate vertices (within eps), removes
// immediately-collinear vertices, and corrects obvious bow-tie reversals by
// dropping the offending vertex. Pass eps <= 0 for the default epsilon.
// The result may have fewer than 3 vertices; callers drop such loops.
func CleanLoop(loop []Vec2, eps float64) []Vec2 {
	if eps <= 0 {
		eps = cleanEpsilon
	}

	// Dedupe pass, treating the loop as cyclic so a trailing vertex equal
	// to the first is also dropped.
	out := make([]Vec2, 0, len(loop))
	for _, p := range loop {
		if len(out) > 0 && p.Distance(out[len(out)-1]) < eps {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1].Distance(out[0]) < eps {
		out = out[:len(out)-1]
	}

	out = dropCollinear(out, eps)
	out = dropReversals(out)
	return out
}

// dropCollinear removes vertices whose neighbors are collinear with them,
// iterating until stable since a removal can expose a new collinear triple.
func dropCollinear(loop []Vec2, eps float64) []Vec2 {
	for {
		n := len(loop)
		if n < 3 {
			return loop
		}
		removed := false
		out := loop[:0:0]
		for i := 0; i < n; i++ {
			prev := loop[(i+n-1)%n]
			cur := loop[i]
			next := loop[(i+1)%n]
			a := cur.Sub(prev)
			b := next.Sub(cur)
			if math.Abs(a.Cross(b)) < eps && a.Dot(b) > 0 {
				removed = true
				continue
			}
			out = append(out, cur)
		}
		loop = out
		if !removed {
			return loop
		}
	}
}

// dropReversals corrects bow-tie spikes: a vertex whose incoming and
// outgoing edges double back on each other (opposite directions) is
// dropped, untwisting the most common self-intersection produced by sloppy
// boundary tracing.
func dropReversals(loop []Vec2) []Vec2 {
	for {
		n := len(loop)
		if n < 3 {
			return loop
		}
		removed := false
		out := loop[:0:0]
		for i := 0; i < n; i++ {
			prev := loop[(i+n-1)%n]
			cur := loop[i]
			next := loop[(i+1)%n]
			a := cur.Sub(prev)
			b := next.Sub(cur)
			if a.Cross(b) == 0 && a.Dot(b) < 0 {
				removed = true
				continue
			}
			out = append(out, cur)
		}
		loop = out
		if !removed {
			return loop
		}
	}
}

// rect2 is a 2D axis-aligned bounding box.
type rect2 struct {
	min, max Vec2
}

func boundsOf(loop []Vec2) rect2 {
	r := rect2{
		min: V2(math.Inf(1), math.Inf(1)),
		max: V2(math.Inf(-1), math.Inf(-1)),
	}
	for _, p := range loop {
		r.min.X = math.Min(r.min.X, p.X)
		r.min.Y = math.Min(r.min.Y, p.Y)
		r.max.X = math.Max(r.max.X, p.X)
		r.max.Y = math.Max(r.max.Y, p.Y)
	}
	return r
}

// containsRect reports whether r fully contains other, used as a cheap
// rejection before point-in-polygon voting.
func (r rect2) containsRect(other rect2) bool {
	return other.min.X >= r.min.X && other.max.X <= r.max.X &&
		other.min.Y >= r.min.Y && other.max.Y <= r.max.Y
}

// pointInPolygon tests p against the loop by ray casting along +X.
func pointInPolygon(p Vec2, loop []Vec2) bool {
	inside := false
	n := len(loop)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a := loop[i]
		b := loop[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
