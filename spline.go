package dwg

// DefaultSplineSamples is the default segment count for B-spline sampling.
const DefaultSplineSamples = 64

// UniformClampedKnots generates a clamped uniform knot vector for n control
// points of the given degree: degree+1 zeros, evenly spaced interior knots,
// degree+1 ones. A clamped vector makes the curve interpolate its first and
// last control points.
func UniformClampedKnots(n, degree int) []float64 {
	if n < 2 || degree < 1 {
		return nil
	}
	if degree >= n {
		degree = n - 1
	}
	count := n + degree + 1
	knots := make([]float64, count)
	interior := n - degree
	for i := range knots {
		switch {
		case i <= degree:
			knots[i] = 0
		case i >= count-degree-1:
			knots[i] = 1
		default:
			knots[i] = float64(i-degree) / float64(interior)
		}
	}
	return knots
}

// EvaluateBSpline samples a B-spline curve by De Boor recursion, returning
// samples+1 points evenly spaced in the valid parametric domain
// [knots[degree], knots[len-degree-1]]. A nil or short knot vector is
// replaced by a uniform clamped one. If the knot vector yields a
// non-positive-length domain, the control polygon is linearly interpolated
// instead of failing.
func EvaluateBSpline(ctrl []Vec3, knots []float64, degree, samples int) []Vec3 {
	n := len(ctrl)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []Vec3{ctrl[0]}
	}
	if degree < 1 {
		degree = 1
	}
	if degree >= n {
		degree = n - 1
	}
	if samples < 1 {
		samples = DefaultSplineSamples
	}
	if len(knots) < n+degree+1 {
		knots = UniformClampedKnots(n, degree)
	}

	tMin := knots[degree]
	tMax := knots[len(knots)-degree-1]
	if !(tMax > tMin) {
		return lerpPolygon(ctrl, samples)
	}

	pts := make([]Vec3, 0, samples+1)
	for i := 0; i <= samples; i++ {
		t := tMin + (tMax-tMin)*float64(i)/float64(samples)
		pts = append(pts, deBoor(ctrl, knots, degree, t))
	}
	return pts
}

// deBoor evaluates one curve point at parameter t.
func deBoor(ctrl []Vec3, knots []float64, degree int, t float64) Vec3 {
	k := findSpan(knots, degree, len(ctrl), t)

	// Copy the degree+1 control points relevant to this span, clamping
	// indices so a shifted or dense knot vector cannot read out of range.
	d := make([]Vec3, degree+1)
	for j := 0; j <= degree; j++ {
		idx := k - degree + j
		if idx < 0 {
			idx = 0
		}
		if idx >= len(ctrl) {
			idx = len(ctrl) - 1
		}
		d[j] = ctrl[idx]
	}

	for r := 1; r <= degree; r++ {
		for j := degree; j >= r; j-- {
			i := k - degree + j
			denom := knots[i+degree-r+1] - knots[i]
			alpha := 0.0
			if denom != 0 {
				alpha = (t - knots[i]) / denom
			}
			d[j] = Vec3{
				X: d[j-1].X*(1-alpha) + d[j].X*alpha,
				Y: d[j-1].Y*(1-alpha) + d[j].Y*alpha,
				Z: d[j-1].Z*(1-alpha) + d[j].Z*alpha,
			}
		}
	}
	return d[degree]
}

// findSpan locates the knot span index k such that knots[k] <= t < knots[k+1],
// clamped to the valid range [degree, n-1] where n is the control point count.
func findSpan(knots []float64, degree, n int, t float64) int {
	high := n - 1
	if t >= knots[n] {
		return high
	}
	for k := degree; k < n; k++ {
		if t >= knots[k] && t < knots[k+1] {
			return k
		}
	}
	return high
}

// lerpPolygon samples the control polygon itself, the fallback for an
// unusable knot vector.
func lerpPolygon(ctrl []Vec3, samples int) []Vec3 {
	pts := make([]Vec3, 0, samples+1)
	segs := len(ctrl) - 1
	for i := 0; i <= samples; i++ {
		f := float64(i) / float64(samples) * float64(segs)
		j := int(f)
		if j >= segs {
			j = segs - 1
		}
		t := f - float64(j)
		a, b := ctrl[j], ctrl[j+1]
		pts = append(pts, Vec3{
			X: a.X + (b.X-a.X)*t,
			Y: a.Y + (b.Y-a.Y)*t,
			Z: a.Z + (b.Z-a.Z)*t,
		})
	}
	return pts
}
