package dwg

import (
	"errors"
	"math"
)

// errNoEar reports that ear clipping stalled, which happens when a loop is
// too self-intersecting to resolve.
var errNoEar = errors.New("dwg: no ear found, boundary self-intersects")

// TriangulateWithHoles triangulates a filled region bounded by outer with
// the given hole boundaries subtracted. The returned vertex slice is outer
// followed by the holes (reoriented as needed); indices form triangles into
// it. Ear clipping over the hole-bridged boundary is used, so mildly
// irregular input is fine, but a severely self-intersecting boundary
// returns an error and the caller decides how to degrade.
func TriangulateWithHoles(outer []Vec2, holes [][]Vec2) ([]Vec2, []uint32, error) {
	if len(outer) < 3 {
		return nil, nil, errors.New("dwg: outer boundary has fewer than 3 points")
	}

	// Vertex buffer: outer first, then each hole. Winding is normalized so
	// the combined boundary walks the outer loop counter-clockwise and the
	// holes clockwise.
	verts := make([]Vec2, 0, len(outer))
	verts = append(verts, outer...)
	if SignedArea(outer) < 0 {
		reverseVec2(verts)
	}

	poly := make([]int, len(outer))
	for i := range poly {
		poly[i] = i
	}

	holeLists := make([][]int, 0, len(holes))
	for _, hole := range holes {
		if len(hole) < 3 {
			continue
		}
		base := len(verts)
		verts = append(verts, hole...)
		hv := verts[base:]
		if SignedArea(hv) > 0 {
			reverseVec2(hv)
		}
		idx := make([]int, len(hole))
		for i := range idx {
			idx[i] = base + i
		}
		holeLists = append(holeLists, idx)
	}

	// Bridge holes rightmost-first so an already-spliced bridge cannot
	// occlude the ray cast for the next hole.
	sortHolesByMaxX(holeLists, verts)
	for _, hole := range holeLists {
		merged, ok := bridgeHole(poly, hole, verts)
		if !ok {
			return nil, nil, errors.New("dwg: hole bridge not found")
		}
		poly = merged
	}

	tris, err := earClip(verts, poly)
	if err != nil {
		return nil, nil, err
	}
	return verts, tris, nil
}

// FanTriangulate triangulates a loop as a triangle fan from its first
// vertex, skipping degenerate triangles. It is wrong for concave regions
// but total, which makes it the last-resort fallback when ear clipping
// cannot resolve a boundary.
func FanTriangulate(loop []Vec2) []uint32 {
	tris := make([]uint32, 0, 3*(len(loop)-2))
	for i := 1; i+1 < len(loop); i++ {
		a, b, c := loop[0], loop[i], loop[i+1]
		if b.Sub(a).Cross(c.Sub(a)) == 0 {
			continue
		}
		tris = append(tris, 0, uint32(i), uint32(i+1))
	}
	return tris
}

func reverseVec2(pts []Vec2) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

func sortHolesByMaxX(holes [][]int, verts []Vec2) {
	maxX := func(idx []int) float64 {
		m := math.Inf(-1)
		for _, i := range idx {
			m = math.Max(m, verts[i].X)
		}
		return m
	}
	for i := 1; i < len(holes); i++ {
		for j := i; j > 0 && maxX(holes[j]) > maxX(holes[j-1]); j-- {
			holes[j], holes[j-1] = holes[j-1], holes[j]
		}
	}
}

// bridgeHole splices a hole index loop into the polygon index loop through
// a bridge edge, duplicating the two bridge endpoints so the result stays a
// single closed boundary.
func bridgeHole(poly, hole []int, verts []Vec2) ([]int, bool) {
	// Rightmost hole vertex: the bridge leaves the hole where it is
	// closest to polygon material on the +X side.
	mi := 0
	for i, idx := range hole {
		if verts[idx].X > verts[hole[mi]].X {
			mi = i
		}
	}
	m := verts[hole[mi]]

	// Cast a ray along +X from m and find the nearest crossing polygon
	// edge; its right-hand endpoint is the initial bridge candidate.
	bestX := math.Inf(1)
	bestP := -1
	n := len(poly)
	for i := 0; i < n; i++ {
		a := verts[poly[i]]
		b := verts[poly[(i+1)%n]]
		if (a.Y > m.Y) == (b.Y > m.Y) {
			continue
		}
		ix := a.X + (m.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
		if ix < m.X || ix >= bestX {
			continue
		}
		bestX = ix
		if a.X > b.X {
			bestP = i
		} else {
			bestP = (i + 1) % n
		}
	}
	if bestP < 0 {
		return nil, false
	}

	// If any reflex polygon vertex lies inside the triangle (m, i, p), the
	// candidate is occluded; connect to the occluder closest in angle to
	// the ray instead.
	p := verts[poly[bestP]]
	ipt := V2(bestX, m.Y)
	bestAngle := math.Inf(1)
	for i := 0; i < n; i++ {
		prev := verts[poly[(i+n-1)%n]]
		cur := verts[poly[i]]
		next := verts[poly[(i+1)%n]]
		if cur == p || cur == m {
			continue
		}
		if cur.Sub(prev).Cross(next.Sub(cur)) >= 0 {
			continue // convex, cannot occlude
		}
		if !pointInTriangle(cur, m, ipt, p) {
			continue
		}
		d := cur.Sub(m)
		angle := math.Abs(math.Atan2(d.Y, d.X))
		if angle < bestAngle {
			bestAngle = angle
			bestP = i
			p = cur
		}
	}

	// Splice: ...poly[bestP], hole[mi..], hole[..mi], hole[mi], poly[bestP]...
	out := make([]int, 0, len(poly)+len(hole)+2)
	out = append(out, poly[:bestP+1]...)
	for i := 0; i <= len(hole); i++ {
		out = append(out, hole[(mi+i)%len(hole)])
	}
	out = append(out, poly[bestP:]...)
	return out, true
}

// earClip triangulates the counter-clockwise boundary given as indices into
// verts. It returns errNoEar when a full pass finds no clippable ear.
func earClip(verts []Vec2, poly []int) ([]uint32, error) {
	idx := append([]int(nil), poly...)
	tris := make([]uint32, 0, 3*(len(idx)-2))

	for len(idx) > 3 {
		clipped := false
		n := len(idx)
		for i := 0; i < n; i++ {
			prev := idx[(i+n-1)%n]
			cur := idx[i]
			next := idx[(i+1)%n]
			a, b, c := verts[prev], verts[cur], verts[next]

			cross := b.Sub(a).Cross(c.Sub(b))
			if cross == 0 {
				// Degenerate ear: drop the vertex, emit nothing.
				idx = append(idx[:i], idx[i+1:]...)
				clipped = true
				break
			}
			if cross < 0 {
				continue // reflex
			}
			if anyVertexInTriangle(verts, idx, prev, cur, next, a, b, c) {
				continue
			}
			tris = append(tris, uint32(prev), uint32(cur), uint32(next))
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, errNoEar
		}
	}
	if len(idx) == 3 {
		a, b, c := verts[idx[0]], verts[idx[1]], verts[idx[2]]
		if b.Sub(a).Cross(c.Sub(b)) != 0 {
			tris = append(tris, uint32(idx[0]), uint32(idx[1]), uint32(idx[2]))
		}
	}
	return tris, nil
}

// anyVertexInTriangle reports whether any remaining boundary vertex other
// than the ear's corners (or coordinate duplicates of them, which bridge
// splicing produces) lies inside the candidate ear.
func anyVertexInTriangle(verts []Vec2, idx []int, ia, ib, ic int, a, b, c Vec2) bool {
	for _, i := range idx {
		if i == ia || i == ib || i == ic {
			continue
		}
		p := verts[i]
		if p == a || p == b || p == c {
			continue
		}
		if pointInTriangle(p, a, b, c) {
			return true
		}
	}
	return false
}

func pointInTriangle(p, a, b, c Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
