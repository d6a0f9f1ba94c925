package dwg

import (
	"math"
	"strings"
	"sync"
	"sync/atomic"
)

// resolveContext is the transient value threaded through recursive
// resolution: the accumulated transform, the color inherited from the
// containing block instance, and the chain of block names currently being
// expanded. It is passed by value and the in-progress chain is a persistent
// linked list, so a caller's context is intact after any child returns,
// error paths included.
type resolveContext struct {
	transform Matrix
	inherited *RGB
	expanding *blockChain
}

// blockChain is the immutable stack of block names on the current
// expansion path, used to detect cyclic block references.
type blockChain struct {
	name string
	next *blockChain
}

func (c *blockChain) push(name string) *blockChain {
	return &blockChain{name: name, next: c}
}

func (c *blockChain) contains(name string) bool {
	for n := c; n != nil; n = n.next {
		if strings.EqualFold(n.name, name) {
			return true
		}
	}
	return false
}

// output collects the records, diagnostics, and counts produced while
// resolving one top-level entity's subtree.
type output struct {
	records []Record
	diags   []Diagnostic
	stats   Stats
}

func (o *output) diag(d Diagnostic) {
	logger().Warn("resolution diagnostic", "kind", d.Kind.String(), "handle", d.Handle, "block", d.Block, "detail", d.Message)
	o.diags = append(o.diags, d)
}

// resolveFunc resolves one entity of a fixed kind into out.
type resolveFunc func(r *resolver, e Entity, ctx resolveContext, out *output)

// resolver drives one resolution pass. The registry maps each known entity
// kind to exactly one resolver, so dispatch partitions the entity space:
// no two resolvers can claim the same entity.
type resolver struct {
	doc      *Document
	opts     options
	registry map[Kind]resolveFunc
}

func newResolver(doc *Document, opts options) *resolver {
	r := &resolver{doc: doc, opts: opts}
	r.registry = map[Kind]resolveFunc{
		KindLine:      (*resolver).resolveLine,
		KindArc:       (*resolver).resolveArc,
		KindCircle:    (*resolver).resolveCircle,
		KindEllipse:   (*resolver).resolveEllipse,
		KindPolyline:  (*resolver).resolvePolyline,
		KindSpline:    (*resolver).resolveSpline,
		KindHatch:     (*resolver).resolveHatch,
		KindInsert:    (*resolver).resolveInsert,
		KindPoint:     (*resolver).resolvePoint,
		KindSolid:     (*resolver).resolveSolid,
		KindFace3D:    (*resolver).resolveFace3D,
		KindDimension: (*resolver).resolveDimension,
	}
	return r
}

// Resolve turns a document into an ordered sequence of draw records.
// Records appear in input entity order; block instances expand depth-first
// in block definition order. The pass never fails as a whole: per-entity
// problems surface as diagnostics in the result.
func Resolve(doc *Document, opts ...Option) *Result {
	o := defaultResolveOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := newResolver(doc, o)
	root := resolveContext{transform: Identity()}

	// One pre-sized slot per top-level entity keeps output deterministic
	// even when slots resolve on different workers.
	slots := make([]output, len(doc.Entities))
	resolveSlot := func(i int) {
		r.resolveEntity(doc.Entities[i], root, &slots[i])
	}

	if o.workers > 1 && len(doc.Entities) > 1 {
		var cursor atomic.Int64
		var wg sync.WaitGroup
		workers := o.workers
		if workers > len(doc.Entities) {
			workers = len(doc.Entities)
		}
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for {
					i := int(cursor.Add(1)) - 1
					if i >= len(doc.Entities) {
						return
					}
					resolveSlot(i)
				}
			}()
		}
		wg.Wait()
	} else {
		for i := range doc.Entities {
			resolveSlot(i)
		}
	}

	res := &Result{}
	for i := range slots {
		res.Records = append(res.Records, slots[i].records...)
		res.Diags = append(res.Diags, slots[i].diags...)
		res.Stats.Resolved += slots[i].stats.Resolved
		res.Stats.Skipped += slots[i].stats.Skipped
		res.Stats.Errored += slots[i].stats.Errored
	}
	logger().Debug("resolution pass complete",
		"records", len(res.Records),
		"resolved", res.Stats.Resolved,
		"skipped", res.Stats.Skipped,
		"errored", res.Stats.Errored)
	return res
}

// resolveEntity dispatches one entity by exact kind match and accounts for
// its outcome. Unregistered kinds yield a skipped-entity diagnostic, not an
// error.
func (r *resolver) resolveEntity(e Entity, ctx resolveContext, out *output) {
	fn, ok := r.registry[e.Kind()]
	if !ok {
		out.diag(diagf(DiagUnknownEntity, e.Head().Handle, "", "no resolver for %s", e.Kind()))
		out.stats.Skipped++
		return
	}
	records := len(out.records)
	diags := len(out.diags)
	fn(r, e, ctx, out)
	switch {
	case len(out.records) > records:
		out.stats.Resolved++
	case len(out.diags) > diags:
		out.stats.Errored++
	default:
		out.stats.Skipped++
	}
}

// color resolves the final record color for an entity under the current
// context, honoring the monochrome and default-color options.
func (r *resolver) color(h *Header, ctx resolveContext) RGB {
	if r.opts.monochrome {
		return r.opts.defaultColor
	}
	return resolveColorDefault(h, r.doc, ctx.inherited, r.opts.defaultColor)
}

// emitPolyline appends a polyline record, dropping empty geometry.
func (r *resolver) emitPolyline(h *Header, ctx resolveContext, pts []Vec3, out *output) {
	if len(pts) == 0 {
		return
	}
	out.records = append(out.records, Record{
		Layer:         h.Layer,
		Handle:        h.Handle,
		Color:         r.color(h, ctx),
		Polyline:      pts,
		Linetype:      h.Linetype,
		LinetypeScale: h.LinetypeScale,
	})
}

// emitMesh appends a mesh record, dropping empty geometry.
func (r *resolver) emitMesh(h *Header, ctx resolveContext, mesh *Mesh, out *output) {
	if mesh == nil || len(mesh.Indices) == 0 {
		return
	}
	out.records = append(out.records, Record{
		Layer:         h.Layer,
		Handle:        h.Handle,
		Color:         r.color(h, ctx),
		Mesh:          mesh,
		Linetype:      h.Linetype,
		LinetypeScale: h.LinetypeScale,
	})
}

// lift2D raises planar points at the given elevation into world space
// through the entity's OCS frame and the accumulated transform.
func lift2D(pts []Vec2, elevation float64, extrusion Vec3, ctx resolveContext) []Vec3 {
	m := ctx.transform.Mul(ocsMatrix(extrusion))
	out := make([]Vec3, len(pts))
	for i, p := range pts {
		out[i] = m.Apply(Vec3From2(p, elevation))
	}
	return out
}

func (r *resolver) resolveLine(e Entity, ctx resolveContext, out *output) {
	line := e.(*Line)
	pts := []Vec3{ctx.transform.Apply(line.Start), ctx.transform.Apply(line.End)}
	r.emitPolyline(&line.Header, ctx, pts, out)
}

func (r *resolver) resolveArc(e Entity, ctx resolveContext, out *output) {
	arc := e.(*Arc)
	if arc.Radius <= 0 {
		out.diag(diagf(DiagDegenerateGeometry, arc.Handle, "", "arc radius %v", arc.Radius))
		return
	}
	pts := SampleArc(arc.Center.XY(), arc.Radius, arc.StartAngle, arc.EndAngle, true, r.opts.arcSegments)
	r.emitPolyline(&arc.Header, ctx, lift2D(pts, arc.Center.Z, arc.Extrusion, ctx), out)
}

func (r *resolver) resolveCircle(e Entity, ctx resolveContext, out *output) {
	circle := e.(*Circle)
	if circle.Radius <= 0 {
		out.diag(diagf(DiagDegenerateGeometry, circle.Handle, "", "circle radius %v", circle.Radius))
		return
	}
	pts := SampleCircle(circle.Center.XY(), circle.Radius, r.opts.arcSegments)
	r.emitPolyline(&circle.Header, ctx, lift2D(pts, circle.Center.Z, circle.Extrusion, ctx), out)
}

func (r *resolver) resolveEllipse(e Entity, ctx resolveContext, out *output) {
	el := e.(*Ellipse)
	major := el.MajorAxis.Length()
	if major <= 0 || el.Ratio <= 0 {
		out.diag(diagf(DiagMalformedEntity, el.Handle, "", "ellipse axes %v ratio %v", major, el.Ratio))
		return
	}
	rotation := math.Atan2(el.MajorAxis.Y, el.MajorAxis.X)
	start, end := el.Start, el.End
	if start == end {
		start, end = 0, 2*math.Pi
	}
	pts := SampleEllipse(el.Center.XY(), major, major*el.Ratio, rotation, start, end, r.opts.arcSegments)
	r.emitPolyline(&el.Header, ctx, lift2D(pts, el.Center.Z, defaultExtrusion, ctx), out)
}

func (r *resolver) resolvePolyline(e Entity, ctx resolveContext, out *output) {
	pl := e.(*Polyline)
	if len(pl.Vertices) < 2 {
		out.diag(diagf(DiagMalformedEntity, pl.Handle, "", "polyline has %d vertices", len(pl.Vertices)))
		return
	}
	pts := expandPolyVertices(pl.Vertices, pl.Closed)
	if pl.Closed {
		pts = append(pts, pl.Vertices[0].Point.XY())
	}
	elevation := pl.Vertices[0].Point.Z
	r.emitPolyline(&pl.Header, ctx, lift2D(pts, elevation, pl.Extrusion, ctx), out)
}

func (r *resolver) resolveSpline(e Entity, ctx resolveContext, out *output) {
	sp := e.(*Spline)
	if len(sp.ControlPoints) < 2 {
		out.diag(diagf(DiagMalformedEntity, sp.Handle, "", "spline has %d control points", len(sp.ControlPoints)))
		return
	}
	pts := EvaluateBSpline(sp.ControlPoints, sp.Knots, sp.Degree, r.opts.splineSamples)
	if sp.Closed && len(pts) > 0 {
		pts = append(pts, pts[0])
	}
	r.emitPolyline(&sp.Header, ctx, ctx.transform.ApplyAll(pts), out)
}

func (r *resolver) resolveHatch(e Entity, ctx resolveContext, out *output) {
	h := e.(*Hatch)
	var loops [][]Vec2
	elevation := 0.0
	for _, loop := range h.Loops {
		if len(loop.Vertices) > 0 && elevation == 0 {
			elevation = loop.Vertices[0].Point.Z
		}
		pts := expandPolyVertices(loop.Vertices, true)
		pts = CleanLoop(pts, r.opts.cleanEpsilon)
		if len(pts) < 3 {
			continue // dropped silently per the cleaning contract
		}
		loops = append(loops, pts)
	}
	if len(loops) == 0 {
		out.diag(diagf(DiagDegenerateGeometry, h.Handle, "", "hatch has no usable boundary loops"))
		return
	}

	mesh := &Mesh{}
	for _, node := range NestLoops(loops, h.Style) {
		if !node.Fill {
			continue
		}
		verts, tris, err := TriangulateWithHoles(node.Points, node.holes(h.Style))
		if err != nil {
			// Severe self-intersection: retry the outer boundary alone,
			// then give up on exactness and fan the loop.
			logger().Warn("hatch loop triangulation failed, dropping holes", "handle", h.Handle, "err", err)
			verts, tris, err = TriangulateWithHoles(node.Points, nil)
			if err != nil {
				verts, tris = node.Points, FanTriangulate(node.Points)
			}
		}
		base := uint32(len(mesh.Vertices))
		for _, v := range verts {
			mesh.Vertices = append(mesh.Vertices, Vec3From2(v, elevation))
		}
		for _, t := range tris {
			mesh.Indices = append(mesh.Indices, base+t)
		}
	}
	if len(mesh.Indices) == 0 {
		out.diag(diagf(DiagDegenerateGeometry, h.Handle, "", "hatch produced no triangles"))
		return
	}
	m := ctx.transform.Mul(ocsMatrix(h.Extrusion))
	mesh.Vertices = m.ApplyAll(mesh.Vertices)
	r.emitMesh(&h.Header, ctx, mesh, out)
}

func (r *resolver) resolvePoint(e Entity, ctx resolveContext, out *output) {
	p := e.(*Point)
	pts := lift2D([]Vec2{p.Position.XY()}, p.Position.Z, p.Extrusion, ctx)
	r.emitPolyline(&p.Header, ctx, pts, out)
}

func (r *resolver) resolveSolid(e Entity, ctx resolveContext, out *output) {
	s := e.(*Solid)
	mesh := quadMesh(s.Corners, true)
	if mesh == nil {
		out.diag(diagf(DiagDegenerateGeometry, s.Handle, "", "solid corners are collinear"))
		return
	}
	m := ctx.transform.Mul(ocsMatrix(s.Extrusion))
	mesh.Vertices = m.ApplyAll(mesh.Vertices)
	r.emitMesh(&s.Header, ctx, mesh, out)
}

func (r *resolver) resolveFace3D(e Entity, ctx resolveContext, out *output) {
	f := e.(*Face3D)
	mesh := quadMesh(f.Corners, false)
	if mesh == nil {
		out.diag(diagf(DiagDegenerateGeometry, f.Handle, "", "face corners are collinear"))
		return
	}
	mesh.Vertices = ctx.transform.ApplyAll(mesh.Vertices)
	r.emitMesh(&f.Header, ctx, mesh, out)
}

// quadMesh builds the two-triangle mesh for a four-corner face. zigzag
// marks the source convention where the last two corners arrive swapped
// relative to perimeter order (SOLID); a fourth corner equal to the third
// collapses to a single triangle. Returns nil when every triangle is
// degenerate.
func quadMesh(corners [4]Vec3, zigzag bool) *Mesh {
	mesh := &Mesh{Vertices: corners[:]}
	tri := corners[3] == corners[2]
	addTri := func(a, b, c uint32) {
		u := mesh.Vertices[b].Sub(mesh.Vertices[a])
		v := mesh.Vertices[c].Sub(mesh.Vertices[a])
		if u.Cross(v).Length() == 0 {
			return
		}
		mesh.Indices = append(mesh.Indices, a, b, c)
	}
	addTri(0, 1, 2)
	if !tri {
		if zigzag {
			addTri(2, 1, 3)
		} else {
			addTri(0, 2, 3)
		}
	}
	if len(mesh.Indices) == 0 {
		return nil
	}
	return mesh
}

func (r *resolver) resolveInsert(e Entity, ctx resolveContext, out *output) {
	ins := e.(*Insert)
	r.expandBlockRef(&ins.Header, ins, ctx, out)
}

func (r *resolver) resolveDimension(e Entity, ctx resolveContext, out *output) {
	dim := e.(*Dimension)
	if dim.BlockName == "" {
		out.diag(diagf(DiagMalformedEntity, dim.Handle, "", "dimension has no block reference"))
		return
	}
	// A dimension renders through its pre-generated block at the identity
	// placement: the block geometry is already in final coordinates.
	ref := &Insert{
		Header:    dim.Header,
		BlockName: dim.BlockName,
		Scale:     Vec3{X: 1, Y: 1, Z: 1},
	}
	r.expandBlockRef(&dim.Header, ref, ctx, out)
}

// expandBlockRef resolves one block reference: cycle guard, definition
// lookup with placeholder fallback, transform composition, inherited-color
// push, recursive child resolution, and array replication.
func (r *resolver) expandBlockRef(h *Header, ins *Insert, ctx resolveContext, out *output) {
	if ctx.expanding.contains(ins.BlockName) {
		out.diag(diagf(DiagCyclicBlockReference, h.Handle, ins.BlockName, "block expansion re-enters itself"))
		return
	}
	block := r.doc.BlockByName(ins.BlockName)
	if block == nil {
		out.diag(diagf(DiagUnresolvableReference, h.Handle, ins.BlockName, "no block definition"))
		out.records = append(out.records, Record{
			Layer:       h.Layer,
			Handle:      h.Handle,
			Color:       r.color(h, ctx),
			Polyline:    []Vec3{ctx.transform.Apply(ins.Position)},
			Placeholder: true,
		})
		return
	}

	local := InsertTransform(ins.Position, block.Base, ins.Scale, ins.Rotation, ins.Extrusion, r.opts.unitScale, r.opts.applyBasePoint)
	inherited := resolveColorDefault(h, r.doc, ctx.inherited, r.opts.defaultColor)
	child := resolveContext{
		transform: ComposeNested(ctx.transform, local),
		inherited: &inherited,
		expanding: ctx.expanding.push(ins.BlockName),
	}

	var sub output
	for _, entity := range block.Entities {
		r.resolveEntity(entity, child, &sub)
	}
	out.diags = append(out.diags, sub.diags...)
	out.stats.Resolved += sub.stats.Resolved
	out.stats.Skipped += sub.stats.Skipped
	out.stats.Errored += sub.stats.Errored

	// Array instancing replicates the fully resolved subtree by
	// translation instead of re-resolving the block per cell. Spacings are
	// already in the instance's scaled units, so the offset moves through
	// the placement's rotation but not its scale.
	offsets := ArrayOffsets(ins.Rows, ins.Cols, ins.RowSpacing, ins.ColSpacing)
	frame := ComposeNested(ctx.transform, InsertTransform(ins.Position, Vec3{}, Vec3{X: 1, Y: 1, Z: 1}, ins.Rotation, ins.Extrusion, 1, false))
	for _, off := range offsets {
		if off == (Vec3{}) {
			out.records = append(out.records, sub.records...)
			continue
		}
		world := frame.Apply(off).Sub(frame.Apply(Vec3{}))
		for _, rec := range sub.records {
			out.records = append(out.records, translateRecord(rec, world))
		}
	}
}

// translateRecord returns a copy of rec with its geometry shifted by off.
func translateRecord(rec Record, off Vec3) Record {
	if rec.Polyline != nil {
		pts := make([]Vec3, len(rec.Polyline))
		for i, p := range rec.Polyline {
			pts[i] = p.Add(off)
		}
		rec.Polyline = pts
	}
	if rec.Mesh != nil {
		verts := make([]Vec3, len(rec.Mesh.Vertices))
		for i, p := range rec.Mesh.Vertices {
			verts[i] = p.Add(off)
		}
		rec.Mesh = &Mesh{Vertices: verts, Indices: rec.Mesh.Indices}
	}
	return rec
}
