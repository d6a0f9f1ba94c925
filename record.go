package dwg

import "math"

// Mesh is an indexed triangle mesh: every three consecutive indices form
// one triangle into Vertices.
type Mesh struct {
	Vertices []Vec3
	Indices  []uint32
}

// Record is one resolved draw record. Exactly one of Polyline and Mesh is
// set: line-like entities produce an ordered point sequence, filled regions
// an indexed triangle mesh. Records are never mutated after emission.
type Record struct {
	// Layer is the owning layer name.
	Layer string
	// Handle identifies the originating entity.
	Handle string
	// Color is the fully resolved 24-bit color.
	Color RGB
	// Polyline is the world-space point sequence for line-like geometry.
	Polyline []Vec3
	// Mesh is the world-space triangle mesh for filled regions.
	Mesh *Mesh
	// Linetype and LinetypeScale pass through untouched for downstream
	// stroking; no dash generation happens here.
	Linetype      string
	LinetypeScale float64
	// Placeholder marks the stand-in record emitted for an insert whose
	// block definition is missing.
	Placeholder bool
}

// Stats aggregates the outcome of a resolution pass.
type Stats struct {
	// Resolved counts entities that produced at least one record.
	Resolved int
	// Skipped counts entities with no registered resolver or geometry
	// that degenerated to nothing.
	Skipped int
	// Errored counts entities that produced an error-class diagnostic.
	Errored int
}

// Result is the output of a resolution pass: draw records in input entity
// order, plus diagnostics and aggregate counts.
type Result struct {
	Records []Record
	Diags   []Diagnostic
	Stats   Stats
}

// Bounds returns the axis-aligned bounding box over every record's
// geometry. ok is false when the result holds no points at all.
func (r *Result) Bounds() (min, max Vec3, ok bool) {
	min = V3(math.Inf(1), math.Inf(1), math.Inf(1))
	max = V3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	grow := func(p Vec3) {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		min.Z = math.Min(min.Z, p.Z)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
		max.Z = math.Max(max.Z, p.Z)
		ok = true
	}
	for _, rec := range r.Records {
		for _, p := range rec.Polyline {
			grow(p)
		}
		if rec.Mesh != nil {
			for _, p := range rec.Mesh.Vertices {
				grow(p)
			}
		}
	}
	if !ok {
		return Vec3{}, Vec3{}, false
	}
	return min, max, true
}
