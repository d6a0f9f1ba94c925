package dwg

// Kind identifies an entity's type. The set is closed: dispatch is an
// exhaustive match over these values, so no two resolvers can claim the
// same entity and unhandled kinds are impossible to add silently.
type Kind int

// Entity kinds.
const (
	KindLine Kind = iota
	KindArc
	KindCircle
	KindEllipse
	KindPolyline
	KindSpline
	KindHatch
	KindInsert
	KindPoint
	KindSolid
	KindFace3D
	KindDimension
)

var kindNames = [...]string{
	KindLine:      "LINE",
	KindArc:       "ARC",
	KindCircle:    "CIRCLE",
	KindEllipse:   "ELLIPSE",
	KindPolyline:  "POLYLINE",
	KindSpline:    "SPLINE",
	KindHatch:     "HATCH",
	KindInsert:    "INSERT",
	KindPoint:     "POINT",
	KindSolid:     "SOLID",
	KindFace3D:    "3DFACE",
	KindDimension: "DIMENSION",
}

// String returns the drawing-format name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// Header holds the fields common to every entity record: identity, owning
// layer, color sources, and linetype. Color fields are pointers because each
// is independently optional in the source records; nil means absent.
//
// Color-index semantics: 0 is BYBLOCK (inherit from the containing block
// instance), 256 is BYLAYER (use the owning layer's resolved color), 1-255
// index the ACI palette. Any other value degrades to the next precedence
// tier during resolution.
type Header struct {
	Handle        string
	Layer         string
	TrueColor     *uint32 // 24-bit RGB
	ColorIndex    *int
	RawColor      *uint32 // packed BGR
	Linetype      string
	LinetypeScale float64
}

// Entity is the sealed interface over the closed set of drawing record
// kinds. Records are immutable once produced by the decoder; this package
// never mutates them.
type Entity interface {
	// Kind returns the entity's type tag.
	Kind() Kind
	// Head returns the common header fields.
	Head() *Header

	isEntity()
}

// Line is a straight segment between two world-space points.
type Line struct {
	Header
	Start, End Vec3
}

// Arc is a circular arc in the plane defined by Extrusion. Center is in
// object coordinates; angles are in radians, counter-clockwise.
type Arc struct {
	Header
	Center     Vec3
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Extrusion  Vec3
}

// Circle is a full circle in the plane defined by Extrusion.
type Circle struct {
	Header
	Center    Vec3
	Radius    float64
	Extrusion Vec3
}

// Ellipse is an elliptical arc. MajorAxis is the vector from Center to the
// major axis endpoint (world coordinates); Ratio is minor/major. Start and
// End are parametric angles in radians; equal values mean a full ellipse.
type Ellipse struct {
	Header
	Center    Vec3
	MajorAxis Vec3
	Ratio     float64
	Start     float64
	End       float64
}

// PolyVertex is one polyline vertex with its outgoing bulge. A non-zero
// bulge (tangent of a quarter of the included angle, sign giving direction)
// turns the segment to the next vertex into a circular arc.
type PolyVertex struct {
	Point Vec3
	Bulge float64
}

// Polyline is a connected vertex sequence, optionally closed, drawn in the
// plane defined by Extrusion.
type Polyline struct {
	Header
	Vertices  []PolyVertex
	Closed    bool
	Extrusion Vec3
}

// Spline is a B-spline curve over world-space control points. An empty Knots
// slice means a uniform clamped knot vector is generated from the control
// point count and degree.
type Spline struct {
	Header
	ControlPoints []Vec3
	Knots         []float64
	Degree        int
	Closed        bool
}

// HatchStyle selects which nesting levels of a hatch fill.
type HatchStyle int

const (
	// HatchNormal applies the even-odd parity rule at every depth.
	HatchNormal HatchStyle = iota
	// HatchOuter fills only the outermost area: everything beyond
	// nesting level 1 is forced to not fill.
	HatchOuter
	// HatchIgnore ignores holes entirely: only level 0 loops fill.
	HatchIgnore
)

// HatchLoop is one closed boundary loop of a hatch, as a bulge-encoded
// vertex sequence in the hatch plane.
type HatchLoop struct {
	Vertices []PolyVertex
}

// Hatch is a filled region bounded by one or more closed loops.
type Hatch struct {
	Header
	Loops     []HatchLoop
	Style     HatchStyle
	Extrusion Vec3
}

// Insert places a block instance: translation to Position, rotation about
// the local Z axis, per-axis scaling, in the plane defined by Extrusion.
// Rows/Cols above 1 replicate the instance on a grid with the given
// spacings (already expressed in the instance's own scaled units).
type Insert struct {
	Header
	BlockName  string
	Position   Vec3
	Scale      Vec3
	Rotation   float64
	Extrusion  Vec3
	Rows, Cols int
	RowSpacing float64
	ColSpacing float64
}

// Point is a single position marker.
type Point struct {
	Header
	Position  Vec3
	Extrusion Vec3
}

// Solid is a filled quadrilateral (or triangle, when the fourth corner
// repeats the third). Corner order follows the source convention where the
// last two corners are swapped relative to perimeter order.
type Solid struct {
	Header
	Corners   [4]Vec3
	Extrusion Vec3
}

// Face3D is a planar face with three or four world-space corners.
type Face3D struct {
	Header
	Corners [4]Vec3
}

// Dimension is a dimension entity rendered through its pre-generated
// anonymous block; resolution follows BlockName like an insert at the
// identity placement.
type Dimension struct {
	Header
	BlockName string
	Position  Vec3
}

// Kind implementations.

func (*Line) Kind() Kind      { return KindLine }
func (*Arc) Kind() Kind       { return KindArc }
func (*Circle) Kind() Kind    { return KindCircle }
func (*Ellipse) Kind() Kind   { return KindEllipse }
func (*Polyline) Kind() Kind  { return KindPolyline }
func (*Spline) Kind() Kind    { return KindSpline }
func (*Hatch) Kind() Kind     { return KindHatch }
func (*Insert) Kind() Kind    { return KindInsert }
func (*Point) Kind() Kind     { return KindPoint }
func (*Solid) Kind() Kind     { return KindSolid }
func (*Face3D) Kind() Kind    { return KindFace3D }
func (*Dimension) Kind() Kind { return KindDimension }

// Head returns the common header fields.
func (h *Header) Head() *Header { return h }

func (*Line) isEntity()      {}
func (*Arc) isEntity()       {}
func (*Circle) isEntity()    {}
func (*Ellipse) isEntity()   {}
func (*Polyline) isEntity()  {}
func (*Spline) isEntity()    {}
func (*Hatch) isEntity()     {}
func (*Insert) isEntity()    {}
func (*Point) isEntity()     {}
func (*Solid) isEntity()     {}
func (*Face3D) isEntity()    {}
func (*Dimension) isEntity() {}
