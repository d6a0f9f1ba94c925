// Package dwg resolves decoded CAD drawing records into renderer-agnostic
// geometry with final visual attributes.
//
// # Overview
//
// dwg takes an in-memory document — entity records, a layer table, and a
// block-name to entity-list map, all produced by an external binary decoder —
// and turns it into an ordered sequence of draw records: polyline point
// sequences and indexed triangle meshes, each carrying a fully resolved
// 24-bit color. It reproduces AutoCAD's conventions for object coordinate
// systems (the arbitrary axis algorithm), bulge-encoded circular arcs,
// clamped B-splines, hatch loop nesting with the even-odd fill rule, and the
// BYLAYER/BYBLOCK color inheritance chain across nested block instances.
//
// # Quick Start
//
//	import "github.com/dwgkit/dwg"
//
//	doc := &dwg.Document{
//	    Entities: entities,
//	    Layers:   layers,
//	    Blocks:   blocks,
//	}
//
//	res := dwg.Resolve(doc)
//	for _, rec := range res.Records {
//	    // rec.Polyline or rec.Mesh, rec.Color, rec.Layer
//	}
//
// # Architecture
//
// The library is organized into:
//   - Data model: Document, Entity kinds, Layer, Block
//   - Geometry: Matrix (4x4 transforms), curve tessellation, B-spline evaluation
//   - Fill: polygon cleaning, loop nesting, triangulation with holes
//   - Attributes: ACI palette and color precedence resolution
//   - Dispatch: Resolve walks entities and recurses through block inserts
//
// # Coordinate System
//
// World coordinates are right-handed with Z up, matching the source drawing.
// Entities planar in an object coordinate system (OCS) are lifted to world
// space via the arbitrary axis construction. Angles are in radians and
// increase counter-clockwise.
//
// # Error Model
//
// No single malformed entity aborts a resolution pass. Malformed geometry,
// unresolvable block references, degenerate curves, and cyclic block
// references each produce a Diagnostic and the pass continues; Result.Stats
// reports aggregate resolved/skipped/errored counts.
package dwg
