package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/dwgkit/dwg"
)

// The JSON dump format mirrors what the external binary decoder emits:
// entity records with a type tag, a layer table, and block definitions.
// Angles arrive in degrees and are converted to the core's radians here.

type jsonVec = [3]float64

type jsonDocument struct {
	Layers   []jsonLayer  `json:"layers"`
	Blocks   []jsonBlock  `json:"blocks"`
	Entities []jsonEntity `json:"entities"`
}

type jsonLayer struct {
	Name       string  `json:"name"`
	TrueColor  *uint32 `json:"trueColor"`
	ColorIndex *int    `json:"colorIndex"`
	RawColor   *uint32 `json:"rawColor"`
	Frozen     bool    `json:"frozen"`
	Off        bool    `json:"off"`
	Locked     bool    `json:"locked"`
}

type jsonBlock struct {
	Name     string       `json:"name"`
	Base     jsonVec      `json:"base"`
	Entities []jsonEntity `json:"entities"`
}

type jsonVertex struct {
	Point jsonVec `json:"point"`
	Bulge float64 `json:"bulge"`
}

type jsonLoop struct {
	Vertices []jsonVertex `json:"vertices"`
}

type jsonEntity struct {
	Type          string  `json:"type"`
	Handle        string  `json:"handle"`
	Layer         string  `json:"layer"`
	TrueColor     *uint32 `json:"trueColor"`
	ColorIndex    *int    `json:"colorIndex"`
	RawColor      *uint32 `json:"rawColor"`
	Linetype      string  `json:"linetype"`
	LinetypeScale float64 `json:"linetypeScale"`

	Start      *jsonVec     `json:"start"`
	End        *jsonVec     `json:"end"`
	Center     *jsonVec     `json:"center"`
	Radius     float64      `json:"radius"`
	StartAngle float64      `json:"startAngle"`
	EndAngle   float64      `json:"endAngle"`
	Extrusion  *jsonVec     `json:"extrusion"`
	MajorAxis  *jsonVec     `json:"majorAxis"`
	Ratio      float64      `json:"ratio"`
	Vertices   []jsonVertex `json:"vertices"`
	Closed     bool         `json:"closed"`
	Control    []jsonVec    `json:"controlPoints"`
	Knots      []float64    `json:"knots"`
	Degree     int          `json:"degree"`
	Loops      []jsonLoop   `json:"loops"`
	Style      string       `json:"style"`
	Block      string       `json:"block"`
	Position   *jsonVec     `json:"position"`
	Scale      *jsonVec     `json:"scale"`
	Rotation   float64      `json:"rotation"`
	Rows       int          `json:"rows"`
	Cols       int          `json:"cols"`
	RowSpacing float64      `json:"rowSpacing"`
	ColSpacing float64      `json:"colSpacing"`
	Corners    []jsonVec    `json:"corners"`
}

// loadDocument reads a JSON decoder dump into an in-memory document.
func loadDocument(path string) (*dwg.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var jd jsonDocument
	if err := json.Unmarshal(data, &jd); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	doc := &dwg.Document{
		Layers: make(map[string]*dwg.Layer, len(jd.Layers)),
		Blocks: make(map[string]*dwg.Block, len(jd.Blocks)),
	}
	for _, l := range jd.Layers {
		doc.Layers[l.Name] = &dwg.Layer{
			Name:       l.Name,
			TrueColor:  l.TrueColor,
			ColorIndex: l.ColorIndex,
			RawColor:   l.RawColor,
			Frozen:     l.Frozen,
			Off:        l.Off,
			Locked:     l.Locked,
		}
	}
	for _, b := range jd.Blocks {
		block := &dwg.Block{Name: b.Name, Base: vec(b.Base)}
		for i, je := range b.Entities {
			e, err := convertEntity(je)
			if err != nil {
				return nil, fmt.Errorf("block %s entity %d: %w", b.Name, i, err)
			}
			block.Entities = append(block.Entities, e)
		}
		doc.Blocks[b.Name] = block
	}
	for i, je := range jd.Entities {
		e, err := convertEntity(je)
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
		doc.Entities = append(doc.Entities, e)
	}
	return doc, nil
}

func vec(v jsonVec) dwg.Vec3 {
	return dwg.V3(v[0], v[1], v[2])
}

func vecOr(v *jsonVec, fallback dwg.Vec3) dwg.Vec3 {
	if v == nil {
		return fallback
	}
	return vec(*v)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func vertices(vs []jsonVertex) []dwg.PolyVertex {
	out := make([]dwg.PolyVertex, len(vs))
	for i, v := range vs {
		out[i] = dwg.PolyVertex{Point: vec(v.Point), Bulge: v.Bulge}
	}
	return out
}

func corners(vs []jsonVec) [4]dwg.Vec3 {
	var out [4]dwg.Vec3
	for i := 0; i < len(vs) && i < 4; i++ {
		out[i] = vec(vs[i])
	}
	if len(vs) == 3 {
		out[3] = out[2]
	}
	return out
}

func convertEntity(je jsonEntity) (dwg.Entity, error) {
	head := dwg.Header{
		Handle:        je.Handle,
		Layer:         je.Layer,
		TrueColor:     je.TrueColor,
		ColorIndex:    je.ColorIndex,
		RawColor:      je.RawColor,
		Linetype:      je.Linetype,
		LinetypeScale: je.LinetypeScale,
	}
	ext := vecOr(je.Extrusion, dwg.V3(0, 0, 1))
	one := dwg.V3(1, 1, 1)

	switch strings.ToUpper(je.Type) {
	case "LINE":
		return &dwg.Line{Header: head, Start: vecOr(je.Start, dwg.Vec3{}), End: vecOr(je.End, dwg.Vec3{})}, nil
	case "ARC":
		return &dwg.Arc{
			Header:     head,
			Center:     vecOr(je.Center, dwg.Vec3{}),
			Radius:     je.Radius,
			StartAngle: radians(je.StartAngle),
			EndAngle:   radians(je.EndAngle),
			Extrusion:  ext,
		}, nil
	case "CIRCLE":
		return &dwg.Circle{Header: head, Center: vecOr(je.Center, dwg.Vec3{}), Radius: je.Radius, Extrusion: ext}, nil
	case "ELLIPSE":
		return &dwg.Ellipse{
			Header:    head,
			Center:    vecOr(je.Center, dwg.Vec3{}),
			MajorAxis: vecOr(je.MajorAxis, dwg.Vec3{}),
			Ratio:     je.Ratio,
			Start:     radians(je.StartAngle),
			End:       radians(je.EndAngle),
		}, nil
	case "LWPOLYLINE", "POLYLINE":
		return &dwg.Polyline{Header: head, Vertices: vertices(je.Vertices), Closed: je.Closed, Extrusion: ext}, nil
	case "SPLINE":
		cp := make([]dwg.Vec3, len(je.Control))
		for i, c := range je.Control {
			cp[i] = vec(c)
		}
		return &dwg.Spline{Header: head, ControlPoints: cp, Knots: je.Knots, Degree: je.Degree, Closed: je.Closed}, nil
	case "HATCH":
		loops := make([]dwg.HatchLoop, len(je.Loops))
		for i, l := range je.Loops {
			loops[i] = dwg.HatchLoop{Vertices: vertices(l.Vertices)}
		}
		return &dwg.Hatch{Header: head, Loops: loops, Style: hatchStyle(je.Style), Extrusion: ext}, nil
	case "INSERT":
		return &dwg.Insert{
			Header:     head,
			BlockName:  je.Block,
			Position:   vecOr(je.Position, dwg.Vec3{}),
			Scale:      vecOr(je.Scale, one),
			Rotation:   radians(je.Rotation),
			Extrusion:  ext,
			Rows:       je.Rows,
			Cols:       je.Cols,
			RowSpacing: je.RowSpacing,
			ColSpacing: je.ColSpacing,
		}, nil
	case "POINT":
		return &dwg.Point{Header: head, Position: vecOr(je.Position, dwg.Vec3{}), Extrusion: ext}, nil
	case "SOLID":
		return &dwg.Solid{Header: head, Corners: corners(je.Corners), Extrusion: ext}, nil
	case "3DFACE":
		return &dwg.Face3D{Header: head, Corners: corners(je.Corners)}, nil
	case "DIMENSION":
		return &dwg.Dimension{Header: head, BlockName: je.Block, Position: vecOr(je.Position, dwg.Vec3{})}, nil
	default:
		return nil, fmt.Errorf("unsupported entity type %q", je.Type)
	}
}

func hatchStyle(s string) dwg.HatchStyle {
	switch strings.ToLower(s) {
	case "outer":
		return dwg.HatchOuter
	case "ignore":
		return dwg.HatchIgnore
	default:
		return dwg.HatchNormal
	}
}
