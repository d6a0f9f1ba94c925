package dwg

import (
	"math"
	"sort"
)

// LoopNode is one closed loop placed in the containment forest.
type LoopNode struct {
	// Points is the cleaned loop boundary.
	Points []Vec2
	// Area is the absolute loop area.
	Area float64
	// Parent is the smallest loop containing this one, nil for roots.
	Parent *LoopNode
	// Children are the loops immediately contained by this one.
	Children []*LoopNode
	// Level is the nesting depth from the nearest root.
	Level int
	// Fill reports whether the loop's interior is filled.
	Fill bool

	bounds rect2
}

// containmentSamples is how many evenly spaced child vertices vote in the
// containment test. Boundary-touching loops make a single-point test
// unreliable; a majority over a handful of vertices is robust against one
// sample landing exactly on the candidate parent's edge.
const containmentSamples = 5

// NestLoops builds the containment forest over a set of cleaned closed
// loops and assigns fill parity. Loops are placed in descending area order;
// each loop's parent is the smallest already-placed loop that contains it.
// Fill follows the even-odd rule (roots and islands fill, direct holes do
// not), modified by the hatch style: HatchOuter fills only level 0 and
// keeps level 1 as holes, HatchIgnore fills only level 0 and discards
// deeper loops from hole consideration entirely.
//
// The returned slice holds every node in placement (descending area) order;
// roots are the nodes with a nil Parent.
func NestLoops(loops [][]Vec2, style HatchStyle) []*LoopNode {
	nodes := make([]*LoopNode, 0, len(loops))
	for _, loop := range loops {
		if len(loop) < 3 {
			continue
		}
		nodes = append(nodes, &LoopNode{
			Points: loop,
			Area:   math.Abs(SignedArea(loop)),
			bounds: boundsOf(loop),
		})
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Area > nodes[j].Area
	})

	for i, node := range nodes {
		var parent *LoopNode
		for j := 0; j < i; j++ {
			candidate := nodes[j]
			if !candidate.bounds.containsRect(node.bounds) {
				continue
			}
			if !loopContains(candidate.Points, node.Points) {
				continue
			}
			if parent == nil || candidate.Area < parent.Area {
				parent = candidate
			}
		}
		if parent != nil {
			node.Parent = parent
			node.Level = parent.Level + 1
			parent.Children = append(parent.Children, node)
		}
	}

	for _, node := range nodes {
		switch style {
		case HatchOuter, HatchIgnore:
			node.Fill = node.Level == 0
		default:
			node.Fill = node.Level%2 == 0
		}
	}
	return nodes
}

// holes returns the boundaries subtracted from this loop's fill: its
// immediate non-filling children. HatchIgnore discards holes altogether.
func (n *LoopNode) holes(style HatchStyle) [][]Vec2 {
	if style == HatchIgnore {
		return nil
	}
	var out [][]Vec2
	for _, c := range n.Children {
		if !c.Fill {
			out = append(out, c.Points)
		}
	}
	return out
}

// loopContains reports whether outer contains inner by a majority vote of
// ray-cast tests over up to containmentSamples evenly spaced inner
// vertices.
func loopContains(outer, inner []Vec2) bool {
	samples := containmentSamples
	if len(inner) < samples {
		samples = len(inner)
	}
	if samples == 0 {
		return false
	}
	votes := 0
	for i := 0; i < samples; i++ {
		p := inner[i*len(inner)/samples]
		if pointInPolygon(p, outer) {
			votes++
		}
	}
	return votes*2 > samples
}
