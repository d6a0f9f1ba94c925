package dwg

import "strings"

// Layer is one layer-table entry. Frozen/off layers are filtered by the
// caller before resolution, but their color fields still participate in
// BYLAYER resolution for entities that name them.
type Layer struct {
	Name       string
	TrueColor  *uint32
	ColorIndex *int
	RawColor   *uint32
	Frozen     bool
	Off        bool
	Locked     bool
}

// Block is a reusable group of entities. Child coordinates are local to the
// block, relative to Base.
type Block struct {
	Name     string
	Base     Vec3
	Entities []Entity
}

// Document is the read-only input to a resolution pass: top-level entities
// in draw order, the layer table, and block definitions by name.
type Document struct {
	Entities []Entity
	Layers   map[string]*Layer
	Blocks   map[string]*Block
}

// LayerByName looks up a layer-table entry, or nil if absent.
func (d *Document) LayerByName(name string) *Layer {
	if d == nil || d.Layers == nil {
		return nil
	}
	return d.Layers[name]
}

// BlockByName looks up a block definition by exact name, falling back to a
// case-insensitive scan. Block names in hand-edited or converted drawings
// are not reliably case-consistent.
func (d *Document) BlockByName(name string) *Block {
	if d == nil || d.Blocks == nil {
		return nil
	}
	if b, ok := d.Blocks[name]; ok {
		return b
	}
	for n, b := range d.Blocks {
		if strings.EqualFold(n, name) {
			return b
		}
	}
	return nil
}
