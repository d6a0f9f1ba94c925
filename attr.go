package dwg

// Color-index sentinels.
const (
	// ColorByBlock inherits the containing block instance's resolved color.
	ColorByBlock = 0
	// ColorByLayer uses the owning layer's resolved color.
	ColorByLayer = 256
)

// ResolveColor resolves an entity's final color. inherited is the containing
// block instance's resolved color, or nil at the document root.
//
// Precedence: entity true-color; then color-index (256 resolves through the
// owning layer, 0 through the inherited color, 1-255 through the ACI
// palette); then the raw packed color, considered only when no color-index
// is present at all; then the owning layer's color; then DefaultColor.
//
// The function is pure and total: a present-but-invalid index degrades to
// the layer tier instead of erroring.
func ResolveColor(h *Header, doc *Document, inherited *RGB) RGB {
	return resolveColorDefault(h, doc, inherited, DefaultColor)
}

func resolveColorDefault(h *Header, doc *Document, inherited *RGB, fallback RGB) RGB {
	if h == nil {
		return fallback
	}
	if h.TrueColor != nil && *h.TrueColor <= 0xFFFFFF {
		return RGB(*h.TrueColor)
	}
	if h.ColorIndex != nil {
		switch idx := *h.ColorIndex; {
		case idx == ColorByLayer:
			return resolveLayerColorDefault(h.Layer, doc, fallback)
		case idx == ColorByBlock:
			if inherited != nil {
				return *inherited
			}
			return resolveLayerColorDefault(h.Layer, doc, fallback)
		default:
			if c, ok := ACIColor(idx); ok {
				return c
			}
		}
	} else if h.RawColor != nil {
		return FromBGR(*h.RawColor)
	}
	return resolveLayerColorDefault(h.Layer, doc, fallback)
}

// ResolveLayerColor resolves a layer's own color with the same precedence
// restricted to the layer's fields: true-color, then color-index through the
// ACI palette, then the raw packed color, then DefaultColor. There is no
// further recursion: layer sentinels have nothing left to refer to.
func ResolveLayerColor(name string, doc *Document) RGB {
	return resolveLayerColorDefault(name, doc, DefaultColor)
}

func resolveLayerColorDefault(name string, doc *Document, fallback RGB) RGB {
	layer := doc.LayerByName(name)
	if layer == nil {
		return fallback
	}
	if layer.TrueColor != nil && *layer.TrueColor <= 0xFFFFFF {
		return RGB(*layer.TrueColor)
	}
	if layer.ColorIndex != nil {
		if c, ok := ACIColor(*layer.ColorIndex); ok {
			return c
		}
	}
	if layer.RawColor != nil {
		return FromBGR(*layer.RawColor)
	}
	return fallback
}
