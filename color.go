package dwg

import (
	"fmt"
	"image/color"
)

// RGB is a 24-bit color packed as 0xRRGGBB, the final color attached to
// every resolved draw record.
type RGB uint32

// DefaultColor is the fallback when no color source resolves: white, the
// conventional foreground on a dark drawing background.
const DefaultColor RGB = 0xFFFFFF

// R returns the red component.
func (c RGB) R() uint8 { return uint8(c >> 16) }

// G returns the green component.
func (c RGB) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c RGB) B() uint8 { return uint8(c) }

// String formats the color as "#RRGGBB".
func (c RGB) String() string {
	return fmt.Sprintf("#%06X", uint32(c&0xFFFFFF))
}

// Color converts RGB to the standard color.Color interface (opaque).
func (c RGB) Color() color.Color {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: 0xFF}
}

// FromRGB packs components into an RGB value.
func FromRGB(r, g, b uint8) RGB {
	return RGB(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// FromBGR reinterprets a raw packed color stored in BGR byte order into
// RGB. Decoders surface some color fields in this packed form.
func FromBGR(packed uint32) RGB {
	b := uint8(packed >> 16)
	g := uint8(packed >> 8)
	r := uint8(packed)
	return FromRGB(r, g, b)
}
