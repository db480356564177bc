package pixel

import (
	"image/color"

	"github.com/BeatGlow/gopshim/efi"
)

// BltModel is the color model for [efi.BltPixel].
var BltModel color.Model = color.ModelFunc(bltModel)

// Common colors.
var (
	Black = efi.BltPixel{}
	White = efi.BltPixel{Blue: 0xff, Green: 0xff, Red: 0xff}
)

func bltModel(c color.Color) color.Color {
	return toBlt(c)
}

func toBlt(c color.Color) efi.BltPixel {
	if p, ok := c.(efi.BltPixel); ok {
		return p
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return efi.BltPixel{}
	}
	if a != 0xffff {
		// Blt pixels are opaque, undo the alpha premultiplication.
		r = r * 0xffff / a
		g = g * 0xffff / a
		b = b * 0xffff / a
	}
	return efi.BltPixel{
		Blue:  uint8(b >> 8),
		Green: uint8(g >> 8),
		Red:   uint8(r >> 8),
	}
}
