// Package draw contains drawing helpers for consumers of a Graphics Output Protocol.
//
// A [Canvas] keeps a back buffer in Blt pixel format and flushes it to the screen with
// BltBufferToVideo; it also implements the periph.io display.Drawer interface.
package draw

import (
	"image"
	"image/draw"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Op is an alias for [image/draw.Op].
type Op = draw.Op

const (
	// Over specifies ``(src in mask) over dst''.
	Over Op = draw.Over

	// Src specifies ``src in mask''.
	Src Op = draw.Src
)

// Draw aligns r.Min in dst with sp in src and replaces the rectangle r in dst with the result
// of op.
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	draw.Draw(dst, r, src, sp, op)
}
