package pixel

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/BeatGlow/gopshim/efi"
)

// Image is a drawable image that can be wiped.
type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// BltImage is an image backed by a Blt buffer.
type BltImage struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []efi.BltPixel

	// Stride is the Pix stride (in pixels) between vertically adjacent pixels.
	Stride int
}

// NewBltImage returns a w by h image with a tightly packed buffer.
func NewBltImage(w, h int) *BltImage {
	return &BltImage{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]efi.BltPixel, w*h),
		Stride: w,
	}
}

// Delta is the row length of the buffer in bytes, as expected by Blt.
func (p *BltImage) Delta() uint64 {
	return uint64(p.Stride) * efi.SizeOfBltPixel
}

func (p *BltImage) Bounds() image.Rectangle {
	return p.Rect
}

func (p *BltImage) ColorModel() color.Model {
	return BltModel
}

// PixOffset returns the index of the pixel at (x, y) in Pix.
func (p *BltImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}

func (p *BltImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return p.Pix[p.PixOffset(x, y)]
}

func (p *BltImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.Pix[p.PixOffset(x, y)] = toBlt(c)
}

func (p *BltImage) Clear() {
	p.fill(efi.BltPixel{})
}

func (p *BltImage) Fill(c color.Color) {
	p.fill(toBlt(c))
}

func (p *BltImage) fill(value efi.BltPixel) {
	w := p.Rect.Dx()
	for y := 0; y < p.Rect.Dy(); y++ {
		row := p.Pix[y*p.Stride : y*p.Stride+w]
		for i := range row {
			row[i] = value
		}
	}
}

// SubImage returns the part of the image visible through r, sharing pixels with the original.
func (p *BltImage) SubImage(r image.Rectangle) *BltImage {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return &BltImage{Stride: p.Stride}
	}
	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &BltImage{
		Rect:   r,
		Pix:    p.Pix[i:],
		Stride: p.Stride,
	}
}

// Interface checks.
var (
	_ Image = (*BltImage)(nil)
)
