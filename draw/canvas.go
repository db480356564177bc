package draw

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"

	"github.com/BeatGlow/gopshim/efi"
	"github.com/BeatGlow/gopshim/pixel"
)

// Canvas is a back buffer for a Graphics Output Protocol.
type Canvas struct {
	*pixel.BltImage
	gop efi.GraphicsOutputProtocol
}

// NewCanvas returns a canvas sized to the current mode of gop.
func NewCanvas(gop efi.GraphicsOutputProtocol) (*Canvas, error) {
	mode := gop.Mode()
	if mode == nil {
		return nil, fmt.Errorf("draw: graphics output has no mode: %w", efi.NotReady)
	}

	var (
		info *efi.ModeInformation
		size uint64
	)
	if status := gop.QueryMode(mode.Mode, &size, &info); status != efi.Success {
		return nil, fmt.Errorf("draw: query mode %d: %w", mode.Mode, status)
	}

	return &Canvas{
		BltImage: pixel.NewBltImage(int(info.HorizontalResolution), int(info.VerticalResolution)),
		gop:      gop,
	}, nil
}

func (c *Canvas) String() string {
	bounds := c.Bounds()
	return fmt.Sprintf("GOP canvas %dx%d", bounds.Dx(), bounds.Dy())
}

// Halt blanks the screen. The back buffer is kept.
func (c *Canvas) Halt() error {
	return c.FillRect(c.Bounds(), color.Black)
}

// Flush copies the whole back buffer to the screen.
func (c *Canvas) Flush() error {
	return c.FlushRect(c.Bounds())
}

// FlushRect copies the part of the back buffer inside r to the screen.
func (c *Canvas) FlushRect(r image.Rectangle) error {
	r = r.Intersect(c.Bounds())
	if r.Empty() {
		return nil
	}
	status := c.gop.Blt(c.Pix, efi.BltBufferToVideo,
		uint64(r.Min.X), uint64(r.Min.Y),
		uint64(r.Min.X), uint64(r.Min.Y),
		uint64(r.Dx()), uint64(r.Dy()),
		c.Delta())
	if status != efi.Success {
		return fmt.Errorf("draw: flush %s: %w", r, status)
	}
	return nil
}

// FillRect fills r on screen and in the back buffer with a single color, using BltVideoFill.
func (c *Canvas) FillRect(r image.Rectangle, fill color.Color) error {
	r = r.Intersect(c.Bounds())
	if r.Empty() {
		return nil
	}
	p := pixel.BltModel.Convert(fill).(efi.BltPixel)
	c.BltImage.SubImage(r).Fill(p)
	status := c.gop.Blt([]efi.BltPixel{p}, efi.BltVideoFill,
		0, 0,
		uint64(r.Min.X), uint64(r.Min.Y),
		uint64(r.Dx()), uint64(r.Dy()),
		0)
	if status != efi.Success {
		return fmt.Errorf("draw: fill %s: %w", r, status)
	}
	return nil
}

// Draw implements periph's display.Drawer: src is drawn into the back buffer at dstRect and
// that rectangle is flushed.
func (c *Canvas) Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error {
	Draw(c.BltImage, dstRect, src, sp, Src)
	return c.FlushRect(dstRect)
}

// Snapshot reads the screen back into the back buffer with BltVideoToBltBuffer.
func (c *Canvas) Snapshot() error {
	r := c.Bounds()
	if r.Empty() {
		return nil
	}
	status := c.gop.Blt(c.Pix, efi.BltVideoToBltBuffer,
		0, 0, 0, 0,
		uint64(r.Dx()), uint64(r.Dy()),
		c.Delta())
	if status != efi.Success {
		return fmt.Errorf("draw: snapshot: %w", status)
	}
	return nil
}

// Scroll moves the screen contents up by n rows with BltVideoToVideo and blanks the rows
// uncovered at the bottom. Only the blanked rows of the back buffer change; call Snapshot to
// resync the rest.
func (c *Canvas) Scroll(n int, fill color.Color) error {
	r := c.Bounds()
	if n <= 0 {
		return nil
	}
	if n < r.Dy() {
		status := c.gop.Blt(nil, efi.BltVideoToVideo,
			0, uint64(n), 0, 0,
			uint64(r.Dx()), uint64(r.Dy()-n),
			0)
		if status != efi.Success {
			return fmt.Errorf("draw: scroll %d: %w", n, status)
		}
	}
	if n > r.Dy() {
		n = r.Dy()
	}
	return c.FillRect(image.Rect(r.Min.X, r.Max.Y-n, r.Max.X, r.Max.Y), fill)
}

// Interface checks.
var (
	_ conn.Resource  = (*Canvas)(nil)
	_ display.Drawer = (*Canvas)(nil)
	_ Image          = (*Canvas)(nil)
)
