package gopshim

import (
	"fmt"

	"github.com/BeatGlow/gopshim/efi"
	"github.com/BeatGlow/gopshim/pixel"
)

// Geometry describes a linear frame buffer.
type Geometry struct {
	// BaseAddress is the physical address of the first pixel.
	BaseAddress uint64

	// FrameBufferSize is the total size of the frame buffer in bytes.
	FrameBufferSize uint64

	// BytesPerRow is the stride between vertically adjacent pixels.
	BytesPerRow uint32

	// Width and Height are the visible resolution in pixels.
	Width  uint32
	Height uint32

	// Depth is the number of bits per pixel.
	Depth uint32
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%dx%d stride %d at %#x (%d bytes)",
		g.Width, g.Height, g.Depth, g.BytesPerRow, g.BaseAddress, g.FrameBufferSize)
}

// GeometrySource provides frame buffer geometry.
type GeometrySource interface {
	// Geometry returns the frame buffer geometry, or the status of the failed firmware call.
	Geometry() (Geometry, error)
}

// VendorSource reads geometry from a vendor screen info protocol.
type VendorSource struct {
	Protocol efi.ScreenInfoProtocol
}

// Geometry calls GetInfo once. A failing status is returned unchanged, as an [efi.Status].
func (s VendorSource) Geometry() (Geometry, error) {
	var g Geometry
	if status := s.Protocol.GetInfo(&g.BaseAddress, &g.FrameBufferSize, &g.BytesPerRow, &g.Width, &g.Height, &g.Depth); status != efi.Success {
		return Geometry{}, status
	}
	return g, nil
}

// NativeSource reads geometry from the current mode of an existing Graphics Output Protocol.
type NativeSource struct {
	Protocol efi.GraphicsOutputProtocol
}

// Geometry derives the geometry from the mode. Blt only modes have no frame buffer and return
// [efi.Unsupported].
func (s NativeSource) Geometry() (Geometry, error) {
	mode := s.Protocol.Mode()
	if mode == nil || mode.Info == nil {
		return Geometry{}, efi.NotReady
	}

	layout, ok := pixel.LayoutFor(mode.Info)
	if !ok {
		return Geometry{}, efi.Unsupported
	}

	bpp := uint32(layout.BytesPerPixel())
	return Geometry{
		BaseAddress:     mode.FrameBufferBase,
		FrameBufferSize: mode.FrameBufferSize,
		BytesPerRow:     mode.Info.PixelsPerScanLine * bpp,
		Width:           mode.Info.HorizontalResolution,
		Height:          mode.Info.VerticalResolution,
		Depth:           bpp * 8,
	}, nil
}

// Interface checks.
var (
	_ GeometrySource = VendorSource{}
	_ GeometrySource = NativeSource{}
)
