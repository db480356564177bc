package gopshim

import "github.com/BeatGlow/gopshim/efi"

// bytesPerPixel is fixed by the synthesized BGRX pixel format.
const bytesPerPixel = 4

// Channel masks of the synthesized pixel format.
var bgrxBitmask = efi.PixelBitmask{
	RedMask:      0x00ff0000,
	GreenMask:    0x0000ff00,
	BlueMask:     0x000000ff,
	ReservedMask: 0xff000000,
}

// SynthesizeMode builds the single mode published by the shim.
//
// The pixel format is always 32-bit blue, green, red, reserved; boot loaders only treat the
// interface as usable with exactly this layout, so it is not derived from the geometry depth.
// PixelsPerScanLine is BytesPerRow / 4 and may be larger than Width: consumers that address rows
// by HorizontalResolution will draw skewed output on such panels. The resolution is reported as
// the hardware describes it.
func SynthesizeMode(g Geometry) *efi.ProtocolMode {
	info := &efi.ModeInformation{
		Version:              0,
		HorizontalResolution: g.Width,
		VerticalResolution:   g.Height,
		PixelFormat:          efi.PixelBlueGreenRedReserved8BitPerColor,
		PixelInformation:     bgrxBitmask,
		PixelsPerScanLine:    g.BytesPerRow / bytesPerPixel,
	}
	return &efi.ProtocolMode{
		MaxMode:         1,
		Mode:            0,
		Info:            info,
		SizeOfInfo:      efi.SizeOfModeInformation,
		FrameBufferBase: g.BaseAddress,
		FrameBufferSize: g.FrameBufferSize,
	}
}
