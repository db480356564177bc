package efi

import (
	"encoding/binary"
	"fmt"
)

// PixelFormat is an EFI_GRAPHICS_PIXEL_FORMAT.
type PixelFormat uint32

// Pixel formats.
const (
	PixelRedGreenBlueReserved8BitPerColor PixelFormat = iota
	PixelBlueGreenRedReserved8BitPerColor
	PixelBitMask
	PixelBltOnly
	PixelFormatMax
)

func (f PixelFormat) String() string {
	switch f {
	case PixelRedGreenBlueReserved8BitPerColor:
		return "RGBX"
	case PixelBlueGreenRedReserved8BitPerColor:
		return "BGRX"
	case PixelBitMask:
		return "bitmask"
	case PixelBltOnly:
		return "blt-only"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint32(f))
	}
}

// PixelBitmask is an EFI_PIXEL_BITMASK, only meaningful when the format is [PixelBitMask].
type PixelBitmask struct {
	RedMask      uint32
	GreenMask    uint32
	BlueMask     uint32
	ReservedMask uint32
}

// ModeInformation is an EFI_GRAPHICS_OUTPUT_MODE_INFORMATION.
//
// Consumers must address scan lines with PixelsPerScanLine, which may be larger than
// HorizontalResolution.
type ModeInformation struct {
	Version              uint32
	HorizontalResolution uint32
	VerticalResolution   uint32
	PixelFormat          PixelFormat
	PixelInformation     PixelBitmask
	PixelsPerScanLine    uint32
}

// SizeOfModeInformation is the serialized size of [ModeInformation] in bytes.
var SizeOfModeInformation = uint64(binary.Size(ModeInformation{}))

// ProtocolMode is an EFI_GRAPHICS_OUTPUT_PROTOCOL_MODE.
type ProtocolMode struct {
	MaxMode         uint32
	Mode            uint32
	Info            *ModeInformation
	SizeOfInfo      uint64
	FrameBufferBase uint64
	FrameBufferSize uint64
}

// BltOperation is an EFI_GRAPHICS_OUTPUT_BLT_OPERATION.
type BltOperation uint32

// Blt operations.
const (
	BltVideoFill BltOperation = iota
	BltVideoToBltBuffer
	BltBufferToVideo
	BltVideoToVideo
	BltOperationMax
)

func (op BltOperation) String() string {
	switch op {
	case BltVideoFill:
		return "VideoFill"
	case BltVideoToBltBuffer:
		return "VideoToBltBuffer"
	case BltBufferToVideo:
		return "BufferToVideo"
	case BltVideoToVideo:
		return "VideoToVideo"
	default:
		return fmt.Sprintf("BltOperation(%d)", uint32(op))
	}
}

// BltPixel is an EFI_GRAPHICS_OUTPUT_BLT_PIXEL.
type BltPixel struct {
	Blue     uint8
	Green    uint8
	Red      uint8
	Reserved uint8
}

// SizeOfBltPixel is the size of [BltPixel] in bytes.
const SizeOfBltPixel = 4

// RGBA implements [image/color.Color]; the reserved byte is ignored and the pixel is opaque.
func (p BltPixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p.Red)
	r |= r << 8
	g = uint32(p.Green)
	g |= g << 8
	b = uint32(p.Blue)
	b |= b << 8
	return r, g, b, 0xffff
}

// GraphicsOutputProtocol is EFI_GRAPHICS_OUTPUT_PROTOCOL.
type GraphicsOutputProtocol interface {
	// QueryMode returns information for an available graphics mode.
	QueryMode(modeNumber uint32, sizeOfInfo *uint64, info **ModeInformation) Status

	// SetMode sets the video device into the specified mode.
	SetMode(modeNumber uint32) Status

	// Blt performs a block transfer between buf and the frame buffer. Delta is the number of
	// bytes in a row of buf, 0 means the buffer is width pixels wide.
	Blt(buf []BltPixel, op BltOperation, srcX, srcY, dstX, dstY, width, height, delta uint64) Status

	// Mode returns the current mode.
	Mode() *ProtocolMode
}
