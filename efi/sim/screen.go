package sim

import "github.com/BeatGlow/gopshim/efi"

// ScreenInfo is a scriptable vendor screen info protocol.
type ScreenInfo struct {
	BaseAddress     uint64
	FrameBufferSize uint64
	BytesPerRow     uint32
	Width           uint32
	Height          uint32
	Depth           uint32

	// Status, when not Success, is returned by GetInfo and no outputs are written.
	Status efi.Status

	// Calls counts GetInfo invocations.
	Calls int
}

// NewScreen maps a frame buffer of height rows of bytesPerRow bytes at base and returns a screen
// info protocol that describes it with a depth of 32 bits.
func NewScreen(mem *Memory, base uint64, width, height, bytesPerRow uint32) *ScreenInfo {
	size := uint64(bytesPerRow) * uint64(height)
	mem.Alloc(base, size)
	return &ScreenInfo{
		BaseAddress:     base,
		FrameBufferSize: size,
		BytesPerRow:     bytesPerRow,
		Width:           width,
		Height:          height,
		Depth:           32,
	}
}

// GetInfo implements [efi.ScreenInfoProtocol].
func (s *ScreenInfo) GetInfo(baseAddress, frameBufferSize *uint64, bytesPerRow, width, height, depth *uint32) efi.Status {
	s.Calls++
	if s.Status != efi.Success {
		return s.Status
	}
	if baseAddress == nil || frameBufferSize == nil || bytesPerRow == nil || width == nil || height == nil || depth == nil {
		return efi.InvalidParameter
	}
	*baseAddress = s.BaseAddress
	*frameBufferSize = s.FrameBufferSize
	*bytesPerRow = s.BytesPerRow
	*width = s.Width
	*height = s.Height
	*depth = s.Depth
	return efi.Success
}

var _ efi.ScreenInfoProtocol = (*ScreenInfo)(nil)
