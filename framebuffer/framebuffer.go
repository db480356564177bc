// Package framebuffer provides a block transfer engine for linear frame buffers.
//
// The [Engine] follows the two phase configure protocol of EDK2's FrameBufferBltLib: a first
// Configure call reports the size of the configuration buffer it needs, the caller allocates it
// and calls Configure again. The configured buffer is then handed to every Blt call.
//
// Frame buffer memory is reached through a [Memory] resolver. On Linux, [OpenDevice] exposes an
// fbdev device both as a vendor screen info protocol and as the memory behind it, and
// [PhysicalMemory] maps arbitrary physical ranges.
package framebuffer

import "errors"

// ErrNotSupported is returned on platforms without frame buffer device support.
var ErrNotSupported = errors.New("framebuffer: not supported")

// Memory resolves physical frame buffer addresses.
type Memory interface {
	// Slice returns size bytes of memory starting at addr.
	Slice(addr, size uint64) ([]byte, error)
}
