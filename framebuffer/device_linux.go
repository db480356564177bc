package framebuffer

import (
	"os"
	"syscall"
	"unsafe"

	"github.com/BeatGlow/gopshim/efi"
	"github.com/BeatGlow/gopshim/internal/ioctl"
)

const (
	// From <linux/fb.h>
	fbioGetVScreenInfo ioctl.Command = 0x4600
	fbioGetFScreenInfo ioctl.Command = 0x4602

	// syntheticBase addresses the mapping when the kernel hides smem_start.
	syntheticBase = 0x8000_0000
)

// Device is a Linux frame buffer device (fbdev).
//
// It implements [efi.ScreenInfoProtocol] with the geometry reported by the kernel and [Memory]
// for the mapped frame buffer, so it can stand in for the vendor screen info protocol.
type Device struct {
	f          *os.File
	fd         uintptr
	info       linuxFixScreenInfo
	screenInfo linuxVarScreenInfo
	base       uint64
	mem        []byte
}

// OpenDevice opens a Linux frame buffer device by name, typically /dev/fb[0..x].
func OpenDevice(name string) (*Device, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	d := &Device{
		f:  f,
		fd: f.Fd(),
	}
	if err = ioctl.Do(d.fd, fbioGetFScreenInfo, unsafe.Pointer(&d.info)); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Request virtual screen info.
	if err = ioctl.Do(d.fd, fbioGetVScreenInfo, unsafe.Pointer(&d.screenInfo)); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Map pixel buffer.
	if d.mem, err = syscall.Mmap(int(d.fd), 0, int(d.info.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED); err != nil {
		_ = f.Close()
		return nil, err
	}

	if d.base = uint64(d.info.SmemStart); d.base == 0 {
		d.base = syntheticBase
	}
	return d, nil
}

// GetInfo implements [efi.ScreenInfoProtocol]. Devices that are not 32 bits per pixel are
// reported as [efi.Unsupported].
func (d *Device) GetInfo(baseAddress, frameBufferSize *uint64, bytesPerRow, width, height, depth *uint32) efi.Status {
	if baseAddress == nil || frameBufferSize == nil || bytesPerRow == nil || width == nil || height == nil || depth == nil {
		return efi.InvalidParameter
	}
	if d.screenInfo.BitsPerPixel != 32 {
		return efi.Unsupported
	}
	*baseAddress = d.base
	*frameBufferSize = uint64(d.info.SmemLen)
	*bytesPerRow = d.info.LineLength
	*width = d.screenInfo.Xres
	*height = d.screenInfo.Yres
	*depth = d.screenInfo.BitsPerPixel
	return efi.Success
}

// Slice implements [Memory] for the mapped frame buffer.
func (d *Device) Slice(addr, size uint64) ([]byte, error) {
	if addr < d.base || addr+size > d.base+uint64(len(d.mem)) || addr+size < addr {
		return nil, syscall.EFAULT
	}
	offset := addr - d.base
	return d.mem[offset : offset+size], nil
}

// Close unmaps and closes the frame buffer device.
func (d *Device) Close() error {
	if err := syscall.Munmap(d.mem); err != nil {
		return err
	}
	return d.f.Close()
}

type linuxFixScreenInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

type linuxBitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// linuxVarScreenInfo contains device independent changeable information about a frame buffer device and a specific video mode.
type linuxVarScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha linuxBitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

var (
	_ efi.ScreenInfoProtocol = (*Device)(nil)
	_ Memory                 = (*Device)(nil)
)
