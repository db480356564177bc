package framebuffer

import (
	"encoding/binary"
	"log"
	"math/bits"
	"os"

	"github.com/BeatGlow/gopshim/efi"
	"github.com/BeatGlow/gopshim/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("FRAMEBUFFER_DEBUG") != ""
}

const configMagic = 0x4c424246 // "FBBL"

// configuration is the header stored at the start of a configuration buffer. The line buffer
// used for pixel conversion follows it.
type configuration struct {
	Magic             uint32
	FrameBuffer       uint64
	Width             uint32
	Height            uint32
	PixelsPerScanLine uint32
	BytesPerPixel     uint32
	Layout            pixel.Layout
}

var configurationSize = uint64(binary.Size(configuration{}))

// Engine is a frame buffer block transfer engine.
type Engine struct {
	mem Memory
}

// New returns an engine that reaches frame buffers through mem.
func New(mem Memory) *Engine {
	return &Engine{mem: mem}
}

// Configure prepares config for Blt calls against the frame buffer at frameBuffer described by
// info. When *size is too small to hold the configuration, the required size is stored in *size
// and [efi.BufferTooSmall] is returned.
func (e *Engine) Configure(frameBuffer uint64, info *efi.ModeInformation, config []byte, size *uint64) efi.Status {
	if size == nil || frameBuffer == 0 || info == nil {
		return efi.InvalidParameter
	}

	layout, ok := pixel.LayoutFor(info)
	if !ok {
		return efi.Unsupported
	}
	// Rows are converted through a single scan line buffer.
	if info.PixelsPerScanLine < info.HorizontalResolution {
		return efi.Unsupported
	}

	var (
		bpp      = uint64(layout.BytesPerPixel())
		required = configurationSize + uint64(info.PixelsPerScanLine)*bpp
	)
	if *size < required {
		*size = required
		return efi.BufferTooSmall
	}
	if config == nil || uint64(len(config)) < required {
		return efi.InvalidParameter
	}

	c := configuration{
		Magic:             configMagic,
		FrameBuffer:       frameBuffer,
		Width:             info.HorizontalResolution,
		Height:            info.VerticalResolution,
		PixelsPerScanLine: info.PixelsPerScanLine,
		BytesPerPixel:     uint32(bpp),
		Layout:            layout,
	}
	if _, err := binary.Encode(config, binary.LittleEndian, &c); err != nil {
		return efi.BadBufferSize
	}
	if debug {
		log.Printf("framebuffer: configured %dx%d (%d pixels per scan line, %d bytes per pixel) at %#x",
			c.Width, c.Height, c.PixelsPerScanLine, c.BytesPerPixel, c.FrameBuffer)
	}
	return efi.Success
}

// Blt performs a block transfer using a buffer prepared by Configure.
func (e *Engine) Blt(config []byte, buf []efi.BltPixel, op efi.BltOperation, srcX, srcY, dstX, dstY, width, height, delta uint64) efi.Status {
	var c configuration
	if _, err := binary.Decode(config, binary.LittleEndian, &c); err != nil || c.Magic != configMagic {
		return efi.InvalidParameter
	}
	if op >= efi.BltOperationMax || width == 0 || height == 0 {
		return efi.InvalidParameter
	}
	if delta == 0 {
		delta = width * efi.SizeOfBltPixel
	}

	var (
		bpp    = uint64(c.BytesPerPixel)
		stride = uint64(c.PixelsPerScanLine) * bpp
	)
	if uint64(len(config)) < configurationSize+stride {
		return efi.InvalidParameter
	}
	line := config[configurationSize : configurationSize+stride]

	// Validate the rectangles before touching memory.
	switch op {
	case efi.BltVideoFill:
		if len(buf) == 0 || !c.inside(dstX, dstY, width, height) {
			return efi.InvalidParameter
		}
	case efi.BltVideoToBltBuffer:
		if !c.inside(srcX, srcY, width, height) || !fits(buf, dstX, dstY, width, height, delta) {
			return efi.InvalidParameter
		}
	case efi.BltBufferToVideo:
		if !c.inside(dstX, dstY, width, height) || !fits(buf, srcX, srcY, width, height, delta) {
			return efi.InvalidParameter
		}
	case efi.BltVideoToVideo:
		if !c.inside(srcX, srcY, width, height) || !c.inside(dstX, dstY, width, height) {
			return efi.InvalidParameter
		}
	}

	fb, err := e.mem.Slice(c.FrameBuffer, stride*uint64(c.Height))
	if err != nil {
		if debug {
			log.Printf("framebuffer: can not reach frame buffer at %#x: %v", c.FrameBuffer, err)
		}
		return efi.DeviceError
	}

	var (
		rowBytes  = width * bpp
		bufStride = delta / efi.SizeOfBltPixel
	)
	switch op {
	case efi.BltVideoFill:
		value := c.Layout.Pack(buf[0])
		for x := uint64(0); x < width; x++ {
			putPixel(line[x*bpp:], bpp, value)
		}
		for y := dstY; y < dstY+height; y++ {
			offset := y*stride + dstX*bpp
			copy(fb[offset:offset+rowBytes], line[:rowBytes])
		}

	case efi.BltVideoToBltBuffer:
		for row := uint64(0); row < height; row++ {
			var (
				src = (srcY+row)*stride + srcX*bpp
				dst = (dstY+row)*bufStride + dstX
			)
			copy(line[:rowBytes], fb[src:src+rowBytes])
			for x := uint64(0); x < width; x++ {
				buf[dst+x] = c.Layout.Unpack(getPixel(line[x*bpp:], bpp))
			}
		}

	case efi.BltBufferToVideo:
		for row := uint64(0); row < height; row++ {
			var (
				src = (srcY+row)*bufStride + srcX
				dst = (dstY+row)*stride + dstX*bpp
			)
			for x := uint64(0); x < width; x++ {
				putPixel(line[x*bpp:], bpp, c.Layout.Pack(buf[src+x]))
			}
			copy(fb[dst:dst+rowBytes], line[:rowBytes])
		}

	case efi.BltVideoToVideo:
		// Walk rows away from the overlap; copy handles overlap within a row.
		for i := uint64(0); i < height; i++ {
			row := i
			if dstY > srcY {
				row = height - 1 - i
			}
			var (
				src = (srcY+row)*stride + srcX*bpp
				dst = (dstY+row)*stride + dstX*bpp
			)
			copy(fb[dst:dst+rowBytes], fb[src:src+rowBytes])
		}
	}

	return efi.Success
}

func (c *configuration) inside(x, y, width, height uint64) bool {
	return x+width >= x && y+height >= y &&
		x+width <= uint64(c.Width) && y+height <= uint64(c.Height)
}

// fits reports whether the width by height rectangle at x, y lies inside buf when rows are
// delta bytes apart.
func fits(buf []efi.BltPixel, x, y, width, height, delta uint64) bool {
	stride := delta / efi.SizeOfBltPixel
	end, carry := bits.Add64(x, width, 0)
	if carry != 0 || stride < end {
		return false
	}
	lastRow, carry := bits.Add64(y, height-1, 0)
	if carry != 0 {
		return false
	}
	hi, start := bits.Mul64(lastRow, stride)
	if hi != 0 {
		return false
	}
	last, carry := bits.Add64(start, end, 0)
	return carry == 0 && last <= uint64(len(buf))
}

func putPixel(b []byte, bpp uint64, v uint32) {
	for i := uint64(0); i < bpp; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func getPixel(b []byte, bpp uint64) (v uint32) {
	for i := uint64(0); i < bpp; i++ {
		v |= uint32(b[i]) << (8 * i)
	}
	return
}
