package pixel

import (
	"math/bits"

	"github.com/BeatGlow/gopshim/efi"
)

// Layout describes where each channel lives inside a native frame buffer pixel.
type Layout struct {
	Red      uint32
	Green    uint32
	Blue     uint32
	Reserved uint32
}

// Predefined layouts for the fixed pixel formats.
var (
	BGRXLayout = Layout{Red: 0x00ff0000, Green: 0x0000ff00, Blue: 0x000000ff, Reserved: 0xff000000}
	RGBXLayout = Layout{Red: 0x000000ff, Green: 0x0000ff00, Blue: 0x00ff0000, Reserved: 0xff000000}
)

// LayoutFor returns the layout of a mode. It returns false for [efi.PixelBltOnly], unknown
// formats and bit masks that do not describe any color channel.
func LayoutFor(info *efi.ModeInformation) (Layout, bool) {
	switch info.PixelFormat {
	case efi.PixelBlueGreenRedReserved8BitPerColor:
		return BGRXLayout, true
	case efi.PixelRedGreenBlueReserved8BitPerColor:
		return RGBXLayout, true
	case efi.PixelBitMask:
		l := Layout{
			Red:      info.PixelInformation.RedMask,
			Green:    info.PixelInformation.GreenMask,
			Blue:     info.PixelInformation.BlueMask,
			Reserved: info.PixelInformation.ReservedMask,
		}
		if l.Red|l.Green|l.Blue == 0 || l.Red&l.Green != 0 || l.Red&l.Blue != 0 || l.Green&l.Blue != 0 {
			return Layout{}, false
		}
		return l, true
	default:
		return Layout{}, false
	}
}

// BytesPerPixel is the number of bytes a native pixel occupies.
func (l Layout) BytesPerPixel() int {
	return (bits.Len32(l.Red|l.Green|l.Blue|l.Reserved) + 7) / 8
}

// Pack converts p to its native value.
func (l Layout) Pack(p efi.BltPixel) uint32 {
	return packChannel(p.Red, l.Red) |
		packChannel(p.Green, l.Green) |
		packChannel(p.Blue, l.Blue) |
		packChannel(p.Reserved, l.Reserved)
}

// Unpack converts a native value to a Blt pixel.
func (l Layout) Unpack(v uint32) efi.BltPixel {
	return efi.BltPixel{
		Blue:     unpackChannel(v, l.Blue),
		Green:    unpackChannel(v, l.Green),
		Red:      unpackChannel(v, l.Red),
		Reserved: unpackChannel(v, l.Reserved),
	}
}

func packChannel(c uint8, mask uint32) uint32 {
	if mask == 0 {
		return 0
	}
	var (
		shift = bits.TrailingZeros32(mask)
		width = bits.OnesCount32(mask)
		v     = uint32(c)
	)
	if width < 8 {
		v >>= 8 - width
	} else {
		v <<= width - 8
	}
	return (v << shift) & mask
}

func unpackChannel(v, mask uint32) uint8 {
	if mask == 0 {
		return 0
	}
	var (
		shift = bits.TrailingZeros32(mask)
		width = bits.OnesCount32(mask)
	)
	v = (v & mask) >> shift
	if width < 8 {
		// Repeat the channel bits until all 8 bits are set.
		v <<= 8 - width
		for n := width; n < 8; n *= 2 {
			v |= v >> n
		}
	} else {
		v >>= width - 8
	}
	return uint8(v)
}
