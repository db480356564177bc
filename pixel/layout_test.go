package pixel

import (
	"encoding/binary"
	"testing"

	"github.com/BeatGlow/gopshim/efi"
)

func TestLayoutFor(t *testing.T) {
	tests := []struct {
		Name string
		Info efi.ModeInformation
		Want Layout
		OK   bool
	}{
		{"bgrx", efi.ModeInformation{PixelFormat: efi.PixelBlueGreenRedReserved8BitPerColor}, BGRXLayout, true},
		{"rgbx", efi.ModeInformation{PixelFormat: efi.PixelRedGreenBlueReserved8BitPerColor}, RGBXLayout, true},
		{"rgb565", efi.ModeInformation{
			PixelFormat:      efi.PixelBitMask,
			PixelInformation: efi.PixelBitmask{RedMask: 0xf800, GreenMask: 0x07e0, BlueMask: 0x001f},
		}, Layout{Red: 0xf800, Green: 0x07e0, Blue: 0x001f}, true},
		{"overlapping-masks", efi.ModeInformation{
			PixelFormat:      efi.PixelBitMask,
			PixelInformation: efi.PixelBitmask{RedMask: 0xff, GreenMask: 0xff},
		}, Layout{}, false},
		{"empty-masks", efi.ModeInformation{PixelFormat: efi.PixelBitMask}, Layout{}, false},
		{"blt-only", efi.ModeInformation{PixelFormat: efi.PixelBltOnly}, Layout{}, false},
		{"unknown", efi.ModeInformation{PixelFormat: efi.PixelFormatMax}, Layout{}, false},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			l, ok := LayoutFor(&test.Info)
			if ok != test.OK {
				it.Fatalf("expected ok to be %t, got %t", test.OK, ok)
			}
			if l != test.Want {
				it.Errorf("expected layout %#+v, got %#+v", test.Want, l)
			}
		})
	}
}

func TestLayoutBytesPerPixel(t *testing.T) {
	if v := BGRXLayout.BytesPerPixel(); v != 4 {
		t.Errorf("expected BGRX to use 4 bytes, got %d", v)
	}
	if v := (Layout{Red: 0xf800, Green: 0x07e0, Blue: 0x001f}).BytesPerPixel(); v != 2 {
		t.Errorf("expected RGB565 to use 2 bytes, got %d", v)
	}
	if v := (Layout{Red: 0xff0000, Green: 0xff00, Blue: 0xff}).BytesPerPixel(); v != 3 {
		t.Errorf("expected RGB888 to use 3 bytes, got %d", v)
	}
}

func TestBGRXLayoutMatchesMemory(t *testing.T) {
	// A packed BGRX value stored little endian is byte for byte a BltPixel.
	p := efi.BltPixel{Blue: 0x11, Green: 0x22, Red: 0x33, Reserved: 0x44}
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, BGRXLayout.Pack(p))
	if b[0] != p.Blue || b[1] != p.Green || b[2] != p.Red || b[3] != p.Reserved {
		t.Errorf("expected bytes % x, got % x", []byte{p.Blue, p.Green, p.Red, p.Reserved}, b)
	}
	if v := BGRXLayout.Unpack(binary.LittleEndian.Uint32(b)); v != p {
		t.Errorf("expected %#+v, got %#+v", p, v)
	}
}

func TestRGBXLayout(t *testing.T) {
	p := efi.BltPixel{Blue: 0x11, Green: 0x22, Red: 0x33}
	if v := RGBXLayout.Pack(p); v != 0x00112233 {
		t.Errorf("expected %#08x, got %#08x", 0x00112233, v)
	}
}

func TestRGB565Layout(t *testing.T) {
	l := Layout{Red: 0xf800, Green: 0x07e0, Blue: 0x001f}
	tests := []struct {
		Pixel efi.BltPixel
		Want  uint32
	}{
		{efi.BltPixel{}, 0x0000},
		{White, 0xffff},
		{efi.BltPixel{Red: 0xff}, 0xf800},
		{efi.BltPixel{Green: 0xff}, 0x07e0},
		{efi.BltPixel{Blue: 0xff}, 0x001f},
	}
	for _, test := range tests {
		v := l.Pack(test.Pixel)
		if v != test.Want {
			t.Errorf("expected %#+v to pack to %#04x, got %#04x", test.Pixel, test.Want, v)
		}
		if u := l.Unpack(v); u != test.Pixel {
			t.Errorf("expected %#04x to unpack to %#+v, got %#+v", v, test.Pixel, u)
		}
	}
}

func TestNarrowChannelLayout(t *testing.T) {
	l := Layout{Red: 0x01, Green: 0x06, Blue: 0x38}
	tests := []struct {
		Value uint32
		Want  efi.BltPixel
	}{
		{0x00, efi.BltPixel{}},
		{0x3f, White},
		{0x01, efi.BltPixel{Red: 0xff}},
		{0x04, efi.BltPixel{Green: 0xaa}},
		{0x02, efi.BltPixel{Green: 0x55}},
		{0x28, efi.BltPixel{Blue: 0xb6}},
	}
	for _, test := range tests {
		if v := l.Unpack(test.Value); v != test.Want {
			t.Errorf("expected %#02x to unpack to %#+v, got %#+v", test.Value, test.Want, v)
		}
	}
	if v := l.Pack(White); v != 0x3f {
		t.Errorf("expected white to pack to %#02x, got %#02x", 0x3f, v)
	}
}
