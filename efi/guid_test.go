package efi

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestParseGUID(t *testing.T) {
	tests := []struct {
		Text string
		Want GUID
	}{
		{"9042a9de-23dc-4a38-96fb-7aded080516a", GUID{0x9042a9de, 0x23dc, 0x4a38, [8]byte{0x96, 0xfb, 0x7a, 0xde, 0xd0, 0x80, 0x51, 0x6a}}},
		{"e316e100-0751-4c49-9056-486c7e472903", GUID{0xe316e100, 0x0751, 0x4c49, [8]byte{0x90, 0x56, 0x48, 0x6c, 0x7e, 0x47, 0x29, 0x03}}},
	}
	for _, test := range tests {
		t.Run(test.Text, func(it *testing.T) {
			g, err := ParseGUID(test.Text)
			if err != nil {
				it.Fatal(err)
			}
			if g != test.Want {
				it.Errorf("expected %#+v, got %#+v", test.Want, g)
			}
			if v := g.String(); v != test.Text {
				it.Errorf("expected string %q, got %q", test.Text, v)
			}
		})
	}
}

func TestParseGUIDInvalid(t *testing.T) {
	for _, text := range []string{
		"",
		"9042a9de23dc4a3896fb7aded080516a",
		"9042a9de-23dc-4a38-96fb-7aded080516",
		"zz42a9de-23dc-4a38-96fb-7aded080516a",
	} {
		if _, err := ParseGUID(text); err == nil {
			t.Errorf("expected %q to fail parsing", text)
		}
	}
}

func TestGUIDLayout(t *testing.T) {
	want := []byte{
		0xde, 0xa9, 0x42, 0x90, 0xdc, 0x23, 0x38, 0x4a,
		0x96, 0xfb, 0x7a, 0xde, 0xd0, 0x80, 0x51, 0x6a,
	}
	v, err := binary.Append(nil, binary.LittleEndian, GraphicsOutputProtocolGUID)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(v, want) {
		t.Errorf("expected % x, got % x", want, v)
	}
}
