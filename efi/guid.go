package efi

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// GUID is an EFI_GUID. Its fields encode little endian to the in-memory (mixed endian) layout.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// Well known protocol identifiers.
var (
	// GraphicsOutputProtocolGUID identifies EFI_GRAPHICS_OUTPUT_PROTOCOL.
	GraphicsOutputProtocolGUID = MustParseGUID("9042a9de-23dc-4a38-96fb-7aded080516a")

	// AppleScreenInfoProtocolGUID identifies Apple's proprietary screen info protocol.
	AppleScreenInfoProtocolGUID = MustParseGUID("e316e100-0751-4c49-9056-486c7e472903")
)

// ParseGUID parses the canonical 8-4-4-4-12 textual form.
func ParseGUID(s string) (g GUID, err error) {
	parts := strings.Split(s, "-")
	if len(parts) != 5 || len(parts[0]) != 8 || len(parts[1]) != 4 || len(parts[2]) != 4 ||
		len(parts[3]) != 4 || len(parts[4]) != 12 {
		return g, fmt.Errorf("efi: invalid GUID %q", s)
	}

	b, err := hex.DecodeString(strings.Join(parts, ""))
	if err != nil {
		return g, fmt.Errorf("efi: invalid GUID %q: %w", s, err)
	}

	g.Data1 = binary.BigEndian.Uint32(b[0:4])
	g.Data2 = binary.BigEndian.Uint16(b[4:6])
	g.Data3 = binary.BigEndian.Uint16(b[6:8])
	copy(g.Data4[:], b[8:])
	return g, nil
}

// MustParseGUID is like [ParseGUID] but panics if s can not be parsed.
func MustParseGUID(s string) GUID {
	g, err := ParseGUID(s)
	if err != nil {
		panic(err)
	}
	return g
}

func (g GUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%x-%x", g.Data1, g.Data2, g.Data3, g.Data4[:2], g.Data4[2:])
}
