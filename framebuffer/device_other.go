//go:build !linux

package framebuffer

import "github.com/BeatGlow/gopshim/efi"

// Device is a frame buffer device; not available on this platform.
type Device struct{}

// OpenDevice always fails with [ErrNotSupported] on this platform.
func OpenDevice(_ string) (*Device, error) {
	return nil, ErrNotSupported
}

func (*Device) GetInfo(_, _ *uint64, _, _, _, _ *uint32) efi.Status {
	return efi.Unsupported
}

func (*Device) Slice(_, _ uint64) ([]byte, error) {
	return nil, ErrNotSupported
}

func (*Device) Close() error {
	return nil
}
