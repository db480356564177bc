package sim

import (
	"testing"

	"github.com/BeatGlow/gopshim/efi"
)

func TestProtocolDatabase(t *testing.T) {
	bs := New()

	if _, status := bs.LocateProtocol(efi.GraphicsOutputProtocolGUID); status != efi.NotFound {
		t.Errorf("expected %v on an empty database, got %v", efi.NotFound, status)
	}

	var first efi.Handle
	if status := bs.InstallProtocolInterface(&first, efi.AppleScreenInfoProtocolGUID, "screen"); status != efi.Success {
		t.Fatalf("expected install to succeed, got %v", status)
	}
	if first == 0 {
		t.Fatal("expected a new handle")
	}

	// Same GUID twice on one handle is rejected.
	if status := bs.InstallProtocolInterface(&first, efi.AppleScreenInfoProtocolGUID, "again"); status != efi.InvalidParameter {
		t.Errorf("expected %v, got %v", efi.InvalidParameter, status)
	}

	var second efi.Handle
	bs.InstallProtocolInterface(&second, efi.AppleScreenInfoProtocolGUID, "other")
	if second == first {
		t.Error("expected a distinct handle")
	}

	iface, status := bs.LocateProtocol(efi.AppleScreenInfoProtocolGUID)
	if status != efi.Success || iface != "screen" {
		t.Errorf("expected the first installed interface, got %v (%v)", iface, status)
	}
	if v := bs.Handles(efi.AppleScreenInfoProtocolGUID); len(v) != 2 {
		t.Errorf("expected 2 handles, got %v", v)
	}
	if bs.Installs != 2 {
		t.Errorf("expected 2 installs, got %d", bs.Installs)
	}

	unknown := efi.Handle(99)
	if status := bs.InstallProtocolInterface(&unknown, efi.GraphicsOutputProtocolGUID, nil); status != efi.InvalidParameter {
		t.Errorf("expected unknown handle to be rejected, got %v", status)
	}
	if status := bs.InstallProtocolInterface(nil, efi.GraphicsOutputProtocolGUID, nil); status != efi.InvalidParameter {
		t.Errorf("expected nil handle pointer to be rejected, got %v", status)
	}
}

func TestAllocatePool(t *testing.T) {
	bs := New()
	bs.PoolLimit = 100

	b, status := bs.AllocatePool(60)
	if status != efi.Success || len(b) != 60 {
		t.Fatalf("expected 60 bytes, got %d (%v)", len(b), status)
	}
	if _, status = bs.AllocatePool(41); status != efi.OutOfResources {
		t.Errorf("expected %v past the limit, got %v", efi.OutOfResources, status)
	}
	if v := bs.Allocations(); len(v) != 1 || v[0] != 60 {
		t.Errorf("expected allocations [60], got %v", v)
	}
}

func TestTPL(t *testing.T) {
	bs := New()
	if v := bs.TPL(); v != efi.TPLApplication {
		t.Fatalf("expected %s, got %s", efi.TPLApplication, v)
	}

	old := bs.RaiseTPL(efi.TPLNotify)
	if old != efi.TPLApplication || bs.TPL() != efi.TPLNotify {
		t.Errorf("expected raise from %s to %s, got %s to %s", efi.TPLApplication, efi.TPLNotify, old, bs.TPL())
	}
	bs.RestoreTPL(old)
	if v := bs.TPL(); v != efi.TPLApplication {
		t.Errorf("expected %s after restore, got %s", efi.TPLApplication, v)
	}

	t.Run("lower", func(it *testing.T) {
		defer func() {
			if recover() == nil {
				it.Error("expected lowering through RaiseTPL to panic")
			}
		}()
		bs.RaiseTPL(efi.TPLNotify)
		bs.RaiseTPL(efi.TPLCallback)
	})
}

func TestMemory(t *testing.T) {
	var mem Memory
	a := mem.Alloc(0x2000, 0x100)
	mem.Alloc(0x1000, 0x100)

	b, err := mem.Slice(0x2010, 0x10)
	if err != nil {
		t.Fatal(err)
	}
	b[0] = 0xaa
	if a[0x10] != 0xaa {
		t.Error("expected slice to alias the region")
	}

	for _, r := range [][2]uint64{
		{0x2000, 0x101},
		{0x1f00, 0x10},
		{0x10f0, 0x20},
		{0xffffffffffffff00, 0x200},
	} {
		if _, err := mem.Slice(r[0], r[1]); err != ErrUnmapped {
			t.Errorf("expected %#x+%#x to be unmapped, got %v", r[0], r[1], err)
		}
	}
}

func TestScreenInfo(t *testing.T) {
	var (
		mem    Memory
		screen = NewScreen(&mem, 0x8000_0000, 1440, 900, 5760)
	)
	var (
		base, size                  uint64
		stride, width, height, bits uint32
	)
	if status := screen.GetInfo(&base, &size, &stride, &width, &height, &bits); status != efi.Success {
		t.Fatalf("expected GetInfo to succeed, got %v", status)
	}
	if base != 0x8000_0000 || size != 5760*900 || stride != 5760 || width != 1440 || height != 900 || bits != 32 {
		t.Errorf("unexpected geometry %#x %d %d %dx%dx%d", base, size, stride, width, height, bits)
	}
	if _, err := mem.Slice(base, size); err != nil {
		t.Errorf("expected frame buffer to be mapped: %v", err)
	}
	if status := screen.GetInfo(nil, &size, &stride, &width, &height, &bits); status != efi.InvalidParameter {
		t.Errorf("expected %v for a nil output, got %v", efi.InvalidParameter, status)
	}
}
