package gopshim

import (
	"fmt"

	"github.com/BeatGlow/gopshim/efi"
)

// BltEngine is a block transfer engine for a linear frame buffer, such as
// [github.com/BeatGlow/gopshim/framebuffer.Engine].
type BltEngine interface {
	// Configure prepares config for the frame buffer. When *size is smaller than required it
	// stores the required size and fails.
	Configure(frameBuffer uint64, info *efi.ModeInformation, config []byte, size *uint64) efi.Status

	// Blt performs a block transfer using a configured buffer.
	Blt(config []byte, buf []efi.BltPixel, op efi.BltOperation, srcX, srcY, dstX, dstY, width, height, delta uint64) efi.Status
}

// configureBlt runs the probe, allocate, configure sequence and returns the engine state.
//
// The probe passes no buffer and a zero size; engines report either BufferTooSmall or
// InvalidParameter for it, with the required size filled in.
func configureBlt(engine BltEngine, pool efi.PoolAllocator, mode *efi.ProtocolMode) ([]byte, error) {
	var size uint64
	switch status := engine.Configure(mode.FrameBufferBase, mode.Info, nil, &size); status {
	case efi.BufferTooSmall, efi.InvalidParameter:
	case efi.Success:
		return nil, fmt.Errorf("gopshim: blt probe succeeded without a configuration buffer: %w", efi.Unsupported)
	default:
		return nil, fmt.Errorf("gopshim: cannot probe blt configuration size: %w", status)
	}

	config, status := pool.AllocatePool(size)
	if status != efi.Success {
		return nil, fmt.Errorf("gopshim: cannot allocate %d bytes of blt configuration: %w", size, status)
	}

	if status = engine.Configure(mode.FrameBufferBase, mode.Info, config, &size); status != efi.Success {
		return nil, fmt.Errorf("gopshim: cannot configure blt (size %d): %w", size, status)
	}
	return config, nil
}

// priorityGuard holds a raised task priority level until released.
type priorityGuard struct {
	pc  efi.PriorityController
	old efi.TPL
}

func raisePriority(pc efi.PriorityController, tpl efi.TPL) priorityGuard {
	return priorityGuard{pc: pc, old: pc.RaiseTPL(tpl)}
}

func (g priorityGuard) release() {
	g.pc.RestoreTPL(g.old)
}
