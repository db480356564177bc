package gopshim

import (
	"fmt"

	"github.com/BeatGlow/gopshim/efi"
)

// GraphicsOutput is the synthesized Graphics Output Protocol.
//
// It owns the single mode and the configured engine state; neither changes after construction.
type GraphicsOutput struct {
	mode     *efi.ProtocolMode
	engine   BltEngine
	config   []byte
	priority efi.PriorityController
	tpl      efi.TPL
}

func newGraphicsOutput(mode *efi.ProtocolMode, engine BltEngine, config []byte, priority efi.PriorityController, tpl efi.TPL) *GraphicsOutput {
	return &GraphicsOutput{
		mode:     mode,
		engine:   engine,
		config:   config,
		priority: priority,
		tpl:      tpl,
	}
}

func (gop *GraphicsOutput) String() string {
	info := gop.mode.Info
	return fmt.Sprintf("GOP shim %dx%d (%d pixels per scan line) at %#x",
		info.HorizontalResolution, info.VerticalResolution, info.PixelsPerScanLine, gop.mode.FrameBufferBase)
}

// Mode returns the current mode. The returned value is shared and must not be modified.
func (gop *GraphicsOutput) Mode() *efi.ProtocolMode {
	return gop.mode
}

// QueryMode returns the shared mode information for modeNumber; only mode 0 exists.
func (gop *GraphicsOutput) QueryMode(modeNumber uint32, sizeOfInfo *uint64, info **efi.ModeInformation) efi.Status {
	if info == nil || sizeOfInfo == nil || modeNumber >= gop.mode.MaxMode {
		return efi.InvalidParameter
	}
	*info = gop.mode.Info
	*sizeOfInfo = gop.mode.SizeOfInfo
	return efi.Success
}

// SetMode accepts any mode number up to and including MaxMode (so both 0 and 1 succeed). Only
// one mode exists, so there is nothing to switch.
func (gop *GraphicsOutput) SetMode(modeNumber uint32) efi.Status {
	if modeNumber > gop.mode.MaxMode {
		return efi.Unsupported
	}
	return efi.Success
}

// Blt validates the request and forwards it to the engine with the task priority raised.
func (gop *GraphicsOutput) Blt(buf []efi.BltPixel, op efi.BltOperation, srcX, srcY, dstX, dstY, width, height, delta uint64) efi.Status {
	if op >= efi.BltOperationMax {
		return efi.InvalidParameter
	}
	if width == 0 || height == 0 {
		return efi.InvalidParameter
	}

	defer raisePriority(gop.priority, gop.tpl).release()

	return gop.engine.Blt(gop.config, buf, op, srcX, srcY, dstX, dstY, width, height, delta)
}

var _ efi.GraphicsOutputProtocol = (*GraphicsOutput)(nil)
