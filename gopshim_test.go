package gopshim

import (
	"io"
	"log"

	"github.com/BeatGlow/gopshim/efi"
	"github.com/BeatGlow/gopshim/efi/sim"
)

const testBase = 0x8000_0000

type configureCall struct {
	frameBuffer uint64
	info        *efi.ModeInformation
	config      []byte
	size        uint64
}

type bltCall struct {
	config                                    []byte
	buf                                       []efi.BltPixel
	op                                        efi.BltOperation
	srcX, srcY, dstX, dstY, width, height, dt uint64
	tpl                                       efi.TPL
}

// spyEngine records calls and replies with scripted statuses.
type spyEngine struct {
	bs              *sim.BootServices
	required        uint64
	probeStatus     efi.Status
	configureStatus efi.Status
	bltStatus       efi.Status
	configures      []configureCall
	blts            []bltCall
}

func newSpyEngine(bs *sim.BootServices) *spyEngine {
	return &spyEngine{
		bs:              bs,
		required:        128,
		probeStatus:     efi.BufferTooSmall,
		configureStatus: efi.Success,
		bltStatus:       efi.Success,
	}
}

func (e *spyEngine) Configure(frameBuffer uint64, info *efi.ModeInformation, config []byte, size *uint64) efi.Status {
	e.configures = append(e.configures, configureCall{frameBuffer, info, config, *size})
	if config == nil {
		*size = e.required
		return e.probeStatus
	}
	return e.configureStatus
}

func (e *spyEngine) Blt(config []byte, buf []efi.BltPixel, op efi.BltOperation, srcX, srcY, dstX, dstY, width, height, delta uint64) efi.Status {
	e.blts = append(e.blts, bltCall{config, buf, op, srcX, srcY, dstX, dstY, width, height, delta, e.bs.TPL()})
	return e.bltStatus
}

func testConfig() *Config {
	return &Config{
		Logger: log.New(io.Discard, "", 0),
	}
}

func testGeometry() Geometry {
	return Geometry{
		BaseAddress:     testBase,
		FrameBufferSize: 7680 * 1080,
		BytesPerRow:     7680,
		Width:           1920,
		Height:          1080,
		Depth:           32,
	}
}

// testEnvironment returns boot services with a vendor screen info protocol installed.
func testEnvironment(g Geometry) (*sim.BootServices, *sim.Memory, *sim.ScreenInfo) {
	var (
		bs     = sim.New()
		mem    = new(sim.Memory)
		screen = sim.NewScreen(mem, g.BaseAddress, g.Width, g.Height, g.BytesPerRow)
		handle efi.Handle
	)
	bs.InstallProtocolInterface(&handle, efi.AppleScreenInfoProtocolGUID, screen)
	bs.Installs = 0
	return bs, mem, screen
}
