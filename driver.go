package gopshim

import (
	"errors"
	"fmt"
	"log"

	"github.com/BeatGlow/gopshim/efi"
)

// Errors
var (
	ErrStarted = errors.New("gopshim: driver already started")
)

// State is the driver lifecycle state.
type State uint8

// Driver states, in the order Start walks through them.
const (
	Idle State = iota
	CheckingStandard
	CheckingVendor
	QueryingGeometry
	SynthesizingMode
	ConfiguringBlt
	AssemblingFacade
	Registering
	Done
	Fatal
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CheckingStandard:
		return "checking standard"
	case CheckingVendor:
		return "checking vendor"
	case QueryingGeometry:
		return "querying geometry"
	case SynthesizingMode:
		return "synthesizing mode"
	case ConfiguringBlt:
		return "configuring blt"
	case AssemblingFacade:
		return "assembling facade"
	case Registering:
		return "registering"
	case Done:
		return "done"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Driver installs the shim. It owns the geometry, the mode, the engine state and the published
// protocol for the rest of the boot session.
type Driver struct {
	bs       efi.BootServices
	engine   BltEngine
	config   Config
	log      *log.Logger
	state    State
	err      error
	native   bool
	geometry Geometry
	handle   efi.Handle
	gop      *GraphicsOutput
}

// New returns a driver that installs through bs and draws with engine. A nil config uses
// [DefaultConfig].
func New(bs efi.BootServices, engine BltEngine, config *Config) *Driver {
	c := config.withDefaults()
	return &Driver{
		bs:     bs,
		engine: engine,
		config: c,
		log:    c.Logger,
	}
}

// Install creates a driver and starts it. It returns the handle the protocol was installed on,
// or the zero handle when a Graphics Output Protocol was already present.
func Install(bs efi.BootServices, engine BltEngine, config *Config) (efi.Handle, error) {
	d := New(bs, engine, config)
	if err := d.Start(); err != nil {
		return 0, err
	}
	return d.Handle(), nil
}

// Start runs detection, configuration and registration. It can be called once.
//
// Nothing is installed unless every step succeeds; the returned error wraps the [efi.Status]
// of the failing step.
func (d *Driver) Start() error {
	if d.state != Idle {
		return ErrStarted
	}
	d.debugf("starting")

	d.state = CheckingStandard
	if _, status := d.bs.LocateProtocol(efi.GraphicsOutputProtocolGUID); status == efi.Success {
		d.debugf("graphics output protocol found, shim not required")
		d.native = true
		d.state = Done
		return nil
	}

	d.state = CheckingVendor
	source := d.config.Source
	if source == nil {
		iface, status := d.bs.LocateProtocol(efi.AppleScreenInfoProtocolGUID)
		if status != efi.Success {
			return d.fail(fmt.Errorf("gopshim: neither graphics output nor vendor screen info protocol found: %w", status))
		}
		protocol, ok := iface.(efi.ScreenInfoProtocol)
		if !ok {
			return d.fail(fmt.Errorf("gopshim: vendor screen info protocol has unexpected type %T: %w", iface, efi.Unsupported))
		}
		d.debugf("found vendor screen info protocol")
		source = VendorSource{Protocol: protocol}
	}

	d.state = QueryingGeometry
	geometry, err := source.Geometry()
	if err != nil {
		return d.fail(fmt.Errorf("gopshim: cannot get screen info: %w", err))
	}
	d.geometry = geometry
	d.debugf("screen info: %s", geometry)

	d.state = SynthesizingMode
	mode := SynthesizeMode(geometry)
	if geometry.Depth != 32 {
		d.debugf("screen depth is %d bits, publishing 32-bit BGRX anyway", geometry.Depth)
	}
	if mode.Info.PixelsPerScanLine != mode.Info.HorizontalResolution {
		d.debugf("width %d differs from %d pixels per scan line, consumers indexing by resolution will skew",
			mode.Info.HorizontalResolution, mode.Info.PixelsPerScanLine)
	}

	d.state = ConfiguringBlt
	config, err := configureBlt(d.engine, d.bs, mode)
	if err != nil {
		return d.fail(err)
	}

	d.state = AssemblingFacade
	gop := newGraphicsOutput(mode, d.engine, config, d.bs, d.config.BltPriority)
	d.debugf("setup complete: %s", gop)

	d.state = Registering
	var handle efi.Handle
	if status := d.bs.InstallProtocolInterface(&handle, efi.GraphicsOutputProtocolGUID, gop); status != efi.Success {
		return d.fail(fmt.Errorf("gopshim: cannot install graphics output protocol: %w", status))
	}

	d.handle = handle
	d.gop = gop
	d.state = Done
	return nil
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Err returns the error that moved the driver to [Fatal].
func (d *Driver) Err() error {
	return d.err
}

// Native reports whether a Graphics Output Protocol was already present.
func (d *Driver) Native() bool {
	return d.native
}

// Geometry returns the captured frame buffer geometry.
func (d *Driver) Geometry() Geometry {
	return d.geometry
}

// Handle returns the handle the protocol was installed on.
func (d *Driver) Handle() efi.Handle {
	return d.handle
}

// Protocol returns the installed protocol, nil until registration succeeded.
func (d *Driver) Protocol() *GraphicsOutput {
	return d.gop
}

func (d *Driver) fail(err error) error {
	d.state = Fatal
	d.err = err
	d.log.Print(err)
	return err
}

func (d *Driver) debugf(format string, args ...any) {
	if debug {
		d.log.Printf("gopshim: "+format, args...)
	}
}
