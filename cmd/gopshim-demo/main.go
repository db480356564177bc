package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/golang/freetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/gopshim"
	"github.com/BeatGlow/gopshim/draw"
	"github.com/BeatGlow/gopshim/efi"
	"github.com/BeatGlow/gopshim/efi/sim"
	"github.com/BeatGlow/gopshim/framebuffer"
)

func main() {
	widthFlag := flag.Uint("width", 1366, "Simulated screen width")
	heightFlag := flag.Uint("height", 768, "Simulated screen height")
	strideFlag := flag.Uint("stride", 1408*4, "Simulated bytes per row")
	baseFlag := flag.Uint64("base", 0x8000_0000, "Frame buffer physical base address")
	fbdevFlag := flag.String("fbdev", "", "Use a Linux frame buffer device (e.g. /dev/fb0) as the vendor screen info")
	pmemFlag := flag.Bool("pmem", false, "Map the frame buffer from physical memory (requires root)")
	twiceFlag := flag.Bool("twice", false, "Run the shim a second time to show it detects the installed protocol")
	textFlag := flag.String("text", "GOP shim active", "Banner text")
	outFlag := flag.String("out", "", "Write the resulting screen contents to a PNG file")
	flag.Parse()

	var (
		bs     = sim.New()
		mem    framebuffer.Memory
		screen efi.ScreenInfoProtocol
	)
	switch {
	case *fbdevFlag != "":
		dev, err := framebuffer.OpenDevice(*fbdevFlag)
		if err != nil {
			fatal(err)
		}
		defer dev.Close()
		mem, screen = dev, dev
		fmt.Printf("using frame buffer device: %s\n", *fbdevFlag)

	case *pmemFlag:
		if _, err := host.Init(); err != nil {
			fatal(err)
		}
		pm := new(framebuffer.PhysicalMemory)
		defer pm.Close()
		mem = pm
		screen = &sim.ScreenInfo{
			BaseAddress:     *baseFlag,
			FrameBufferSize: uint64(*strideFlag) * uint64(*heightFlag),
			BytesPerRow:     uint32(*strideFlag),
			Width:           uint32(*widthFlag),
			Height:          uint32(*heightFlag),
			Depth:           32,
		}
		fmt.Printf("using physical memory at %#x\n", *baseFlag)

	default:
		m := new(sim.Memory)
		mem = m
		screen = sim.NewScreen(m, *baseFlag, uint32(*widthFlag), uint32(*heightFlag), uint32(*strideFlag))
		fmt.Println("using simulated memory")
	}

	var vendor efi.Handle
	if status := bs.InstallProtocolInterface(&vendor, efi.AppleScreenInfoProtocolGUID, screen); status != efi.Success {
		fatal(status)
	}

	d := gopshim.New(bs, framebuffer.New(mem), nil)
	if err := d.Start(); err != nil {
		fatal(err)
	}
	fmt.Printf("vendor geometry: %s\n", d.Geometry())
	fmt.Printf("installed %s on handle %d\n", d.Protocol(), d.Handle())

	if *twiceFlag {
		again := gopshim.New(bs, framebuffer.New(mem), nil)
		if err := again.Start(); err != nil {
			fatal(err)
		}
		fmt.Printf("second run: state %s, native protocol found: %t\n", again.State(), again.Native())
	}

	// From here on, only use what any boot loader would see.
	iface, status := bs.LocateProtocol(efi.GraphicsOutputProtocolGUID)
	if status != efi.Success {
		fatal(status)
	}
	gop := iface.(efi.GraphicsOutputProtocol)

	g, err := gopshim.NativeSource{Protocol: gop}.Geometry()
	if err != nil {
		fatal(err)
	}
	fmt.Printf("published geometry: %s\n", g)

	canvas, err := draw.NewCanvas(gop)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using canvas: %s\n", canvas)

	paint(canvas)
	if err = banner(canvas, *textFlag, 32); err != nil {
		fatal(err)
	}
	if err = canvas.Flush(); err != nil {
		fatal(err)
	}

	if *outFlag != "" {
		if err = canvas.Snapshot(); err != nil {
			fatal(err)
		}
		if err = writePNG(*outFlag, canvas); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote screen contents to %s\n", *outFlag)
	}
}

func paint(dst *draw.Canvas) {
	r := dst.Bounds()

	// Gradient background
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Set(x, y, color.RGBA{
				R: uint8(x * 255 / r.Dx()),
				G: uint8(y * 255 / r.Dy()),
				B: 0x40,
				A: 0xff,
			})
		}
	}

	// Box around edge, with the diagonals
	draw.Rectangle(dst, r, color.White)
	draw.Line(dst, r.Min, r.Max.Sub(image.Pt(1, 1)), color.White)
	draw.Line(dst, image.Pt(r.Max.X-1, r.Min.Y), image.Pt(r.Min.X, r.Max.Y-1), color.White)
}

func banner(dst *draw.Canvas, text string, size float64) error {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return err
	}

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(size)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(image.White)
	c.SetHinting(font.HintingFull)

	pt := freetype.Pt(16, 16+int(c.PointToFixed(size)>>6))
	_, err = c.DrawString(text, pt)
	return err
}

func writePNG(name string, m image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = png.Encode(f, m); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
