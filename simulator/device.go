package simulator

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"
)

// Opts is the configuration of a simulated device.
type Opts struct {
	W int // Width in pixels (default: 128)
	H int // Height in pixels (default: 128)

	Layout Layout // Memory write color layout (default: LayoutRGB565)
	Wrap   Wrap   // Cursor wrap boundary (default: WrapAtEnd)

	// Logger receives decoder diagnostics. nil discards them.
	Logger *log.Logger
}

// Device is one simulated ILI9163C: its framebuffer, the chip select and
// data/command lines, the decoder and the SPI port in front of it.
type Device struct {
	fb   *Framebuffer
	cs   *Line
	dc   *Line
	dec  *Decoder
	port *Port
}

// New returns a selected device in command mode.
//
// opts can be nil to use defaults (128x128, RGB565).
func New(opts *Opts) (*Device, error) {
	if opts == nil {
		opts = &Opts{W: 128, H: 128}
	}
	if opts.W > 0x10000 || opts.H > 0x10000 {
		return nil, fmt.Errorf("simulator: %dx%d exceeds the 16-bit address space", opts.W, opts.H)
	}
	fb, err := NewFramebuffer(opts.W, opts.H)
	if err != nil {
		return nil, err
	}
	cs := NewLine("CSX", gpio.Low)
	dc := NewLine("DCX", gpio.Low)
	dec := NewDecoder(fb, cs, dc, opts)
	return &Device{
		fb:   fb,
		cs:   cs,
		dc:   dc,
		dec:  dec,
		port: NewPort(dec, cs),
	}, nil
}

// Framebuffer returns the panel memory shared with renderers.
func (d *Device) Framebuffer() *Framebuffer { return d.fb }

// CS returns the chip select line. Low selects the device.
func (d *Device) CS() *Line { return d.cs }

// DC returns the data/command line. Low marks opcode bytes.
func (d *Device) DC() *Line { return d.dc }

// Decoder returns the byte sink.
func (d *Device) Decoder() *Decoder { return d.dec }

// Port returns the SPI port to pass to a driver.
func (d *Device) Port() *Port { return d.port }

func (d *Device) String() string {
	return fmt.Sprintf("simulator.Device{%dx%d}", d.fb.Width(), d.fb.Height())
}
