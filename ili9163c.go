package ili9163c

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ili9163c/image565"
)

// ErrHalted is returned by every operation once Halt was called.
var ErrHalted = errors.New("ili9163c: halted")

// sleep is replaced in tests.
var sleep = time.Sleep

// Opts is the configuration for the ILI9163C display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 128, must be ≤162)
	H int // Height (default: 128, must be ≤162)

	// Memory access control flags sent during initialization
	Orientation Orientation

	// Optional control pins
	RST gpio.PinIO  // Reset pin (optional, nil if not used)
	CS  gpio.PinOut // Chip select held low while running (optional, nil if the SPI port drives it)
}

// Dev is the device handle for the ILI9163C display.
type Dev struct {
	// Communication
	c     conn.Conn   // SPI connection
	dc    gpio.PinOut // Data/Command pin
	rst   gpio.PinIO  // Reset pin (optional)
	cs    gpio.PinOut // Chip select pin (optional)
	maxTx int         // Largest single Tx, 0 if unlimited

	rect        image.Rectangle
	orientation Orientation

	// Pixel buffers
	buffer *image565.Image // What the panel shows
	next   *image565.Image // Pending frame for Draw and SetPixel, lazily allocated

	// State
	halted bool
}

// NewSPI creates a new ILI9163C device connected via SPI.
//
// The SPI port is configured for 15MHz, Mode0 (CPOL=0, CPHA=0), 8-bit
// transfers. The dc (Data/Command) GPIO pin must be provided and configured
// as an output.
//
// opts can be nil to use defaults (128x128 display).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 128, H: 128}
	}
	if opts.W <= 0 || opts.W > 162 {
		return nil, errors.New("ili9163c: width must be between 1 and 162")
	}
	if opts.H <= 0 || opts.H > 162 {
		return nil, errors.New("ili9163c: height must be between 1 and 162")
	}
	if dc == nil {
		return nil, errors.New("ili9163c: dc pin is required")
	}

	c, err := p.Connect(15*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ili9163c: %w", err)
	}

	rect := image.Rect(0, 0, opts.W, opts.H)
	d := &Dev{
		c:           c,
		dc:          dc,
		rst:         opts.RST,
		cs:          opts.CS,
		rect:        rect,
		orientation: opts.Orientation,
		buffer:      image565.NewImage(rect),
	}
	if l, ok := c.(conn.Limits); ok {
		d.maxTx = l.MaxTxSize()
	}

	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

// init sends the initialization sequence to the display.
func (d *Dev) init() error {
	if d.cs != nil {
		if err := d.cs.Out(gpio.Low); err != nil {
			return fmt.Errorf("ili9163c: failed to select chip: %w", err)
		}
	}
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("ili9163c: failed to pull RST low: %w", err)
		}
		sleep(10 * time.Millisecond)
		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("ili9163c: failed to pull RST high: %w", err)
		}
		sleep(120 * time.Millisecond)
	}

	if err := d.sendCommand(cmdSWRESET); err != nil {
		return err
	}
	sleep(120 * time.Millisecond)
	if err := d.sendCommand(cmdSLPOUT); err != nil {
		return err
	}
	sleep(120 * time.Millisecond)

	if err := d.sendCommand(cmdCOLMOD, colmod16bpp); err != nil {
		return err
	}
	if err := d.sendCommand(cmdMADCTL, byte(d.orientation)); err != nil {
		return err
	}
	if err := d.sendCommand(cmdINVOFF); err != nil {
		return err
	}

	// Clear display RAM
	if err := d.writeRect(d.rect, d.buffer.Pix); err != nil {
		return err
	}
	return d.sendCommand(cmdDISPON)
}

// sendCommand sends an opcode with DC low followed by its parameters with
// DC high.
func (d *Dev) sendCommand(cmd byte, params ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		return err
	}
	if len(params) == 0 {
		return nil
	}
	return d.sendData(params)
}

// sendData sends a slice of data bytes, split to the connection limit.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(data) > 0 {
		n := len(data)
		if d.maxTx > 0 && n > d.maxTx {
			n = d.maxTx
		}
		if err := d.c.Tx(data[:n], nil); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// writeRect sets the addressing window to r and streams pixels into it.
// Window ends are inclusive.
func (d *Dev) writeRect(r image.Rectangle, pixels []byte) error {
	x0, x1 := r.Min.X, r.Max.X-1
	y0, y1 := r.Min.Y, r.Max.Y-1
	if err := d.sendCommand(cmdCASET, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	if err := d.sendCommand(cmdPASET, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)); err != nil {
		return err
	}
	if err := d.sendCommand(cmdRAMWR); err != nil {
		return err
	}
	return d.sendData(pixels)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image565.Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes a full frame of big-endian RGB565 pixels, row by row.
// The data must be exactly 2 * d.rect.Dx() * d.rect.Dy() bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, ErrHalted
	}
	if len(pixels) != len(d.buffer.Pix) {
		return 0, errors.New("ili9163c: invalid buffer size")
	}
	if err := d.writeRect(d.rect, pixels); err != nil {
		return 0, err
	}
	d.store(d.rect, pixels)
	return len(pixels), nil
}

// Draw draws an image onto the display, sending only the smallest rectangle
// that changed since the last update.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}

	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// Fast path: a full frame already in wire format
	if srcImg, ok := src.(*image565.Image); ok {
		if dst == d.rect && sp == (image.Point{}) && srcImg.Rect == d.rect {
			_, err := d.Write(srcImg.Pix)
			return err
		}
	}

	draw.Draw(d.pending(), dst, src, sp, draw.Src)
	return d.flush()
}

// pending returns the frame that Draw and SetPixel compose into.
func (d *Dev) pending() *image565.Image {
	if d.next == nil {
		d.next = image565.NewImage(d.rect)
		copy(d.next.Pix, d.buffer.Pix)
	}
	return d.next
}

// flush sends the difference between the pending frame and the panel.
func (d *Dev) flush() error {
	if d.next == nil {
		return nil
	}
	r := d.calculateDiff()
	if r.Empty() {
		return nil
	}
	if err := d.writeRect(r, d.extractRegion(r)); err != nil {
		return err
	}
	copy(d.buffer.Pix, d.next.Pix)
	return nil
}

// calculateDiff returns the minimal rectangle where the pending frame and the
// panel differ, or an empty rectangle.
func (d *Dev) calculateDiff() image.Rectangle {
	width := d.rect.Dx()
	height := d.rect.Dy()
	stride := d.buffer.Stride

	minRow, maxRow := height, -1
	minCol, maxCol := width, -1

	for y := 0; y < height; y++ {
		rowStart := y * stride
		rowEnd := rowStart + stride
		if bytes.Equal(d.buffer.Pix[rowStart:rowEnd], d.next.Pix[rowStart:rowEnd]) {
			continue
		}
		if y < minRow {
			minRow = y
		}
		maxRow = y

		for x := 0; x < width; x++ {
			i := rowStart + 2*x
			if d.buffer.Pix[i] != d.next.Pix[i] || d.buffer.Pix[i+1] != d.next.Pix[i+1] {
				if x < minCol {
					minCol = x
				}
				if x > maxCol {
					maxCol = x
				}
			}
		}
	}

	if maxRow < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minCol, minRow, maxCol+1, maxRow+1)
}

// extractRegion copies the pending pixels inside r, row by row.
func (d *Dev) extractRegion(r image.Rectangle) []byte {
	rowBytes := 2 * r.Dx()
	result := make([]byte, 0, rowBytes*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := d.next.PixOffset(r.Min.X, y)
		result = append(result, d.next.Pix[i:i+rowBytes]...)
	}
	return result
}

// store records pixels written to r in the panel shadow and the pending
// frame, so later differential updates stay correct.
func (d *Dev) store(r image.Rectangle, pixels []byte) {
	rowBytes := 2 * r.Dx()
	for _, img := range []*image565.Image{d.buffer, d.next} {
		if img == nil {
			continue
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			off := (y - r.Min.Y) * rowBytes
			copy(img.Pix[img.PixOffset(r.Min.X, y):], pixels[off:off+rowBytes])
		}
	}
}

// Invert inverts the display colors.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return ErrHalted
	}
	mode := cmdINVOFF
	if invert {
		mode = cmdINVON
	}
	return d.sendCommand(mode)
}

// SetDisplay turns the panel output on or off. Memory contents are kept.
func (d *Dev) SetDisplay(on bool) error {
	if d.halted {
		return ErrHalted
	}
	mode := cmdDISPOFF
	if on {
		mode = cmdDISPON
	}
	return d.sendCommand(mode)
}

// SetOrientation sends new memory access control flags.
func (d *Dev) SetOrientation(o Orientation) error {
	if d.halted {
		return ErrHalted
	}
	if err := d.sendCommand(cmdMADCTL, byte(o)); err != nil {
		return err
	}
	d.orientation = o
	return nil
}

// Orientation returns the last memory access control flags sent.
func (d *Dev) Orientation() Orientation {
	return d.orientation
}

// Halt turns the display off and releases the chip select pin. Every later
// call returns ErrHalted; calling Halt again is a no-op.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	if err := d.sendCommand(cmdDISPOFF); err != nil {
		return err
	}
	if d.cs != nil {
		return d.cs.Out(gpio.High)
	}
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ili9163c.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// ParseColor packs 8-bit channels into the 16-bit color sent by RAMWR.
func ParseColor(r, g, b uint8) image565.RGB565 {
	return image565.FromRGB(r, g, b)
}

var _ display.Drawer = &Dev{}
