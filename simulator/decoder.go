package simulator

import (
	"io"
	"log"
	"sync"

	"periph.io/x/conn/v3/gpio"
)

// Commands understood by the decoder. Every other opcode is latched and
// otherwise ignored, as is any parameter byte sent after it.
const (
	cmdINVOFF  byte = 0x20 // Display Inversion Off
	cmdINVON   byte = 0x21 // Display Inversion On
	cmdDISPOFF byte = 0x28 // Display Off
	cmdDISPON  byte = 0x29 // Display On
	cmdCASET   byte = 0x2A // Column Address Set
	cmdPASET   byte = 0x2B // Page Address Set
	cmdRAMWR   byte = 0x2C // Memory Write
	cmdMADCTL  byte = 0x36 // Memory Access Control
)

// MADCTL bits. The low nibble (RGB/BGR order) is not interpreted.
const (
	madctlMY byte = 0x80 // Row address order
	madctlMX byte = 0x40 // Column address order
	madctlMV byte = 0x20 // Row/column exchange
	madctlML byte = 0x10 // Vertical refresh order
)

// Window is one axis of the addressing window, in device pixels.
type Window struct {
	Start, End uint16
}

// Orientation holds the MADCTL flags. They are recorded but not applied to
// write coordinates.
type Orientation struct {
	MirrorY   bool // MY
	MirrorX   bool // MX
	SwapXY    bool // MV
	ScanOrder bool // ML
}

// Wrap selects the column/row at which the memory write cursor wraps.
type Wrap uint8

const (
	// WrapAtEnd wraps when the cursor reaches the window end value, so the
	// end column and row are never written by advancing. This is the
	// reference behaviour.
	WrapAtEnd Wrap = iota
	// WrapPastEnd wraps after the end column and row, treating the window
	// as inclusive like the datasheet does.
	WrapPastEnd
)

// Decoder reconstructs controller state from the byte stream.
//
// Bytes are ignored while chip select is High. Otherwise a byte is an opcode
// when data select is Low and a parameter of the latched opcode when it is
// High. The decoder never rejects input: unknown opcodes, stray parameters
// and pixels outside the framebuffer are absorbed and logged.
type Decoder struct {
	cs, dc gpio.PinIn
	fb     *Framebuffer
	layout Layout
	wrap   Wrap
	logger *log.Logger

	mu          sync.Mutex
	command     byte
	params      []byte
	cursor      Point
	xWin, yWin  Window
	orientation Orientation
}

// NewDecoder returns a decoder writing into fb and gated by cs and dc.
// Only the Layout, Wrap and Logger fields of opts are used; opts may be nil.
func NewDecoder(fb *Framebuffer, cs, dc gpio.PinIn, opts *Opts) *Decoder {
	if opts == nil {
		opts = &Opts{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Decoder{
		cs:     cs,
		dc:     dc,
		fb:     fb,
		layout: opts.Layout,
		wrap:   opts.Wrap,
		logger: logger,
		params: make([]byte, 0, 3),
		xWin:   Window{0, uint16(fb.Width() - 1)},
		yWin:   Window{0, uint16(fb.Height() - 1)},
	}
}

// WriteByte feeds one byte from the bus. It always returns nil.
func (d *Decoder) WriteByte(b byte) error {
	if d.cs.Read() == gpio.High {
		return nil
	}
	isData := d.dc.Read() == gpio.High

	d.mu.Lock()
	defer d.mu.Unlock()
	if isData {
		d.data(b)
	} else {
		d.latch(b)
	}
	return nil
}

// Write feeds p one byte at a time. The signal lines are sampled for every
// byte. It always returns len(p), nil.
func (d *Decoder) Write(p []byte) (int, error) {
	for _, b := range p {
		_ = d.WriteByte(b)
	}
	return len(p), nil
}

// Command returns the latched opcode.
func (d *Decoder) Command() byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.command
}

// Cursor returns the next memory write position.
func (d *Decoder) Cursor() Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor
}

// Window returns the column and page windows.
func (d *Decoder) Window() (x, y Window) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.xWin, d.yWin
}

// Orientation returns the last MADCTL flags.
func (d *Decoder) Orientation() Orientation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.orientation
}

func (d *Decoder) latch(cmd byte) {
	if len(d.params) != 0 {
		d.logger.Printf("simulator: command 0x%02X discards %d pending bytes of 0x%02X", cmd, len(d.params), d.command)
	}
	d.command = cmd
	d.params = d.params[:0]

	switch cmd {
	case cmdINVOFF:
		d.fb.SetInverted(false)
	case cmdINVON:
		d.fb.SetInverted(true)
	case cmdDISPOFF:
		d.fb.SetDisplay(false)
	case cmdDISPON:
		d.fb.SetDisplay(true)
	case cmdRAMWR:
		d.cursor = Point{X: d.xWin.Start, Y: d.yWin.Start}
	case cmdCASET, cmdPASET, cmdMADCTL:
	default:
		d.logger.Printf("simulator: command 0x%02X not implemented, ignored", cmd)
	}
}

func (d *Decoder) data(b byte) {
	switch d.command {
	case cmdCASET:
		if w, ok := d.window(b); ok {
			d.xWin = w
		}
	case cmdPASET:
		if w, ok := d.window(b); ok {
			d.yWin = w
		}
	case cmdRAMWR:
		if len(d.params) == 0 {
			d.params = append(d.params, b)
			return
		}
		word := uint16(d.params[0])<<8 | uint16(b)
		d.params = d.params[:0]
		d.commit(word)
	case cmdMADCTL:
		d.orientation = Orientation{
			MirrorY:   b&madctlMY != 0,
			MirrorX:   b&madctlMX != 0,
			SwapXY:    b&madctlMV != 0,
			ScanOrder: b&madctlML != 0,
		}
	}
}

// window collects start high, start low, end high and end low bytes. The
// fourth byte completes the window and empties the buffer, so a fifth byte
// begins a new sequence.
func (d *Decoder) window(b byte) (Window, bool) {
	if len(d.params) < 3 {
		d.params = append(d.params, b)
		return Window{}, false
	}
	w := Window{
		Start: uint16(d.params[0])<<8 | uint16(d.params[1]),
		End:   uint16(d.params[2])<<8 | uint16(b),
	}
	d.params = d.params[:0]
	return w, true
}

func (d *Decoder) commit(word uint16) {
	if err := d.fb.Set(d.cursor, d.layout.Decode(word)); err != nil {
		d.logger.Printf("simulator: pixel 0x%04X dropped: %v", word, err)
	}

	d.cursor.X++
	if d.cursor.X != d.limit(d.xWin) {
		return
	}
	d.cursor.X = d.xWin.Start
	d.cursor.Y++
	if d.cursor.Y == d.limit(d.yWin) {
		d.cursor.Y = d.yWin.Start
	}
}

// limit is the coordinate at which the cursor wraps back to w.Start.
func (d *Decoder) limit(w Window) uint16 {
	if d.wrap == WrapPastEnd {
		return w.End + 1
	}
	return w.End
}
