package simulator

import (
	"errors"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Port is a simulated SPI port wired to a Decoder. A driver connects to it
// exactly like it would to a port opened with spireg.Open.
type Port struct {
	d  *Decoder
	cs *Line

	mu        sync.Mutex
	connected bool
	freq      physic.Frequency
}

// NewPort returns a port feeding d. cs is returned by CS().
func NewPort(d *Decoder, cs *Line) *Port {
	return &Port{d: d, cs: cs}
}

func (p *Port) String() string {
	return "ili9163c-sim"
}

// Connect returns the connection. Only 8-bit MSB-first words are supported
// and Connect may be called once.
func (p *Port) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if bits != 8 {
		return nil, errors.New("simulator: only 8 bits per word supported")
	}
	if mode&spi.LSBFirst != 0 {
		return nil, errors.New("simulator: LSBFirst not supported")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connected {
		return nil, errors.New("simulator: Connect cannot be called twice")
	}
	p.connected = true
	if p.freq == 0 || f < p.freq {
		p.freq = f
	}
	return &portConn{p: p}, nil
}

// LimitSpeed records the maximum speed. The simulator has no timing.
func (p *Port) LimitSpeed(f physic.Frequency) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.freq = f
	return nil
}

// Close implements io.Closer.
func (p *Port) Close() error {
	return nil
}

// CLK returns gpio.INVALID.
func (p *Port) CLK() gpio.PinOut { return gpio.INVALID }

// MOSI returns gpio.INVALID.
func (p *Port) MOSI() gpio.PinOut { return gpio.INVALID }

// MISO returns gpio.INVALID.
func (p *Port) MISO() gpio.PinIn { return gpio.INVALID }

// CS returns the chip select line.
func (p *Port) CS() gpio.PinOut { return p.cs }

type portConn struct {
	p *Port
}

func (c *portConn) String() string {
	return c.p.String()
}

func (c *portConn) Duplex() conn.Duplex {
	return conn.Full
}

// Tx writes every byte of w to the decoder. The controller has no read path
// in this model, so r is zero filled.
func (c *portConn) Tx(w, r []byte) error {
	if len(r) != 0 && len(r) != len(w) {
		return errors.New("simulator: r must be empty or the same length as w")
	}
	_, _ = c.p.d.Write(w)
	clear(r)
	return nil
}

func (c *portConn) TxPackets(pkts []spi.Packet) error {
	for _, pkt := range pkts {
		if pkt.BitsPerWord != 0 && pkt.BitsPerWord != 8 {
			return errors.New("simulator: only 8 bits per word supported")
		}
		if err := c.Tx(pkt.W, pkt.R); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ spi.PortCloser = &Port{}
	_ spi.Pins       = &Port{}
	_ spi.Conn       = &portConn{}
)
