package simulator

import (
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"
)

func TestPortConnect(t *testing.T) {
	tests := []struct {
		name    string
		mode    spi.Mode
		bits    int
		wantErr bool
	}{
		{"mode0", spi.Mode0, 8, false},
		{"mode3", spi.Mode3, 8, false},
		{"16 bits", spi.Mode0, 16, true},
		{"lsb first", spi.Mode0 | spi.LSBFirst, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := newTestDevice(t, 4, 4, WrapAtEnd)
			c, err := dev.Port().Connect(15*physic.MegaHertz, tt.mode, tt.bits)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Connect() error = %v, wantErr %t", err, tt.wantErr)
			}
			if err == nil && c.Duplex() != conn.Full {
				t.Errorf("Duplex() = %v, want Full", c.Duplex())
			}
		})
	}
}

func TestPortConnectTwice(t *testing.T) {
	dev := newTestDevice(t, 4, 4, WrapAtEnd)
	if _, err := dev.Port().Connect(physic.MegaHertz, spi.Mode0, 8); err != nil {
		t.Fatal(err)
	}
	if _, err := dev.Port().Connect(physic.MegaHertz, spi.Mode0, 8); err == nil {
		t.Error("second Connect() succeeded")
	}
}

func TestPortTx(t *testing.T) {
	dev := newTestDevice(t, 4, 4, WrapAtEnd)
	c, err := dev.Port().Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Tx([]byte{cmdINVON, cmdRAMWR}, nil); err != nil {
		t.Fatal(err)
	}
	dev.DC().High()
	r := []byte{0xAA, 0xAA}
	if err := c.Tx([]byte{0xF8, 0x00}, r); err != nil {
		t.Fatal(err)
	}
	if r[0] != 0 || r[1] != 0 {
		t.Errorf("r = %v, want zeros", r)
	}
	if err := c.Tx([]byte{1, 2}, make([]byte, 1)); err == nil {
		t.Error("Tx with short r succeeded")
	}

	fb := dev.Framebuffer()
	if !fb.Inverted() {
		t.Error("INVON not applied")
	}
	if got := fb.At(Point{}); got != (Pixel{R: 248}) {
		t.Errorf("pixel (0,0) = %+v, want red", got)
	}
}

func TestPortTxPackets(t *testing.T) {
	dev := newTestDevice(t, 4, 4, WrapAtEnd)
	c, err := dev.Port().Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		t.Fatal(err)
	}
	pkts := []spi.Packet{
		{W: []byte{cmdDISPOFF}},
		{W: []byte{cmdINVON}, BitsPerWord: 8},
	}
	if err := c.TxPackets(pkts); err != nil {
		t.Fatal(err)
	}
	if dev.Framebuffer().Display() || !dev.Framebuffer().Inverted() {
		t.Error("packets not applied")
	}
	if err := c.TxPackets([]spi.Packet{{W: []byte{0}, BitsPerWord: 9}}); err == nil {
		t.Error("TxPackets with 9 bits succeeded")
	}
}

func TestPortRecorded(t *testing.T) {
	dev := newTestDevice(t, 4, 4, WrapAtEnd)
	rec := &spitest.Record{Port: dev.Port()}
	c, err := rec.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Tx([]byte{cmdDISPOFF}, nil); err != nil {
		t.Fatal(err)
	}
	if len(rec.Ops) != 1 || rec.Ops[0].W[0] != cmdDISPOFF {
		t.Errorf("Ops = %v, want one DISPOFF write", rec.Ops)
	}
	if dev.Framebuffer().Display() {
		t.Error("DISPOFF not forwarded to the decoder")
	}
}

func TestPortPins(t *testing.T) {
	dev := newTestDevice(t, 4, 4, WrapAtEnd)
	p := dev.Port()
	if p.CS() != dev.CS() {
		t.Error("CS() is not the device chip select line")
	}
	if p.String() != "ili9163c-sim" {
		t.Errorf("String() = %q", p.String())
	}
	if err := p.LimitSpeed(physic.MegaHertz); err != nil {
		t.Error(err)
	}
	if err := p.Close(); err != nil {
		t.Error(err)
	}
}
