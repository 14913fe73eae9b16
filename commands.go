package ili9163c

import "tinygo.org/x/drivers"

// Command opcodes used by the driver.
const (
	cmdSWRESET byte = 0x01 // Software Reset
	cmdSLPOUT  byte = 0x11 // Sleep Out
	cmdINVOFF  byte = 0x20 // Display Inversion Off
	cmdINVON   byte = 0x21 // Display Inversion On
	cmdDISPOFF byte = 0x28 // Display Off
	cmdDISPON  byte = 0x29 // Display On
	cmdCASET   byte = 0x2A // Column Address Set
	cmdPASET   byte = 0x2B // Page Address Set
	cmdRAMWR   byte = 0x2C // Memory Write
	cmdMADCTL  byte = 0x36 // Memory Access Control
	cmdCOLMOD  byte = 0x3A // Interface Pixel Format
)

// COLMOD parameter selecting 16 bits per pixel.
const colmod16bpp byte = 0x05

// Orientation is the MADCTL parameter byte.
type Orientation byte

// MADCTL flags. They can be combined.
const (
	MirrorY   Orientation = 0x80 // MY: row address order
	MirrorX   Orientation = 0x40 // MX: column address order
	SwapXY    Orientation = 0x20 // MV: row/column exchange
	ScanOrder Orientation = 0x10 // ML: vertical refresh order
	BGR       Orientation = 0x08 // Blue/red swapped panel
)

// RotationOrientation returns the MADCTL flags for a tinygo display
// rotation. The BGR flag of base is kept.
func RotationOrientation(r drivers.Rotation, base Orientation) Orientation {
	o := base & BGR
	switch r % 4 {
	case drivers.Rotation90:
		o |= MirrorX | SwapXY
	case drivers.Rotation180:
		o |= MirrorX | MirrorY
	case drivers.Rotation270:
		o |= MirrorY | SwapXY
	}
	if r >= drivers.Rotation0Mirror {
		o ^= MirrorX
	}
	return o
}
