// Package simulator emulates the command interface of an ILI9163C SPI color
// LCD controller so drivers can be exercised without hardware.
//
// # Wiring
//
// A Device bundles the pieces a real panel has:
//
//	Driver side            Device
//	spi.Conn.Tx  ───────→  Port ──→ Decoder ──→ Framebuffer ──→ renderer
//	DC pin       ───────→  DC()  (Low: opcode, High: parameter)
//	CS pin       ───────→  CS()  (High: bytes ignored)
//
// Port implements spi.PortCloser and the lines implement gpio.PinIO, so the
// driver in the parent package runs unchanged against either this simulator
// or a real bus:
//
//	dev, _ := simulator.New(&simulator.Opts{W: 128, H: 128})
//	lcd, _ := ili9163c.NewSPI(dev.Port(), dev.DC(), nil)
//	lcd.DrawLine(0, 0, 127, 127, ili9163c.ParseColor(255, 255, 100))
//	img := dev.Framebuffer().Snapshot().RGBA()
//
// # Supported commands
//
//	0x20 INVOFF   inversion off
//	0x21 INVON    inversion on
//	0x28 DISPOFF  display off
//	0x29 DISPON   display on
//	0x2A CASET    column window, 4 parameter bytes (start, end; big-endian)
//	0x2B PASET    page window, 4 parameter bytes
//	0x2C RAMWR    memory write, 2 bytes per pixel (high byte first)
//	0x36 MADCTL   orientation flags, 1 parameter byte
//
// Every other opcode is accepted and ignored together with its parameters.
//
// # Memory write cursor
//
// RAMWR resets the cursor to the window start. After each pixel the column
// advances; reaching the column limit returns to the start column and
// advances the row; reaching the row limit returns to the start row. With
// WrapAtEnd (the default) the limit is the window end value itself, so the
// end column and row are not written by a sweep. WrapPastEnd uses end+1.
//
// # Pixel layouts
//
// LayoutRGB565 shifts each field left by 3 in 8-bit arithmetic, so 0xFFFF
// decodes to (248, 248, 248). LayoutRGB454 keeps the raw field values of
// the compact layout.
//
// # Concurrency
//
// The Framebuffer is guarded by one lock; renderers read it with Snapshot
// from any goroutine while the decoder writes. Lines are atomic.
package simulator
