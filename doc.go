// Package ili9163c controls an ILI9163C color LCD via SPI.
//
// The ILI9163C is a 16-bit color TFT controller driving panels up to 162×132
// pixels. Common modules are 128×128 and 160×128. This driver implements the
// display.Drawer interface from periph.io and the Displayer interface from
// tinygo.org/x/drivers.
//
// # Display Characteristics
//
// - 16-bit RGB565 color (65536 colors)
// - Addressing window with auto-incrementing memory write
// - Display on/off and color inversion without touching memory
// - Memory access control for mirroring and row/column exchange
//
// # Hardware Connection
//
// Connect the ILI9163C module to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCK         → SPI Clock (SCLK)
//	SDA         → SPI Data (MOSI)
//	A0/DC       → GPIO (any available pin)
//	CS          → SPI Chip Select
//	RESET       → Optional: GPIO for hardware reset
//	LED         → 3.3V (backlight)
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/ili9163c"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//		spiBus, _ := spireg.Open("")
//		dcPin := gpioreg.ByName("GPIO24")
//
//		dev, _ := ili9163c.NewSPI(spiBus, dcPin, &ili9163c.Opts{
//			W: 128,
//			H: 128,
//		})
//		defer dev.Halt()
//
//		yellow := ili9163c.ParseColor(255, 255, 100)
//		dev.DrawLine(0, 0, 127, 127, yellow)
//		dev.DrawCircle(64, 64, 20, yellow)
//	}
//
// The simulator subpackage provides a spi.Port and a DC line backed by an
// emulated controller, so the same code runs without hardware.
//
// # Hardware Reset
//
// If RST is set in Opts, the driver pulls it low for 10ms and waits 120ms
// after releasing it before the software reset. Otherwise it relies on the
// SWRESET command alone.
//
// # Drawing Modes
//
// Immediate primitives send their pixels right away: DrawPixel, FillRect,
// DrawLine (Bresenham) and DrawCircle (midpoint).
//
// Write sends a full frame of big-endian RGB565 pixels:
//
//	pixels := make([]byte, 2*128*128)
//	dev.Write(pixels)
//
// Draw and the Displayer methods (SetPixel, Display) compose into a pending
// frame. Only the smallest rectangle that differs from the panel is sent:
//
//	dev.Draw(dev.Bounds(), img, image.Point{})
//
// DrawText renders with tinyfont and flushes the same way.
//
// # Colors
//
// Colors are image565.RGB565 values. ParseColor packs 8-bit channels,
// dropping the low bits. Standard Go colors passed to Draw are converted by
// image565.Model.
//
// # Orientation
//
// Opts.Orientation is sent as the MADCTL parameter during initialization and
// can be changed later with SetOrientation or SetRotation. The frame
// geometry does not follow a row/column exchange.
package ili9163c
