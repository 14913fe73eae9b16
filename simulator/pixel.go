package simulator

import "fmt"

// Pixel is one decoded framebuffer cell. The zero value is black.
type Pixel struct {
	R, G, B uint8
}

// RGBA implements color.Color, treating each channel as an 8-bit value.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return uint32(p.R) * 0x101, uint32(p.G) * 0x101, uint32(p.B) * 0x101, 0xFFFF
}

// Point is a framebuffer coordinate.
type Point struct {
	X, Y uint16
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Layout selects how a 16-bit memory write word is split into channels.
type Layout uint8

const (
	// LayoutRGB565 is rrrrrggggggbbbbb, each field shifted left by 3.
	LayoutRGB565 Layout = iota
	// LayoutRGB454 is the compact variant: red in bits 9-12, green in bits
	// 4-8, blue in bits 0-3, stored unscaled.
	LayoutRGB454
)

func (l Layout) String() string {
	switch l {
	case LayoutRGB565:
		return "RGB565"
	case LayoutRGB454:
		return "RGB454"
	default:
		return fmt.Sprintf("Layout(%d)", uint8(l))
	}
}

// Decode converts w using the layout. Unknown layouts decode as RGB565.
func (l Layout) Decode(w uint16) Pixel {
	if l == LayoutRGB454 {
		return DecodeRGB454(w)
	}
	return DecodeRGB565(w)
}

// DecodeRGB565 decodes w as RGB565. Each field is shifted left by 3 in 8-bit
// arithmetic, so the top bit of the 6-bit green field is lost.
func DecodeRGB565(w uint16) Pixel {
	return Pixel{
		R: uint8(w>>11) << 3,
		G: uint8(w>>5&0x3F) << 3,
		B: uint8(w&0x1F) << 3,
	}
}

// DecodeRGB454 decodes w as the compact layout. Channel values keep their
// field width (0-15 or 0-31); bits 13-15 are ignored.
func DecodeRGB454(w uint16) Pixel {
	return Pixel{
		R: uint8(w >> 9 & 0x0F),
		G: uint8(w >> 4 & 0x1F),
		B: uint8(w & 0x0F),
	}
}
