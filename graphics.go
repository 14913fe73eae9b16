package ili9163c

import (
	"errors"
	"image"
	"image/color"

	"periph.io/x/devices/v3/ili9163c/image565"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// DrawPixel writes a single pixel. Points outside the display are ignored.
func (d *Dev) DrawPixel(x, y int, c image565.RGB565) error {
	if d.halted {
		return ErrHalted
	}
	if !image.Pt(x, y).In(d.rect) {
		return nil
	}
	r := image.Rect(x, y, x+1, y+1)
	px := []byte{byte(c >> 8), byte(c)}
	if err := d.writeRect(r, px); err != nil {
		return err
	}
	d.store(r, px)
	return nil
}

// FillRect fills r, clipped to the display, with c.
func (d *Dev) FillRect(r image.Rectangle, c image565.RGB565) error {
	if d.halted {
		return ErrHalted
	}
	r = r.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	pixels := make([]byte, 2*r.Dx()*r.Dy())
	for i := 0; i < len(pixels); i += 2 {
		pixels[i] = byte(c >> 8)
		pixels[i+1] = byte(c)
	}
	if err := d.writeRect(r, pixels); err != nil {
		return err
	}
	d.store(r, pixels)
	return nil
}

// DrawLine draws a line from (x0, y0) to (x1, y1), both ends included.
func (d *Dev) DrawLine(x0, y0, x1, y1 int, c image565.RGB565) error {
	if d.halted {
		return ErrHalted
	}
	// Axis-aligned lines go out as one window.
	if x0 == x1 || y0 == y1 {
		return d.FillRect(image.Rect(min(x0, x1), min(y0, y1), max(x0, x1)+1, max(y0, y1)+1), c)
	}

	dx, sx := abs(x1-x0), sign(x1-x0)
	dy, sy := -abs(y1-y0), sign(y1-y0)
	e := dx + dy
	for {
		if err := d.DrawPixel(x0, y0, c); err != nil {
			return err
		}
		if x0 == x1 && y0 == y1 {
			return nil
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawCircle draws the outline of a circle of radius r centered on (x0, y0).
func (d *Dev) DrawCircle(x0, y0, r int, c image565.RGB565) error {
	if d.halted {
		return ErrHalted
	}
	if r < 0 {
		return errors.New("ili9163c: negative radius")
	}

	x, y := r, 0
	e := 1 - r
	for x >= y {
		for _, p := range [...]image.Point{
			image.Pt(x0+x, y0+y), image.Pt(x0+y, y0+x),
			image.Pt(x0-y, y0+x), image.Pt(x0-x, y0+y),
			image.Pt(x0-x, y0-y), image.Pt(x0-y, y0-x),
			image.Pt(x0+y, y0-x), image.Pt(x0+x, y0-y),
		} {
			if err := d.DrawPixel(p.X, p.Y, c); err != nil {
				return err
			}
		}
		y++
		if e < 0 {
			e += 2*y + 1
		} else {
			x--
			e += 2*(y-x) + 1
		}
	}
	return nil
}

// Size implements drivers.Displayer.
func (d *Dev) Size() (x, y int16) {
	return int16(d.rect.Dx()), int16(d.rect.Dy())
}

// SetPixel implements drivers.Displayer. The pixel is composed into the
// pending frame and sent by the next Display or Draw call.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	if d.halted {
		return
	}
	d.pending().SetRGB565(int(x), int(y), image565.FromRGB(c.R, c.G, c.B))
}

// Display implements drivers.Displayer by sending the pending changes.
func (d *Dev) Display() error {
	if d.halted {
		return ErrHalted
	}
	return d.flush()
}

// FillRectangle is FillRect with tinygo display arguments.
func (d *Dev) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height))
	return d.FillRect(r, image565.FromRGB(c.R, c.G, c.B))
}

// SetRotation sends the MADCTL flags for rotation. The frame geometry is
// unchanged, so non-square panels should only use 0 and 180 degrees.
func (d *Dev) SetRotation(rotation drivers.Rotation) error {
	return d.SetOrientation(RotationOrientation(rotation, d.orientation))
}

// DrawText writes s with its baseline at y using the Picopixel font, then
// sends the changed area.
func (d *Dev) DrawText(x, y int16, s string, c color.RGBA) error {
	if d.halted {
		return ErrHalted
	}
	tinyfont.WriteLine(d, &tinyfont.Picopixel, x, y, s, c)
	return d.flush()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

var _ drivers.Displayer = &Dev{}
