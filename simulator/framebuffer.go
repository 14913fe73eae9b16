package simulator

import (
	"errors"
	"fmt"
	"image"
	"sync"
)

var (
	// ErrInvalidSize is returned when a framebuffer dimension is zero.
	ErrInvalidSize = errors.New("simulator: width and height must be non-zero")
	// ErrOutOfBounds is returned by Set for a point outside the grid.
	ErrOutOfBounds = errors.New("simulator: point outside framebuffer")
)

// Framebuffer is the panel memory: a fixed width*height grid of pixels plus
// the display and inversion flags.
//
// A single lock guards the whole value. The decoder is the only writer; any
// number of renderers may read concurrently through Snapshot.
type Framebuffer struct {
	mu       sync.RWMutex
	width    int
	height   int
	gram     []Pixel
	display  bool
	inverted bool
}

// NewFramebuffer returns a black framebuffer with the display enabled and
// inversion off.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	return &Framebuffer{
		width:   width,
		height:  height,
		gram:    make([]Pixel, width*height),
		display: true,
	}, nil
}

// Width returns the number of columns.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the number of rows.
func (f *Framebuffer) Height() int { return f.height }

// Set overwrites the cell at p. Points outside the grid are rejected with
// ErrOutOfBounds and nothing is written.
func (f *Framebuffer) Set(p Point, px Pixel) error {
	if int(p.X) >= f.width || int(p.Y) >= f.height {
		return fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, p, f.width, f.height)
	}
	f.mu.Lock()
	f.gram[int(p.Y)*f.width+int(p.X)] = px
	f.mu.Unlock()
	return nil
}

// At returns the cell at p, or black outside the grid.
func (f *Framebuffer) At(p Point) Pixel {
	if int(p.X) >= f.width || int(p.Y) >= f.height {
		return Pixel{}
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.gram[int(p.Y)*f.width+int(p.X)]
}

// SetDisplay sets the display-enabled flag.
func (f *Framebuffer) SetDisplay(on bool) {
	f.mu.Lock()
	f.display = on
	f.mu.Unlock()
}

// Display reports whether the display is enabled.
func (f *Framebuffer) Display() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.display
}

// SetInverted sets the inversion flag. The framebuffer contents are not
// touched; renderers apply the inversion.
func (f *Framebuffer) SetInverted(inverted bool) {
	f.mu.Lock()
	f.inverted = inverted
	f.mu.Unlock()
}

// Inverted reports whether inversion is on.
func (f *Framebuffer) Inverted() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.inverted
}

// Snapshot copies the pixels and both flags in one critical section.
func (f *Framebuffer) Snapshot() *Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s := &Snapshot{
		Width:    f.width,
		Height:   f.height,
		Pix:      make([]Pixel, len(f.gram)),
		Display:  f.display,
		Inverted: f.inverted,
	}
	copy(s.Pix, f.gram)
	return s
}

// Snapshot is a read-only copy of a Framebuffer.
type Snapshot struct {
	Width, Height int
	Pix           []Pixel // Row-major, index y*Width+x
	Display       bool
	Inverted      bool
}

// At returns the stored pixel at (x, y), or black outside the grid.
func (s *Snapshot) At(x, y int) Pixel {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return Pixel{}
	}
	return s.Pix[y*s.Width+x]
}

// RGBA renders what the panel shows: black while the display is off, every
// channel complemented while inversion is on.
func (s *Snapshot) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	s.RenderInto(img.Pix)
	return img
}

// RenderInto writes the rendered pixels into dst as 8-bit RGBA quadruplets.
// dst must hold at least 4*Width*Height bytes.
func (s *Snapshot) RenderInto(dst []byte) {
	for i, p := range s.Pix {
		j := i * 4
		switch {
		case !s.Display:
			dst[j], dst[j+1], dst[j+2] = 0, 0, 0
		case s.Inverted:
			dst[j], dst[j+1], dst[j+2] = ^p.R, ^p.G, ^p.B
		default:
			dst[j], dst[j+1], dst[j+2] = p.R, p.G, p.B
		}
		dst[j+3] = 0xFF
	}
}
