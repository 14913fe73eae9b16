package simulator

import (
	"errors"
	"image/color"
	"sync"
	"testing"
)

func TestNewFramebuffer(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr error
	}{
		{"128x128", 128, 128, nil},
		{"1x1", 1, 1, nil},
		{"zero width", 0, 8, ErrInvalidSize},
		{"zero height", 8, 0, ErrInvalidSize},
		{"negative", -1, 8, ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := NewFramebuffer(tt.w, tt.h)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewFramebuffer(%d, %d) error = %v, want %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if fb.Width() != tt.w || fb.Height() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", fb.Width(), fb.Height(), tt.w, tt.h)
			}
			if !fb.Display() {
				t.Error("Display() = false, want true")
			}
			if fb.Inverted() {
				t.Error("Inverted() = true, want false")
			}
			for i, p := range fb.Snapshot().Pix {
				if p != (Pixel{}) {
					t.Fatalf("Pix[%d] = %+v, want black", i, p)
				}
			}
		})
	}
}

func TestFramebufferSet(t *testing.T) {
	fb, err := NewFramebuffer(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	red := Pixel{R: 248}

	if err := fb.Set(Point{X: 3, Y: 2}, red); err != nil {
		t.Fatalf("Set((3,2)) = %v", err)
	}
	if got := fb.At(Point{X: 3, Y: 2}); got != red {
		t.Errorf("At((3,2)) = %+v, want %+v", got, red)
	}
	if got := fb.Snapshot().At(3, 2); got != red {
		t.Errorf("Snapshot().At(3, 2) = %+v, want %+v", got, red)
	}

	for _, p := range []Point{{4, 0}, {0, 3}, {0xFFFF, 0xFFFF}} {
		if err := fb.Set(p, red); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Set(%v) = %v, want ErrOutOfBounds", p, err)
		}
		if got := fb.At(p); got != (Pixel{}) {
			t.Errorf("At(%v) = %+v, want black", p, got)
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	fb, err := NewFramebuffer(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	snap := fb.Snapshot()
	_ = fb.Set(Point{}, Pixel{G: 8})
	fb.SetDisplay(false)

	if snap.At(0, 0) != (Pixel{}) || !snap.Display {
		t.Error("snapshot changed after the framebuffer was written")
	}
	if got := snap.At(-1, 0); got != (Pixel{}) {
		t.Errorf("At(-1, 0) = %+v, want black", got)
	}
}

func TestSnapshotRGBA(t *testing.T) {
	px := Pixel{R: 0xF0, G: 0x80, B: 0x08}
	tests := []struct {
		name     string
		display  bool
		inverted bool
		want     color.RGBA
	}{
		{"normal", true, false, color.RGBA{0xF0, 0x80, 0x08, 0xFF}},
		{"inverted", true, true, color.RGBA{0x0F, 0x7F, 0xF7, 0xFF}},
		{"off", false, false, color.RGBA{0, 0, 0, 0xFF}},
		{"off inverted", false, true, color.RGBA{0, 0, 0, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := NewFramebuffer(2, 1)
			if err != nil {
				t.Fatal(err)
			}
			_ = fb.Set(Point{X: 1}, px)
			fb.SetDisplay(tt.display)
			fb.SetInverted(tt.inverted)

			img := fb.Snapshot().RGBA()
			if got := img.RGBAAt(1, 0); got != tt.want {
				t.Errorf("RGBAAt(1, 0) = %v, want %v", got, tt.want)
			}
			// Inversion is applied at render time only.
			if got := fb.At(Point{X: 1}); got != px {
				t.Errorf("stored pixel = %+v, want %+v", got, px)
			}
		})
	}
}

func TestFramebufferConcurrentAccess(t *testing.T) {
	fb, err := NewFramebuffer(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = fb.Set(Point{X: uint16(i % 16), Y: uint16(i / 16 % 16)}, Pixel{R: uint8(i)})
			fb.SetInverted(i%2 == 0)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			if s := fb.Snapshot(); len(s.Pix) != 256 {
				t.Errorf("len(Pix) = %d, want 256", len(s.Pix))
				return
			}
		}
	}()
	wg.Wait()
}
