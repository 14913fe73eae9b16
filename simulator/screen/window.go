//go:build !headless

package screen

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
	"periph.io/x/devices/v3/ili9163c/simulator"
)

// Window renders a Framebuffer every frame. It implements ebiten.Game.
//
// Escape closes the window and F1 toggles the status line.
type Window struct {
	fb   *simulator.Framebuffer
	opts Opts

	mu         sync.Mutex
	panel      *ebiten.Image
	pix        []byte
	showStatus bool
	frames     uint64
}

// New returns a window showing fb. opts can be nil to use defaults.
func New(fb *simulator.Framebuffer, opts *Opts) *Window {
	o := opts.withDefaults()
	return &Window{
		fb:         fb,
		opts:       o,
		pix:        make([]byte, 4*fb.Width()*fb.Height()),
		showStatus: !o.HideStatus,
	}
}

// Run opens the window and blocks until it is closed. It must be called
// from the main goroutine.
func (w *Window) Run() error {
	width, height := w.Layout(0, 0)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetRunnableOnUnfocused(true)
	return ebiten.RunGame(w)
}

// Update handles the keyboard.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		w.mu.Lock()
		w.showStatus = !w.showStatus
		w.mu.Unlock()
	}
	return nil
}

// Draw renders a snapshot of the framebuffer scaled to the window.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.panel == nil {
		w.panel = ebiten.NewImage(w.fb.Width(), w.fb.Height())
	}
	snap := w.fb.Snapshot()
	snap.RenderInto(w.pix)
	w.panel.WritePixels(w.pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.opts.Scale), float64(w.opts.Scale))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(w.panel, op)

	w.mu.Lock()
	w.frames++
	frames, show := w.frames, w.showStatus
	w.mu.Unlock()
	if show {
		text.Draw(screen, Status(snap, frames), basicfont.Face7x13, 4, snap.Height*w.opts.Scale+12, color.RGBA{190, 190, 190, 255})
	}
}

// Layout returns the scaled panel size plus the status strip.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.fb.Width() * w.opts.Scale, w.fb.Height()*w.opts.Scale + statusHeight
}

var _ ebiten.Game = &Window{}
