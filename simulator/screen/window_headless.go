//go:build headless

package screen

import "periph.io/x/devices/v3/ili9163c/simulator"

// Window stands in for the ebiten window in headless builds.
type Window struct {
	fb   *simulator.Framebuffer
	opts Opts
}

// New returns a window that cannot be opened.
func New(fb *simulator.Framebuffer, opts *Opts) *Window {
	return &Window{fb: fb, opts: opts.withDefaults()}
}

// Run returns ErrHeadless.
func (w *Window) Run() error {
	return ErrHeadless
}

// Layout returns the scaled panel size plus the status strip.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.fb.Width() * w.opts.Scale, w.fb.Height()*w.opts.Scale + statusHeight
}
