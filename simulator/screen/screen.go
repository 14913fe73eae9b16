// Package screen shows a simulated panel in a desktop window.
//
// Build with the headless tag to drop the ebiten dependency; Run then
// returns ErrHeadless.
package screen

import (
	"errors"
	"fmt"

	"periph.io/x/devices/v3/ili9163c/simulator"
)

// ErrHeadless is returned by Run in headless builds.
var ErrHeadless = errors.New("screen: built without a display")

// statusHeight is the strip below the panel reserved for the status line.
const statusHeight = 16

// Opts is the configuration of a Window.
type Opts struct {
	Scale int    // Integer zoom factor (default: 4)
	Title string // Window title (default: "ILI9163C simulator")

	// HideStatus starts with the status line hidden. F1 toggles it.
	HideStatus bool
}

func (o *Opts) withDefaults() Opts {
	r := Opts{}
	if o != nil {
		r = *o
	}
	if r.Scale <= 0 {
		r.Scale = 4
	}
	if r.Title == "" {
		r.Title = "ILI9163C simulator"
	}
	return r
}

// Status describes the panel flags and the frame counter.
func Status(s *simulator.Snapshot, frames uint64) string {
	return fmt.Sprintf("DISP %s  INV %s  %dx%d  #%d", onOff(s.Display), onOff(s.Inverted), s.Width, s.Height, frames)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
