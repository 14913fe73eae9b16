package simulator

import (
	"errors"
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Line is a single-bit signal latch shared by the driver, which sets it, and
// the decoder, which reads it before every byte.
//
// A *Line is the single source of truth for the signal; hand the same pointer
// to both sides. It implements gpio.PinIO so drivers written against periph
// pins can use it directly.
type Line struct {
	name  string
	level atomic.Bool
}

// NewLine returns a line named name at level l.
func NewLine(name string, l gpio.Level) *Line {
	ln := &Line{name: name}
	ln.level.Store(bool(l))
	return ln
}

func (l *Line) String() string   { return l.name }
func (l *Line) Name() string     { return l.name }
func (l *Line) Number() int      { return -1 }
func (l *Line) Function() string { return "Out/" + l.Read().String() }

// Halt implements conn.Resource.
func (l *Line) Halt() error { return nil }

// Out latches level.
func (l *Line) Out(level gpio.Level) error {
	l.level.Store(bool(level))
	return nil
}

// High latches gpio.High.
func (l *Line) High() { l.level.Store(true) }

// Low latches gpio.Low.
func (l *Line) Low() { l.level.Store(false) }

// Read returns the latched level.
func (l *Line) Read() gpio.Level {
	return gpio.Level(l.level.Load())
}

// In accepts any pull; the latched level is kept. Edge detection is not
// supported.
func (l *Line) In(pull gpio.Pull, edge gpio.Edge) error {
	if edge != gpio.NoEdge {
		return errors.New("simulator: edge detection not supported")
	}
	return nil
}

// WaitForEdge always reports a timeout.
func (l *Line) WaitForEdge(timeout time.Duration) bool { return false }

func (l *Line) Pull() gpio.Pull        { return gpio.Float }
func (l *Line) DefaultPull() gpio.Pull { return gpio.Float }

// PWM is not supported.
func (l *Line) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("simulator: PWM not supported")
}

var _ gpio.PinIO = &Line{}
