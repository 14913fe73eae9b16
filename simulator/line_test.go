package simulator

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
)

func TestLine(t *testing.T) {
	l := NewLine("DCX", gpio.High)
	if got := l.Read(); got != gpio.High {
		t.Errorf("Read() = %s, want High", got)
	}
	if l.String() != "DCX" || l.Name() != "DCX" || l.Number() != -1 {
		t.Errorf("identity = %q %q %d", l.String(), l.Name(), l.Number())
	}

	l.Low()
	if got := l.Read(); got != gpio.Low {
		t.Errorf("Read() after Low() = %s, want Low", got)
	}
	if got := l.Function(); got != "Out/Low" {
		t.Errorf("Function() = %q, want \"Out/Low\"", got)
	}

	// The driver sees the line as an output and the decoder as an input.
	var out gpio.PinOut = l
	var in gpio.PinIn = l
	if err := out.Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	if got := in.Read(); got != gpio.High {
		t.Errorf("Read() after Out(High) = %s, want High", got)
	}
}

func TestLineUnsupported(t *testing.T) {
	l := NewLine("CSX", gpio.Low)
	if err := l.In(gpio.Float, gpio.NoEdge); err != nil {
		t.Errorf("In(Float, NoEdge) = %v", err)
	}
	if err := l.In(gpio.PullUp, gpio.RisingEdge); err == nil {
		t.Error("In with edge detection succeeded")
	}
	if l.WaitForEdge(0) {
		t.Error("WaitForEdge() = true")
	}
	if err := l.PWM(gpio.DutyHalf, 0); err == nil {
		t.Error("PWM() succeeded")
	}
	if l.Pull() != gpio.Float || l.DefaultPull() != gpio.Float {
		t.Error("pull is not Float")
	}
	if err := l.Halt(); err != nil {
		t.Errorf("Halt() = %v", err)
	}
}
