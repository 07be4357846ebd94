// Package periphio provides ad796x mode-select lines and PWM channels backed by periph.io pins.
//
// Pins are looked up by name in periph.io/x/conn/v3/gpio/gpioreg, so the host drivers
// (for example periph.io/x/host/v3) must be initialized before Init is called.
package periphio

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"

	"github.com/gen2brain/ad796x"
)

// Line configures a mode-select line on a periph.io pin.
type Line struct {
	// Name is the gpioreg name of the pin, e.g. "GPIO17". Ignored if Pin is set.
	Name string

	// Pin overrides the gpioreg lookup.
	Pin gpio.PinIO
}

// OpenLine implements ad796x.GPIOLineConfig.
func (l Line) OpenLine() (ad796x.GPIOLine, error) {
	p, err := resolve(l.Name, l.Pin)
	if err != nil {
		return nil, err
	}

	return &line{pin: p}, nil
}

type line struct {
	pin gpio.PinIO
}

func (l *line) SetOutput(level gpio.Level) error {
	if err := l.pin.Out(level); err != nil {
		return fmt.Errorf("%s: %w", l.pin, err)
	}

	return nil
}

func (l *line) Close() error {
	return l.pin.Halt()
}

// PWM configures a PWM channel on a periph.io pin.
type PWM struct {
	// Name is the gpioreg name of the pin. Ignored if Pin is set.
	Name string

	// Pin overrides the gpioreg lookup.
	Pin gpio.PinIO

	Duty gpio.Duty
	Freq physic.Frequency
}

// OpenPWM implements ad796x.PWMConfig. It starts the output at Duty and Freq.
func (c PWM) OpenPWM() (ad796x.PWM, error) {
	if !c.Duty.Valid() {
		return nil, fmt.Errorf("invalid duty %d", c.Duty)
	}

	if c.Freq <= 0 {
		return nil, fmt.Errorf("invalid frequency %s", c.Freq)
	}

	p, err := resolve(c.Name, c.Pin)
	if err != nil {
		return nil, err
	}

	if err := p.PWM(c.Duty, c.Freq); err != nil {
		return nil, fmt.Errorf("%s: pwm %s at %s: %w", p, c.Duty, c.Freq, err)
	}

	return &pwm{pin: p}, nil
}

type pwm struct {
	pin gpio.PinIO
}

// Close stops the output and drives the pin low.
func (p *pwm) Close() error {
	if err := p.pin.Halt(); err != nil {
		return err
	}

	return p.pin.Out(gpio.Low)
}

func resolve(name string, p gpio.PinIO) (gpio.PinIO, error) {
	if p != nil {
		return p, nil
	}

	if name == "" {
		return nil, fmt.Errorf("no pin name given")
	}

	if p = gpioreg.ByName(name); p == nil {
		return nil, fmt.Errorf("pin %q not found", name)
	}

	return p, nil
}
