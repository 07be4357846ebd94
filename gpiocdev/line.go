//go:build linux

// Package gpiocdev provides ad796x mode-select lines on Linux GPIO character devices,
// driven through the periph.io gpioioctl driver.
package gpiocdev

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/gpioioctl"

	"github.com/gen2brain/ad796x"
)

// ErrNoChip is returned when no GPIO chip matches Line.Chip.
var ErrNoChip = errors.New("gpio chip not found")

// Line configures a mode-select line on a GPIO chip.
type Line struct {
	Chip   string // Chip name or device path, e.g. "gpiochip0" or "/dev/gpiochip0".
	Offset int    // Line offset within the chip.
}

// OpenLine implements ad796x.GPIOLineConfig.
// The periph host drivers are initialized on first use.
func (l Line) OpenLine() (ad796x.GPIOLine, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	chip, err := findChip(gpioioctl.Chips, l.Chip)
	if err != nil {
		return nil, err
	}

	pin := chip.ByNumber(l.Offset)
	if pin == nil {
		return nil, fmt.Errorf("%s: no line at offset %d", chip.Name(), l.Offset)
	}

	return &line{pin: pin, name: fmt.Sprintf("%s:%d", chip.Name(), l.Offset)}, nil
}

// findChip matches ref against chip names and paths, then by device number,
// so a symlinked chip path resolves to the chip the driver kept.
func findChip(chips []*gpioioctl.GPIOChip, ref string) (*gpioioctl.GPIOChip, error) {
	for _, chip := range chips {
		if chip.Name() == ref || chip.Path() == ref {
			return chip, nil
		}
	}

	rdev, err := charDevice(ref)
	if err != nil {
		return nil, err
	}

	for _, chip := range chips {
		if r, err := charDevice(chip.Path()); err == nil && r == rdev {
			return chip, nil
		}
	}

	return nil, fmt.Errorf("%s: %w", ref, ErrNoChip)
}

// charDevice returns the device number of the character device at path.
func charDevice(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}

	if st.Mode&unix.S_IFMT != unix.S_IFCHR {
		return 0, fmt.Errorf("%s: not a character device", path)
	}

	return uint64(st.Rdev), nil
}

type line struct {
	pin    *gpioioctl.GPIOLine
	name   string
	closed bool
}

// SetOutput drives the line at level, switching it to output on first use.
func (l *line) SetOutput(level gpio.Level) error {
	if l.closed {
		return fmt.Errorf("%s: line closed", l.name)
	}

	if err := l.pin.Out(level); err != nil {
		return fmt.Errorf("%s: %w", l.name, err)
	}

	return nil
}

// Close releases the line request. Closing a closed line is a no-op.
func (l *line) Close() error {
	if l.closed {
		return nil
	}

	l.pin.Close()
	l.closed = true

	return nil
}
