package ad796x

import (
	"fmt"

	"go.uber.org/multierr"
)

// GPIORole identifies one of the mode-select lines.
type GPIORole uint8

const (
	EN0 GPIORole = iota
	EN1
	EN2
	EN3
)

func (r GPIORole) String() string {
	switch r {
	case EN0:
		return "en0"
	case EN1:
		return "en1"
	case EN2:
		return "en2"
	case EN3:
		return "en3"
	default:
		return fmt.Sprintf("GPIORole(%d)", r)
	}
}

// gpioOrder is the order lines are acquired and released in.
var gpioOrder = [4]GPIORole{EN3, EN2, EN1, EN0}

// gpioSlot holds the line for one role, if it was acquired.
type gpioSlot struct {
	role GPIORole
	line GPIOLine
}

// held returns the acquired line, if any.
func (s *gpioSlot) held() (GPIOLine, bool) {
	return s.line, s.line != nil
}

// initGPIOs acquires the configured mode-select lines and drives them to the pattern of mode.
// On failure every line acquired so far is released and the cause is returned.
func (d *Device) initGPIOs(param *InitParam) error {
	configs := [4]GPIOLineConfig{param.GPIOEn3, param.GPIOEn2, param.GPIOEn1, param.GPIOEn0}
	pattern := d.mode.Pattern()

	for i, role := range gpioOrder {
		d.gpios[i].role = role

		if configs[i] == nil {
			continue
		}

		line, err := configs[i].OpenLine()
		if err != nil {
			_ = d.removeGPIOs(TeardownFailFast)

			return fmt.Errorf("%s: %w", role, err)
		}

		d.gpios[i].line = line

		if err := line.SetOutput(pattern.Level(role)); err != nil {
			_ = d.removeGPIOs(TeardownFailFast)

			return fmt.Errorf("%s set output: %w", role, err)
		}
	}

	return nil
}

// removeGPIOs releases every acquired mode-select line in acquisition order.
// Empty slots are skipped. With TeardownFailFast the first failure is returned
// and the remaining lines stay held; with TeardownReleaseAll all lines are
// attempted and the failures combined.
func (d *Device) removeGPIOs(policy TeardownPolicy) error {
	var errs error

	for i := range d.gpios {
		slot := &d.gpios[i]

		line, ok := slot.held()
		if !ok {
			continue
		}

		if err := line.Close(); err != nil {
			err = fmt.Errorf("%s: %w", slot.role, err)
			if policy == TeardownFailFast {
				return err
			}

			errs = multierr.Append(errs, err)

			continue
		}

		slot.line = nil
	}

	return errs
}
