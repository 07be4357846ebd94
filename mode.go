package ad796x

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Mode selects the reference and conversion-rate configuration of the converter.
// It is applied through the en0..en3 mode-select lines when the device is initialized.
type Mode uint8

const (
	Mode1ExtRef5p0        Mode = 0 // External 5.0 V reference.
	Mode2IntRef4p0        Mode = 1 // Internal 4.0 V reference.
	Mode3ExtRef4p0        Mode = 2 // External 4.0 V reference.
	Mode4Snooze           Mode = 3 // Snooze.
	Mode5Test             Mode = 4 // Test pattern.
	Mode6Invalid          Mode = 5 // Reserved pin combination.
	Mode7ExtRef5p0Clk9MHz Mode = 6 // External 5.0 V reference, 9 MHz filter.
	Mode8IntRef4p0Clk9MHz Mode = 7 // Internal 4.0 V reference, 9 MHz filter.
	Mode9ExtRef4p0Clk9MHz Mode = 8 // External 4.0 V reference, 9 MHz filter.
	Mode10Snooze2         Mode = 9 // Snooze, 9 MHz filter.

	numModes = 10
)

// Pattern holds the levels driven on the mode-select lines for one Mode.
type Pattern struct {
	EN0 gpio.Level
	EN1 gpio.Level
	EN2 gpio.Level
	EN3 gpio.Level
}

// Level returns the level for the given role.
func (p Pattern) Level(role GPIORole) gpio.Level {
	switch role {
	case EN0:
		return p.EN0
	case EN1:
		return p.EN1
	case EN2:
		return p.EN2
	case EN3:
		return p.EN3
	default:
		panic(fmt.Sprintf("ad796x: invalid gpio role %d", role))
	}
}

var modePatterns = [numModes]Pattern{
	Mode1ExtRef5p0:        {EN3: gpio.High, EN2: gpio.Low, EN1: gpio.Low, EN0: gpio.High},
	Mode2IntRef4p0:        {EN3: gpio.High, EN2: gpio.Low, EN1: gpio.Low, EN0: gpio.High},
	Mode3ExtRef4p0:        {EN3: gpio.High, EN2: gpio.Low, EN1: gpio.High, EN0: gpio.Low},
	Mode4Snooze:           {EN3: gpio.High, EN2: gpio.Low, EN1: gpio.High, EN0: gpio.High},
	Mode5Test:             {EN3: gpio.Low, EN2: gpio.High, EN1: gpio.Low, EN0: gpio.Low},
	Mode6Invalid:          {EN3: gpio.High, EN2: gpio.High, EN1: gpio.Low, EN0: gpio.Low},
	Mode7ExtRef5p0Clk9MHz: {EN3: gpio.High, EN2: gpio.High, EN1: gpio.Low, EN0: gpio.High},
	Mode8IntRef4p0Clk9MHz: {EN3: gpio.High, EN2: gpio.High, EN1: gpio.Low, EN0: gpio.High},
	Mode9ExtRef4p0Clk9MHz: {EN3: gpio.High, EN2: gpio.High, EN1: gpio.High, EN0: gpio.Low},
	Mode10Snooze2:         {EN3: gpio.High, EN2: gpio.High, EN1: gpio.High, EN0: gpio.High},
}

var modeNames = [numModes]string{
	Mode1ExtRef5p0:        "ext-ref-5.0",
	Mode2IntRef4p0:        "int-ref-4.0",
	Mode3ExtRef4p0:        "ext-ref-4.0",
	Mode4Snooze:           "snooze",
	Mode5Test:             "test",
	Mode6Invalid:          "invalid",
	Mode7ExtRef5p0Clk9MHz: "ext-ref-5.0-9mhz",
	Mode8IntRef4p0Clk9MHz: "int-ref-4.0-9mhz",
	Mode9ExtRef4p0Clk9MHz: "ext-ref-4.0-9mhz",
	Mode10Snooze2:         "snooze2",
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m < numModes
}

// Pattern returns the mode-select levels for m.
// It panics if m is not a defined mode.
func (m Mode) Pattern() Pattern {
	if !m.Valid() {
		panic(fmt.Sprintf("ad796x: invalid mode %d", m))
	}

	return modePatterns[m]
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", m)
	}

	return modeNames[m]
}
