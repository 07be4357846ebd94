package ad796x

import (
	"io"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// GPIOLine is an acquired mode-select output line.
type GPIOLine interface {
	// SetOutput switches the line to output and drives it to level.
	SetOutput(level gpio.Level) error

	// Close releases the line.
	io.Closer
}

// GPIOLineConfig describes a mode-select line and knows how to acquire it.
// A nil GPIOLineConfig in InitParam means the line is not wired on the board.
type GPIOLineConfig interface {
	OpenLine() (GPIOLine, error)
}

// ClockGen is an initialized clock generator.
type ClockGen interface {
	SetRate(rate physic.Frequency) error
	io.Closer
}

// ClockGenConfig initializes a clock generator.
type ClockGenConfig interface {
	OpenClockGen() (ClockGen, error)
}

// PWM is an initialized PWM channel.
type PWM interface {
	io.Closer
}

// PWMConfig initializes a PWM channel.
type PWMConfig interface {
	OpenPWM() (PWM, error)
}

// Core is an initialized sampling core.
type Core interface {
	// StreamAddr returns the source address of the core's sample stream.
	StreamAddr() uintptr
	io.Closer
}

// CoreConfig initializes a sampling core.
type CoreConfig interface {
	OpenCore() (Core, error)
}

// DMA is an initialized DMA engine.
type DMA interface {
	// Submit starts the transfer described by t.
	Submit(t *Transfer) error

	// Wait blocks until the submitted transfer completes or timeout elapses.
	// It returns false with a nil error on timeout.
	Wait(timeout time.Duration) (bool, error)

	io.Closer
}

// DMAConfig initializes a DMA engine.
type DMAConfig interface {
	OpenDMA() (DMA, error)
}

// Transfer describes one DMA transfer from the sampling core into memory.
type Transfer struct {
	Size   uint32   // Length in bytes.
	Cyclic bool     // Restart automatically when done.
	Src    uintptr  // Source stream address.
	Dest   []uint32 // Destination sample words.
}
