// Package ad796x drives an AD796x analog front end built from a mode-select GPIO bank,
// a clock generator, two PWM channels, a sampling core and a DMA engine.
//
// The peripherals themselves are supplied by the caller through the collaborator
// interfaces in this package; ad796x owns their acquisition order, rollback on failure,
// teardown, and the bounded DMA read into a caller buffer.
package ad796x

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/physic"
)

const (
	// BytesPerSample is the width of one sample word written by the DMA engine.
	BytesPerSample = 4

	// ClockRate is the rate the clock generator is programmed to during Init.
	ClockRate = 125 * physic.MegaHertz

	// ReadTimeout bounds how long ReadData waits for a transfer to complete.
	ReadTimeout = 3000 * time.Millisecond
)

var (
	// ErrTimeout is returned by ReadData when the DMA engine does not signal completion within ReadTimeout.
	ErrTimeout = errors.New("dma transfer timed out")

	// ErrTransferRejected is returned by ReadData when the DMA engine refuses the transfer.
	ErrTransferRejected = errors.New("dma transfer rejected")

	// ErrRemoved is returned when a removed device is used.
	ErrRemoved = errors.New("device removed")

	// ErrMissingConfig is returned by Init when a required peripheral config is nil.
	ErrMissingConfig = errors.New("missing peripheral config")
)
