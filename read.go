package ad796x

import (
	"errors"
	"fmt"
)

// ReadData reads samples sample words into buf through a single DMA transfer
// and waits up to ReadTimeout for it to complete.
// buf must hold at least samples words and samples must not be zero; ReadData panics otherwise.
// If the DMA engine rejects the transfer, buf is left untouched and an error wrapping
// ErrTransferRejected is returned. ErrTimeout is returned if the transfer does not complete in time.
func (d *Device) ReadData(buf []uint32, samples uint16) error {
	if samples == 0 {
		panic("ad796x: zero sample count")
	}

	if len(buf) < int(samples) {
		panic(fmt.Sprintf("ad796x: buffer too small: needs %d samples, got %d", samples, len(buf)))
	}

	if !d.IsReady() {
		return ErrRemoved
	}

	xfer := &Transfer{
		Size:   uint32(samples) * BytesPerSample,
		Cyclic: false,
		Src:    d.core.StreamAddr(),
		Dest:   buf[:samples],
	}

	if err := d.dma.Submit(xfer); err != nil {
		d.log.Error("dma transfer start failed", "size", xfer.Size, "err", err)

		return errors.Join(ErrTransferRejected, err)
	}

	done, err := d.dma.Wait(ReadTimeout)
	if err != nil {
		return fmt.Errorf("dma wait failed: %w", err)
	}

	if !done {
		return ErrTimeout
	}

	return nil
}
