package ad796x

import (
	"fmt"
	"io"
	"log/slog"
)

// InitParam holds the parameters used to initialize a Device.
// It is only read during Init.
type InitParam struct {
	Mode Mode

	// Mode-select lines. A nil config leaves the line untouched.
	GPIOEn0 GPIOLineConfig
	GPIOEn1 GPIOLineConfig
	GPIOEn2 GPIOLineConfig
	GPIOEn3 GPIOLineConfig

	ClkGen ClockGenConfig
	PWM0   PWMConfig
	PWM1   PWMConfig
	Core   CoreConfig
	DMA    DMAConfig

	// Teardown selects how Remove handles release failures. Defaults to TeardownFailFast.
	Teardown TeardownPolicy

	// Logger receives init and teardown diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Device is an initialized AD796x front end.
type Device struct {
	mode     Mode
	gpios    [4]gpioSlot
	clkgen   ClockGen
	pwm0     PWM
	pwm1     PWM
	core     Core
	dma      DMA
	held     resourceStack
	teardown TeardownPolicy
	log      *slog.Logger
	removing bool
	removed  bool
}

// Init acquires and configures every peripheral of the device, in order:
// mode-select lines, clock generator (set to ClockRate), PWM 0, PWM 1, sampling core, DMA engine.
// If any step fails, the peripherals already acquired are released in reverse order
// and the error of the failing step is returned.
func Init(param *InitParam) (*Device, error) {
	if param == nil {
		panic("ad796x: nil init param")
	}

	if !param.Mode.Valid() {
		panic(fmt.Sprintf("ad796x: invalid mode %d", param.Mode))
	}

	if err := checkConfigs(param); err != nil {
		return nil, err
	}

	logger := param.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dev := &Device{
		mode:     param.Mode,
		teardown: param.Teardown,
		log:      logger.With("mode", param.Mode.String()),
	}

	if err := dev.acquire(param); err != nil {
		if errs := dev.held.unwind(TeardownReleaseAll); errs != nil {
			dev.log.Warn("rollback incomplete", "err", errs)
		}

		return nil, err
	}

	dev.log.Debug("device initialized")

	return dev, nil
}

func checkConfigs(param *InitParam) error {
	switch {
	case param.ClkGen == nil:
		return fmt.Errorf("clkgen: %w", ErrMissingConfig)
	case param.PWM0 == nil:
		return fmt.Errorf("pwm 0: %w", ErrMissingConfig)
	case param.PWM1 == nil:
		return fmt.Errorf("pwm 1: %w", ErrMissingConfig)
	case param.Core == nil:
		return fmt.Errorf("adc core: %w", ErrMissingConfig)
	case param.DMA == nil:
		return fmt.Errorf("dmac: %w", ErrMissingConfig)
	}

	return nil
}

// acquire runs the acquisition steps, recording each acquired resource on d.held.
func (d *Device) acquire(param *InitParam) error {
	if err := d.initGPIOs(param); err != nil {
		d.log.Error("gpio init failed", "err", err)

		return fmt.Errorf("gpio init: %w", err)
	}
	d.held.push("gpio", func() error { return d.removeGPIOs(d.teardown) })

	clkgen, err := param.ClkGen.OpenClockGen()
	if err != nil {
		d.log.Error("clkgen init failed", "err", err)

		return fmt.Errorf("clkgen init: %w", err)
	}
	d.clkgen = clkgen
	d.held.push("clkgen", clkgen.Close)

	if err := clkgen.SetRate(ClockRate); err != nil {
		d.log.Error("clkgen set rate failed", "rate", ClockRate.String(), "err", err)

		return fmt.Errorf("clkgen set rate %s: %w", ClockRate, err)
	}

	pwm0, err := param.PWM0.OpenPWM()
	if err != nil {
		d.log.Error("pwm 0 init failed", "err", err)

		return fmt.Errorf("pwm 0 init: %w", err)
	}
	d.pwm0 = pwm0
	d.held.push("pwm 0", pwm0.Close)

	pwm1, err := param.PWM1.OpenPWM()
	if err != nil {
		d.log.Error("pwm 1 init failed", "err", err)

		return fmt.Errorf("pwm 1 init: %w", err)
	}
	d.pwm1 = pwm1
	d.held.push("pwm 1", pwm1.Close)

	core, err := param.Core.OpenCore()
	if err != nil {
		d.log.Error("adc core init failed", "err", err)

		return fmt.Errorf("adc core init: %w", err)
	}
	d.core = core
	d.held.push("adc core", core.Close)

	dma, err := param.DMA.OpenDMA()
	if err != nil {
		d.log.Error("dmac init failed", "err", err)

		return fmt.Errorf("dmac init: %w", err)
	}
	d.dma = dma
	d.held.push("dmac", dma.Close)

	return nil
}

// IsReady reports whether the device is initialized and Remove has not been called.
// A Remove that failed part way leaves the device not ready.
func (d *Device) IsReady() bool {
	return d != nil && !d.removing && !d.removed
}

// Mode returns the mode the device was initialized with.
// d must be a device returned by Init.
func (d *Device) Mode() Mode {
	return d.mode
}

// Remove releases the device peripherals in reverse acquisition order:
// DMA engine, sampling core, PWM 1, PWM 0, clock generator, mode-select lines.
// The DMA engine is released first, ahead of the sampling core; the no-OS ad796x driver leaves it held.
//
// Once Remove is called the device is no longer ready and ReadData returns ErrRemoved.
// Under TeardownFailFast (the default) the first release failure is returned and the
// peripherals after it are left held; a later Remove resumes with the failed one.
// Under TeardownReleaseAll every release is attempted and the failures are combined.
// Removing a removed or nil device is a no-op.
func (d *Device) Remove() error {
	if d == nil || d.removed {
		return nil
	}

	d.removing = true

	err := d.held.unwind(d.teardown)
	if err != nil {
		d.log.Error("remove failed", "policy", d.teardown.String(), "err", err)

		if d.teardown == TeardownFailFast {
			return err
		}
	}

	d.clkgen = nil
	d.pwm0 = nil
	d.pwm1 = nil
	d.core = nil
	d.dma = nil
	d.removed = true

	d.log.Debug("device removed")

	return err
}
