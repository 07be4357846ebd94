package ad796x_test

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/gen2brain/ad796x"
)

// recorder collects the calls made on fake peripherals, in order.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.events...)
}

// failures maps an event name to the error the fake returns for it.
type failures map[string]error

type fakeLine struct {
	rec  *recorder
	name string
	fail failures
}

func (l *fakeLine) OpenLine() (ad796x.GPIOLine, error) {
	l.rec.add("open %s", l.name)
	if err := l.fail["open "+l.name]; err != nil {
		return nil, err
	}

	return l, nil
}

func (l *fakeLine) SetOutput(level gpio.Level) error {
	l.rec.add("set %s %s", l.name, level)

	return l.fail["set "+l.name]
}

func (l *fakeLine) Close() error {
	l.rec.add("close %s", l.name)

	return l.fail["close "+l.name]
}

type fakeClkGen struct {
	rec  *recorder
	fail failures
	rate physic.Frequency
}

func (c *fakeClkGen) OpenClockGen() (ad796x.ClockGen, error) {
	c.rec.add("open clkgen")
	if err := c.fail["open clkgen"]; err != nil {
		return nil, err
	}

	return c, nil
}

func (c *fakeClkGen) SetRate(rate physic.Frequency) error {
	c.rec.add("rate clkgen %s", rate)
	c.rate = rate

	return c.fail["rate clkgen"]
}

func (c *fakeClkGen) Close() error {
	c.rec.add("close clkgen")

	return c.fail["close clkgen"]
}

type fakePWM struct {
	rec  *recorder
	name string
	fail failures
}

func (p *fakePWM) OpenPWM() (ad796x.PWM, error) {
	p.rec.add("open %s", p.name)
	if err := p.fail["open "+p.name]; err != nil {
		return nil, err
	}

	return p, nil
}

func (p *fakePWM) Close() error {
	p.rec.add("close %s", p.name)

	return p.fail["close "+p.name]
}

const fakeStreamAddr = uintptr(0x44a00000)

type fakeCore struct {
	rec  *recorder
	fail failures
}

func (c *fakeCore) OpenCore() (ad796x.Core, error) {
	c.rec.add("open core")
	if err := c.fail["open core"]; err != nil {
		return nil, err
	}

	return c, nil
}

func (c *fakeCore) StreamAddr() uintptr {
	return fakeStreamAddr
}

func (c *fakeCore) Close() error {
	c.rec.add("close core")

	return c.fail["close core"]
}

// fakeDMA fills the destination with a ramp on submit and completes after delay.
// A negative delay never completes.
type fakeDMA struct {
	rec   *recorder
	fail  failures
	delay time.Duration

	submitted []ad796x.Transfer
	timeouts  []time.Duration
}

func (d *fakeDMA) OpenDMA() (ad796x.DMA, error) {
	d.rec.add("open dmac")
	if err := d.fail["open dmac"]; err != nil {
		return nil, err
	}

	return d, nil
}

func (d *fakeDMA) Submit(t *ad796x.Transfer) error {
	d.rec.add("submit dmac %d", t.Size)
	if err := d.fail["submit dmac"]; err != nil {
		return err
	}

	d.submitted = append(d.submitted, *t)
	for i := range t.Dest {
		t.Dest[i] = uint32(i + 1)
	}

	return nil
}

func (d *fakeDMA) Wait(timeout time.Duration) (bool, error) {
	d.timeouts = append(d.timeouts, timeout)
	if err := d.fail["wait dmac"]; err != nil {
		return false, err
	}

	if d.delay < 0 || d.delay > timeout {
		time.Sleep(timeout)

		return false, nil
	}

	time.Sleep(d.delay)

	return true, nil
}

func (d *fakeDMA) Close() error {
	d.rec.add("close dmac")

	return d.fail["close dmac"]
}

// board bundles a complete set of fake peripherals.
type board struct {
	rec  *recorder
	fail failures

	en  [4]*fakeLine
	clk *fakeClkGen
	dma *fakeDMA
}

func newBoard() *board {
	b := &board{rec: &recorder{}, fail: failures{}}
	for i := range b.en {
		b.en[i] = &fakeLine{rec: b.rec, name: fmt.Sprintf("en%d", i), fail: b.fail}
	}
	b.clk = &fakeClkGen{rec: b.rec, fail: b.fail}
	b.dma = &fakeDMA{rec: b.rec, fail: b.fail}

	return b
}

func (b *board) param(mode ad796x.Mode) *ad796x.InitParam {
	return &ad796x.InitParam{
		Mode:    mode,
		GPIOEn0: b.en[0],
		GPIOEn1: b.en[1],
		GPIOEn2: b.en[2],
		GPIOEn3: b.en[3],
		ClkGen:  b.clk,
		PWM0:    &fakePWM{rec: b.rec, name: "pwm0", fail: b.fail},
		PWM1:    &fakePWM{rec: b.rec, name: "pwm1", fail: b.fail},
		Core:    &fakeCore{rec: b.rec, fail: b.fail},
		DMA:     b.dma,
	}
}
