//go:build linux

package gpiocdev

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
)

func TestOpenLineMissingChip(t *testing.T) {
	_, err := Line{Chip: "/dev/gpiochip-does-not-exist", Offset: 0}.OpenLine()
	assert.Error(t, err)
}

func TestFindChipNotCharDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gpiochip0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := findChip(nil, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a character device")
}

func TestFindChipNoMatch(t *testing.T) {
	_, err := findChip(nil, "/dev/null")
	assert.ErrorIs(t, err, ErrNoChip)
}

func TestCharDevice(t *testing.T) {
	a, err := charDevice("/dev/null")
	require.NoError(t, err)

	b, err := charDevice("/dev/zero")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestClosedLine(t *testing.T) {
	l := &line{name: "gpiochip0:3", closed: true}

	assert.NoError(t, l.Close())
	assert.Error(t, l.SetOutput(gpio.High))
}

// TestLineHardware drives a real line. It needs GPIOCDEV_TEST_CHIP and
// GPIOCDEV_TEST_OFFSET to name a free line, e.g. on a gpio-sim chip.
func TestLineHardware(t *testing.T) {
	chip := os.Getenv("GPIOCDEV_TEST_CHIP")
	offset, err := strconv.Atoi(os.Getenv("GPIOCDEV_TEST_OFFSET"))
	if chip == "" || err != nil {
		t.Skip("GPIOCDEV_TEST_CHIP and GPIOCDEV_TEST_OFFSET not set")
	}

	l, err := Line{Chip: chip, Offset: offset}.OpenLine()
	require.NoError(t, err)

	assert.NoError(t, l.SetOutput(gpio.High))
	assert.NoError(t, l.SetOutput(gpio.Low))
	assert.NoError(t, l.Close())
	assert.NoError(t, l.Close())
}
