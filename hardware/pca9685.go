// Package hardware implements the servo PWM capability on real hardware.
// The host-Linux implementation drives a PCA9685 16-channel servo board over
// I2C, the usual wiring for a Raspberry-Pi-driven quadruped.
package hardware

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/pca9685"
	"periph.io/x/host/v3"
)

// DefaultI2CAddr is the PCA9685's factory address.
const DefaultI2CAddr uint16 = pca9685.I2CAddr

// PCA9685 adapts the servo board to the servo.PWM capability. The board has
// a single prescaler, so SetFrequency is chip-wide: the last configured
// frequency wins for all sixteen channels. With a uniform servo calibration
// that is exactly the behavior the controller asks for.
type PCA9685 struct {
	dev *pca9685.Dev
	bus i2c.BusCloser
}

// NewPCA9685 opens the I2C bus (for example "1" on a Raspberry Pi) and
// initializes the board with all outputs off.
func NewPCA9685(busName string, addr uint16) (*PCA9685, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}
	dev, err := pca9685.NewI2C(bus, addr)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init pca9685 at %#x: %w", addr, err)
	}
	if err := dev.SetAllPwm(0, 0); err != nil {
		bus.Close()
		return nil, fmt.Errorf("clear pca9685 outputs: %w", err)
	}
	return &PCA9685{dev: dev, bus: bus}, nil
}

// SetDuty sets the on-time for one channel. The board counts in 12 bits, so
// the 16-bit duty value is scaled down to the chip's resolution.
func (p *PCA9685) SetDuty(channel int, duty uint16) error {
	if err := p.dev.SetPwm(channel, 0, gpio.Duty(duty>>4)); err != nil {
		return fmt.Errorf("pca9685 channel %d: %w", channel, err)
	}
	return nil
}

// SetFrequency sets the PWM carrier. The prescaler is shared by all
// channels; the channel argument exists to satisfy the capability contract.
func (p *PCA9685) SetFrequency(channel int, hz uint) error {
	if err := p.dev.SetPwmFreq(physic.Frequency(hz) * physic.Hertz); err != nil {
		return fmt.Errorf("pca9685 frequency %dHz: %w", hz, err)
	}
	return nil
}

// Close parks all outputs and releases the bus.
func (p *PCA9685) Close() error {
	if err := p.dev.SetAllPwm(0, 0); err != nil {
		p.bus.Close()
		return err
	}
	return p.bus.Close()
}
