//go:build tinygo

// Package device implements the servo PWM capability on the robot's own
// microcontroller, one hobby servo per PWM pin.
package device

import (
	"errors"
	"machine"

	tinyservo "tinygo.org/x/drivers/servo"
)

// The servo driver runs every channel on the standard 50Hz hobby-servo
// carrier with a 20ms period.
const (
	carrierHz = 50
	periodUS  = 1_000_000 / carrierHz
)

// ServoPin wires one servo channel to a PWM peripheral and output pin.
type ServoPin struct {
	PWM tinyservo.PWM
	Pin machine.Pin
}

// PWM drives the robot's servos through the tinygo servo driver. Channel i
// is the i-th configured pin.
type PWM struct {
	servos []tinyservo.Servo
}

// New configures every servo pin for PWM output.
func New(pins []ServoPin) (*PWM, error) {
	servos := make([]tinyservo.Servo, len(pins))
	for i, p := range pins {
		s, err := tinyservo.New(p.PWM, p.Pin)
		if err != nil {
			return nil, errors.New("configure servo pin: " + err.Error())
		}
		servos[i] = s
	}
	return &PWM{servos: servos}, nil
}

// SetDuty converts the 16-bit duty fraction into a pulse width on the 20ms
// period and hands it to the driver.
func (p *PWM) SetDuty(channel int, duty uint16) error {
	if channel < 0 || channel >= len(p.servos) {
		return errors.New("no such servo channel")
	}
	us := int64(duty) * periodUS / 0xFFFF
	return p.servos[channel].SetMicroseconds(int16(us))
}

// SetFrequency accepts only the 50Hz carrier the driver is built around.
func (p *PWM) SetFrequency(channel int, hz uint) error {
	if hz != carrierHz {
		return errors.New("only the 50Hz servo carrier is supported")
	}
	return nil
}
