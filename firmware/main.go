//go:build tinygo

package main

import (
	"machine"
	"time"

	"github.com/rmb11/quadruped/firmware/device"
	"github.com/rmb11/quadruped/servo"
)

// tick throttles the command loop; it is a polling pause, not a timing
// guarantee.
const tick = 100 * time.Millisecond

func main() {
	// One servo per leg joint on GP0-GP7. Each rp2040 PWM slice serves two
	// adjacent pins.
	pins := []device.ServoPin{
		{PWM: machine.PWM0, Pin: machine.GP0},
		{PWM: machine.PWM0, Pin: machine.GP1},
		{PWM: machine.PWM1, Pin: machine.GP2},
		{PWM: machine.PWM1, Pin: machine.GP3},
		{PWM: machine.PWM2, Pin: machine.GP4},
		{PWM: machine.PWM2, Pin: machine.GP5},
		{PWM: machine.PWM3, Pin: machine.GP6},
		{PWM: machine.PWM3, Pin: machine.GP7},
	}

	hw, err := device.New(pins)
	if err != nil {
		panic(err)
	}

	controller, err := servo.NewController(hw, servo.DefaultCalibration())
	if err != nil {
		panic(err)
	}

	// The device's only control thread: one line per tick, decoded and
	// applied; malformed commands are reported and dropped. There is no
	// shutdown command, so the loop runs for the life of the process.
	out := serialWriter{}
	for {
		line := readLine()
		controller.HandleLine(line, out)
		time.Sleep(tick)
	}
}

// readLine assembles one command line from the serial port, byte by byte.
// The serial read is non-blocking; the loop idles until a full line arrives.
func readLine() string {
	var line []byte
	for {
		b, err := machine.Serial.ReadByte()
		if err != nil {
			time.Sleep(time.Millisecond)
			continue
		}
		if b == '\n' {
			return string(line)
		}
		line = append(line, b)
	}
}

// serialWriter sends diagnostics back over the same serial port.
type serialWriter struct{}

func (serialWriter) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := machine.Serial.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}
