package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.bug.st/serial"

	"github.com/rmb11/quadruped/hardware"
	"github.com/rmb11/quadruped/servo"
)

// DeviceCommand runs the device side of the system on a Linux board: the
// servo controller loop reading pose lines from a serial port (or stdin)
// and driving a PCA9685 servo board.
type DeviceCommand struct {
	I2CBus      string `long:"i2c" default:"1" description:"I2C bus name for the PCA9685"`
	I2CAddr     string `long:"addr" default:"0x40" description:"I2C address of the PCA9685"`
	Calibration string `long:"calibration" description:"YAML per-channel calibration file (defaults apply when omitted)"`
	Port        string `long:"port" description:"Serial port to read pose commands from; stdin when omitted"`
	Baud        int    `long:"baud" default:"9600" description:"Baud rate for --port"`
}

func (c *DeviceCommand) Execute(args []string) error {
	addr, err := strconv.ParseUint(c.I2CAddr, 0, 16)
	if err != nil {
		return fmt.Errorf("invalid I2C address %q", c.I2CAddr)
	}

	calibration := servo.DefaultCalibration()
	if c.Calibration != "" {
		calibration, err = servo.LoadCalibration(c.Calibration)
		if err != nil {
			return err
		}
	}

	hw, err := hardware.NewPCA9685(c.I2CBus, uint16(addr))
	if err != nil {
		return err
	}
	defer hw.Close()

	controller, err := servo.NewController(hw, calibration)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	if c.Port != "" {
		port, err := serial.Open(c.Port, &serial.Mode{BaudRate: c.Baud})
		if err != nil {
			return fmt.Errorf("open %s: %w", c.Port, err)
		}
		defer port.Close()
		in, out = port, port
		log.Printf("listening for poses on %s at %d baud", c.Port, c.Baud)
	} else {
		log.Println("listening for poses on stdin")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return controller.Run(ctx, in, out)
}
