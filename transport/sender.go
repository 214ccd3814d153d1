// Package transport exchanges poses with the robot over its serial link.
package transport

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"go.bug.st/serial"

	"github.com/rmb11/quadruped"
)

// DefaultReplyWait bounds how long Send listens for an optional reply after
// writing a pose.
const DefaultReplyWait = 500 * time.Millisecond

// ErrNoPorts is returned by Ports when no serial ports are present.
var ErrNoPorts = errors.New("no serial ports found")

// Sender sends poses to the device. Each Send is a self-contained
// open->write->read->close transaction; no connection survives between
// calls. That costs a serial handshake per pose but keeps working when the
// device or cable comes and goes.
type Sender struct {
	Port     string
	BaudRate int

	// ReplyWait is how long to listen for a reply line after writing;
	// DefaultReplyWait when zero. The reply is diagnostic only and is
	// neither parsed nor validated.
	ReplyWait time.Duration
}

// NewFromEnv builds a sender from QUADRUPED_PORT and QUADRUPED_BAUD, with
// the original robot's defaults.
func NewFromEnv() *Sender {
	return &Sender{
		Port:     getEnv("QUADRUPED_PORT", "/dev/ttyACM0"),
		BaudRate: getEnvInt("QUADRUPED_BAUD", 9600),
	}
}

// Send encodes pose as one wire message and exchanges it with the device.
// The port is closed on every return path. An unopenable port or a failed
// write returns an error and is never fatal to the caller.
func (s *Sender) Send(pose quadruped.Pose) error {
	port, err := serial.Open(s.Port, &serial.Mode{BaudRate: s.BaudRate})
	if err != nil {
		return fmt.Errorf("open %s: %w", s.Port, err)
	}
	defer port.Close()

	msg, err := quadruped.EncodePose(pose)
	if err != nil {
		return err
	}
	if _, err := port.Write(msg); err != nil {
		return fmt.Errorf("write %s: %w", s.Port, err)
	}

	s.readReply(port)
	return nil
}

// readReply surfaces whatever the device says within the reply window. The
// protocol has no acknowledgement, so the reply carries no meaning beyond
// diagnostics.
func (s *Sender) readReply(port serial.Port) {
	wait := s.ReplyWait
	if wait <= 0 {
		wait = DefaultReplyWait
	}
	if err := port.SetReadTimeout(wait); err != nil {
		return
	}
	buf := make([]byte, 256)
	n, err := port.Read(buf)
	if err != nil || n == 0 {
		return
	}
	log.Printf("device: %s", buf[:n])
}

// Ports lists the serial ports on this machine, for the UI and CLI to offer
// to the operator.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	if len(ports) == 0 {
		return nil, ErrNoPorts
	}
	return ports, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, defaultValue)
		return defaultValue
	}
	return n
}
