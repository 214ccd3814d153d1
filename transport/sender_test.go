package transport

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rmb11/quadruped"
)

func TestSend_UnopenablePort(t *testing.T) {
	s := &Sender{
		Port:      filepath.Join(t.TempDir(), "no-such-port"),
		BaudRate:  9600,
		ReplyWait: 10 * time.Millisecond,
	}

	err := s.Send(quadruped.Pose{90, 90, 90, 90, 90, 90, 90, 90})
	if err == nil {
		t.Fatal("Send succeeded on a nonexistent port")
	}

	// A second call must behave the same: no connection state may leak
	// from the failed transaction.
	if err := s.Send(quadruped.Pose{0}); err == nil {
		t.Fatal("second Send succeeded on a nonexistent port")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("QUADRUPED_PORT", "/dev/ttyUSB7")
	t.Setenv("QUADRUPED_BAUD", "115200")

	s := NewFromEnv()
	if s.Port != "/dev/ttyUSB7" {
		t.Errorf("Port = %q, want /dev/ttyUSB7", s.Port)
	}
	if s.BaudRate != 115200 {
		t.Errorf("BaudRate = %d, want 115200", s.BaudRate)
	}
}

func TestNewFromEnv_Defaults(t *testing.T) {
	t.Setenv("QUADRUPED_PORT", "")
	t.Setenv("QUADRUPED_BAUD", "")

	s := NewFromEnv()
	if s.Port != "/dev/ttyACM0" {
		t.Errorf("Port = %q, want /dev/ttyACM0", s.Port)
	}
	if s.BaudRate != 9600 {
		t.Errorf("BaudRate = %d, want 9600", s.BaudRate)
	}
}

func TestNewFromEnv_BadBaud(t *testing.T) {
	t.Setenv("QUADRUPED_BAUD", "fast")
	if s := NewFromEnv(); s.BaudRate != 9600 {
		t.Errorf("BaudRate = %d, want fallback 9600", s.BaudRate)
	}
}
