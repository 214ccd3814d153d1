// Live integration test against a connected robot. It only runs when
// QUADRUPED_TEST_PORT points at the device's serial port.
package main_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"go.bug.st/serial"

	"github.com/rmb11/quadruped"
)

func openTestPort(t *testing.T) serial.Port {
	t.Helper()
	name := os.Getenv("QUADRUPED_TEST_PORT")
	if name == "" {
		t.Skip("QUADRUPED_TEST_PORT not set")
	}

	port, err := serial.Open(name, &serial.Mode{BaudRate: 9600})
	if err != nil {
		t.Fatalf("unexpected error opening serial connection: %v", err)
	}
	t.Cleanup(func() { port.Close() })
	return port
}

func readReply(t *testing.T, port serial.Port) string {
	t.Helper()
	port.SetReadTimeout(time.Second)

	var reply strings.Builder
	buf := make([]byte, 256)
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		n, err := port.Read(buf)
		if err != nil {
			t.Fatalf("unexpected error reading serial: %v", err)
		}
		if n == 0 {
			break
		}
		reply.Write(buf[:n])
	}
	return reply.String()
}

func TestSerial_ValidPoseIsSilent(t *testing.T) {
	port := openTestPort(t)

	msg, err := quadruped.EncodePose(quadruped.Pose{90, 90, 90, 90, 90, 90, 90, 90})
	if err != nil {
		t.Fatalf("EncodePose: %v", err)
	}
	if _, err := port.Write(msg); err != nil {
		t.Fatalf("unexpected error writing serial: %v", err)
	}

	if reply := readReply(t, port); reply != "" {
		t.Errorf("valid pose produced diagnostics: %q", reply)
	}
}

func TestSerial_MalformedCommandReports(t *testing.T) {
	port := openTestPort(t)

	if _, err := port.Write([]byte("not json\r\n")); err != nil {
		t.Fatalf("unexpected error writing serial: %v", err)
	}

	reply := readReply(t, port)
	if !strings.Contains(reply, "error decoding pose") {
		t.Errorf("expected decode diagnostic, got %q", reply)
	}

	// The loop must survive the malformed command.
	msg, _ := quadruped.EncodePose(quadruped.Pose{45, 45, 45, 45, 45, 45, 45, 45})
	if _, err := port.Write(msg); err != nil {
		t.Fatalf("unexpected error writing after malformed command: %v", err)
	}
	if reply := readReply(t, port); reply != "" {
		t.Errorf("pose after malformed command produced diagnostics: %q", reply)
	}
}
