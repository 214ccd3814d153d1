package servo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmb11/quadruped"
)

func writeCalibration(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calibration.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write calibration: %v", err)
	}
	return path
}

func TestLoadCalibration(t *testing.T) {
	path := writeCalibration(t, `
channels:
  - frequency: 50
    min_duty: 1638
    max_duty: 7864
    min_angle: 0
    max_angle: 180
  - frequency: 330
    min_duty: 2000
    max_duty: 60000
    min_angle: -90
    max_angle: 90
`)

	calibration, err := LoadCalibration(path)
	if err != nil {
		t.Fatalf("LoadCalibration: %v", err)
	}

	if len(calibration) != quadruped.NumChannels {
		t.Fatalf("got %d channels, want %d", len(calibration), quadruped.NumChannels)
	}
	if calibration[1].Frequency != 330 || calibration[1].MinAngle != -90 {
		t.Errorf("channel 1 = %+v, want the file's values", calibration[1])
	}
	// Unlisted channels fall back to defaults.
	if calibration[7] != DefaultSettings() {
		t.Errorf("channel 7 = %+v, want defaults", calibration[7])
	}
}

func TestLoadCalibration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "channels: ["},
		{"bad duty range", "channels:\n  - {frequency: 50, min_duty: 9, max_duty: 9, min_angle: 0, max_angle: 180}\n"},
		{"too many channels", `
channels:
  - {frequency: 50, min_duty: 1, max_duty: 2, min_angle: 0, max_angle: 1}
  - {frequency: 50, min_duty: 1, max_duty: 2, min_angle: 0, max_angle: 1}
  - {frequency: 50, min_duty: 1, max_duty: 2, min_angle: 0, max_angle: 1}
  - {frequency: 50, min_duty: 1, max_duty: 2, min_angle: 0, max_angle: 1}
  - {frequency: 50, min_duty: 1, max_duty: 2, min_angle: 0, max_angle: 1}
  - {frequency: 50, min_duty: 1, max_duty: 2, min_angle: 0, max_angle: 1}
  - {frequency: 50, min_duty: 1, max_duty: 2, min_angle: 0, max_angle: 1}
  - {frequency: 50, min_duty: 1, max_duty: 2, min_angle: 0, max_angle: 1}
  - {frequency: 50, min_duty: 1, max_duty: 2, min_angle: 0, max_angle: 1}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCalibration(writeCalibration(t, tt.content)); err == nil {
				t.Error("LoadCalibration accepted invalid input")
			}
		})
	}
}

func TestLoadCalibration_MissingFile(t *testing.T) {
	if _, err := LoadCalibration(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadCalibration accepted a missing file")
	}
}
