package servo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rmb11/quadruped"
)

// calibrationFile is the on-disk shape of a calibration file:
//
//	channels:
//	  - frequency: 50
//	    min_duty: 1638
//	    max_duty: 7864
//	    min_angle: 0
//	    max_angle: 180
//	  ...
//
// Entries are positional; entry i calibrates channel i. Channels beyond the
// listed entries use the defaults.
type calibrationFile struct {
	Channels []Settings `yaml:"channels"`
}

// DefaultCalibration returns the stock calibration for every channel.
func DefaultCalibration() []Settings {
	calibration := make([]Settings, quadruped.NumChannels)
	for i := range calibration {
		calibration[i] = DefaultSettings()
	}
	return calibration
}

// LoadCalibration reads per-channel calibration from a YAML file. The result
// always has one entry per robot channel; entries the file does not list
// fall back to the defaults.
func LoadCalibration(path string) ([]Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calibration file: %w", err)
	}

	var file calibrationFile
	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, fmt.Errorf("parse calibration file: %w", err)
	}
	if len(file.Channels) > quadruped.NumChannels {
		return nil, fmt.Errorf("calibration lists %d channels, robot has %d",
			len(file.Channels), quadruped.NumChannels)
	}

	calibration := DefaultCalibration()
	for i, settings := range file.Channels {
		if err := settings.validate(); err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
		calibration[i] = settings
	}
	return calibration, nil
}
