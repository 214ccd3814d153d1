// Package servo drives the robot's servo channels: it owns per-channel
// calibration, converts requested angles into PWM duty values, and runs the
// device-side command loop that turns received pose lines into motion.
package servo

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidAngle is returned by Apply when the requested angle lies outside
// the channel's calibrated range. The legacy firmware silently computed an
// out-of-range duty value instead; rejecting keeps nonsense away from the
// hardware.
var ErrInvalidAngle = errors.New("angle outside calibrated range")

// PWM is the capability the channel controller needs from the underlying
// PWM/GPIO layer. Implementations exist for the PCA9685 servo board and for
// tinygo machine PWM peripherals.
type PWM interface {
	// SetDuty sets the on-time for one channel as a 16-bit fraction of the
	// PWM period.
	SetDuty(channel int, duty uint16) error
	// SetFrequency re-establishes the PWM carrier for one channel.
	SetFrequency(channel int, hz uint) error
}

// Settings holds the calibration constants for one servo channel.
type Settings struct {
	Frequency uint    `yaml:"frequency"`
	MinDuty   uint16  `yaml:"min_duty"`
	MaxDuty   uint16  `yaml:"max_duty"`
	MinAngle  float64 `yaml:"min_angle"`
	MaxAngle  float64 `yaml:"max_angle"`
}

// DefaultSettings returns the calibration for the stock hobby servos: 50Hz
// carrier, 500-2400us pulse width expressed as 16-bit duty, 0-180 degrees.
func DefaultSettings() Settings {
	return Settings{
		Frequency: 50,
		MinDuty:   1638,
		MaxDuty:   7864,
		MinAngle:  0,
		MaxAngle:  180,
	}
}

func (s Settings) validate() error {
	if s.Frequency == 0 {
		return errors.New("frequency must be positive")
	}
	if s.MinDuty >= s.MaxDuty {
		return fmt.Errorf("duty range [%d, %d] is empty", s.MinDuty, s.MaxDuty)
	}
	if s.MinAngle >= s.MaxAngle {
		return fmt.Errorf("angle range [%v, %v] is empty", s.MinAngle, s.MaxAngle)
	}
	return nil
}

// Servo controls a single servo channel. It remembers the last applied angle
// so repeated identical commands never touch the hardware twice.
type Servo struct {
	channel  int
	hw       PWM
	settings Settings

	// factor converts degrees above MinAngle into duty counts above MinDuty.
	factor float64

	// current is the last successfully applied angle, rounded to two
	// decimals. The -Inf sentinel is outside any calibrated range, so the
	// first command after creation or reconfiguration is always applied.
	current float64
}

// New creates the controller for one channel and establishes its PWM carrier.
func New(channel int, hw PWM, settings Settings) (*Servo, error) {
	s := &Servo{channel: channel, hw: hw}
	if err := s.Configure(settings); err != nil {
		return nil, fmt.Errorf("servo %d: %w", channel, err)
	}
	return s, nil
}

// Channel returns the immutable channel index.
func (s *Servo) Channel() int { return s.channel }

// Settings returns the active calibration.
func (s *Servo) Settings() Settings { return s.settings }

// Configure replaces the calibration constants, recomputes the conversion
// factor, and resets the current angle so the next Apply is guaranteed to
// reach the hardware even if it repeats the previous angle.
func (s *Servo) Configure(settings Settings) error {
	if err := settings.validate(); err != nil {
		return err
	}
	s.settings = settings
	s.factor = float64(settings.MaxDuty-settings.MinDuty) / (settings.MaxAngle - settings.MinAngle)
	s.current = math.Inf(-1)
	if err := s.hw.SetFrequency(s.channel, settings.Frequency); err != nil {
		return fmt.Errorf("set frequency: %w", err)
	}
	return nil
}

// Apply moves the servo to the requested angle. Angles are rounded to two
// decimals; re-applying the current angle is a no-op. Angles outside the
// calibrated range return ErrInvalidAngle without touching the hardware.
func (s *Servo) Apply(angle float64) error {
	angle = round2(angle)
	if angle == s.current {
		return nil
	}
	if angle < s.settings.MinAngle || angle > s.settings.MaxAngle {
		return fmt.Errorf("channel %d: angle %v not in [%v, %v]: %w",
			s.channel, angle, s.settings.MinAngle, s.settings.MaxAngle, ErrInvalidAngle)
	}
	duty := s.settings.MinDuty + uint16(math.Round((angle-s.settings.MinAngle)*s.factor))
	if err := s.hw.SetDuty(s.channel, duty); err != nil {
		return fmt.Errorf("channel %d: set duty: %w", s.channel, err)
	}
	s.current = angle
	return nil
}

// Current returns the last successfully applied angle and whether any angle
// has been applied since the last (re)configuration.
func (s *Servo) Current() (float64, bool) {
	if math.IsInf(s.current, -1) {
		return 0, false
	}
	return s.current, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
