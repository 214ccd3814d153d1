package servo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rmb11/quadruped"
)

// DefaultTick is the pause between receive-loop iterations. It throttles the
// polling rate and is not a timing guarantee.
const DefaultTick = 100 * time.Millisecond

// Controller owns the robot's servo channels and applies poses to them.
type Controller struct {
	servos []*Servo

	// Tick is the sleep between loop iterations; DefaultTick when zero.
	Tick time.Duration
}

// NewController creates one channel controller per calibration entry, all
// sharing the same hardware capability.
func NewController(hw PWM, calibration []Settings) (*Controller, error) {
	if len(calibration) == 0 {
		return nil, errors.New("no channels configured")
	}
	servos := make([]*Servo, len(calibration))
	for i, settings := range calibration {
		s, err := New(i, hw, settings)
		if err != nil {
			return nil, err
		}
		servos[i] = s
	}
	return &Controller{servos: servos}, nil
}

// Servo returns the controller for one channel.
func (c *Controller) Servo(channel int) *Servo {
	return c.servos[channel]
}

// Channels returns the number of configured channels.
func (c *Controller) Channels() int {
	return len(c.servos)
}

// ApplyPose applies pose index i to channel i, in index order. Elements
// beyond the configured channels are ignored; a short pose leaves the
// trailing channels untouched. A failing channel does not stop the rest.
func (c *Controller) ApplyPose(pose quadruped.Pose) error {
	var errs []error
	for i, angle := range pose {
		if i >= len(c.servos) {
			break
		}
		if err := c.servos[i].Apply(angle); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Positions reports the last applied angle per channel. Channels that have
// not moved since (re)configuration report as zero.
func (c *Controller) Positions() quadruped.Pose {
	pose := make(quadruped.Pose, len(c.servos))
	for i, s := range c.servos {
		pose[i], _ = s.Current()
	}
	return pose
}

// HandleLine processes one received command line. Blank lines are "no
// command this tick". A malformed line produces a single diagnostic on diag
// and leaves every channel untouched; it is never fatal.
func (c *Controller) HandleLine(line string, diag io.Writer) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	pose, err := quadruped.DecodePose(line)
	if err != nil {
		fmt.Fprintf(diag, "error decoding pose: %v\r\n", err)
		return
	}
	if err := c.ApplyPose(pose); err != nil {
		fmt.Fprintf(diag, "error applying pose: %v\r\n", err)
	}
}

// Run is the device's only control thread: read one line from r, handle it,
// sleep one tick, repeat. Malformed commands never stop the loop; it returns
// only when ctx is cancelled or the command stream ends.
func (c *Controller) Run(ctx context.Context, r io.Reader, diag io.Writer) error {
	tick := c.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		c.HandleLine(scanner.Text(), diag)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(tick):
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read command stream: %w", err)
	}
	return nil
}
