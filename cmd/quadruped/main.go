// Command quadruped is the host-side tool for the quadruped robot: it
// sends poses over the serial link, manages the pose store, and launches
// the slider front-end.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/rmb11/quadruped"
	"github.com/rmb11/quadruped/store"
)

type Options struct {
	Send   SendCommand   `command:"send" description:"Send a pose to the robot"`
	Save   SaveCommand   `command:"save" description:"Save a named pose to the pose store"`
	List   ListCommand   `command:"list" description:"List saved pose names"`
	Show   ShowCommand   `command:"show" description:"Show a saved pose"`
	Ports  PortsCommand  `command:"ports" description:"List available serial ports"`
	Device DeviceCommand `command:"device" description:"Run the device-side servo controller (PCA9685)"`
	UI     UICommand     `command:"ui" description:"Launch the slider front-end"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	parser.LongDescription = "Quadruped - pose control for a servo-driven walking robot"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}

// openStore loads the pose store from QUADRUPED_POSES (default
// robot_poses.json in the working directory).
func openStore() (*store.Store, error) {
	path := os.Getenv("QUADRUPED_POSES")
	if path == "" {
		path = "robot_poses.json"
	}
	s := store.New(path)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// parsePose turns command-line angle arguments into a pose. Angles may be
// separate arguments or one comma-separated value.
func parsePose(args []string) (quadruped.Pose, error) {
	if len(args) == 1 && strings.Contains(args[0], ",") {
		args = strings.Split(args[0], ",")
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no angles given")
	}
	if len(args) > quadruped.NumChannels {
		return nil, fmt.Errorf("%d angles given, robot has %d channels", len(args), quadruped.NumChannels)
	}

	pose := make(quadruped.Pose, 0, len(args))
	for _, arg := range args {
		angle, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid angle %q", arg)
		}
		pose = append(pose, angle)
	}
	return pose, nil
}
