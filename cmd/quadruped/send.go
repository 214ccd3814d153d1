package main

import (
	"errors"
	"fmt"

	"github.com/rmb11/quadruped"
	"github.com/rmb11/quadruped/transport"
)

type SendCommand struct {
	Name string `long:"name" short:"n" description:"Send a pose from the store instead of literal angles"`
}

func (c *SendCommand) Execute(args []string) error {
	var pose quadruped.Pose
	if c.Name != "" {
		poses, err := openStore()
		if err != nil {
			return err
		}
		var ok bool
		pose, ok = poses.Get(c.Name)
		if !ok {
			return fmt.Errorf("no saved pose named %q", c.Name)
		}
	} else {
		var err error
		pose, err = parsePose(args)
		if err != nil {
			return err
		}
	}

	sender := transport.NewFromEnv()
	if err := sender.Send(pose); err != nil {
		return fmt.Errorf("send pose: %w", err)
	}
	fmt.Printf("Sent %v to %s\n", []float64(pose), sender.Port)
	return nil
}

type PortsCommand struct{}

func (c *PortsCommand) Execute(args []string) error {
	ports, err := transport.Ports()
	if errors.Is(err, transport.ErrNoPorts) {
		fmt.Println("No serial ports found.")
		return nil
	}
	if err != nil {
		return err
	}
	for _, port := range ports {
		fmt.Println(port)
	}
	return nil
}
