package main

import (
	"fmt"

	"github.com/rmb11/quadruped"
)

type SaveCommand struct {
	Args struct {
		Name   string   `positional-arg-name:"name" required:"yes"`
		Angles []string `positional-arg-name:"angles" required:"yes"`
	} `positional-args:"yes"`
}

func (c *SaveCommand) Execute(args []string) error {
	pose, err := parsePose(c.Args.Angles)
	if err != nil {
		return err
	}

	poses, err := openStore()
	if err != nil {
		return err
	}
	if err := poses.Set(c.Args.Name, pose); err != nil {
		return err
	}
	fmt.Printf("Saved pose %q\n", c.Args.Name)
	return nil
}

type ListCommand struct{}

func (c *ListCommand) Execute(args []string) error {
	poses, err := openStore()
	if err != nil {
		return err
	}
	names := poses.Names()
	if len(names) == 0 {
		fmt.Println("No saved poses.")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

type ShowCommand struct {
	Args struct {
		Name string `positional-arg-name:"name" required:"yes"`
	} `positional-args:"yes"`
}

func (c *ShowCommand) Execute(args []string) error {
	poses, err := openStore()
	if err != nil {
		return err
	}
	pose, ok := poses.Get(c.Args.Name)
	if !ok {
		return fmt.Errorf("no saved pose named %q", c.Args.Name)
	}

	labels := quadruped.AllChannels()
	for i, angle := range pose {
		fmt.Printf("%-18s %6.2f\n", labels[i], angle)
	}
	return nil
}
