package main

import (
	"context"

	"github.com/rmb11/quadruped/transport"
	"github.com/rmb11/quadruped/ui"
)

type UICommand struct{}

func (c *UICommand) Execute(args []string) error {
	poses, err := openStore()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ui.New(transport.NewFromEnv(), poses).Run(ctx)
	return nil
}
