package main

import (
	"context"

	"github.com/osse101/onsenkatsu/internal/cli"
)

const confirmYes = "yes"

// Command interface that all devtool commands must implement
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, args []string) error
}

func newRegistry() *cli.Registry[Command] {
	r := cli.NewRegistry[Command]("devtool")
	r.Register(&MigrateCommand{})
	r.Register(&SeedCommand{})
	r.Register(&CheckDBCommand{})
	r.Register(&WaitForDBCommand{})
	r.Register(&CheckDepsCommand{})
	r.Register(&DoctorCommand{})
	return r
}
